// Package soft is a software rendering engine for the native boundary.
//
// It renders a sliding tile puzzle with gg into a window-sized context and
// presents each frame by locking the platform surface's canvas. The swap
// chain configuration decides the render size and whether frames are
// cleared to transparent.
//
// The tile program in shaders/tile.wgsl is compiled with naga at Init and
// its entry points and uniform binding are checked, so a bad shader fails
// Init. Frames are drawn on the CPU; Pipeline exposes the compiled program
// and its layout for a hardware engine sharing the same assets.
//
// Importing the package registers the engine as "software":
//
//	import _ "github.com/gogpu/surfacehost/engine/soft"
//
//	engine, err := native.New("software")
package soft
