// Package host wires a surface coordinator, a native engine and a frame
// loop into a Screen with an activity-like lifecycle.
//
//	screen := host.New(engine, sched, host.WithWindow(window))
//	if err := screen.Create(assets, surfacehost.Direct(view)); err != nil {
//	    return err
//	}
//	defer screen.Destroy()
//
// The Screen is the coordinator's RenderCallback: a new native window
// replaces the engine's swap chain and starts the frame loop, a resize is
// forwarded to the engine, and losing the surface tears the swap chain down
// and pauses the loop.
package host
