// Package native defines the boundary between the host and the opaque
// rendering engine that owns the swap chain, the scene and the game rules.
//
// The host drives an Engine through a strict call order:
//
//	Init -> (CreateSwapChain -> ResizeWindow+ -> GameLoop/TouchAction* -> DestroySwapChain)* -> Destroy
//
// Guard wraps any Engine and enforces that order. Engines register
// themselves by name with Register and are created with New.
package native
