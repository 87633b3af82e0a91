// Package surfacehost binds a platform drawable surface to a native
// rendering engine's swap chain.
//
// # Overview
//
// A Coordinator manages exactly one surface source at a time, chosen from
// three interchangeable kinds:
//
//   - Direct: a platform.SurfaceView with its own holder
//   - Texture: a platform.TextureView backed by a SurfaceTexture
//   - Holder: a bare platform.SurfaceHolder
//
// Whatever the kind, the coordinator turns the platform's notifications
// into one RenderCallback contract:
//
//	surface created   -> OnNativeWindowChanged(surface), then ready
//	surface changed   -> OnResized(width, height)
//	surface destroyed -> OnDetachedFromSurface(), then not ready
//
// OnResized always follows OnNativeWindowChanged at least once, even for
// texture sources whose platform reports no size at creation.
//
// # Quick Start
//
//	c := surfacehost.New(surfacehost.WithOpaque(true))
//	c.SetRenderCallback(surfacehost.RenderCallbackFuncs{
//	    NativeWindowChanged: func(s platform.Surface) error {
//	        return engine.CreateSwapChain(s, c.SwapChainConfig())
//	    },
//	    Resized:             engine.ResizeWindow,
//	    DetachedFromSurface: engine.DestroySwapChain,
//	})
//	if err := c.AttachTo(surfacehost.Direct(view)); err != nil {
//	    log.Fatal(err)
//	}
//
//	// On every vsync:
//	if c.IsReadyToRender() {
//	    // submit draw commands
//	}
//
//	// Always detach before destroying the engine.
//	_ = c.Detach()
//	_ = engine.Destroy()
//
// # Related Packages
//
//   - platform: the windowing primitives, and platform/headless for an
//     in-memory implementation
//   - frameloop: vsync-paced tick and pointer forwarding into the engine
//   - native: the engine boundary and its ordering guard
//   - host: a screen wiring all of the above together
//
// # Thread Safety
//
// Nothing here locks. Every call and every platform notification is
// expected on the UI goroutine.
package surfacehost
