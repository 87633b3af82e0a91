// Package mobile feeds golang.org/x/mobile app events into a host screen.
//
// Holder turns lifecycle and size events into SurfaceHolder notifications
// so a Coordinator can attach to it; Bridge dispatches the rest of the
// event stream:
//
//	b := mobile.NewBridge()
//	screen := host.New(engine, sched, host.WithWindow(b.Window()))
//	b.SetScreen(screen)
//	screen.Create(assets, surfacehost.Holder(b.Holder()))
//	for e := range a.Events() {
//	    b.Handle(a.Filter(e))
//	}
package mobile
