// Package frameloop drives a native engine at display refresh rate and
// forwards pointer input to it.
//
// A Driver is either scheduled or unscheduled. While scheduled it keeps
// exactly one frame callback posted: each tick first re-arms and then calls
// the engine's GameLoop with the vsync timestamp. Pointer events are
// translated to engine actions, with the vertical position corrected by the
// height of any window chrome drawn above the surface.
//
//	d := frameloop.New(engine, &frameloop.ManualScheduler{})
//	d.Resume()
//	sched.Fire(16_000_000) // engine.GameLoop(16000000)
//	d.Pause()
package frameloop
