// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frameloop

import (
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/surfacehost"
	"github.com/gogpu/surfacehost/native"
)

// Driver paces an engine's GameLoop with a Scheduler and forwards pointer
// events to its TouchAction.
//
// Any engine error is fatal: the loop stops for good, Err reports the
// error and the handler set with WithErrorHandler receives it.
//
// Driver is NOT safe for concurrent use. Call it from the goroutine that
// delivers the scheduler's callbacks.
type Driver struct {
	engine  native.Engine
	sched   Scheduler
	handle  Handle
	onError func(error)

	scheduled    bool
	stopped      bool
	chromeOffset int
	err          error
}

// New creates an unscheduled driver.
func New(engine native.Engine, sched Scheduler, opts ...Option) *Driver {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Driver{
		engine:       engine,
		sched:        sched,
		onError:      o.onError,
		chromeOffset: o.chromeOffset,
	}
}

// Resume schedules the loop. It does nothing if already scheduled or if the
// driver was destroyed or failed.
func (d *Driver) Resume() {
	if d.scheduled || d.stopped {
		return
	}
	d.scheduled = true
	d.handle = d.sched.PostFrameCallback(d.tick)
	surfacehost.Logger().Debug("frameloop: resumed")
}

// Pause cancels the pending frame callback. No tick is delivered after
// Pause returns.
func (d *Driver) Pause() {
	if !d.scheduled {
		return
	}
	d.cancel()
	surfacehost.Logger().Debug("frameloop: paused")
}

// Destroy pauses the loop permanently.
func (d *Driver) Destroy() {
	d.cancel()
	d.stopped = true
}

func (d *Driver) cancel() {
	if d.handle != nil {
		d.handle.Cancel()
		d.handle = nil
	}
	d.scheduled = false
}

// Scheduled reports whether a frame callback is armed.
func (d *Driver) Scheduled() bool {
	return d.scheduled
}

// Err returns the engine error that stopped the loop, or nil.
func (d *Driver) Err() error {
	return d.err
}

// tick re-arms before rendering so that a slow frame never loses the next
// vsync.
func (d *Driver) tick(frameTimeNanos int64) {
	if !d.scheduled {
		return
	}
	d.handle = d.sched.PostFrameCallback(d.tick)
	if err := d.engine.GameLoop(frameTimeNanos); err != nil {
		d.fail(err)
	}
}

func (d *Driver) fail(err error) {
	surfacehost.Logger().Error("frameloop: engine failed, stopping", slog.Any("err", err))
	d.Destroy()
	d.err = err
	if d.onError != nil {
		d.onError(err)
	}
}

// ChromeOffset returns the vertical pointer correction in pixels.
func (d *Driver) ChromeOffset() int {
	return d.chromeOffset
}

// UpdateChromeOffset derives the correction from the visible window height
// and the surface height: the difference is the chrome drawn above the
// surface. It is never negative.
func (d *Driver) UpdateChromeOffset(visibleHeight, surfaceHeight int) {
	d.chromeOffset = max(0, visibleHeight-surfaceHeight)
}

// HandlePointer forwards down, move and up events to the engine with the
// chrome offset subtracted from Y. Cancel, enter and leave events are
// consumed without forwarding. The event is always reported as handled.
func (d *Driver) HandlePointer(ev gpucontext.PointerEvent) bool {
	var action native.Action
	switch ev.Type {
	case gpucontext.PointerDown:
		action = native.ActionDown
	case gpucontext.PointerMove:
		action = native.ActionMove
	case gpucontext.PointerUp:
		action = native.ActionUp
	default:
		return true
	}
	if d.stopped {
		return true
	}
	x := float32(ev.X)
	y := float32(ev.Y) - float32(d.chromeOffset)
	if err := d.engine.TouchAction(action, x, y); err != nil {
		d.fail(err)
	}
	return true
}
