// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mobile

import (
	"log/slog"
	"math"
	"time"

	"github.com/gogpu/gpucontext"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/gogpu/surfacehost"
)

// Screen is the part of host.Screen the bridge drives.
type Screen interface {
	Resume()
	Pause()
	Destroy() error
	HandlePointer(ev gpucontext.PointerEvent) bool
}

// Window reports the app window from the latest size event.
// It implements gpucontext.WindowProvider.
type Window struct {
	sz     size.Event
	redraw func()
}

var _ gpucontext.WindowProvider = (*Window)(nil)

// Size returns the window size in points.
func (w *Window) Size() (int, int) {
	return int(math.Round(float64(w.sz.WidthPt))), int(math.Round(float64(w.sz.HeightPt)))
}

// ScaleFactor returns pixels per point, or 1 before the first size event.
func (w *Window) ScaleFactor() float64 {
	if w.sz.PixelsPerPt <= 0 {
		return 1
	}
	return float64(w.sz.PixelsPerPt)
}

// RequestRedraw calls the function set with WithRedraw.
func (w *Window) RequestRedraw() {
	if w.redraw != nil {
		w.redraw()
	}
}

// Bridge maps x/mobile events onto a Holder and a Screen.
//
// Bridge is NOT safe for concurrent use; call Handle from the event loop.
type Bridge struct {
	holder  *Holder
	window  *Window
	screen  Screen
	primary touch.Sequence
	down    int
	start   time.Time
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithSurfaceFunc sets how the holder allocates surfaces.
func WithSurfaceFunc(alloc SurfaceFunc) BridgeOption {
	return func(b *Bridge) {
		b.holder = NewHolder(alloc)
	}
}

// WithRedraw sets the function behind Window.RequestRedraw, typically one
// that sends a paint.Event.
func WithRedraw(fn func()) BridgeOption {
	return func(b *Bridge) {
		b.window.redraw = fn
	}
}

// NewBridge creates a bridge with its own holder and window.
func NewBridge(opts ...BridgeOption) *Bridge {
	b := &Bridge{
		holder: NewHolder(nil),
		window: &Window{},
		start:  time.Now(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Holder returns the surface holder to attach to.
func (b *Bridge) Holder() *Holder {
	return b.holder
}

// Window returns the window provider.
func (b *Bridge) Window() *Window {
	return b.window
}

// SetScreen sets the screen receiving lifecycle and touch events.
func (b *Bridge) SetScreen(s Screen) {
	b.screen = s
}

// Handle processes one event and reports whether it was recognized.
//
// Lifecycle: becoming visible creates the surface and becoming hidden
// destroys it; gaining focus resumes the screen and losing it pauses;
// leaving StageAlive destroys the screen. Size events resize the surface.
// Touch events become pointer events.
func (b *Bridge) Handle(e any) bool {
	switch e := e.(type) {
	case lifecycle.Event:
		b.lifecycle(e)
	case size.Event:
		b.window.sz = e
		b.holder.SetSize(e.WidthPx, e.HeightPx)
	case touch.Event:
		if b.screen != nil {
			b.screen.HandlePointer(b.pointer(e))
		}
	default:
		return false
	}
	return true
}

func (b *Bridge) lifecycle(e lifecycle.Event) {
	surfacehost.Logger().Debug("mobile: lifecycle", "from", e.From, "to", e.To)

	// Stages are crossed in order, so the cases below run in the order a
	// platform activity would see them.
	if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOn {
		b.holder.SetVisible(true)
	}
	switch e.Crosses(lifecycle.StageFocused) {
	case lifecycle.CrossOn:
		if b.screen != nil {
			b.screen.Resume()
		}
	case lifecycle.CrossOff:
		if b.screen != nil {
			b.screen.Pause()
		}
	}
	if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOff {
		b.holder.SetVisible(false)
	}
	if e.Crosses(lifecycle.StageAlive) == lifecycle.CrossOff && b.screen != nil {
		if err := b.screen.Destroy(); err != nil {
			surfacehost.Logger().Error("mobile: destroy failed", slog.Any("err", err))
		}
	}
}

func (b *Bridge) pointer(e touch.Event) gpucontext.PointerEvent {
	ev := gpucontext.PointerEvent{
		PointerID:   int(e.Sequence),
		X:           float64(e.X),
		Y:           float64(e.Y),
		PointerType: gpucontext.PointerTypeTouch,
		Width:       1,
		Height:      1,
		Timestamp:   time.Since(b.start),
	}
	switch e.Type {
	case touch.TypeBegin:
		if b.down == 0 {
			b.primary = e.Sequence
		}
		b.down++
		ev.Type = gpucontext.PointerDown
		ev.Pressure = 0.5
	case touch.TypeMove:
		ev.Type = gpucontext.PointerMove
		ev.Pressure = 0.5
	case touch.TypeEnd:
		b.down = max(0, b.down-1)
		ev.Type = gpucontext.PointerUp
	}
	ev.IsPrimary = e.Sequence == b.primary
	return ev
}
