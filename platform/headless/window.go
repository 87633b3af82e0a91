// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless implements the platform primitives in memory.
//
// It backs the tilehost binary and the tests: surfaces are *image.RGBA
// buffers, and the create/change/destroy notifications a window system
// would send are triggered explicitly.
//
//	view := headless.NewSurfaceView()
//	coord.AttachTo(surfacehost.Direct(view))
//	view.HeadlessHolder().Create(1080, 1872) // SurfaceCreated + SurfaceChanged
//
// Nothing in this package is safe for concurrent use.
package headless

import (
	"image"
	"math"

	"github.com/gogpu/gpucontext"
)

// Window describes the display area hosting the views.
// It implements gpucontext.WindowProvider.
type Window struct {
	// W and H are the full visible display size in pixels.
	W, H int

	// ChromeHeight is the height taken by platform toolbars above the
	// content area.
	ChromeHeight int

	// Scale is the device pixel ratio. Zero means 1.
	Scale float64

	redraws int
}

var _ gpucontext.WindowProvider = (*Window)(nil)

// Size returns the visible display size in logical points.
func (w *Window) Size() (int, int) {
	s := w.ScaleFactor()
	return int(math.Round(float64(w.W) / s)), int(math.Round(float64(w.H) / s))
}

// ScaleFactor returns the device pixel ratio.
func (w *Window) ScaleFactor() float64 {
	if w.Scale == 0 {
		return 1
	}
	return w.Scale
}

// RequestRedraw counts redraw requests.
func (w *Window) RequestRedraw() {
	w.redraws++
}

// Redraws returns the number of redraw requests.
func (w *Window) Redraws() int {
	return w.redraws
}

// ContentBounds returns the area left for content below the chrome.
func (w *Window) ContentBounds() image.Rectangle {
	return image.Rect(0, w.ChromeHeight, w.W, w.H)
}
