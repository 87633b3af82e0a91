// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package headless

import (
	"image"
	"slices"

	"github.com/gogpu/surfacehost/platform"
)

// Holder is an in-memory platform.SurfaceHolder.
//
// The surface is created, resized and destroyed on demand with Create,
// Resize and Destroy, which notify every registered callback the way a
// window system would.
type Holder struct {
	callbacks []platform.HolderCallback
	surface   *Surface
	format    platform.PixelFormat
	fixedW    int
	fixedH    int
	viewW     int
	viewH     int
}

var _ platform.SurfaceHolder = (*Holder)(nil)

// NewHolder creates a holder without a surface.
func NewHolder() *Holder {
	return &Holder{format: platform.PixelFormatOpaque}
}

// AddCallback registers cb. Adding the same callback twice is a no-op.
func (h *Holder) AddCallback(cb platform.HolderCallback) {
	if slices.Contains(h.callbacks, cb) {
		return
	}
	h.callbacks = append(h.callbacks, cb)
}

// RemoveCallback unregisters cb.
func (h *Holder) RemoveCallback(cb platform.HolderCallback) {
	h.callbacks = slices.DeleteFunc(h.callbacks, func(c platform.HolderCallback) bool {
		return c == cb
	})
}

// Callbacks returns the number of registered callbacks.
func (h *Holder) Callbacks() int {
	return len(h.callbacks)
}

// SetFixedSize fixes the buffer size. A live surface is reallocated; the
// change is reported with the next Resize, as a window system would on its
// next layout pass.
func (h *Holder) SetFixedSize(width, height int) {
	if h.fixedW == width && h.fixedH == height {
		return
	}
	h.fixedW, h.fixedH = width, height
	if h.surface != nil {
		h.reallocate()
	}
}

// FixedSize returns the size set with SetFixedSize.
func (h *Holder) FixedSize() (width, height int) {
	return h.fixedW, h.fixedH
}

// SetFormat records the requested pixel format.
func (h *Holder) SetFormat(format platform.PixelFormat) {
	h.format = format
}

// Format returns the requested pixel format.
func (h *Holder) Format() platform.PixelFormat {
	return h.format
}

// Surface returns the live surface or nil.
func (h *Holder) Surface() platform.Surface {
	if h.surface == nil {
		return nil
	}
	return h.surface
}

// HeadlessSurface returns the concrete live surface or nil.
func (h *Holder) HeadlessSurface() *Surface {
	return h.surface
}

// SurfaceFrame returns the buffer dimensions.
func (h *Holder) SurfaceFrame() image.Rectangle {
	w, ht := h.bufferSize()
	return image.Rect(0, 0, w, ht)
}

func (h *Holder) bufferSize() (int, int) {
	if h.fixedW > 0 && h.fixedH > 0 {
		return h.fixedW, h.fixedH
	}
	return h.viewW, h.viewH
}

func (h *Holder) reallocate() {
	w, ht := h.bufferSize()
	h.surface.resize(w, ht)
}

// Create allocates a surface for a view of the given size and notifies
// SurfaceCreated followed by SurfaceChanged. It is a no-op if a surface
// already exists.
func (h *Holder) Create(width, height int) {
	if h.surface != nil {
		return
	}
	h.viewW, h.viewH = width, height
	w, ht := h.bufferSize()
	h.surface = NewSurface(w, ht)
	for _, cb := range slices.Clone(h.callbacks) {
		cb.SurfaceCreated(h)
	}
	h.notifyChanged()
}

// Resize changes the view size and notifies SurfaceChanged.
func (h *Holder) Resize(width, height int) {
	h.viewW, h.viewH = width, height
	if h.surface == nil {
		return
	}
	h.reallocate()
	h.notifyChanged()
}

// Destroy notifies SurfaceDestroyed and releases the surface.
func (h *Holder) Destroy() {
	if h.surface == nil {
		return
	}
	for _, cb := range slices.Clone(h.callbacks) {
		cb.SurfaceDestroyed(h)
	}
	h.surface.Release()
	h.surface = nil
}

func (h *Holder) notifyChanged() {
	w, ht := h.bufferSize()
	for _, cb := range slices.Clone(h.callbacks) {
		cb.SurfaceChanged(h, h.format, w, ht)
	}
}

// SurfaceView is an in-memory platform.SurfaceView.
type SurfaceView struct {
	holder       *Holder
	onTop        bool
	mediaOverlay bool
}

var _ platform.SurfaceView = (*SurfaceView)(nil)

// NewSurfaceView creates a view with its own holder.
func NewSurfaceView() *SurfaceView {
	return &SurfaceView{holder: NewHolder()}
}

// Holder returns the view's holder.
func (v *SurfaceView) Holder() platform.SurfaceHolder {
	return v.holder
}

// HeadlessHolder returns the concrete holder.
func (v *SurfaceView) HeadlessHolder() *Holder {
	return v.holder
}

// SetZOrderOnTop places the surface above the window.
func (v *SurfaceView) SetZOrderOnTop(onTop bool) {
	v.onTop = onTop
	v.mediaOverlay = false
}

// SetZOrderMediaOverlay places the surface above other surfaces.
func (v *SurfaceView) SetZOrderMediaOverlay(overlay bool) {
	v.mediaOverlay = overlay
	v.onTop = false
}

// ZOrder returns the z-order flags.
func (v *SurfaceView) ZOrder() (onTop, mediaOverlay bool) {
	return v.onTop, v.mediaOverlay
}
