// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mobile

import (
	"image"
	"slices"

	"github.com/gogpu/surfacehost/platform"
	"github.com/gogpu/surfacehost/platform/headless"
)

// SurfaceFunc allocates a surface of the given pixel size.
type SurfaceFunc func(width, height int) platform.Surface

// Holder is a platform.SurfaceHolder whose surface exists while the app is
// visible and has a size.
type Holder struct {
	alloc     SurfaceFunc
	callbacks []platform.HolderCallback
	surface   platform.Surface
	format    platform.PixelFormat
	visible   bool
	width     int
	height    int
	fixedW    int
	fixedH    int
}

var _ platform.SurfaceHolder = (*Holder)(nil)

// NewHolder creates a holder. A nil alloc allocates in-memory surfaces.
func NewHolder(alloc SurfaceFunc) *Holder {
	if alloc == nil {
		alloc = func(w, h int) platform.Surface { return headless.NewSurface(w, h) }
	}
	return &Holder{alloc: alloc, format: platform.PixelFormatOpaque}
}

// AddCallback registers cb once.
func (h *Holder) AddCallback(cb platform.HolderCallback) {
	if !slices.Contains(h.callbacks, cb) {
		h.callbacks = append(h.callbacks, cb)
	}
}

// RemoveCallback unregisters cb.
func (h *Holder) RemoveCallback(cb platform.HolderCallback) {
	h.callbacks = slices.DeleteFunc(h.callbacks, func(c platform.HolderCallback) bool {
		return c == cb
	})
}

// SetFixedSize fixes the buffer size. It applies to the next surface.
func (h *Holder) SetFixedSize(width, height int) {
	h.fixedW, h.fixedH = width, height
}

// SetFormat records the pixel format.
func (h *Holder) SetFormat(format platform.PixelFormat) {
	h.format = format
}

// Format returns the pixel format.
func (h *Holder) Format() platform.PixelFormat {
	return h.format
}

// Surface returns the live surface or nil.
func (h *Holder) Surface() platform.Surface {
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
	return h.width, h.height
}

// SetVisible creates the surface when the app becomes visible with a known
// size and destroys it when the app is hidden.
func (h *Holder) SetVisible(visible bool) {
	if h.visible == visible {
		return
	}
	h.visible = visible
	if visible {
		h.maybeCreate()
		return
	}
	h.destroy()
}

// SetSize records the window size in pixels. A live surface is kept and
// reported as changed.
func (h *Holder) SetSize(width, height int) {
	if h.width == width && h.height == height {
		return
	}
	h.width, h.height = width, height
	if h.surface == nil {
		h.maybeCreate()
		return
	}
	h.notifyChanged()
}

func (h *Holder) maybeCreate() {
	if !h.visible || h.surface != nil || h.width <= 0 || h.height <= 0 {
		return
	}
	w, ht := h.bufferSize()
	h.surface = h.alloc(w, ht)
	for _, cb := range slices.Clone(h.callbacks) {
		cb.SurfaceCreated(h)
	}
	h.notifyChanged()
}

func (h *Holder) notifyChanged() {
	w, ht := h.bufferSize()
	for _, cb := range slices.Clone(h.callbacks) {
		cb.SurfaceChanged(h, h.format, w, ht)
	}
}

func (h *Holder) destroy() {
	if h.surface == nil {
		return
	}
	for _, cb := range slices.Clone(h.callbacks) {
		cb.SurfaceDestroyed(h)
	}
	h.surface.Release()
	h.surface = nil
}
