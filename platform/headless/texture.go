// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package headless

import "github.com/gogpu/surfacehost/platform"

// SurfaceTexture is an in-memory platform.SurfaceTexture.
type SurfaceTexture struct {
	bufW, bufH int
	surfaces   []*Surface
}

var _ platform.SurfaceTexture = (*SurfaceTexture)(nil)

// SetDefaultBufferSize sets the size of surfaces produced afterwards and
// reallocates the ones still alive.
func (st *SurfaceTexture) SetDefaultBufferSize(width, height int) {
	st.bufW, st.bufH = width, height
	for _, s := range st.surfaces {
		if !s.Released() {
			s.resize(width, height)
		}
	}
}

// DefaultBufferSize returns the size set with SetDefaultBufferSize.
func (st *SurfaceTexture) DefaultBufferSize() (width, height int) {
	return st.bufW, st.bufH
}

// NewSurface creates a surface producing into this texture.
func (st *SurfaceTexture) NewSurface() platform.Surface {
	s := NewSurface(st.bufW, st.bufH)
	st.surfaces = append(st.surfaces, s)
	return s
}

// Surfaces returns every surface created from this texture.
func (st *SurfaceTexture) Surfaces() []*Surface {
	return st.surfaces
}

// TextureView is an in-memory platform.TextureView.
//
// Show, Resize and Hide make the texture available, change its size and
// destroy it, notifying the listener.
type TextureView struct {
	listener platform.TextureListener
	texture  *SurfaceTexture
	opaque   bool
	width    int
	height   int
}

var _ platform.TextureView = (*TextureView)(nil)

// NewTextureView creates a view of the given size without a texture.
func NewTextureView(width, height int) *TextureView {
	return &TextureView{width: width, height: height, opaque: true}
}

// SetOpaque records the opacity hint.
func (v *TextureView) SetOpaque(opaque bool) {
	v.opaque = opaque
}

// IsOpaque returns the opacity hint.
func (v *TextureView) IsOpaque() bool {
	return v.opaque
}

// SetSurfaceTextureListener replaces the listener.
func (v *TextureView) SetSurfaceTextureListener(l platform.TextureListener) {
	v.listener = l
}

// Listener returns the current listener.
func (v *TextureView) Listener() platform.TextureListener {
	return v.listener
}

// IsAvailable reports whether the texture exists.
func (v *TextureView) IsAvailable() bool {
	return v.texture != nil
}

// SurfaceTexture returns the texture or nil.
func (v *TextureView) SurfaceTexture() platform.SurfaceTexture {
	if v.texture == nil {
		return nil
	}
	return v.texture
}

// HeadlessTexture returns the concrete texture or nil.
func (v *TextureView) HeadlessTexture() *SurfaceTexture {
	return v.texture
}

// Size returns the view size.
func (v *TextureView) Size() (width, height int) {
	return v.width, v.height
}

// Show creates the texture and notifies SurfaceTextureAvailable.
// No size-changed notification follows, matching the platform.
func (v *TextureView) Show() {
	if v.texture != nil {
		return
	}
	v.texture = &SurfaceTexture{bufW: v.width, bufH: v.height}
	if v.listener != nil {
		v.listener.SurfaceTextureAvailable(v.texture, v.width, v.height)
	}
}

// Resize changes the view size and notifies SurfaceTextureSizeChanged.
func (v *TextureView) Resize(width, height int) {
	v.width, v.height = width, height
	if v.texture == nil {
		return
	}
	v.texture.SetDefaultBufferSize(width, height)
	if v.listener != nil {
		v.listener.SurfaceTextureSizeChanged(v.texture, width, height)
	}
}

// Hide notifies SurfaceTextureDestroyed and drops the texture.
func (v *TextureView) Hide() {
	if v.texture == nil {
		return
	}
	st := v.texture
	v.texture = nil
	if v.listener != nil {
		v.listener.SurfaceTextureDestroyed(st)
	}
}

// Post notifies SurfaceTextureUpdated, as the compositor does after a frame.
func (v *TextureView) Post() {
	if v.texture != nil && v.listener != nil {
		v.listener.SurfaceTextureUpdated(v.texture)
	}
}
