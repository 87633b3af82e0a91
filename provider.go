// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surfacehost

import "github.com/gogpu/surfacehost/platform"

// provider is the capability set shared by the three surface sources.
type provider interface {
	kind() Kind

	// resize sets the size of the backing buffer.
	resize(width, height int) error

	// detach releases resources the provider itself owns.
	detach()
}

// directProvider wraps a SurfaceView. The holder has no separately
// releasable resource, so detach does nothing.
type directProvider struct {
	holder platform.SurfaceHolder
}

func (p *directProvider) kind() Kind { return KindDirect }

func (p *directProvider) resize(width, height int) error {
	p.holder.SetFixedSize(width, height)
	return nil
}

func (p *directProvider) detach() {}

// holderProvider wraps a bare SurfaceHolder.
type holderProvider struct {
	holder platform.SurfaceHolder
}

func (p *holderProvider) kind() Kind { return KindHolder }

func (p *holderProvider) resize(width, height int) error {
	p.holder.SetFixedSize(width, height)
	return nil
}

func (p *holderProvider) detach() {}

// textureProvider wraps a TextureView and owns the surface it creates from
// the view's SurfaceTexture.
type textureProvider struct {
	c       *Coordinator
	view    platform.TextureView
	surface platform.Surface
}

func (p *textureProvider) kind() Kind { return KindTexture }

// resize sets the texture's default buffer size. The texture does not
// report programmatic buffer changes, so OnResized is raised here, but only
// while a surface exists: without one there is no swap chain to resize.
func (p *textureProvider) resize(width, height int) error {
	if st := p.view.SurfaceTexture(); st != nil {
		st.SetDefaultBufferSize(width, height)
	}
	if p.surface == nil {
		return nil
	}
	return p.c.resized(width, height)
}

func (p *textureProvider) detach() {
	p.setSurface(nil)
}

// setSurface takes ownership of s, releasing the previously held surface.
func (p *textureProvider) setSurface(s platform.Surface) {
	if p.surface != nil && p.surface != s {
		p.surface.Release()
	}
	p.surface = s
}
