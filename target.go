// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surfacehost

import "github.com/gogpu/surfacehost/platform"

// Kind identifies the surface provider a Coordinator is bound to.
type Kind uint8

const (
	// KindNone means nothing is attached.
	KindNone Kind = iota

	// KindDirect is a platform.SurfaceView.
	KindDirect

	// KindTexture is a platform.TextureView.
	KindTexture

	// KindHolder is a bare platform.SurfaceHolder.
	KindHolder
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindDirect:
		return "Direct"
	case KindTexture:
		return "Texture"
	case KindHolder:
		return "Holder"
	default:
		return "Unknown"
	}
}

// Target is a platform surface source to attach to: one of Direct, Texture
// or Holder. The zero Target is invalid.
type Target struct {
	kind    Kind
	view    platform.SurfaceView
	texture platform.TextureView
	holder  platform.SurfaceHolder
}

// Direct targets a view backed by a dedicated surface.
func Direct(view platform.SurfaceView) Target {
	return Target{kind: KindDirect, view: view}
}

// Texture targets a texture-backed view.
func Texture(view platform.TextureView) Target {
	return Target{kind: KindTexture, texture: view}
}

// Holder targets a bare surface holder.
func Holder(holder platform.SurfaceHolder) Target {
	return Target{kind: KindHolder, holder: holder}
}

// Kind returns the provider kind.
func (t Target) Kind() Kind {
	return t.kind
}

// object returns the platform object the target wraps, used for identity,
// or nil if the target is invalid.
func (t Target) object() any {
	switch t.kind {
	case KindDirect:
		if t.view != nil {
			return t.view
		}
	case KindTexture:
		if t.texture != nil {
			return t.texture
		}
	case KindHolder:
		if t.holder != nil {
			return t.holder
		}
	}
	return nil
}
