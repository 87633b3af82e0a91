// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platform declares the windowing primitives surfacehost binds to.
//
// The interfaces mirror the three drawable constructs a mobile windowing
// system offers:
//
//   - SurfaceView: a dedicated surface with its own SurfaceHolder
//   - SurfaceHolder: a bare holder, e.g. one handed out by a native activity
//   - TextureView: a view whose content is a SurfaceTexture
//
// Implementations are expected to deliver every notification on the UI
// goroutine. Values passed to surfacehost as attach targets must be
// comparable (pointer types in practice), because the coordinator compares
// them to detect re-attachment of the same object.
//
// See package headless for an in-memory implementation.
package platform

import (
	"image"
	"image/draw"
)

// PixelFormat is the pixel format requested for a holder's surface.
type PixelFormat int

const (
	// PixelFormatOpaque requests a surface without an alpha channel.
	PixelFormatOpaque PixelFormat = -1

	// PixelFormatTranslucent requests a surface with an alpha channel.
	PixelFormatTranslucent PixelFormat = -3
)

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatOpaque:
		return "Opaque"
	case PixelFormatTranslucent:
		return "Translucent"
	default:
		return "Unknown"
	}
}

// Surface is a native window handle a swap chain can be created on.
type Surface interface {
	// IsValid reports whether the surface can currently be rendered into.
	IsValid() bool

	// Release frees the surface. Release is idempotent.
	Release()
}

// Lockable is an optional interface for surfaces that expose their buffer
// to software rendering.
type Lockable interface {
	Surface

	// LockCanvas returns the back buffer. The buffer must not be retained
	// after UnlockCanvasAndPost.
	LockCanvas() (draw.Image, error)

	// UnlockCanvasAndPost queues the locked buffer for display.
	UnlockCanvasAndPost() error
}

// HolderCallback receives surface notifications from a SurfaceHolder.
type HolderCallback interface {
	// SurfaceCreated is called once the holder's surface becomes valid.
	SurfaceCreated(h SurfaceHolder)

	// SurfaceChanged is called after any structural change. It is always
	// called at least once after SurfaceCreated.
	SurfaceChanged(h SurfaceHolder, format PixelFormat, width, height int)

	// SurfaceDestroyed is called before the surface is invalidated.
	SurfaceDestroyed(h SurfaceHolder)
}

// SurfaceHolder owns a surface and reports its lifecycle.
type SurfaceHolder interface {
	AddCallback(cb HolderCallback)
	RemoveCallback(cb HolderCallback)

	// SetFixedSize fixes the buffer size independently of the view size.
	SetFixedSize(width, height int)

	SetFormat(format PixelFormat)

	// Surface returns the current surface, or nil if none exists yet.
	Surface() Surface

	// SurfaceFrame returns the current surface dimensions.
	SurfaceFrame() image.Rectangle
}

// SurfaceView is a view backed by a dedicated surface.
type SurfaceView interface {
	Holder() SurfaceHolder

	// SetZOrderOnTop places the surface above the window when true.
	SetZOrderOnTop(onTop bool)

	// SetZOrderMediaOverlay places the surface above other surfaces but
	// below the window when true. It overrides SetZOrderOnTop and vice versa.
	SetZOrderMediaOverlay(overlay bool)
}

// SurfaceTexture is the image stream behind a TextureView.
type SurfaceTexture interface {
	// SetDefaultBufferSize sets the size of buffers produced for the
	// texture. It does not trigger a size-changed notification.
	SetDefaultBufferSize(width, height int)

	// NewSurface creates a surface producing into this texture. The caller
	// owns the result and must release it.
	NewSurface() Surface
}

// TextureListener receives notifications from a TextureView.
type TextureListener interface {
	SurfaceTextureAvailable(st SurfaceTexture, width, height int)
	SurfaceTextureSizeChanged(st SurfaceTexture, width, height int)

	// SurfaceTextureDestroyed returns true if the view may release the
	// texture itself.
	SurfaceTextureDestroyed(st SurfaceTexture) bool

	SurfaceTextureUpdated(st SurfaceTexture)
}

// TextureView is a view that renders its content from a SurfaceTexture.
type TextureView interface {
	SetOpaque(opaque bool)

	// SetSurfaceTextureListener replaces the listener; nil removes it.
	SetSurfaceTextureListener(l TextureListener)

	// IsAvailable reports whether the surface texture already exists.
	IsAvailable() bool

	// SurfaceTexture returns the texture, or nil if not available.
	SurfaceTexture() SurfaceTexture

	// Size returns the view size in pixels.
	Size() (width, height int)
}
