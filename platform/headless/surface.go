// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package headless

import (
	"errors"
	"image"
	"image/draw"

	"github.com/gogpu/surfacehost/platform"
)

// Surface errors.
var (
	// ErrSurfaceReleased is returned when locking a released surface.
	ErrSurfaceReleased = errors.New("headless: surface released")

	// ErrNotLocked is returned by UnlockCanvasAndPost without a prior lock.
	ErrNotLocked = errors.New("headless: surface not locked")

	// ErrAlreadyLocked is returned when locking a surface twice.
	ErrAlreadyLocked = errors.New("headless: surface already locked")
)

// Surface is an in-memory platform.Lockable backed by an *image.RGBA.
//
// Posting copies the back buffer to the front buffer, which Snapshot reads.
type Surface struct {
	back     *image.RGBA
	front    *image.RGBA
	locked   bool
	released bool
	posts    int
}

var _ platform.Lockable = (*Surface)(nil)

// NewSurface creates a surface with buffers of the given size.
// Non-positive dimensions are clamped to 1.
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.resize(width, height)
	return s
}

func (s *Surface) resize(width, height int) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	r := image.Rect(0, 0, width, height)
	s.back = image.NewRGBA(r)
	s.front = image.NewRGBA(r)
}

// IsValid reports whether the surface has not been released.
func (s *Surface) IsValid() bool {
	return !s.released
}

// Release frees the buffers. Release is idempotent.
func (s *Surface) Release() {
	s.released = true
	s.locked = false
}

// Released reports whether Release has been called.
func (s *Surface) Released() bool {
	return s.released
}

// LockCanvas returns the back buffer.
func (s *Surface) LockCanvas() (draw.Image, error) {
	if s.released {
		return nil, ErrSurfaceReleased
	}
	if s.locked {
		return nil, ErrAlreadyLocked
	}
	s.locked = true
	return s.back, nil
}

// UnlockCanvasAndPost publishes the back buffer.
func (s *Surface) UnlockCanvasAndPost() error {
	if !s.locked {
		return ErrNotLocked
	}
	s.locked = false
	copy(s.front.Pix, s.back.Pix)
	s.posts++
	return nil
}

// Posts returns the number of buffers posted so far.
func (s *Surface) Posts() int {
	return s.posts
}

// Bounds returns the buffer bounds.
func (s *Surface) Bounds() image.Rectangle {
	return s.front.Bounds()
}

// Snapshot returns a copy of the last posted buffer.
func (s *Surface) Snapshot() *image.RGBA {
	img := image.NewRGBA(s.front.Bounds())
	copy(img.Pix, s.front.Pix)
	return img
}
