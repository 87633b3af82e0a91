// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"io/fs"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/surfacehost/platform"
)

// Engine is the native rendering engine.
//
// The host calls Init once before anything else and Destroy once at the
// end. Swap-chain and frame calls happen in between, on the UI goroutine.
type Engine interface {
	// Init initializes the engine with the application's assets.
	Init(assets fs.FS) error

	// Destroy releases every engine resource. No swap chain may exist.
	Destroy() error

	// CreateSwapChain binds the engine to a native surface. config carries
	// the alpha mode, present mode and, when non-zero, the buffer size the
	// host asked for.
	CreateSwapChain(surface platform.Surface, config gputypes.SurfaceConfiguration) error

	// DestroySwapChain releases the swap chain. Calling it without a swap
	// chain is allowed.
	DestroySwapChain() error

	// ResizeWindow sets the drawable size in pixels.
	ResizeWindow(width, height int) error

	// GameLoop advances and renders one frame. frameTimeNanos is the
	// monotonic vsync timestamp.
	GameLoop(frameTimeNanos int64) error

	// TouchAction delivers a pointer action in surface coordinates.
	TouchAction(action Action, x, y float32) error

	// Shuffle triggers the engine's shuffle command.
	Shuffle() error
}

// Action is the kind of a pointer action.
type Action uint8

const (
	// ActionDown is a pointer press.
	ActionDown Action = iota

	// ActionMove is a pointer movement while pressed.
	ActionMove

	// ActionUp is a pointer release.
	ActionUp
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionDown:
		return "Down"
	case ActionMove:
		return "Move"
	case ActionUp:
		return "Up"
	default:
		return "Unknown"
	}
}
