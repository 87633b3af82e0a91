// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/surfacehost"
	"github.com/gogpu/surfacehost/platform"
)

// Guard wraps an Engine and enforces the lifecycle order:
//
//   - Init comes first and only once
//   - a swap chain is created only when none exists
//   - every create is followed by ResizeWindow before the next frame
//   - ResizeWindow needs a swap chain
//   - Destroy needs the swap chain to be gone
//   - nothing follows Destroy
//
// A call that breaks the order is not forwarded. Under surfacehost.PolicyCheck
// it panics with an error wrapping ErrOrderViolation; under
// surfacehost.PolicyDontCheck the error is logged and returned.
//
// Guard is NOT safe for concurrent use.
type Guard struct {
	engine Engine
	policy surfacehost.ErrorPolicy

	initialized  bool
	destroyed    bool
	hasSwapChain bool
	needsResize  bool
}

var _ Engine = (*Guard)(nil)

// NewGuard wraps e.
func NewGuard(e Engine, policy surfacehost.ErrorPolicy) *Guard {
	return &Guard{engine: e, policy: policy}
}

// Engine returns the wrapped engine.
func (g *Guard) Engine() Engine {
	return g.engine
}

// HasSwapChain reports whether the engine currently holds a swap chain.
func (g *Guard) HasSwapChain() bool {
	return g.hasSwapChain
}

// Initialized reports whether Init succeeded and Destroy was not called.
func (g *Guard) Initialized() bool {
	return g.initialized && !g.destroyed
}

// violation reports a call that breaks the order. cause, when not nil,
// is wrapped alongside ErrOrderViolation; otherwise detail describes it.
func (g *Guard) violation(call string, cause error, detail string) error {
	var err error
	if cause != nil {
		err = fmt.Errorf("%w: %s: %w", ErrOrderViolation, call, cause)
	} else {
		err = fmt.Errorf("%w: %s: %s", ErrOrderViolation, call, detail)
	}
	surfacehost.Logger().Error("native: call out of order", "call", call, slog.Any("err", err))
	if g.policy == surfacehost.PolicyCheck {
		panic(err)
	}
	return err
}

// live checks the calls that need an initialized, not yet destroyed engine.
func (g *Guard) live(call string) error {
	if g.destroyed {
		return g.violation(call, ErrDestroyed, "")
	}
	if !g.initialized {
		return g.violation(call, ErrNotInitialized, "")
	}
	return nil
}

// Init forwards to the engine once.
func (g *Guard) Init(assets fs.FS) error {
	if g.destroyed {
		return g.violation("Init", ErrDestroyed, "")
	}
	if g.initialized {
		return g.violation("Init", nil, "already initialized")
	}
	if err := g.engine.Init(assets); err != nil {
		return err
	}
	g.initialized = true
	return nil
}

// Destroy forwards to the engine once the swap chain is gone.
func (g *Guard) Destroy() error {
	if err := g.live("Destroy"); err != nil {
		return err
	}
	if g.hasSwapChain {
		return g.violation("Destroy", nil, "swap chain still exists")
	}
	g.destroyed = true
	return g.engine.Destroy()
}

// CreateSwapChain forwards to the engine when no swap chain exists.
func (g *Guard) CreateSwapChain(surface platform.Surface, config gputypes.SurfaceConfiguration) error {
	if err := g.live("CreateSwapChain"); err != nil {
		return err
	}
	if g.hasSwapChain {
		return g.violation("CreateSwapChain", nil, "swap chain already exists")
	}
	if err := g.engine.CreateSwapChain(surface, config); err != nil {
		return err
	}
	g.hasSwapChain = true
	g.needsResize = true
	return nil
}

// DestroySwapChain forwards to the engine. It is allowed without a swap chain.
func (g *Guard) DestroySwapChain() error {
	if err := g.live("DestroySwapChain"); err != nil {
		return err
	}
	g.hasSwapChain = false
	g.needsResize = false
	return g.engine.DestroySwapChain()
}

// ResizeWindow forwards to the engine when a swap chain exists.
func (g *Guard) ResizeWindow(width, height int) error {
	if err := g.live("ResizeWindow"); err != nil {
		return err
	}
	if !g.hasSwapChain {
		return g.violation("ResizeWindow", nil, "no swap chain")
	}
	if err := g.engine.ResizeWindow(width, height); err != nil {
		return err
	}
	g.needsResize = false
	return nil
}

// GameLoop forwards to the engine unless a new swap chain is still unsized.
func (g *Guard) GameLoop(frameTimeNanos int64) error {
	if err := g.live("GameLoop"); err != nil {
		return err
	}
	if g.needsResize {
		return g.violation("GameLoop", nil, "swap chain created but never resized")
	}
	return g.engine.GameLoop(frameTimeNanos)
}

// TouchAction forwards to the engine.
func (g *Guard) TouchAction(action Action, x, y float32) error {
	if err := g.live("TouchAction"); err != nil {
		return err
	}
	return g.engine.TouchAction(action, x, y)
}

// Shuffle forwards to the engine.
func (g *Guard) Shuffle() error {
	if err := g.live("Shuffle"); err != nil {
		return err
	}
	return g.engine.Shuffle()
}
