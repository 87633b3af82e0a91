// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/surfacehost"
	"github.com/gogpu/surfacehost/frameloop"
	"github.com/gogpu/surfacehost/native"
	"github.com/gogpu/surfacehost/platform"
)

var (
	// ErrDestroyed is returned by Create after Destroy.
	ErrDestroyed = errors.New("host: screen destroyed")

	// ErrFailed is returned for surfaces offered after a fatal error.
	ErrFailed = errors.New("host: screen failed")
)

// Screen owns the lifecycle of one rendering surface.
//
// Screen is NOT safe for concurrent use. All calls, surface notifications,
// frame callbacks and pointer events must arrive on the UI goroutine.
type Screen struct {
	coord   *surfacehost.Coordinator
	engine  *native.Guard
	driver  *frameloop.Driver
	window  gpucontext.WindowProvider
	onError func(error)

	paused    bool
	destroyed bool
	err       error
	done      chan struct{}
}

var _ surfacehost.RenderCallback = (*Screen)(nil)

// New creates a screen driving engine with frames from sched. Engine calls
// are checked for lifecycle order.
func New(engine native.Engine, sched frameloop.Scheduler, opts ...Option) *Screen {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	s := &Screen{
		engine:  native.NewGuard(engine, o.policy),
		window:  o.window,
		onError: o.onError,
		done:    make(chan struct{}),
	}
	s.driver = frameloop.New(s.engine, sched, frameloop.WithErrorHandler(s.fail))

	copts := append([]surfacehost.Option{
		surfacehost.WithErrorPolicy(o.policy),
		surfacehost.WithRenderCallback(s),
		surfacehost.WithErrorHandler(s.fail),
	}, o.surface...)
	s.coord = surfacehost.New(copts...)
	return s
}

// Coordinator returns the surface coordinator.
func (s *Screen) Coordinator() *surfacehost.Coordinator {
	return s.coord
}

// Driver returns the frame loop driver.
func (s *Screen) Driver() *frameloop.Driver {
	return s.driver
}

// Engine returns the order-checked engine.
func (s *Screen) Engine() *native.Guard {
	return s.engine
}

// Create initializes the engine with assets and attaches to target. The
// engine is initialized first, so a surface that is already live is handed
// to an initialized engine.
func (s *Screen) Create(assets fs.FS, target surfacehost.Target) error {
	if s.destroyed {
		return ErrDestroyed
	}
	if err := s.engine.Init(assets); err != nil {
		return fmt.Errorf("host: init engine: %w", err)
	}
	surfacehost.Logger().Info("host: screen created", "kind", target.Kind())
	return s.coord.AttachTo(target)
}

// OnNativeWindowChanged replaces the engine's swap chain, configured from
// the coordinator's options, and starts the frame loop unless the screen
// is paused. After a fatal error it refuses the surface.
func (s *Screen) OnNativeWindowChanged(surface platform.Surface) error {
	if s.err != nil {
		return fmt.Errorf("%w: %w", ErrFailed, s.err)
	}
	if s.engine.HasSwapChain() {
		if err := s.engine.DestroySwapChain(); err != nil {
			return err
		}
	}
	if err := s.engine.CreateSwapChain(surface, s.coord.SwapChainConfig()); err != nil {
		return err
	}
	if !s.paused {
		s.driver.Resume()
	}
	return nil
}

// OnResized forwards the size to the engine and updates the pointer
// correction. Sizes arriving without a swap chain are dropped.
func (s *Screen) OnResized(width, height int) error {
	if s.err != nil || !s.engine.HasSwapChain() {
		return nil
	}
	if err := s.engine.ResizeWindow(width, height); err != nil {
		return err
	}
	if s.window != nil {
		_, h := s.window.Size()
		visible := int(math.Round(float64(h) * s.window.ScaleFactor()))
		s.driver.UpdateChromeOffset(visible, height)
	}
	return nil
}

// OnDetachedFromSurface destroys the engine's swap chain and pauses the
// frame loop.
func (s *Screen) OnDetachedFromSurface() error {
	s.driver.Pause()
	if s.engine.HasSwapChain() {
		return s.engine.DestroySwapChain()
	}
	return nil
}

// Resume restarts the frame loop if a swap chain exists.
func (s *Screen) Resume() {
	s.paused = false
	if s.coord.IsReadyToRender() {
		s.driver.Resume()
	}
}

// Pause stops the frame loop. The surface stays attached.
func (s *Screen) Pause() {
	s.paused = true
	s.driver.Pause()
}

// HandlePointer forwards a pointer event to the engine.
func (s *Screen) HandlePointer(ev gpucontext.PointerEvent) bool {
	return s.driver.HandlePointer(ev)
}

// Shuffle forwards the shuffle command to the engine.
func (s *Screen) Shuffle() error {
	if s.destroyed {
		return ErrDestroyed
	}
	return s.engine.Shuffle()
}

// Destroy stops the frame loop, detaches from the surface and destroys the
// engine, in that order. Calling it twice does nothing.
func (s *Screen) Destroy() error {
	if s.destroyed {
		return nil
	}
	s.destroyed = true
	s.driver.Destroy()

	var errs []error
	if err := s.coord.Detach(); err != nil {
		errs = append(errs, err)
	}
	if s.engine.Initialized() {
		if err := s.engine.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	s.finish()
	surfacehost.Logger().Info("host: screen destroyed")
	return errors.Join(errs...)
}

// Err returns the first fatal error, or nil.
func (s *Screen) Err() error {
	return s.err
}

// Done is closed when the screen is destroyed or fails.
func (s *Screen) Done() <-chan struct{} {
	return s.done
}

func (s *Screen) fail(err error) {
	if s.err != nil {
		return
	}
	s.err = err
	surfacehost.Logger().Error("host: fatal error", slog.Any("err", err))
	s.driver.Destroy()
	s.finish()
	if s.onError != nil {
		s.onError(err)
	}
}

func (s *Screen) finish() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}
