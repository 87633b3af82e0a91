// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surfacehost

import "github.com/gogpu/surfacehost/platform"

// RenderCallback is notified when the native surface is created, resized
// or goes away.
//
// Implementations are typically a thin layer over the engine's swap chain:
//
//	type screen struct {
//	    coord  *surfacehost.Coordinator
//	    engine native.Engine
//	}
//
//	func (s *screen) OnNativeWindowChanged(surf platform.Surface) error {
//	    return s.engine.CreateSwapChain(surf, s.coord.SwapChainConfig())
//	}
type RenderCallback interface {
	// OnNativeWindowChanged is called when a new native surface is ready.
	// IsReadyToRender still reports the previous state during this call.
	OnNativeWindowChanged(surface platform.Surface) error

	// OnResized is called when the surface size changes. It is always
	// called at least once after OnNativeWindowChanged.
	OnResized(width, height int) error

	// OnDetachedFromSurface is called when the surface is going away,
	// from Detach or because the platform destroyed it. Drawing must have
	// stopped when it returns; IsReadyToRender reports false afterwards.
	OnDetachedFromSurface() error
}

// RenderCallbackFuncs adapts plain functions to RenderCallback.
// Nil fields are treated as no-ops.
type RenderCallbackFuncs struct {
	NativeWindowChanged func(surface platform.Surface) error
	Resized             func(width, height int) error
	DetachedFromSurface func() error
}

var _ RenderCallback = RenderCallbackFuncs{}

// OnNativeWindowChanged calls f.NativeWindowChanged.
func (f RenderCallbackFuncs) OnNativeWindowChanged(surface platform.Surface) error {
	if f.NativeWindowChanged == nil {
		return nil
	}
	return f.NativeWindowChanged(surface)
}

// OnResized calls f.Resized.
func (f RenderCallbackFuncs) OnResized(width, height int) error {
	if f.Resized == nil {
		return nil
	}
	return f.Resized(width, height)
}

// OnDetachedFromSurface calls f.DetachedFromSurface.
func (f RenderCallbackFuncs) OnDetachedFromSurface() error {
	if f.DetachedFromSurface == nil {
		return nil
	}
	return f.DetachedFromSurface()
}
