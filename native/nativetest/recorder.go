// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package nativetest provides a recording native.Engine for tests.
package nativetest

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/surfacehost/native"
	"github.com/gogpu/surfacehost/platform"
)

// Recorder is a native.Engine that records every call as a string such as
// "init", "create", "resize 800x600", "loop 16000000", "touch Down 100,202".
//
// Fail makes the named call (the first word of its record) return Err.
type Recorder struct {
	Calls   []string
	Surface platform.Surface
	Config  gputypes.SurfaceConfiguration
	Assets  fs.FS

	Fail string
	Err  error
}

var _ native.Engine = (*Recorder)(nil)

func (r *Recorder) record(name, format string, args ...any) error {
	call := name
	if format != "" {
		call += " " + fmt.Sprintf(format, args...)
	}
	r.Calls = append(r.Calls, call)
	if r.Fail == name {
		if r.Err != nil {
			return r.Err
		}
		return fmt.Errorf("nativetest: %s failed", name)
	}
	return nil
}

// Reset clears the recorded calls.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Count returns how many recorded calls start with name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c == name || strings.HasPrefix(c, name+" ") {
			n++
		}
	}
	return n
}

// Init records "init".
func (r *Recorder) Init(assets fs.FS) error {
	r.Assets = assets
	return r.record("init", "")
}

// Destroy records "destroy".
func (r *Recorder) Destroy() error {
	return r.record("destroy", "")
}

// CreateSwapChain records "create".
func (r *Recorder) CreateSwapChain(surface platform.Surface, config gputypes.SurfaceConfiguration) error {
	r.Surface = surface
	r.Config = config
	return r.record("create", "")
}

// DestroySwapChain records "destroyswapchain".
func (r *Recorder) DestroySwapChain() error {
	r.Surface = nil
	return r.record("destroyswapchain", "")
}

// ResizeWindow records "resize WxH".
func (r *Recorder) ResizeWindow(width, height int) error {
	return r.record("resize", "%dx%d", width, height)
}

// GameLoop records "loop T".
func (r *Recorder) GameLoop(frameTimeNanos int64) error {
	return r.record("loop", "%d", frameTimeNanos)
}

// TouchAction records "touch Action X,Y".
func (r *Recorder) TouchAction(action native.Action, x, y float32) error {
	return r.record("touch", "%s %g,%g", action, x, y)
}

// Shuffle records "shuffle".
func (r *Recorder) Shuffle() error {
	return r.record("shuffle", "")
}
