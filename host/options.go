// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/surfacehost"
)

// Option configures a Screen.
type Option func(*options)

type options struct {
	policy  surfacehost.ErrorPolicy
	window  gpucontext.WindowProvider
	surface []surfacehost.Option
	onError func(error)
}

// WithErrorPolicy sets how engine call-order violations are handled.
func WithErrorPolicy(p surfacehost.ErrorPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithWindow sets the window whose visible height, compared with the
// surface height, gives the pointer chrome offset.
func WithWindow(w gpucontext.WindowProvider) Option {
	return func(o *options) {
		o.window = w
	}
}

// WithSurfaceOptions passes options to the surface coordinator.
func WithSurfaceOptions(opts ...surfacehost.Option) Option {
	return func(o *options) {
		o.surface = append(o.surface, opts...)
	}
}

// WithErrorHandler is called once with the first fatal error.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
