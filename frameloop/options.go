// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frameloop

// Option configures a Driver.
type Option func(*options)

type options struct {
	onError      func(error)
	chromeOffset int
}

// WithErrorHandler receives the engine error that stopped the loop.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithChromeOffset sets the initial vertical pointer correction.
func WithChromeOffset(offset int) Option {
	return func(o *options) {
		o.chromeOffset = max(0, offset)
	}
}
