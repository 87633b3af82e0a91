// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import "errors"

var (
	// ErrOrderViolation is returned when an engine call breaks the
	// lifecycle order.
	ErrOrderViolation = errors.New("native: lifecycle order violation")

	// ErrNotInitialized is returned for any call made before Init.
	ErrNotInitialized = errors.New("native: engine not initialized")

	// ErrDestroyed is returned for any call made after Destroy.
	ErrDestroyed = errors.New("native: engine destroyed")

	// ErrUnknownEngine is returned by New for an unregistered name.
	ErrUnknownEngine = errors.New("native: unknown engine")
)
