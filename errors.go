// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surfacehost

import "errors"

// Common errors returned by Coordinator operations.
var (
	// ErrMissingCallback is returned when a lifecycle operation needs the
	// render callback and none is registered.
	ErrMissingCallback = errors.New("surfacehost: no render callback registered")

	// ErrInvalidTarget is returned when attaching a zero Target or one built
	// from a nil platform object.
	ErrInvalidTarget = errors.New("surfacehost: invalid attach target")

	// ErrInvalidDimensions is returned when a desired size is negative.
	ErrInvalidDimensions = errors.New("surfacehost: invalid dimensions")
)
