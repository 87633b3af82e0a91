// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import "errors"

var (
	// ErrUnsupportedSurface is returned when the surface cannot be locked
	// for CPU drawing.
	ErrUnsupportedSurface = errors.New("soft: surface does not support canvas locking")

	// ErrInvalidDimensions is returned for a negative window size.
	ErrInvalidDimensions = errors.New("soft: invalid dimensions")

	// ErrInvalidProgram is returned when the tile program does not compile
	// or lacks the expected entry points and uniform.
	ErrInvalidProgram = errors.New("soft: invalid tile program")

	// ErrNotInitialized is returned when drawing resources are missing.
	ErrNotInitialized = errors.New("soft: engine not initialized")
)
