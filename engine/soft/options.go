// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"github.com/gogpu/gg"
	"golang.org/x/text/language"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	size         int
	seed         uint64
	shuffleSteps int
	lang         language.Tag
	background   gg.RGBA
	tile         gg.RGBA
	placed       gg.RGBA
}

func defaultOptions() options {
	return options{
		size:         4,
		seed:         1,
		shuffleSteps: 200,
		lang:         language.English,
		background:   gg.Hex("#1b1e27"),
		tile:         gg.Hex("#3d6fb6"),
		placed:       gg.Hex("#3c9a5f"),
	}
}

// WithBoardSize sets the number of rows and columns. Default 4.
func WithBoardSize(n int) Option {
	return func(o *options) {
		o.size = n
	}
}

// WithSeed seeds the shuffle generator.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithShuffleSteps sets the number of random moves per Shuffle. Default 200.
func WithShuffleSteps(steps int) Option {
	return func(o *options) {
		if steps > 0 {
			o.shuffleSteps = steps
		}
	}
}

// WithLanguage sets the language used to format the status line.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
	}
}
