// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import "math/rand/v2"

// Board is a sliding tile puzzle. Tiles are numbered 1..n*n-1 and 0 is the
// blank. The solved board has the tiles in order with the blank last.
type Board struct {
	n     int
	tiles []int
	blank int
	moves int
}

// NewBoard creates a solved n×n board. n is at least 2.
func NewBoard(n int) *Board {
	n = max(2, n)
	b := &Board{n: n, tiles: make([]int, n*n)}
	b.Reset()
	return b
}

// Reset restores the solved order and clears the move counter.
func (b *Board) Reset() {
	for i := range b.tiles {
		b.tiles[i] = i + 1
	}
	b.blank = len(b.tiles) - 1
	b.tiles[b.blank] = 0
	b.moves = 0
}

// Size returns the number of rows (and columns).
func (b *Board) Size() int {
	return b.n
}

// At returns the tile at row, col; 0 is the blank.
func (b *Board) At(row, col int) int {
	return b.tiles[row*b.n+col]
}

// Moves returns the number of successful taps since the last Reset or Shuffle.
func (b *Board) Moves() int {
	return b.moves
}

// Solved reports whether the tiles are in order.
func (b *Board) Solved() bool {
	for i, t := range b.tiles[:len(b.tiles)-1] {
		if t != i+1 {
			return false
		}
	}
	return true
}

// Tap slides every tile between the tapped cell and the blank one step
// toward the blank, when both are in the same row or column. It reports
// whether anything moved.
func (b *Board) Tap(row, col int) bool {
	if row < 0 || col < 0 || row >= b.n || col >= b.n {
		return false
	}
	if !b.slide(row, col) {
		return false
	}
	b.moves++
	return true
}

func (b *Board) slide(row, col int) bool {
	br, bc := b.blank/b.n, b.blank%b.n
	switch {
	case row == br && col == bc:
		return false
	case row == br:
		step := 1
		if col < bc {
			step = -1
		}
		for c := bc; c != col; c += step {
			b.swap(row*b.n + c + step)
		}
	case col == bc:
		step := 1
		if row < br {
			step = -1
		}
		for r := br; r != row; r += step {
			b.swap((r+step)*b.n + col)
		}
	default:
		return false
	}
	return true
}

// swap moves the tile at i into the blank.
func (b *Board) swap(i int) {
	b.tiles[b.blank], b.tiles[i] = b.tiles[i], 0
	b.blank = i
}

// Shuffle applies steps random single-step moves, never undoing the
// previous one, and clears the move counter. Every shuffled board is
// solvable.
func (b *Board) Shuffle(rng *rand.Rand, steps int) {
	prev := -1
	for range steps {
		var candidates [4]int
		k := 0
		br, bc := b.blank/b.n, b.blank%b.n
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			r, c := br+d[0], bc+d[1]
			i := r*b.n + c
			if r < 0 || c < 0 || r >= b.n || c >= b.n || i == prev {
				continue
			}
			candidates[k] = i
			k++
		}
		prev = b.blank
		b.swap(candidates[rng.IntN(k)])
	}
	b.moves = 0
}
