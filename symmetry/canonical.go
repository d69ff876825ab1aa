// Package symmetry computes the eight symmetries of the board and
// canonical representatives of positions and move sequences under them.
package symmetry

import (
	"fmt"

	"github.com/gametree/tictac/ttt"
)

// Symmetry maps a (row, col) cell coordinate to its image.
type Symmetry func(row, col int) (int, int)

func flip(i int) int {
	return ttt.RowWidth - 1 - i
}

var all = []Symmetry{
	// identity
	func(r, c int) (int, int) { return r, c },
	// flip columns
	func(r, c int) (int, int) { return r, flip(c) },
	// flip rows
	func(r, c int) (int, int) { return flip(r), c },
	// main diagonal
	func(r, c int) (int, int) { return c, r },
	// anti-diagonal
	func(r, c int) (int, int) { return flip(c), flip(r) },
	// rotate 180
	func(r, c int) (int, int) { return flip(r), flip(c) },
	// rotate clockwise
	func(r, c int) (int, int) { return c, flip(r) },
	// rotate counter-clockwise
	func(r, c int) (int, int) { return flip(c), r },
}

// All returns the eight symmetries, identity first.
func All() []Symmetry {
	out := make([]Symmetry, len(all))
	copy(out, all)
	return out
}

func TransformMove(s Symmetry, m ttt.Move) ttt.Move {
	r, c := s(m.Row(), m.Col())
	return ttt.MoveAt(r, c)
}

func TransformPosition(s Symmetry, p ttt.Position) ttt.Position {
	var cells [ttt.Size]ttt.Mark
	for m := ttt.MinMove; m <= ttt.MaxMove; m++ {
		cells[TransformMove(s, m).Index()] = p.At(m)
	}
	out, err := ttt.FromCells(ttt.Config{First: p.First()}, cells)
	if err != nil {
		// A symmetry preserves mark counts.
		panic(fmt.Sprintf("symmetry is not sane: %v", err))
	}
	return out
}

type PositionAndSymmetry struct {
	P ttt.Position
	S Symmetry
}

// Symmetries returns the distinct images of p, each with a symmetry
// that produces it.
func Symmetries(p ttt.Position) []PositionAndSymmetry {
	var out []PositionAndSymmetry
	seen := make(map[[ttt.Size]ttt.Mark]struct{})
	for _, s := range all {
		img := TransformPosition(s, p)
		if _, ok := seen[img.Cells()]; ok {
			continue
		}
		seen[img.Cells()] = struct{}{}
		out = append(out, PositionAndSymmetry{P: img, S: s})
	}
	return out
}

func less(l, r [ttt.Size]ttt.Mark) bool {
	for i := range l {
		if l[i] != r[i] {
			return l[i] < r[i]
		}
	}
	return false
}

// CanonicalPosition returns the least image of p, comparing cells in
// order with Empty < O < X. Two positions are equivalent under the
// board's symmetries exactly when their canonical positions are equal.
func CanonicalPosition(p ttt.Position) ttt.Position {
	best := p
	for _, s := range all[1:] {
		img := TransformPosition(s, p)
		if less(img.Cells(), best.Cells()) {
			best = img
		}
	}
	return best
}

func preferMoves(l, r []ttt.Move) bool {
	for i := range l {
		if l[i] != r[i] {
			return l[i] < r[i]
		}
	}
	return false
}

// Canonical returns the least image of a move sequence under a single
// symmetry applied to every move. It fails if ms is not a legal game
// from the empty board with first moving first.
func Canonical(first ttt.Mark, ms []ttt.Move) ([]ttt.Move, error) {
	p := ttt.New(ttt.Config{First: first})
	for i, m := range ms {
		var err error
		if p, err = p.Move(m); err != nil {
			return nil, fmt.Errorf("canonical: move %d: %w", i+1, err)
		}
	}
	best := ms
	for _, s := range all[1:] {
		img := make([]ttt.Move, len(ms))
		for i, m := range ms {
			img[i] = TransformMove(s, m)
		}
		if preferMoves(img, best) {
			best = img
		}
	}
	out := make([]ttt.Move, len(best))
	copy(out, best)
	return out, nil
}
