package ttt

import "fmt"

type Config struct {
	// First is the mark that moves when both marks have been
	// played equally often. Defaults to X.
	First Mark
}

// Position is one configuration of the board. It is a value: Move
// returns a new Position and never modifies the receiver.
type Position struct {
	cells [Size]Mark
	first Mark
}

// Lines lists the winning triples as 0-based cell indices: rows,
// then columns, then diagonals. Utility reports the first one found.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func New(cfg Config) Position {
	if cfg.First == Empty {
		cfg.First = X
	}
	return Position{first: cfg.First}
}

// FromCells builds a position from cells listed row by row. The mark
// counts must be consistent with cfg.First having moved first.
func FromCells(cfg Config, cells [Size]Mark) (Position, error) {
	p := New(cfg)
	for i, c := range cells {
		switch c {
		case Empty, X, O:
		default:
			return Position{}, fmt.Errorf("bad mark at cell %d: %q", i+1, byte(c))
		}
	}
	p.cells = cells
	first, second := p.Count(p.first), p.Count(p.first.Flip())
	if first != second && first != second+1 {
		return Position{}, fmt.Errorf("impossible mark counts: %s=%d %s=%d",
			p.first, first, p.first.Flip(), second)
	}
	return p, nil
}

func (p Position) At(m Move) Mark {
	return p.cells[m.Index()]
}

func (p Position) Cells() [Size]Mark {
	return p.cells
}

// First returns the mark that moved first in this game.
func (p Position) First() Mark {
	return p.first
}

// Count returns how many cells hold mark m.
func (p Position) Count(m Mark) int {
	n := 0
	for _, c := range p.cells {
		if c == m {
			n++
		}
	}
	return n
}

// MoveNumber returns the number of moves played so far.
func (p Position) MoveNumber() int {
	return Size - p.Count(Empty)
}

// ToMove is derived from the mark counts, never stored.
func (p Position) ToMove() Mark {
	if p.Count(X) == p.Count(O) {
		return p.first
	}
	return p.first.Flip()
}

// AllMoves returns the empty cells in ascending order, or nil once
// the game is over.
func (p Position) AllMoves() []Move {
	if over, _ := p.GameOver(); over {
		return nil
	}
	moves := make([]Move, 0, Size)
	for i, c := range p.cells {
		if c == Empty {
			moves = append(moves, Move(i+1))
		}
	}
	return moves
}

// Move places the mark of the player to move on m.
func (p Position) Move(m Move) (Position, error) {
	if !m.Valid() {
		return p, fmt.Errorf("move %d: %w", m, ErrOutOfRange)
	}
	if p.cells[m.Index()] != Empty {
		return p, fmt.Errorf("move %d: %w", m, ErrOccupied)
	}
	if over, _ := p.GameOver(); over {
		return p, fmt.Errorf("move %d: %w", m, ErrFinished)
	}
	next := p
	next.cells[m.Index()] = p.ToMove()
	return next, nil
}

// winningLine returns the index into Lines of the first triple owned
// by one mark, and that mark.
func (p Position) winningLine() (int, Mark) {
	for i, l := range Lines {
		a := p.cells[l[0]]
		if a != Empty && a == p.cells[l[1]] && a == p.cells[l[2]] {
			return i, a
		}
	}
	return -1, Empty
}

// GameOver reports whether the game is decided or the board is full,
// and the winner, if any.
func (p Position) GameOver() (over bool, winner Mark) {
	if _, w := p.winningLine(); w != Empty {
		return true, w
	}
	return p.Count(Empty) == 0, Empty
}

// Utility returns +1 if player owns the first complete line, -1 if the
// opponent does and 0 otherwise.
func (p Position) Utility(player Mark) int {
	_, w := p.winningLine()
	switch w {
	case Empty:
		return 0
	case player:
		return 1
	default:
		return -1
	}
}

type WinDetails struct {
	Over   bool
	Winner Mark
	// Line is the winning triple as moves, or nil for a draw or an
	// unfinished game.
	Line []Move
}

func (p Position) WinDetails() WinDetails {
	var d WinDetails
	d.Over, d.Winner = p.GameOver()
	if i, _ := p.winningLine(); i >= 0 {
		for _, c := range Lines[i] {
			d.Line = append(d.Line, Move(c+1))
		}
	}
	return d
}
