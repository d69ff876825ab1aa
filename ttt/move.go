package ttt

import (
	"errors"
	"fmt"

	"github.com/gametree/tictac/game"
)

// Move is a 1-based cell index, numbered row by row from the top left:
//
//	1 | 2 | 3
//	4 | 5 | 6
//	7 | 8 | 9
type Move int8

const (
	NoMove   Move = 0
	MinMove  Move = 1
	MaxMove  Move = Size
	Size          = 9
	RowWidth      = 3
)

var (
	ErrOutOfRange = fmt.Errorf("cell out of range: %w", game.ErrIllegalAction)
	ErrOccupied   = fmt.Errorf("cell occupied: %w", game.ErrIllegalAction)
	ErrFinished   = fmt.Errorf("game already decided: %w", game.ErrIllegalAction)
)

func (m Move) Valid() bool {
	return m >= MinMove && m <= MaxMove
}

// Index returns the 0-based cell index of m.
func (m Move) Index() int {
	return int(m) - 1
}

// Row and Col return the 0-based coordinates of m.
func (m Move) Row() int { return m.Index() / RowWidth }
func (m Move) Col() int { return m.Index() % RowWidth }

func MoveAt(row, col int) Move {
	return Move(row*RowWidth + col + 1)
}

// IsIllegal reports whether err came from applying an illegal move.
func IsIllegal(err error) bool {
	return errors.Is(err, game.ErrIllegalAction)
}
