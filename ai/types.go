package ai

import (
	"context"
	"fmt"
	"strings"
)

// Player chooses a move in a state. Implementations return
// game.ErrGameOver when asked to move in a terminal state.
type Player[S any, A comparable] interface {
	GetMove(ctx context.Context, s S) (A, error)
}

type Algorithm int

const (
	Minimax Algorithm = 1 + iota
	AlphaBeta
)

func (a Algorithm) String() string {
	switch a {
	case Minimax:
		return "minimax"
	case AlphaBeta:
		return "alphabeta"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Description is the long name used in the game header.
func (a Algorithm) Description() string {
	switch a {
	case Minimax:
		return "MiniMax"
	case AlphaBeta:
		return "MiniMax with alpha-beta pruning"
	}
	return a.String()
}

// ParseAlgorithm accepts the algorithm names and the numeric codes
// used on the play command line ("1" for minimax, "2" for
// alpha-beta).
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "minimax", "mm":
		return Minimax, nil
	case "2", "alphabeta", "alpha-beta", "ab":
		return AlphaBeta, nil
	}
	return 0, fmt.Errorf("unknown algorithm: %q", s)
}

// referenceOffset is how many extra nodes legacy counting reports for
// a search. The counter is seeded with 1 for the root before the root's
// own value-function call counts it again, and alpha-beta adds one more
// increment on entry.
func (a Algorithm) referenceOffset() uint64 {
	switch a {
	case Minimax:
		return 1
	case AlphaBeta:
		return 2
	}
	return 0
}
