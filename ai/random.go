package ai

import (
	"context"

	"golang.org/x/exp/rand"

	"github.com/gametree/tictac/game"
)

// RandomAI plays a uniformly random legal move.
type RandomAI[S any, A comparable, P comparable] struct {
	g game.Game[S, A, P]
	r *rand.Rand
}

func (r *RandomAI[S, A, P]) GetMove(ctx context.Context, s S) (A, error) {
	moves := r.g.Actions(s)
	if len(moves) == 0 {
		var zero A
		return zero, game.ErrGameOver
	}
	return moves[r.r.Intn(len(moves))], nil
}

func NewRandom[S any, A comparable, P comparable](g game.Game[S, A, P], seed int64) *RandomAI[S, A, P] {
	return &RandomAI[S, A, P]{
		g: g,
		r: rand.New(rand.NewSource(uint64(seed))),
	}
}
