package ai

import (
	"fmt"
	"math"

	"github.com/gametree/tictac/game"
)

// Counter counts the game-tree nodes one search visits: one per call
// of a value function, the root included. A Counter belongs to a
// single search at a time and is not safe for concurrent use.
type Counter struct {
	n uint64
}

func (c *Counter) Reset() {
	c.n = 0
}

func (c *Counter) Nodes() uint64 {
	return c.n
}

func (c *Counter) visit() {
	c.n++
}

// Analysis is the outcome of a search from one state.
type Analysis[A comparable] struct {
	// Move is the chosen action.
	Move A
	// Value is the game-theoretic value of Move for the player
	// to move: game.Win, game.Draw or game.Loss.
	Value int
	// Nodes is the number of nodes visited.
	Nodes uint64
}

// MinimaxSearch returns the action that maximizes the utility of the
// player to move in s, assuming the opponent minimizes it. nodes is
// reset and then counts every node visited. Of several equally good
// actions the first in Actions order is chosen.
//
// It returns game.ErrGameOver if s is terminal.
func MinimaxSearch[S any, A comparable, P comparable](g game.Game[S, A, P], s S, nodes *Counter) (A, error) {
	an, err := Analyze(g, s, Minimax, nodes)
	return an.Move, err
}

// AlphaBetaSearch returns the same action as MinimaxSearch, pruning
// subtrees that cannot change the decision. It never visits more
// nodes than MinimaxSearch.
func AlphaBetaSearch[S any, A comparable, P comparable](g game.Game[S, A, P], s S, nodes *Counter) (A, error) {
	an, err := Analyze(g, s, AlphaBeta, nodes)
	return an.Move, err
}

// Analyze runs a full-depth search from s with the given algorithm.
// A nil nodes is allowed.
func Analyze[S any, A comparable, P comparable](g game.Game[S, A, P], s S, alg Algorithm, nodes *Counter) (Analysis[A], error) {
	if nodes == nil {
		nodes = new(Counter)
	}
	nodes.Reset()
	if g.IsTerminal(s) {
		return Analysis[A]{}, game.ErrGameOver
	}
	sr := &searcher[S, A, P]{
		g:      g,
		player: g.ToMove(s),
		nodes:  nodes,
	}

	var (
		out outcome[A]
		err error
	)
	switch alg {
	case Minimax:
		out, err = sr.maxValue(s)
	case AlphaBeta:
		out, err = sr.maxValueAB(s, math.MinInt, math.MaxInt)
	default:
		return Analysis[A]{}, fmt.Errorf("unknown algorithm: %d", alg)
	}
	if err != nil {
		return Analysis[A]{}, err
	}
	return Analysis[A]{
		Move:  out.move,
		Value: out.value,
		Nodes: nodes.Nodes(),
	}, nil
}

type outcome[A comparable] struct {
	value int
	move  A
}

// searcher holds what stays fixed across one search: the game, the
// player whose utility is maximized, and the node counter.
type searcher[S any, A comparable, P comparable] struct {
	g      game.Game[S, A, P]
	player P
	nodes  *Counter
}

func (sr *searcher[S, A, P]) child(s S, a A) (S, error) {
	next, err := sr.g.Result(s, a)
	if err != nil {
		return next, fmt.Errorf("search: action %v: %w", a, err)
	}
	return next, nil
}

func (sr *searcher[S, A, P]) terminal(s S) (outcome[A], bool) {
	if !sr.g.IsTerminal(s) {
		return outcome[A]{}, false
	}
	return outcome[A]{value: sr.g.Utility(s, sr.player)}, true
}

func (sr *searcher[S, A, P]) maxValue(s S) (outcome[A], error) {
	sr.nodes.visit()
	if out, ok := sr.terminal(s); ok {
		return out, nil
	}
	best := outcome[A]{value: math.MinInt}
	for _, a := range sr.g.Actions(s) {
		next, err := sr.child(s, a)
		if err != nil {
			return best, err
		}
		v, err := sr.minValue(next)
		if err != nil {
			return best, err
		}
		if v.value > best.value {
			best = outcome[A]{value: v.value, move: a}
		}
	}
	return best, nil
}

func (sr *searcher[S, A, P]) minValue(s S) (outcome[A], error) {
	sr.nodes.visit()
	if out, ok := sr.terminal(s); ok {
		return out, nil
	}
	best := outcome[A]{value: math.MaxInt}
	for _, a := range sr.g.Actions(s) {
		next, err := sr.child(s, a)
		if err != nil {
			return best, err
		}
		v, err := sr.maxValue(next)
		if err != nil {
			return best, err
		}
		if v.value < best.value {
			best = outcome[A]{value: v.value, move: a}
		}
	}
	return best, nil
}

func (sr *searcher[S, A, P]) maxValueAB(s S, α, β int) (outcome[A], error) {
	sr.nodes.visit()
	if out, ok := sr.terminal(s); ok {
		return out, nil
	}
	best := outcome[A]{value: math.MinInt}
	for _, a := range sr.g.Actions(s) {
		next, err := sr.child(s, a)
		if err != nil {
			return best, err
		}
		v, err := sr.minValueAB(next, α, β)
		if err != nil {
			return best, err
		}
		if v.value > best.value {
			best = outcome[A]{value: v.value, move: a}
		}
		α = max(α, best.value)
		if best.value >= β {
			return best, nil
		}
	}
	return best, nil
}

func (sr *searcher[S, A, P]) minValueAB(s S, α, β int) (outcome[A], error) {
	sr.nodes.visit()
	if out, ok := sr.terminal(s); ok {
		return out, nil
	}
	best := outcome[A]{value: math.MaxInt}
	for _, a := range sr.g.Actions(s) {
		next, err := sr.child(s, a)
		if err != nil {
			return best, err
		}
		v, err := sr.maxValueAB(next, α, β)
		if err != nil {
			return best, err
		}
		if v.value < best.value {
			best = outcome[A]{value: v.value, move: a}
		}
		β = min(β, best.value)
		if best.value <= α {
			return best, nil
		}
	}
	return best, nil
}
