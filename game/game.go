// Package game defines the contract a deterministic, perfect-information,
// two-player zero-sum game must satisfy to be searched by package ai.
package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is returned (wrapped) by Result when the
	// action is not legal in the given state.
	ErrIllegalAction = errors.New("illegal action")

	// ErrGameOver is returned when a move is requested from a
	// state that has no legal actions.
	ErrGameOver = errors.New("game is over")
)

// Utility values at terminal states, from the queried player's
// perspective.
const (
	Loss = -1
	Draw = 0
	Win  = 1
)

// Game is the capability set the search engine needs.
//
// S is the state, A an action and P a player identity. States are
// values: Result must return a new state and leave its argument
// untouched. Every Result must move strictly closer to a terminal
// state, so the game tree is finite.
type Game[S any, A comparable, P comparable] interface {
	// ToMove returns the player to move in s. It must be a pure
	// function of s and must alternate as actions are applied.
	ToMove(s S) P

	// Actions returns the legal actions in s, empty only when s
	// is terminal. The order is significant: searches prefer the
	// first of several equally good actions.
	Actions(s S) []A

	// Result applies a to s. It returns an error wrapping
	// ErrIllegalAction if a is not legal in s.
	Result(s S, a A) (S, error)

	// IsTerminal reports whether the game is decided or no
	// actions remain.
	IsTerminal(s S) bool

	// Utility returns Win, Draw or Loss for p. It is only defined
	// when IsTerminal(s) holds.
	Utility(s S, p P) int
}

// Play applies actions to s in order, returning the final state. It
// stops at the first illegal action and reports which one it was.
func Play[S any, A comparable, P comparable](g Game[S, A, P], s S, actions ...A) (S, error) {
	for i, a := range actions {
		next, err := g.Result(s, a)
		if err != nil {
			return s, fmt.Errorf("action %d (%v): %w", i+1, a, err)
		}
		s = next
	}
	return s, nil
}

// IsLegal reports whether a is among the legal actions of s.
func IsLegal[S any, A comparable, P comparable](g Game[S, A, P], s S, a A) bool {
	for _, b := range g.Actions(s) {
		if a == b {
			return true
		}
	}
	return false
}
