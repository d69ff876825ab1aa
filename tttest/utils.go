// Package tttest has helpers for tests that build positions from
// literal strings.
package tttest

import (
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/ttt"
)

func Moves(s string) []ttt.Move {
	ms, e := notation.ParseMoves(s)
	if e != nil {
		panic(e)
	}
	return ms
}

// Play returns the position reached by playing the moves in s from
// the empty board, X first.
func Play(s string) ttt.Position {
	p := ttt.New(ttt.Config{})
	for _, m := range Moves(s) {
		var e error
		if p, e = p.Move(m); e != nil {
			panic(e)
		}
	}
	return p
}

func Position(s string) ttt.Position {
	p, e := notation.ParsePosition(s)
	if e != nil {
		panic(e)
	}
	return p
}
