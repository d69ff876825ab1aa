package ttt

import "github.com/gametree/tictac/game"

// Game adapts Position to game.Game.
type Game struct{}

// Rules is Game as a game.Game, for passing to the generic search
// functions in package ai.
var Rules game.Game[Position, Move, Mark] = Game{}

func (Game) ToMove(p Position) Mark { return p.ToMove() }

func (Game) Actions(p Position) []Move { return p.AllMoves() }

func (Game) Result(p Position, m Move) (Position, error) { return p.Move(m) }

func (Game) Utility(p Position, player Mark) int { return p.Utility(player) }

func (Game) IsTerminal(p Position) bool {
	over, _ := p.GameOver()
	return over
}
