package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/gametree/tictac/ttt"
)

// Player supplies moves to the game loop. A human player returns
// ErrQuit when the user asks to leave.
type Player interface {
	GetMove(p ttt.Position) (ttt.Move, error)
}

var ErrQuit = errors.New("game terminated by user")

type Glyphs struct {
	X, O, Empty string
}

var DefaultGlyphs = Glyphs{
	X:     "X",
	O:     "O",
	Empty: " ",
}

var UnicodeGlyphs = Glyphs{
	X:     "✕",
	O:     "◯",
	Empty: "·",
}

type CLI struct {
	moves []ttt.Move
	p     ttt.Position
	nodes uint64

	Config ttt.Config
	Glyphs *Glyphs
	// Color renders marks with terminal colors when the output
	// supports them.
	Color bool
	Out   io.Writer
	X     Player
	O     Player
}

// Play runs one game from the initial position to the end. It returns
// the final position, or ErrQuit if a human player left early.
func (c *CLI) Play() (ttt.Position, error) {
	c.moves = nil
	c.nodes = 0
	c.p = ttt.New(c.Config)
	for {
		c.render()
		if over, _ := c.p.GameOver(); over {
			break
		}
		mover := c.p.ToMove()
		pl := c.X
		if mover == ttt.O {
			pl = c.O
		}
		m, err := pl.GetMove(c.p)
		if errors.Is(err, ErrQuit) {
			fmt.Fprintln(c.Out, "Game terminated by user.")
			return c.p, err
		}
		if err != nil {
			return c.p, fmt.Errorf("%s to move: %w", mover, err)
		}
		next, err := c.p.Move(m)
		if err != nil {
			fmt.Fprintln(c.Out, "illegal move:", err)
			continue
		}
		if r, ok := pl.(nodeReporter); ok {
			if nodes, ok := r.Nodes(); ok {
				c.nodes += nodes
				fmt.Fprintf(c.Out, "%s's selected move: %d. Number of search tree nodes generated: %d\n",
					mover, m, nodes)
			} else {
				fmt.Fprintf(c.Out, "%s's selected move: %d.\n", mover, m)
			}
		}
		c.p = next
		c.moves = append(c.moves, m)
	}
	fmt.Fprintln(c.Out, ResultLine(c.p))
	return c.p, nil
}

func (c *CLI) Moves() []ttt.Move {
	return c.moves
}

// Nodes is the total node count reported by searching players in the
// last game.
func (c *CLI) Nodes() uint64 {
	return c.nodes
}

func (c *CLI) render() {
	var o *termenv.Output
	if c.Color {
		o = termenv.NewOutput(c.Out)
	}
	RenderBoard(c.Glyphs, o, c.Out, c.p)
}

// ResultLine is the final line printed for a finished game.
func ResultLine(p ttt.Position) string {
	switch p.Utility(ttt.X) {
	case 1:
		return "X WON"
	case -1:
		return "O WON"
	}
	return "TIE"
}

// RenderBoard writes p as three rows of cells separated by rules:
//
//	 X | O |
//	---+---+---
//
// If color is non-nil, marks are colored for its profile.
func RenderBoard(g *Glyphs, color *termenv.Output, out io.Writer, p ttt.Position) {
	if g == nil {
		g = &DefaultGlyphs
	}
	for row := 0; row < ttt.RowWidth; row++ {
		if row > 0 {
			fmt.Fprintln(out, "---+---+---")
		}
		cells := make([]string, ttt.RowWidth)
		for col := range cells {
			cells[col] = glyph(g, color, p.At(ttt.MoveAt(row, col)))
		}
		fmt.Fprintf(out, " %s \n", strings.Join(cells, " | "))
	}
}

func glyph(g *Glyphs, color *termenv.Output, m ttt.Mark) string {
	var s string
	switch m {
	case ttt.X:
		s = g.X
	case ttt.O:
		s = g.O
	default:
		return g.Empty
	}
	if color == nil {
		return s
	}
	styled := color.String(s).Bold()
	if m == ttt.X {
		styled = styled.Foreground(color.Color("1"))
	} else {
		styled = styled.Foreground(color.Color("4"))
	}
	return styled.String()
}
