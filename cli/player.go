package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/ttt"
)

func NewCLIPlayer(out io.Writer, in *bufio.Reader) Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

// FormatMoveList renders legal moves as "[1, 2, 3]".
func FormatMoveList(ms []ttt.Move) string {
	bits := make([]string, len(ms))
	for i, m := range ms {
		bits[i] = strconv.Itoa(int(m))
	}
	return "[" + strings.Join(bits, ", ") + "]"
}

func (c *cliPlayer) GetMove(p ttt.Position) (ttt.Move, error) {
	legal := p.AllMoves()
	for {
		fmt.Fprintf(c.out,
			"%s's move. What is your move (possible moves at the moment are: %s | enter 0 to exit the game)? ",
			p.ToMove(), FormatMoveList(legal))
		line, err := c.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return ttt.NoMove, fmt.Errorf("read move: %w", err)
		}
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
			if n == 0 {
				return ttt.NoMove, ErrQuit
			}
			for _, m := range legal {
				if m == ttt.Move(n) {
					return m, nil
				}
			}
		}
		fmt.Fprintf(c.out, "Invalid move. Please choose from %s or 0 to exit.\n", FormatMoveList(legal))
	}
}

type nodeReporter interface {
	// Nodes returns the node count of the last search, if the
	// player searches.
	Nodes() (uint64, bool)
}

type aiPlayer struct {
	p ai.Player[ttt.Position, ttt.Move]
}

// NewAIPlayer adapts an engine to the game loop. Engines that keep
// search statistics have their node counts printed after each move.
func NewAIPlayer(p ai.Player[ttt.Position, ttt.Move]) Player {
	return &aiPlayer{p}
}

func (a *aiPlayer) GetMove(p ttt.Position) (ttt.Move, error) {
	return a.p.GetMove(context.Background(), p)
}

func (a *aiPlayer) Nodes() (uint64, bool) {
	if s, ok := a.p.(interface{ Stats() ai.Stats }); ok {
		return s.Stats().Nodes, true
	}
	return 0, false
}
