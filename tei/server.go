// Package tei speaks a line-oriented engine protocol modeled on UCI,
// so the engine can be driven by an external controller.
//
//	> tei
//	< id name tictac
//	< teiok
//	> teinewgame x
//	> position pos XX./OO./...
//	> go minimax
//	< info nodes 157 score 1 time 0
//	< bestmove 3
package tei

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/game"
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/ttt"
)

// NoMove is sent in place of a move when the position is already
// decided.
const NoMove = "none"

type Engine struct {
	// ConfigFactory returns the search configuration for a new
	// game. The default searches with alpha-beta.
	ConfigFactory func() ai.Config

	in  *bufio.Reader
	out io.Writer

	cfg   ttt.Config
	mm    *ai.MinimaxAI[ttt.Position, ttt.Move, ttt.Mark]
	pos   ttt.Position
	ready bool
}

func NewEngine(in io.Reader, out io.Writer) *Engine {
	return &Engine{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run serves commands until quit or end of input.
func (e *Engine) Run(ctx context.Context) error {
	for {
		line, err := e.in.ReadString('\n')
		if err == io.EOF && line == "" {
			return nil
		}
		if err != nil && err != io.EOF {
			return err
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		switch words[0] {
		case "tei":
			fmt.Fprintln(e.out, "id name tictac")
			fmt.Fprintln(e.out, "teiok")
		case "quit":
			return nil
		case "teinewgame":
			e.mm = nil
			e.ready = false
			e.cfg = ttt.Config{First: ttt.X}
			if len(words) > 1 {
				first, ok := ttt.ParseMark(words[1])
				if !ok {
					return fmt.Errorf("bad first mover: %q", words[1])
				}
				e.cfg.First = first
			}
		case "position":
			e.pos, err = parsePosition(e.cfg, words[1:])
			if err != nil {
				return fmt.Errorf("error parsing position: %w", err)
			}
			e.ready = true
		case "go":
			if err := e.analyze(ctx, words[1:]); err != nil {
				log.Error().Err(err).Msg("go")
			}
		case "stop":
		case "isready":
			fmt.Fprintln(e.out, "readyok")
		default:
			return fmt.Errorf("unknown command: %q", strings.TrimSpace(line))
		}
	}
}

// parsePosition accepts
//
//	startpos [moves M...]
//	pos BOARD [x|o] [moves M...]
func parsePosition(cfg ttt.Config, words []string) (ttt.Position, error) {
	var pos ttt.Position
	if len(words) == 0 {
		return pos, errors.New("not enough arguments")
	}
	switch words[0] {
	case "startpos":
		pos = ttt.New(cfg)
		words = words[1:]
	case "pos":
		if len(words) < 2 {
			return pos, errors.New("position pos: not enough arguments")
		}
		spec := words[1]
		words = words[2:]
		if len(words) > 0 && words[0] != "moves" {
			spec += " " + words[0]
			words = words[1:]
		} else if cfg.First == ttt.O {
			spec += " o"
		}
		var err error
		if pos, err = notation.ParsePosition(spec); err != nil {
			return pos, err
		}
	default:
		return pos, fmt.Errorf("unknown initial position: %q", words[0])
	}
	if len(words) == 0 {
		return pos, nil
	}
	if words[0] != "moves" {
		return pos, errors.New("position: expected `moves'")
	}
	for _, w := range words[1:] {
		m, err := notation.ParseMove(w)
		if err != nil {
			return pos, fmt.Errorf("parse move %q: %w", w, err)
		}
		if pos, err = pos.Move(m); err != nil {
			return pos, fmt.Errorf("move %q: %w", w, err)
		}
	}
	return pos, nil
}

func (e *Engine) analyze(ctx context.Context, words []string) error {
	if !e.ready {
		return errors.New("no position provided")
	}
	if e.mm == nil {
		cfg := ai.Config{Algorithm: ai.AlphaBeta}
		if e.ConfigFactory != nil {
			cfg = e.ConfigFactory()
		}
		e.mm = ai.NewMinimax(ttt.Rules, cfg)
	}
	mm := e.mm
	if len(words) > 0 {
		alg, err := ai.ParseAlgorithm(words[0])
		if err != nil {
			return err
		}
		cfg := mm.Config()
		cfg.Algorithm = alg
		mm = ai.NewMinimax(ttt.Rules, cfg)
	}

	an, stats, err := mm.Analyze(ctx, e.pos)
	if errors.Is(err, game.ErrGameOver) {
		fmt.Fprintf(e.out, "bestmove %s\n", NoMove)
		return nil
	}
	if err != nil {
		fmt.Fprintf(e.out, "bestmove %s\n", NoMove)
		return err
	}
	fmt.Fprintf(e.out, "info nodes %d score %d time %d\n",
		stats.Nodes,
		an.Value,
		stats.Elapsed/time.Millisecond,
	)
	fmt.Fprintf(e.out, "bestmove %s\n", notation.FormatMove(an.Move))
	return nil
}
