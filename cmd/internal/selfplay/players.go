package selfplay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/tei"
	"github.com/gametree/tictac/ttt"
)

// engine hands out players for successive games. Each worker owns its
// engines.
type engine interface {
	NewGame(first ttt.Mark, seed int64) (ai.Player[ttt.Position, ttt.Move], error)
	Close()
}

type engineFactory func() (engine, error)

type searchEngine struct {
	cfg ai.Config
}

func (e *searchEngine) NewGame(ttt.Mark, int64) (ai.Player[ttt.Position, ttt.Move], error) {
	return ai.NewMinimax(ttt.Rules, e.cfg), nil
}

func (*searchEngine) Close() {}

type randomEngine struct {
	// seed, if set, is used for every game instead of the
	// per-game seed.
	seed *int64
}

func (e *randomEngine) NewGame(_ ttt.Mark, seed int64) (ai.Player[ttt.Position, ttt.Move], error) {
	if e.seed != nil {
		seed = *e.seed
	}
	return ai.NewRandom(ttt.Rules, seed), nil
}

func (*randomEngine) Close() {}

type teiEngine struct {
	cl *tei.Client
}

func (e *teiEngine) NewGame(first ttt.Mark, _ int64) (ai.Player[ttt.Position, ttt.Move], error) {
	return e.cl.NewGame(first)
}

func (e *teiEngine) Close() {
	e.cl.Close()
}

// parsePlayer understands
//
//	minimax | alphabeta    a full-depth search
//	random[:SEED]          uniformly random moves
//	tei:COMMAND ARGS...    an external engine speaking TEI
func parsePlayer(spec string, cfg ai.Config) (engineFactory, error) {
	switch {
	case strings.HasPrefix(spec, "tei:"):
		cmdline := strings.Fields(spec[len("tei:"):])
		if len(cmdline) == 0 {
			return nil, fmt.Errorf("player %q: missing command", spec)
		}
		return func() (engine, error) {
			cl, err := tei.NewClient(cmdline)
			if err != nil {
				return nil, fmt.Errorf("starting client[%v]: %w", cmdline, err)
			}
			return &teiEngine{cl}, nil
		}, nil
	case spec == "random":
		return func() (engine, error) { return &randomEngine{}, nil }, nil
	case strings.HasPrefix(spec, "random:"):
		seed, err := strconv.ParseInt(spec[len("random:"):], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", spec, err)
		}
		return func() (engine, error) { return &randomEngine{&seed}, nil }, nil
	}
	alg, err := ai.ParseAlgorithm(spec)
	if err != nil {
		return nil, fmt.Errorf("player %q: %w", spec, err)
	}
	cfg.Algorithm = alg
	return func() (engine, error) { return &searchEngine{cfg}, nil }, nil
}
