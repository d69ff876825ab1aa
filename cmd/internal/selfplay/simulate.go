package selfplay

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/ttt"
)

type Config struct {
	Games int

	Verbose bool

	Initial []ttt.Position

	P1, P2 engineFactory

	// Swap alternates which player takes the first mover's mark.
	Swap    bool
	Threads int
	Seed    int64
}

type PlayerStats struct {
	Wins   int
	XWins  int
	OWins  int
	Losses int
	Nodes  uint64
}

type Stats struct {
	Players [2]PlayerStats
	X, O    int
	Ties    int

	Games []Result `json:"-"`
}

func (st *Stats) Count() int {
	return st.X + st.O + st.Ties
}

type gameSpec struct {
	opening ttt.Position
	oi      int
	i       int
	seed    int64
	// p1 is the mark player 1 plays.
	p1 ttt.Mark
}

type Result struct {
	spec     gameSpec
	Initial  ttt.Position
	Position ttt.Position
	Moves    []ttt.Move
	Winner   ttt.Mark
	Nodes    [2]uint64
}

func (st *Stats) add(r Result) {
	st.Games = append(st.Games, r)
	st.Players[0].Nodes += r.Nodes[0]
	st.Players[1].Nodes += r.Nodes[1]
	switch r.Winner {
	case ttt.X:
		st.X++
	case ttt.O:
		st.O++
	default:
		st.Ties++
		return
	}
	win, lose := &st.Players[0], &st.Players[1]
	if r.Winner != r.spec.p1 {
		win, lose = lose, win
	}
	win.Wins++
	lose.Losses++
	if r.Winner == ttt.X {
		win.XWins++
	} else {
		win.OWins++
	}
}

// Simulate plays every configured game on c.Threads workers. Results
// arrive in completion order.
func Simulate(ctx context.Context, c *Config) (Stats, error) {
	g, ctx := errgroup.WithContext(ctx)
	specs := make(chan gameSpec)
	rc := make(chan Result)

	g.Go(func() error {
		defer close(specs)
		r := rand.New(rand.NewSource(uint64(c.Seed)))
		for oi, pos := range c.Initial {
			n := c.Games
			if c.Swap {
				n *= 2
			}
			for i := 0; i < n; i++ {
				p1 := pos.ToMove()
				if c.Swap && i%2 == 1 {
					p1 = p1.Flip()
				}
				spec := gameSpec{
					opening: pos,
					oi:      oi,
					i:       i,
					seed:    r.Int63(),
					p1:      p1,
				}
				select {
				case specs <- spec:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		return nil
	})
	threads := max(c.Threads, 1)
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			return worker(ctx, c, specs, rc)
		})
	}
	errc := make(chan error, 1)
	go func() {
		errc <- g.Wait()
		close(rc)
	}()

	var st Stats
	for r := range rc {
		if c.Verbose {
			log.Info().
				Int("opening", r.spec.oi).
				Int("game", r.spec.i).
				Str("p1", r.spec.p1.String()).
				Str("winner", r.Winner.String()).
				Str("moves", notation.FormatMoves(r.Moves)).
				Msg("game")
		}
		st.add(r)
	}
	return st, <-errc
}

func worker(ctx context.Context, c *Config, specs <-chan gameSpec, out chan<- Result) error {
	e1, err := c.P1()
	if err != nil {
		return err
	}
	defer e1.Close()
	e2, err := c.P2()
	if err != nil {
		return err
	}
	defer e2.Close()

	for spec := range specs {
		r, err := playGame(ctx, spec, e1, e2)
		if err != nil {
			return fmt.Errorf("game %d/%d: %w", spec.oi, spec.i, err)
		}
		select {
		case out <- r:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

type nodeStats interface {
	Stats() ai.Stats
}

func playGame(ctx context.Context, spec gameSpec, e1, e2 engine) (Result, error) {
	first := spec.opening.First()
	p1, err := e1.NewGame(first, spec.seed)
	if err != nil {
		return Result{}, err
	}
	p2, err := e2.NewGame(first, spec.seed+1)
	if err != nil {
		return Result{}, err
	}
	players := [2]ai.Player[ttt.Position, ttt.Move]{p1, p2}

	r := Result{spec: spec, Initial: spec.opening}
	p := spec.opening
	for !ttt.Rules.IsTerminal(p) {
		who := 0
		if p.ToMove() != spec.p1 {
			who = 1
		}
		m, err := players[who].GetMove(ctx, p)
		if err != nil {
			return r, fmt.Errorf("get move: %w", err)
		}
		if s, ok := players[who].(nodeStats); ok {
			r.Nodes[who] += s.Stats().Nodes
		}
		if p, err = p.Move(m); err != nil {
			return r, fmt.Errorf("player %d: %w", who+1, err)
		}
		r.Moves = append(r.Moves, m)
	}
	r.Position = p
	_, r.Winner = p.GameOver()
	return r, nil
}
