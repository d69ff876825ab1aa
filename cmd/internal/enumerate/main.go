package enumerate

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/cmd/internal/opt"
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/symmetry"
	"github.com/gametree/tictac/ttt"
)

type Command struct {
	first   string
	threads int
	debug   int
}

func (*Command) Name() string     { return "enumerate" }
func (*Command) Synopsis() string { return "Search every reachable position and check the engines agree" }
func (*Command) Usage() string {
	return `enumerate [flags]

Walk every position reachable from the empty board, search each
undecided one with minimax and with alpha-beta, and check that both
choose the same move and value and that alpha-beta never visits more
nodes. Prints totals, including counts up to symmetry.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.first, "first", "x", "mark that moves first")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel workers")
	flags.IntVar(&c.debug, "debug", 0, "debug level")
}

// Report holds the totals of an enumeration.
type Report struct {
	Positions   int
	Terminal    int
	Wins        map[ttt.Mark]int
	Canonical   int
	CanonicalNT int

	MinimaxNodes   uint64
	AlphaBetaNodes uint64
	// Mismatches lists positions where the two searches disagree
	// or alpha-beta visited more nodes.
	Mismatches []string
}

type searched struct {
	p      ttt.Position
	mm, ab ai.Analysis[ttt.Move]
}

func Enumerate(ctx context.Context, first ttt.Mark, threads int) (*Report, error) {
	all := ttt.Reachable(first)
	r := &Report{
		Positions: len(all),
		Wins:      make(map[ttt.Mark]int),
	}
	canonical := make(map[[ttt.Size]ttt.Mark]bool)
	var todo []ttt.Position
	for _, p := range all {
		c := symmetry.CanonicalPosition(p).Cells()
		over, winner := p.GameOver()
		if !canonical[c] {
			canonical[c] = true
			r.Canonical++
			if !over {
				r.CanonicalNT++
			}
		}
		if over {
			r.Terminal++
			r.Wins[winner]++
			continue
		}
		todo = append(todo, p)
	}

	g, ctx := errgroup.WithContext(ctx)
	work := make(chan ttt.Position)
	results := make(chan searched)
	g.Go(func() error {
		defer close(work)
		for _, p := range todo {
			select {
			case work <- p:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < max(threads, 1); i++ {
		g.Go(func() error {
			var nodes ai.Counter
			for p := range work {
				var s searched
				var err error
				s.p = p
				if s.mm, err = ai.Analyze(ttt.Rules, p, ai.Minimax, &nodes); err != nil {
					return err
				}
				if s.ab, err = ai.Analyze(ttt.Rules, p, ai.AlphaBeta, &nodes); err != nil {
					return err
				}
				select {
				case results <- s:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	errc := make(chan error, 1)
	go func() {
		errc <- g.Wait()
		close(results)
	}()

	for s := range results {
		r.MinimaxNodes += s.mm.Nodes
		r.AlphaBetaNodes += s.ab.Nodes
		if s.mm.Move != s.ab.Move || s.mm.Value != s.ab.Value || s.ab.Nodes > s.mm.Nodes {
			r.Mismatches = append(r.Mismatches, notation.FormatPosition(s.p))
			log.Warn().
				Str("position", notation.FormatPosition(s.p)).
				Interface("minimax", s.mm).
				Interface("alphabeta", s.ab).
				Msg("searches disagree")
		}
	}
	if err := <-errc; err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Report) Print(w io.Writer) {
	pr := message.NewPrinter(language.English)
	pr.Fprintf(w, "positions:         %d\n", r.Positions)
	pr.Fprintf(w, "  undecided:       %d\n", r.Positions-r.Terminal)
	pr.Fprintf(w, "  terminal:        %d (X %d, O %d, tie %d)\n",
		r.Terminal, r.Wins[ttt.X], r.Wins[ttt.O], r.Wins[ttt.Empty])
	pr.Fprintf(w, "up to symmetry:    %d (%d undecided)\n", r.Canonical, r.CanonicalNT)
	pr.Fprintf(w, "minimax nodes:     %d\n", r.MinimaxNodes)
	pr.Fprintf(w, "alpha-beta nodes:  %d\n", r.AlphaBetaNodes)
	pr.Fprintf(w, "disagreements:     %d\n", len(r.Mismatches))
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.SetupLogging(c.debug)
	first, ok := ttt.ParseMark(c.first)
	if !ok {
		log.Error().Str("first", c.first).Msg("bad mark")
		return subcommands.ExitUsageError
	}
	r, err := Enumerate(ctx, first, c.threads)
	if err != nil {
		log.Error().Err(err).Msg("enumerate")
		return subcommands.ExitFailure
	}
	r.Print(os.Stdout)
	if len(r.Mismatches) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
