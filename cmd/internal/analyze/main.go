package analyze

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/cli"
	"github.com/gametree/tictac/cmd/internal/opt"
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/symmetry"
	"github.com/gametree/tictac/ttt"
)

type Command struct {
	/* Output options */
	quiet      bool
	cpuProfile string

	/* Options to select which position(s) to analyze */
	record    bool
	move      int
	all       bool
	variation string

	reference bool
	debug     int
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Search a position with both algorithms" }
func (*Command) Usage() string {
	return `analyze [options] POSITION
analyze [options] -record FILE

Search a position to the end of the game with minimax and with
alpha-beta, and report the best move, its value and the nodes each
search visited.

POSITION is written row by row, e.g. "XX./OO./...", optionally followed
by x or o to name the mark that moved first. With -record, positions are
read from a game record; by default the final position is analyzed.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.quiet, "quiet", false, "don't print board diagrams")
	flags.StringVar(&c.cpuProfile, "cpuprofile", "", "write CPU profile")

	flags.BoolVar(&c.record, "record", false, "read positions from a game record file")
	flags.IntVar(&c.move, "move", -1, "number of moves of the record to play before analyzing")
	flags.BoolVar(&c.all, "all", false, "analyze every position in the record")
	flags.StringVar(&c.variation, "variation", "", "apply the listed moves after the given position")

	flags.BoolVar(&c.reference, "reference-counts", false,
		"report legacy node counts (root counted again)")
	flags.IntVar(&c.debug, "debug", 0, "debug level")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.SetupLogging(c.debug)
	if flag.NArg() == 0 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	if c.cpuProfile != "" {
		f, e := os.OpenFile(c.cpuProfile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if e != nil {
			log.Error().Err(e).Str("path", c.cpuProfile).Msg("open cpu profile")
			return subcommands.ExitFailure
		}
		pprof.StartCPUProfile(f)
		defer f.Close()
		defer pprof.StopCPUProfile()
	}

	positions, err := c.positions(flag.Args())
	if err != nil {
		log.Error().Err(err).Msg("analyze")
		return subcommands.ExitFailure
	}
	r := &Reporter{
		Out:             os.Stdout,
		Quiet:           c.quiet,
		ReferenceCounts: c.reference,
		Debug:           c.debug,
	}
	for _, p := range positions {
		if err := r.Report(ctx, p); err != nil {
			log.Error().Err(err).Str("position", notation.FormatPosition(p)).Msg("analyze")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func (c *Command) positions(args []string) ([]ttt.Position, error) {
	var out []ttt.Position
	if c.record {
		rec, err := notation.ParseFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		if c.all {
			for i := 0; i <= len(rec.Moves()); i++ {
				p, err := rec.PositionAtMove(i)
				if err != nil {
					return nil, err
				}
				if over, _ := p.GameOver(); !over {
					out = append(out, p)
				}
			}
			return out, nil
		}
		p, err := rec.PositionAtMove(c.move)
		if err != nil {
			return nil, fmt.Errorf("find move: %w", err)
		}
		out = append(out, p)
	} else {
		p, err := notation.ParsePosition(strings.Join(args, " "))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	if c.variation != "" {
		ms, err := notation.ParseMoves(c.variation)
		if err != nil {
			return nil, fmt.Errorf("-variation: %w", err)
		}
		for i, p := range out {
			for _, m := range ms {
				if p, err = p.Move(m); err != nil {
					return nil, fmt.Errorf("-variation: %w", err)
				}
			}
			out[i] = p
		}
	}
	return out, nil
}

// Reporter prints the analysis of positions.
type Reporter struct {
	Out             io.Writer
	Quiet           bool
	ReferenceCounts bool
	Debug           int
}

func (r *Reporter) Report(ctx context.Context, p ttt.Position) error {
	pr := message.NewPrinter(language.English)
	if !r.Quiet {
		cli.RenderBoard(nil, nil, r.Out, p)
	}
	pr.Fprintf(r.Out, "position: %s  canonical: %s\n",
		notation.FormatPosition(p),
		notation.FormatPosition(symmetry.CanonicalPosition(p)))
	if d := p.WinDetails(); d.Over {
		if d.Winner == ttt.Empty {
			pr.Fprintf(r.Out, "game over: tie\n")
		} else {
			pr.Fprintf(r.Out, "game over: %s won on %s\n", d.Winner, notation.FormatMoves(d.Line))
		}
		return nil
	}
	pr.Fprintf(r.Out, "to move: %s\n", p.ToMove())
	for _, alg := range []ai.Algorithm{ai.Minimax, ai.AlphaBeta} {
		mm := ai.NewMinimax(ttt.Rules, ai.Config{
			Algorithm:       alg,
			Debug:           r.Debug,
			ReferenceCounts: r.ReferenceCounts,
		})
		an, st, err := mm.Analyze(ctx, p)
		if err != nil {
			return err
		}
		pr.Fprintf(r.Out, "%-10s move %d value %d nodes %d time %s\n",
			alg, an.Move, an.Value, an.Nodes, st.Elapsed)
	}
	return nil
}
