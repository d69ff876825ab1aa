package selfplay

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gametree/tictac/cmd/internal/opt"
	"github.com/gametree/tictac/logs"
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/ttt"
)

type Command struct {
	p1    string
	p2    string
	first string
	seed  int64

	games int
	swap  bool

	prefix   string
	openings string

	threads int

	out     string
	summary string
	db      string
	verbose bool

	search opt.Search
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two AIs against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]

Players are one of
  minimax, alphabeta     full-depth search
  random[:SEED]          uniformly random legal moves
  tei:COMMAND ARGS...    an external engine speaking TEI
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", "alphabeta", "player 1")
	flags.StringVar(&c.p2, "p2", "random", "player 2")
	flags.StringVar(&c.first, "first", "x", "mark that moves first from the empty board")

	flags.Int64Var(&c.seed, "seed", 0, "starting random seed")
	flags.IntVar(&c.games, "games", 10, "number of games to play per opening/side")
	flags.BoolVar(&c.swap, "swap", true, "swap sides each game")
	flags.StringVar(&c.prefix, "prefix", "", "game record to start games at the end of")
	flags.StringVar(&c.openings, "openings", "", "file of openings, one position per line")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel workers")
	flags.StringVar(&c.out, "out", "", "directory to write game records to")
	flags.StringVar(&c.summary, "summary", "", "write summary JSON file")
	flags.StringVar(&c.db, "db", "", "log games to this sqlite database")
	flags.BoolVar(&c.verbose, "v", false, "verbose output")

	c.search.AddFlags(flags)
}

func readOpenings(r io.Reader) ([]ttt.Position, error) {
	var out []ttt.Position
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if line == "" {
			continue
		}
		pos, err := notation.ParsePosition(line)
		if err != nil {
			return nil, fmt.Errorf("parse position: %q: %w", line, err)
		}
		out = append(out, pos)
	}
	return out, s.Err()
}

func (c *Command) initial() ([]ttt.Position, error) {
	var openings []ttt.Position
	if c.prefix != "" {
		rec, err := notation.ParseFile(c.prefix)
		if err != nil {
			return nil, fmt.Errorf("-prefix: %w", err)
		}
		p, err := rec.PositionAtMove(-1)
		if err != nil {
			return nil, fmt.Errorf("-prefix: %w", err)
		}
		openings = append(openings, p)
	}
	if c.openings != "" {
		f, err := os.Open(c.openings)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		ps, err := readOpenings(f)
		if err != nil {
			return nil, fmt.Errorf("-openings: %w", err)
		}
		openings = append(openings, ps...)
	}
	if len(openings) == 0 {
		first, ok := ttt.ParseMark(c.first)
		if !ok {
			return nil, fmt.Errorf("-first: bad mark %q", c.first)
		}
		openings = append(openings, ttt.New(ttt.Config{First: first}))
	}
	return openings, nil
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.SetupLogging(c.search.Debug)
	if c.seed == 0 {
		c.seed = time.Now().Unix()
	}
	openings, err := c.initial()
	if err != nil {
		log.Error().Err(err).Msg("selfplay")
		return subcommands.ExitUsageError
	}
	base, err := c.search.BuildConfig()
	if err != nil {
		log.Error().Err(err).Msg("selfplay")
		return subcommands.ExitUsageError
	}
	f1, err := parsePlayer(c.p1, base)
	if err != nil {
		log.Error().Err(err).Msg("-p1")
		return subcommands.ExitUsageError
	}
	f2, err := parsePlayer(c.p2, base)
	if err != nil {
		log.Error().Err(err).Msg("-p2")
		return subcommands.ExitUsageError
	}

	cfg := &Config{
		Games:   c.games,
		Verbose: c.verbose,
		Initial: openings,
		P1:      f1,
		P2:      f2,
		Swap:    c.swap,
		Threads: c.threads,
		Seed:    c.seed,
	}
	st, err := Simulate(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("simulate")
		return subcommands.ExitFailure
	}

	if c.out != "" {
		if c.summary == "" {
			c.summary = path.Join(c.out, "summary.json")
		}
		for i := range st.Games {
			if err := c.writeGame(c.out, &st.Games[i]); err != nil {
				log.Error().Err(err).Msg("write game")
			}
		}
	}
	if c.summary != "" {
		if err := c.writeSummary(c.summary, &st); err != nil {
			log.Error().Err(err).Msg("writing summary")
		}
	}
	if c.db != "" {
		if err := c.logGames(ctx, &st); err != nil {
			log.Error().Err(err).Str("db", c.db).Msg("log games")
			return subcommands.ExitFailure
		}
	}

	log.Info().
		Int("games", st.Count()).
		Int64("seed", c.seed).
		Int("ties", st.Ties).
		Int("x", st.X).
		Int("o", st.O).
		Msg("done")
	c.printTable(os.Stdout, &st)
	return subcommands.ExitSuccess
}

func (c *Command) printTable(w io.Writer, st *Stats) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	pr := message.NewPrinter(language.English)
	pr.Fprintf(tw, "\tx\to\twins\tlosses\tties\tnodes\n")
	for i, name := range []string{c.p1, c.p2} {
		ps := st.Players[i]
		pr.Fprintf(tw, "p%d %s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			i+1, name, ps.XWins, ps.OWins, ps.Wins, ps.Losses, st.Ties, ps.Nodes)
	}
	pr.Fprintf(tw, "sum\t%d\t%d\t%d\t\t%d\t%d\n",
		st.X, st.O, st.X+st.O, st.Ties,
		st.Players[0].Nodes+st.Players[1].Nodes)
	tw.Flush()
}

func (c *Command) writeGame(d string, r *Result) error {
	if err := os.MkdirAll(d, 0755); err != nil {
		return err
	}
	p1, p2 := c.p1, c.p2
	if r.spec.p1 == ttt.O {
		p1, p2 = p2, p1
	}
	rec := &notation.Record{Tags: []notation.Tag{
		{Name: "PlayerX", Value: p1},
		{Name: "PlayerO", Value: p2},
		{Name: "First", Value: r.Initial.First().String()},
	}}
	if r.Initial.MoveNumber() != 0 {
		rec.Tags = append(rec.Tags, notation.Tag{
			Name: "Position", Value: notation.FormatPosition(r.Initial)})
	}
	rec.AddMoves(r.Moves)
	rec.AddResult(r.Position)
	return os.WriteFile(path.Join(d, fmt.Sprintf("%d-%d.txt", r.spec.oi, r.spec.i)), []byte(rec.Render()), 0644)
}

func (c *Command) logGames(ctx context.Context, st *Stats) error {
	repo, err := logs.Open(c.db)
	if err != nil {
		return err
	}
	defer repo.Close()
	var gs []*logs.Game
	for _, r := range st.Games {
		px, po := c.p1, c.p2
		if r.spec.p1 == ttt.O {
			px, po = po, px
		}
		gs = append(gs, logs.NewGame(px, po, r.Position, r.Moves, r.Nodes[0]+r.Nodes[1]))
	}
	return repo.InsertGames(ctx, gs)
}

type Summary struct {
	Cmdline []string
	Player1 string
	Player2 string
	Seed    int64
	Stats   *Stats
}

func (c *Command) writeSummary(path string, stats *Stats) error {
	summary := Summary{
		Cmdline: os.Args,
		Player1: c.p1,
		Player2: c.p2,
		Seed:    c.seed,
		Stats:   stats,
	}
	bs, err := json.MarshalIndent(&summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bs, 0644)
}
