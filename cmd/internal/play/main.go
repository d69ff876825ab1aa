package play

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/cli"
	"github.com/gametree/tictac/cmd/internal/opt"
	"github.com/gametree/tictac/logs"
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/ttt"
)

const argError = "ERROR: Not enough/too many/illegal input arguments."

type Command struct {
	debug     int
	reference bool
	out       string
	db        string

	unicode bool
	color   bool
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play tic-tac-toe from the command line" }
func (*Command) Usage() string {
	return `play [flags] ALGO FIRST MODE

Play against the computer, or watch it play itself.

  ALGO   1 for minimax, 2 for minimax with alpha-beta pruning
  FIRST  X or O, the mark that moves first
  MODE   1 for human (X) versus computer, 2 for computer versus computer

`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.debug, "debug", 0, "debug level")
	flags.BoolVar(&c.reference, "reference-counts", false,
		"report legacy node counts (root counted again)")
	flags.StringVar(&c.out, "out", "", "write the game record to file")
	flags.StringVar(&c.db, "db", "", "log the finished game to this sqlite database")

	flags.BoolVar(&c.unicode, "unicode", false, "render board with utf8 glyphs")
	flags.BoolVar(&c.color, "color", false, "render marks in color")
}

// Args are the positional arguments of the play command.
type Args struct {
	Algorithm ai.Algorithm
	First     ttt.Mark
	HumanX    bool
}

var errArgs = errors.New(argError)

func ParseArgs(args []string) (Args, error) {
	if len(args) != 3 {
		return Args{}, errArgs
	}
	var a Args
	switch args[0] {
	case "1":
		a.Algorithm = ai.Minimax
	case "2":
		a.Algorithm = ai.AlphaBeta
	default:
		return Args{}, errArgs
	}
	first, ok := ttt.ParseMark(strings.ToUpper(args[1]))
	if !ok {
		return Args{}, errArgs
	}
	a.First = first
	switch args[2] {
	case "1":
		a.HumanX = true
	case "2":
	default:
		return Args{}, errArgs
	}
	return a, nil
}

// Header is printed before the first board.
func (a Args) Header() string {
	mode := "computer versus computer"
	if a.HumanX {
		mode = "human versus computer"
	}
	return fmt.Sprintf("Algorithm: %s\nFirst: %s\nMode: %s\n\n",
		a.Algorithm.Description(), a.First, mode)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.SetupLogging(c.debug)
	args, err := ParseArgs(flag.Args())
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitUsageError
	}
	fmt.Print(args.Header())

	cfg := ai.Config{
		Algorithm:       args.Algorithm,
		Debug:           c.debug,
		ReferenceCounts: c.reference,
	}
	computer := func() cli.Player {
		return cli.NewAIPlayer(ai.NewMinimax(ttt.Rules, cfg))
	}
	st := &cli.CLI{
		Config: ttt.Config{First: args.First},
		Out:    os.Stdout,
		Glyphs: glyphs(c.unicode),
		Color:  c.color,
		X:      computer(),
		O:      computer(),
	}
	nameX := args.Algorithm.String()
	if args.HumanX {
		st.X = cli.NewCLIPlayer(os.Stdout, bufio.NewReader(os.Stdin))
		nameX = "human"
	}

	final, err := st.Play()
	if errors.Is(err, cli.ErrQuit) {
		return subcommands.ExitSuccess
	}
	if err != nil {
		log.Error().Err(err).Msg("play")
		return subcommands.ExitFailure
	}

	if c.out != "" {
		rec := &notation.Record{Tags: []notation.Tag{
			{Name: "PlayerX", Value: nameX},
			{Name: "PlayerO", Value: args.Algorithm.String()},
			{Name: "First", Value: args.First.String()},
		}}
		rec.AddMoves(st.Moves())
		rec.AddResult(final)
		if err := os.WriteFile(c.out, []byte(rec.Render()), 0644); err != nil {
			log.Error().Err(err).Str("path", c.out).Msg("write record")
			return subcommands.ExitFailure
		}
	}
	if c.db != "" {
		if err := logGame(ctx, c.db, logs.NewGame(nameX, args.Algorithm.String(), final, st.Moves(), st.Nodes())); err != nil {
			log.Error().Err(err).Str("db", c.db).Msg("log game")
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func logGame(ctx context.Context, path string, g *logs.Game) error {
	repo, err := logs.Open(path)
	if err != nil {
		return err
	}
	defer repo.Close()
	return repo.InsertGame(ctx, g)
}

func glyphs(unicode bool) *cli.Glyphs {
	if unicode {
		return &cli.UnicodeGlyphs
	}
	return &cli.DefaultGlyphs
}
