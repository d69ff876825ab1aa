package history

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/gametree/tictac/cmd/internal/opt"
	"github.com/gametree/tictac/logs"
)

type Command struct {
	limit   int
	players bool
	debug   int
}

func (*Command) Name() string     { return "history" }
func (*Command) Synopsis() string { return "List games logged to a sqlite database" }
func (*Command) Usage() string {
	return `history [flags] DB

List the most recent games logged by play -db or selfplay -db.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.limit, "n", 20, "number of games to list")
	flags.BoolVar(&c.players, "players", false, "summarize results per player instead")
	flags.IntVar(&c.debug, "debug", 0, "debug level")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.SetupLogging(c.debug)
	if flag.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	repo, err := logs.Open(flag.Arg(0))
	if err != nil {
		log.Error().Err(err).Str("db", flag.Arg(0)).Msg("open")
		return subcommands.ExitFailure
	}
	defer repo.Close()

	if c.players {
		err = printPlayers(ctx, os.Stdout, repo)
	} else {
		err = printGames(ctx, os.Stdout, repo, c.limit)
	}
	if err != nil {
		log.Error().Err(err).Msg("history")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printGames(ctx context.Context, w io.Writer, repo *logs.Repository, limit int) error {
	games, err := repo.RecentGames(ctx, limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id\ttime\tx\to\tresult\tmoves\n")
	for _, g := range games {
		result := "tie"
		if g.Winner != "" {
			result = g.Winner + " won"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			g.ID, g.Timestamp.Local().Format("2006-01-02 15:04"),
			g.PlayerX, g.PlayerO, result, g.Moves)
	}
	return tw.Flush()
}

func printPlayers(ctx context.Context, w io.Writer, repo *logs.Repository) error {
	players, err := repo.Players(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "player\twins\tlosses\tties\n")
	for _, p := range players {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", p.Player, p.Wins, p.Losses, p.Ties)
	}
	return tw.Flush()
}
