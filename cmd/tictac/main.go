package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/gametree/tictac/cmd/internal/analyze"
	"github.com/gametree/tictac/cmd/internal/canonicalize"
	"github.com/gametree/tictac/cmd/internal/enumerate"
	"github.com/gametree/tictac/cmd/internal/history"
	"github.com/gametree/tictac/cmd/internal/play"
	"github.com/gametree/tictac/cmd/internal/selfplay"
	"github.com/gametree/tictac/cmd/internal/serve"
	"github.com/gametree/tictac/cmd/internal/tei"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&analyze.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&tei.Command{}, "")

	subcommands.Register(&enumerate.Command{}, "research")
	subcommands.Register(&canonicalize.Command{}, "research")
	subcommands.Register(&serve.Command{}, "server")
	subcommands.Register(&history.Command{}, "server")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
