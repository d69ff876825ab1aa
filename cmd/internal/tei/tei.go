package tei

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/cmd/internal/opt"
	"github.com/gametree/tictac/tei"
)

type Command struct {
	opt opt.Search
}

func (*Command) Name() string     { return "tei" }
func (*Command) Synopsis() string { return "Launch the engine in TEI mode" }
func (*Command) Usage() string {
	return `tei [flags]

Launch the engine in TEI mode, a UCI-like protocol suitable for being
driven by an external GUI or controller.

`
}

func (c *Command) SetFlags(fs *flag.FlagSet) {
	c.opt.AddFlags(fs)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.SetupLogging(c.opt.Debug)
	cfg, err := c.opt.BuildConfig()
	if err != nil {
		log.Error().Err(err).Msg("tei")
		return subcommands.ExitUsageError
	}
	engine := tei.NewEngine(os.Stdin, os.Stdout)
	engine.ConfigFactory = func() ai.Config { return cfg }
	if err := engine.Run(ctx); err != nil {
		log.Error().Err(err).Msg("tei")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
