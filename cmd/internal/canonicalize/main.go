package canonicalize

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"

	"github.com/gametree/tictac/cmd/internal/opt"
	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/symmetry"
)

type Command struct {
	debug int
}

func (*Command) Name() string     { return "canonicalize" }
func (*Command) Synopsis() string { return "Canonicalize the symmetry of a game record" }
func (*Command) Usage() string {
	return `canonicalize FILE

Rewrite a game record into a symmetric record in a canonical orientation.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.debug, "debug", 0, "debug level")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opt.SetupLogging(c.debug)
	if len(flag.Args()) != 1 {
		flag.Usage()
		return subcommands.ExitUsageError
	}

	rec, err := notation.ParseFile(flag.Arg(0))
	if err != nil {
		log.Error().Err(err).Str("file", flag.Arg(0)).Msg("read")
		return subcommands.ExitFailure
	}
	if err := Rewrite(rec); err != nil {
		log.Error().Err(err).Str("file", flag.Arg(0)).Msg("canonicalize")
		return subcommands.ExitFailure
	}
	fmt.Fprint(os.Stdout, rec.Render())
	return subcommands.ExitSuccess
}

// Rewrite replaces the moves of rec, in place, with their canonical
// orientation. Records that start from a set-up position are rejected.
func Rewrite(rec *notation.Record) error {
	if rec.FindTag("Position") != "" {
		return errors.New("cannot canonicalize a record with a Position tag")
	}
	initial, err := rec.InitialPosition()
	if err != nil {
		return err
	}
	out, err := symmetry.Canonical(initial.First(), rec.Moves())
	if err != nil {
		return err
	}

	i := 0
	for _, o := range rec.Ops {
		if m, ok := o.(*notation.Move); ok {
			m.Move = out[i]
			i++
		}
	}
	return nil
}
