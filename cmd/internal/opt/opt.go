package opt

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gametree/tictac/ai"
)

// Search holds the search flags shared by the subcommands.
type Search struct {
	Debug           int
	Algorithm       string
	ReferenceCounts bool
	Conf            string
}

func (o *Search) AddFlags(flags *flag.FlagSet) {
	flags.IntVar(&o.Debug, "debug", 0, "debug level")
	flags.StringVar(&o.Algorithm, "algorithm", "alphabeta", "search algorithm (minimax or alphabeta)")
	flags.BoolVar(&o.ReferenceCounts, "reference-counts", false,
		"report legacy node counts (root counted again)")
	flags.StringVar(&o.Conf, "conf", "", "JSON-encoded ai.Config overriding the other search flags")
}

func (o *Search) BuildConfig() (ai.Config, error) {
	alg, err := ai.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return ai.Config{}, err
	}
	cfg := ai.Config{
		Algorithm:       alg,
		Debug:           o.Debug,
		ReferenceCounts: o.ReferenceCounts,
	}
	if o.Conf != "" {
		if err := json.Unmarshal([]byte(o.Conf), &cfg); err != nil {
			return ai.Config{}, fmt.Errorf("parse -conf: %w", err)
		}
	}
	return cfg, nil
}

// Level maps a -debug value to a log level.
func Level(debug int) zerolog.Level {
	switch {
	case debug <= 0:
		return zerolog.WarnLevel
	case debug == 1:
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}

// SetupLogging sends the global logger to stderr at the level for
// debug, leaving stdout to game output.
func SetupLogging(debug int) {
	zerolog.SetGlobalLevel(Level(debug))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
