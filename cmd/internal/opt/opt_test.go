package opt

import (
	"flag"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametree/tictac/ai"
)

func parse(t *testing.T, args ...string) Search {
	t.Helper()
	var o Search
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o.AddFlags(fs)
	require.NoError(t, fs.Parse(args))
	return o
}

func TestBuildConfig(t *testing.T) {
	o := parse(t)
	cfg, err := o.BuildConfig()
	require.NoError(t, err)
	assert.Equal(t, ai.Config{Algorithm: ai.AlphaBeta}, cfg)

	o = parse(t, "-algorithm", "1", "-debug", "2", "-reference-counts")
	cfg, err = o.BuildConfig()
	require.NoError(t, err)
	assert.Equal(t, ai.Config{Algorithm: ai.Minimax, Debug: 2, ReferenceCounts: true}, cfg)

	o = parse(t, "-conf", `{"Algorithm":"minimax"}`)
	cfg, err = o.BuildConfig()
	require.NoError(t, err)
	assert.Equal(t, ai.Minimax, cfg.Algorithm)

	o = parse(t, "-algorithm", "negamax")
	_, err = o.BuildConfig()
	assert.Error(t, err)

	o = parse(t, "-conf", `{"Algorithm":7}`)
	_, err = o.BuildConfig()
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, Level(0))
	assert.Equal(t, zerolog.InfoLevel, Level(1))
	assert.Equal(t, zerolog.DebugLevel, Level(2))
	assert.Equal(t, zerolog.DebugLevel, Level(5))
}
