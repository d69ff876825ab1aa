package tei

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametree/tictac/ai"
	"github.com/gametree/tictac/game"
	"github.com/gametree/tictac/ttt"
	"github.com/gametree/tictac/tttest"
)

func runEngine(t *testing.T, script string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	e := NewEngine(strings.NewReader(script), &out)
	err := e.Run(context.Background())
	return out.String(), err
}

func TestEngine(t *testing.T) {
	out, err := runEngine(t, `tei
isready
teinewgame
position pos XX./OO./...
go minimax
go alphabeta
position startpos moves 1 5 2 3 7 4 6 8
go
position startpos moves 1 4 2 5 3
go
quit
position startpos
`)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "id name tictac", lines[0])
	assert.Equal(t, "teiok", lines[1])
	assert.Equal(t, "readyok", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "info nodes 157 score 1 "), lines[3])
	assert.Equal(t, "bestmove 3", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "info nodes 36 score 1 "), lines[5])
	assert.Equal(t, "bestmove 3", lines[6])
	assert.True(t, strings.HasPrefix(lines[7], "info nodes 2 score 0 "), lines[7])
	assert.Equal(t, "bestmove 9", lines[8])
	assert.Equal(t, "bestmove none", lines[9])
}

func TestEngineFirstMover(t *testing.T) {
	out, err := runEngine(t, `teinewgame o
position startpos moves 5
go
position pos O../.../... o
go
`)
	require.NoError(t, err)
	assert.Contains(t, out, "bestmove 1\n")
	assert.Contains(t, out, "bestmove 5\n")
}

func TestEngineErrors(t *testing.T) {
	for _, script := range []string{
		"frobnicate\n",
		"teinewgame z\n",
		"position\n",
		"position startpos moves 5 5\n",
		"position startpos 5\n",
		"position tps x\n",
		"position pos XXX......\n",
	} {
		_, err := runEngine(t, script)
		assert.Error(t, err, "%q", script)
	}

	out, err := runEngine(t, "go\n")
	require.NoError(t, err)
	assert.Equal(t, "", out, "go without a position is ignored")
}

func TestParsePosition(t *testing.T) {
	cases := []struct {
		words string
		cfg   ttt.Config
		want  ttt.Position
	}{
		{"startpos", ttt.Config{}, ttt.New(ttt.Config{})},
		{"startpos moves 1 5", ttt.Config{}, tttest.Play("1 5")},
		{"pos X../.O./... moves 9", ttt.Config{}, tttest.Play("1 5 9")},
		{"pos X...O.... x", ttt.Config{}, tttest.Play("1 5")},
		{"pos O........", ttt.Config{First: ttt.O}, tttest.Position("O........ o")},
	}
	for _, tc := range cases {
		got, err := parsePosition(tc.cfg, strings.Fields(tc.words))
		require.NoError(t, err, tc.words)
		assert.Equal(t, tc.want, got, tc.words)
	}
}

func TestClient(t *testing.T) {
	toEngine, fromClient := io.Pipe()
	toClient, fromEngine := io.Pipe()
	e := NewEngine(toEngine, fromEngine)
	e.ConfigFactory = func() ai.Config { return ai.Config{Algorithm: ai.Minimax} }
	done := make(chan error, 1)
	go func() {
		err := e.Run(context.Background())
		fromEngine.Close()
		done <- err
	}()

	cl, err := NewConn(toClient, fromClient)
	require.NoError(t, err)

	ctx := context.Background()
	pl, err := cl.NewGame(ttt.X)
	require.NoError(t, err)
	p := tttest.Play("1 5 2")
	m, err := pl.GetMove(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, ttt.Move(3), m)

	_, err = pl.GetMove(ctx, tttest.Play("1 4 2 5 3"))
	assert.ErrorIs(t, err, game.ErrGameOver)

	pl2, err := cl.NewGame(ttt.O)
	require.NoError(t, err)
	_, err = pl.GetMove(ctx, p)
	assert.Error(t, err, "stale player")
	m, err = pl2.GetMove(ctx, ttt.New(ttt.Config{First: ttt.O}))
	require.NoError(t, err)
	assert.Equal(t, ttt.Move(1), m)

	cl.Close()
	assert.NoError(t, <-done)
}
