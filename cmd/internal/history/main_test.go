package history

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametree/tictac/logs"
	"github.com/gametree/tictac/tttest"
)

func TestPrint(t *testing.T) {
	ctx := context.Background()
	repo, err := logs.Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.InsertGame(ctx,
		logs.NewGame("human", "alphabeta", tttest.Play("1 4 2 5 3"), tttest.Moves("1 4 2 5 3"), 99)))

	var out bytes.Buffer
	require.NoError(t, printGames(ctx, &out, repo, 10))
	assert.Contains(t, out.String(), "human")
	assert.Contains(t, out.String(), "X won")
	assert.Contains(t, out.String(), "1 4 2 5 3")

	out.Reset()
	require.NoError(t, printPlayers(ctx, &out, repo))
	assert.Equal(t, `player     wins  losses  ties
alphabeta  0     1       0
human      1     0       0
`, out.String())
}
