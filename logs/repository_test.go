package logs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametree/tictac/ttt"
	"github.com/gametree/tictac/tttest"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	defer repo.Close()

	draw := tttest.Moves("1 5 2 3 7 4 6 8 9")
	xwins := tttest.Moves("1 4 2 5 3")
	g1 := NewGame("minimax", "alphabeta", tttest.Play("1 5 2 3 7 4 6 8 9"), draw, 1234)
	require.NoError(t, repo.InsertGame(ctx, g1))
	assert.NotZero(t, g1.ID)
	assert.Equal(t, "", g1.Winner)
	assert.Equal(t, "X", g1.First)
	assert.Equal(t, 9, g1.Plies)

	require.NoError(t, repo.InsertGames(ctx, []*Game{
		NewGame("alphabeta", "random", tttest.Play("1 4 2 5 3"), xwins, 10),
		NewGame("random", "alphabeta", tttest.Play("1 4 2 5 3"), xwins, 20),
	}))

	games, err := repo.RecentGames(ctx, 10)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, "random", games[0].PlayerX)
	assert.Equal(t, "X", games[0].Winner)
	assert.Equal(t, "1 4 2 5 3", games[0].Moves)
	assert.Equal(t, int64(20), games[0].Nodes)
	assert.Equal(t, g1.ID, games[2].ID)
	assert.Equal(t, "1 5 2 3 7 4 6 8 9", games[2].Moves)
	assert.WithinDuration(t, g1.Timestamp, games[2].Timestamp, time.Second)

	games, err = repo.RecentGames(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, games, 1)

	players, err := repo.Players(ctx)
	require.NoError(t, err)
	assert.Equal(t, []PlayerRecord{
		{Player: "alphabeta", Wins: 1, Losses: 1, Ties: 1},
		{Player: "minimax", Wins: 0, Losses: 0, Ties: 1},
		{Player: "random", Wins: 1, Losses: 1, Ties: 0},
	}, players)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "games.db")
	repo, err := Open(path)
	require.NoError(t, err)
	final := tttest.Play("5 1 9")
	require.NoError(t, repo.InsertGame(ctx, NewGame("human", "minimax", final, tttest.Moves("5 1 9"), 0)))
	repo.Close()

	repo, err = Open(path)
	require.NoError(t, err)
	defer repo.Close()
	games, err := repo.RecentGames(ctx, 5)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "human", games[0].PlayerX)
	assert.Equal(t, 3, games[0].Plies)
	assert.Equal(t, ttt.X.String(), games[0].First)
}
