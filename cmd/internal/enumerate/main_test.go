package enumerate

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametree/tictac/ttt"
)

func TestEnumerate(t *testing.T) {
	if testing.Short() {
		t.Skip("searches every reachable position")
	}
	r, err := Enumerate(context.Background(), ttt.X, 4)
	require.NoError(t, err)
	assert.Equal(t, 5478, r.Positions)
	assert.Equal(t, 958, r.Terminal)
	assert.Equal(t, 626, r.Wins[ttt.X])
	assert.Equal(t, 316, r.Wins[ttt.O])
	assert.Equal(t, 16, r.Wins[ttt.Empty])
	assert.Equal(t, 765, r.Canonical)
	assert.Equal(t, 627, r.CanonicalNT)
	assert.Equal(t, uint64(2125535), r.MinimaxNodes)
	assert.Equal(t, uint64(274507), r.AlphaBetaNodes)
	assert.Empty(t, r.Mismatches)

	var out bytes.Buffer
	r.Print(&out)
	assert.Contains(t, out.String(), "positions:         5,478\n")
	assert.Contains(t, out.String(), "minimax nodes:     2,125,535\n")
	assert.Contains(t, out.String(), "disagreements:     0\n")
}
