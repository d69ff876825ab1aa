package notation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametree/tictac/notation"
	"github.com/gametree/tictac/ttt"
	"github.com/gametree/tictac/tttest"
)

func TestParsePosition(t *testing.T) {
	cases := []struct {
		in     string
		moves  string
		first  ttt.Mark
		format string
	}{
		{".........", "", ttt.X, "..././..."},
		{"XX.OO....", "1 4 2 5", ttt.X, "XX./OO./..."},
		{"xx./oo./...", "1 4 2 5", ttt.X, "XX./OO./..."},
		{"XX_/OO-/...", "1 4 2 5", ttt.X, "XX./OO./..."},
		{"....X.... x", "5", ttt.X, ".../.X./..."},
	}
	for _, tc := range cases {
		p, err := notation.ParsePosition(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tttest.Play(tc.moves).Cells(), p.Cells(), tc.in)
		assert.Equal(t, tc.first, p.First(), tc.in)
		assert.Equal(t, tc.format, notation.FormatPosition(p), tc.in)
	}

	p, err := notation.ParsePosition("O../.../... o")
	require.NoError(t, err)
	assert.Equal(t, ttt.O, p.First())
	assert.Equal(t, ttt.X, p.ToMove())
	assert.Equal(t, "O../.../... o", notation.FormatPosition(p))
}

func TestParsePositionErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"XX.OO...",
		"XX.OO.....",
		"XX.OO...Z",
		"XXX......",
		"O........",
		"......... z",
		"......... x extra",
	} {
		_, err := notation.ParsePosition(in)
		assert.Error(t, err, "%q", in)
	}
}

func TestParseMoves(t *testing.T) {
	ms, err := notation.ParseMoves(" 5 1  9 ")
	require.NoError(t, err)
	assert.Equal(t, []ttt.Move{5, 1, 9}, ms)
	assert.Equal(t, "5 1 9", notation.FormatMoves(ms))

	_, err = notation.ParseMoves("5 10")
	assert.ErrorIs(t, err, ttt.ErrOutOfRange)
	_, err = notation.ParseMoves("5 a")
	assert.Error(t, err)

	ms, err = notation.ParseMoves("")
	require.NoError(t, err)
	assert.Empty(t, ms)
}
