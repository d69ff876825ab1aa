package ttt_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametree/tictac/game"
	"github.com/gametree/tictac/ttt"
	"github.com/gametree/tictac/tttest"
)

func TestNew(t *testing.T) {
	p := ttt.New(ttt.Config{})
	assert.Equal(t, ttt.X, p.First())
	assert.Equal(t, ttt.X, p.ToMove())
	assert.Equal(t, 0, p.MoveNumber())
	assert.Equal(t, []ttt.Move{1, 2, 3, 4, 5, 6, 7, 8, 9}, p.AllMoves())

	p = ttt.New(ttt.Config{First: ttt.O})
	assert.Equal(t, ttt.O, p.ToMove())
}

func TestToMoveAlternates(t *testing.T) {
	for _, first := range []ttt.Mark{ttt.X, ttt.O} {
		p := ttt.New(ttt.Config{First: first})
		want := first
		for _, m := range tttest.Moves("1 5 2 3 7 4 6 8 9") {
			require.Equal(t, want, p.ToMove(), "first=%s move=%d", first, m)
			next, err := p.Move(m)
			require.NoError(t, err)
			assert.Equal(t, want, next.At(m))
			p = next
			want = want.Flip()
		}
	}
}

func TestMoveDoesNotModify(t *testing.T) {
	p := tttest.Play("5")
	next, err := p.Move(1)
	require.NoError(t, err)
	assert.Equal(t, ttt.Empty, p.At(1))
	assert.Equal(t, ttt.O, next.At(1))
	assert.Equal(t, 1, p.MoveNumber())
	assert.Equal(t, 2, next.MoveNumber())
}

func TestAllMoves(t *testing.T) {
	cases := []struct {
		moves string
		want  []ttt.Move
	}{
		{"5", []ttt.Move{1, 2, 3, 4, 6, 7, 8, 9}},
		{"9 1 8", []ttt.Move{2, 3, 4, 5, 6, 7}},
		// X has taken the top row
		{"1 4 2 5 3", nil},
		// full board, no winner
		{"1 5 2 3 7 4 6 8 9", nil},
	}
	for _, tc := range cases {
		p := tttest.Play(tc.moves)
		assert.Equal(t, tc.want, p.AllMoves(), "moves=%q", tc.moves)
	}
}

func TestMoveErrors(t *testing.T) {
	cases := []struct {
		moves string
		m     ttt.Move
		err   error
	}{
		{"", 0, ttt.ErrOutOfRange},
		{"", 10, ttt.ErrOutOfRange},
		{"", -1, ttt.ErrOutOfRange},
		{"5", 5, ttt.ErrOccupied},
		{"1 4 2 5", 4, ttt.ErrOccupied},
		{"1 4 2 5 3", 6, ttt.ErrFinished},
	}
	for _, tc := range cases {
		p := tttest.Play(tc.moves)
		next, err := p.Move(tc.m)
		if !errors.Is(err, tc.err) {
			t.Errorf("[%s] Move(%d): got err=%v, want %v", tc.moves, tc.m, err, tc.err)
		}
		if !errors.Is(err, game.ErrIllegalAction) || !ttt.IsIllegal(err) {
			t.Errorf("[%s] Move(%d): %v does not wrap ErrIllegalAction", tc.moves, tc.m, err)
		}
		if next != p {
			t.Errorf("[%s] Move(%d): illegal move changed the position", tc.moves, tc.m)
		}
	}
}

func TestGameOver(t *testing.T) {
	cases := []struct {
		pos    string
		over   bool
		winner ttt.Mark
		line   []ttt.Move
	}{
		{".........", false, ttt.Empty, nil},
		{"XXX/OO./...", true, ttt.X, []ttt.Move{1, 2, 3}},
		{"XX./OOO/X..", true, ttt.O, []ttt.Move{4, 5, 6}},
		{"X.O/X.O/X..", true, ttt.X, []ttt.Move{1, 4, 7}},
		{"O.X/.OX/X.O o", true, ttt.O, []ttt.Move{1, 5, 9}},
		{"O.X/.XO/X..", true, ttt.X, []ttt.Move{3, 5, 7}},
		{"XXO/OOX/XOX", true, ttt.Empty, nil},
		{"XXO/OO./X..", false, ttt.Empty, nil},
	}
	for _, tc := range cases {
		p := tttest.Position(tc.pos)
		over, winner := p.GameOver()
		assert.Equal(t, tc.over, over, tc.pos)
		assert.Equal(t, tc.winner, winner, tc.pos)
		d := p.WinDetails()
		assert.Equal(t, tc.over, d.Over, tc.pos)
		assert.Equal(t, tc.winner, d.Winner, tc.pos)
		assert.Equal(t, tc.line, d.Line, tc.pos)
	}
}

func TestUtility(t *testing.T) {
	p := tttest.Position("XXX/OO./...")
	assert.Equal(t, game.Win, p.Utility(ttt.X))
	assert.Equal(t, game.Loss, p.Utility(ttt.O))

	p = tttest.Position("XXO/OOX/XOX")
	assert.Equal(t, game.Draw, p.Utility(ttt.X))
	assert.Equal(t, game.Draw, p.Utility(ttt.O))
}

func TestReachable(t *testing.T) {
	for _, first := range []ttt.Mark{ttt.X, ttt.O} {
		var terminal, firstWins, secondWins, draws int
		for _, p := range ttt.Reachable(first) {
			over, winner := p.GameOver()
			if !over {
				assert.NotEmpty(t, p.AllMoves())
				continue
			}
			terminal++
			assert.Empty(t, p.AllMoves())
			assert.Equal(t, -p.Utility(ttt.O), p.Utility(ttt.X),
				"utility is not zero-sum: %v", p.Cells())
			switch winner {
			case first:
				firstWins++
			case first.Flip():
				secondWins++
			default:
				draws++
			}
		}
		assert.Equal(t, 5478, len(ttt.Reachable(first)))
		assert.Equal(t, 958, terminal)
		assert.Equal(t, 626, firstWins)
		assert.Equal(t, 316, secondWins)
		assert.Equal(t, 16, draws)
	}
}

func TestFromCells(t *testing.T) {
	var cells [ttt.Size]ttt.Mark
	cells[0] = ttt.O
	_, err := ttt.FromCells(ttt.Config{}, cells)
	assert.Error(t, err, "O cannot have moved first")

	p, err := ttt.FromCells(ttt.Config{First: ttt.O}, cells)
	require.NoError(t, err)
	assert.Equal(t, ttt.X, p.ToMove())

	cells[1] = 'Z'
	_, err = ttt.FromCells(ttt.Config{First: ttt.O}, cells)
	assert.Error(t, err)
}

func TestRules(t *testing.T) {
	s := ttt.New(ttt.Config{})
	s, err := game.Play(ttt.Rules, s, tttest.Moves("1 4 2 5")...)
	require.NoError(t, err)
	assert.False(t, ttt.Rules.IsTerminal(s))
	assert.True(t, game.IsLegal(ttt.Rules, s, 3))
	assert.False(t, game.IsLegal(ttt.Rules, s, 4))

	s, err = game.Play(ttt.Rules, s, 3)
	require.NoError(t, err)
	assert.True(t, ttt.Rules.IsTerminal(s))
	assert.Equal(t, game.Win, ttt.Rules.Utility(s, ttt.X))

	_, err = game.Play(ttt.Rules, ttt.New(ttt.Config{}), 1, 1)
	assert.ErrorIs(t, err, ttt.ErrOccupied)
}
