package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gametree/tictac/ttt"
)

// ParsePosition parses a board written row by row, top row first, with
// X, O and '.' (or '-' or '_') for an empty cell. Rows may be separated
// by '/'. An optional second word, "x" or "o", names the mark that
// moved first; it defaults to X.
//
//	XX./OO./... x
func ParsePosition(s string) (ttt.Position, error) {
	words := strings.Fields(s)
	if len(words) == 0 || len(words) > 2 {
		return ttt.Position{}, errors.New("bad position: wrong number of words")
	}
	cfg := ttt.Config{First: ttt.X}
	if len(words) == 2 {
		first, ok := ttt.ParseMark(words[1])
		if !ok {
			return ttt.Position{}, fmt.Errorf("bad first mover: %q", words[1])
		}
		cfg.First = first
	}

	board := strings.ReplaceAll(words[0], "/", "")
	if len(board) != ttt.Size {
		return ttt.Position{}, fmt.Errorf("bad position: %d cells, want %d", len(board), ttt.Size)
	}
	var cells [ttt.Size]ttt.Mark
	for i := 0; i < len(board); i++ {
		switch board[i] {
		case 'x', 'X':
			cells[i] = ttt.X
		case 'o', 'O':
			cells[i] = ttt.O
		case '.', '-', '_':
			cells[i] = ttt.Empty
		default:
			return ttt.Position{}, fmt.Errorf("bad cell %d: %q", i+1, board[i])
		}
	}
	return ttt.FromCells(cfg, cells)
}

// FormatPosition is the inverse of ParsePosition. The first-mover
// suffix is only written when O moved first.
func FormatPosition(p ttt.Position) string {
	var out strings.Builder
	for i := 0; i < ttt.Size; i++ {
		if i > 0 && i%ttt.RowWidth == 0 {
			out.WriteByte('/')
		}
		switch p.At(ttt.Move(i + 1)) {
		case ttt.X:
			out.WriteByte('X')
		case ttt.O:
			out.WriteByte('O')
		default:
			out.WriteByte('.')
		}
	}
	if p.First() == ttt.O {
		out.WriteString(" o")
	}
	return out.String()
}

func ParseMove(s string) (ttt.Move, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return ttt.NoMove, fmt.Errorf("bad move: %q", s)
	}
	m := ttt.Move(n)
	if !m.Valid() {
		return ttt.NoMove, fmt.Errorf("move %d: %w", n, ttt.ErrOutOfRange)
	}
	return m, nil
}

func FormatMove(m ttt.Move) string {
	return strconv.Itoa(int(m))
}

// ParseMoves parses a space-separated list of moves.
func ParseMoves(s string) ([]ttt.Move, error) {
	var out []ttt.Move
	for _, w := range strings.Fields(s) {
		m, err := ParseMove(w)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func FormatMoves(ms []ttt.Move) string {
	bits := make([]string, len(ms))
	for i, m := range ms {
		bits[i] = FormatMove(m)
	}
	return strings.Join(bits, " ")
}
