package ttt

type Mark byte

const (
	Empty Mark = 0
	X     Mark = 'X'
	O     Mark = 'O'
)

// Flip returns the other player's mark. Empty flips to itself.
func (m Mark) Flip() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// ParseMark accepts "x", "X", "o" or "O".
func ParseMark(s string) (Mark, bool) {
	switch s {
	case "x", "X":
		return X, true
	case "o", "O":
		return O, true
	}
	return Empty, false
}
