package ttt

import "fmt"

// Reachable returns every position reachable from the empty board
// with first moving first, the empty board included, each exactly
// once.
func Reachable(first Mark) []Position {
	seen := make(map[[Size]Mark]bool)
	var out []Position
	stack := []Position{New(Config{First: first})}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[p.cells] {
			continue
		}
		seen[p.cells] = true
		out = append(out, p)
		for _, m := range p.AllMoves() {
			next, err := p.Move(m)
			if err != nil {
				panic(fmt.Sprintf("legal move %d rejected: %v", m, err))
			}
			stack = append(stack, next)
		}
	}
	return out
}
