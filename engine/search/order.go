package search

import (
	"sort"

	"blup-chess/rules"
)

// orderMoves returns a copy of moves with promotions first, then captures by
// most valuable victim / least valuable attacker, then quiet moves in their
// original order.
func orderMoves(moves []rules.Move) []rules.Move {
	ordered := make([]rules.Move, len(moves))
	copy(ordered, moves)
	sort.SliceStable(ordered, func(i, j int) bool {
		return moveScore(ordered[i]) > moveScore(ordered[j])
	})
	return ordered
}

func moveScore(m rules.Move) int {
	score := 0
	if m.Promotion != 0 {
		score += 10000 + pieceValues[m.Promotion]
	}
	if m.IsCapture() {
		score += 1000 + 10*pieceValues[m.Captured.Kind] - pieceValues[m.Moved.Kind]/10
	}
	return score
}

// captures keeps the captures and promotions of moves.
func captures(moves []rules.Move) []rules.Move {
	out := moves[:0:0]
	for _, m := range moves {
		if m.IsCapture() || m.Promotion != 0 {
			out = append(out, m)
		}
	}
	return out
}
