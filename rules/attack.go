package rules

import (
	"fmt"

	"blup-chess/types"
)

type offset struct{ dr, dc int }

var (
	knightOffsets = []offset{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = []offset{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	rookDirs      = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs    = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	queenDirs     = append(append([]offset{}, rookDirs...), bishopDirs...)
)

func (o offset) from(sq types.Square) types.Square {
	return types.Square{Row: sq.Row + o.dr, Col: sq.Col + o.dc}
}

// pawnDir is the row step of a pawn of color.
func pawnDir(color types.Color) int {
	if color == types.White {
		return -1
	}
	return 1
}

// squareAttacked returns true if any piece of color by attacks sq.
func squareAttacked(b *types.Board, sq types.Square, by types.Color) bool {
	// A pawn of color by attacks sq from one row behind it.
	pr := sq.Row - pawnDir(by)
	for _, dc := range []int{-1, 1} {
		p := b.Get(types.Square{Row: pr, Col: sq.Col + dc})
		if p.Kind == types.Pawn && p.Color == by {
			return true
		}
	}
	for _, o := range knightOffsets {
		p := b.Get(o.from(sq))
		if p.Kind == types.Knight && p.Color == by {
			return true
		}
	}
	for _, o := range kingOffsets {
		p := b.Get(o.from(sq))
		if p.Kind == types.King && p.Color == by {
			return true
		}
	}
	if rayAttacked(b, sq, by, rookDirs, types.Rook) {
		return true
	}
	return rayAttacked(b, sq, by, bishopDirs, types.Bishop)
}

// rayAttacked walks each direction from sq until the first piece and checks
// whether it is a slider of color by moving along that line.
func rayAttacked(b *types.Board, sq types.Square, by types.Color, dirs []offset, slider types.Kind) bool {
	for _, d := range dirs {
		cur := d.from(sq)
		for cur.OnBoard() {
			p := b.Get(cur)
			if !p.Empty() {
				if p.Color == by && (p.Kind == slider || p.Kind == types.Queen) {
					return true
				}
				break
			}
			cur = d.from(cur)
		}
	}
	return false
}

// kingAttacked returns true if color's king is attacked. Every reachable
// position has both kings, so a missing king is a bug.
func kingAttacked(b *types.Board, color types.Color) bool {
	ksq, ok := b.KingSquare(color)
	if !ok {
		panic(fmt.Sprintf("rules: no %s king on the board", color))
	}
	return squareAttacked(b, ksq, color.Opposite())
}
