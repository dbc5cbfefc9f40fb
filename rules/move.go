// Package rules implements the chess rules: game state, legal move generation,
// move application and undo, status detection and move notation.
package rules

import (
	"blup-chess/types"
)

// Move describes a single move. Moved, Captured and the flags are derived
// from the position the move was generated in; identity only depends on
// Start, End and Promotion (see Key).
type Move struct {
	Start      types.Square
	End        types.Square
	Moved      types.Piece
	Captured   types.Piece
	EnPassant  bool
	Castle     bool
	DoubleStep bool
	Promotion  types.Kind
}

// MoveKey is the identity of a move.
type MoveKey struct {
	Start     types.Square
	End       types.Square
	Promotion types.Kind
}

// Key returns the identity of the move.
func (m Move) Key() MoveKey {
	return MoveKey{Start: m.Start, End: m.End, Promotion: m.Promotion}
}

// Equal reports whether two moves have the same start, end and promotion choice.
func (m Move) Equal(other Move) bool {
	return m.Key() == other.Key()
}

// IsCapture returns true if the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return !m.Captured.Empty()
}

// IsZero returns true for the zero Move, which never describes a real move.
func (m Move) IsZero() bool {
	return m == Move{}
}

// Notation returns the coordinate notation of the move: "e2e4", "e7e8q".
func (m Move) Notation() string {
	s := m.Start.String() + m.End.String()
	if m.Promotion != types.NoKind {
		s += string(m.Promotion.Letter()[0] + ('a' - 'A'))
	}
	return s
}

func (m Move) String() string {
	return m.Notation()
}

// NewMove builds a move from raw coordinates and the board it is played on.
// The captured piece and the en passant, castling and double step flags are
// resolved from the board. A pawn reaching the last rank promotes to a queen;
// use NewPromotion to pick another piece.
func NewMove(start, end types.Square, board *types.Board) Move {
	m := Move{
		Start:    start,
		End:      end,
		Moved:    board.Get(start),
		Captured: board.Get(end),
	}
	switch m.Moved.Kind {
	case types.Pawn:
		if start.Col != end.Col && m.Captured.Empty() {
			m.EnPassant = true
			m.Captured = types.Piece{Color: m.Moved.Color.Opposite(), Kind: types.Pawn}
		}
		if abs(end.Row-start.Row) == 2 {
			m.DoubleStep = true
		}
		if end.Row == lastRow(m.Moved.Color) {
			m.Promotion = types.Queen
		}
	case types.King:
		if abs(end.Col-start.Col) == 2 {
			m.Castle = true
		}
	}
	return m
}

// NewPromotion is NewMove with an explicit promotion piece.
func NewPromotion(start, end types.Square, board *types.Board, kind types.Kind) Move {
	m := NewMove(start, end, board)
	if m.Promotion != types.NoKind {
		m.Promotion = kind
	}
	return m
}

// FindMove returns the entry of moves equal to candidate.
func FindMove(moves []Move, candidate Move) (Move, bool) {
	key := candidate.Key()
	for _, m := range moves {
		if m.Key() == key {
			return m, true
		}
	}
	return Move{}, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// lastRow is the promotion row for pawns of color.
func lastRow(color types.Color) int {
	if color == types.White {
		return 0
	}
	return 7
}
