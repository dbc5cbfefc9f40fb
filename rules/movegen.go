package rules

import (
	"blup-chess/types"
)

var promotionKinds = []types.Kind{types.Queen, types.Rook, types.Bishop, types.Knight}

// pseudoLegalMoves returns every move obeying the piece movement rules for
// the side to move, without checking whether the mover's king ends up attacked.
// Squares are scanned row by row so the order is deterministic.
func (s *GameState) pseudoLegalMoves() []Move {
	moves := make([]Move, 0, 48)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			p := s.board[r][c]
			if p.Empty() || p.Color != s.sideToMove {
				continue
			}
			sq := types.Square{Row: r, Col: c}
			switch p.Kind {
			case types.Pawn:
				moves = s.pawnMoves(moves, sq, p)
			case types.Knight:
				moves = s.stepMoves(moves, sq, p, knightOffsets)
			case types.Bishop:
				moves = s.slideMoves(moves, sq, p, bishopDirs)
			case types.Rook:
				moves = s.slideMoves(moves, sq, p, rookDirs)
			case types.Queen:
				moves = s.slideMoves(moves, sq, p, queenDirs)
			case types.King:
				moves = s.stepMoves(moves, sq, p, kingOffsets)
				moves = s.castleMoves(moves, sq, p)
			}
		}
	}
	return moves
}

// legalMoves filters pseudoLegalMoves by playing each one on a scratch copy
// of the board and discarding those that leave the mover's king attacked.
func (s *GameState) legalMoves() []Move {
	pseudo := s.pseudoLegalMoves()
	legal := pseudo[:0]
	ksq, ok := s.board.KingSquare(s.sideToMove)
	if !ok {
		panic("rules: side to move has no king")
	}
	enemy := s.sideToMove.Opposite()
	for _, m := range pseudo {
		scratch := s.board
		applyMove(&scratch, m)
		target := ksq
		if m.Moved.Kind == types.King {
			target = m.End
		}
		if !squareAttacked(&scratch, target, enemy) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (s *GameState) pawnMoves(moves []Move, sq types.Square, p types.Piece) []Move {
	dir := pawnDir(p.Color)
	startRow := 6
	if p.Color == types.Black {
		startRow = 1
	}

	one := types.Square{Row: sq.Row + dir, Col: sq.Col}
	if one.OnBoard() && s.board.Get(one).Empty() {
		moves = addPawnMove(moves, Move{Start: sq, End: one, Moved: p})
		two := types.Square{Row: sq.Row + 2*dir, Col: sq.Col}
		if sq.Row == startRow && s.board.Get(two).Empty() {
			moves = append(moves, Move{Start: sq, End: two, Moved: p, DoubleStep: true})
		}
	}

	for _, dc := range []int{-1, 1} {
		t := types.Square{Row: sq.Row + dir, Col: sq.Col + dc}
		if !t.OnBoard() {
			continue
		}
		target := s.board.Get(t)
		if !target.Empty() && target.Color != p.Color {
			moves = addPawnMove(moves, Move{Start: sq, End: t, Moved: p, Captured: target})
		} else if target.Empty() && t == s.enPassant {
			victim := s.board.Get(types.Square{Row: sq.Row, Col: t.Col})
			if victim.Kind == types.Pawn && victim.Color != p.Color {
				moves = append(moves, Move{Start: sq, End: t, Moved: p, Captured: victim, EnPassant: true})
			}
		}
	}
	return moves
}

// addPawnMove appends m, expanded into one move per promotion piece when it
// reaches the last rank.
func addPawnMove(moves []Move, m Move) []Move {
	if m.End.Row != lastRow(m.Moved.Color) {
		return append(moves, m)
	}
	for _, k := range promotionKinds {
		m.Promotion = k
		moves = append(moves, m)
	}
	return moves
}

func (s *GameState) stepMoves(moves []Move, sq types.Square, p types.Piece, offsets []offset) []Move {
	for _, o := range offsets {
		t := o.from(sq)
		if !t.OnBoard() {
			continue
		}
		target := s.board.Get(t)
		if !target.Empty() && target.Color == p.Color {
			continue
		}
		moves = append(moves, Move{Start: sq, End: t, Moved: p, Captured: target})
	}
	return moves
}

func (s *GameState) slideMoves(moves []Move, sq types.Square, p types.Piece, dirs []offset) []Move {
	for _, d := range dirs {
		for t := d.from(sq); t.OnBoard(); t = d.from(t) {
			target := s.board.Get(t)
			if !target.Empty() {
				if target.Color != p.Color {
					moves = append(moves, Move{Start: sq, End: t, Moved: p, Captured: target})
				}
				break
			}
			moves = append(moves, Move{Start: sq, End: t, Moved: p})
		}
	}
	return moves
}

// castleMoves adds castling when the rights are intact, the squares between
// king and rook are empty, and the king's start, transit and destination
// squares are not attacked.
func (s *GameState) castleMoves(moves []Move, sq types.Square, p types.Piece) []Move {
	kingSide, queenSide := s.castling.WhiteKingSide, s.castling.WhiteQueenSide
	home := 7
	if p.Color == types.Black {
		kingSide, queenSide = s.castling.BlackKingSide, s.castling.BlackQueenSide
		home = 0
	}
	if sq != (types.Square{Row: home, Col: 4}) || (!kingSide && !queenSide) {
		return moves
	}
	enemy := p.Color.Opposite()
	if squareAttacked(&s.board, sq, enemy) {
		return moves
	}
	rook := types.Piece{Color: p.Color, Kind: types.Rook}
	if kingSide && s.board[home][7] == rook &&
		s.board[home][5].Empty() && s.board[home][6].Empty() &&
		!squareAttacked(&s.board, types.Square{Row: home, Col: 5}, enemy) &&
		!squareAttacked(&s.board, types.Square{Row: home, Col: 6}, enemy) {
		moves = append(moves, Move{Start: sq, End: types.Square{Row: home, Col: 6}, Moved: p, Castle: true})
	}
	if queenSide && s.board[home][0] == rook &&
		s.board[home][1].Empty() && s.board[home][2].Empty() && s.board[home][3].Empty() &&
		!squareAttacked(&s.board, types.Square{Row: home, Col: 3}, enemy) &&
		!squareAttacked(&s.board, types.Square{Row: home, Col: 2}, enemy) {
		moves = append(moves, Move{Start: sq, End: types.Square{Row: home, Col: 2}, Moved: p, Castle: true})
	}
	return moves
}
