package rules

import (
	"blup-chess/types"
)

// CastlingRights tracks whether each king and rook pair may still castle.
type CastlingRights struct {
	WhiteKingSide  bool
	WhiteQueenSide bool
	BlackKingSide  bool
	BlackQueenSide bool
}

// logEntry is everything needed to take back a move.
type logEntry struct {
	move      Move
	castling  CastlingRights
	enPassant types.Square
	halfmove  int
	fullmove  int
	check     bool
	checkmate bool
	stalemate bool
}

// GameState is a chess position plus the log of moves that led to it.
// It is only mutated through MakeMove and UndoMove.
type GameState struct {
	board      types.Board
	sideToMove types.Color
	castling   CastlingRights
	enPassant  types.Square
	halfmove   int
	fullmove   int
	moveLog    []logEntry

	check     bool
	checkmate bool
	stalemate bool
}

// NewGameState returns the standard initial position, White to move.
func NewGameState() *GameState {
	return &GameState{
		board:      types.NewStandardBoard(),
		sideToMove: types.White,
		castling:   CastlingRights{true, true, true, true},
		enPassant:  types.NoSquare,
		fullmove:   1,
	}
}

// Board returns a copy of the board.
func (s *GameState) Board() types.Board {
	return s.board
}

// SideToMove returns the color whose turn it is.
func (s *GameState) SideToMove() types.Color {
	return s.sideToMove
}

// WhiteToMove returns true if White is to move.
func (s *GameState) WhiteToMove() bool {
	return s.sideToMove == types.White
}

// Castling returns the current castling rights.
func (s *GameState) Castling() CastlingRights {
	return s.castling
}

// EnPassant returns the en passant target square, or types.NoSquare.
func (s *GameState) EnPassant() types.Square {
	return s.enPassant
}

// Checkmate reports the flag set by the last ValidMoves call.
func (s *GameState) Checkmate() bool {
	return s.checkmate
}

// Stalemate reports the flag set by the last ValidMoves call.
func (s *GameState) Stalemate() bool {
	return s.stalemate
}

// PieceCount returns the number of pieces on the board.
func (s *GameState) PieceCount() int {
	return s.board.Count()
}

// Ply returns the number of applied moves.
func (s *GameState) Ply() int {
	return len(s.moveLog)
}

// LastMove returns the most recently applied move.
func (s *GameState) LastMove() (Move, bool) {
	if len(s.moveLog) == 0 {
		return Move{}, false
	}
	return s.moveLog[len(s.moveLog)-1].move, true
}

// Clone returns a deep copy that shares nothing with s.
func (s *GameState) Clone() *GameState {
	c := *s
	c.moveLog = make([]logEntry, len(s.moveLog), len(s.moveLog)+8)
	copy(c.moveLog, s.moveLog)
	return &c
}

// InCheck returns true if the side to move's king is attacked.
func (s *GameState) InCheck() bool {
	return kingAttacked(&s.board, s.sideToMove)
}

// ValidMoves returns every legal move for the side to move and refreshes the
// checkmate and stalemate flags.
func (s *GameState) ValidMoves() []Move {
	moves := s.legalMoves()
	s.checkmate, s.stalemate = false, false
	if len(moves) == 0 {
		if s.InCheck() {
			s.checkmate = true
		} else {
			s.stalemate = true
		}
	}
	return moves
}

// MakeMove applies m, which must come from the latest ValidMoves result.
// Checkmate and stalemate are not recomputed here.
func (s *GameState) MakeMove(m Move) {
	s.moveLog = append(s.moveLog, logEntry{
		move:      m,
		castling:  s.castling,
		enPassant: s.enPassant,
		halfmove:  s.halfmove,
		fullmove:  s.fullmove,
		check:     s.check,
		checkmate: s.checkmate,
		stalemate: s.stalemate,
	})

	applyMove(&s.board, m)

	if m.Moved.Kind == types.King {
		if m.Moved.Color == types.White {
			s.castling.WhiteKingSide, s.castling.WhiteQueenSide = false, false
		} else {
			s.castling.BlackKingSide, s.castling.BlackQueenSide = false, false
		}
	}
	s.castling.clearCorner(m.Start)
	s.castling.clearCorner(m.End)

	s.enPassant = types.NoSquare
	if m.DoubleStep {
		s.enPassant = types.Square{Row: (m.Start.Row + m.End.Row) / 2, Col: m.Start.Col}
	}

	if m.Moved.Kind == types.Pawn || m.IsCapture() {
		s.halfmove = 0
	} else {
		s.halfmove++
	}
	if s.sideToMove == types.Black {
		s.fullmove++
	}

	s.sideToMove = s.sideToMove.Opposite()
	s.check = s.InCheck()
}

// UndoMove takes back the last move. It returns false, and changes nothing,
// when there is no move to take back.
func (s *GameState) UndoMove() bool {
	if len(s.moveLog) == 0 {
		return false
	}
	e := s.moveLog[len(s.moveLog)-1]
	s.moveLog = s.moveLog[:len(s.moveLog)-1]

	unapplyMove(&s.board, e.move)
	s.sideToMove = s.sideToMove.Opposite()
	s.castling = e.castling
	s.enPassant = e.enPassant
	s.halfmove = e.halfmove
	s.fullmove = e.fullmove
	s.check = e.check
	s.checkmate = e.checkmate
	s.stalemate = e.stalemate
	return true
}

// clearCorner drops the right belonging to a rook home square.
func (c *CastlingRights) clearCorner(sq types.Square) {
	switch sq {
	case types.Square{Row: 7, Col: 7}:
		c.WhiteKingSide = false
	case types.Square{Row: 7, Col: 0}:
		c.WhiteQueenSide = false
	case types.Square{Row: 0, Col: 7}:
		c.BlackKingSide = false
	case types.Square{Row: 0, Col: 0}:
		c.BlackQueenSide = false
	}
}

// castleRookSquares returns where the castling rook starts and lands.
func castleRookSquares(m Move) (from, to types.Square) {
	if m.End.Col == 6 {
		return types.Square{Row: m.Start.Row, Col: 7}, types.Square{Row: m.Start.Row, Col: 5}
	}
	return types.Square{Row: m.Start.Row, Col: 0}, types.Square{Row: m.Start.Row, Col: 3}
}

func applyMove(b *types.Board, m Move) {
	b.Set(m.Start, types.NoPiece)
	placed := m.Moved
	if m.Promotion != types.NoKind {
		placed.Kind = m.Promotion
	}
	b.Set(m.End, placed)
	if m.EnPassant {
		b.Set(types.Square{Row: m.Start.Row, Col: m.End.Col}, types.NoPiece)
	}
	if m.Castle {
		from, to := castleRookSquares(m)
		b.Set(to, b.Get(from))
		b.Set(from, types.NoPiece)
	}
}

func unapplyMove(b *types.Board, m Move) {
	b.Set(m.Start, m.Moved)
	if m.EnPassant {
		b.Set(m.End, types.NoPiece)
		b.Set(types.Square{Row: m.Start.Row, Col: m.End.Col}, m.Captured)
	} else {
		b.Set(m.End, m.Captured)
	}
	if m.Castle {
		from, to := castleRookSquares(m)
		b.Set(from, b.Get(to))
		b.Set(to, types.NoPiece)
	}
}
