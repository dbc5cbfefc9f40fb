package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"blup-chess/types"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is returned for malformed FEN strings.
var ErrInvalidFEN = errors.New("invalid FEN")

// ParseFEN builds a game state from a FEN string. The halfmove clock and
// fullmove number are optional.
func ParseFEN(fen string) (*GameState, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w: expected 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	s := &GameState{enPassant: types.NoSquare, fullmove: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for row, rank := range ranks {
		col := 0
		for _, r := range rank {
			if r >= '1' && r <= '8' {
				col += int(r - '0')
				continue
			}
			p, ok := types.PieceFromFEN(r)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, r)
			}
			if col > 7 {
				return nil, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, 8-row)
			}
			s.board[row][col] = p
			col++
		}
		if col != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, 8-row, col)
		}
	}
	for _, color := range []types.Color{types.White, types.Black} {
		if n := countKings(&s.board, color); n != 1 {
			return nil, fmt.Errorf("%w: %s has %d kings", ErrInvalidFEN, color, n)
		}
	}

	switch fields[1] {
	case "w":
		s.sideToMove = types.White
	case "b":
		s.sideToMove = types.Black
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}
	if kingAttacked(&s.board, s.sideToMove.Opposite()) {
		return nil, fmt.Errorf("%w: %s is in check but not to move", ErrInvalidFEN, s.sideToMove.Opposite())
	}

	if fields[2] != "-" {
		for _, r := range fields[2] {
			switch r {
			case 'K':
				s.castling.WhiteKingSide = true
			case 'Q':
				s.castling.WhiteQueenSide = true
			case 'k':
				s.castling.BlackKingSide = true
			case 'q':
				s.castling.BlackQueenSide = true
			default:
				return nil, fmt.Errorf("%w: bad castling field %q", ErrInvalidFEN, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := types.ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
		}
		if !validEnPassant(&s.board, sq, s.sideToMove) {
			return nil, fmt.Errorf("%w: no capturable pawn for en passant square %s", ErrInvalidFEN, sq)
		}
		s.enPassant = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: bad halfmove clock %q", ErrInvalidFEN, fields[4])
		}
		s.halfmove = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: bad fullmove number %q", ErrInvalidFEN, fields[5])
		}
		s.fullmove = n
	}

	s.check = s.InCheck()
	return s, nil
}

// FEN returns the position as a FEN string.
func (s *GameState) FEN() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := s.board[row][col]
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.FEN())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if s.sideToMove == types.Black {
		side = "b"
	}

	castling := ""
	if s.castling.WhiteKingSide {
		castling += "K"
	}
	if s.castling.WhiteQueenSide {
		castling += "Q"
	}
	if s.castling.BlackKingSide {
		castling += "k"
	}
	if s.castling.BlackQueenSide {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}

	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), side, castling, s.enPassant, s.halfmove, s.fullmove)
}

func countKings(b *types.Board, color types.Color) int {
	n := 0
	for r := range b {
		for c := range b[r] {
			if b[r][c] == (types.Piece{Color: color, Kind: types.King}) {
				n++
			}
		}
	}
	return n
}

// validEnPassant checks that sq is the empty square a pawn of the side not
// to move just skipped over.
func validEnPassant(b *types.Board, sq types.Square, toMove types.Color) bool {
	row, dir := 2, 1
	if toMove == types.Black {
		row, dir = 5, -1
	}
	if sq.Row != row || !b.Get(sq).Empty() {
		return false
	}
	if !b.Get(types.Square{Row: row - dir, Col: sq.Col}).Empty() {
		return false
	}
	pawn := types.Piece{Color: toMove.Opposite(), Kind: types.Pawn}
	return b.Get(types.Square{Row: row + dir, Col: sq.Col}) == pawn
}
