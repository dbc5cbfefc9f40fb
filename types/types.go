// Package types contains shared data structures for blup-chess.
package types

import "fmt"

// Color is the side a piece belongs to.
type Color int

const (
	White Color = iota
	Black
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Kind is the type of a piece. NoKind marks an empty square or "no promotion".
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = [...]string{"", "", "N", "B", "R", "Q", "K"}

// Letter returns the upper-case algebraic letter of the kind. Pawns have none.
func (k Kind) Letter() string {
	if k < NoKind || k > King {
		return ""
	}
	return kindLetters[k]
}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Piece is a (color, kind) pair. The zero value is an empty square.
type Piece struct {
	Color Color
	Kind  Kind
}

// NoPiece is the empty square value.
var NoPiece = Piece{}

// Empty returns true if p represents an empty square.
func (p Piece) Empty() bool {
	return p.Kind == NoKind
}

// String returns the two-character code used by the board printouts: "wK", "bp", "--".
func (p Piece) String() string {
	if p.Empty() {
		return "--"
	}
	c := "w"
	if p.Color == Black {
		c = "b"
	}
	if p.Kind == Pawn {
		return c + "p"
	}
	return c + p.Kind.Letter()
}

// FEN returns the single FEN letter of the piece: upper case for White.
func (p Piece) FEN() string {
	if p.Empty() {
		return ""
	}
	l := p.Kind.Letter()
	if p.Kind == Pawn {
		l = "P"
	}
	if p.Color == Black {
		return string(l[0] + ('a' - 'A'))
	}
	return l
}

// PieceFromFEN parses a single FEN piece letter.
func PieceFromFEN(r rune) (Piece, bool) {
	color := White
	if r >= 'a' && r <= 'z' {
		color = Black
		r -= 'a' - 'A'
	}
	var kind Kind
	switch r {
	case 'P':
		kind = Pawn
	case 'N':
		kind = Knight
	case 'B':
		kind = Bishop
	case 'R':
		kind = Rook
	case 'Q':
		kind = Queen
	case 'K':
		kind = King
	default:
		return NoPiece, false
	}
	return Piece{Color: color, Kind: kind}, true
}

// Square is a (row, column) pair. Row 0 is Black's back rank (rank 8),
// row 7 is White's (rank 1). Column 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// NoSquare marks the absence of a square, e.g. no en passant target.
var NoSquare = Square{Row: -1, Col: -1}

// OnBoard returns true if the square lies inside the 8x8 grid.
func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// Rank returns the chess rank (1-8) of the square.
func (s Square) Rank() int {
	return 8 - s.Row
}

// File returns the file letter of the square.
func (s Square) File() byte {
	return byte('a' + s.Col)
}

// String returns the algebraic name of the square, "e4". NoSquare renders as "-".
func (s Square) String() string {
	if !s.OnBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%d", s.File(), s.Rank())
}

// ParseSquare parses an algebraic square name such as "e4".
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", name)
	}
	file, rank := name[0], name[1]
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("invalid square: %q", name)
	}
	return Square{Row: 8 - int(rank-'0'), Col: int(file - 'a')}, nil
}
