package types

// Board is the 8x8 grid of piece occupancy, indexed as Board[row][col].
// It is a plain array so assignment copies it.
type Board [8][8]Piece

// Get returns the piece on sq. Squares off the board read as empty.
func (b *Board) Get(sq Square) Piece {
	if !sq.OnBoard() {
		return NoPiece
	}
	return b[sq.Row][sq.Col]
}

// Set places p on sq. Squares off the board are ignored.
func (b *Board) Set(sq Square, p Piece) {
	if !sq.OnBoard() {
		return
	}
	b[sq.Row][sq.Col] = p
}

// Count returns the number of occupied squares.
func (b *Board) Count() int {
	n := 0
	for r := range b {
		for c := range b[r] {
			if !b[r][c].Empty() {
				n++
			}
		}
	}
	return n
}

// KingSquare returns the square of color's king.
func (b *Board) KingSquare(color Color) (Square, bool) {
	for r := range b {
		for c := range b[r] {
			if p := b[r][c]; p.Kind == King && p.Color == color {
				return Square{Row: r, Col: c}, true
			}
		}
	}
	return NoSquare, false
}

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardBoard returns the standard initial position.
func NewStandardBoard() Board {
	var b Board
	for c := 0; c < 8; c++ {
		b[0][c] = Piece{Color: Black, Kind: backRank[c]}
		b[1][c] = Piece{Color: Black, Kind: Pawn}
		b[6][c] = Piece{Color: White, Kind: Pawn}
		b[7][c] = Piece{Color: White, Kind: backRank[c]}
	}
	return b
}
