package rules

import (
	"testing"

	"blup-chess/types"
)

// mustFEN parses fen or fails the test.
func mustFEN(t *testing.T, fen string) *GameState {
	t.Helper()
	s, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return s
}

// parseMove builds a move from coordinate notation ("e2e4", "e7e8n") on s.
func parseMove(t *testing.T, s *GameState, text string) Move {
	t.Helper()
	if len(text) != 4 && len(text) != 5 {
		t.Fatalf("bad move text %q", text)
	}
	start, err := types.ParseSquare(text[0:2])
	if err != nil {
		t.Fatal(err)
	}
	end, err := types.ParseSquare(text[2:4])
	if err != nil {
		t.Fatal(err)
	}
	board := s.Board()
	if len(text) == 5 {
		kinds := map[byte]types.Kind{'q': types.Queen, 'r': types.Rook, 'b': types.Bishop, 'n': types.Knight}
		return NewPromotion(start, end, &board, kinds[text[4]])
	}
	return NewMove(start, end, &board)
}

// play validates each move against ValidMoves and applies it.
func play(t *testing.T, s *GameState, moves ...string) {
	t.Helper()
	for _, text := range moves {
		m, ok := FindMove(s.ValidMoves(), parseMove(t, s, text))
		if !ok {
			t.Fatalf("move %s is not legal in %s", text, s.FEN())
		}
		s.MakeMove(m)
	}
	s.ValidMoves()
}

func hasMove(moves []Move, text string) bool {
	for _, m := range moves {
		if m.Notation() == text {
			return true
		}
	}
	return false
}
