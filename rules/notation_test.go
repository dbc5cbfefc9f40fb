package rules

import "testing"

func TestSAN(t *testing.T) {
	checks := []struct {
		fen  string
		move string
		want string
	}{
		{StartFEN, "e2e4", "e4"},
		{StartFEN, "g1f3", "Nf3"},
		{"rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2", "d8h4", "Qh4#"},
		{"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", "e4d5", "exd5"},
		{"k7/8/8/8/8/8/8/KN3N2 w - - 0 1", "b1d2", "Nbd2"},
		{"k7/8/8/8/8/8/8/KN3N2 w - - 0 1", "f1d2", "Nfd2"},
		{"7k/8/8/R7/8/8/8/R6K w - - 0 1", "a1a3", "R1a3"},
		{"7k/8/8/R7/8/8/8/R6K w - - 0 1", "a5a3", "R5a3"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"8/P7/8/8/8/8/8/k6K w - - 0 1", "a7a8q", "a8=Q+"},
		{"8/P7/8/8/8/8/8/k6K w - - 0 1", "a7a8n", "a8=N"},
	}
	for _, c := range checks {
		s := mustFEN(t, c.fen)
		m, ok := FindMove(s.ValidMoves(), parseMove(t, s, c.move))
		if !ok {
			t.Fatalf("%s not legal in %s", c.move, c.fen)
		}
		before := s.FEN()
		if got := SAN(s, m); got != c.want {
			t.Errorf("SAN(%s) = %q, want %q", c.move, got, c.want)
		}
		if s.FEN() != before {
			t.Errorf("SAN(%s) modified the state", c.move)
		}
	}
}

func TestCoordinateNotation(t *testing.T) {
	s := mustFEN(t, "8/P7/8/8/8/8/8/k6K w - - 0 1")
	m := parseMove(t, s, "a7a8r")
	if got := m.Notation(); got != "a7a8r" {
		t.Errorf("Notation() = %q, want a7a8r", got)
	}
	if got := NewGameState().ValidMoves()[0].String(); len(got) != 4 {
		t.Errorf("String() = %q, want four characters", got)
	}
}
