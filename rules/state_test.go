package rules

import (
	"math/rand"
	"testing"

	"blup-chess/types"
)

func TestPerftStartPosition(t *testing.T) {
	want := []uint64{1, 20, 400, 8902}
	s := NewGameState()
	for depth, n := range want {
		if got := Perft(s, depth); got != n {
			t.Errorf("Perft(start, %d) = %d, want %d", depth, got, n)
		}
	}
}

func TestPerftReferencePositions(t *testing.T) {
	checks := []struct {
		name  string
		fen   string
		nodes []uint64
	}{
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48, 2039}},
		{"endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812}},
		{"promotions", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6, 264}},
		{"middlegame", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486}},
	}
	for _, c := range checks {
		s := mustFEN(t, c.fen)
		for i, n := range c.nodes {
			if got := Perft(s, i+1); got != n {
				t.Errorf("%s: Perft(%d) = %d, want %d", c.name, i+1, got, n)
			}
		}
	}
}

func TestDivideSumsToPerft(t *testing.T) {
	s := NewGameState()
	var total uint64
	entries := Divide(s, 2)
	if len(entries) != 20 {
		t.Fatalf("len(Divide) = %d, want 20", len(entries))
	}
	for _, e := range entries {
		if e.Nodes != 20 {
			t.Errorf("%s: %d nodes, want 20", e.Move, e.Nodes)
		}
		total += e.Nodes
	}
	if total != 400 {
		t.Errorf("total = %d, want 400", total)
	}
}

type snapshot struct {
	fen       string
	check     bool
	checkmate bool
	stalemate bool
	ply       int
}

func snap(s *GameState) snapshot {
	return snapshot{s.FEN(), s.check, s.checkmate, s.stalemate, s.Ply()}
}

func TestMakeUndoIsReversible(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 12; game++ {
		s := NewGameState()
		for ply := 0; ply < 120; ply++ {
			moves := s.ValidMoves()
			if len(moves) == 0 {
				break
			}
			before := snap(s)
			mover := s.SideToMove()
			for _, m := range moves {
				s.MakeMove(m)
				if s.SideToMove() != mover.Opposite() {
					t.Fatalf("%s: side to move did not alternate", m)
				}
				if kingAttacked(&s.board, mover) {
					t.Fatalf("%s from %s leaves own king attacked", m, before.fen)
				}
				if !s.UndoMove() {
					t.Fatal("UndoMove returned false after MakeMove")
				}
				if after := snap(s); after != before {
					t.Fatalf("%s not reversible:\n got %+v\nwant %+v", m, after, before)
				}
			}
			s.MakeMove(moves[rng.Intn(len(moves))])
		}
	}
}

func TestUndoEmptyLogIsNoop(t *testing.T) {
	s := NewGameState()
	before := snap(s)
	if s.UndoMove() {
		t.Error("UndoMove on a fresh game returned true")
	}
	if s.UndoMove() {
		t.Error("second UndoMove returned true")
	}
	if snap(s) != before {
		t.Error("UndoMove on an empty log changed the state")
	}
}

func TestFoolsMate(t *testing.T) {
	s := NewGameState()
	play(t, s, "f2f3", "e7e5", "g2g4", "d8h4")
	if !s.Checkmate() {
		t.Error("Checkmate() = false, want true")
	}
	if s.Stalemate() {
		t.Error("Stalemate() = true, want false")
	}
	if !s.WhiteToMove() {
		t.Error("WhiteToMove() = false, want true")
	}
	if got := Outcome(s); got != "Black wins by checkmate" {
		t.Errorf("Outcome = %q", got)
	}

	s.UndoMove()
	s.ValidMoves()
	if s.Checkmate() || s.Stalemate() {
		t.Error("flags still set after undoing the mating move")
	}
}

func TestScholarsCapture(t *testing.T) {
	s := NewGameState()
	play(t, s, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6")
	before := s.PieceCount()
	m, ok := FindMove(s.ValidMoves(), parseMove(t, s, "c4f7"))
	if !ok {
		t.Fatal("Bxf7+ not legal")
	}
	if !m.IsCapture() || m.Captured.Kind != types.Pawn {
		t.Errorf("captured = %v, want black pawn", m.Captured)
	}
	s.MakeMove(m)
	if got := s.PieceCount(); got != before-1 {
		t.Errorf("PieceCount = %d, want %d", got, before-1)
	}
	if !s.InCheck() {
		t.Error("Bxf7 should give check")
	}
}

func TestStalemate(t *testing.T) {
	s := mustFEN(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	if moves := s.ValidMoves(); len(moves) != 0 {
		t.Fatalf("len(ValidMoves) = %d, want 0", len(moves))
	}
	if !s.Stalemate() || s.Checkmate() {
		t.Errorf("Stalemate=%v Checkmate=%v, want true/false", s.Stalemate(), s.Checkmate())
	}
	if st := StatusOf(s); st != Stalemate {
		t.Errorf("StatusOf = %s, want stalemate", st)
	}
}

func TestStatusOf(t *testing.T) {
	checks := []struct {
		fen  string
		want Status
	}{
		{StartFEN, Normal},
		{"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", Checkmate},
		{"4k3/8/8/8/8/8/4q3/4K3 w - - 0 1", Check},
		{"k7/8/1Q6/8/8/8/8/7K b - - 0 1", Stalemate},
	}
	for _, c := range checks {
		s := mustFEN(t, c.fen)
		if got := StatusOf(s); got != c.want {
			t.Errorf("StatusOf(%s) = %s, want %s", c.fen, got, c.want)
		}
	}
}

func TestCastling(t *testing.T) {
	s := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	moves := s.ValidMoves()
	if !hasMove(moves, "e1g1") || !hasMove(moves, "e1c1") {
		t.Fatal("both castles should be legal")
	}
	play(t, s, "e1g1")
	b := s.Board()
	if b.Get(sq(t, "g1")).Kind != types.King || b.Get(sq(t, "f1")).Kind != types.Rook {
		t.Error("castling did not move king and rook")
	}
	if c := s.Castling(); c.WhiteKingSide || c.WhiteQueenSide || !c.BlackKingSide {
		t.Errorf("castling rights = %+v", c)
	}
	s.UndoMove()
	b = s.Board()
	if b.Get(sq(t, "h1")).Kind != types.Rook || b.Get(sq(t, "e1")).Kind != types.King {
		t.Error("undo did not restore king and rook")
	}

	// f1 is covered by the rook on f8.
	s = mustFEN(t, "r3kr2/8/8/8/8/8/8/R3K2R w KQq - 0 1")
	moves = s.ValidMoves()
	if hasMove(moves, "e1g1") {
		t.Error("castling through an attacked square")
	}
	if !hasMove(moves, "e1c1") {
		t.Error("queen side castling should be legal")
	}

	// Out of check.
	s = mustFEN(t, "r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1")
	if moves := s.ValidMoves(); hasMove(moves, "e1g1") || hasMove(moves, "e1c1") {
		t.Error("castling out of check")
	}
}

func TestRookCaptureDropsCastlingRight(t *testing.T) {
	s := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, s, "a1a8")
	if c := s.Castling(); c.BlackQueenSide || c.WhiteQueenSide {
		t.Errorf("castling rights = %+v, want both queen sides gone", c)
	}
}

func TestEnPassant(t *testing.T) {
	s := NewGameState()
	play(t, s, "e2e4", "a7a6", "e4e5", "f7f5")
	if ep := s.EnPassant(); ep.String() != "f6" {
		t.Fatalf("EnPassant = %s, want f6", ep)
	}
	before := s.PieceCount()
	m, ok := FindMove(s.ValidMoves(), parseMove(t, s, "e5f6"))
	if !ok || !m.EnPassant {
		t.Fatalf("e5f6 en passant not generated (ok=%v)", ok)
	}
	built := parseMove(t, s, "e5f6")
	if !built.EnPassant || built.Captured.Kind != types.Pawn {
		t.Error("NewMove did not resolve en passant")
	}
	s.MakeMove(m)
	b := s.Board()
	if !b.Get(sq(t, "f5")).Empty() {
		t.Error("captured pawn still on f5")
	}
	if s.PieceCount() != before-1 {
		t.Errorf("PieceCount = %d, want %d", s.PieceCount(), before-1)
	}
	s.UndoMove()
	b = s.Board()
	if b.Get(sq(t, "f5")) != (types.Piece{Color: types.Black, Kind: types.Pawn}) {
		t.Error("undo did not restore the captured pawn")
	}

	// The right expires after one move.
	play(t, s, "h2h3", "h7h6")
	if hasMove(s.ValidMoves(), "e5f6") {
		t.Error("en passant still available a move later")
	}
}

func TestPinnedEnPassant(t *testing.T) {
	// Taking en passant would expose the king on the fifth rank.
	s := mustFEN(t, "8/8/8/K2pP2r/8/8/8/7k w - d6 0 1")
	if hasMove(s.ValidMoves(), "e5d6") {
		t.Error("en passant exposing the king was generated")
	}
}

func TestPromotion(t *testing.T) {
	s := mustFEN(t, "8/P7/8/8/8/8/8/k6K w - - 0 1")
	moves := s.ValidMoves()
	for _, text := range []string{"a7a8q", "a7a8r", "a7a8b", "a7a8n"} {
		if !hasMove(moves, text) {
			t.Errorf("missing %s", text)
		}
	}
	built := parseMove(t, s, "a7a8")
	if built.Promotion != types.Queen {
		t.Errorf("NewMove promotion = %s, want queen", built.Promotion)
	}
	play(t, s, "a7a8n")
	b := s.Board()
	if b.Get(sq(t, "a8")) != (types.Piece{Color: types.White, Kind: types.Knight}) {
		t.Errorf("a8 = %v, want white knight", b.Get(sq(t, "a8")))
	}
	s.UndoMove()
	b = s.Board()
	if b.Get(sq(t, "a7")).Kind != types.Pawn {
		t.Error("undo did not restore the pawn")
	}
}

func TestMoveIdentity(t *testing.T) {
	s := NewGameState()
	board := s.Board()
	a := NewMove(sq(t, "e2"), sq(t, "e4"), &board)
	b := Move{Start: sq(t, "e2"), End: sq(t, "e4")}
	if !a.Equal(b) {
		t.Error("moves with the same squares should be equal")
	}
	if !a.DoubleStep {
		t.Error("e2e4 should be a double step")
	}
	c := Move{Start: sq(t, "e2"), End: sq(t, "e3")}
	if a.Equal(c) {
		t.Error("different moves compared equal")
	}
	if _, ok := FindMove(s.ValidMoves(), Move{Start: sq(t, "e2"), End: sq(t, "e5")}); ok {
		t.Error("FindMove matched an illegal move")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewGameState()
	play(t, s, "e2e4")
	c := s.Clone()
	play(t, c, "e7e5", "g1f3")
	if s.Ply() != 1 || c.Ply() != 3 {
		t.Errorf("Ply = %d/%d, want 1/3", s.Ply(), c.Ply())
	}
	c.UndoMove()
	c.UndoMove()
	c.UndoMove()
	if c.FEN() != StartFEN {
		t.Errorf("clone FEN = %s", c.FEN())
	}
	if last, _ := s.LastMove(); last.Notation() != "e2e4" {
		t.Errorf("LastMove = %s, want e2e4", last)
	}
}

func sq(t *testing.T, name string) types.Square {
	t.Helper()
	s, err := types.ParseSquare(name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}
