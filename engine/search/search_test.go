package search

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"blup-chess/rules"
)

func mustFEN(t *testing.T, fen string) *rules.GameState {
	t.Helper()
	s, err := rules.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return s
}

func newSearcher(depth int) *Searcher {
	return New(depth, 0, 1, zerolog.Nop())
}

func TestFindsMateInOne(t *testing.T) {
	s := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	res := newSearcher(3).Search(context.Background(), s, s.ValidMoves())
	if !res.Found {
		t.Fatal("expected a move")
	}
	if got := res.Move.Notation(); got != "a1a8" {
		t.Errorf("expected a1a8, got %s", got)
	}
	if res.Score != MateScore-1 {
		t.Errorf("expected mate score %d, got %d", MateScore-1, res.Score)
	}
}

func TestTakesHangingQueen(t *testing.T) {
	s := mustFEN(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	m, ok := newSearcher(2).FindBestMove(context.Background(), s, s.ValidMoves())
	if !ok {
		t.Fatal("expected a move")
	}
	if m.Notation() != "d2d5" {
		t.Errorf("expected d2d5, got %s", m.Notation())
	}
}

func TestSearchLeavesStateAlone(t *testing.T) {
	s := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := s.FEN()
	plies := s.Ply()
	newSearcher(1).Search(context.Background(), s, s.ValidMoves())
	if s.FEN() != before || s.Ply() != plies {
		t.Errorf("state changed: %s (ply %d) -> %s (ply %d)", before, plies, s.FEN(), s.Ply())
	}
}

func TestResultComesFromCandidates(t *testing.T) {
	s := rules.NewGameState()
	all := s.ValidMoves()
	var only []rules.Move
	for _, m := range all {
		if m.Notation() == "a2a3" {
			only = append(only, m)
		}
	}
	m, ok := newSearcher(2).FindBestMove(context.Background(), s, only)
	if !ok || m.Notation() != "a2a3" {
		t.Errorf("expected a2a3, got %s (found %v)", m.Notation(), ok)
	}
}

func TestNoCandidates(t *testing.T) {
	s := rules.NewGameState()
	if _, ok := newSearcher(2).FindBestMove(context.Background(), s, nil); ok {
		t.Error("expected no move without candidates")
	}
}

func TestCancelledSearchFindsNothing(t *testing.T) {
	s := rules.NewGameState()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := newSearcher(4).FindBestMove(ctx, s, s.ValidMoves()); ok {
		t.Error("expected cancelled search to return no move")
	}
}

func TestFindBestMoveToWritesOnce(t *testing.T) {
	s := rules.NewGameState()
	out := make(chan Result, 2)
	newSearcher(1).FindBestMoveTo(context.Background(), s, s.ValidMoves(), out)
	if len(out) != 1 {
		t.Fatalf("expected exactly one result, got %d", len(out))
	}
	res := <-out
	if !res.Found {
		t.Error("expected a move")
	}
	if _, ok := rules.FindMove(s.ValidMoves(), res.Move); !ok {
		t.Errorf("%s is not legal", res.Move)
	}
}

func TestFindRandomMove(t *testing.T) {
	s := rules.NewGameState()
	moves := s.ValidMoves()
	searcher := newSearcher(1)
	for i := 0; i < 50; i++ {
		m := searcher.FindRandomMove(moves)
		if _, ok := rules.FindMove(moves, m); !ok {
			t.Fatalf("random move %s is not a candidate", m)
		}
	}
}

func TestFindRandomMovePanicsWhenEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	newSearcher(1).FindRandomMove(nil)
}

func TestEvaluate(t *testing.T) {
	if got := Evaluate(rules.NewGameState()); got != 0 {
		t.Errorf("start position should be level, got %d", got)
	}

	white := mustFEN(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	black := mustFEN(t, "4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	if Evaluate(white) <= 0 {
		t.Errorf("extra queen should favour white to move, got %d", Evaluate(white))
	}
	if Evaluate(black) != -Evaluate(white) {
		t.Errorf("expected %d for black to move, got %d", -Evaluate(white), Evaluate(black))
	}
}

func TestOrderMoves(t *testing.T) {
	s := mustFEN(t, "4k3/1P6/8/3q4/8/8/3R4/4K3 w - - 0 1")
	ordered := orderMoves(s.ValidMoves())
	if ordered[0].Promotion == 0 {
		t.Errorf("expected a promotion first, got %s", ordered[0])
	}
	var sawQuiet bool
	for _, m := range ordered {
		if !m.IsCapture() && m.Promotion == 0 {
			sawQuiet = true
		} else if sawQuiet {
			t.Fatalf("%s ordered after a quiet move", m)
		}
	}
}
