package rules

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/notnil/chess"
)

// referenceMoves returns the legal moves of fen in coordinate notation
// according to github.com/notnil/chess.
func referenceMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("chess.FEN(%q): %v", fen, err)
	}
	game := chess.NewGame(opt)
	var out []string
	for _, m := range game.ValidMoves() {
		out = append(out, strings.ToLower(m.String()))
	}
	sort.Strings(out)
	return out
}

func ourMoves(s *GameState) []string {
	var out []string
	for _, m := range s.ValidMoves() {
		out = append(out, m.Notation())
	}
	sort.Strings(out)
	return out
}

func TestMovesMatchReferenceImplementation(t *testing.T) {
	rng := rand.New(rand.NewSource(1998))
	starts := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	for _, start := range starts {
		for game := 0; game < 6; game++ {
			s := mustFEN(t, start)
			for ply := 0; ply < 60; ply++ {
				fen := s.FEN()
				got, want := ourMoves(s), referenceMoves(t, fen)
				if strings.Join(got, " ") != strings.Join(want, " ") {
					t.Fatalf("moves differ in %s\n got %v\nwant %v", fen, got, want)
				}
				moves := s.ValidMoves()
				if len(moves) == 0 {
					break
				}
				s.MakeMove(moves[rng.Intn(len(moves))])
			}
		}
	}
}
