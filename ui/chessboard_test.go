package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"blup-chess/config"
	"blup-chess/engine"
	"blup-chess/engine/local"
	"blup-chess/types"
)

func sq(t *testing.T, name string) types.Square {
	t.Helper()
	s, err := types.ParseSquare(name)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newBoard(t *testing.T, flipped bool) (*ChessBoardUI, *local.LocalEngine) {
	t.Helper()
	cfg := config.DefaultConfig
	board := NewChessBoard(tview.NewApplication(), &cfg, tview.NewTextView())
	gameCfg := engine.DefaultConfig()
	gameCfg.Black = engine.Human
	eng := local.NewLocalEngine(gameCfg, zerolog.Nop())
	if err := board.ConnectEngine(eng, flipped); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(board.Close)
	return board, eng
}

func TestSelectPlaysMove(t *testing.T) {
	board, eng := newBoard(t, false)

	board.cursor = sq(t, "e2")
	board.Select()
	if p := board.PickedUp(); p == nil || *p != sq(t, "e2") {
		t.Fatalf("expected e2 picked up, got %v", p)
	}
	if targets := board.targets(); !targets[sq(t, "e4")] || !targets[sq(t, "e3")] || len(targets) != 2 {
		t.Errorf("unexpected targets %v", targets)
	}

	board.cursor = sq(t, "e4")
	board.Select()
	if eng.State().Ply() != 1 {
		t.Fatal("expected the move to be played")
	}
	if h := board.History(); len(h) != 1 || h[0].SAN != "e4" {
		t.Errorf("unexpected history %+v", h)
	}
	if board.PickedUp() != nil {
		t.Error("piece still picked up after the move")
	}
}

func TestSelectIgnoresOpponentPieces(t *testing.T) {
	board, _ := newBoard(t, false)
	board.cursor = sq(t, "e7")
	board.Select()
	if board.PickedUp() != nil {
		t.Error("picked up a black piece on white's turn")
	}
}

func TestSelectSwitchesAndDrops(t *testing.T) {
	board, _ := newBoard(t, false)
	board.cursor = sq(t, "e2")
	board.Select()
	board.cursor = sq(t, "d2")
	board.Select()
	if p := board.PickedUp(); p == nil || *p != sq(t, "d2") {
		t.Fatalf("expected d2 picked up, got %v", p)
	}
	board.Select()
	if board.PickedUp() != nil {
		t.Error("selecting the same square should drop the piece")
	}
}

func TestIllegalMoveMessage(t *testing.T) {
	board, eng := newBoard(t, false)
	board.cursor = sq(t, "e2")
	board.Select()
	board.cursor = sq(t, "e5")
	board.Select()
	if eng.State().Ply() != 0 {
		t.Error("illegal move was played")
	}
	if board.message == "" {
		t.Error("expected an illegal move message")
	}
}

func TestMoveSelection(t *testing.T) {
	board, _ := newBoard(t, false)
	board.MoveSelection(1, 0)
	if tile := board.SelectedTile(); tile == nil || *tile != sq(t, "e1") {
		t.Fatalf("expected the cursor to start on the white king, got %v", tile)
	}
	board.MoveSelection(0, -1)
	if tile := board.SelectedTile(); *tile != sq(t, "e2") {
		t.Errorf("expected e2, got %v", tile)
	}
	board.cursor = sq(t, "h8")
	board.MoveSelection(1, 0)
	if tile := board.SelectedTile(); *tile != sq(t, "h8") {
		t.Errorf("cursor left the board: %v", tile)
	}

	flipped, _ := newBoard(t, true)
	flipped.cursor = sq(t, "e2")
	flipped.MoveSelection(1, 0)
	if tile := flipped.SelectedTile(); *tile != sq(t, "d2") {
		t.Errorf("expected d2 when flipped, got %v", tile)
	}
}

func TestUndoAndReset(t *testing.T) {
	board, eng := newBoard(t, false)
	if err := eng.PlayMove(sq(t, "e2"), sq(t, "e4"), types.NoKind); err != nil {
		t.Fatal(err)
	}
	if err := eng.PlayMove(sq(t, "e7"), sq(t, "e5"), types.NoKind); err != nil {
		t.Fatal(err)
	}
	board.Undo()
	if len(board.History()) != 1 {
		t.Errorf("expected one move left, got %d", len(board.History()))
	}
	board.Reset()
	if len(board.History()) != 0 || board.state.Ply() != 0 {
		t.Error("expected an empty game after reset")
	}
}

func TestDrawBoard(t *testing.T) {
	for _, flipped := range []bool{false, true} {
		board, _ := newBoard(t, flipped)
		screen := tcell.NewSimulationScreen("")
		if err := screen.Init(); err != nil {
			t.Fatal(err)
		}
		screen.SetSize(40, 12)
		board.Box.SetRect(0, 0, 40, 12)
		board.Box.Draw(screen)
		screen.Show()

		cells, width, _ := screen.GetContents()
		at := func(col, row int) rune {
			c := cells[row*width+col]
			if len(c.Runes) == 0 {
				return ' '
			}
			return c.Runes[0]
		}

		// Top left square holds a rook either way; the rank label tells the sides apart.
		if r := at(3+1, 0); r != '♜' {
			t.Errorf("flipped=%v: expected a rook in the corner, got %q", flipped, r)
		}
		wantRank, wantFile := '8', 'a'
		if flipped {
			wantRank, wantFile = '1', 'h'
		}
		if r := at(1, 0); r != wantRank {
			t.Errorf("flipped=%v: expected rank %q, got %q", flipped, wantRank, r)
		}
		if r := at(3+1, 8); r != wantFile {
			t.Errorf("flipped=%v: expected file %q, got %q", flipped, wantFile, r)
		}
		screen.Fini()
	}
}

func TestSelectUnderpromotes(t *testing.T) {
	cfg := config.DefaultConfig
	board := NewChessBoard(tview.NewApplication(), &cfg, tview.NewTextView())
	gameCfg := engine.DefaultConfig()
	gameCfg.Black = engine.Human
	gameCfg.FEN = "8/P6k/8/8/8/8/8/K7 w - - 0 1"
	eng := local.NewLocalEngine(gameCfg, zerolog.Nop())
	if err := board.ConnectEngine(eng, false); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(board.Close)

	board.cursor = sq(t, "a7")
	board.Select()
	if !board.promoting() {
		t.Fatal("expected a pawn ready to promote")
	}
	if k := board.CyclePromotion(); k != types.Rook {
		t.Errorf("expected rook after queen, got %s", k)
	}
	if k := board.CyclePromotion(); k != types.Bishop {
		t.Errorf("expected bishop after rook, got %s", k)
	}
	board.CyclePromotion()

	board.cursor = sq(t, "a8")
	board.Select()
	last, ok := eng.State().LastMove()
	if !ok || last.Promotion != types.Knight {
		t.Fatalf("expected knight promotion, got %v", last)
	}
	if board.promotion != types.Queen {
		t.Errorf("promotion choice not reset, got %s", board.promotion)
	}
}
