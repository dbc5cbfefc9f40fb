// Package ui specifies custom controls for tview to assist in playing chess in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"blup-chess/config"
	"blup-chess/engine"
	"blup-chess/rules"
	"blup-chess/types"
)

// Style indices into ChessBoardUI.styles.
const (
	styleLight = iota
	styleDark
	styleWhitePiece
	styleBlackPiece
	styleCursor
	styleSelected
	styleLastPlayed
	styleCheck
	styleTarget
)

// cellWidth is the number of terminal columns per square.
const cellWidth = 3

type ChessBoardUI struct {
	Box       *tview.Box
	state     *rules.GameState
	moves     []rules.Move
	history   []engine.MoveEvent
	hint      *tview.TextView
	cfg       *config.Config
	finished  bool
	outcome   string
	message   string
	cursor    types.Square
	selected  types.Square
	flipped   bool
	app       *tview.Application
	eng       engine.GameEngine
	styles    []tcell.Color
	white     []rune
	black     []rune
	infoPanel *GameInfoPanel
	focusMode bool
	promotion types.Kind
}

// promotionOrder is the cycle CyclePromotion walks through.
var promotionOrder = []types.Kind{types.Queen, types.Rook, types.Bishop, types.Knight}

// CyclePromotion switches the piece a pawn promotes to and returns it.
func (g *ChessBoardUI) CyclePromotion() types.Kind {
	for i, k := range promotionOrder {
		if k == g.promotion {
			g.promotion = promotionOrder[(i+1)%len(promotionOrder)]
			break
		}
	}
	g.refreshHint()
	return g.promotion
}

// promoting returns true if the picked up piece is a pawn one step from the last rank.
func (g *ChessBoardUI) promoting() bool {
	if g.state == nil || !g.selected.OnBoard() {
		return false
	}
	b := g.state.Board()
	p := b.Get(g.selected)
	if p.Kind != types.Pawn {
		return false
	}
	if p.Color == types.White {
		return g.selected.Row == 1
	}
	return g.selected.Row == 6
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *ChessBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *ChessBoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// SelectedTile returns the square under the cursor, or nil when the cursor is hidden.
func (g *ChessBoardUI) SelectedTile() *types.Square {
	if !g.cursor.OnBoard() {
		return nil
	}
	sq := g.cursor
	return &sq
}

// PickedUp returns the square of the piece picked up for moving, or nil.
func (g *ChessBoardUI) PickedUp() *types.Square {
	if !g.selected.OnBoard() {
		return nil
	}
	sq := g.selected
	return &sq
}

// MoveSelection moves the cursor by h columns and v rows as seen on screen.
func (g *ChessBoardUI) MoveSelection(h, v int) {
	if g.finished || g.state == nil {
		g.ResetSelection()
		return
	}
	if g.SelectedTile() == nil {
		g.cursor = g.startCursor()
		return
	}
	if g.flipped {
		h, v = -h, -v
	}
	next := types.Square{Row: g.cursor.Row + v, Col: g.cursor.Col + h}
	if !next.OnBoard() {
		return
	}
	g.cursor = next
}

// startCursor puts the cursor on the last move, or the king of the side to move.
func (g *ChessBoardUI) startCursor() types.Square {
	if last, ok := g.state.LastMove(); ok {
		return last.End
	}
	board := g.state.Board()
	if sq, ok := board.KingSquare(g.state.SideToMove()); ok {
		return sq
	}
	return types.Square{Row: 4, Col: 4}
}

// ResetSelection hides the cursor and drops a picked up piece.
func (g *ChessBoardUI) ResetSelection() {
	g.cursor = types.NoSquare
	g.selected = types.NoSquare
}

// Select acts on the square under the cursor: the first press picks up one of
// your pieces, the second plays it to the cursor. Pressing on another of your
// pieces picks that one up instead, pressing on the same square drops it.
func (g *ChessBoardUI) Select() {
	tile := g.SelectedTile()
	if tile == nil || g.finished || g.eng == nil || !g.eng.IsMyTurn() {
		return
	}
	board := g.state.Board()
	piece := board.Get(*tile)
	own := !piece.Empty() && piece.Color == g.state.SideToMove()

	switch {
	case g.PickedUp() == nil:
		if own {
			g.selected = *tile
			g.message = ""
		}
	case *tile == g.selected:
		g.selected = types.NoSquare
	case own:
		g.selected = *tile
	default:
		promotion := types.NoKind
		if g.promoting() {
			promotion = g.promotion
		}
		g.PlayMove(g.selected, *tile, promotion)
	}
	g.refreshHint()
}

func NewChessBoard(app *tview.Application, c *config.Config, hint *tview.TextView) *ChessBoardUI {
	board := &ChessBoardUI{
		Box:       tview.NewBox(),
		hint:      hint,
		app:       app,
		cursor:    types.NoSquare,
		selected:  types.NoSquare,
		promotion: types.Queen,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		if board.state == nil {
			return x, y, 1, 1
		}
		boardW, boardH := 8*cellWidth, 8

		targets := board.targets()
		var checked types.Square = types.NoSquare
		if board.state.InCheck() {
			b := board.state.Board()
			checked, _ = b.KingSquare(board.state.SideToMove())
		}
		last, hasLast := board.state.LastMove()
		b := board.state.Board()

		for dy := 0; dy < 8; dy++ {
			for dx := 0; dx < 8; dx++ {
				sq := board.squareAt(dx, dy)
				piece := b.Get(sq)

				bg := board.styles[styleDark]
				if (sq.Row+sq.Col)%2 == 0 {
					bg = board.styles[styleLight]
				}
				switch {
				case sq == board.cursor:
					bg = board.styles[styleCursor]
				case sq == board.selected:
					bg = board.styles[styleSelected]
				case sq == checked:
					bg = board.styles[styleCheck]
				case hasLast && board.cfg.Theme.DrawLastPlayedBackground && (sq == last.Start || sq == last.End):
					bg = board.styles[styleLastPlayed]
				}

				drawRune := ' '
				fgColor := board.styles[styleWhitePiece]
				if !piece.Empty() {
					drawRune = board.glyph(piece)
					if piece.Color == types.Black {
						fgColor = board.styles[styleBlackPiece]
					}
				}
				if targets[sq] {
					if piece.Empty() {
						drawRune = '·'
					}
					fgColor = board.styles[styleTarget]
				}
				drawSquare(screen, tcell.StyleDefault.Background(bg).Foreground(fgColor), drawRune, dx, dy, x+3, y)
			}
		}
		drawCoordinates(screen, x, y, board)
		return x, y, boardW + 3, boardH + 1
	})
	return board
}

// squareAt maps a screen cell to a board square.
func (g *ChessBoardUI) squareAt(dx, dy int) types.Square {
	if g.flipped {
		return types.Square{Row: 7 - dy, Col: 7 - dx}
	}
	return types.Square{Row: dy, Col: dx}
}

// targets returns the destinations of the picked up piece.
func (g *ChessBoardUI) targets() map[types.Square]bool {
	out := map[types.Square]bool{}
	if !g.cfg.Theme.ShowTargets || g.PickedUp() == nil {
		return out
	}
	for _, m := range g.moves {
		if m.Start == g.selected {
			out[m.End] = true
		}
	}
	return out
}

func (g *ChessBoardUI) glyph(p types.Piece) rune {
	set := g.white
	if p.Color == types.Black {
		set = g.black
	}
	return set[p.Kind-types.Pawn]
}

// ConnectEngine connects the board to a game engine. The board is drawn from
// Black's side when flipped is set.
func (g *ChessBoardUI) ConnectEngine(e engine.GameEngine, flipped bool) error {
	g.finished = false
	g.outcome = ""
	g.message = ""
	g.history = nil
	g.flipped = flipped
	g.eng = e
	g.ResetSelection()

	e.OnMove(func(ev engine.MoveEvent) {
		g.history = append(g.history, ev)
		g.sync()
	})

	e.OnGameEnd(func(outcome string) {
		g.finished = true
		g.outcome = outcome
		g.ResetSelection()
		g.refreshHint()
	})

	if err := e.Connect(); err != nil {
		return err
	}
	g.sync()
	return nil
}

// sync copies the engine's state for drawing.
func (g *ChessBoardUI) sync() {
	g.state = g.eng.State()
	g.moves = g.eng.ValidMoves()
	if n := g.state.Ply(); len(g.history) > n {
		g.history = g.history[:n]
	}
	if g.infoPanel != nil {
		g.infoPanel.SetHistory(g.history)
	}
	g.refreshHint()
}

// PlayMove plays a move from start to end.
func (g *ChessBoardUI) PlayMove(start, end types.Square, promotion types.Kind) {
	if g.finished || g.eng == nil || !g.eng.IsMyTurn() {
		return
	}
	err := g.eng.PlayMove(start, end, promotion)
	switch {
	case errors.Is(err, engine.ErrIllegalMove):
		g.message = "Illegal move"
		return
	case err != nil:
		g.message = err.Error()
		return
	}
	g.message = ""
	g.selected = types.NoSquare
	g.promotion = types.Queen
}

// Poll applies a finished computer move. Call it on the UI goroutine.
func (g *ChessBoardUI) Poll() {
	if g.eng == nil {
		return
	}
	g.eng.Poll()
}

// Undo takes back the last move pair.
func (g *ChessBoardUI) Undo() {
	if g.eng == nil {
		return
	}
	if g.eng.Undo() {
		g.finished = false
		g.outcome = ""
		g.message = ""
		g.selected = types.NoSquare
		g.sync()
	}
}

// Reset starts the game over.
func (g *ChessBoardUI) Reset() {
	if g.eng == nil {
		return
	}
	g.eng.Reset()
	g.finished = false
	g.outcome = ""
	g.message = ""
	g.history = nil
	g.ResetSelection()
	g.sync()
}

// Close disconnects the engine.
func (g *ChessBoardUI) Close() {
	if g.eng == nil {
		return
	}
	g.eng.Close()
}

func (g *ChessBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		styleLight:      tcell.PaletteColor(c.Theme.Colors.LightSquare),
		styleDark:       tcell.PaletteColor(c.Theme.Colors.DarkSquare),
		styleWhitePiece: tcell.PaletteColor(c.Theme.Colors.WhitePiece),
		styleBlackPiece: tcell.PaletteColor(c.Theme.Colors.BlackPiece),
		styleCursor:     tcell.PaletteColor(c.Theme.Colors.CursorBG),
		styleSelected:   tcell.PaletteColor(c.Theme.Colors.SelectedBG),
		styleLastPlayed: tcell.PaletteColor(c.Theme.Colors.LastPlayedBG),
		styleCheck:      tcell.PaletteColor(c.Theme.Colors.CheckBG),
		styleTarget:     tcell.PaletteColor(c.Theme.Colors.TargetFG),
	}
	g.white = []rune(c.Theme.Symbols.White)
	g.black = []rune(c.Theme.Symbols.Black)
	g.cfg = c
}

// History returns the moves played so far.
func (g *ChessBoardUI) History() []engine.MoveEvent {
	return g.history
}

func (g *ChessBoardUI) refreshHint() {
	if g.hint == nil {
		return
	}
	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string

	if g.finished {
		statusLine = "───────── Game Complete ─────────\n\n"
		turnLine = fmt.Sprintf("  Result: %s\n", g.outcome)
		controlsLine = "\n  z · undo   r · new game   q · menu"
	} else {
		if g.message != "" {
			statusLine = fmt.Sprintf("  ✗ %s\n\n", g.message)
		} else if g.promoting() {
			statusLine = fmt.Sprintf("  Promote to %s (p to change)\n\n", g.promotion)
		} else if g.state != nil && g.state.InCheck() {
			statusLine = "  ! Check\n\n"
		}

		if g.eng != nil && g.eng.IsMyTurn() {
			turnLine = fmt.Sprintf("  %s to move\n", g.state.SideToMove())
		} else {
			turnLine = "  ◌ Thinking...\n"
		}

		controlsLine = `
  hjkl/↑↓←→ move   ⏎ pick/play   z undo
  p promotion   r reset   f focus   q quit`
	}

	g.hint.SetText(fmt.Sprintf("%s%s%s", statusLine, turnLine, controlsLine))
}

// IsFinished returns true if the game is over.
func (g *ChessBoardUI) IsFinished() bool {
	return g.finished
}

// drawSquare draws one square, cellWidth characters wide with the glyph centered.
func drawSquare(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*cellWidth, t+y, ' ', nil, c)
	s.SetContent(l+x*cellWidth+1, t+y, r, nil, c)
	s.SetContent(l+x*cellWidth+2, t+y, ' ', nil, c)
}

func drawCoordinates(s tcell.Screen, x, y int, ui *ChessBoardUI) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursor])

	for dx := 0; dx < 8; dx++ {
		sq := ui.squareAt(dx, 0)
		_style := style
		if sq.Col == ui.cursor.Col {
			_style = highlight
		}
		for i := 0; i < cellWidth; i++ {
			s.SetContent(x+3+dx*cellWidth+i, y+8, ' ', nil, _style)
		}
		s.SetContent(x+3+dx*cellWidth+1, y+8, rune(sq.File()), nil, _style)
	}

	for dy := 0; dy < 8; dy++ {
		sq := ui.squareAt(0, dy)
		_style := style
		if sq.Row == ui.cursor.Row {
			_style = highlight
		}
		s.SetContent(x+1, y+dy, rune('0'+sq.Rank()), nil, _style)
	}
}
