package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"blup-chess/engine"
	"blup-chess/types"
)

// GameInfoPanel displays game information and move history alongside the board.
type GameInfoPanel struct {
	box     *tview.TextView
	history []engine.MoveEvent
	config  engine.GameConfig
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetHistory updates the panel with the moves played so far.
func (p *GameInfoPanel) SetHistory(history []engine.MoveEvent) {
	p.history = history
	p.refresh()
}

// SetGameConfig sets the seats and search depth shown in the panel.
func (p *GameInfoPanel) SetGameConfig(cfg engine.GameConfig) {
	p.config = cfg
	p.refresh()
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]White:[-:-:-] %s\n", p.config.White)
	text += fmt.Sprintf("[white]Black:[-:-:-] %s\n", p.config.Black)
	if p.config.White == engine.Computer || p.config.Black == engine.Computer {
		text += fmt.Sprintf("[white]Depth:[-:-:-] %d\n", p.config.Depth)
	}
	text += fmt.Sprintf("[white]Ply:[-:-:-] %d\n", len(p.history))

	if len(p.history) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		maxVisible := 12
		start := 0
		if len(p.history) > maxVisible {
			start = len(p.history) - maxVisible
		}

		for i := start; i < len(p.history); i++ {
			ev := p.history[i]

			colorStr := "[white]W[-]"
			if ev.Color == types.Black {
				colorStr = "[dimgray]B[-]"
			}

			marker := " "
			if i == len(p.history)-1 {
				marker = "[white]>[-]"
			}

			text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, ev.SAN)
		}

		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	p.box.SetText(text)
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *ChessBoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *ChessBoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := board.infoPanel
	if infoPanel == nil {
		infoPanel = NewGameInfoPanel()
		board.infoPanel = infoPanel
	}
	infoPanel.SetHistory(board.History())

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 7, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *ChessBoardUI) {
	gameFrame.Clear()

	boardWidth := 8*cellWidth + 3
	boardHeight := 8 + 1

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}

// SetGameConfig shows the seats of a new game in the info panel.
func (g *ChessBoardUI) SetGameConfig(cfg engine.GameConfig) {
	if g.infoPanel != nil {
		g.infoPanel.SetGameConfig(cfg)
	}
}
