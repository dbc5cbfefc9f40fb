// Package ui provides terminal UI components for blup-chess.
package ui

import (
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"blup-chess/config"
	"blup-chess/engine"
	"blup-chess/types"
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig, types.Color)
	onCancel func()
	onColors func()

	playerColor types.Color
	vsComputer  bool
	depth       int
}

// NewGameSetup creates a new game setup form. onStart receives the game
// configuration and the color the board should be drawn for.
func NewGameSetup(cfg *config.Config, onStart func(engine.GameConfig, types.Color), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:     onStart,
		onCancel:    onCancel,
		onColors:    onColors,
		playerColor: types.White,
		vsComputer:  cfg.Game.VsComputer,
		depth:       cfg.AI.Depth,
	}
	if cfg.Game.PlayerColor == "black" {
		setup.playerColor = types.Black
	}

	colors := []string{"White (move first)", "Black (move second)"}
	opponents := []string{"Computer", "Human (same keyboard)"}
	depths := make([]string, config.MaxDepth)
	for i := range depths {
		depths[i] = strconv.Itoa(i + 1)
	}
	depths[0] += " (fastest)"
	depths[len(depths)-1] += " (strongest)"

	form := tview.NewForm()

	colorIndex := 0
	if setup.playerColor == types.Black {
		colorIndex = 1
	}
	form.AddDropDown("Your Color", colors, colorIndex, func(option string, index int) {
		setup.playerColor = types.White
		if index == 1 {
			setup.playerColor = types.Black
		}
	})

	opponentIndex := 1
	if setup.vsComputer {
		opponentIndex = 0
	}
	form.AddDropDown("Opponent", opponents, opponentIndex, func(option string, index int) {
		setup.vsComputer = index == 0
	})

	form.AddDropDown("Search Depth", depths, setup.depth-1, func(option string, index int) {
		setup.depth = index + 1
	})

	form.AddButton("Start Game", func() {
		onStart(setup.gameConfig(cfg), setup.playerColor)
	})

	form.AddButton("Board Color", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// gameConfig builds the engine configuration for the current choices.
func (s *GameSetupUI) gameConfig(cfg *config.Config) engine.GameConfig {
	return BuildGameConfig(cfg, s.playerColor, s.vsComputer, s.depth)
}

// BuildGameConfig seats the human on color and the computer, if any, on the
// other side.
func BuildGameConfig(cfg *config.Config, color types.Color, vsComputer bool, depth int) engine.GameConfig {
	gameCfg := engine.GameConfig{
		White:     engine.Human,
		Black:     engine.Human,
		Depth:     depth,
		ThinkTime: time.Duration(cfg.AI.ThinkTimeMs) * time.Millisecond,
		Seed:      cfg.AI.Seed,
	}
	if vsComputer {
		if color == types.White {
			gameCfg.Black = engine.Computer
		} else {
			gameCfg.White = engine.Computer
		}
	}
	return gameCfg
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
