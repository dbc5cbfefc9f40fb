// blup-chess is a terminal application to play chess against the computer offline.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"blup-chess/config"
	"blup-chess/console"
	"blup-chess/engine"
	"blup-chess/engine/local"
	"blup-chess/logging"
	"blup-chess/rules"
	"blup-chess/types"
	"blup-chess/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagColor      = flag.String("color", "", "Player color (white or black)")
	flagDepth      = flag.Int("depth", 0, "Computer search depth in plies (1-8)")
	flagThink      = flag.Int("think", -1, "Computer think time limit in milliseconds (0 = no limit)")
	flagHuman      = flag.Bool("human", false, "Two humans on one keyboard, no computer")
	flagFEN        = flag.String("fen", "", "Start from this FEN position")
	flagConsole    = flag.Bool("console", false, "Plain text interface instead of the full screen board")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (board only)")
	flagPerft      = flag.Int("perft", 0, "Count leaf nodes to this depth from the start position and exit")
	flagDivide     = flag.Bool("divide", false, "With -perft, print the count below each root move")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.ChessBoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var logger zerolog.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("blup-chess %s\n", Version)
		return
	}

	if *flagPerft > 0 {
		if err := runPerft(os.Stdout, *flagFEN, *flagPerft, *flagDivide); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var closer io.Closer
	logger, closer, err = logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()
	logger.Info().Str("version", Version).Msg("starting")

	if *flagConsole || !term.IsTerminal(int(os.Stdin.Fd())) {
		if err := runConsole(); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	runTUI()
}

// runPerft prints the perft count of fen (or the start position).
func runPerft(w io.Writer, fen string, depth int, divide bool) error {
	state := rules.NewGameState()
	if fen != "" {
		var err error
		if state, err = rules.ParseFEN(fen); err != nil {
			return err
		}
	}
	start := time.Now()
	if divide {
		var total uint64
		for _, e := range rules.Divide(state, depth) {
			fmt.Fprintf(w, "%s: %d\n", e.Move.Notation(), e.Nodes)
			total += e.Nodes
		}
		fmt.Fprintf(w, "\nperft(%d) = %d (%s)\n", depth, total, time.Since(start).Round(time.Millisecond))
		return nil
	}
	nodes := rules.Perft(state, depth)
	fmt.Fprintf(w, "perft(%d) = %d (%s)\n", depth, nodes, time.Since(start).Round(time.Millisecond))
	return nil
}

// runConsole plays a game over stdin and stdout.
func runConsole() error {
	gameCfg, color := buildGameConfigFromFlags()
	eng := local.NewLocalEngine(gameCfg, logger)
	if err := eng.Connect(); err != nil {
		return err
	}
	defer eng.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	c := console.New(eng, os.Stdin, os.Stdout, color == types.Black, logger)
	return c.Run(ctx)
}

func runTUI() {
	quickStart := *flagQuickStart || *flagColor != "" || *flagDepth > 0 || *flagHuman || *flagFEN != "" || *flagFocus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ♞ blup-chess ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewChessBoard(app, cfg, gameHint)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.PickedUp() != nil || gameBoard.SelectedTile() != nil {
				gameBoard.ResetSelection()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			gameBoard.Select()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, 1)
			case 'k':
				gameBoard.MoveSelection(0, -1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case 'z':
				gameBoard.Undo()
			case 'r':
				gameBoard.Reset()
			case 'p':
				gameBoard.CyclePromotion()
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			}
		}
		return event
	})

	setupUI := ui.NewGameSetup(cfg,
		func(gameCfg engine.GameConfig, color types.Color) {
			startGame(gameCfg, color)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(buildGameConfigFromFlags())
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	// Computer moves are collected on the UI goroutine.
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			app.QueueUpdateDraw(gameBoard.Poll)
		}
	}()

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		logger.Error().Err(err).Msg("ui stopped")
		panic(err)
	}
	gameBoard.Close()
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig, color types.Color) {
	gameBoard.Close()
	eng := local.NewLocalEngine(gameCfg, logger)
	if err := gameBoard.ConnectEngine(eng, color == types.Black); err != nil {
		logger.Error().Err(err).Msg("failed to start game")
		modal := tview.NewModal().
			SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				rootPage.HidePage("error")
			})
		rootPage.AddPage("error", modal, true, true)
		return
	}
	gameBoard.SetGameConfig(gameCfg)
	rootPage.SwitchToPage("gameview")
}

// buildGameConfigFromFlags creates a GameConfig from the config file and
// command-line flags, and returns the human's color.
func buildGameConfigFromFlags() (engine.GameConfig, types.Color) {
	color := types.White
	if cfg.Game.PlayerColor == "black" {
		color = types.Black
	}
	if *flagColor == "black" || *flagColor == "b" {
		color = types.Black
	} else if *flagColor == "white" || *flagColor == "w" {
		color = types.White
	}

	depth := cfg.AI.Depth
	if *flagDepth >= 1 && *flagDepth <= config.MaxDepth {
		depth = *flagDepth
	}

	vsComputer := cfg.Game.VsComputer
	if *flagHuman {
		vsComputer = false
	}

	gameCfg := ui.BuildGameConfig(cfg, color, vsComputer, depth)
	if *flagThink >= 0 {
		gameCfg.ThinkTime = time.Duration(*flagThink) * time.Millisecond
	}
	gameCfg.FEN = *flagFEN
	return gameCfg, color
}
