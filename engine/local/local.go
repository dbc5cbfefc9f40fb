// Package local plays chess in-process, with the computer's moves searched
// on background goroutines.
package local

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"blup-chess/engine"
	"blup-chess/engine/runner"
	"blup-chess/engine/search"
	"blup-chess/rules"
	"blup-chess/types"
)

// LocalEngine implements the GameEngine interface on top of the rules and
// search packages.
type LocalEngine struct {
	config     engine.GameConfig
	state      *rules.GameState
	validMoves []rules.Move
	gameOver   bool
	outcome    string

	searcher *search.Searcher
	runner   *runner.Runner
	pending  *runner.Handle

	moveCallback func(ev engine.MoveEvent)
	endCallback  func(outcome string)

	log zerolog.Logger
	mu  sync.Mutex
}

// NewLocalEngine creates a new engine with the given configuration.
func NewLocalEngine(cfg engine.GameConfig, log zerolog.Logger) *LocalEngine {
	log = log.With().Str("component", "local").Logger()
	searcher := search.New(cfg.Depth, cfg.ThinkTime, cfg.Seed, log)
	return &LocalEngine{
		config:   cfg,
		searcher: searcher,
		runner:   runner.New(searcher, log),
		log:      log,
	}
}

// Connect sets up the start position and starts the computer if it moves
// first.
func (g *LocalEngine) Connect() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	state, err := g.initialState()
	if err != nil {
		return err
	}
	g.state = state
	g.refresh()
	g.log.Info().
		Str("fen", g.state.FEN()).
		Str("white", g.config.White.String()).
		Str("black", g.config.Black.String()).
		Int("depth", g.config.Depth).
		Msg("game started")
	g.startSearch()
	return nil
}

func (g *LocalEngine) initialState() (*rules.GameState, error) {
	if g.config.FEN == "" {
		return rules.NewGameState(), nil
	}
	state, err := rules.ParseFEN(g.config.FEN)
	if err != nil {
		return nil, fmt.Errorf("failed to load start position: %w", err)
	}
	return state, nil
}

// refresh recomputes the legal moves and game-over flags.
// Must be called while holding the lock.
func (g *LocalEngine) refresh() {
	g.validMoves = g.state.ValidMoves()
	g.gameOver = g.state.Checkmate() || g.state.Stalemate()
	g.outcome = ""
	if g.gameOver {
		g.outcome = rules.Outcome(g.state)
	}
}

// startSearch starts a search if the computer is to move.
// Must be called while holding the lock.
func (g *LocalEngine) startSearch() {
	if g.gameOver || g.pending != nil || g.config.SeatOf(g.state.SideToMove()) != engine.Computer {
		return
	}
	g.pending = g.runner.Start(g.state, g.validMoves)
}

// cancelSearch drops the outstanding search, if any.
// Must be called while holding the lock.
func (g *LocalEngine) cancelSearch() {
	if g.pending == nil {
		return
	}
	g.runner.Cancel(g.pending)
	g.pending = nil
}

// apply plays m and returns the event to report.
// Must be called while holding the lock.
func (g *LocalEngine) apply(m rules.Move) engine.MoveEvent {
	san := rules.SAN(g.state, m)
	g.state.MakeMove(m)
	g.refresh()

	ev := engine.MoveEvent{
		Move:    m,
		SAN:     san,
		Color:   m.Moved.Color,
		Capture: m.IsCapture(),
		Check:   g.state.InCheck(),
		Ply:     g.state.Ply(),
	}
	g.log.Debug().
		Str("move", m.Notation()).
		Str("san", san).
		Str("color", ev.Color.String()).
		Msg("move played")
	if g.gameOver {
		g.log.Info().Str("outcome", g.outcome).Int("ply", ev.Ply).Msg("game over")
	}
	return ev
}

// notify runs the callbacks for a played move. Must be called without the lock.
func (g *LocalEngine) notify(ev engine.MoveEvent, outcome string) {
	if g.moveCallback != nil {
		g.moveCallback(ev)
	}
	if outcome != "" && g.endCallback != nil {
		g.endCallback(outcome)
	}
}

// State returns a copy of the current game state.
func (g *LocalEngine) State() *rules.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Clone()
}

// ValidMoves returns the legal moves of the side to move.
func (g *LocalEngine) ValidMoves() []rules.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	moves := make([]rules.Move, len(g.validMoves))
	copy(moves, g.validMoves)
	return moves
}

// PlayMove plays a human move.
func (g *LocalEngine) PlayMove(start, end types.Square, promotion types.Kind) error {
	g.mu.Lock()

	if g.gameOver {
		g.mu.Unlock()
		return engine.ErrGameOver
	}
	if g.config.SeatOf(g.state.SideToMove()) != engine.Human {
		g.mu.Unlock()
		return engine.ErrNotYourTurn
	}

	board := g.state.Board()
	candidate := rules.NewMove(start, end, &board)
	if promotion != types.NoKind {
		candidate = rules.NewPromotion(start, end, &board, promotion)
	}
	m, ok := rules.FindMove(g.validMoves, candidate)
	if !ok {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s", engine.ErrIllegalMove, candidate.Notation())
	}

	ev := g.apply(m)
	outcome := g.outcome
	g.startSearch()
	g.mu.Unlock()

	g.notify(ev, outcome)
	return nil
}

// Poll plays the computer's move once its search has finished. A search that
// found nothing falls back to a random legal move.
func (g *LocalEngine) Poll() bool {
	g.mu.Lock()

	h := g.pending
	if h == nil || !g.runner.IsFinished(h) {
		g.mu.Unlock()
		return false
	}
	g.pending = nil

	if g.runner.Stale(h) || g.gameOver {
		g.log.Debug().Uint64("generation", h.Generation()).Msg("dropping stale search result")
		g.mu.Unlock()
		return false
	}

	m, ok := g.runner.TakeResult(h)
	if ok {
		m, ok = rules.FindMove(g.validMoves, m)
	}
	if !ok {
		g.log.Warn().Uint64("generation", h.Generation()).Msg("search found no move, playing a random one")
		m = g.searcher.FindRandomMove(g.validMoves)
	}

	ev := g.apply(m)
	outcome := g.outcome
	g.startSearch()
	g.mu.Unlock()

	g.notify(ev, outcome)
	return true
}

// Undo takes back moves until a human is to move again. With two computer
// seats it takes back a single move.
func (g *LocalEngine) Undo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cancelSearch()
	anyHuman := g.config.White == engine.Human || g.config.Black == engine.Human
	undone := 0
	for g.state.UndoMove() {
		undone++
		if !anyHuman || g.config.SeatOf(g.state.SideToMove()) == engine.Human {
			break
		}
	}
	g.refresh()
	if undone > 0 {
		g.log.Debug().Int("plies", undone).Int("ply", g.state.Ply()).Msg("undo")
	}
	g.startSearch()
	return undone > 0
}

// Reset restarts the game from its initial position.
func (g *LocalEngine) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cancelSearch()
	state, err := g.initialState()
	if err != nil {
		// Connect already accepted this position.
		state = rules.NewGameState()
	}
	g.state = state
	g.refresh()
	g.log.Info().Msg("game reset")
	g.startSearch()
}

// IsMyTurn returns true if a human is to move.
func (g *LocalEngine) IsMyTurn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.gameOver && g.config.SeatOf(g.state.SideToMove()) == engine.Human
}

// Thinking returns true while a computer search is outstanding.
func (g *LocalEngine) Thinking() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending != nil
}

// Status returns the status of the side to move.
func (g *LocalEngine) Status() rules.Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case g.state.Checkmate():
		return rules.Checkmate
	case g.state.Stalemate():
		return rules.Stalemate
	case g.state.InCheck():
		return rules.Check
	}
	return rules.Normal
}

// Outcome returns the result of a finished game, or "".
func (g *LocalEngine) Outcome() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcome
}

// OnMove registers a callback for when a move is played.
func (g *LocalEngine) OnMove(callback func(ev engine.MoveEvent)) {
	g.moveCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (g *LocalEngine) OnGameEnd(callback func(outcome string)) {
	g.endCallback = callback
}

// Close cancels the outstanding search.
func (g *LocalEngine) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelSearch()
}
