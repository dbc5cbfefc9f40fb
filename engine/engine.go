// Package engine defines the interface front ends use to play a game.
package engine

import (
	"errors"
	"time"

	"blup-chess/rules"
	"blup-chess/types"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalMove = errors.New("illegal move")
)

// Seat says who plays a color.
type Seat int

const (
	Human Seat = iota
	Computer
)

func (s Seat) String() string {
	if s == Computer {
		return "Computer"
	}
	return "Human"
}

// MoveEvent describes a move that has just been played.
type MoveEvent struct {
	Move    rules.Move
	SAN     string
	Color   types.Color
	Capture bool // read from the move record
	Check   bool // the side now to move is in check
	Ply     int  // number of moves played, including this one
}

// GameEngine defines the interface for playing a chess game.
type GameEngine interface {
	// Connect initializes the game and starts the computer if it moves first.
	Connect() error

	// State returns a copy of the current game state.
	State() *rules.GameState

	// ValidMoves returns the legal moves of the side to move.
	ValidMoves() []rules.Move

	// PlayMove plays a human move. Returns ErrIllegalMove if it does not match
	// any legal move.
	PlayMove(start, end types.Square, promotion types.Kind) error

	// Undo takes back moves until a human is to move again and cancels any
	// search in progress. Returns false if there was nothing to undo.
	Undo() bool

	// Reset restarts the game from its initial position.
	Reset()

	// Poll applies a finished computer move. It never blocks and returns true
	// if a move was played.
	Poll() bool

	// IsMyTurn returns true if a human is to move and the game is not over.
	IsMyTurn() bool

	// Thinking returns true while a computer search is outstanding.
	Thinking() bool

	// Status returns check, checkmate or stalemate for the side to move.
	Status() rules.Status

	// Outcome returns the result text of a finished game, or "".
	Outcome() string

	// OnMove registers a callback for every move played (by either side).
	// Callbacks run on the goroutine that called PlayMove or Poll.
	OnMove(func(MoveEvent))

	// OnGameEnd registers a callback for checkmate and stalemate.
	OnGameEnd(func(outcome string))

	// Close cancels any outstanding search.
	Close()
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	White     Seat
	Black     Seat
	Depth     int           // search depth in plies
	ThinkTime time.Duration // wall-clock cutoff, 0 = none
	Seed      int64         // random fallback seed, 0 = clock
	FEN       string        // start position, "" = standard
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		White:     Human,
		Black:     Computer,
		Depth:     3,
		ThinkTime: 5 * time.Second,
	}
}

// SeatOf returns the seat playing color.
func (c GameConfig) SeatOf(color types.Color) Seat {
	if color == types.White {
		return c.White
	}
	return c.Black
}
