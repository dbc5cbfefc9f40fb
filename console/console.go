package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"blup-chess/engine"
	"blup-chess/rules"
	"blup-chess/types"
)

const helpText = `Commands:
  e2e4, e2 e4   move a piece (add q, r, b or n to pick a promotion: e7e8n)
  undo, z       take back your last move
  reset, r      start over
  moves         list legal moves
  board, b      print the board
  help          show this text
  quit, q       leave
`

var (
	errorText = color.New(color.FgRed)
	infoText  = color.New(color.FgCyan)
)

const (
	lightSquare = color.BgWhite
	darkSquare  = color.BgGreen
	lastMoveBG  = color.BgYellow
	whitePiece  = color.FgHiWhite
	blackPiece  = color.FgBlack
)

// Console runs a game on line-based input.
type Console struct {
	eng  engine.GameEngine
	in   io.Reader
	out  io.Writer
	log  zerolog.Logger
	flip bool

	// PollInterval is how often a pending computer move is checked for.
	PollInterval time.Duration
}

// New creates a console for eng. The board is drawn from Black's side when
// flip is set.
func New(eng engine.GameEngine, in io.Reader, out io.Writer, flip bool, log zerolog.Logger) *Console {
	return &Console{
		eng:          eng,
		in:           in,
		out:          out,
		flip:         flip,
		log:          log.With().Str("component", "console").Logger(),
		PollInterval: 50 * time.Millisecond,
	}
}

// Run reads commands until quit, end of input or ctx is done. At end of input
// it still waits for a pending computer move before returning.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	c.eng.OnMove(c.printMove)
	c.eng.OnGameEnd(func(outcome string) {
		infoText.Fprintf(c.out, "%s\n", outcome)
	})

	c.printBoard()
	c.prompt()

	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()
	eof := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				eof = true
				lines = nil
				if !c.eng.Thinking() {
					return nil
				}
				continue
			}
			if quit := c.handle(line); quit {
				return nil
			}
			if !eof {
				c.prompt()
			}

		case <-ticker.C:
			if c.eng.Poll() {
				c.printBoard()
				c.prompt()
			}
			if eof && !c.eng.Thinking() {
				return nil
			}
		}
	}
}

// handle runs one input line. It returns true on quit.
func (c *Console) handle(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	cmd, err := ParseCommand(line)
	if err != nil {
		c.log.Debug().Err(err).Msg("bad input")
		errorText.Fprintf(c.out, "invalid command %q, type help for a list\n", strings.TrimSpace(line))
		return false
	}

	switch cmd.Kind {
	case CmdQuit:
		return true
	case CmdHelp:
		fmt.Fprint(c.out, helpText)
	case CmdBoard:
		c.printBoard()
	case CmdMoves:
		c.printMoves()
	case CmdReset:
		c.eng.Reset()
		infoText.Fprintln(c.out, "new game")
		c.printBoard()
	case CmdUndo:
		if !c.eng.Undo() {
			errorText.Fprintln(c.out, "nothing to undo")
			return false
		}
		c.printBoard()
	case CmdMove:
		err := c.eng.PlayMove(cmd.Start, cmd.End, cmd.Promotion)
		switch {
		case errors.Is(err, engine.ErrIllegalMove):
			errorText.Fprintln(c.out, "illegal move")
		case errors.Is(err, engine.ErrNotYourTurn):
			errorText.Fprintln(c.out, "wait for your turn")
		case errors.Is(err, engine.ErrGameOver):
			errorText.Fprintln(c.out, "the game is over, type reset to play again")
		case err != nil:
			errorText.Fprintf(c.out, "%v\n", err)
		default:
			c.printBoard()
		}
	}
	return false
}

func (c *Console) printMove(ev engine.MoveEvent) {
	fmt.Fprintf(c.out, "%s plays %s\n", ev.Color, ev.SAN)
}

func (c *Console) prompt() {
	state := c.eng.State()
	switch {
	case c.eng.Outcome() != "":
		fmt.Fprint(c.out, "> ")
	case c.eng.IsMyTurn():
		fmt.Fprintf(c.out, "%s to move > ", state.SideToMove())
	default:
		fmt.Fprintf(c.out, "%s is thinking...\n", state.SideToMove())
	}
}

func (c *Console) printMoves() {
	moves := c.eng.ValidMoves()
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.Notation()
	}
	fmt.Fprintln(c.out, strings.Join(names, " "))
}

// printBoard draws the board with rank 8 on top, or rank 1 when flipped.
func (c *Console) printBoard() {
	state := c.eng.State()
	board := state.Board()
	last, hasLast := state.LastMove()

	var sb strings.Builder
	for i := 0; i < 8; i++ {
		row := i
		if c.flip {
			row = 7 - i
		}
		fmt.Fprintf(&sb, "%d ", 8-row)
		for j := 0; j < 8; j++ {
			col := j
			if c.flip {
				col = 7 - j
			}
			sq := types.Square{Row: row, Col: col}
			bg := darkSquare
			if (row+col)%2 == 0 {
				bg = lightSquare
			}
			if hasLast && (sq == last.Start || sq == last.End) {
				bg = lastMoveBG
			}
			sb.WriteString(cell(bg, board.Get(sq)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ")
	for j := 0; j < 8; j++ {
		file := byte('a' + j)
		if c.flip {
			file = byte('h' - j)
		}
		fmt.Fprintf(&sb, " %c ", file)
	}
	sb.WriteString("\n")

	if rules.StatusOf(state) == rules.Check {
		fmt.Fprintf(&sb, "%s is in check\n", state.SideToMove())
	}
	fmt.Fprint(c.out, sb.String())
}

// cell renders one square: white pieces as upper case FEN letters, black as
// lower case.
func cell(bg color.Attribute, p types.Piece) string {
	if p.Empty() {
		return color.New(bg).Sprint("   ")
	}
	fg := blackPiece
	if p.Color == types.White {
		fg = whitePiece
	}
	return color.New(bg, fg, color.Bold).Sprint(" " + p.FEN() + " ")
}
