// Package console plays a game over plain text input and output.
package console

import (
	"errors"
	"fmt"
	"strings"

	"blup-chess/types"
)

// ErrInvalidCommand is returned for input that isn't a command or a move.
var ErrInvalidCommand = errors.New("invalid command")

// CommandKind identifies a console command.
type CommandKind int

const (
	CmdMove CommandKind = iota
	CmdUndo
	CmdReset
	CmdMoves
	CmdBoard
	CmdHelp
	CmdQuit
)

// Command is one parsed input line.
type Command struct {
	Kind      CommandKind
	Start     types.Square
	End       types.Square
	Promotion types.Kind // NoKind unless given
}

var keywords = map[string]CommandKind{
	"undo":  CmdUndo,
	"z":     CmdUndo,
	"reset": CmdReset,
	"r":     CmdReset,
	"moves": CmdMoves,
	"board": CmdBoard,
	"b":     CmdBoard,
	"help":  CmdHelp,
	"?":     CmdHelp,
	"quit":  CmdQuit,
	"q":     CmdQuit,
	"exit":  CmdQuit,
}

var promotionLetters = map[byte]types.Kind{
	'q': types.Queen,
	'r': types.Rook,
	'b': types.Bishop,
	'n': types.Knight,
}

// ParseCommand parses a line such as "e2e4", "e2 e4", "e7e8n" or "undo".
//
// Squares are file letter then rank digit: a1 is White's queen-side corner.
func ParseCommand(line string) (Command, error) {
	line = strings.ToLower(strings.TrimSpace(line))
	if kind, ok := keywords[line]; ok {
		return Command{Kind: kind}, nil
	}

	text := strings.Join(strings.Fields(line), "")
	text = strings.ReplaceAll(text, "-", "")
	if len(text) != 4 && len(text) != 5 {
		return Command{}, fmt.Errorf("%w: %q", ErrInvalidCommand, line)
	}

	start, err := types.ParseSquare(text[0:2])
	if err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	end, err := types.ParseSquare(text[2:4])
	if err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	cmd := Command{Kind: CmdMove, Start: start, End: end}
	if len(text) == 5 {
		kind, ok := promotionLetters[text[4]]
		if !ok {
			return Command{}, fmt.Errorf("%w: bad promotion piece %q", ErrInvalidCommand, text[4:])
		}
		cmd.Promotion = kind
	}
	return cmd, nil
}
