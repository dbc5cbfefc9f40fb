package rules

// Status is the state of the game for the side to move.
type Status int

const (
	Normal Status = iota
	Check
	Checkmate
	Stalemate
)

func (st Status) String() string {
	switch st {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "normal"
	}
}

// Over returns true for checkmate and stalemate.
func (st Status) Over() bool {
	return st == Checkmate || st == Stalemate
}

// StatusOf derives the status of s without touching its flags.
func StatusOf(s *GameState) Status {
	inCheck := s.InCheck()
	if len(s.legalMoves()) == 0 {
		if inCheck {
			return Checkmate
		}
		return Stalemate
	}
	if inCheck {
		return Check
	}
	return Normal
}

// Outcome describes a finished game for display, or "" while it is running.
func Outcome(s *GameState) string {
	switch StatusOf(s) {
	case Checkmate:
		if s.WhiteToMove() {
			return "Black wins by checkmate"
		}
		return "White wins by checkmate"
	case Stalemate:
		return "Stalemate"
	}
	return ""
}
