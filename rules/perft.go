package rules

// Perft counts the leaf nodes of the legal move tree of the given depth.
// s is not modified.
func Perft(s *GameState, depth int) uint64 {
	return perft(s.Clone(), depth)
}

func perft(s *GameState, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := s.legalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		s.MakeMove(m)
		nodes += perft(s, depth-1)
		s.UndoMove()
	}
	return nodes
}

// DivideEntry is the perft count below one root move.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// Divide runs Perft below each legal root move, in generation order.
func Divide(s *GameState, depth int) []DivideEntry {
	if depth < 1 {
		return nil
	}
	c := s.Clone()
	moves := c.legalMoves()
	entries := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		c.MakeMove(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: perft(c, depth-1)})
		c.UndoMove()
	}
	return entries
}
