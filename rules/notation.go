package rules

import (
	"strings"

	"blup-chess/types"
)

// SAN returns the standard algebraic notation of m played from s, such as
// "Nbd7", "exd6", "e8=Q+" or "O-O-O#". s is left unchanged.
func SAN(s *GameState, m Move) string {
	var sb strings.Builder
	switch {
	case m.Castle && m.End.Col == 6:
		sb.WriteString("O-O")
	case m.Castle:
		sb.WriteString("O-O-O")
	case m.Moved.Kind == types.Pawn:
		if m.IsCapture() {
			sb.WriteByte(m.Start.File())
			sb.WriteByte('x')
		}
		sb.WriteString(m.End.String())
		if m.Promotion != types.NoKind {
			sb.WriteByte('=')
			sb.WriteString(m.Promotion.Letter())
		}
	default:
		sb.WriteString(m.Moved.Kind.Letter())
		sb.WriteString(disambiguation(s.legalMoves(), m))
		if m.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(m.End.String())
	}

	after := s.Clone()
	after.MakeMove(m)
	switch StatusOf(after) {
	case Checkmate:
		sb.WriteByte('#')
	case Check:
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguation returns the file, rank or both needed to tell m apart from
// other moves of the same piece kind to the same square.
func disambiguation(legal []Move, m Move) string {
	ambiguous, sameFile, sameRank := false, false, false
	for _, o := range legal {
		if o.Moved != m.Moved || o.End != m.End || o.Start == m.Start {
			continue
		}
		ambiguous = true
		if o.Start.Col == m.Start.Col {
			sameFile = true
		}
		if o.Start.Row == m.Start.Row {
			sameRank = true
		}
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(m.Start.File())
	case !sameRank:
		return string(rune('0' + m.Start.Rank()))
	default:
		return m.Start.String()
	}
}
