// Package search picks computer moves with a negamax alpha-beta search.
package search

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"blup-chess/rules"
)

const (
	// MateScore is the score of delivering mate at the root. Mates further
	// away score MateScore minus their distance in plies.
	MateScore = 100000
	infinity  = MateScore + 1

	// maxPly bounds quiescence so a capture sequence can't recurse forever.
	maxPly = 32
)

// Result is what a search produces. Found is false when no iteration
// completed before the search was cancelled, or there were no candidates.
type Result struct {
	Move  rules.Move
	Found bool
	Score int
	Depth int // deepest completed iteration
	Nodes uint64
}

// Searcher holds search settings. It keeps no state between calls, so one
// Searcher may serve several concurrent searches.
type Searcher struct {
	Depth     int
	ThinkTime time.Duration

	mu  sync.Mutex
	rng *rand.Rand
	log zerolog.Logger
}

// New creates a Searcher. A zero seed seeds the random fallback from the clock.
func New(depth int, thinkTime time.Duration, seed int64, log zerolog.Logger) *Searcher {
	if depth < 1 {
		depth = 1
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Searcher{
		Depth:     depth,
		ThinkTime: thinkTime,
		rng:       rand.New(rand.NewSource(seed)),
		log:       log.With().Str("component", "search").Logger(),
	}
}

// FindRandomMove returns a uniformly random move from candidates.
// candidates must not be empty.
func (s *Searcher) FindRandomMove(candidates []rules.Move) rules.Move {
	if len(candidates) == 0 {
		panic("search: FindRandomMove called with no candidates")
	}
	s.mu.Lock()
	i := s.rng.Intn(len(candidates))
	s.mu.Unlock()
	return candidates[i]
}

// FindBestMove searches state and returns the best of candidates, or false
// when the search was cancelled before finishing its first iteration.
// state is not modified.
func (s *Searcher) FindBestMove(ctx context.Context, state *rules.GameState, candidates []rules.Move) (rules.Move, bool) {
	res := s.Search(ctx, state, candidates)
	return res.Move, res.Found
}

// FindBestMoveTo runs a search and writes exactly one Result to out. out
// should be buffered so the write can't block an abandoned search.
func (s *Searcher) FindBestMoveTo(ctx context.Context, state *rules.GameState, candidates []rules.Move, out chan<- Result) {
	out <- s.Search(ctx, state, candidates)
}

// Search runs iterative deepening up to s.Depth. Each iteration searches the
// previous best move first. If ctx ends mid-iteration the last completed
// iteration's answer is kept.
func (s *Searcher) Search(ctx context.Context, state *rules.GameState, candidates []rules.Move) Result {
	var res Result
	if len(candidates) == 0 {
		return res
	}
	if s.ThinkTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.ThinkTime)
		defer cancel()
	}

	run := &searchRun{ctx: ctx}
	root := state.Clone()
	ordered := orderMoves(candidates)
	start := time.Now()

	for depth := 1; depth <= s.Depth; depth++ {
		move, score, ok := run.root(root, ordered, depth)
		if !ok {
			break
		}
		res = Result{Move: move, Found: true, Score: score, Depth: depth}
		s.log.Debug().
			Int("depth", depth).
			Str("move", move.Notation()).
			Int("score", score).
			Uint64("nodes", run.nodes).
			Msg("iteration complete")
		if score >= MateScore-maxPly {
			break
		}
		promote(ordered, move)
	}

	res.Nodes = run.nodes
	s.log.Debug().
		Bool("found", res.Found).
		Int("depth", res.Depth).
		Dur("elapsed", time.Since(start)).
		Msg("search finished")
	return res
}

// promote moves m to the front of moves, keeping the rest in order.
func promote(moves []rules.Move, m rules.Move) {
	for i := range moves {
		if moves[i].Equal(m) {
			copy(moves[1:i+1], moves[:i])
			moves[0] = m
			return
		}
	}
}

type searchRun struct {
	ctx     context.Context
	nodes   uint64
	aborted bool
}

func (r *searchRun) stopped() bool {
	if r.aborted {
		return true
	}
	if r.nodes&1023 == 0 && r.ctx.Err() != nil {
		r.aborted = true
	}
	return r.aborted
}

// root searches every candidate to depth and returns the best one. Ties keep
// the earlier move.
func (r *searchRun) root(s *rules.GameState, moves []rules.Move, depth int) (rules.Move, int, bool) {
	if r.ctx.Err() != nil {
		return rules.Move{}, 0, false
	}
	best, bestScore := moves[0], -infinity
	alpha := -infinity
	for _, m := range moves {
		s.MakeMove(m)
		score := -r.negamax(s, depth-1, -infinity, -alpha, 1)
		s.UndoMove()
		if r.aborted {
			return rules.Move{}, 0, false
		}
		if score > bestScore {
			best, bestScore = m, score
		}
		if score > alpha {
			alpha = score
		}
	}
	return best, bestScore, true
}

func (r *searchRun) negamax(s *rules.GameState, depth, alpha, beta, ply int) int {
	if r.stopped() {
		return 0
	}
	r.nodes++

	moves := s.ValidMoves()
	if len(moves) == 0 {
		if s.InCheck() {
			return -(MateScore - ply)
		}
		return 0
	}
	if depth <= 0 {
		return r.quiesce(s, moves, alpha, beta, ply)
	}

	for _, m := range orderMoves(moves) {
		s.MakeMove(m)
		score := -r.negamax(s, depth-1, -beta, -alpha, ply+1)
		s.UndoMove()
		if r.aborted {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// quiesce extends the search along captures and promotions until the
// position is quiet, so the static evaluation isn't taken mid-exchange.
func (r *searchRun) quiesce(s *rules.GameState, moves []rules.Move, alpha, beta, ply int) int {
	standPat := Evaluate(s)
	if standPat >= beta || ply >= maxPly {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	for _, m := range orderMoves(captures(moves)) {
		s.MakeMove(m)
		score := -r.qnode(s, -beta, -alpha, ply+1)
		s.UndoMove()
		if r.aborted {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (r *searchRun) qnode(s *rules.GameState, alpha, beta, ply int) int {
	if r.stopped() {
		return 0
	}
	r.nodes++
	moves := s.ValidMoves()
	if len(moves) == 0 {
		if s.InCheck() {
			return -(MateScore - ply)
		}
		return 0
	}
	return r.quiesce(s, moves, alpha, beta, ply)
}
