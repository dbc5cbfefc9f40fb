// Package runner runs computer searches in the background so the game loop
// never blocks on them.
package runner

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"blup-chess/engine/search"
	"blup-chess/rules"
)

// Finder computes a move and writes exactly one result to out.
type Finder interface {
	FindBestMoveTo(ctx context.Context, state *rules.GameState, candidates []rules.Move, out chan<- search.Result)
}

// Handle refers to one started search.
type Handle struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan search.Result
	exited chan struct{}

	mu        sync.Mutex
	result    search.Result
	received  bool
	taken     bool
	cancelled bool
}

// Generation returns the generation the search was started in.
func (h *Handle) Generation() uint64 {
	return h.gen
}

// poll collects the worker's result if it has arrived. Caller holds h.mu.
func (h *Handle) poll() bool {
	if h.received {
		return true
	}
	select {
	case res := <-h.done:
		h.result = res
		h.received = true
	default:
	}
	return h.received
}

// Runner starts searches on worker goroutines. Every Start begins a new
// generation; results of older generations are stale.
type Runner struct {
	finder Finder
	gen    uint64
	log    zerolog.Logger
}

// New creates a Runner backed by finder.
func New(finder Finder, log zerolog.Logger) *Runner {
	return &Runner{
		finder: finder,
		log:    log.With().Str("component", "runner").Logger(),
	}
}

// Start searches a private copy of state on a new goroutine and returns
// immediately. Later changes to state do not affect the running search.
func (r *Runner) Start(state *rules.GameState, candidates []rules.Move) *Handle {
	gen := atomic.AddUint64(&r.gen, 1)
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		gen:    gen,
		cancel: cancel,
		done:   make(chan search.Result, 1),
		exited: make(chan struct{}),
	}

	snapshot := state.Clone()
	moves := make([]rules.Move, len(candidates))
	copy(moves, candidates)

	r.log.Debug().Uint64("generation", gen).Int("candidates", len(moves)).Msg("search started")
	go func() {
		defer close(h.exited)
		defer cancel()
		r.finder.FindBestMoveTo(ctx, snapshot, moves, h.done)
	}()
	return h
}

// Generation returns the generation of the most recent Start.
func (r *Runner) Generation() uint64 {
	return atomic.LoadUint64(&r.gen)
}

// Stale returns true if a newer search has been started since h.
func (r *Runner) Stale(h *Handle) bool {
	return h.gen != r.Generation()
}

// IsFinished returns true once the worker has produced its result, or the
// search was cancelled. It never blocks.
func (r *Runner) IsFinished(h *Handle) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		return true
	}
	return h.poll()
}

// TakeResult returns the search result once. It returns false if the search
// hasn't finished, was cancelled, found nothing, or was already taken.
func (r *Runner) TakeResult(h *Handle) (rules.Move, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled || h.taken || !h.poll() {
		return rules.Move{}, false
	}
	h.taken = true
	if !h.result.Found {
		return rules.Move{}, false
	}
	r.log.Debug().
		Uint64("generation", h.gen).
		Str("move", h.result.Move.Notation()).
		Int("score", h.result.Score).
		Int("depth", h.result.Depth).
		Msg("result taken")
	return h.result.Move, true
}

// Cancel stops the search. Its result is never returned, even if it had
// already arrived.
func (r *Runner) Cancel(h *Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		return
	}
	h.cancelled = true
	h.cancel()
	r.log.Debug().Uint64("generation", h.gen).Msg("search cancelled")
}

// Wait blocks until the search's worker has exited or ctx ends.
func (r *Runner) Wait(ctx context.Context, h *Handle) error {
	select {
	case <-h.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
