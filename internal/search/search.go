// Package search picks 2048 moves with depth-limited expectimax.
//
// Decision nodes take the best of the legal moves; chance nodes average
// over every empty cell receiving a 2 (p=0.9) or a 4 (p=0.1). Boards at
// the depth limit or in a terminal state are scored by a heuristic
// configuration.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/t2048-ai/internal/board"
	"github.com/vovakirdan/t2048-ai/internal/heuristic"
)

var (
	// ErrNoLegalMove is returned when no direction changes the board.
	ErrNoLegalMove = errors.New("search: no legal move")

	// ErrInvalidDepth is returned for a depth below 1.
	ErrInvalidDepth = errors.New("search: depth must be at least 1")

	// ErrBudgetExceeded is returned when even a depth 1 search expands
	// more nodes than the configured budget.
	ErrBudgetExceeded = errors.New("search: node budget exceeded")
)

// ctxCheckInterval is how many nodes a walker expands between context checks.
const ctxCheckInterval = 1024

// Stats describes the most recent search.
type Stats struct {
	Depth     int // deepest completed depth
	Nodes     int64
	CacheHits int64
	Duration  time.Duration
}

// Choice is the root value of one direction.
type Choice struct {
	Direction board.Direction
	Value     float64
	Legal     bool
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithParallel evaluates the four root directions concurrently.
func WithParallel(enabled bool) Option {
	return func(s *Searcher) { s.parallel = enabled }
}

// WithCache memoizes node values within a single decision.
func WithCache(enabled bool) Option {
	return func(s *Searcher) { s.cache = enabled }
}

// WithNodeBudget limits a decision to n expanded nodes, searching only
// as deep as fits. Zero means no limit.
func WithNodeBudget(n int64) Option {
	return func(s *Searcher) { s.budget = n }
}

// WithLogger sets the logger used for per-decision debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Searcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// Searcher runs expectimax with a fixed heuristic configuration.
// It is safe for concurrent use; every decision builds its own state.
type Searcher struct {
	cfg      heuristic.Configuration
	eval     *heuristic.Evaluator
	parallel bool
	cache    bool
	budget   int64
	logger   *log.Logger

	mu   sync.Mutex
	last Stats
}

// New creates a Searcher for the given configuration.
func New(cfg heuristic.Configuration, opts ...Option) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	s := &Searcher{
		cfg:    cfg,
		eval:   heuristic.Compile(cfg),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Configuration returns the heuristic configuration in use.
func (s *Searcher) Configuration() heuristic.Configuration {
	return s.cfg
}

// LastStats returns statistics for the most recent Decide or Choices call.
func (s *Searcher) LastStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Decide returns the direction with the highest expected value. Ties go
// to the first direction in Up, Down, Left, Right order.
func (s *Searcher) Decide(ctx context.Context, b board.Board, depth int) (board.Direction, error) {
	choices, err := s.Choices(ctx, b, depth)
	if err != nil {
		return 0, err
	}

	best, err := Best(choices[:])
	if err != nil {
		return 0, err
	}

	stats := s.LastStats()
	s.logger.Debug("decided",
		"move", best.Direction,
		"value", best.Value,
		"depth", stats.Depth,
		"nodes", stats.Nodes,
		"cache_hits", stats.CacheHits,
		"elapsed", stats.Duration,
	)
	return best.Direction, nil
}

// Best returns the legal choice with the highest value. Ties go to the
// earliest choice.
func Best(choices []Choice) (Choice, error) {
	best := -1
	for i, c := range choices {
		if !c.Legal {
			continue
		}
		if best < 0 || c.Value > choices[best].Value {
			best = i
		}
	}
	if best < 0 {
		return Choice{}, ErrNoLegalMove
	}
	return choices[best], nil
}

// Choices evaluates every root direction. Illegal directions are
// reported with Legal=false and are never searched.
//
// With a node budget the search deepens one ply at a time, starting at
// depth 1, and returns the choices of the deepest pass that finished
// within the budget. ErrBudgetExceeded is returned only when depth 1
// does not fit.
func (s *Searcher) Choices(ctx context.Context, b board.Board, depth int) ([len(board.Directions)]Choice, error) {
	var choices [len(board.Directions)]Choice
	if depth < 1 {
		return choices, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	if err := b.Validate(); err != nil {
		return choices, err
	}

	start := time.Now()
	var nodes, hits atomic.Int64

	first := depth
	if s.budget > 0 {
		first = 1
	}

	var err error
	reached := 0
	for d := first; d <= depth; d++ {
		pass, passErr := s.rootPass(ctx, b, d, &nodes, &hits)
		if passErr != nil {
			if errors.Is(passErr, ErrBudgetExceeded) && reached > 0 {
				s.logger.Debug("node budget reached", "depth", reached, "wanted", depth, "budget", s.budget)
				break
			}
			err = passErr
			break
		}
		choices, reached = pass, d
	}

	s.mu.Lock()
	s.last = Stats{Depth: reached, Nodes: nodes.Load(), CacheHits: hits.Load(), Duration: time.Since(start)}
	s.mu.Unlock()

	return choices, err
}

// rootPass searches every root direction to the given depth. nodes is
// shared with earlier passes of the same decision so the budget covers
// all of them.
func (s *Searcher) rootPass(ctx context.Context, b board.Board, depth int, nodes, hits *atomic.Int64) ([len(board.Directions)]Choice, error) {
	var choices [len(board.Directions)]Choice

	run := func(ctx context.Context, i int) error {
		d := board.Directions[i]
		choices[i].Direction = d

		out := board.Move(b, d)
		if !out.Changed {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		w := s.newWalker(ctx, nodes)
		v := w.value(out.Board, depth-1, false)
		hits.Add(w.hits)
		if w.err != nil {
			return w.err
		}
		choices[i].Value = v
		choices[i].Legal = true
		return nil
	}

	var err error
	if s.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range board.Directions {
			g.Go(func() error { return run(gctx, i) })
		}
		err = g.Wait()
	} else {
		for i := range board.Directions {
			if err = run(ctx, i); err != nil {
				break
			}
		}
	}
	return choices, err
}

// Value computes the expectimax value of b at the given depth without
// validation or node budget. decision selects a move-choosing node;
// otherwise b is a chance node awaiting a spawn.
func (s *Searcher) Value(b board.Board, depth int, decision bool) float64 {
	var nodes atomic.Int64
	w := s.newWalker(context.Background(), &nodes)
	w.budget = 0
	return w.value(b, depth, decision)
}

func (s *Searcher) newWalker(ctx context.Context, nodes *atomic.Int64) *walker {
	w := &walker{
		ctx:    ctx,
		eval:   s.eval,
		nodes:  nodes,
		budget: s.budget,
	}
	if s.cache {
		w.memo = make(map[nodeKey]float64)
	}
	return w
}

type nodeKey struct {
	b        board.Board
	depth    int
	decision bool
}

// walker holds the state of one root branch. It is never shared between
// goroutines apart from the node counter.
type walker struct {
	ctx    context.Context
	eval   *heuristic.Evaluator
	nodes  *atomic.Int64
	budget int64
	memo   map[nodeKey]float64
	local  int64
	hits   int64
	err    error
}

func (w *walker) value(b board.Board, depth int, decision bool) float64 {
	if !w.visit() {
		return 0
	}
	if depth <= 0 || board.Classify(b) != board.Ongoing {
		return w.eval.Score(b)
	}

	if w.memo == nil {
		return w.expand(b, depth, decision)
	}

	key := nodeKey{b: b, depth: depth, decision: decision}
	if v, ok := w.memo[key]; ok {
		w.hits++
		return v
	}
	v := w.expand(b, depth, decision)
	if w.err == nil {
		w.memo[key] = v
	}
	return v
}

func (w *walker) expand(b board.Board, depth int, decision bool) float64 {
	if decision {
		return w.maxNode(b, depth)
	}
	return w.chanceNode(b, depth)
}

func (w *walker) maxNode(b board.Board, depth int) float64 {
	best := math.Inf(-1)
	moved := false

	for _, d := range board.Directions {
		out := board.Move(b, d)
		if !out.Changed {
			continue
		}
		moved = true

		if v := w.value(out.Board, depth-1, false); v > best {
			best = v
		}
		if w.err != nil {
			return 0
		}
	}

	if !moved {
		return w.eval.Score(b)
	}
	return best
}

func (w *walker) chanceNode(b board.Board, depth int) float64 {
	cells := b.EmptyCells()
	if len(cells) == 0 {
		return w.eval.Score(b)
	}

	total := 0.0
	for _, cell := range cells {
		v2 := w.value(b.Set(cell, 2), depth-1, true)
		v4 := w.value(b.Set(cell, 4), depth-1, true)
		if w.err != nil {
			return 0
		}
		total += board.SpawnProb2*v2 + board.SpawnProb4*v4
	}

	return total / float64(len(cells))
}

// visit counts a node and reports whether the search may continue.
func (w *walker) visit() bool {
	if w.err != nil {
		return false
	}

	n := w.nodes.Add(1)
	if w.budget > 0 && n > w.budget {
		w.err = ErrBudgetExceeded
		return false
	}

	w.local++
	if w.local%ctxCheckInterval == 0 {
		if err := w.ctx.Err(); err != nil {
			w.err = err
			return false
		}
	}
	return true
}
