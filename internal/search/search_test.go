package search

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/t2048-ai/internal/board"
	"github.com/vovakirdan/t2048-ai/internal/heuristic"
)

func newSearcher(t *testing.T, cfg heuristic.Configuration, opts ...Option) *Searcher {
	t.Helper()
	s, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func evaluate(t *testing.T, b board.Board, cfg heuristic.Configuration) float64 {
	t.Helper()
	v, err := heuristic.Evaluate(b, cfg)
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	return v
}

// playedBoard returns a mid-game board reached by random legal moves.
func playedBoard(seed int64, moves int) board.Board {
	rng := rand.New(rand.NewSource(seed))
	b := board.NewGame(rng)
	for i := 0; i < moves; i++ {
		legal := board.Legal(b)
		if len(legal) == 0 {
			break
		}
		b = board.Move(b, legal[rng.Intn(len(legal))]).Board
		b, _ = board.Spawn(b, rng)
	}
	return b
}

func TestDepthOneIsGreedy(t *testing.T) {
	cfg := heuristic.Default()
	s := newSearcher(t, cfg)

	for seed := int64(1); seed <= 30; seed++ {
		b := playedBoard(seed, 25)
		if len(board.Legal(b)) == 0 {
			continue
		}

		got, err := s.Decide(context.Background(), b, 1)
		if err != nil {
			t.Fatalf("Decide() failed: %v", err)
		}

		want := board.Direction(-1)
		best := math.Inf(-1)
		for _, d := range board.Directions {
			out := board.Move(b, d)
			if !out.Changed {
				continue
			}
			if v := evaluate(t, out.Board, cfg); v > best {
				best = v
				want = d
			}
		}

		if got != want {
			t.Errorf("seed %d: Decide(depth=1) = %v, greedy = %v", seed, got, want)
		}
	}
}

func TestChanceNodeWeighting(t *testing.T) {
	cfg := heuristic.Default()
	s := newSearcher(t, cfg)

	b := board.Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{4, 8, 16, 0},
		{8, 16, 32, 64},
	}
	cell := board.Cell{Row: 2, Col: 3}
	with2 := b.Set(cell, 2)
	with4 := b.Set(cell, 4)

	got := s.Value(b, 1, false)
	want := 0.9*evaluate(t, with2, cfg) + 0.1*evaluate(t, with4, cfg)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("chance value depth 1 = %v, want %v", got, want)
	}

	got = s.Value(b, 3, false)
	want = 0.9*s.Value(with2, 2, true) + 0.1*s.Value(with4, 2, true)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("chance value depth 3 = %v, want %v", got, want)
	}
}

func TestChanceNodeAveragesCells(t *testing.T) {
	cfg := heuristic.Configuration{{Strategy: heuristic.MaxScore, Weight: 1}}
	s := newSearcher(t, cfg)

	b := board.Board{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{4, 8, 0, 0},
		{8, 16, 32, 64},
	}

	// Every child is a depth-0 leaf scored by tile sum, so the mean across
	// cells of 0.9*(sum+2)+0.1*(sum+4) is sum+2.2.
	want := float64(b.Sum()) + 2.2
	if got := s.Value(b, 1, false); math.Abs(got-want) > 1e-9 {
		t.Errorf("chance value = %v, want %v", got, want)
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	cfg := heuristic.Default()
	b := playedBoard(42, 30)

	variants := map[string]*Searcher{
		"sequential": newSearcher(t, cfg),
		"parallel":   newSearcher(t, cfg, WithParallel(true)),
		"cached":     newSearcher(t, cfg, WithCache(true)),
		"both":       newSearcher(t, cfg, WithParallel(true), WithCache(true)),
	}

	ref, err := variants["sequential"].Choices(context.Background(), b, 3)
	if err != nil {
		t.Fatalf("Choices() failed: %v", err)
	}

	for name, s := range variants {
		for i := 0; i < 2; i++ {
			got, err := s.Choices(context.Background(), b, 3)
			if err != nil {
				t.Fatalf("%s: Choices() failed: %v", name, err)
			}
			for j := range got {
				if got[j].Legal != ref[j].Legal || math.Abs(got[j].Value-ref[j].Value) > 1e-9 {
					t.Errorf("%s run %d: choice %v = %+v, want %+v", name, i, got[j].Direction, got[j], ref[j])
				}
			}
		}
	}

	first, err := variants["both"].Decide(context.Background(), b, 3)
	if err != nil {
		t.Fatalf("Decide() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, _ := variants["sequential"].Decide(context.Background(), b, 3)
		if again != first {
			t.Errorf("Decide() = %v, want %v", again, first)
		}
	}
}

func TestCacheHits(t *testing.T) {
	s := newSearcher(t, heuristic.Default(), WithCache(true))
	b := playedBoard(5, 20)

	if _, err := s.Decide(context.Background(), b, 4); err != nil {
		t.Fatalf("Decide() failed: %v", err)
	}
	stats := s.LastStats()
	if stats.Nodes == 0 {
		t.Error("expected nodes to be counted")
	}
	if stats.CacheHits == 0 {
		t.Error("expected transpositions to hit the cache at depth 4")
	}
}

func TestTieBreakFirstDirection(t *testing.T) {
	// An empty configuration scores everything 0, so the first legal
	// direction in Up, Down, Left, Right order wins.
	s := newSearcher(t, nil)

	b := board.Board{{2, 0, 0, 0}}
	got, err := s.Decide(context.Background(), b, 2)
	if err != nil {
		t.Fatalf("Decide() failed: %v", err)
	}
	if got != board.Down {
		t.Errorf("Decide() = %v, want down", got)
	}
}

func TestNoLegalMove(t *testing.T) {
	s := newSearcher(t, heuristic.Default())
	b := board.Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}

	if _, err := s.Decide(context.Background(), b, 3); !errors.Is(err, ErrNoLegalMove) {
		t.Errorf("Decide() error = %v, want ErrNoLegalMove", err)
	}
}

func TestInvalidInput(t *testing.T) {
	s := newSearcher(t, heuristic.Default())

	if _, err := s.Decide(context.Background(), board.Board{{2}}, 0); !errors.Is(err, ErrInvalidDepth) {
		t.Errorf("Decide(depth=0) error = %v, want ErrInvalidDepth", err)
	}

	var invalid *board.InvalidBoardError
	if _, err := s.Decide(context.Background(), board.Board{{12}}, 2); !errors.As(err, &invalid) {
		t.Errorf("Decide(bad board) error = %v, want *board.InvalidBoardError", err)
	}

	dup := heuristic.Configuration{
		{Strategy: heuristic.EmptyTile, Weight: 1},
		{Strategy: heuristic.EmptyTile, Weight: 1},
	}
	if _, err := New(dup); !errors.Is(err, heuristic.ErrDuplicateStrategy) {
		t.Errorf("New(dup) error = %v, want ErrDuplicateStrategy", err)
	}
}

func TestTerminalCutoff(t *testing.T) {
	cfg := heuristic.Default()
	s := newSearcher(t, cfg)

	won := board.Board{
		{2048, 2, 0, 0},
		{4, 0, 0, 0},
	}
	if got, want := s.Value(won, 4, true), evaluate(t, won, cfg); got != want {
		t.Errorf("Value(won) = %v, want direct evaluation %v", got, want)
	}

	stuck := board.Board{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	if got, want := s.Value(stuck, 4, false), evaluate(t, stuck, cfg); got != want {
		t.Errorf("Value(stuck) = %v, want direct evaluation %v", got, want)
	}
}

func TestNodeBudget(t *testing.T) {
	cfg := heuristic.Default()
	greedy := newSearcher(t, cfg)

	for seed := int64(1); seed <= 10; seed++ {
		b := playedBoard(seed, 10)
		if len(board.Legal(b)) == 0 {
			continue
		}

		// Depth 1 costs one node per legal direction; any depth 2 branch
		// needs more than the rest.
		s := newSearcher(t, cfg, WithNodeBudget(8))
		got, err := s.Decide(context.Background(), b, 4)
		if err != nil {
			t.Fatalf("seed %d: Decide() failed: %v", seed, err)
		}
		if !board.Move(b, got).Changed {
			t.Errorf("seed %d: Decide() = %v, not a legal move", seed, got)
		}
		if d := s.LastStats().Depth; d != 1 {
			t.Errorf("seed %d: reached depth %d, want 1", seed, d)
		}

		want, err := greedy.Decide(context.Background(), b, 1)
		if err != nil {
			t.Fatalf("seed %d: Decide(depth=1) failed: %v", seed, err)
		}
		if got != want {
			t.Errorf("seed %d: budgeted Decide() = %v, depth 1 = %v", seed, got, want)
		}
	}
}

func TestNodeBudgetDeepens(t *testing.T) {
	b := playedBoard(9, 10)
	tests := []struct {
		name     string
		parallel bool
	}{
		{"sequential", false},
		{"parallel", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSearcher(t, heuristic.Default(), WithNodeBudget(5000), WithParallel(tt.parallel))
			got, err := s.Decide(context.Background(), b, 6)
			if err != nil {
				t.Fatalf("Decide() failed: %v", err)
			}
			if !board.Move(b, got).Changed {
				t.Errorf("Decide() = %v, not a legal move", got)
			}
			if d := s.LastStats().Depth; d < 1 || d >= 6 {
				t.Errorf("reached depth %d, want between 1 and 5", d)
			}
		})
	}
}

func TestNodeBudgetTooSmall(t *testing.T) {
	s := newSearcher(t, heuristic.Default(), WithNodeBudget(1))

	// Down and Right both move the tile, so depth 1 needs two nodes.
	b := board.Board{{2, 0, 0, 0}}
	if _, err := s.Decide(context.Background(), b, 3); !errors.Is(err, ErrBudgetExceeded) {
		t.Errorf("Decide() error = %v, want ErrBudgetExceeded", err)
	}
}

func TestFullDepthWithoutBudget(t *testing.T) {
	s := newSearcher(t, heuristic.Default())
	if _, err := s.Decide(context.Background(), playedBoard(3, 8), 2); err != nil {
		t.Fatalf("Decide() failed: %v", err)
	}
	if d := s.LastStats().Depth; d != 2 {
		t.Errorf("reached depth %d, want 2", d)
	}
}

func TestCancelledContext(t *testing.T) {
	s := newSearcher(t, heuristic.Default(), WithParallel(true))
	b := playedBoard(9, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Decide(ctx, b, 3); !errors.Is(err, context.Canceled) {
		t.Errorf("Decide() error = %v, want context.Canceled", err)
	}
}

func TestBest(t *testing.T) {
	choices := []Choice{
		{Direction: board.Up},
		{Direction: board.Down, Value: 5, Legal: true},
		{Direction: board.Left, Value: 5, Legal: true},
		{Direction: board.Right, Value: 4, Legal: true},
	}
	best, err := Best(choices)
	if err != nil {
		t.Fatalf("Best() failed: %v", err)
	}
	if best.Direction != board.Down {
		t.Errorf("Best() = %v, want the earlier of the tied directions", best.Direction)
	}

	if _, err := Best(choices[:1]); !errors.Is(err, ErrNoLegalMove) {
		t.Errorf("Best(no legal) error = %v, want ErrNoLegalMove", err)
	}
}
