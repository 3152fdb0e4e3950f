package sweep

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vovakirdan/t2048-ai/internal/heuristic"
	"github.com/vovakirdan/t2048-ai/internal/storage"
)

func TestGridVectors(t *testing.T) {
	g := Grid{
		Strategies: []string{heuristic.EmptyTile, heuristic.Smoothness},
		Values:     []float64{0, 1, 2},
	}

	vectors := g.Vectors()
	if len(vectors) != 9 || g.Size() != 9 {
		t.Fatalf("got %d vectors (Size %d), want 9", len(vectors), g.Size())
	}

	// itertools.product order: the last strategy varies fastest
	want := [][2]float64{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	for i, v := range vectors {
		if v[0].Strategy != heuristic.EmptyTile || v[1].Strategy != heuristic.Smoothness {
			t.Fatalf("vector %d strategies = %v", i, v)
		}
		if v[0].Weight != want[i][0] || v[1].Weight != want[i][1] {
			t.Errorf("vector %d = %v, want weights %v", i, v, want[i])
		}
	}
}

func TestGridValidate(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		want error
	}{
		{"no strategies", Grid{Values: []float64{1}}, ErrEmptyGrid},
		{"no values", Grid{Strategies: []string{heuristic.EmptyTile}}, ErrEmptyGrid},
		{"too large", Grid{
			Strategies: []string{
				heuristic.EmptyTile, heuristic.Monotonicity, heuristic.Smoothness,
				heuristic.MergeOpportunities, heuristic.MaxTile, heuristic.CornerMax,
			},
			Values: make([]float64, 10),
		}, ErrGridTooLarge},
		{"duplicate", Grid{Strategies: []string{heuristic.EmptyTile, heuristic.EmptyTile}, Values: []float64{1}}, heuristic.ErrDuplicateStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.grid.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	unknown := Grid{Strategies: []string{"bogus"}, Values: []float64{1}}
	if err := unknown.Validate(); err == nil {
		t.Error("Validate() should reject unknown strategies")
	}
}

type memorySaver struct {
	mu   sync.Mutex
	runs []storage.Run
}

func (m *memorySaver) SaveRun(r storage.Run) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, r)
	return int64(len(m.runs)), nil
}

func TestRun(t *testing.T) {
	grid := Grid{
		Strategies: []string{heuristic.EmptyTile, heuristic.MergeOpportunities},
		Values:     []float64{0, 10},
	}
	saver := &memorySaver{}
	opts := Options{
		Depth:    1,
		Games:    2,
		Seed:     100,
		Target:   2048,
		MaxMoves: 30,
		Workers:  3,
		Saver:    saver,
	}

	results, err := Run(context.Background(), grid, opts)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	if len(saver.runs) != 8 {
		t.Errorf("saved %d runs, want 8", len(saver.runs))
	}
	for _, r := range saver.runs {
		if r.Label != "sweep:"+r.Weights || r.Depth != 1 {
			t.Errorf("saved run = %+v", r)
		}
		if r.Seed != 100 && r.Seed != 101 {
			t.Errorf("unexpected seed %d", r.Seed)
		}
	}

	for i := 1; i < len(results); i++ {
		a, b := results[i-1], results[i]
		if a.MaxTile < b.MaxTile || (a.MaxTile == b.MaxTile && a.AvgScore < b.AvgScore) {
			t.Errorf("results not ranked at %d: %+v before %+v", i, a, b)
		}
	}

	// Same seeds and grid give the same ranking regardless of scheduling.
	again, err := Run(context.Background(), grid, Options{Depth: 1, Games: 2, Seed: 100, Target: 2048, MaxMoves: 30, Workers: 1})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	for i := range results {
		if results[i].Config.String() != again[i].Config.String() || results[i].AvgScore != again[i].AvgScore {
			t.Errorf("result %d differs between runs: %+v vs %+v", i, results[i], again[i])
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	grid := Grid{Strategies: []string{heuristic.EmptyTile}, Values: []float64{1, 2}}
	if _, err := Run(ctx, grid, Options{Depth: 1, Games: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRank(t *testing.T) {
	results := []Result{
		{MaxTile: 512, AvgScore: 9000},
		{MaxTile: 1024, AvgScore: 100},
		{MaxTile: 1024, AvgScore: 300},
		{MaxTile: 512, AvgScore: 9000, Games: 7},
	}
	Rank(results)

	if results[0].AvgScore != 300 || results[1].AvgScore != 100 {
		t.Errorf("Rank() top = %+v", results[:2])
	}
	// Stable for ties
	if results[2].Games != 0 || results[3].Games != 7 {
		t.Errorf("Rank() not stable: %+v", results[2:])
	}
}
