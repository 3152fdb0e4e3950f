// Package sweep searches heuristic weight space by autoplaying every
// weight vector of a grid and ranking the outcomes.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/t2048-ai/internal/ai"
	"github.com/vovakirdan/t2048-ai/internal/board"
	"github.com/vovakirdan/t2048-ai/internal/game"
	"github.com/vovakirdan/t2048-ai/internal/heuristic"
	"github.com/vovakirdan/t2048-ai/internal/search"
	"github.com/vovakirdan/t2048-ai/internal/storage"
)

// MaxVectors caps the size of a grid.
const MaxVectors = 100_000

var (
	// ErrEmptyGrid is returned for a grid without strategies or values.
	ErrEmptyGrid = errors.New("sweep: grid needs at least one strategy and one value")

	// ErrGridTooLarge is returned when a grid expands past MaxVectors.
	ErrGridTooLarge = errors.New("sweep: grid too large")
)

// Grid assigns every value to every strategy independently.
type Grid struct {
	Strategies []string
	Values     []float64
}

// Size returns the number of weight vectors in the grid.
func (g Grid) Size() int {
	if len(g.Strategies) == 0 || len(g.Values) == 0 {
		return 0
	}
	n := 1
	for range g.Strategies {
		n *= len(g.Values)
		if n > MaxVectors {
			return MaxVectors + 1
		}
	}
	return n
}

// Validate checks the grid before expansion.
func (g Grid) Validate() error {
	if g.Size() == 0 {
		return ErrEmptyGrid
	}
	if g.Size() > MaxVectors {
		return fmt.Errorf("%w: more than %d vectors", ErrGridTooLarge, MaxVectors)
	}
	probe := make(heuristic.Configuration, len(g.Strategies))
	for i, id := range g.Strategies {
		if !heuristic.Exists(id) {
			return fmt.Errorf("sweep: unknown strategy %q", id)
		}
		probe[i] = heuristic.Weight{Strategy: id}
	}
	if err := probe.Validate(); err != nil {
		return fmt.Errorf("sweep: %w", err)
	}
	return nil
}

// Vectors expands the grid. The last strategy varies fastest.
func (g Grid) Vectors() []heuristic.Configuration {
	size := g.Size()
	if size == 0 || size > MaxVectors {
		return nil
	}

	vectors := make([]heuristic.Configuration, 0, size)
	idx := make([]int, len(g.Strategies))
	for {
		cfg := make(heuristic.Configuration, len(g.Strategies))
		for i, id := range g.Strategies {
			cfg[i] = heuristic.Weight{Strategy: id, Weight: g.Values[idx[i]]}
		}
		vectors = append(vectors, cfg)

		// Odometer increment
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(g.Values) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return vectors
		}
	}
}

// RunSaver persists finished games.
type RunSaver interface {
	SaveRun(r storage.Run) (int64, error)
}

// Options configures Run.
type Options struct {
	Depth    int
	Games    int   // games per vector
	Seed     int64 // game i of every vector uses Seed+i
	Target   int
	MaxMoves int
	Workers  int // defaults to GOMAXPROCS
	Saver    RunSaver
	Logger   *log.Logger
	Search   []search.Option
}

// Result aggregates the games played with one weight vector.
type Result struct {
	Config     heuristic.Configuration
	Games      int
	Wins       int
	MaxTile    int // best max tile over the games
	AvgScore   float64
	AvgTileSum float64
	Duration   time.Duration
}

// Label identifies runs of cfg in storage.
func Label(cfg heuristic.Configuration) string {
	return "sweep:" + cfg.String()
}

// Run plays every vector of grid and returns the results ranked by best
// max tile, then average score.
func Run(ctx context.Context, grid Grid, opts Options) ([]Result, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if opts.Depth < 1 {
		return nil, search.ErrInvalidDepth
	}
	if opts.Games < 1 {
		opts.Games = 1
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	vectors := grid.Vectors()
	results := make([]Result, len(vectors))
	logger.Info("sweep started", "vectors", len(vectors), "games", opts.Games, "depth", opts.Depth, "workers", opts.Workers)

	var saveMu sync.Mutex
	save := func(r storage.Run) error {
		if opts.Saver == nil {
			return nil
		}
		saveMu.Lock()
		defer saveMu.Unlock()
		_, err := opts.Saver.SaveRun(r)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, cfg := range vectors {
		g.Go(func() error {
			res, err := playVector(gctx, cfg, opts, save)
			if err != nil {
				return err
			}
			results[i] = res
			logger.Debug("vector done", "weights", cfg, "max_tile", res.MaxTile, "avg_score", res.AvgScore)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	Rank(results)
	return results, nil
}

func playVector(ctx context.Context, cfg heuristic.Configuration, opts Options, save func(storage.Run) error) (Result, error) {
	sel, err := ai.NewSelector(cfg, opts.Depth, opts.Search...)
	if err != nil {
		return Result{}, err
	}

	res := Result{Config: cfg, Games: opts.Games}
	start := time.Now()
	var score, tiles int
	for i := 0; i < opts.Games; i++ {
		seed := opts.Seed + int64(i)
		out, err := game.Autoplay(ctx, game.New(seed, opts.Target), sel, game.Options{MaxMoves: opts.MaxMoves})
		if err != nil {
			return Result{}, fmt.Errorf("sweep: %s seed %d: %w", cfg, seed, err)
		}

		score += out.Score
		tiles += out.TileSum
		res.MaxTile = max(res.MaxTile, out.MaxTile)
		if out.State == board.Win {
			res.Wins++
		}

		err = save(storage.Run{
			Label:      Label(cfg),
			Depth:      opts.Depth,
			Weights:    cfg.String(),
			Seed:       seed,
			Score:      out.Score,
			TileSum:    out.TileSum,
			MaxTile:    out.MaxTile,
			Moves:      out.Moves,
			Outcome:    out.State.String(),
			DurationMS: out.Duration.Milliseconds(),
		})
		if err != nil {
			return Result{}, err
		}
	}

	res.AvgScore = float64(score) / float64(opts.Games)
	res.AvgTileSum = float64(tiles) / float64(opts.Games)
	res.Duration = time.Since(start)
	return res, nil
}

// Rank sorts results by best max tile, then average score, both
// descending. Equal results keep their grid order.
func Rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MaxTile != results[j].MaxTile {
			return results[i].MaxTile > results[j].MaxTile
		}
		return results[i].AvgScore > results[j].AvgScore
	})
}
