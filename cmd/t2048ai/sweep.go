package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048-ai/internal/search"
	"github.com/vovakirdan/t2048-ai/internal/storage"
	"github.com/vovakirdan/t2048-ai/internal/sweep"
)

var (
	flagSweepStrategies []string
	flagSweepValues     string
	flagSweepGames      int
	flagSweepDepth      int
	flagSweepWorkers    int
	flagSweepTop        int
	flagSweepMaxMoves   int
	flagSweepNoSave     bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Grid-search heuristic weights",
	Long: `Play every combination of the given weight values over the given
strategies and rank the weight vectors by best max tile, then average
score. Each vector plays the same seeds.

Examples:
  t2048ai sweep --strategies empty_tile,monotonicity --values 0,50,200
  t2048ai sweep --strategies empty_tile,smoothness,corner_max --values 0,1,10,100 --games 5 --depth 1`,
	Run: runSweep,
}

func init() {
	sweepCmd.Flags().StringSliceVar(&flagSweepStrategies, "strategies", nil, "Strategies to weight (comma separated)")
	sweepCmd.Flags().StringVar(&flagSweepValues, "values", "0,1,10,100", "Weight values tried for every strategy")
	sweepCmd.Flags().IntVar(&flagSweepGames, "games", 0, "Games per weight vector (overrides config)")
	sweepCmd.Flags().IntVar(&flagSweepDepth, "depth", 0, "Search depth (overrides config)")
	sweepCmd.Flags().IntVar(&flagSweepWorkers, "workers", 0, "Concurrent weight vectors (default: GOMAXPROCS)")
	sweepCmd.Flags().IntVar(&flagSweepTop, "top", 10, "Number of vectors to show")
	sweepCmd.Flags().IntVar(&flagSweepMaxMoves, "max-moves", -1, "Move limit per game, 0 = none (overrides config)")
	sweepCmd.Flags().BoolVar(&flagSweepNoSave, "no-save", false, "Do not record runs")
	sweepCmd.MarkFlagRequired("strategies")
}

func runSweep(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	values, err := parseValues(flagSweepValues)
	if err != nil {
		fatal("%v", err)
	}
	grid := sweep.Grid{Strategies: flagSweepStrategies, Values: values}
	if err := grid.Validate(); err != nil {
		fatal("%v", err)
	}

	opts := sweep.Options{
		Depth:    cfg.Search.Depth,
		Games:    cfg.Game.Games,
		Seed:     baseSeed(),
		Target:   cfg.Game.Target,
		MaxMoves: cfg.Game.MaxMoves,
		Workers:  flagSweepWorkers,
		Logger:   logger,
		// Vectors already run concurrently, so the root stays sequential
		Search: []search.Option{
			search.WithCache(cfg.Search.Cache),
			search.WithNodeBudget(cfg.Search.NodeBudget),
		},
	}
	if flagSweepGames > 0 {
		opts.Games = flagSweepGames
	}
	if flagSweepDepth > 0 {
		opts.Depth = flagSweepDepth
	}
	if flagSweepMaxMoves >= 0 {
		opts.MaxMoves = flagSweepMaxMoves
	}

	if !flagSweepNoSave {
		store, err := storage.Open(cfg.Storage.DBPath)
		if err != nil {
			logger.Warn("could not open runs database", "error", err)
		} else {
			defer store.Close()
			opts.Saver = store
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := sweep.Run(ctx, grid, opts)
	if err != nil {
		fatal("%v", err)
	}

	top := min(flagSweepTop, len(results))
	fmt.Printf("Top %d of %d weight vectors (depth %d, %d games each, seed %d)\n\n", top, len(results), opts.Depth, opts.Games, opts.Seed)
	fmt.Printf("  %-4s  %-6s  %-10s  %-5s  %s\n", "Rank", "Max", "Avg score", "Wins", "Weights")
	fmt.Printf("  %-4s  %-6s  %-10s  %-5s  %s\n", "----", "---", "---------", "----", "-------")
	for i, res := range results[:top] {
		fmt.Printf("  %-4d  %-6d  %-10.1f  %-5d  %s\n", i+1, res.MaxTile, res.AvgScore, res.Wins, res.Config)
	}
}

func parseValues(s string) ([]float64, error) {
	var values []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value %q: %w", part, err)
		}
		values = append(values, v)
	}
	return values, nil
}
