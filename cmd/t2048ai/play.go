package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048-ai/internal/ai"
	"github.com/vovakirdan/t2048-ai/internal/board"
	"github.com/vovakirdan/t2048-ai/internal/game"
	"github.com/vovakirdan/t2048-ai/internal/storage"
)

var (
	flagGames       int
	flagMaxMoves    int
	flagPlayDepth   int
	flagPlayWeights string
	flagLabel       string
	flagNoSave      bool
	flagShowBoard   bool
	flagTrace       bool
	flagStart       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Autoplay games and record the runs",
	Long: `Let the move selector play seeded games until each is won, lost or
hits the move limit. Every finished game is recorded in the runs
database under a label.

Search presets:
  greedy   - Depth 1, pure heuristic choice
  balanced - Depth 3 with parallel root and cache
  deep     - Depth 4 with parallel root and cache

Examples:
  t2048ai play
  t2048ai play --games 50 --preset greedy
  t2048ai play --seed 42 --games 5 --show-board
  t2048ai play --games 1 --trace --start "2,2,0,0/0,4,0,0/0,0,0,0/0,0,0,8"
  t2048ai play --weights empty_tile=270,monotonicity=47 --label mono`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagGames, "games", 0, "Number of games (overrides config)")
	playCmd.Flags().IntVar(&flagMaxMoves, "max-moves", -1, "Move limit per game, 0 = none (overrides config)")
	playCmd.Flags().IntVar(&flagPlayDepth, "depth", 0, "Search depth (overrides config)")
	playCmd.Flags().StringVar(&flagPlayWeights, "weights", "", "Heuristic weights as id=w,id=w (overrides config)")
	playCmd.Flags().StringVar(&flagLabel, "label", "", "Label for recorded runs (default: depth and weights)")
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record runs")
	playCmd.Flags().BoolVar(&flagShowBoard, "show-board", false, "Print the final board of every game")
	playCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print the board after every move")
	playCmd.Flags().StringVar(&flagStart, "start", "", "Start every game from this board instead of two random tiles")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	r := newRenderer()

	if flagGames > 0 {
		cfg.Game.Games = flagGames
	}
	if flagMaxMoves >= 0 {
		cfg.Game.MaxMoves = flagMaxMoves
	}
	if flagPlayDepth > 0 {
		cfg.Search.Depth = flagPlayDepth
	}

	weights := heuristics(cfg, flagPlayWeights, logger)
	sel, err := ai.NewSelector(weights, cfg.Search.Depth, searchOptions(cfg, logger)...)
	if err != nil {
		fatal("%v", err)
	}

	var start *board.Board
	if flagStart != "" {
		b, err := board.Parse(flagStart)
		if err != nil {
			fatal("%v", err)
		}
		start = &b
	}

	opts := game.Options{
		MaxMoves: cfg.Game.MaxMoves,
		Logger:   logger,
	}
	if flagTrace {
		opts.OnMove = func(s game.Snapshot) {
			fmt.Println(r.Snapshot(s))
		}
	}

	label := flagLabel
	if label == "" {
		label = fmt.Sprintf("d%d:%s", sel.Depth(), weights)
	}

	// Open run storage (optional)
	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(cfg.Storage.DBPath)
		if err != nil {
			logger.Warn("could not open runs database", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seed := baseSeed()
	logger.Info("playing", "games", cfg.Game.Games, "depth", sel.Depth(), "seed", seed, "label", label)

	fmt.Printf("  %-4s  %-20s  %-8s  %-8s  %-6s  %s\n", "Game", "Seed", "Outcome", "Max", "Moves", "Score")
	fmt.Printf("  %-4s  %-20s  %-8s  %-8s  %-6s  %s\n", "----", "----", "-------", "---", "-----", "-----")

	var results []game.Result
	for i := 0; i < cfg.Game.Games; i++ {
		g := game.New(seed+int64(i), cfg.Game.Target)
		if start != nil {
			if err := g.Load(*start); err != nil {
				fatal("%v", err)
			}
		}
		res, err := game.Autoplay(ctx, g, sel, opts)
		if err != nil {
			if ctx.Err() != nil {
				logger.Warn("interrupted", "completed", len(results))
				break
			}
			fatal("%v", err)
		}
		results = append(results, res)

		fmt.Printf("  %-4d  %-20d  %-8s  %-8d  %-6d  %d\n", i+1, res.Seed, res.State, res.MaxTile, res.Moves, res.Score)
		if flagShowBoard {
			fmt.Println(r.Board(res.Final))
		}

		if store != nil {
			_, err := store.SaveRun(storage.Run{
				Label:      label,
				Depth:      sel.Depth(),
				Weights:    weights.String(),
				Seed:       res.Seed,
				Score:      res.Score,
				TileSum:    res.TileSum,
				MaxTile:    res.MaxTile,
				Moves:      res.Moves,
				Outcome:    res.State.String(),
				DurationMS: res.Duration.Milliseconds(),
			})
			if err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}
	}

	printSummary(results)
}

func printSummary(results []game.Result) {
	if len(results) == 0 {
		return
	}

	var wins, best, score int
	for _, res := range results {
		if res.State == board.Win {
			wins++
		}
		best = max(best, res.MaxTile)
		score += res.Score
	}

	fmt.Println()
	fmt.Printf("Games: %d  Wins: %d (%.0f%%)  Best tile: %d  Avg score: %.1f\n",
		len(results), wins, 100*float64(wins)/float64(len(results)), best, float64(score)/float64(len(results)))
}
