package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048-ai/internal/ai"
	"github.com/vovakirdan/t2048-ai/internal/board"
	"github.com/vovakirdan/t2048-ai/internal/search"
)

var (
	flagDepth   int
	flagWeights string
)

var decideCmd = &cobra.Command{
	Use:   "decide <board>",
	Short: "Choose a move for a board",
	Long: `Run expectimax on a board and print the chosen direction together
with the expected value of every direction.

Examples:
  t2048ai decide 2,2,0,0/0,4,0,0/0,0,8,0/0,0,0,16
  t2048ai decide "2 2 0 0/0 4 0 0/0 0 8 0/0 0 0 16" --depth 4
  t2048ai decide 2,2,0,0/0,4,0,0/0,0,8,0/0,0,0,16 --weights empty_tile=1`,
	Args: cobra.MinimumNArgs(1),
	Run:  runDecide,
}

func init() {
	decideCmd.Flags().IntVar(&flagDepth, "depth", 0, "Search depth (overrides config)")
	decideCmd.Flags().StringVar(&flagWeights, "weights", "", "Heuristic weights as id=w,id=w (overrides config)")
}

func runDecide(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	r := newRenderer()

	b, err := board.Parse(strings.Join(args, " "))
	if err != nil {
		fatal("%v", err)
	}

	depth := cfg.Search.Depth
	if flagDepth != 0 {
		depth = flagDepth
	}

	sel, err := ai.NewSelector(heuristics(cfg, flagWeights, logger), depth, searchOptions(cfg, logger)...)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Println(r.Board(b))
	fmt.Printf("State: %s\n", board.ClassifyTarget(b, cfg.Game.Target))
	fmt.Println()

	choices, err := sel.Choices(context.Background(), b)
	if err != nil {
		fatal("%v", err)
	}
	best, err := search.Best(choices[:])
	if errors.Is(err, search.ErrNoLegalMove) {
		fmt.Println("No legal move.")
		return
	}
	move := best.Direction

	fmt.Println(r.Label(fmt.Sprintf("Depth %d, weights %s", sel.Depth(), sel.Configuration())))
	fmt.Println(r.Choices(choices[:], move))
	fmt.Println()

	stats := sel.Stats()
	fmt.Printf("Move: %s (%d nodes, %d cache hits, %s)\n", move, stats.Nodes, stats.CacheHits, stats.Duration)
}
