package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048-ai/internal/board"
	"github.com/vovakirdan/t2048-ai/internal/heuristic"
)

var flagEvalWeights string

var evalCmd = &cobra.Command{
	Use:   "eval <board>",
	Short: "Show how a board scores",
	Long: `Print every configured strategy's raw value, its weight and the
weighted total for a board. Unknown strategies are listed but contribute
nothing.

Examples:
  t2048ai eval 2,2,4,8/0,4,4,0/0,0,0,0/16,0,0,2
  t2048ai eval 2,2,4,8/0,4,4,0/0,0,0,0/16,0,0,2 --weights smoothness=1,max_tile=0.5`,
	Args: cobra.MinimumNArgs(1),
	Run:  runEval,
}

func init() {
	evalCmd.Flags().StringVar(&flagEvalWeights, "weights", "", "Heuristic weights as id=w,id=w (overrides config)")
}

func runEval(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	r := newRenderer()

	b, err := board.Parse(strings.Join(args, " "))
	if err != nil {
		fatal("%v", err)
	}

	weights := heuristics(cfg, flagEvalWeights, logger)
	terms, err := heuristic.Breakdown(b, weights)
	if err != nil {
		fatal("%v", err)
	}
	total, err := heuristic.Evaluate(b, weights)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Println(r.Board(b))
	fmt.Println()

	// Calculate column widths
	maxIDLen := len("Strategy")
	for _, t := range terms {
		if len(t.Strategy) > maxIDLen {
			maxIDLen = len(t.Strategy)
		}
	}

	fmt.Printf("  %-*s  %12s  %12s  %12s\n", maxIDLen, "Strategy", "Raw", "Weight", "Weighted")
	fmt.Printf("  %-*s  %12s  %12s  %12s\n", maxIDLen, "--------", "---", "------", "--------")
	for _, t := range terms {
		if !t.Known {
			fmt.Printf("  %-*s  %12s  %12g  %12s\n", maxIDLen, t.Strategy, "unknown", t.Weight, "-")
			continue
		}
		fmt.Printf("  %-*s  %12g  %12g  %12.2f\n", maxIDLen, t.Strategy, t.Raw, t.Weight, t.Weight*t.Raw)
	}

	fmt.Println()
	fmt.Println(r.Label(fmt.Sprintf("Total: %.2f", total)))
}
