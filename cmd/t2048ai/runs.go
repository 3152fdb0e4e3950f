package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048-ai/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsStats bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [label]",
	Short: "Show recorded runs",
	Long: `Display the best recorded runs, ranked by max tile and then score.
Without a label every run is considered.

Examples:
  t2048ai runs
  t2048ai runs mono --limit 20
  t2048ai runs --stats
  t2048ai runs mono --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-label statistics")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the runs of the label (all runs without one)")
}

func runRuns(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	label := ""
	if len(args) == 1 {
		label = args[0]
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fatal("opening runs database: %v", err)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if err := store.ClearRuns(label); err != nil {
			fatal("%v", err)
		}
		fmt.Println("Runs cleared.")
	case flagRunsStats:
		printLabelStats(store)
	default:
		printTopRuns(store, label)
	}
}

func printTopRuns(store *storage.Store, label string) {
	runs, err := store.TopRuns(label, flagRunsLimit)
	if err != nil {
		fatal("retrieving runs: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 't2048ai play' to record some!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-8s  %-8s  %-6s  %-16s  %s\n", "Rank", "Max", "Score", "Outcome", "Depth", "Date", "Label")
	fmt.Printf("  %-4s  %-6s  %-8s  %-8s  %-6s  %-16s  %s\n", "----", "---", "-----", "-------", "-----", "----", "-----")

	for i, run := range runs {
		dateStr := run.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-8d  %-8s  %-6d  %-16s  %s\n", i+1, run.MaxTile, run.Score, run.Outcome, run.Depth, dateStr, run.Label)
	}
}

func printLabelStats(store *storage.Store) {
	all, err := store.AllLabelStats()
	if err != nil {
		fatal("retrieving stats: %v", err)
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	labels := make([]string, 0, len(all))
	for label := range all {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Printf("  %-6s  %-6s  %-6s  %-10s  %-9s  %s\n", "Runs", "Win%", "Best", "Avg score", "Avg moves", "Label")
	fmt.Printf("  %-6s  %-6s  %-6s  %-10s  %-9s  %s\n", "----", "----", "----", "---------", "---------", "-----")
	for _, label := range labels {
		s := all[label]
		fmt.Printf("  %-6d  %-6.0f  %-6d  %-10.1f  %-9.1f  %s\n", s.Runs, 100*s.WinRate(), s.BestTile, s.AvgScore, s.AvgMoves, label)
	}
}
