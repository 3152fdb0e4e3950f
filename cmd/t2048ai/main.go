// t2048ai picks 2048 moves with expectimax search over weighted heuristics.
//
// Usage:
//
//	t2048ai strategies          - List heuristic strategies
//	t2048ai decide <board>      - Choose a move for a board
//	t2048ai eval <board>        - Show the heuristic breakdown of a board
//	t2048ai play                - Autoplay games and record the runs
//	t2048ai runs [label]        - Show recorded runs
//	t2048ai sweep               - Grid-search heuristic weights
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.t2048ai/config.yaml, ./configs/t2048ai.yaml)
//	--preset <name>     - Search preset: greedy, balanced, deep
//	--seed <value>      - RNG seed for reproducible games (0 = time based)
//	--db <path>         - Database path (default: ~/.t2048ai/runs.db)
//	--log-level <level> - debug, info, warn, error
//	--profile <dir>     - Write a CPU profile to dir
package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagPreset   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagNoColor  bool
	flagProfile  string
)

// profiler is the running CPU profile, if --profile was given.
var profiler interface{ Stop() }

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048ai",
	Short: "t2048ai - expectimax move selection for 2048",
	Long: `t2048ai chooses 2048 moves by expectimax search over a weighted
combination of board heuristics.

Boards are written row by row, rows separated by '/', cells by commas:
  2,2,0,0/0,4,0,0/0,0,8,0/0,0,0,16

Available commands:
  strategies - Show all heuristic strategies
  decide     - Choose a move for a board
  eval       - Show how a board scores
  play       - Autoplay games and record the runs
  runs       - View recorded runs
  sweep      - Grid-search heuristic weights

Examples:
  t2048ai decide 2,2,0,0/0,4,0,0/0,0,8,0/0,0,0,16
  t2048ai play --games 20 --preset deep
  t2048ai sweep --strategies empty_tile,monotonicity --values 0,50,200`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagProfile != "" {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(flagProfile), profile.Quiet)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Search preset: greedy, balanced, deep")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Directory for a CPU profile (disabled when empty)")

	// Add subcommands
	rootCmd.AddCommand(strategiesCmd)
	rootCmd.AddCommand(decideCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(sweepCmd)
}
