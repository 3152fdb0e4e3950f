package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048-ai/internal/heuristic"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List all heuristic strategies",
	Long:  `Shows every strategy identifier that can be weighted in a configuration.`,
	Run:   runStrategies,
}

func runStrategies(cmd *cobra.Command, args []string) {
	infos := heuristic.List()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, info := range infos {
		if len(info.ID) > maxIDLen {
			maxIDLen = len(info.ID)
		}
	}

	fmt.Println("Available strategies:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")

	for _, info := range infos {
		desc := info.Description
		if info.AliasOf != "" {
			desc = fmt.Sprintf("alias of %s", info.AliasOf)
		}
		fmt.Printf("  %-*s  %s\n", maxIDLen, info.ID, desc)
	}

	fmt.Println()
	fmt.Println("Weights are set in the config file or with --weights id=w,id=w.")
}
