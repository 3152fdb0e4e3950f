package config

import (
	_ "embed"

	"github.com/vovakirdan/t2048-ai/internal/board"
	"github.com/vovakirdan/t2048-ai/internal/heuristic"
)

//go:embed defaults/t2048ai.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Depth:    3,
			Parallel: true,
			Cache:    true,
		},
		Heuristics: heuristic.Default(),
		Game: GameConfig{
			Target:   board.WinTile,
			Games:    10,
			MaxMoves: 0,
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048ai/runs.db",
		},
		LogLevel: "info",
	}
}
