// Package config provides YAML-based configuration loading and search
// presets for the 2048 move selector.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048-ai/internal/heuristic"
)

// Config contains all settings for t2048ai.
type Config struct {
	Search     SearchConfig            `yaml:"search"`
	Heuristics heuristic.Configuration `yaml:"heuristics"`
	Game       GameConfig              `yaml:"game"`
	Storage    StorageConfig           `yaml:"storage"`
	LogLevel   string                  `yaml:"log_level"`
}

// SearchConfig defines expectimax parameters.
type SearchConfig struct {
	Depth      int   `yaml:"depth"`
	Parallel   bool  `yaml:"parallel"`
	Cache      bool  `yaml:"cache"`
	NodeBudget int64 `yaml:"node_budget"` // 0 = unlimited
}

// GameConfig defines how autoplay sessions run.
type GameConfig struct {
	Target   int `yaml:"target"`    // 0 = play until no move is left
	Games    int `yaml:"games"`     // games per run or per sweep vector
	MaxMoves int `yaml:"max_moves"` // 0 = unlimited
}

// StorageConfig defines where finished runs are recorded.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Search.Depth < 1 {
		errs = append(errs, fmt.Errorf("search.depth must be at least 1, got %d", c.Search.Depth))
	}
	if c.Search.NodeBudget < 0 {
		errs = append(errs, fmt.Errorf("search.node_budget must not be negative, got %d", c.Search.NodeBudget))
	}
	if err := c.Heuristics.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("heuristics: %w", err))
	}
	if c.Game.Target < 0 {
		errs = append(errs, fmt.Errorf("game.target must not be negative, got %d", c.Game.Target))
	}
	if c.Game.Games < 1 {
		errs = append(errs, fmt.Errorf("game.games must be at least 1, got %d", c.Game.Games))
	}
	if c.Game.MaxMoves < 0 {
		errs = append(errs, fmt.Errorf("game.max_moves must not be negative, got %d", c.Game.MaxMoves))
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level returns the configured log level, defaulting to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
