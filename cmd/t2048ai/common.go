package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048-ai/internal/config"
	"github.com/vovakirdan/t2048-ai/internal/heuristic"
	"github.com/vovakirdan/t2048-ai/internal/render"
	"github.com/vovakirdan/t2048-ai/internal/search"
)

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig resolves the config file and applies global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatal("%v", err)
	}

	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			fatal("%v", err)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		fatal("%v", err)
	}
	return cfg
}

func newLogger(cfg config.Config) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048ai",
		Level:           cfg.Level(),
	})
}

// newRenderer colors output only when stdout is a terminal.
func newRenderer() *render.Renderer {
	plain := flagNoColor || !term.IsTerminal(int(os.Stdout.Fd()))
	return render.New(plain)
}

func searchOptions(cfg config.Config, logger *log.Logger) []search.Option {
	return []search.Option{
		search.WithParallel(cfg.Search.Parallel),
		search.WithCache(cfg.Search.Cache),
		search.WithNodeBudget(cfg.Search.NodeBudget),
		search.WithLogger(logger),
	}
}

// heuristics returns the --weights override or the configured weights.
func heuristics(cfg config.Config, weights string, logger *log.Logger) heuristic.Configuration {
	h := cfg.Heuristics
	if weights != "" {
		parsed, err := heuristic.ParseConfiguration(weights)
		if err != nil {
			fatal("%v", err)
		}
		h = parsed
	}
	for _, id := range h.Unknown() {
		logger.Warn("unknown strategy contributes nothing", "strategy", id)
	}
	return h
}

func baseSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
