// Package heuristic scores 2048 boards as a weighted sum of named
// strategy functions.
//
// Strategies live in a process-wide registry of pure functions. Weights
// are never global: every evaluation receives an explicit Configuration.
package heuristic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/t2048-ai/internal/board"
)

// ErrDuplicateStrategy is returned when a configuration names the same
// strategy twice.
var ErrDuplicateStrategy = errors.New("heuristic: duplicate strategy")

// Weight pairs a strategy identifier with its weight. Negative weights
// penalize a metric.
type Weight struct {
	Strategy string  `yaml:"strategy"`
	Weight   float64 `yaml:"weight"`
}

// Configuration is an ordered list of weighted strategies.
type Configuration []Weight

// Validate checks that identifiers are unique. Unknown identifiers are
// allowed and contribute nothing.
func (c Configuration) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for _, w := range c {
		if _, dup := seen[w.Strategy]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateStrategy, w.Strategy)
		}
		seen[w.Strategy] = struct{}{}
	}
	return nil
}

// Unknown returns identifiers that have no registered strategy.
func (c Configuration) Unknown() []string {
	var ids []string
	for _, w := range c {
		if !Exists(w.Strategy) {
			ids = append(ids, w.Strategy)
		}
	}
	return ids
}

// String renders the configuration as "id=weight,id=weight".
func (c Configuration) String() string {
	parts := make([]string, len(c))
	for i, w := range c {
		parts[i] = w.Strategy + "=" + strconv.FormatFloat(w.Weight, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// ParseConfiguration reads the form produced by Configuration.String.
func ParseConfiguration(s string) (Configuration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var cfg Configuration
	for _, part := range strings.Split(s, ",") {
		id, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("heuristic: cannot parse %q: want strategy=weight", part)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("heuristic: cannot parse weight for %q: %w", id, err)
		}
		cfg = append(cfg, Weight{Strategy: strings.TrimSpace(id), Weight: w})
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Evaluate returns the weighted sum of the configured strategies for b.
func Evaluate(b board.Board, cfg Configuration) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return Compile(cfg).Score(b), nil
}

// Term is one strategy's contribution to a score.
type Term struct {
	Strategy string
	Weight   float64
	Raw      float64 // unweighted strategy value
	Known    bool
}

// Breakdown evaluates each configured strategy separately, in
// configuration order.
func Breakdown(b board.Board, cfg Configuration) ([]Term, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	terms := make([]Term, len(cfg))
	for i, w := range cfg {
		terms[i] = Term{Strategy: w.Strategy, Weight: w.Weight}
		if fn, ok := Lookup(w.Strategy); ok {
			terms[i].Raw = fn(b)
			terms[i].Known = true
		}
	}
	return terms, nil
}

// Evaluator is a configuration with its strategies resolved once.
// Score does no validation and is meant for hot loops such as search.
type Evaluator struct {
	fns     []Func
	weights []float64
}

// Compile resolves the configuration's strategies. Unknown identifiers
// are dropped.
func Compile(cfg Configuration) *Evaluator {
	e := &Evaluator{
		fns:     make([]Func, 0, len(cfg)),
		weights: make([]float64, 0, len(cfg)),
	}
	for _, w := range cfg {
		fn, ok := Lookup(w.Strategy)
		if !ok {
			continue
		}
		e.fns = append(e.fns, fn)
		e.weights = append(e.weights, w.Weight)
	}
	return e
}

// Score returns the weighted sum for b.
func (e *Evaluator) Score(b board.Board) float64 {
	score := 0.0
	for i, fn := range e.fns {
		score += e.weights[i] * fn(b)
	}
	return score
}

// Default is a general purpose configuration.
func Default() Configuration {
	return Configuration{
		{Strategy: EmptyTile, Weight: 270},
		{Strategy: Monotonicity, Weight: 47},
		{Strategy: MergeOpportunities, Weight: 70},
		{Strategy: Smoothness, Weight: 0.1},
		{Strategy: CornerMax, Weight: 200},
	}
}
