package heuristic

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/t2048-ai/internal/board"
)

// Func scores a board. Strategies must be pure: the result depends only
// on the board's contents.
type Func func(b board.Board) float64

// Info contains metadata about a registered strategy.
type Info struct {
	ID          string
	Description string
	// AliasOf names the canonical strategy when several identifiers
	// share one implementation.
	AliasOf string
}

type entry struct {
	fn   Func
	info Info
}

var (
	strategies = make(map[string]entry)
	mu         sync.RWMutex
)

// Register adds a strategy under the given identifier.
// Typically called from an init() function.
// Panics if a strategy with the same ID is already registered.
func Register(id, description string, fn Func) {
	register(Info{ID: id, Description: description}, fn)
}

// RegisterAlias exposes an already registered strategy under another ID.
// Panics if target is unknown or id is taken.
func RegisterAlias(id, target string) {
	mu.RLock()
	e, ok := strategies[target]
	mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("heuristic: alias %q targets unknown strategy %q", id, target))
	}
	register(Info{ID: id, Description: e.info.Description, AliasOf: target}, e.fn)
}

func register(info Info, fn Func) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := strategies[info.ID]; exists {
		panic(fmt.Sprintf("heuristic: strategy %q already registered", info.ID))
	}
	strategies[info.ID] = entry{fn: fn, info: info}
}

// Lookup returns the strategy registered under id.
func Lookup(id string) (Func, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := strategies[id]
	return e.fn, ok
}

// Exists checks if a strategy with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// List returns information about all registered strategies, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(strategies))
	for _, e := range strategies {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}
