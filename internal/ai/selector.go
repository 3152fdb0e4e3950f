// Package ai is the move selector used by players and tooling: it binds
// a heuristic configuration and a search depth to an expectimax searcher.
package ai

import (
	"context"

	"github.com/vovakirdan/t2048-ai/internal/board"
	"github.com/vovakirdan/t2048-ai/internal/heuristic"
	"github.com/vovakirdan/t2048-ai/internal/search"
)

// Player chooses the next move for a board.
type Player interface {
	NextMove(ctx context.Context, b board.Board) (board.Direction, error)
}

// Selector picks moves with expectimax at a fixed depth.
type Selector struct {
	depth    int
	searcher *search.Searcher
}

// NewSelector creates a Selector. depth must be at least 1.
func NewSelector(cfg heuristic.Configuration, depth int, opts ...search.Option) (*Selector, error) {
	if depth < 1 {
		return nil, search.ErrInvalidDepth
	}
	s, err := search.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Selector{depth: depth, searcher: s}, nil
}

// NewGreedy returns a one-ply selector that takes the move whose
// resulting board scores highest.
func NewGreedy(cfg heuristic.Configuration, opts ...search.Option) (*Selector, error) {
	return NewSelector(cfg, 1, opts...)
}

// NextMove returns the chosen direction. Callers should classify the
// board first: a board with no legal move yields search.ErrNoLegalMove.
func (s *Selector) NextMove(ctx context.Context, b board.Board) (board.Direction, error) {
	return s.searcher.Decide(ctx, b, s.depth)
}

// Choices returns the per-direction root values behind NextMove.
func (s *Selector) Choices(ctx context.Context, b board.Board) ([len(board.Directions)]search.Choice, error) {
	return s.searcher.Choices(ctx, b, s.depth)
}

// Depth returns the search depth.
func (s *Selector) Depth() int {
	return s.depth
}

// Configuration returns the heuristic configuration.
func (s *Selector) Configuration() heuristic.Configuration {
	return s.searcher.Configuration()
}

// Stats returns statistics for the most recent decision.
func (s *Selector) Stats() search.Stats {
	return s.searcher.LastStats()
}

var _ Player = (*Selector)(nil)
