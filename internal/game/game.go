// Package game runs seeded 2048 games for a move selector.
package game

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/t2048-ai/internal/board"
)

// ErrGameOver is returned when Step is called on a finished game.
var ErrGameOver = errors.New("game: game is over")

// Game holds one seeded 2048 game.
type Game struct {
	seed   int64
	rng    *rand.Rand
	board  board.Board
	score  int
	moves  int
	target int // 0 plays until no move is left
}

// New creates a game with two starting tiles. A target of 0 disables
// the win condition.
func New(seed int64, target int) *Game {
	g := &Game{seed: seed, target: target}
	g.Reset()
	return g
}

// Reset restarts the game from its seed.
func (g *Game) Reset() {
	g.rng = rand.New(rand.NewSource(g.seed))
	g.board = board.NewGame(g.rng)
	g.score = 0
	g.moves = 0
}

// Load replaces the board, keeping the random source. Used to resume
// from a known position.
func (g *Game) Load(b board.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}
	g.board = b
	return nil
}

// Board returns the current board.
func (g *Game) Board() board.Board {
	return g.board
}

// Score returns the points earned from merges so far.
func (g *Game) Score() int {
	return g.score
}

// Moves returns the number of moves that changed the board.
func (g *Game) Moves() int {
	return g.moves
}

// State classifies the current board against the game's target.
func (g *Game) State() board.State {
	return board.ClassifyTarget(g.board, g.target)
}

// Step applies a move. A tile spawns only when the board changed.
func (g *Game) Step(d board.Direction) (bool, error) {
	if g.State() != board.Ongoing {
		return false, ErrGameOver
	}

	out, err := board.Apply(g.board, d)
	if err != nil {
		return false, err
	}
	if !out.Changed {
		return false, nil
	}

	g.board = out.Board
	g.score += out.Points
	g.moves++

	if g.board.EmptyCount() > 0 {
		g.board, err = board.Spawn(g.board, g.rng)
		if err != nil {
			return true, err
		}
	}
	return true, nil
}

// Snapshot captures the game for logging and determinism checks.
type Snapshot struct {
	Seed    int64
	Target  int
	Score   int
	Moves   int
	Board   board.Board
	MaxTile int
	TileSum int
	State   board.State
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Seed:    g.seed,
		Target:  g.target,
		Score:   g.score,
		Moves:   g.moves,
		Board:   g.board,
		MaxTile: g.board.MaxTile(),
		TileSum: g.board.Sum(),
		State:   g.State(),
	}
}
