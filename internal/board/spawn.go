package board

import "math/rand"

// Spawn probabilities for the value of a new tile.
const (
	SpawnProb2 = 0.9
	SpawnProb4 = 0.1
)

// Spawn returns a copy of the board with one new tile in a uniformly
// chosen empty cell: 2 with probability SpawnProb2, otherwise 4.
func Spawn(b Board, rng *rand.Rand) (Board, error) {
	emptyCells := b.EmptyCells()
	if len(emptyCells) == 0 {
		return b, ErrNoEmptyCell
	}

	cell := emptyCells[rng.Intn(len(emptyCells))]

	value := 2
	if rng.Float64() < SpawnProb4 {
		value = 4
	}

	return b.Set(cell, value), nil
}

// NewGame returns an empty board seeded with two spawned tiles.
func NewGame(rng *rand.Rand) Board {
	var b Board
	b, _ = Spawn(b, rng)
	b, _ = Spawn(b, rng)
	return b
}
