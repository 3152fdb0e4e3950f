package heuristic

import "github.com/vovakirdan/t2048-ai/internal/board"

// Strategy identifiers.
const (
	EmptyTile          = "empty_tile"
	Monotonicity       = "monotonicity"
	Smoothness         = "smoothness"
	MergeOpportunities = "merge_opportunities"
	AdjacentSameTiles  = "adjacent_same_tiles"
	TileGrouping       = "tile_grouping"
	SameRowCol         = "same_row_col"
	MaxScore           = "max_score"
	MaxTile            = "max_tile"
	MaxFreeLines       = "max_free_lines"
	BalanceSpread      = "balance_spread"
	CornerMax          = "corner_max"
)

func init() {
	Register(EmptyTile, "number of empty cells", emptyTiles)
	Register(Monotonicity, "adjacent pairs non-decreasing left to right and top to bottom", monotonicity)
	Register(Smoothness, "negative sum of differences between adjacent tiles", smoothness)
	Register(MergeOpportunities, "adjacent equal tile pairs", mergeOpportunities)
	RegisterAlias(AdjacentSameTiles, MergeOpportunities)
	RegisterAlias(TileGrouping, MergeOpportunities)
	RegisterAlias(SameRowCol, MergeOpportunities)
	Register(MaxScore, "sum of all tile values", sumTiles)
	Register(MaxTile, "largest tile value", maxTile)
	Register(MaxFreeLines, "number of empty rows", freeLines)
	Register(BalanceSpread, "negative sum of differences between horizontal neighbours", balanceSpread)
	Register(CornerMax, "1 when the largest tile sits in a corner", cornerMax)
}

func emptyTiles(b board.Board) float64 {
	return float64(b.EmptyCount())
}

// monotonicity counts adjacent pairs that do not decrease along rows
// (left to right) and columns (top to bottom).
func monotonicity(b board.Board) float64 {
	score := 0
	for r := range board.Size {
		for c := 0; c < board.Size-1; c++ {
			if b[r][c] <= b[r][c+1] {
				score++
			}
		}
	}
	for c := range board.Size {
		for r := 0; r < board.Size-1; r++ {
			if b[r][c] <= b[r+1][c] {
				score++
			}
		}
	}
	return float64(score)
}

func smoothness(b board.Board) float64 {
	total := 0
	for r := range board.Size {
		for c := range board.Size {
			if c < board.Size-1 {
				total += abs(b[r][c] - b[r][c+1])
			}
			if r < board.Size-1 {
				total += abs(b[r][c] - b[r+1][c])
			}
		}
	}
	return -float64(total)
}

// mergeOpportunities counts horizontally or vertically adjacent pairs of
// equal non-empty tiles. Pairs of empty cells do not count, so weights
// tuned against a horizontal-only count that includes them do not carry over.
func mergeOpportunities(b board.Board) float64 {
	pairs := 0
	for r := range board.Size {
		for c := range board.Size {
			v := b[r][c]
			if v == 0 {
				continue
			}
			if c < board.Size-1 && b[r][c+1] == v {
				pairs++
			}
			if r < board.Size-1 && b[r+1][c] == v {
				pairs++
			}
		}
	}
	return float64(pairs)
}

func sumTiles(b board.Board) float64 {
	return float64(b.Sum())
}

func maxTile(b board.Board) float64 {
	return float64(b.MaxTile())
}

func freeLines(b board.Board) float64 {
	lines := 0
	for r := range board.Size {
		if b[r] == [board.Size]int{} {
			lines++
		}
	}
	return float64(lines)
}

func balanceSpread(b board.Board) float64 {
	spread := 0
	for r := range board.Size {
		for c := 0; c < board.Size-1; c++ {
			spread += abs(b[r][c] - b[r][c+1])
		}
	}
	return -float64(spread)
}

func cornerMax(b board.Board) float64 {
	m := b.MaxTile()
	if m == 0 {
		return 0
	}
	last := board.Size - 1
	if b[0][0] == m || b[0][last] == m || b[last][0] == m || b[last][last] == m {
		return 1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
