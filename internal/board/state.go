package board

// State is the terminal classification of a board.
type State int

const (
	Ongoing State = iota
	Win
	Lose
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}

// Classify reports whether the board is won, lost or still in play.
// The win check runs first, so a full stuck board holding WinTile is a win.
func Classify(b Board) State {
	return ClassifyTarget(b, WinTile)
}

// ClassifyTarget is Classify with a caller-chosen winning tile.
// A target <= 0 disables the win check.
func ClassifyTarget(b Board, target int) State {
	if target > 0 {
		for r := range Size {
			for c := range Size {
				if b[r][c] == target {
					return Win
				}
			}
		}
	}
	if b.EmptyCount() > 0 || b.HasPossibleMerge() {
		return Ongoing
	}
	return Lose
}
