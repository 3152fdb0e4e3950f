package board

import (
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in the fixed order used for
// iteration and tie-breaking.
var Directions = [4]Direction{Up, Down, Left, Right}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// ParseDirection accepts a direction name or its first letter.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Outcome is the result of applying one move.
type Outcome struct {
	Board   Board
	Changed bool // false means the move was a no-op
	Points  int  // sum of tiles produced by merges in this move
}

// Apply validates the board and direction, then performs the move.
func Apply(b Board, d Direction) (Outcome, error) {
	if !d.Valid() {
		return Outcome{Board: b}, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	if err := b.Validate(); err != nil {
		return Outcome{Board: b}, err
	}
	return Move(b, d), nil
}

// Move performs a move without validation. The board is rotated so the
// move becomes "slide left", processed row by row, then rotated back.
// An invalid direction yields an unchanged outcome.
func Move(b Board, d Direction) Outcome {
	if !d.Valid() {
		return Outcome{Board: b}
	}

	work := orient(b, d)
	changed := false
	points := 0

	for r := range Size {
		row, rowPoints, rowChanged := slideRow(work[r])
		work[r] = row
		points += rowPoints
		if rowChanged {
			changed = true
		}
	}

	return Outcome{Board: restore(work, d), Changed: changed, Points: points}
}

// orient maps the board so that d becomes a leftward move.
func orient(b Board, d Direction) Board {
	switch d {
	case Up:
		return Transpose(b)
	case Down:
		return reverseRows(Transpose(b))
	case Right:
		return reverseRows(b)
	default:
		return b
	}
}

// restore inverts orient.
func restore(b Board, d Direction) Board {
	switch d {
	case Up:
		return Transpose(b)
	case Down:
		return Transpose(reverseRows(b))
	case Right:
		return reverseRows(b)
	default:
		return b
	}
}

// slideRow compacts, merges and re-compacts a single row to the left.
func slideRow(row [Size]int) (result [Size]int, points int, changed bool) {
	result, changed = compact(row)

	// A merge zeroes the right tile, so the scan skips past it and a
	// freshly merged tile is never merged again in the same move.
	for i := 0; i < Size-1; i++ {
		if result[i] != 0 && result[i] == result[i+1] {
			result[i] *= 2
			result[i+1] = 0
			points += result[i]
			changed = true
			i++
		}
	}

	result, _ = compact(result)
	return result, points, changed
}

// compact slides every non-zero value left, preserving order.
func compact(row [Size]int) (result [Size]int, moved bool) {
	writePos := 0
	for i := range Size {
		if row[i] == 0 {
			continue
		}
		result[writePos] = row[i]
		if i != writePos {
			moved = true
		}
		writePos++
	}
	return result, moved
}

// Legal returns the directions that change the board, in iteration order.
func Legal(b Board) []Direction {
	dirs := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if Move(b, d).Changed {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
