package board

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEmptyCell is returned by Spawn when the board is full.
	ErrNoEmptyCell = errors.New("board: no empty cell")

	// ErrUnknownDirection is returned for a Direction outside Up..Right.
	ErrUnknownDirection = errors.New("board: unknown direction")
)

// InvalidBoardError describes a malformed board. Row and Col are -1 when
// the problem is the board's shape rather than a single cell. Text holds
// the raw cell when it could not be read as a number; Value is then unset.
type InvalidBoardError struct {
	Row    int
	Col    int
	Value  int
	Text   string
	Reason string
}

func (e *InvalidBoardError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("board: invalid board: %s", e.Reason)
	case e.Col < 0:
		return fmt.Sprintf("board: invalid board: row %d: %s", e.Row, e.Reason)
	case e.Text != "":
		return fmt.Sprintf("board: invalid board: cell (%d,%d) %q: %s", e.Row, e.Col, e.Text, e.Reason)
	default:
		return fmt.Sprintf("board: invalid board: cell (%d,%d)=%d: %s", e.Row, e.Col, e.Value, e.Reason)
	}
}
