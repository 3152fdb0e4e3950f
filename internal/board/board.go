// Package board implements the 2048 board: directional moves with merge
// scoring, terminal-state classification and random tile spawning.
//
// Board is a small fixed-size array, so every function here takes and
// returns boards by value. Callers never observe a board being mutated.
package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is the board dimension.
const Size = 4

// WinTile is the tile value that ends the game with a win.
const WinTile = 2048

// Board represents a Size x Size grid of tile values. Zero is an empty
// cell, any other value is a power of two >= 2.
type Board [Size][Size]int

// Cell is a board coordinate.
type Cell struct {
	Row, Col int
}

// FromRows builds a Board from caller-supplied rows.
// Returns *InvalidBoardError if the input is not Size x Size or holds
// values that are not tiles.
func FromRows(rows [][]int) (Board, error) {
	var b Board
	if len(rows) != Size {
		return b, &InvalidBoardError{Row: -1, Col: -1, Reason: fmt.Sprintf("expected %d rows, got %d", Size, len(rows))}
	}
	for r, row := range rows {
		if len(row) != Size {
			return b, &InvalidBoardError{Row: r, Col: -1, Reason: fmt.Sprintf("expected %d columns, got %d", Size, len(row))}
		}
		copy(b[r][:], row)
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Parse reads the text form produced by String: rows separated by '/',
// cells separated by ',' or whitespace.
//
//	"2,0,0,2/0,4,0,0/0,0,0,0/0,0,0,8"
func Parse(s string) (Board, error) {
	lines := strings.Split(strings.TrimSpace(s), "/")
	rows := make([][]int, 0, len(lines))
	for r, line := range lines {
		fields := strings.FieldsFunc(line, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t'
		})
		row := make([]int, 0, len(fields))
		for c, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return Board{}, &InvalidBoardError{Row: r, Col: c, Text: f, Reason: "not an integer"}
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

// Rows returns the board as a slice of rows.
func (b Board) Rows() [][]int {
	rows := make([][]int, Size)
	for r := range Size {
		rows[r] = append([]int(nil), b[r][:]...)
	}
	return rows
}

// String returns the compact text form accepted by Parse.
func (b Board) String() string {
	var sb strings.Builder
	for r := range Size {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := range Size {
			if c > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(b[r][c]))
		}
	}
	return sb.String()
}

// Validate checks that every cell is empty or a power of two >= 2.
func (b Board) Validate() error {
	for r := range Size {
		for c := range Size {
			v := b[r][c]
			switch {
			case v < 0:
				return &InvalidBoardError{Row: r, Col: c, Value: v, Reason: "negative value"}
			case v == 1 || v&(v-1) != 0:
				return &InvalidBoardError{Row: r, Col: c, Value: v, Reason: "not a power of two"}
			}
		}
	}
	return nil
}

// Set returns a copy of the board with the given cell set to value.
func (b Board) Set(cell Cell, value int) Board {
	b[cell.Row][cell.Col] = value
	return b
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func (b Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, Size*Size)
	for r := range Size {
		for c := range Size {
			if b[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// EmptyCount returns the number of empty cells.
func (b Board) EmptyCount() int {
	n := 0
	for r := range Size {
		for c := range Size {
			if b[r][c] == 0 {
				n++
			}
		}
	}
	return n
}

// HasPossibleMerge returns true if any horizontally or vertically
// adjacent tiles are equal and non-empty.
func (b Board) HasPossibleMerge() bool {
	for r := range Size {
		for c := range Size {
			v := b[r][c]
			if v == 0 {
				continue
			}
			if c < Size-1 && b[r][c+1] == v {
				return true
			}
			if r < Size-1 && b[r+1][c] == v {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the maximum tile value on the board.
func (b Board) MaxTile() int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			if b[r][c] > maxVal {
				maxVal = b[r][c]
			}
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (b Board) Sum() int {
	total := 0
	for r := range Size {
		for c := range Size {
			total += b[r][c]
		}
	}
	return total
}

// Transpose returns the matrix transpose.
func Transpose(b Board) Board {
	var result Board
	for r := range Size {
		for c := range Size {
			result[r][c] = b[c][r]
		}
	}
	return result
}

// reverseRows mirrors every row left to right.
func reverseRows(b Board) Board {
	var result Board
	for r := range Size {
		for c := range Size {
			result[r][c] = b[r][Size-1-c]
		}
	}
	return result
}
