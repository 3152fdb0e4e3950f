package board

import (
	"errors"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	b := Board{
		{2, 0, 0, 2},
		{0, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 1024, 8},
	}

	got, err := Parse(b.String())
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got != b {
		t.Errorf("Parse(String()) = %v, want %v", got, b)
	}
}

func TestParseWhitespace(t *testing.T) {
	got, err := Parse("2 0 0 2 / 0 4 0 0 / 0 0 0 0 / 0 0 0 8")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got[3][3] != 8 || got[1][1] != 4 {
		t.Errorf("Parse() = %v", got)
	}
}

func TestInvalidBoards(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
	}{
		{"too few rows", [][]int{{0, 0, 0, 0}}},
		{"ragged row", [][]int{{0, 0, 0, 0}, {0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
		{"negative", [][]int{{-2, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
		{"one", [][]int{{1, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
		{"not power of two", [][]int{{6, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRows(tt.rows)
			var invalid *InvalidBoardError
			if !errors.As(err, &invalid) {
				t.Fatalf("FromRows() error = %v, want *InvalidBoardError", err)
			}
		})
	}

	if _, err := Parse("2,x,0,0/0,0,0,0/0,0,0,0/0,0,0,0"); err == nil {
		t.Error("Parse should reject non-numeric cells")
	}
}

func TestInvalidBoardMessages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unparsable cell", "2,x,0,0/0,0,0,0/0,0,0,0/0,0,0,0", `board: invalid board: cell (0,1) "x": not an integer`},
		{"bad tile", "2,0,0,0/0,0,6,0/0,0,0,0/0,0,0,0", "board: invalid board: cell (1,2)=6: not a power of two"},
		{"short row", "2,0,0,0/0,0,0/0,0,0,0/0,0,0,0", "board: invalid board: row 1: expected 4 columns, got 3"},
		{"too few rows", "2,0,0,0", "board: invalid board: expected 4 rows, got 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if err.Error() != tt.want {
				t.Errorf("Parse() error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestRowsRoundTrip(t *testing.T) {
	b := Board{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
	}

	rows := b.Rows()
	rows[0][0] = 4
	if b[0][0] != 2 {
		t.Error("Rows() should return a copy")
	}

	got, err := FromRows(b.Rows())
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}
	if got != b {
		t.Errorf("FromRows(Rows()) = %v, want %v", got, b)
	}
}

func TestBoardHelpers(t *testing.T) {
	b := Board{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}

	if got := len(b.EmptyCells()); got != 8 {
		t.Errorf("EmptyCells count = %d, want 8", got)
	}
	if got := b.EmptyCount(); got != 8 {
		t.Errorf("EmptyCount = %d, want 8", got)
	}
	if got := b.MaxTile(); got != 2048 {
		t.Errorf("MaxTile = %d, want 2048", got)
	}
	if got := b.Sum(); got != 2+8+64+256+512+2048+16+64 {
		t.Errorf("Sum = %d", got)
	}
	if first := b.EmptyCells()[0]; first != (Cell{Row: 0, Col: 1}) {
		t.Errorf("first empty cell = %v, want (0,1)", first)
	}
}
