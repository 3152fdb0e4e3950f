// Package render draws boards for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048-ai/internal/board"
	"github.com/vovakirdan/t2048-ai/internal/game"
	"github.com/vovakirdan/t2048-ai/internal/search"
)

const cellWidth = 6 // inner width of a cell, fits a five digit tile

// tileStyles maps tile values to lipgloss styles.
var tileStyles = map[int]lipgloss.Style{
	0:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	2:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	4:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	8:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	16:   lipgloss.NewStyle().Foreground(lipgloss.Color("202")),
	32:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	64:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	128:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	256:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	512:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	1024: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	2048: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
}

// bigTile styles anything above 2048.
var bigTile = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("5")).Bold(true)

var labelStyle = lipgloss.NewStyle().Bold(true)

// Renderer draws boards with or without color.
type Renderer struct {
	plain bool
}

// New creates a Renderer. Plain output carries no escape sequences.
func New(plain bool) *Renderer {
	return &Renderer{plain: plain}
}

// Board draws b as a box-drawing grid.
func (r *Renderer) Board(b board.Board) string {
	var sb strings.Builder
	sb.WriteString(border('┌', '┬', '┐'))
	for row, cells := range b.Rows() {
		sb.WriteRune('\n')
		sb.WriteRune('│')
		for _, v := range cells {
			sb.WriteString(r.cell(v))
			sb.WriteRune('│')
		}
		sb.WriteRune('\n')
		if row < board.Size-1 {
			sb.WriteString(border('├', '┼', '┤'))
		} else {
			sb.WriteString(border('└', '┴', '┘'))
		}
	}
	return sb.String()
}

// Snapshot draws a game position with a heading line, as printed by
// play --trace.
func (r *Renderer) Snapshot(s game.Snapshot) string {
	heading := fmt.Sprintf("seed %d  move %d  score %d  max %d  %s", s.Seed, s.Moves, s.Score, s.MaxTile, s.State)
	return r.Label(heading) + "\n" + r.Board(s.Board)
}

// Choices lists per-direction root values, marking the chosen one.
func (r *Renderer) Choices(choices []search.Choice, chosen board.Direction) string {
	var sb strings.Builder
	for i, c := range choices {
		if i > 0 {
			sb.WriteRune('\n')
		}
		mark := " "
		if c.Legal && c.Direction == chosen {
			mark = "*"
		}
		value := "illegal"
		if c.Legal {
			value = strconv.FormatFloat(c.Value, 'f', 2, 64)
		}
		line := fmt.Sprintf("%s %-5s %s", mark, c.Direction, value)
		if mark == "*" {
			line = r.style(labelStyle, line)
		}
		sb.WriteString(line)
	}
	return sb.String()
}

// Label renders a bold heading.
func (r *Renderer) Label(s string) string {
	return r.style(labelStyle, s)
}

func (r *Renderer) cell(v int) string {
	text := ""
	if v != 0 {
		text = strconv.Itoa(v)
	} else if !r.plain {
		text = "·"
	}

	// Center the value in the cell
	pad := cellWidth - len([]rune(text))
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	text = strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)

	style, ok := tileStyles[v]
	if !ok {
		style = bigTile
	}
	return r.style(style, text)
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if r.plain {
		return text
	}
	return s.Render(text)
}

func border(left, mid, right rune) string {
	var sb strings.Builder
	sb.WriteRune(left)
	for col := range board.Size {
		sb.WriteString(strings.Repeat("─", cellWidth))
		if col < board.Size-1 {
			sb.WriteRune(mid)
		}
	}
	sb.WriteRune(right)
	return sb.String()
}
