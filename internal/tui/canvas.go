package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/seesaw/internal/seesaw"
)

type cell struct {
	ch rune
	fg string
}

// canvas is a character grid that maps container coordinates onto cells.
type canvas struct {
	w, h   int
	sx, sy float64
	cells  [][]cell
}

func newCanvas(w, h int, g seesaw.Geometry) *canvas {
	cells := make([][]cell, h)
	for i := range cells {
		cells[i] = make([]cell, w)
		for j := range cells[i] {
			cells[i][j] = cell{ch: ' '}
		}
	}
	return &canvas{
		w:     w,
		h:     h,
		sx:    float64(w) / g.ContainerWidth,
		sy:    float64(h) / g.ContainerHeight,
		cells: cells,
	}
}

func (c *canvas) project(x, y float64) (col, row int) {
	return int(math.Floor(x * c.sx)), int(math.Floor(y * c.sy))
}

// unproject returns the container x at the centre of col.
func (c *canvas) unproject(col int) float64 {
	return (float64(col) + 0.5) / c.sx
}

func (c *canvas) set(x, y int, ch rune, fg string) {
	if x >= 0 && x < c.w && y >= 0 && y < c.h {
		c.cells[y][x] = cell{ch: ch, fg: fg}
	}
}

func (c *canvas) text(x, y int, s, fg string) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, fg)
	}
}

func (c *canvas) line(x1, y1, x2, y2 int, ch rune, fg string) {
	dx := intAbs(x2 - x1)
	dy := intAbs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x1, y1, ch, fg)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (c *canvas) rows() []string {
	out := make([]string, c.h)
	for y, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			if cl.fg == "" {
				b.WriteRune(cl.ch)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cl.fg)).Render(string(cl.ch)))
		}
		out[y] = b.String()
	}
	return out
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
