package ui

import (
	"strings"
)

// canvas is a fixed-size grid of runes. Writes outside the grid are clipped.
type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]rune, h)}
	for y := range c.cells {
		row := make([]rune, w)
		for x := range row {
			row[x] = ' '
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

// text writes s starting at (x, y) on a single row.
func (c *canvas) text(x, y int, s string) {
	for _, r := range s {
		c.set(x, y, r)
		x++
	}
}

// block writes a multi-line string with its top-left corner at (x, y).
func (c *canvas) block(x, y int, s string) {
	for i, line := range strings.Split(s, "\n") {
		c.text(x, y+i, line)
	}
}

// frame draws a single-line border on the edge of the given cell box.
func (c *canvas) frame(x, y, w, h int) {
	if w < 2 || h < 2 {
		return
	}
	for i := x + 1; i < x+w-1; i++ {
		c.set(i, y, '─')
		c.set(i, y+h-1, '─')
	}
	for j := y + 1; j < y+h-1; j++ {
		c.set(x, j, '│')
		c.set(x+w-1, j, '│')
	}
	c.set(x, y, '┌')
	c.set(x+w-1, y, '┐')
	c.set(x, y+h-1, '└')
	c.set(x+w-1, y+h-1, '┘')
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for y, row := range c.cells {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}
