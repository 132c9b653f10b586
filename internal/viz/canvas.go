package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells. Cells holding a pinned particle are
// marked so they can be coloured apart from the links.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	anchors       [][]bool
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		anchors: make([][]bool, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.anchors[i] = make([]bool, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at sub-pixel (x, y). The canvas is Width*2 by
// Height*4 sub-pixels; anything outside is dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.anchors[i][j] = false
		}
	}
}

// SetAnchor lights the dot at sub-pixel (x, y) and marks its cell as an
// anchor.
func (c *Canvas) SetAnchor(x, y int) {
	c.Set(x, y)
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.anchors[y/4][x/2] = true
}

// Anchor reports whether cell (col, row) holds a pinned particle.
func (c *Canvas) Anchor(col, row int) bool { return c.anchors[row][col] }

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the canvas with link cells in link and anchor cells in
// anchor, styling each run of same-kind cells once.
func (c *Canvas) Render(link, anchor lipgloss.Style) string {
	var b strings.Builder
	for r, row := range c.Grid {
		start := 0
		for col := 1; col <= len(row); col++ {
			if col < len(row) && c.anchors[r][col] == c.anchors[r][start] {
				continue
			}
			style := link
			if c.anchors[r][start] {
				style = anchor
			}
			b.WriteString(style.Render(string(row[start:col])))
			start = col
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps world coordinates onto a braille canvas of Cols x Rows
// cells and terminal cells back into world coordinates.
type Viewport struct {
	Cols, Rows    int
	Width, Height float64
}

func NewViewport(cols, rows int, b cloth.Bounds) Viewport {
	return Viewport{Cols: cols, Rows: rows, Width: b.Width, Height: b.Height}
}

// ToSubPixel returns the canvas dot for a world point. Points on the far
// edges land on the last dot rather than falling off the canvas.
func (v Viewport) ToSubPixel(p mgl64.Vec2) (int, int) {
	sw, sh := v.Cols*2, v.Rows*4
	x := int(p.X() / v.Width * float64(sw))
	y := int(p.Y() / v.Height * float64(sh))
	if x >= sw {
		x = sw - 1
	}
	if y >= sh {
		y = sh - 1
	}
	return x, y
}

// CellToWorld returns the world point at the centre of a terminal cell.
func (v Viewport) CellToWorld(col, row int) (float64, float64) {
	x := (float64(col) + 0.5) / float64(v.Cols) * v.Width
	y := (float64(row) + 0.5) / float64(v.Rows) * v.Height
	return x, y
}

func (v Viewport) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < v.Cols && row < v.Rows
}

// CellRadius is half the world-space diagonal of one terminal cell, the
// furthest a click can land from the point it was aimed at.
func (v Viewport) CellRadius() float64 {
	return mgl64.Vec2{v.Width / float64(v.Cols), v.Height / float64(v.Rows)}.Len() / 2
}

// DrawCloth draws each segment as a braille line.
func (c *Canvas) DrawCloth(v Viewport, segments []cloth.Segment) {
	for _, s := range segments {
		x0, y0 := v.ToSubPixel(s.A)
		x1, y1 := v.ToSubPixel(s.B)
		c.DrawLine(x0, y0, x1, y1)
	}
}

// DrawAnchors marks the cell of every pinned particle.
func (c *Canvas) DrawAnchors(v Viewport, ps *cloth.Particles) {
	for i := 0; i < ps.Len(); i++ {
		p := ps.At(i)
		if !p.Pinned() {
			continue
		}
		c.SetAnchor(v.ToSubPixel(p.Position))
	}
}
