package mines

import (
	"strings"
)

// Moore neighbourhood, walked in this order everywhere.
var directions = [8]Point{
	{1, 1},
	{1, 0},
	{1, -1},
	{0, -1},
	{-1, -1},
	{-1, 0},
	{-1, 1},
	{0, 1},
}

// Board is a Width x Height grid of cells indexed [y][x].
type Board struct {
	Width, Height int
	Cells         [][]Cell
}

func newBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidDimensions(width, height)
	}
	cells := make([][]Cell, height)
	for y := range height {
		cells[y] = make([]Cell, width)
		for x := range width {
			cells[y][x] = Cell{X: x, Y: y}
		}
	}
	return &Board{Width: width, Height: height, Cells: cells}, nil
}

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.Width && 0 <= y && y < b.Height
}

func (b *Board) cell(p Point) *Cell {
	return &b.Cells[p.Y][p.X]
}

// Neighbors returns the in-bounds neighbours of (x, y). Offsets falling off
// the board are dropped.
func (b *Board) Neighbors(x, y int) []Point {
	points := make([]Point, 0, len(directions))
	for _, d := range directions {
		xx, yy := x+d.X, y+d.Y
		if b.InBounds(xx, yy) {
			points = append(points, Point{xx, yy})
		}
	}
	return points
}

func (b *Board) countAdjacent(p Point) int {
	n := 0
	for _, q := range b.Neighbors(p.X, p.Y) {
		if b.cell(q).IsMine() {
			n++
		}
	}
	return n
}

func (b *Board) each(fn func(c *Cell)) {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			fn(&b.Cells[y][x])
		}
	}
}

func (b *Board) clone() *Board {
	cells := make([][]Cell, len(b.Cells))
	for y := range b.Cells {
		cells[y] = append([]Cell(nil), b.Cells[y]...)
	}
	return &Board{Width: b.Width, Height: b.Height, Cells: cells}
}

// String draws the board with full knowledge: . hidden, F flag,
// * revealed mine, digits for revealed safe cells.
func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.Cells {
		for x := range b.Cells[y] {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.Cells[y][x].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
