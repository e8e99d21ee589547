package board

import "errors"

// ErrOutOfBounds is returned when a position outside the grid is accessed.
var ErrOutOfBounds = errors.New("board: position out of bounds")

// Grid is a rows x columns matrix of cells stored row-major in a flat slice.
type Grid struct {
	rows    int
	columns int
	cells   []Cell
}

// NewGrid returns an empty grid. Non-positive dimensions produce a grid with
// no cells.
func NewGrid(rows, columns int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if columns < 0 {
		columns = 0
	}
	return &Grid{
		rows:    rows,
		columns: columns,
		cells:   make([]Cell, rows*columns),
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.columns }

// InBounds reports whether p lies in [0,rows) x [0,columns).
func (g *Grid) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.columns
}

func (g *Grid) index(p Point) int {
	return p.Row*g.columns + p.Col
}

// Get returns the cell at p.
func (g *Grid) Get(p Point) (Cell, error) {
	if !g.InBounds(p) {
		return Empty, ErrOutOfBounds
	}
	return g.cells[g.index(p)], nil
}

// Set updates the cell at p.
func (g *Grid) Set(p Point, c Cell) error {
	if !g.InBounds(p) {
		return ErrOutOfBounds
	}
	g.cells[g.index(p)] = c
	return nil
}

// Reset fills every cell with fill. Walls are not preserved, the caller has
// to paint them again.
func (g *Grid) Reset(fill Cell) {
	for i := range g.cells {
		g.cells[i] = fill
	}
}

// FreeCells returns every Empty position in row-major order.
func (g *Grid) FreeCells() []Point {
	free := []Point{}
	for i, c := range g.cells {
		if c == Empty {
			free = append(free, Point{Row: i / g.columns, Col: i % g.columns})
		}
	}
	return free
}

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		rows:    g.rows,
		columns: g.columns,
		cells:   cells,
	}
}

// Matrix returns the grid as a rows x columns array, the shape handed to
// renderers.
func (g *Grid) Matrix() [][]Cell {
	m := make([][]Cell, g.rows)
	for r := 0; r < g.rows; r++ {
		row := make([]Cell, g.columns)
		copy(row, g.cells[r*g.columns:(r+1)*g.columns])
		m[r] = row
	}
	return m
}
