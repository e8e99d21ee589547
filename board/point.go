package board

import "fmt"

// Point is a (row, col) position on the board.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the point one step away in direction d.
func (p Point) Add(d Direction) Point {
	dr, dc := d.Delta()
	return Point{Row: p.Row + dr, Col: p.Col + dc}
}

// Adjacent checks if 2 points are at manhattan distance 1.
func (p Point) Adjacent(other Point) bool {
	return abs(p.Row-other.Row)+abs(p.Col-other.Col) == 1
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
