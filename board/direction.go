package board

import "fmt"

// Direction is one of the four unit moves on the board.
type Direction string

const (
	// Up moves one row towards row 0.
	Up Direction = "up"
	// Down moves one row away from row 0.
	Down Direction = "down"
	// Left moves one column towards column 0.
	Left Direction = "left"
	// Right moves one column away from column 0.
	Right Direction = "right"
)

// Directions lists every valid direction.
var Directions = []Direction{Up, Down, Left, Right}

// Delta returns the (row, col) unit vector of the direction. An invalid
// direction has a zero delta.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// ParseDirection converts a string such as "left" into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("board: invalid direction %q", s)
	}
	return d, nil
}
