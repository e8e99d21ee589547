package board

// Cell is the category of a single board tile.
type Cell uint8

const (
	// Empty is a free tile, a candidate for food.
	Empty Cell = iota
	// SnakeBody is a tile occupied by a snake segment.
	SnakeBody
	// Wall is a configured obstacle. Walls never change during a game.
	Wall
	// Food is the tile holding the current piece of food.
	Food
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case SnakeBody:
		return "snake"
	case Wall:
		return "wall"
	case Food:
		return "food"
	}
	return "unknown"
}
