package rules

import "github.com/tilesnake/engine/board"

// Collision is the outcome of moving a head onto a candidate position.
type Collision string

const (
	// CollisionClear is a legal move.
	CollisionClear Collision = ""
	// CollisionWall is when the head runs into a configured wall
	CollisionWall Collision = "wall"
	// CollisionBoundary is when the head runs off the board
	CollisionBoundary Collision = "boundary"
	// CollisionSelf is when the head runs into its own body
	CollisionSelf Collision = "self"
)

// Classify checks a candidate head position against the board and the snake
// as it is before this tick's move. The tail cell is vacated by the same move
// so stepping into it is legal.
func Classify(grid *board.Grid, candidate board.Point, snake *board.Snake) Collision {
	if !grid.InBounds(candidate) {
		return CollisionBoundary
	}
	if c, _ := grid.Get(candidate); c == board.Wall {
		return CollisionWall
	}
	if snake.Len() > 1 && candidate != snake.Tail() && snake.ContainsExcludingHead(candidate) {
		return CollisionSelf
	}
	return CollisionClear
}
