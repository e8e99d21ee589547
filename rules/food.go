package rules

import (
	"errors"
	"math/rand"
	"time"

	"github.com/tilesnake/engine/board"
)

// ErrBoardFull is returned when no free cell is left for food.
var ErrBoardFull = errors.New("rules: board full")

// Rand is the randomness source used to place food. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Spawner chooses the cell for the next food. It returns ErrBoardFull when
// the grid has no free cell.
type Spawner interface {
	Spawn(grid *board.Grid) (board.Point, error)
}

// FoodSpawner picks a free cell uniformly at random.
type FoodSpawner struct {
	rand Rand
}

// NewFoodSpawner returns a spawner using r. A nil r uses a time seeded
// source.
func NewFoodSpawner(r Rand) *FoodSpawner {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FoodSpawner{rand: r}
}

// Spawn returns a position among the grid's free cells. It does not modify
// the grid.
func (f *FoodSpawner) Spawn(grid *board.Grid) (board.Point, error) {
	free := grid.FreeCells()
	if len(free) == 0 {
		return board.Point{}, ErrBoardFull
	}
	return free[f.rand.Intn(len(free))], nil
}
