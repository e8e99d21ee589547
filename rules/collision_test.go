package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tilesnake/engine/board"
)

func TestClassifyBoundary(t *testing.T) {
	grid := board.NewGrid(20, 20)
	snake := board.NewSnake(pt(1, 1))
	points := []board.Point{
		pt(-1, 1),
		pt(20, 1),
		pt(1, -1),
		pt(1, 20),
	}
	for _, p := range points {
		require.Equal(t, CollisionBoundary, Classify(grid, p, snake), "point %v", p)
	}
}

func TestClassifyWall(t *testing.T) {
	grid := board.NewGrid(5, 5)
	require.NoError(t, grid.Set(pt(2, 3), board.Wall))
	snake := board.NewSnake(pt(2, 2))

	require.Equal(t, CollisionWall, Classify(grid, pt(2, 3), snake))
}

func TestClassifySelf(t *testing.T) {
	grid := board.NewGrid(5, 5)
	snake := board.NewSnake(pt(2, 2), pt(2, 1), pt(1, 1), pt(1, 2), pt(1, 3))

	require.Equal(t, CollisionSelf, Classify(grid, pt(1, 2), snake))
	require.Equal(t, CollisionSelf, Classify(grid, pt(2, 1), snake))
}

func TestClassifyTailIsLegal(t *testing.T) {
	grid := board.NewGrid(5, 5)
	snake := board.NewSnake(pt(1, 1), pt(1, 2), pt(2, 2), pt(2, 1))

	require.Equal(t, CollisionClear, Classify(grid, pt(2, 1), snake))
}

func TestClassifyClear(t *testing.T) {
	grid := board.NewGrid(5, 5)
	require.NoError(t, grid.Set(pt(0, 0), board.Food))
	snake := board.NewSnake(pt(0, 1), pt(0, 2))

	require.Equal(t, CollisionClear, Classify(grid, pt(0, 0), snake))
	require.Equal(t, CollisionClear, Classify(grid, pt(1, 1), snake))
}
