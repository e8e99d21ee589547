package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridGetSet(t *testing.T) {
	g := NewGrid(3, 4)
	require.Equal(t, 3, g.Rows())
	require.Equal(t, 4, g.Columns())

	c, err := g.Get(Point{Row: 2, Col: 3})
	require.NoError(t, err)
	require.Equal(t, Empty, c)

	require.NoError(t, g.Set(Point{Row: 2, Col: 3}, Wall))
	c, err = g.Get(Point{Row: 2, Col: 3})
	require.NoError(t, err)
	require.Equal(t, Wall, c)
}

func TestGridOutOfBounds(t *testing.T) {
	g := NewGrid(3, 4)
	points := []Point{
		{Row: -1, Col: 0},
		{Row: 3, Col: 0},
		{Row: 0, Col: -1},
		{Row: 0, Col: 4},
	}
	for _, p := range points {
		_, err := g.Get(p)
		require.Equal(t, ErrOutOfBounds, err, "get %v", p)
		require.Equal(t, ErrOutOfBounds, g.Set(p, Food), "set %v", p)
		require.False(t, g.InBounds(p))
	}
}

func TestGridFreeCellsRowMajor(t *testing.T) {
	g := NewGrid(2, 3)
	require.NoError(t, g.Set(Point{Row: 0, Col: 1}, Wall))
	require.NoError(t, g.Set(Point{Row: 1, Col: 0}, SnakeBody))
	require.NoError(t, g.Set(Point{Row: 1, Col: 2}, Food))

	require.Equal(t, []Point{
		{Row: 0, Col: 0},
		{Row: 0, Col: 2},
		{Row: 1, Col: 1},
	}, g.FreeCells())
}

func TestGridReset(t *testing.T) {
	g := NewGrid(2, 2)
	require.NoError(t, g.Set(Point{Row: 1, Col: 1}, Wall))
	g.Reset(Empty)
	require.Equal(t, 4, g.Count(Empty))
	require.Len(t, g.FreeCells(), 4)
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid(2, 2)
	clone := g.Clone()
	require.NoError(t, g.Set(Point{Row: 0, Col: 0}, SnakeBody))

	c, err := clone.Get(Point{Row: 0, Col: 0})
	require.NoError(t, err)
	require.Equal(t, Empty, c)
}

func TestGridMatrix(t *testing.T) {
	g := NewGrid(2, 3)
	require.NoError(t, g.Set(Point{Row: 1, Col: 2}, Food))
	require.Equal(t, [][]Cell{
		{Empty, Empty, Empty},
		{Empty, Empty, Food},
	}, g.Matrix())
}
