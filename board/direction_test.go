package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectionAdd(t *testing.T) {
	tests := []struct {
		Direction Direction
		Expected  Point
	}{
		{Direction: Up, Expected: Point{Row: 4, Col: 5}},
		{Direction: Down, Expected: Point{Row: 6, Col: 5}},
		{Direction: Left, Expected: Point{Row: 5, Col: 4}},
		{Direction: Right, Expected: Point{Row: 5, Col: 6}},
		{Direction: "", Expected: Point{Row: 5, Col: 5}},
	}

	for _, test := range tests {
		p := Point{Row: 5, Col: 5}
		require.Equal(t, test.Expected, p.Add(test.Direction), "Direction: %s", test.Direction)
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		require.NotEqual(t, d, d.Opposite())
		require.Equal(t, d, d.Opposite().Opposite())

		p := Point{Row: 3, Col: 3}
		require.Equal(t, p, p.Add(d).Add(d.Opposite()))
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("left")
	require.NoError(t, err)
	require.Equal(t, Left, d)

	_, err = ParseDirection("sideways")
	require.Error(t, err)
}

func TestPointAdjacent(t *testing.T) {
	p := Point{Row: 2, Col: 2}
	require.True(t, p.Adjacent(Point{Row: 2, Col: 3}))
	require.True(t, p.Adjacent(Point{Row: 1, Col: 2}))
	require.False(t, p.Adjacent(Point{Row: 3, Col: 3}))
	require.False(t, p.Adjacent(p))
}
