package rules

import "github.com/tilesnake/engine/board"

// seqRand returns its picks in order, then 0.
type seqRand struct {
	picks []int
}

func (r *seqRand) Intn(n int) int {
	if len(r.picks) == 0 {
		return 0
	}
	p := r.picks[0]
	r.picks = r.picks[1:]
	return p % n
}

func pt(row, col int) board.Point {
	return board.Point{Row: row, Col: col}
}

func testSession(picks ...int) *Session {
	return NewSession(nil, WithFoodSpawner(NewFoodSpawner(&seqRand{picks: picks})))
}

func testConfig(rows, columns int, dir board.Direction, snake ...board.Point) Config {
	return Config{
		Rows:        rows,
		Columns:     columns,
		Snake:       snake,
		Direction:   dir,
		RefreshRate: 20,
	}
}

// fixedSpawner returns its points in order, then fails with ErrBoardFull.
type fixedSpawner struct {
	points []board.Point
}

func (f *fixedSpawner) Spawn(grid *board.Grid) (board.Point, error) {
	if len(f.points) == 0 {
		return board.Point{}, ErrBoardFull
	}
	p := f.points[0]
	f.points = f.points[1:]
	return p, nil
}
