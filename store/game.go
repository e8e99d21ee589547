package store

import (
	"time"

	"github.com/tilesnake/engine/board"
	"github.com/tilesnake/engine/rules"
)

// Game is the recorded header of a session round.
type Game struct {
	ID      string        `json:"id"`
	Rows    int           `json:"rows"`
	Columns int           `json:"columns"`
	Walls   []board.Point `json:"walls"`
	Status  rules.State   `json:"status"`
	Score   int           `json:"score"`
	Created time.Time     `json:"created"`
}

// NewGame describes the round a session is running.
func NewGame(id string, cfg rules.Config) *Game {
	return &Game{
		ID:      id,
		Rows:    cfg.Rows,
		Columns: cfg.Columns,
		Walls:   append([]board.Point(nil), cfg.Walls...),
		Status:  rules.StateRunning,
		Created: time.Now().UTC(),
	}
}

// Clone returns a deep copy so callers can't upset internal store state.
func (g *Game) Clone() *Game {
	c := *g
	c.Walls = append([]board.Point(nil), g.Walls...)
	return &c
}

// Grid rebuilds the board as it was at frame f. Points outside the board are
// skipped.
func (g *Game) Grid(f *rules.Frame) *board.Grid {
	grid := board.NewGrid(g.Rows, g.Columns)
	for _, w := range g.Walls {
		_ = grid.Set(w, board.Wall)
	}
	if f == nil {
		return grid
	}
	for _, p := range f.Snake {
		_ = grid.Set(p, board.SnakeBody)
	}
	if f.Food != nil {
		_ = grid.Set(*f.Food, board.Food)
	}
	return grid
}
