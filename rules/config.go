package rules

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/tilesnake/engine/board"
)

// ErrInvalidConfig is the cause of every configuration validation failure.
var ErrInvalidConfig = errors.New("rules: invalid config")

// Config describes the board and snake a session starts with.
type Config struct {
	Rows      int             `json:"rows"`
	Columns   int             `json:"columns"`
	Walls     []board.Point   `json:"walls"`
	Snake     []board.Point   `json:"snake"`
	Direction board.Direction `json:"direction"`
	// RefreshRate is the number of ticks per second.
	RefreshRate int `json:"refresh_rate"`
}

// Validate checks the configuration before any session state is touched.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Columns <= 0 {
		return pkgerrors.Wrapf(ErrInvalidConfig, "board must be at least 1x1, got %dx%d", c.Rows, c.Columns)
	}
	if c.RefreshRate <= 0 {
		return pkgerrors.Wrapf(ErrInvalidConfig, "refresh rate must be positive, got %d", c.RefreshRate)
	}
	if !c.Direction.Valid() {
		return pkgerrors.Wrapf(ErrInvalidConfig, "invalid direction %q", c.Direction)
	}

	grid := board.NewGrid(c.Rows, c.Columns)
	walls := map[board.Point]bool{}
	for _, w := range c.Walls {
		if !grid.InBounds(w) {
			return pkgerrors.Wrapf(ErrInvalidConfig, "wall %v outside the board", w)
		}
		walls[w] = true
	}

	if len(c.Snake) == 0 {
		return pkgerrors.Wrap(ErrInvalidConfig, "snake needs at least one segment")
	}
	seen := map[board.Point]bool{}
	for i, p := range c.Snake {
		if !grid.InBounds(p) {
			return pkgerrors.Wrapf(ErrInvalidConfig, "snake segment %v outside the board", p)
		}
		if walls[p] {
			return pkgerrors.Wrapf(ErrInvalidConfig, "snake segment %v overlaps a wall", p)
		}
		if seen[p] {
			return pkgerrors.Wrapf(ErrInvalidConfig, "snake segment %v is duplicated", p)
		}
		seen[p] = true
		if i > 0 && !p.Adjacent(c.Snake[i-1]) {
			return pkgerrors.Wrapf(ErrInvalidConfig, "snake segments %v and %v are not adjacent", c.Snake[i-1], p)
		}
	}
	if len(c.Snake) > 1 && c.Snake[0].Add(c.Direction) == c.Snake[1] {
		return pkgerrors.Wrapf(ErrInvalidConfig, "direction %s points into the snake's neck", c.Direction)
	}
	return nil
}
