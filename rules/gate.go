package rules

import (
	"sync"

	"github.com/tilesnake/engine/board"
)

// DirectionGate holds the direction the snake will move on the next tick.
// At most one change is accepted between two ticks and a change straight
// back into the neck is rejected. It is the only state shared between the
// input path and the tick path.
type DirectionGate struct {
	mu     sync.Mutex
	dir    board.Direction
	turned bool
}

// NewDirectionGate returns a gate committed to dir.
func NewDirectionGate(dir board.Direction) *DirectionGate {
	return &DirectionGate{dir: dir}
}

// Request tries to change the committed direction. length is the current
// snake length, a snake of one segment may reverse. It returns false when the
// request was dropped.
func (g *DirectionGate) Request(dir board.Direction, length int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.turned || !dir.Valid() || dir == g.dir {
		return false
	}
	if length > 1 && dir == g.dir.Opposite() {
		return false
	}
	g.dir = dir
	g.turned = true
	return true
}

// Consume returns the committed direction and re-arms the gate for the next
// tick.
func (g *DirectionGate) Consume() board.Direction {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.turned = false
	return g.dir
}

// Direction returns the committed direction without re-arming the gate.
func (g *DirectionGate) Direction() board.Direction {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.dir
}

// Reset commits dir and clears any pending turn.
func (g *DirectionGate) Reset(dir board.Direction) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.dir = dir
	g.turned = false
}
