package store

import (
	"context"
	"errors"
	"sync"

	"github.com/tilesnake/engine/rules"
)

var (
	// ErrNotFound is returned when a game is not found.
	ErrNotFound = errors.New("store: game not found")
	// ErrInvalidSequence is returned when a frame does not follow the last
	// recorded turn.
	ErrInvalidSequence = errors.New("store: invalid frame sequence")
)

// Store records games so they can be inspected and replayed.
type Store interface {
	// CreateGame will insert a game with its initial frames.
	CreateGame(ctx context.Context, g *Game, frames []*rules.Frame) error
	// PushGameFrame appends a frame. Frame turns must be consecutive,
	// starting at 0.
	PushGameFrame(ctx context.Context, id string, f *rules.Frame) error
	// ListGameFrames will list frames by an offset and limit, it supports
	// negative offset.
	ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*rules.Frame, error)
	// GetGame will fetch the game.
	GetGame(ctx context.Context, id string) (*Game, error)
	// SetGameStatus records the state and score of a game.
	SetGameStatus(ctx context.Context, id string, state rules.State, score int) error
}

// InMemStore returns an in memory implementation of the Store interface.
func InMemStore() Store {
	return &inmem{
		games:  map[string]*Game{},
		frames: map[string][]*rules.Frame{},
	}
}

type inmem struct {
	games  map[string]*Game
	frames map[string][]*rules.Frame
	lock   sync.Mutex
}

func (in *inmem) CreateGame(ctx context.Context, g *Game, frames []*rules.Frame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if err := CheckSequence(0, frames...); err != nil {
		return err
	}
	in.games[g.ID] = g.Clone()
	in.frames[g.ID] = cloneFrames(frames)
	return nil
}

func (in *inmem) PushGameFrame(ctx context.Context, id string, f *rules.Frame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[id]; !ok {
		return ErrNotFound
	}
	if err := CheckSequence(len(in.frames[id]), f); err != nil {
		return err
	}
	in.frames[id] = append(in.frames[id], f.Clone())
	return nil
}

func (in *inmem) ListGameFrames(ctx context.Context, id string, limit, offset int) ([]*rules.Frame, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.games[id]; !ok {
		return nil, ErrNotFound
	}
	return Page(in.frames[id], limit, offset), nil
}

func (in *inmem) GetGame(ctx context.Context, id string) (*Game, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	if g, ok := in.games[id]; ok {
		return g.Clone(), nil
	}
	return nil, ErrNotFound
}

func (in *inmem) SetGameStatus(ctx context.Context, id string, state rules.State, score int) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	g, ok := in.games[id]
	if !ok {
		return ErrNotFound
	}
	g.Status = state
	g.Score = score
	return nil
}

// CheckSequence verifies that frames continue a recording holding next
// frames.
func CheckSequence(next int, frames ...*rules.Frame) error {
	for _, f := range frames {
		if f.Turn != next {
			return ErrInvalidSequence
		}
		next++
	}
	return nil
}

// Page applies limit and offset to frames. A negative offset counts from the
// end. The returned frames are copies.
func Page(frames []*rules.Frame, limit, offset int) []*rules.Frame {
	if offset < 0 {
		offset = len(frames) + offset
		if offset < 0 {
			offset = 0
		}
	}
	if limit <= 0 || len(frames) == 0 || offset >= len(frames) {
		return nil
	}
	if offset+limit >= len(frames) {
		limit = len(frames) - offset
	}
	return cloneFrames(frames[offset : offset+limit])
}

func cloneFrames(frames []*rules.Frame) []*rules.Frame {
	c := make([]*rules.Frame, len(frames))
	for i, f := range frames {
		c[i] = f.Clone()
	}
	return c
}
