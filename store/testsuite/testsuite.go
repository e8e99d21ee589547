package testsuite

import (
	"context"
	"sync"
	"testing"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
	"github.com/tilesnake/engine/board"
	"github.com/tilesnake/engine/rules"
	"github.com/tilesnake/engine/store"
)

func testGame(id string) *store.Game {
	return &store.Game{
		ID:      id,
		Rows:    5,
		Columns: 6,
		Walls:   []board.Point{{Row: 0, Col: 0}, {Row: 4, Col: 5}},
		Status:  rules.StateRunning,
		Created: time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func testFrame(turn int) *rules.Frame {
	food := board.Point{Row: 3, Col: turn % 6}
	return &rules.Frame{
		Turn:  turn,
		Snake: []board.Point{{Row: 2, Col: 2 + turn%3}, {Row: 2, Col: 1 + turn%3}},
		Food:  &food,
		Score: turn / 2,
		State: rules.StateRunning,
	}
}

func requireGame(t *testing.T, want, got *store.Game) {
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Rows, got.Rows)
	require.Equal(t, want.Columns, got.Columns)
	require.Equal(t, want.Walls, got.Walls)
	require.Equal(t, want.Status, got.Status)
	require.Equal(t, want.Score, got.Score)
	require.True(t, want.Created.Equal(got.Created), "created %v, got %v", want.Created, got.Created)
}

func testStoreGames(t *testing.T, s store.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	// Create and fetch a game.
	g := testGame(key)
	err := s.CreateGame(ctx, g, nil)
	require.Nil(t, err)
	got, err := s.GetGame(ctx, key)
	require.Nil(t, err)
	requireGame(t, g, got)

	// Returned games are copies.
	got.Walls[0] = board.Point{Row: 3, Col: 3}
	again, err := s.GetGame(ctx, key)
	require.Nil(t, err)
	require.Equal(t, board.Point{Row: 0, Col: 0}, again.Walls[0])

	// NotFound error thrown.
	_, err = s.GetGame(ctx, key+"-missing")
	require.Equal(t, store.ErrNotFound, err)
}

func testStoreGameStatus(t *testing.T, s store.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	err := s.CreateGame(ctx, testGame(key), []*rules.Frame{testFrame(0)})
	require.Nil(t, err)

	err = s.SetGameStatus(ctx, key, rules.StateEnded, 7)
	require.Nil(t, err)

	g, err := s.GetGame(ctx, key)
	require.Nil(t, err)
	require.Equal(t, rules.StateEnded, g.Status)
	require.Equal(t, 7, g.Score)

	err = s.SetGameStatus(ctx, key+"-missing", rules.StateWon, 1)
	require.Equal(t, store.ErrNotFound, err)
}

func testStoreGameFrames(t *testing.T, s store.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	err := s.CreateGame(ctx, testGame(key), nil)
	require.Nil(t, err)

	// Read game frames, too high offset.
	frames, err := s.ListGameFrames(ctx, key, 10, 100)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// Read game frames, 0 offset.
	frames, err = s.ListGameFrames(ctx, key, 10, 0)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// Push game frames.
	for i := 0; i < 4; i++ {
		err = s.PushGameFrame(ctx, key, testFrame(i))
		require.Nil(t, err)
	}

	// Read the game frames.
	frames, err = s.ListGameFrames(ctx, key, 10, 0)
	require.Nil(t, err)
	require.Equal(t, []*rules.Frame{testFrame(0), testFrame(1), testFrame(2), testFrame(3)}, frames)

	// Smaller limit, with an offset.
	frames, err = s.ListGameFrames(ctx, key, 2, 1)
	require.Nil(t, err)
	require.Equal(t, []*rules.Frame{testFrame(1), testFrame(2)}, frames)

	// Negative offset.
	frames, err = s.ListGameFrames(ctx, key, 1, -1)
	require.Nil(t, err)
	require.Equal(t, []*rules.Frame{testFrame(3)}, frames)

	frames, err = s.ListGameFrames(ctx, key, 10, -2)
	require.Nil(t, err)
	require.Equal(t, []*rules.Frame{testFrame(2), testFrame(3)}, frames)

	// Read game frames that don't exist.
	frames, err = s.ListGameFrames(ctx, key+"-missing", 1, 0)
	require.Equal(t, store.ErrNotFound, err)
	require.Equal(t, 0, len(frames))

	// Push to a game that doesn't exist.
	err = s.PushGameFrame(ctx, key+"-missing", testFrame(0))
	require.Equal(t, store.ErrNotFound, err)
}

func testStoreInitialFrames(t *testing.T, s store.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	err := s.CreateGame(ctx, testGame(key), []*rules.Frame{testFrame(0), testFrame(1)})
	require.Nil(t, err)
	err = s.PushGameFrame(ctx, key, testFrame(2))
	require.Nil(t, err)

	frames, err := s.ListGameFrames(ctx, key, 10, 0)
	require.Nil(t, err)
	require.Len(t, frames, 3)
	require.Equal(t, 2, frames[2].Turn)
}

func testStoreFrameSequence(t *testing.T, s store.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	err := s.CreateGame(ctx, testGame(key), []*rules.Frame{testFrame(0)})
	require.Nil(t, err)

	// Skipping a turn is rejected.
	err = s.PushGameFrame(ctx, key, testFrame(2))
	require.Equal(t, store.ErrInvalidSequence, err)

	// Repeating a turn is rejected.
	err = s.PushGameFrame(ctx, key, testFrame(0))
	require.Equal(t, store.ErrInvalidSequence, err)

	err = s.PushGameFrame(ctx, key, testFrame(1))
	require.Nil(t, err)

	frames, err := s.ListGameFrames(ctx, key, 10, 0)
	require.Nil(t, err)
	require.Len(t, frames, 2)
}

func testStoreFrameCopies(t *testing.T, s store.Store) {
	key := uuid.NewV4().String()
	ctx := context.Background()

	pushed := testFrame(1)
	err := s.CreateGame(ctx, testGame(key), []*rules.Frame{testFrame(0)})
	require.Nil(t, err)
	err = s.PushGameFrame(ctx, key, pushed)
	require.Nil(t, err)

	// Changing a pushed frame afterwards does not change the recording.
	pushed.Snake[0] = board.Point{Row: 4, Col: 4}
	pushed.Food.Row = 0

	frames, err := s.ListGameFrames(ctx, key, 10, 0)
	require.Nil(t, err)
	require.Equal(t, []*rules.Frame{testFrame(0), testFrame(1)}, frames)

	// Neither does changing a listed frame.
	frames[0].Score = 99
	frames[0].Snake[0] = board.Point{Row: 4, Col: 4}
	frames[1] = testFrame(7)

	frames, err = s.ListGameFrames(ctx, key, 10, 0)
	require.Nil(t, err)
	require.Equal(t, []*rules.Frame{testFrame(0), testFrame(1)}, frames)
}

func testStoreConcurrentWriters(t *testing.T, s store.Store) {
	ctx := context.Background()

	ids := make([]string, 20)
	errs := make([]error, 20)
	var wg sync.WaitGroup
	wg.Add(len(ids))

	for i := range ids {
		ids[i] = uuid.NewV4().String()
		go func(i int) {
			defer wg.Done()
			if err := s.CreateGame(ctx, testGame(ids[i]), []*rules.Frame{testFrame(0)}); err != nil {
				errs[i] = err
				return
			}
			errs[i] = s.PushGameFrame(ctx, ids[i], testFrame(1))
		}(i)
	}

	wg.Wait()

	for i, id := range ids {
		require.Nil(t, errs[i])
		frames, err := s.ListGameFrames(ctx, id, 10, 0)
		require.Nil(t, err)
		require.Len(t, frames, 2)
	}
}

// Suite will execute the store testsuite.
func Suite(t *testing.T, s store.Store, pretest func()) {
	s = store.InstrumentStore(s)
	t.Run("Games", func(t *testing.T) { pretest(); testStoreGames(t, s) })
	t.Run("GameStatus", func(t *testing.T) { pretest(); testStoreGameStatus(t, s) })
	t.Run("GameFrames", func(t *testing.T) { pretest(); testStoreGameFrames(t, s) })
	t.Run("InitialFrames", func(t *testing.T) { pretest(); testStoreInitialFrames(t, s) })
	t.Run("FrameSequence", func(t *testing.T) { pretest(); testStoreFrameSequence(t, s) })
	t.Run("FrameCopies", func(t *testing.T) { pretest(); testStoreFrameCopies(t, s) })
	t.Run("ConcurrentWriters", func(t *testing.T) { pretest(); testStoreConcurrentWriters(t, s) })
}
