package rules

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tilesnake/engine/board"
)

func TestDirectionGateOneTurnPerTick(t *testing.T) {
	g := NewDirectionGate(board.Right)

	require.True(t, g.Request(board.Up, 3))
	require.False(t, g.Request(board.Left, 3))
	require.Equal(t, board.Up, g.Consume())

	require.True(t, g.Request(board.Left, 3))
	require.Equal(t, board.Left, g.Consume())
}

func TestDirectionGateRejectsReversal(t *testing.T) {
	g := NewDirectionGate(board.Right)

	require.False(t, g.Request(board.Left, 3))
	require.Equal(t, board.Right, g.Direction())

	// The dropped reversal did not use up the turn.
	require.True(t, g.Request(board.Down, 3))
	require.Equal(t, board.Down, g.Consume())
}

func TestDirectionGateAllowsReversalOfSingleSegment(t *testing.T) {
	g := NewDirectionGate(board.Right)

	require.True(t, g.Request(board.Left, 1))
	require.Equal(t, board.Left, g.Consume())
}

func TestDirectionGateSameDirectionKeepsTurn(t *testing.T) {
	g := NewDirectionGate(board.Right)

	require.False(t, g.Request(board.Right, 3))
	require.False(t, g.Request("diagonal", 3))
	require.True(t, g.Request(board.Up, 3))
}

func TestDirectionGateReset(t *testing.T) {
	g := NewDirectionGate(board.Right)
	require.True(t, g.Request(board.Up, 3))

	g.Reset(board.Down)
	require.Equal(t, board.Down, g.Direction())
	require.True(t, g.Request(board.Left, 3))
}

func TestDirectionGateConcurrentRequests(t *testing.T) {
	g := NewDirectionGate(board.Right)

	var accepted uint32
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			defer wg.Done()
			dir := board.Up
			if i%2 == 0 {
				dir = board.Down
			}
			if g.Request(dir, 3) {
				atomic.AddUint32(&accepted, 1)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, uint32(1), accepted)
	d := g.Consume()
	require.True(t, d == board.Up || d == board.Down)
}
