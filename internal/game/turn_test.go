package game

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnTimeoutStandsPlayer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	bus := NewEventBus()
	rec := &EventRecorder{}
	bus.Subscribe(rec)

	room := NewTestRoom(
		WithPlayers("Alice", "Bob"),
		WithTestClock(mockClock),
		WithTestBus(bus),
		WithTurnTimeout(30*time.Second),
	)
	require.NoError(t, room.StartNewRound())
	rec.Reset()

	mockClock.Advance(30 * time.Second).MustWait(ctx)

	assert.Equal(t, "p2", currentPlayer(t, room))
	var timeouts []PlayerActionEvent
	for _, e := range rec.Events() {
		if a, ok := e.(PlayerActionEvent); ok {
			timeouts = append(timeouts, a)
		}
	}
	require.Len(t, timeouts, 1)
	assert.Equal(t, "p1", timeouts[0].PlayerID)
	assert.Equal(t, TimeoutStand, timeouts[0].Action)

	mockClock.Advance(30 * time.Second).MustWait(ctx)

	gs := room.Snapshot().GameState
	assert.Equal(t, GameEnd, gs.Phase)
	assert.Len(t, gs.Results, 2)
}

func TestTurnTimerResetsOnTurnChange(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	room := NewTestRoom(
		WithPlayers("Alice", "Bob"),
		WithTestClock(mockClock),
		WithTurnTimeout(30*time.Second),
	)
	require.NoError(t, room.StartNewRound())

	mockClock.Advance(10 * time.Second).MustWait(ctx)
	require.NoError(t, room.HandlePlayerAction("p1", Stand))

	// Bob's timer started when he got the turn, not at the deal
	mockClock.Advance(20 * time.Second).MustWait(ctx)
	assert.Equal(t, "p2", currentPlayer(t, room))

	mockClock.Advance(10 * time.Second).MustWait(ctx)
	assert.Equal(t, GameEnd, room.Snapshot().GameState.Phase)
}

func TestTurnTimerDisabledByDefault(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	room := NewTestRoom(WithPlayers("Alice"), WithTestClock(mockClock))
	require.NoError(t, room.StartNewRound())

	mockClock.Advance(time.Hour).MustWait(ctx)

	assert.Equal(t, "p1", currentPlayer(t, room))
}

func TestStaleTurnTimerIsIgnored(t *testing.T) {
	room := NewTestRoom(WithPlayers("Alice", "Bob"), WithTurnTimeout(time.Hour))
	require.NoError(t, room.StartNewRound())
	require.NoError(t, room.HandlePlayerAction("p1", Stand))

	room.expireTurn("round-1/p1")

	assert.Equal(t, "p2", currentPlayer(t, room))
	room.Close()
}
