package game

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestRegistry(opts ...Option) *Registry {
	opts = append([]Option{WithLogger(log.NewWithOptions(io.Discard, log.Options{}))}, opts...)
	return NewRegistry(opts...)
}

func TestRegistryJoinCreatesRoom(t *testing.T) {
	reg := newTestRegistry()

	room, err := reg.Join("lobby", "p1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "lobby", room.ID())
	assert.Equal(t, 1, reg.Count())

	again, err := reg.Join("lobby", "p2", "Bob")
	require.NoError(t, err)
	assert.Same(t, room, again)
	assert.Equal(t, 2, room.PlayerCount())
}

func TestRegistryJoinInvalidRoom(t *testing.T) {
	reg := newTestRegistry()

	_, err := reg.Join("  ", "p1", "Alice")
	assert.ErrorIs(t, err, ErrInvalidRoomID)
	assert.Equal(t, 0, reg.Count())
}

func TestRegistryJoinFullRoom(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPlayers = 1
	reg := newTestRegistry(WithConfig(cfg))

	_, err := reg.Join("lobby", "p1", "Alice")
	require.NoError(t, err)
	_, err = reg.Join("lobby", "p2", "Bob")
	assert.ErrorIs(t, err, ErrRoomFull)

	room, ok := reg.Get("lobby")
	require.True(t, ok)
	assert.Equal(t, 1, room.PlayerCount())
}

func TestRegistryLeaveReleasesEmptyRoom(t *testing.T) {
	reg := newTestRegistry()
	room, err := reg.Join("lobby", "p1", "Alice")
	require.NoError(t, err)
	_, err = reg.Join("lobby", "p2", "Bob")
	require.NoError(t, err)

	assert.True(t, reg.Leave("lobby", "p1"))
	assert.Equal(t, 1, reg.Count())

	assert.False(t, reg.Leave("lobby", "nobody"))
	assert.True(t, reg.Leave("lobby", "p2"))
	assert.Equal(t, 0, reg.Count())
	_, ok := reg.Get("lobby")
	assert.False(t, ok)

	assert.ErrorIs(t, room.StartNewRound(), ErrRoomClosed, "released rooms are closed")
	assert.False(t, reg.Leave("lobby", "p2"))
}

func TestRegistryRejoinAfterRelease(t *testing.T) {
	reg := newTestRegistry()
	first, err := reg.Join("lobby", "p1", "Alice")
	require.NoError(t, err)
	require.True(t, reg.Leave("lobby", "p1"))

	second, err := reg.Join("lobby", "p1", "Alice")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 1000, second.Snapshot().Players[0].Balance)
}

func TestRegistryList(t *testing.T) {
	reg := newTestRegistry()
	for _, id := range []string{"charlie", "alpha", "bravo"} {
		_, err := reg.Join(id, "p-"+id, id)
		require.NoError(t, err)
	}

	list := reg.List()
	require.Len(t, list, 3)
	assert.Equal(t, "alpha", list[0].ID)
	assert.Equal(t, "bravo", list[1].ID)
	assert.Equal(t, "charlie", list[2].ID)
	assert.Equal(t, 1, list[0].PlayerCount)
	assert.Equal(t, DefaultConfig().MaxPlayers, list[0].MaxPlayers)
}

func TestRegistryCloseAll(t *testing.T) {
	reg := newTestRegistry()
	room, err := reg.Join("lobby", "p1", "Alice")
	require.NoError(t, err)

	reg.CloseAll()

	assert.Equal(t, 0, reg.Count())
	assert.ErrorIs(t, room.AddPlayer("p2", "Bob"), ErrRoomClosed)
}

func TestRegistryConcurrentJoinLeave(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPlayers = 16
	reg := newTestRegistry(WithConfig(cfg))

	// Every published snapshot must come from a room that still has players
	var emptySnapshots atomic.Int32
	reg.Bus().Subscribe(SubscriberFunc(func(e Event) {
		if s, ok := e.(RoomStateEvent); ok && len(s.Snapshot.Players) == 0 {
			emptySnapshots.Add(1)
		}
	}))

	var g errgroup.Group
	for i := range 64 {
		g.Go(func() error {
			roomID := fmt.Sprintf("room-%d", i%4)
			playerID := fmt.Sprintf("p%d", i)
			for range 10 {
				room, err := reg.Join(roomID, playerID, playerID)
				if err != nil {
					return fmt.Errorf("join %s: %w", roomID, err)
				}
				_ = room.StartNewRound()
				_ = room.HandlePlayerAction(playerID, Stand)
				if !reg.Leave(roomID, playerID) {
					return fmt.Errorf("leave %s: %s not found", roomID, playerID)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 0, reg.Count())
	assert.Zero(t, emptySnapshots.Load())
}

func TestRegistryConcurrentJoinsCreateOneRoom(t *testing.T) {
	reg := newTestRegistry(WithConfig(Config{MaxPlayers: 32, StartingBalance: 1000, DefaultBet: 10}))

	rooms := make([]*Room, 24)
	var g errgroup.Group
	for i := range rooms {
		g.Go(func() error {
			room, err := reg.Join("fresh", fmt.Sprintf("p%d", i), "Player")
			rooms[i] = room
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, reg.Count())
	for _, room := range rooms {
		assert.Same(t, rooms[0], room)
	}
	assert.Equal(t, 24, rooms[0].PlayerCount())
}

func TestRegistryGetOrCreate(t *testing.T) {
	reg := newTestRegistry()

	_, err := reg.GetOrCreate("   ")
	require.ErrorIs(t, err, ErrInvalidRoomID)

	room, err := reg.GetOrCreate("lobby")
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Count())

	again, err := reg.GetOrCreate("lobby")
	require.NoError(t, err)
	assert.Same(t, room, again)

	require.NoError(t, room.AddPlayer("p1", "Alice"))
	reg.ReleaseIfEmpty("lobby")
	assert.Equal(t, 1, reg.Count(), "occupied room is kept")

	require.True(t, reg.Leave("lobby", "p1"))
	assert.Equal(t, 0, reg.Count())
	assert.ErrorIs(t, room.AddPlayer("p2", "Bob"), ErrRoomClosed)

	empty, err := reg.GetOrCreate("idle")
	require.NoError(t, err)
	reg.ReleaseIfEmpty("idle")
	assert.Equal(t, 0, reg.Count())
	assert.ErrorIs(t, empty.StartNewRound(), ErrRoomClosed)
}
