package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
)

type collector struct{ events []game.Event }

func (c *collector) OnEvent(e game.Event) { c.events = append(c.events, e) }

func TestMessageFromEvent(t *testing.T) {
	bus := game.NewEventBus()
	col := &collector{}
	bus.Subscribe(col)

	room := game.NewRoom("table", game.WithEventBus(bus), game.WithLogger(testLogger()))
	require.NoError(t, room.AddPlayer("p1", "Alice"))
	require.NoError(t, room.AddPlayer("p2", "Bob"))
	require.NoError(t, room.StartNewRound())
	require.NoError(t, room.HandlePlayerAction("p1", game.Stand))

	var types []string
	for _, e := range col.events {
		msg, err := MessageFromEvent(e)
		require.NoError(t, err)
		assert.True(t, e.Timestamp().Equal(msg.Timestamp))

		if msg.Type == MessageTypeRoomState {
			var snap game.Snapshot
			require.NoError(t, msg.Decode(&snap))
			assert.Equal(t, "table", snap.RoomID)
			types = append(types, "room_state")
			continue
		}

		require.Equal(t, MessageTypeGameMessage, msg.Type)
		var data GameMessageData
		require.NoError(t, msg.Decode(&data))
		types = append(types, data.Type.String())

		switch data.Type {
		case game.EventTypePlayerJoined:
			var p PlayerJoinedPayload
			require.NoError(t, json.Unmarshal(data.Payload, &p))
			assert.Equal(t, "p2", data.PlayerID)
			assert.Equal(t, "Bob", p.Player.Name)
		case game.EventTypeGameStarted:
			var state game.GameStateView
			require.NoError(t, json.Unmarshal(data.Payload, &state))
			assert.Equal(t, game.PlayerTurn, state.Phase)
			assert.Empty(t, data.PlayerID)
		case game.EventTypePlayerAction:
			var p PlayerActionPayload
			require.NoError(t, json.Unmarshal(data.Payload, &p))
			assert.Equal(t, "p1", p.PlayerID)
			assert.Equal(t, game.Stand, p.Action)
		}
	}

	assert.Equal(t, []string{
		"room_state",
		"room_state", "player_joined",
		"room_state", "game_started",
		"room_state", "player_action",
	}, types)
}

func TestMessageEnvelopeJSON(t *testing.T) {
	msg, err := NewMessage(MessageTypePlaceBet, PlaceBetData{Amount: 25})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.Equal(t, "place_bet", generic["type"])
	assert.Equal(t, map[string]any{"amount": float64(25)}, generic["data"])
	assert.NotContains(t, generic, "requestId")
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{game.ErrRoomFull, CodeRoomFull},
		{game.ErrNotYourTurn, CodeNotYourTurn},
		{game.ErrWrongPhase, CodeWrongPhase},
		{game.ErrInsufficientFunds, CodeInsufficientFunds},
		{game.ErrInvalidBet, CodeInvalidBet},
		{game.ErrNoPlayers, CodeNoPlayers},
		{game.ErrRoundInProgress, CodeRoundInProgress},
		{game.ErrPlayerNotFound, CodeNotInRoom},
		{game.ErrRoomClosed, CodeNotInRoom},
		{game.ErrPlayerExists, CodeAlreadyInRoom},
		{game.ErrInvalidRoomID, CodeInvalidRoom},
		{assert.AnError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, errorCode(tt.err))
		})
	}

	_, err := game.ParseAction("split")
	assert.Equal(t, CodeUnknownAction, errorCode(err), "wrapped errors are matched")
}
