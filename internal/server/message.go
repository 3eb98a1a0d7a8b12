package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/blackjack/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	return newMessageAt(messageType, data, time.Now())
}

func newMessageAt(messageType MessageType, data any, ts time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: ts,
	}, nil
}

// Decode unmarshals the message payload into v
func (m *Message) Decode(v any) error {
	if len(m.Data) == 0 {
		return json.Unmarshal([]byte("{}"), v)
	}
	return json.Unmarshal(m.Data, v)
}

// Client → Server Messages

type JoinRoomData struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type PlayerActionData struct {
	Action string `json:"action"`
}

type PlaceBetData struct {
	Amount int `json:"amount"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RoomJoinedData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type RoomLeftData struct {
	RoomID string `json:"roomId"`
}

type RoomListData struct {
	Rooms []game.Summary `json:"rooms"`
}

// GameMessageData is the tagged notice that accompanies a snapshot for
// specific transitions. Type is one of the room event types.
type GameMessageData struct {
	Type     game.EventType  `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	PlayerID string          `json:"playerId,omitempty"`
}

type PlayerJoinedPayload struct {
	Player game.PlayerView `json:"player"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

type PlayerActionPayload struct {
	PlayerID string      `json:"playerId"`
	Action   game.Action `json:"action"`
}

// HealthData is the body of GET /health
type HealthData struct {
	Status    string    `json:"status"`
	RoomCount int       `json:"roomCount"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageFromEvent converts a room event into the wire message clients
// receive
func MessageFromEvent(event game.Event) (*Message, error) {
	ts := event.Timestamp()

	var (
		payload  any
		playerID string
	)
	switch e := event.(type) {
	case game.RoomStateEvent:
		return newMessageAt(MessageTypeRoomState, e.Snapshot, ts)
	case game.PlayerJoinedEvent:
		payload, playerID = PlayerJoinedPayload{Player: e.Player}, e.Player.ID
	case game.PlayerLeftEvent:
		payload, playerID = PlayerLeftPayload{PlayerID: e.PlayerID, Name: e.Name}, e.PlayerID
	case game.PlayerActionEvent:
		payload, playerID = PlayerActionPayload{PlayerID: e.PlayerID, Action: e.Action}, e.PlayerID
	case game.GameStartedEvent:
		payload = e.State
	case game.RoundEndedEvent:
		payload = e.State
	default:
		return nil, fmt.Errorf("unsupported event type %s", event.EventType())
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return newMessageAt(MessageTypeGameMessage, GameMessageData{
		Type:     event.EventType(),
		Payload:  raw,
		PlayerID: playerID,
	}, ts)
}
