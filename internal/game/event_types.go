package game

// EventType represents a room event type with type safety
type EventType string

// Room events. RoomState carries the full snapshot; the rest are the tagged
// notices that accompany specific transitions.
const (
	EventTypeRoomState    EventType = "room_state"
	EventTypePlayerJoined EventType = "player_joined"
	EventTypePlayerLeft   EventType = "player_left"
	EventTypeGameStarted  EventType = "game_started"
	EventTypePlayerAction EventType = "player_action"
	EventTypeRoundEnded   EventType = "round_ended"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
