package server

// Note: game_message payload types (player_joined, game_started, etc.) are
// the room event types defined in internal/game/event_types.go

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeJoinRoom     MessageType = "join_room"
	MessageTypeLeaveRoom    MessageType = "leave_room"
	MessageTypeStartRound   MessageType = "start_round"
	MessageTypePlayerAction MessageType = "player_action"
	MessageTypePlaceBet     MessageType = "place_bet"
	MessageTypeListRooms    MessageType = "list_rooms"

	// Server to client messages
	MessageTypeRoomState   MessageType = "room_state"
	MessageTypeGameMessage MessageType = "game_message"
	MessageTypeRoomJoined  MessageType = "room_joined"
	MessageTypeRoomLeft    MessageType = "room_left"
	MessageTypeRoomList    MessageType = "room_list"
	MessageTypeError       MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
