package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/game"
)

// Connection represents a WebSocket connection to a client. The connection
// id doubles as the player id inside rooms.
type Connection struct {
	id        string
	conn      *websocket.Conn
	send      chan *Message
	roomID    string
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
	server    *Server
}

// NewConnection creates a new connection wrapper with a fresh id
func NewConnection(conn *websocket.Conn, logger *log.Logger, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()

	return &Connection{
		id:     id,
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn").With("conn", id),
		ctx:    ctx,
		cancel: cancel,
		server: server,
	}
}

// ID returns the connection id
func (c *Connection) ID() string {
	return c.id
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client without blocking. A client
// that cannot keep up is disconnected.
func (c *Connection) SendMessage(msg *Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, this is expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
			err = ErrConnectionClosed
		}
	}()

	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetRoom associates this connection with a room
func (c *Connection) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

// GetRoom returns the associated room id
func (c *Connection) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// readPump handles incoming messages from the client. Messages are handled
// one at a time on this goroutine, and the implicit leave on disconnect runs
// here too so it always follows the last handled message.
func (c *Connection) readPump() {
	defer func() {
		c.server.disconnect(c)
		_ = c.Close() // Ignore close errors during cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "room", c.GetRoom())

	switch msg.Type {
	case MessageTypeJoinRoom:
		var data JoinRoomData
		if err := msg.Decode(&data); err != nil {
			c.sendError(CodeInvalidMessage, "Failed to parse join room data")
			return
		}
		c.handleJoinRoom(data)

	case MessageTypeLeaveRoom:
		c.handleLeaveRoom()

	case MessageTypeStartRound:
		c.withRoom(func(room *game.Room) error {
			return room.StartNewRound()
		})

	case MessageTypePlayerAction:
		var data PlayerActionData
		if err := msg.Decode(&data); err != nil {
			c.sendError(CodeInvalidMessage, "Failed to parse player action data")
			return
		}
		action, err := game.ParseAction(strings.ToLower(strings.TrimSpace(data.Action)))
		if err != nil {
			c.sendError(CodeUnknownAction, err.Error())
			return
		}
		c.withRoom(func(room *game.Room) error {
			return room.HandlePlayerAction(c.id, action)
		})

	case MessageTypePlaceBet:
		var data PlaceBetData
		if err := msg.Decode(&data); err != nil {
			c.sendError(CodeInvalidMessage, "Failed to parse place bet data")
			return
		}
		c.withRoom(func(room *game.Room) error {
			return room.PlaceBet(c.id, data.Amount)
		})

	case MessageTypeListRooms:
		c.reply(MessageTypeRoomList, RoomListData{Rooms: c.server.registry.List()})

	default:
		c.sendError(CodeUnknownMessageType, "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	c.reply(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
}

func (c *Connection) reply(messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	_ = c.SendMessage(msg) // Ignore send errors
}

// withRoom runs op against the connection's room and reports any rejection
// back to this connection only
func (c *Connection) withRoom(op func(room *game.Room) error) {
	roomID := c.GetRoom()
	if roomID == "" {
		c.sendError(CodeNotInRoom, "Join a room first")
		return
	}
	room, ok := c.server.registry.Get(roomID)
	if !ok {
		c.sendError(CodeNotInRoom, fmt.Sprintf("room %s: %s", roomID, game.ErrRoomNotFound))
		return
	}
	if err := op(room); err != nil {
		c.logger.Debug("Operation rejected", "room", roomID, "error", err)
		c.sendError(errorCode(err), err.Error())
	}
}

func (c *Connection) handleJoinRoom(data JoinRoomData) {
	c.logger.Info("Join room request", "room", data.RoomID, "name", data.PlayerName)

	if current := c.GetRoom(); current != "" {
		c.sendError(CodeAlreadyInRoom, "Already in room "+current)
		return
	}

	name := strings.TrimSpace(data.PlayerName)
	if name == "" {
		name = "Player-" + c.id[:8]
	}

	room, err := c.server.registry.Join(data.RoomID, c.id, name)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	c.SetRoom(room.ID())
	c.reply(MessageTypeRoomJoined, RoomJoinedData{RoomID: room.ID(), PlayerID: c.id})
}

func (c *Connection) handleLeaveRoom() {
	roomID := c.GetRoom()
	c.logger.Info("Leave room request", "room", roomID)

	if roomID == "" {
		c.sendError(CodeNotInRoom, "Not in a room")
		return
	}

	c.server.registry.Leave(roomID, c.id)
	c.SetRoom("")
	c.reply(MessageTypeRoomLeft, RoomLeftData{RoomID: roomID})
}
