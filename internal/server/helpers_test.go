package server

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// testLogger creates a logger that discards output for tests
func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

type testEnv struct {
	registry *game.Registry
	server   *Server
	http     *httptest.Server
}

// newTestEnv starts a gateway whose rooms deal the Two of Clubs forever
func newTestEnv(t *testing.T, cfg game.Config, opts ...Option) *testEnv {
	t.Helper()

	reg := game.NewRegistry(
		game.WithConfig(cfg),
		game.WithLogger(testLogger()),
		game.WithDrawSource(func(string) deck.DrawSource { return deck.NewStacked(nil, nil) }),
	)
	srv := NewServer(reg, testLogger(), opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Stop()
		ts.Close()
	})
	return &testEnv{registry: reg, server: srv, http: ts}
}

func (e *testEnv) wsURL() string {
	return "ws" + strings.TrimPrefix(e.http.URL, "http") + "/ws"
}

func (e *testEnv) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(e.wsURL(), nil)
	require.NoError(t, err, "failed to dial %s", e.wsURL())
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType MessageType, data any) {
	t.Helper()

	msg, err := NewMessage(msgType, data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func readMessage(t *testing.T, conn *websocket.Conn) *Message {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return &msg
}

// readUntil reads messages until one matches, returning it along with the
// messages skipped on the way
func readUntil(t *testing.T, conn *websocket.Conn, match func(*Message) bool) (*Message, []*Message) {
	t.Helper()

	var skipped []*Message
	for range 50 {
		msg := readMessage(t, conn)
		if match(msg) {
			return msg, skipped
		}
		skipped = append(skipped, msg)
	}
	t.Fatalf("no matching message after %d reads", len(skipped))
	return nil, nil
}

func ofType(mt MessageType) func(*Message) bool {
	return func(m *Message) bool { return m.Type == mt }
}

func gameMessage(et game.EventType) func(*Message) bool {
	return func(m *Message) bool {
		if m.Type != MessageTypeGameMessage {
			return false
		}
		var data GameMessageData
		return m.Decode(&data) == nil && data.Type == et
	}
}

func snapshotWhere(pred func(game.Snapshot) bool) func(*Message) bool {
	return func(m *Message) bool {
		if m.Type != MessageTypeRoomState {
			return false
		}
		var snap game.Snapshot
		return m.Decode(&snap) == nil && pred(snap)
	}
}

func joinRoom(t *testing.T, conn *websocket.Conn, roomID, name string) string {
	t.Helper()

	send(t, conn, MessageTypeJoinRoom, JoinRoomData{RoomID: roomID, PlayerName: name})
	msg, _ := readUntil(t, conn, ofType(MessageTypeRoomJoined))
	var data RoomJoinedData
	require.NoError(t, msg.Decode(&data))
	require.Equal(t, roomID, data.RoomID)
	require.NotEmpty(t, data.PlayerID)
	return data.PlayerID
}

func expectError(t *testing.T, conn *websocket.Conn, code string) ErrorData {
	t.Helper()

	msg, _ := readUntil(t, conn, ofType(MessageTypeError))
	var data ErrorData
	require.NoError(t, msg.Decode(&data))
	require.Equal(t, code, data.Code, data.Message)
	return data
}
