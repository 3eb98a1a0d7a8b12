package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/server"
)

// Session is an interactive line-mode game: it prints what happens in the
// room and turns typed commands into client requests.
type Session struct {
	client       *Client
	renderer     *Renderer
	styles       Styles
	logger       *log.Logger
	playerName   string
	showTimeouts bool

	mu       sync.Mutex
	out      io.Writer
	snapshot *game.Snapshot
}

// NewSession wires a session to a connected client
func NewSession(c *Client, cfg *ClientConfig, out io.Writer, logger *log.Logger) *Session {
	styles := NewStyles(out, cfg.UI.Color)
	s := &Session{
		client:       c,
		renderer:     NewRenderer(styles),
		styles:       styles,
		logger:       logger.WithPrefix("session"),
		playerName:   cfg.Player.Name,
		showTimeouts: cfg.UI.ShowTimeouts,
		out:          out,
	}

	c.AddEventHandler(server.MessageTypeRoomState, s.onRoomState)
	c.AddEventHandler(server.MessageTypeGameMessage, s.onGameMessage)
	c.AddEventHandler(server.MessageTypeRoomJoined, s.onRoomJoined)
	c.AddEventHandler(server.MessageTypeRoomLeft, s.onRoomLeft)
	c.AddEventHandler(server.MessageTypeRoomList, s.onRoomList)
	c.AddEventHandler(server.MessageTypeError, s.onError)
	return s
}

// Run reads commands from in until quit, EOF, ctx cancellation or the
// connection dropping
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.client.Done():
			return fmt.Errorf("connection closed")
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if line == "" {
				continue
			}
			quit, err := s.Execute(line)
			if err != nil {
				s.printf("%s\n", s.styles.Error.Render(err.Error()))
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute runs a single command line. It reports whether the session
// should end.
func (s *Session) Execute(line string) (bool, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return false, err
	}

	switch cmd.Kind {
	case CommandHit:
		return false, s.client.Act(game.Hit)
	case CommandStand:
		return false, s.client.Act(game.Stand)
	case CommandDouble:
		return false, s.client.Act(game.DoubleDown)
	case CommandBet:
		return false, s.client.PlaceBet(cmd.Amount)
	case CommandStart:
		return false, s.client.StartRound()
	case CommandLeave:
		return false, s.client.LeaveRoom()
	case CommandJoin:
		return false, s.client.JoinRoom(cmd.Room, s.playerName)
	case CommandRooms:
		return false, s.client.ListRooms()
	case CommandTable:
		s.mu.Lock()
		snap := s.snapshot
		s.mu.Unlock()
		if snap == nil {
			return false, fmt.Errorf("not in a room")
		}
		s.printf("%s", s.renderer.RenderSnapshot(*snap, s.client.GetPlayerID()))
		return false, nil
	case CommandHelp:
		s.printf("%s\n", HelpText)
		return false, nil
	case CommandQuit:
		if s.client.GetRoomID() != "" {
			_ = s.client.LeaveRoom()
		}
		return true, nil
	}
	return false, nil
}

func (s *Session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func (s *Session) formatter() *game.EventFormatter {
	return game.NewEventFormatter(game.FormattingOptions{
		ShowTimeouts: s.showTimeouts,
		Perspective:  s.client.GetPlayerID(),
	})
}

func (s *Session) nameOf(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot != nil {
		if p, ok := s.snapshot.Player(id); ok {
			return p.Name
		}
	}
	return ""
}

func (s *Session) onRoomState(msg *server.Message) {
	var snap game.Snapshot
	if err := msg.Decode(&snap); err != nil {
		s.logger.Warn("Malformed room_state message", "error", err)
		return
	}

	s.mu.Lock()
	if s.snapshot != nil && s.snapshot.RoomID == snap.RoomID && snap.Version <= s.snapshot.Version {
		s.mu.Unlock()
		s.logger.Debug("Dropping stale snapshot", "version", snap.Version)
		return
	}
	prev := s.snapshot
	s.snapshot = &snap
	s.mu.Unlock()

	// Redraw when the round moves on; bets and joins are reported as text
	if snap.GameState != nil && (prev == nil || prev.GameState == nil || turnChanged(*prev.GameState, *snap.GameState)) {
		s.printf("%s", s.renderer.RenderSnapshot(snap, s.client.GetPlayerID()))
	}
}

func turnChanged(prev, next game.GameStateView) bool {
	return prev.RoundID != next.RoundID ||
		prev.Phase != next.Phase ||
		prev.CurrentPlayerID != next.CurrentPlayerID ||
		len(prev.Players) != len(next.Players) ||
		handSize(prev) != handSize(next)
}

func handSize(gs game.GameStateView) int {
	n := len(gs.DealerHand.Cards)
	for _, p := range gs.Players {
		n += len(p.Hand.Cards)
	}
	return n
}

func (s *Session) onGameMessage(msg *server.Message) {
	var data server.GameMessageData
	if err := msg.Decode(&data); err != nil {
		s.logger.Warn("Malformed game_message", "error", err)
		return
	}

	f := s.formatter()
	var line string
	switch data.Type {
	case game.EventTypePlayerJoined:
		var p server.PlayerJoinedPayload
		if json.Unmarshal(data.Payload, &p) == nil {
			line = f.FormatPlayerJoined(p.Player)
		}
	case game.EventTypePlayerLeft:
		var p server.PlayerLeftPayload
		if json.Unmarshal(data.Payload, &p) == nil {
			line = f.FormatPlayerLeft(p.PlayerID, p.Name)
		}
	case game.EventTypePlayerAction:
		var p server.PlayerActionPayload
		if json.Unmarshal(data.Payload, &p) == nil {
			line = f.FormatPlayerAction(p.PlayerID, s.nameOf(p.PlayerID), p.Action)
		}
	case game.EventTypeGameStarted:
		var state game.GameStateView
		if json.Unmarshal(data.Payload, &state) == nil {
			line = f.FormatRoundStart(state)
		}
	case game.EventTypeRoundEnded:
		var state game.GameStateView
		if json.Unmarshal(data.Payload, &state) == nil {
			line = s.styles.Success.Render(f.FormatRoundEnd(state))
		}
	default:
		s.logger.Debug("Unhandled game message", "type", data.Type)
		return
	}

	if line == "" {
		s.logger.Warn("Malformed game_message payload", "type", data.Type)
		return
	}
	s.printf("%s\n", line)
}

func (s *Session) onRoomJoined(msg *server.Message) {
	var data server.RoomJoinedData
	if err := msg.Decode(&data); err != nil {
		return
	}
	s.printf("%s\n", s.styles.Success.Render(fmt.Sprintf("Joined room %s as %s", data.RoomID, s.playerName)))
}

func (s *Session) onRoomLeft(msg *server.Message) {
	var data server.RoomLeftData
	if err := msg.Decode(&data); err != nil {
		return
	}
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
	s.printf("%s\n", s.styles.Info.Render("Left room "+data.RoomID))
}

func (s *Session) onRoomList(msg *server.Message) {
	var data server.RoomListData
	if err := msg.Decode(&data); err != nil {
		return
	}
	s.printf("%s", s.renderer.RenderRooms(data.Rooms))
}

func (s *Session) onError(msg *server.Message) {
	var data server.ErrorData
	if err := msg.Decode(&data); err != nil {
		return
	}
	s.printf("%s\n", s.styles.Warning.Render(fmt.Sprintf("%s: %s", data.Code, data.Message)))
}
