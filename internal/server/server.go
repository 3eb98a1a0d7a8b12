package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/game"
)

// shutdownTimeout bounds how long Run waits for in-flight requests
const shutdownTimeout = 5 * time.Second

// Server is the WebSocket gateway in front of the room registry. It turns
// client messages into room operations and fans room events out to the
// connections of their recipients.
type Server struct {
	registry       *game.Registry
	upgrader       websocket.Upgrader
	allowedOrigins []string
	connections    map[string]*Connection
	logger         *log.Logger
	clock          quartz.Clock
	mu             sync.RWMutex
}

// Option configures a Server
type Option func(*Server)

// WithClock sets the clock used for health timestamps
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithAllowedOrigins restricts which browser origins may open a WebSocket.
// An empty list or "*" allows every origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// NewServer creates a gateway for the registry and subscribes it to the
// registry's event bus
func NewServer(registry *game.Registry, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		registry:    registry,
		connections: make(map[string]*Connection),
		logger:      logger.WithPrefix("server"),
		clock:       quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin:     s.checkOrigin,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	registry.Bus().Subscribe(s)
	return s
}

// Handler returns the HTTP routes served by the gateway
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /rooms", s.handleRooms)
	return mux
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully and
// closes every connection and room
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		s.Stop()
		return err
	})
	return g.Wait()
}

// Stop closes every connection and room
func (s *Server) Stop() {
	s.mu.RLock()
	conns := make([]*Connection, 0, len(s.connections))
	for _, conn := range s.connections {
		conns = append(conns, conn)
	}
	s.mu.RUnlock()

	for _, conn := range conns {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.registry.CloseAll()
}

// ConnectionCount returns the number of open connections
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

// OnEvent delivers a room event to the connections of its recipients. It
// only queues messages and never blocks the publishing room.
func (s *Server) OnEvent(event game.Event) {
	recipients := event.Recipients()
	if len(recipients) == 0 {
		return
	}

	msg, err := MessageFromEvent(event)
	if err != nil {
		s.logger.Error("Failed to create message for event", "type", event.EventType(), "error", err)
		return
	}

	s.mu.RLock()
	targets := make([]*Connection, 0, len(recipients))
	for _, id := range recipients {
		if conn, ok := s.connections[id]; ok {
			targets = append(targets, conn)
		}
	}
	s.mu.RUnlock()

	for _, conn := range targets {
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Debug("Failed to send message to client", "conn", conn.ID(), "error", err)
		}
	}

	s.logger.Debug("Broadcasted event to room", "room", event.RoomID(), "type", event.EventType(), "recipients", len(targets))
}

func (s *Server) register(conn *Connection) {
	s.mu.Lock()
	s.connections[conn.ID()] = conn
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "conn", conn.ID(), "total", total)
}

// disconnect is the implicit leave for a closed connection
func (s *Server) disconnect(conn *Connection) {
	if roomID := conn.GetRoom(); roomID != "" {
		s.logger.Info("Cleaning up disconnected player", "conn", conn.ID(), "room", roomID)
		s.registry.Leave(roomID, conn.ID())
		conn.SetRoom("")
	}

	s.mu.Lock()
	delete(s.connections, conn.ID())
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client disconnected", "conn", conn.ID(), "total", total)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s)
	s.register(client)
	client.Start()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.allowedOrigins) == 0 || slices.Contains(s.allowedOrigins, "*") {
		return true
	}
	return slices.Contains(s.allowedOrigins, origin)
}

// handleHealth reports liveness and the number of live rooms
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthData{
		Status:    "ok",
		RoomCount: s.registry.Count(),
		Timestamp: s.clock.Now().UTC(),
	})
}

// handleRooms lists the live rooms
func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, RoomListData{Rooms: s.registry.List()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v) // Ignore write errors for probes
}
