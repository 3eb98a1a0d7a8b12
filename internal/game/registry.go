package game

import (
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

// Registry owns every live room. Rooms are created on first join and
// dropped as soon as their last player leaves, so the registry never holds
// an empty room.
type Registry struct {
	mu     sync.Mutex
	rooms  map[string]*Room
	opts   options
	logger *log.Logger
}

// NewRegistry creates an empty registry. The options are applied to every
// room it creates.
func NewRegistry(opts ...Option) *Registry {
	o := resolveOptions(opts)
	return &Registry{
		rooms:  make(map[string]*Room),
		opts:   o,
		logger: o.logger.WithPrefix("registry"),
	}
}

// Bus returns the event bus every room publishes to
func (g *Registry) Bus() EventBus {
	return g.opts.bus
}

// Config returns the table rules applied to new rooms
func (g *Registry) Config() Config {
	return g.opts.config
}

// Get returns a live room
func (g *Registry) Get(roomID string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[roomID]
	return room, ok
}

// GetOrCreate returns the named room, registering a new empty one if needed.
// Callers that do not seat anyone must follow up with ReleaseIfEmpty; Join
// and Leave do both steps atomically.
func (g *Registry) GetOrCreate(roomID string) (*Room, error) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return nil, ErrInvalidRoomID
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if room, ok := g.rooms[roomID]; ok {
		return room, nil
	}
	room := newRoom(roomID, g.opts)
	g.rooms[roomID] = room
	g.logger.Info("Room created", "room", roomID, "rooms", len(g.rooms))
	return room, nil
}

// Join seats the player in the named room, creating the room if needed. A
// room created for a join that fails is discarded.
func (g *Registry) Join(roomID, playerID, name string) (*Room, error) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return nil, ErrInvalidRoomID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	room, exists := g.rooms[roomID]
	if !exists {
		room = newRoom(roomID, g.opts)
	}
	if err := room.AddPlayer(playerID, name); err != nil {
		if !exists {
			room.Close()
		}
		return nil, err
	}
	if !exists {
		g.rooms[roomID] = room
		g.logger.Info("Room created", "room", roomID, "rooms", len(g.rooms))
	}
	return room, nil
}

// Leave removes the player from the room and drops the room if it is now
// empty. It reports whether the player was found.
func (g *Registry) Leave(roomID, playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms[roomID]
	if !ok {
		return false
	}
	removed := room.RemovePlayer(playerID)
	g.releaseIfEmptyLocked(room)
	return removed
}

// ReleaseIfEmpty drops the room if nobody is seated in it
func (g *Registry) ReleaseIfEmpty(roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if room, ok := g.rooms[roomID]; ok {
		g.releaseIfEmptyLocked(room)
	}
}

func (g *Registry) releaseIfEmptyLocked(room *Room) {
	if room.PlayerCount() > 0 {
		return
	}
	room.Close()
	delete(g.rooms, room.ID())
	g.logger.Info("Room released", "room", room.ID(), "rooms", len(g.rooms))
}

// Count returns the number of live rooms
func (g *Registry) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}

// List returns a summary of every live room ordered by id
func (g *Registry) List() []Summary {
	g.mu.Lock()
	rooms := lo.Values(g.rooms)
	g.mu.Unlock()

	summaries := lo.Map(rooms, func(r *Room, _ int) Summary { return r.Summary() })
	slices.SortFunc(summaries, func(a, b Summary) int { return strings.Compare(a.ID, b.ID) })
	return summaries
}

// CloseAll closes and forgets every room
func (g *Registry) CloseAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, room := range g.rooms {
		room.Close()
		delete(g.rooms, id)
	}
}
