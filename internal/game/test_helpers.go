package game

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/roundid"
)

// TestRoomOption configures test room creation
type TestRoomOption func(*testRoomBuilder)

type testRoomBuilder struct {
	config  Config
	cards   string
	clock   quartz.Clock
	bus     EventBus
	players []string
}

// WithCards scripts the deal using compact notation, e.g. "AhKs9d"
func WithCards(cards string) TestRoomOption {
	return func(b *testRoomBuilder) { b.cards = cards }
}

// WithMaxPlayers sets the seat limit
func WithMaxPlayers(n int) TestRoomOption {
	return func(b *testRoomBuilder) { b.config.MaxPlayers = n }
}

// WithTurnTimeout enables the turn timer
func WithTurnTimeout(d time.Duration) TestRoomOption {
	return func(b *testRoomBuilder) { b.config.TurnTimeout = d }
}

// WithTestClock sets the room clock
func WithTestClock(c quartz.Clock) TestRoomOption {
	return func(b *testRoomBuilder) { b.clock = c }
}

// WithTestBus sets the room event bus
func WithTestBus(bus EventBus) TestRoomOption {
	return func(b *testRoomBuilder) { b.bus = bus }
}

// WithPlayers seats players named p1..pN with the given display names
func WithPlayers(names ...string) TestRoomOption {
	return func(b *testRoomBuilder) { b.players = names }
}

// NewTestRoom creates a room with scripted cards and seated players. Player
// ids are "p1", "p2", ... in seating order. Once the scripted cards run out
// every draw is the Two of Clubs.
func NewTestRoom(opts ...TestRoomOption) *Room {
	b := &testRoomBuilder{config: DefaultConfig(), bus: NewEventBus()}
	for _, opt := range opts {
		opt(b)
	}

	source := deck.NewStacked(deck.MustParseCards(b.cards), nil)
	roomOpts := []Option{
		WithConfig(b.config),
		WithLogger(log.NewWithOptions(io.Discard, log.Options{})),
		WithEventBus(b.bus),
		WithDrawSource(func(string) deck.DrawSource { return source }),
		WithRoundIDs(roundid.Sequence("round")),
	}
	if b.clock != nil {
		roomOpts = append(roomOpts, WithClock(b.clock))
	}

	room := NewRoom("test", roomOpts...)
	for i, name := range b.players {
		if err := room.AddPlayer(playerID(i), name); err != nil {
			panic(err)
		}
	}
	return room
}

func playerID(i int) string {
	return fmt.Sprintf("p%d", i+1)
}

// EventRecorder collects published events for assertions
type EventRecorder struct {
	mu     sync.Mutex
	events []Event
}

// OnEvent implements EventSubscriber
func (r *EventRecorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far
func (r *EventRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []EventType {
	events := r.Events()
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.EventType()
	}
	return types
}

// Reset drops everything recorded so far
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
