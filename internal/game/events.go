package game

import (
	"slices"
	"sync"
	"time"
)

// Event is anything a room publishes after an accepted mutation
type Event interface {
	EventType() EventType
	RoomID() string
	// Recipients lists the player ids that should receive the event
	Recipients() []string
	Timestamp() time.Time
}

type eventBase struct {
	room       string
	recipients []string
	timestamp  time.Time
}

func (e eventBase) RoomID() string { return e.room }
func (e eventBase) Recipients() []string { return e.recipients }
func (e eventBase) Timestamp() time.Time { return e.timestamp }

// RoomStateEvent carries the full snapshot after every accepted mutation
type RoomStateEvent struct {
	eventBase
	Snapshot Snapshot
}

func (e RoomStateEvent) EventType() EventType { return EventTypeRoomState }

// PlayerJoinedEvent is published to everyone except the joining player
type PlayerJoinedEvent struct {
	eventBase
	Player PlayerView
}

func (e PlayerJoinedEvent) EventType() EventType { return EventTypePlayerJoined }

// PlayerLeftEvent is published to the players that remain
type PlayerLeftEvent struct {
	eventBase
	PlayerID string
	Name     string
}

func (e PlayerLeftEvent) EventType() EventType { return EventTypePlayerLeft }

// GameStartedEvent is published when a round is dealt
type GameStartedEvent struct {
	eventBase
	State GameStateView
}

func (e GameStartedEvent) EventType() EventType { return EventTypeGameStarted }

// PlayerActionEvent is published for every accepted action, including turn
// timeouts
type PlayerActionEvent struct {
	eventBase
	PlayerID string
	Action   Action
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }

// RoundEndedEvent is published once the dealer has played and bets are
// settled
type RoundEndedEvent struct {
	eventBase
	State GameStateView
}

func (e RoundEndedEvent) EventType() EventType { return EventTypeRoundEnded }

// EventSubscriber can subscribe to room events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(Event)

// OnEvent calls f(event)
func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is an in-memory bus that delivers synchronously on the
// publisher's goroutine. It is safe for concurrent use.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Subscribers must be
// comparable; SubscriberFunc values cannot be unsubscribed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			// Copy so a concurrent Publish keeps iterating its own slice
			bus.subscribers = slices.Concat(bus.subscribers[:i], bus.subscribers[i+1:])
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.RLock()
	subs := bus.subscribers
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}
