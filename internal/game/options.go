package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/roundid"
)

// DealerStandsOn is the total at which the dealer stops drawing
const DealerStandsOn = 17

// Config holds the table rules shared by every room
type Config struct {
	MaxPlayers      int
	StartingBalance int
	DefaultBet      int

	// TurnTimeout stands the current player when they take longer than
	// this to act. Zero disables the timer and lets an idle player stall
	// the round.
	TurnTimeout time.Duration
}

// DefaultConfig returns the standard table rules
func DefaultConfig() Config {
	return Config{
		MaxPlayers:      6,
		StartingBalance: 1000,
		DefaultBet:      10,
	}
}

type options struct {
	config   Config
	logger   *log.Logger
	clock    quartz.Clock
	bus      EventBus
	draws    func(roomID string) deck.DrawSource
	roundIDs func() string
}

// Option configures a Room or a Registry
type Option func(*options)

// WithConfig sets the table rules
func WithConfig(cfg Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithLogger sets the parent logger
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock sets the clock used for timestamps and turn timers
func WithClock(clock quartz.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithEventBus sets the bus rooms publish to
func WithEventBus(bus EventBus) Option {
	return func(o *options) { o.bus = bus }
}

// WithDrawSource sets the factory that gives each new room its card source
func WithDrawSource(factory func(roomID string) deck.DrawSource) Option {
	return func(o *options) { o.draws = factory }
}

// WithRoundIDs overrides round id generation
func WithRoundIDs(next func() string) Option {
	return func(o *options) { o.roundIDs = next }
}

func resolveOptions(opts []Option) options {
	o := options{
		config:   DefaultConfig(),
		logger:   log.New(io.Discard),
		clock:    quartz.NewReal(),
		bus:      NewEventBus(),
		draws:    func(string) deck.DrawSource { return deck.NewRandom(nil) },
		roundIDs: roundid.New,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.config.MaxPlayers <= 0 {
		o.config.MaxPlayers = DefaultConfig().MaxPlayers
	}
	return o
}
