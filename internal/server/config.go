package server

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

// Draw source names accepted in the room block
const (
	DrawRandom = "random"
	DrawShoe   = "shoe"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Room   *RoomSettings  `hcl:"room,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address        string   `hcl:"address,optional"`
	Port           int      `hcl:"port,optional"`
	LogLevel       string   `hcl:"log_level,optional"`
	LogFile        string   `hcl:"log_file,optional"`
	AllowedOrigins []string `hcl:"allowed_origins,optional"`
}

// RoomSettings are the table rules applied to every room
type RoomSettings struct {
	MaxPlayers      int    `hcl:"max_players,optional"`
	StartingBalance int    `hcl:"starting_balance,optional"`
	DefaultBet      int    `hcl:"default_bet,optional"`
	TurnTimeout     string `hcl:"turn_timeout,optional"`
	Draw            string `hcl:"draw,optional"`
	ShoeDecks       int    `hcl:"shoe_decks,optional"`
	Seed            int64  `hcl:"seed,optional"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	rules := game.DefaultConfig()
	return &Config{
		Server: ServerSettings{
			Address:        "localhost",
			Port:           8080,
			LogLevel:       "info",
			AllowedOrigins: []string{"*"},
		},
		Room: &RoomSettings{
			MaxPlayers:      rules.MaxPlayers,
			StartingBalance: rules.StartingBalance,
			DefaultBet:      rules.DefaultBet,
			TurnTimeout:     "0s",
			Draw:            DrawRandom,
			ShoeDecks:       6,
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills in missing values
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = def.Server.LogLevel
	}
	if c.Server.AllowedOrigins == nil {
		c.Server.AllowedOrigins = def.Server.AllowedOrigins
	}

	if c.Room == nil {
		c.Room = def.Room
		return
	}
	if c.Room.MaxPlayers == 0 {
		c.Room.MaxPlayers = def.Room.MaxPlayers
	}
	if c.Room.StartingBalance == 0 {
		c.Room.StartingBalance = def.Room.StartingBalance
	}
	if c.Room.DefaultBet == 0 {
		c.Room.DefaultBet = def.Room.DefaultBet
	}
	if c.Room.TurnTimeout == "" {
		c.Room.TurnTimeout = def.Room.TurnTimeout
	}
	if c.Room.Draw == "" {
		c.Room.Draw = def.Room.Draw
	}
	if c.Room.ShoeDecks == 0 {
		c.Room.ShoeDecks = def.Room.ShoeDecks
	}
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Server.LogLevel, err)
	}

	if c.Room == nil {
		return fmt.Errorf("room settings missing")
	}
	room := c.Room
	if room.MaxPlayers < 1 {
		return fmt.Errorf("room: max players must be at least 1")
	}
	if room.StartingBalance < 0 {
		return fmt.Errorf("room: starting balance must not be negative")
	}
	if room.DefaultBet < 0 {
		return fmt.Errorf("room: default bet must not be negative")
	}
	timeout, err := time.ParseDuration(room.TurnTimeout)
	if err != nil {
		return fmt.Errorf("room: invalid turn timeout %q: %w", room.TurnTimeout, err)
	}
	if timeout < 0 {
		return fmt.Errorf("room: turn timeout must not be negative")
	}
	switch room.Draw {
	case DrawRandom:
	case DrawShoe:
		if room.ShoeDecks < 1 || room.ShoeDecks > 8 {
			return fmt.Errorf("room: shoe decks must be between 1 and 8")
		}
	default:
		return fmt.Errorf("room: invalid draw source %q (want %q or %q)", room.Draw, DrawRandom, DrawShoe)
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GameConfig returns the table rules for the room registry. Call Validate
// first; an unparseable turn timeout disables the timer.
func (c *Config) GameConfig() game.Config {
	timeout, _ := time.ParseDuration(c.Room.TurnTimeout)
	return game.Config{
		MaxPlayers:      c.Room.MaxPlayers,
		StartingBalance: c.Room.StartingBalance,
		DefaultBet:      c.Room.DefaultBet,
		TurnTimeout:     timeout,
	}
}

// DrawSources returns the factory that gives each new room its card source.
// With a non-zero seed every room's sequence is derived from the seed and
// the room id, so a session can be replayed.
func (c *Config) DrawSources() func(roomID string) deck.DrawSource {
	room := *c.Room
	return func(roomID string) deck.DrawSource {
		rng := randutil.Now()
		if room.Seed != 0 {
			rng = randutil.ForKey(room.Seed, roomID)
		}

		if room.Draw == DrawShoe {
			return deck.NewDeck(room.ShoeDecks, rng)
		}
		return deck.NewRandom(rng)
	}
}

// Encode renders the configuration as HCL
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}
