package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/server"
)

// ServerCmd runs the room server. Flags override the config file.
type ServerCmd struct {
	Config      string         `kong:"default='blackjack-server.hcl',help='Path to HCL config file'"`
	Addr        string         `kong:"help='Listen address (host or host:port), overrides server.address'"`
	Port        int            `kong:"help='Listen port, overrides server.port'"`
	LogLevel    string         `kong:"help='Log level (debug, info, warn, error)'"`
	Seed        *int64         `kong:"help='Deterministic seed for every room (optional)'"`
	TurnTimeout *time.Duration `kong:"help='Stand idle players after this long (0 disables)'"`
	Draw        string         `kong:"help='Card source: random or shoe'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := setupLogger(os.Stderr, cfg.Server.LogLevel, cfg.Server.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	rules := cfg.GameConfig()
	registry := game.NewRegistry(
		game.WithConfig(rules),
		game.WithLogger(logger),
		game.WithDrawSource(cfg.DrawSources()),
	)
	srv := server.NewServer(registry, logger, server.WithAllowedOrigins(cfg.Server.AllowedOrigins))

	logger.Info("Starting blackjack server",
		"address", cfg.GetServerAddress(),
		"max_players", rules.MaxPlayers,
		"starting_balance", rules.StartingBalance,
		"default_bet", rules.DefaultBet,
		"turn_timeout", rules.TurnTimeout,
		"draw", cfg.Room.Draw,
		"seeded", cfg.Room.Seed != 0)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return srv.Run(ctx, cfg.GetServerAddress())
}

func (c *ServerCmd) applyOverrides(cfg *server.Config) {
	if c.Addr != "" {
		host, port, ok := splitAddr(c.Addr)
		cfg.Server.Address = host
		if ok {
			cfg.Server.Port = port
		}
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if c.Seed != nil {
		cfg.Room.Seed = *c.Seed
	}
	if c.TurnTimeout != nil {
		cfg.Room.TurnTimeout = c.TurnTimeout.String()
	}
	if c.Draw != "" {
		cfg.Room.Draw = c.Draw
	}
}

// splitAddr accepts "host", "host:port" or ":port"
func splitAddr(addr string) (string, int, bool) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 0, false
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 0, false
	}
	return host, port, true
}
