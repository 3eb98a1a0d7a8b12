package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lox/blackjack/internal/client"
)

// ClientCmd connects an interactive line-mode player
type ClientCmd struct {
	Config   string `kong:"default='blackjack-client.hcl',help='Path to HCL config file'"`
	Server   string `kong:"help='Server URL, overrides server.url'"`
	Name     string `kong:"help='Display name (defaults to $USER or \"Player\")'"`
	Room     string `kong:"help='Room to join, overrides player.room'"`
	LogLevel string `kong:"help='Log level (debug, info, warn, error)'"`
	LogFile  string `kong:"help='Log file, overrides ui.log_file'"`
	Color    string `kong:"help='Color output: auto, always or never'"`
}

func (c *ClientCmd) Run() error {
	cfg, err := client.LoadClientConfig(c.Config)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := setupLogger(os.Stderr, cfg.UI.LogLevel, cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext(logger)
	defer cancel()

	bj := client.NewClient(cfg.Server.URL, logger)
	connectCtx, cancelConnect := context.WithTimeout(ctx, time.Duration(cfg.Server.ConnectTimeout)*time.Second)
	defer cancelConnect()
	if err := bj.Connect(connectCtx); err != nil {
		return err
	}
	defer func() { _ = bj.Disconnect() }()

	session := client.NewSession(bj, cfg, os.Stdout, logger)
	fmt.Fprintf(os.Stdout, "Connected to %s. Type help for commands.\n", cfg.Server.URL)
	if err := bj.JoinRoom(cfg.Player.Room, cfg.Player.Name); err != nil {
		return err
	}
	return session.Run(ctx, os.Stdin)
}

func (c *ClientCmd) applyOverrides(cfg *client.ClientConfig) {
	if s := strings.TrimSpace(c.Server); s != "" {
		cfg.Server.URL = s
	}
	if s := strings.TrimSpace(c.Name); s != "" {
		cfg.Player.Name = s
	}
	if cfg.Player.Name == "" {
		cfg.Player.Name = defaultPlayerName()
	}
	if s := strings.TrimSpace(c.Room); s != "" {
		cfg.Player.Room = s
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if c.Color != "" {
		cfg.UI.Color = c.Color
	}
}

func defaultPlayerName() string {
	if user := strings.TrimSpace(os.Getenv("USER")); user != "" {
		return user
	}
	return "Player"
}
