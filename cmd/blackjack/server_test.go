package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/server"
)

func TestSplitAddr(t *testing.T) {
	tests := []struct {
		addr     string
		wantHost string
		wantPort int
		wantOK   bool
	}{
		{"0.0.0.0:9000", "0.0.0.0", 9000, true},
		{":8081", "", 8081, true},
		{"example.com", "example.com", 0, false},
		{"[::1]:7000", "::1", 7000, true},
		{"host:http", "host", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			host, port, ok := splitAddr(tt.addr)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPort, port)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestServerCmdOverrides(t *testing.T) {
	seed := int64(99)
	timeout := 30 * time.Second
	cmd := ServerCmd{
		Addr:        "0.0.0.0:9000",
		LogLevel:    "debug",
		Seed:        &seed,
		TurnTimeout: &timeout,
		Draw:        server.DrawShoe,
	}

	cfg := server.DefaultConfig()
	cmd.applyOverrides(cfg)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, int64(99), cfg.Room.Seed)
	assert.Equal(t, 30*time.Second, cfg.GameConfig().TurnTimeout)
	assert.Equal(t, server.DrawShoe, cfg.Room.Draw)
}

func TestServerCmdPortOverridesAddr(t *testing.T) {
	cmd := ServerCmd{Addr: "127.0.0.1:9000", Port: 9100}
	cfg := server.DefaultConfig()
	cmd.applyOverrides(cfg)
	assert.Equal(t, "127.0.0.1:9100", cfg.GetServerAddress())
}
