package main

import (
	"fmt"

	"github.com/lox/blackjack/internal/client"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/server"
)

// InitConfigCmd writes the default configuration files
type InitConfigCmd struct {
	ServerFile string `kong:"default='blackjack-server.hcl',help='Server config path'"`
	ClientFile string `kong:"default='blackjack-client.hcl',help='Client config path'"`
	Force      bool   `kong:"help='Overwrite existing files'"`
}

func (c *InitConfigCmd) Run() error {
	files := []struct {
		path string
		data []byte
	}{
		{c.ServerFile, server.DefaultConfig().Encode()},
		{c.ClientFile, client.DefaultClientConfig().Encode()},
	}

	for _, f := range files {
		if err := fileutil.WriteNew(f.path, f.data, 0o644, c.Force); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("Wrote %s\n", f.path)
	}
	return nil
}
