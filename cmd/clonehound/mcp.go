package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/clonehound/clonehound/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run a Model Context Protocol server over stdio",
		Action: func(c *cli.Context) error {
			srv := mcpserver.NewServer(version)
			if err := srv.Run(c.Context); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}
}
