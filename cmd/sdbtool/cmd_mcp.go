package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adeutils/sdbtool/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long: `Run an MCP (Model Context Protocol) server exposing setup database
access to agent tooling. Tools: sdb_describe, sdb_tests, sdb_variables,
sdb_history, sdb_validate, sdb_resolve_paths. Documents are also
readable as setupdb://<path> resources.

The server speaks over stdin/stdout and runs until the client
disconnects or the process receives an interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:     "sdbtool",
				Version:  version,
				Resolver: newResolver(cfg),
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			return server.Run(cmd.Context())
		},
	}
}
