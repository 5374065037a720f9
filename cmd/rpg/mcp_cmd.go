package main

import (
	"github.com/spf13/cobra"

	"github.com/viant/rpg/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the Repository Planning Graph over the Model Context Protocol (stdio)",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	server := mcp.New(projectRoot, logger)
	return server.Serve(cmd.Context())
}
