// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server over the clinic records.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/harperreed/vetclinic/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Deleting records is only possible
from the interactive menu, where every delete is confirmed.

AVAILABLE TOOLS:

  list_owners      List registered owners
  list_pets        List pets, optionally for one owner
  get_pet          Get a pet with its clinical history
  register_owner   Register an owner (or return the existing one)
  register_pet     Register a pet for an existing owner
  register_visit   Record a visit
  update_owner     Change owner details
  update_pet       Change pet details or owner
  update_visit     Change visit details

AVAILABLE RESOURCES:

  clinic://summary   Record counts and each owner's pets
  clinic://records   Full owner, pet, and visit tree`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(db, logs.Logger, version)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
