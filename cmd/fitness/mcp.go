// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitness/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and uses the configured backend.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fitness": {
        "command": "fitness",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  create_workout     Create a cardio or strength workout
  list_workouts      List workouts, optionally shortest first
  get_workout        Get a workout by ID
  update_workout     Change a workout's name or duration
  delete_workout     Delete a workout and its exercises
  shortest_workout   Shortest workout of a type
  add_exercise       Add an exercise to a workout
  update_exercise    Change an exercise's name, sets, or reps
  get_exercise       Get an exercise by ID
  list_exercises     List the exercises of a workout
  delete_exercise    Delete an exercise

AVAILABLE RESOURCES:

  fitness://workouts   All workouts, shortest first
  fitness://summary    Counts, calories, and shortest per type`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(workoutSvc, exerciseSvc)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		logger.Info("starting MCP server on stdio")
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
