// ABOUTME: MCP server setup for the fitness tracker.
// ABOUTME: Wraps the MCP server around the workout and exercise services.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/fitness/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with service access.
type Server struct {
	mcpServer *mcp.Server
	workouts  *service.WorkoutService
	exercises *service.ExerciseService
}

// NewServer creates a new MCP server backed by the given services.
func NewServer(workouts *service.WorkoutService, exercises *service.ExerciseService) (*Server, error) {
	if workouts == nil || exercises == nil {
		return nil, errors.New("mcp server requires workout and exercise services")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitness",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		workouts:  workouts,
		exercises: exercises,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
