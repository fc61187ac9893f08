// ABOUTME: MCP resource implementations for the fitness tracker.
// ABOUTME: Provides fitness://workouts and fitness://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	workoutsURI = "fitness://workouts"
	summaryURI  = "fitness://summary"
)

func (s *Server) registerResources() {
	// fitness://workouts - every workout, shortest first
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         workoutsURI,
		Name:        "Workouts by Duration",
		Description: "All workouts sorted by ascending duration",
		MIMEType:    "application/json",
	}, s.handleWorkoutsResource)

	// fitness://summary - counts, calories, and the shortest workout of each type
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Fitness Summary",
		Description: "Workout and exercise counts, total calories, and shortest workout per type",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.workouts.GetAllWorkoutsSortedByDuration()
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	return jsonResource(workoutsURI, map[string]any{
		"workouts": newWorkoutViews(workouts),
		"count":    len(workouts),
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.workouts.GetAllWorkouts()
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	var (
		totalCalories float64
		exerciseCount int
	)
	minutesByType := make(map[string]int)
	for _, w := range workouts {
		totalCalories += w.CalculateCalories()
		minutesByType[w.WorkoutType()] += w.DurationMinutes

		exercises, err := s.exercises.GetExercisesByWorkout(w.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list exercises: %w", err)
		}
		exerciseCount += len(exercises)
	}

	shortest := make(map[string]any)
	for _, kind := range models.Kinds() {
		w, err := s.workouts.GetShortestOfKind(kind)
		switch {
		case errors.Is(err, models.ErrResourceNotFound):
			continue
		case err != nil:
			return nil, fmt.Errorf("failed to find shortest %s workout: %w", strings.ToLower(kind.Label()), err)
		}
		shortest[kind.Label()] = newWorkoutView(w)
	}

	return jsonResource(summaryURI, map[string]any{
		"generated_at":    time.Now().Format(time.RFC3339),
		"workout_count":   len(workouts),
		"exercise_count":  exerciseCount,
		"total_calories":  totalCalories,
		"minutes_by_type": minutesByType,
		"shortest":        shortest,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
