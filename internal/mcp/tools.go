// ABOUTME: MCP tool implementations for workouts and exercises.
// ABOUTME: Each tool calls one service operation and reports its result or error.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_workout",
		Description: "Create a cardio or strength workout with a unique name",
	}, s.handleCreateWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List all workouts in insertion order, or sorted by ascending duration",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with its calories and exercises",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_workout",
		Description: "Change a workout's name and duration (its type cannot change)",
	}, s.handleUpdateWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout and its exercises",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "shortest_workout",
		Description: "Get the shortest workout of a type (cardio or strength)",
	}, s.handleShortestWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add a sets/reps exercise to an existing workout",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_exercise",
		Description: "Change an exercise's name, sets, and reps",
	}, s.handleUpdateExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_exercise",
		Description: "Get an exercise by ID",
	}, s.handleGetExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List the exercises of a workout",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_exercise",
		Description: "Delete an exercise by ID",
	}, s.handleDeleteExercise)
}

// Tool input/output types

type createWorkoutInput struct {
	Name            string `json:"name" jsonschema:"Unique workout name"`
	DurationMinutes int    `json:"duration_minutes" jsonschema:"Duration in minutes, greater than 0"`
	Type            string `json:"type" jsonschema:"Workout type: cardio or strength"`
}

type listWorkoutsInput struct {
	SortByDuration bool `json:"sort_by_duration,omitempty" jsonschema:"Sort by ascending duration; ties keep insertion order"`
}

type workoutIDInput struct {
	ID int64 `json:"id" jsonschema:"Workout ID"`
}

type updateWorkoutInput struct {
	ID              int64  `json:"id" jsonschema:"Workout ID"`
	Name            string `json:"name" jsonschema:"New workout name"`
	DurationMinutes int    `json:"duration_minutes" jsonschema:"New duration in minutes"`
}

type shortestWorkoutInput struct {
	Type string `json:"type" jsonschema:"Workout type: cardio or strength"`
}

type addExerciseInput struct {
	WorkoutID int64  `json:"workout_id" jsonschema:"ID of the workout the exercise belongs to"`
	Name      string `json:"name" jsonschema:"Exercise name"`
	Sets      int    `json:"sets" jsonschema:"Number of sets, greater than 0"`
	Reps      int    `json:"reps" jsonschema:"Repetitions per set, greater than 0"`
}

type updateExerciseInput struct {
	ID   int64  `json:"id" jsonschema:"Exercise ID"`
	Name string `json:"name" jsonschema:"New exercise name"`
	Sets int    `json:"sets" jsonschema:"New number of sets"`
	Reps int    `json:"reps" jsonschema:"New repetitions per set"`
}

type exerciseIDInput struct {
	ID int64 `json:"id" jsonschema:"Exercise ID"`
}

type listExercisesInput struct {
	WorkoutID int64 `json:"workout_id" jsonschema:"Workout ID"`
}

type exerciseView struct {
	ID        int64  `json:"id"`
	WorkoutID int64  `json:"workout_id"`
	Name      string `json:"name"`
	Sets      int    `json:"sets"`
	Reps      int    `json:"reps"`
}

type workoutView struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	DurationMinutes int            `json:"duration_minutes"`
	Calories        float64        `json:"calories"`
	TrackingInfo    string         `json:"tracking_info"`
	Exercises       []exerciseView `json:"exercises,omitempty"`
}

type workoutOutput struct {
	Workout workoutView `json:"workout"`
	Message string      `json:"message"`
}

type workoutListOutput struct {
	Workouts []workoutView `json:"workouts"`
	Count    int           `json:"count"`
}

type exerciseOutput struct {
	Exercise exerciseView `json:"exercise"`
	Message  string       `json:"message"`
}

type exerciseListOutput struct {
	Exercises []exerciseView `json:"exercises"`
	Count     int            `json:"count"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

func newWorkoutView(w *models.Workout) workoutView {
	return workoutView{
		ID:              w.ID,
		Name:            w.Name,
		Type:            w.WorkoutType(),
		DurationMinutes: w.DurationMinutes,
		Calories:        w.CalculateCalories(),
		TrackingInfo:    w.TrackingInfo(),
	}
}

func newExerciseView(e *models.Exercise) exerciseView {
	return exerciseView{
		ID:        e.ID,
		WorkoutID: e.WorkoutID,
		Name:      e.Name,
		Sets:      e.Sets,
		Reps:      e.Reps,
	}
}

func newWorkoutViews(workouts []*models.Workout) []workoutView {
	views := make([]workoutView, 0, len(workouts))
	for _, w := range workouts {
		views = append(views, newWorkoutView(w))
	}
	return views
}

func newExerciseViews(exercises []*models.Exercise) []exerciseView {
	views := make([]exerciseView, 0, len(exercises))
	for _, e := range exercises {
		views = append(views, newExerciseView(e))
	}
	return views
}

// Tool handlers

func (s *Server) handleCreateWorkout(ctx context.Context, req *mcp.CallToolRequest, input createWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	kind, err := models.ParseKind(input.Type)
	if err != nil {
		return nil, workoutOutput{}, models.InvalidInput("%s", err.Error())
	}

	w, err := s.workouts.CreateWorkout(models.NewWorkout(input.Name, input.DurationMinutes, kind))
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to create workout: %w", err)
	}

	return nil, workoutOutput{
		Workout: newWorkoutView(w),
		Message: fmt.Sprintf("Added %s workout %q (ID: %d)", w.WorkoutType(), w.Name, w.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, workoutListOutput, error) {
	var (
		workouts []*models.Workout
		err      error
	)
	if input.SortByDuration {
		workouts, err = s.workouts.GetAllWorkoutsSortedByDuration()
	} else {
		workouts, err = s.workouts.GetAllWorkouts()
	}
	if err != nil {
		return nil, workoutListOutput{}, fmt.Errorf("failed to list workouts: %w", err)
	}

	return nil, workoutListOutput{Workouts: newWorkoutViews(workouts), Count: len(workouts)}, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, workoutOutput, error) {
	w, err := s.workouts.GetWorkoutByID(input.ID)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to get workout: %w", err)
	}
	exercises, err := s.exercises.GetExercisesByWorkout(w.ID)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to list exercises: %w", err)
	}

	view := newWorkoutView(w)
	view.Exercises = newExerciseViews(exercises)
	return nil, workoutOutput{
		Workout: view,
		Message: w.TrackingInfo(),
	}, nil
}

func (s *Server) handleUpdateWorkout(ctx context.Context, req *mcp.CallToolRequest, input updateWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	w, err := s.workouts.PatchWorkout(input.ID, service.WorkoutPatch{
		Name:            &input.Name,
		DurationMinutes: &input.DurationMinutes,
	})
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to update workout: %w", err)
	}

	return nil, workoutOutput{
		Workout: newWorkoutView(w),
		Message: fmt.Sprintf("Updated workout %d", w.ID),
	}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.workouts.DeleteWorkout(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout: %d", input.ID),
	}, nil
}

func (s *Server) handleShortestWorkout(ctx context.Context, req *mcp.CallToolRequest, input shortestWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	kind, err := models.ParseKind(input.Type)
	if err != nil {
		return nil, workoutOutput{}, models.InvalidInput("%s", err.Error())
	}

	w, err := s.workouts.GetShortestOfKind(kind)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to find shortest workout: %w", err)
	}

	return nil, workoutOutput{
		Workout: newWorkoutView(w),
		Message: w.TrackingInfo(),
	}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	e, err := s.exercises.AddExercise(input.WorkoutID, models.NewExercise(input.WorkoutID, input.Name, input.Sets, input.Reps))
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}

	return nil, exerciseOutput{
		Exercise: newExerciseView(e),
		Message:  fmt.Sprintf("Added %s to workout %d (ID: %d)", e.TrackingInfo(), e.WorkoutID, e.ID),
	}, nil
}

func (s *Server) handleUpdateExercise(ctx context.Context, req *mcp.CallToolRequest, input updateExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	e, err := s.exercises.UpdateExercise(input.ID, &models.Exercise{Name: input.Name, Sets: input.Sets, Reps: input.Reps})
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to update exercise: %w", err)
	}

	return nil, exerciseOutput{
		Exercise: newExerciseView(e),
		Message:  fmt.Sprintf("Updated exercise %d: %s", e.ID, e.TrackingInfo()),
	}, nil
}

func (s *Server) handleGetExercise(ctx context.Context, req *mcp.CallToolRequest, input exerciseIDInput) (*mcp.CallToolResult, exerciseOutput, error) {
	e, err := s.exercises.GetExerciseByID(input.ID)
	if err != nil {
		return nil, exerciseOutput{}, fmt.Errorf("failed to get exercise: %w", err)
	}

	return nil, exerciseOutput{
		Exercise: newExerciseView(e),
		Message:  e.TrackingInfo(),
	}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, exerciseListOutput, error) {
	exercises, err := s.exercises.GetExercisesByWorkout(input.WorkoutID)
	if err != nil {
		return nil, exerciseListOutput{}, fmt.Errorf("failed to list exercises: %w", err)
	}

	return nil, exerciseListOutput{Exercises: newExerciseViews(exercises), Count: len(exercises)}, nil
}

func (s *Server) handleDeleteExercise(ctx context.Context, req *mcp.CallToolRequest, input exerciseIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.exercises.DeleteExercise(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete exercise: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted exercise: %d", input.ID),
	}, nil
}
