// ABOUTME: Exercise model: a sets/reps entry belonging to one workout.
// ABOUTME: The owning workout is fixed at creation.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Exercise is a set/rep entry owned by a workout.
type Exercise struct {
	ID        int64
	WorkoutID int64
	Name      string
	Sets      int
	Reps      int
}

// NewExercise creates an exercise that has not been stored yet.
func NewExercise(workoutID int64, name string, sets, reps int) *Exercise {
	return &Exercise{
		WorkoutID: workoutID,
		Name:      name,
		Sets:      sets,
		Reps:      reps,
	}
}

// Validate checks the exercise's own fields. It does not check the owning workout.
func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("exercise name cannot be empty")
	}
	if e.Sets <= 0 || e.Reps <= 0 {
		return errors.New("sets and reps must be greater than 0")
	}
	return nil
}

// TrackingInfo returns a one-line summary like "Squat 5x5".
func (e *Exercise) TrackingInfo() string {
	return fmt.Sprintf("%s %dx%d", e.Name, e.Sets, e.Reps)
}

// Describe returns the exercise's fields as ordered name/value pairs.
func (e *Exercise) Describe() []Field {
	return []Field{
		{Name: "ID", Value: fmt.Sprintf("%d", e.ID)},
		{Name: "WorkoutID", Value: fmt.Sprintf("%d", e.WorkoutID)},
		{Name: "Name", Value: e.Name},
		{Name: "Sets", Value: fmt.Sprintf("%d", e.Sets)},
		{Name: "Reps", Value: fmt.Sprintf("%d", e.Reps)},
	}
}
