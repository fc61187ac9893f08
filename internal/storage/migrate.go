// ABOUTME: Data migration between fitness storage backends.
// ABOUTME: Copies workouts, then their exercises, remapping IDs in the destination.

package storage

import (
	"fmt"

	"github.com/harperreed/fitness/internal/models"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Workouts  int
	Exercises int
}

// MigrateData copies all data from src to dst storage.
// Workouts are created in source ID order so relative order survives; each
// workout's exercises follow it with the new workout ID. The destination
// should be empty before calling this function.
func MigrateData(src, dst Backend) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	workouts, err := src.Workouts().GetAll()
	if err != nil {
		return nil, fmt.Errorf("list source workouts: %w", err)
	}

	for _, w := range workouts {
		exercises, err := src.Exercises().ByWorkoutID(w.ID)
		if err != nil {
			return nil, fmt.Errorf("list exercises of workout %d: %w", w.ID, err)
		}

		copied := models.NewWorkout(w.Name, w.DurationMinutes, w.Kind())
		if err := dst.Workouts().Create(copied); err != nil {
			return nil, fmt.Errorf("create workout %d: %w", w.ID, err)
		}
		summary.Workouts++

		for _, e := range exercises {
			ce := models.NewExercise(copied.ID, e.Name, e.Sets, e.Reps)
			if err := dst.Exercises().Create(ce); err != nil {
				return nil, fmt.Errorf("create exercise %d: %w", e.ID, err)
			}
			summary.Exercises++
		}
	}

	return summary, nil
}

// IsEmpty reports whether a backend holds no workouts.
func IsEmpty(b Backend) (bool, error) {
	workouts, err := b.Workouts().GetAll()
	if err != nil {
		return false, err
	}
	return len(workouts) == 0, nil
}
