// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-memory, memory-to-sqlite, and ID remapping.
package storage

import (
	"testing"

	"github.com/harperreed/fitness/internal/models"
)

func seedBackend(t *testing.T, b Backend) {
	t.Helper()
	run := mustCreateWorkout(t, b, models.NewCardio("Run", 30))
	push := mustCreateWorkout(t, b, models.NewStrength("Push", 45))
	mustCreateExercise(t, b, models.NewExercise(push.ID, "Bench", 3, 10))
	mustCreateExercise(t, b, models.NewExercise(push.ID, "Dips", 3, 12))
	mustCreateExercise(t, b, models.NewExercise(run.ID, "Strides", 4, 1))
}

func TestMigrateDataSQLiteToMemory(t *testing.T) {
	src := setupTestDB(t)
	seedBackend(t, src)
	dst := NewMemoryStore()

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Workouts != 2 || summary.Exercises != 3 {
		t.Errorf("summary = %+v, want 2 workouts and 3 exercises", summary)
	}

	workouts, _ := dst.Workouts().GetAll()
	if len(workouts) != 2 || workouts[0].Name != "Run" || workouts[1].Kind() != models.KindStrength {
		t.Fatalf("unexpected destination workouts: %+v", workouts)
	}

	exercises, _ := dst.Exercises().ByWorkoutID(workouts[1].ID)
	if len(exercises) != 2 || exercises[0].Name != "Bench" {
		t.Errorf("unexpected destination exercises: %+v", exercises)
	}
}

func TestMigrateDataKeepsNonASCIICaseVariants(t *testing.T) {
	src := setupTestDB(t)
	mustCreateWorkout(t, src, models.NewCardio("Über Run", 30))
	mustCreateWorkout(t, src, models.NewCardio("über run", 20))
	dst := NewMemoryStore()

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Workouts != 2 {
		t.Errorf("summary = %+v, want 2 workouts", summary)
	}
}

func TestMigrateDataRemapsIDs(t *testing.T) {
	src := NewMemoryStore()
	// Leave a gap in source IDs so they differ from destination IDs.
	gone := mustCreateWorkout(t, src, models.NewCardio("Deleted", 5))
	_ = src.Workouts().Delete(gone.ID)
	seedBackend(t, src)

	dst := setupTestDB(t)
	if _, err := MigrateData(src, dst); err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}

	workouts, _ := dst.Workouts().GetAll()
	for _, w := range workouts {
		exercises, err := dst.Exercises().ByWorkoutID(w.ID)
		if err != nil {
			t.Fatalf("ByWorkoutID failed: %v", err)
		}
		if w.Name == "Push" && len(exercises) != 2 {
			t.Errorf("Push has %d exercises, want 2", len(exercises))
		}
		if w.Name == "Run" && len(exercises) != 1 {
			t.Errorf("Run has %d exercises, want 1", len(exercises))
		}
	}
}

func TestMigrateDataConflict(t *testing.T) {
	src := NewMemoryStore()
	seedBackend(t, src)
	dst := NewMemoryStore()
	mustCreateWorkout(t, dst, models.NewCardio("Run", 10))

	if _, err := MigrateData(src, dst); err == nil {
		t.Error("expected error migrating into a backend with a conflicting name")
	}
}

func TestIsEmpty(t *testing.T) {
	b := NewMemoryStore()
	empty, err := IsEmpty(b)
	if err != nil || !empty {
		t.Errorf("IsEmpty() = %v, %v; want true", empty, err)
	}

	mustCreateWorkout(t, b, models.NewCardio("Run", 10))
	empty, _ = IsEmpty(b)
	if empty {
		t.Error("IsEmpty() = true after create")
	}
}
