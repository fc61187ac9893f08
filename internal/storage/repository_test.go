// ABOUTME: Contract tests shared by every Backend implementation.
// ABOUTME: Runs the same CRUD, lookup, and query checks on SQLite and memory engines.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/fitness/internal/models"
)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "fitness-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "fitness.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// backends lists every engine the contract tests run against.
func backends() map[string]func(t *testing.T) Backend {
	return map[string]func(t *testing.T) Backend{
		"sqlite": func(t *testing.T) Backend { return setupTestDB(t) },
		"memory": func(t *testing.T) Backend { return NewMemoryStore() },
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, b Backend)) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			fn(t, open(t))
		})
	}
}

func mustCreateWorkout(t *testing.T, b Backend, w *models.Workout) *models.Workout {
	t.Helper()
	if err := b.Workouts().Create(w); err != nil {
		t.Fatalf("Create workout %q failed: %v", w.Name, err)
	}
	return w
}

func mustCreateExercise(t *testing.T, b Backend, e *models.Exercise) *models.Exercise {
	t.Helper()
	if err := b.Exercises().Create(e); err != nil {
		t.Fatalf("Create exercise %q failed: %v", e.Name, err)
	}
	return e
}

func TestCreateAndGetWorkout(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		w := mustCreateWorkout(t, b, models.NewCardio("Morning Run", 30))
		if w.ID <= 0 {
			t.Fatalf("expected assigned ID, got %d", w.ID)
		}

		got, err := b.Workouts().GetByID(w.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected workout, got nil")
		}
		if got.Name != "Morning Run" || got.DurationMinutes != 30 || got.Kind() != models.KindCardio {
			t.Errorf("unexpected workout: %+v kind=%s", got, got.Kind())
		}
	})
}

func TestGetWorkoutMissingReturnsNil(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		got, err := b.Workouts().GetByID(404)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}

func TestGetAllWorkoutsInsertionOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		mustCreateWorkout(t, b, models.NewCardio("A", 30))
		mustCreateWorkout(t, b, models.NewStrength("B", 10))
		mustCreateWorkout(t, b, models.NewCardio("C", 10))

		all, err := b.Workouts().GetAll()
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 workouts, got %d", len(all))
		}
		for i, want := range []string{"A", "B", "C"} {
			if all[i].Name != want {
				t.Errorf("position %d = %s, want %s", i, all[i].Name, want)
			}
		}
	})
}

func TestGetAllWorkoutsEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		all, err := b.Workouts().GetAll()
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		if all == nil || len(all) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", all)
		}
	})
}

func TestUpdateWorkoutKeepsKind(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		w := mustCreateWorkout(t, b, models.NewStrength("Leg Day", 45))

		// Attempt to smuggle a different kind through the update payload.
		if err := b.Workouts().Update(w.ID, models.NewCardio("Leg Day v2", 50)); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		got, _ := b.Workouts().GetByID(w.ID)
		if got.Name != "Leg Day v2" || got.DurationMinutes != 50 {
			t.Errorf("update not applied: %+v", got)
		}
		if got.Kind() != models.KindStrength {
			t.Errorf("Kind = %s, want STRENGTH", got.Kind())
		}
	})
}

func TestUpdateWorkoutMissing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		err := b.Workouts().Update(99, models.NewCardio("x", 5))
		if !errors.Is(err, models.ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound, got %v", err)
		}
	})
}

func TestDuplicateNameRejectedByStore(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		mustCreateWorkout(t, b, models.NewCardio("Run", 30))

		err := b.Workouts().Create(models.NewStrength("run", 20))
		if !errors.Is(err, models.ErrDuplicateResource) {
			t.Errorf("expected ErrDuplicateResource, got %v", err)
		}
	})
}

func TestUpdateToTakenNameRejectedByStore(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		mustCreateWorkout(t, b, models.NewCardio("Run", 30))
		second := mustCreateWorkout(t, b, models.NewCardio("Ride", 60))

		err := b.Workouts().Update(second.ID, models.NewCardio("Run", 60))
		if !errors.Is(err, models.ErrDuplicateResource) {
			t.Errorf("expected ErrDuplicateResource, got %v", err)
		}
	})
}

func TestExistsByName(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		w := mustCreateWorkout(t, b, models.NewCardio("Tempo Run", 40))

		tests := []struct {
			name      string
			lookup    string
			excludeID int64
			want      bool
		}{
			{"exact match", "Tempo Run", 0, true},
			{"case-insensitive match", "tempo run", 0, true},
			{"no match", "Easy Run", 0, false},
			{"excluding own id", "Tempo Run", w.ID, false},
			{"excluding other id", "Tempo Run", w.ID + 1, true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var got bool
				var err error
				if tt.excludeID == 0 {
					got, err = b.Workouts().ExistsByName(tt.lookup)
				} else {
					got, err = b.Workouts().ExistsByNameExcludingID(tt.lookup, tt.excludeID)
				}
				if err != nil {
					t.Fatalf("lookup failed: %v", err)
				}
				if got != tt.want {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			})
		}
	})
}

func TestNameFoldingMatchesAcrossEngines(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		mustCreateWorkout(t, b, models.NewCardio("Über Run", 30))

		// Only ASCII letters fold, as in SQLite's NOCASE collation.
		exists, err := b.Workouts().ExistsByName("über run")
		if err != nil {
			t.Fatalf("ExistsByName failed: %v", err)
		}
		if exists {
			t.Error("expected non-ASCII case variant to be a distinct name")
		}
		if exists, _ := b.Workouts().ExistsByName("ÜBER RUN"); !exists {
			t.Error("expected ASCII case variant to match")
		}

		if err := b.Workouts().Create(models.NewCardio("über run", 20)); err != nil {
			t.Fatalf("expected non-ASCII case variant to be stored, got %v", err)
		}
		err = b.Workouts().Create(models.NewCardio("Über RUN", 25))
		if !errors.Is(err, models.ErrDuplicateResource) {
			t.Errorf("expected ASCII case variant to be a duplicate, got %v", err)
		}
	})
}

func TestShortestOfKind(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		mustCreateWorkout(t, b, models.NewCardio("Long Run", 60))
		first := mustCreateWorkout(t, b, models.NewCardio("Sprint", 15))
		mustCreateWorkout(t, b, models.NewCardio("Intervals", 15))
		mustCreateWorkout(t, b, models.NewStrength("Legs", 5))

		got, err := b.Workouts().ShortestOfKind(models.KindCardio)
		if err != nil {
			t.Fatalf("ShortestOfKind failed: %v", err)
		}
		if got == nil || got.ID != first.ID {
			t.Errorf("expected %d (first of the tie), got %+v", first.ID, got)
		}
	})
}

func TestShortestOfKindNone(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		mustCreateWorkout(t, b, models.NewCardio("Run", 20))

		got, err := b.Workouts().ShortestOfKind(models.KindStrength)
		if err != nil {
			t.Fatalf("ShortestOfKind failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}

func TestExerciseCRUD(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		w := mustCreateWorkout(t, b, models.NewStrength("Push", 45))
		e := mustCreateExercise(t, b, models.NewExercise(w.ID, "Bench", 3, 10))

		got, err := b.Exercises().GetByID(e.ID)
		if err != nil || got == nil {
			t.Fatalf("GetByID failed: %v %v", got, err)
		}
		if got.WorkoutID != w.ID || got.Name != "Bench" || got.Sets != 3 || got.Reps != 10 {
			t.Errorf("unexpected exercise: %+v", got)
		}

		other := mustCreateWorkout(t, b, models.NewStrength("Pull", 45))
		update := models.NewExercise(other.ID, "Incline Bench", 4, 8)
		if err := b.Exercises().Update(e.ID, update); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		got, _ = b.Exercises().GetByID(e.ID)
		if got.Name != "Incline Bench" || got.Sets != 4 || got.Reps != 8 {
			t.Errorf("update not applied: %+v", got)
		}
		if got.WorkoutID != w.ID {
			t.Errorf("WorkoutID changed to %d, want %d", got.WorkoutID, w.ID)
		}

		if err := b.Exercises().Delete(e.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		got, _ = b.Exercises().GetByID(e.ID)
		if got != nil {
			t.Errorf("expected nil after delete, got %+v", got)
		}
		if err := b.Exercises().Delete(e.ID); !errors.Is(err, models.ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound on second delete, got %v", err)
		}
	})
}

func TestExerciseRequiresWorkout(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		err := b.Exercises().Create(models.NewExercise(5, "Orphan", 1, 1))
		if !errors.Is(err, models.ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound, got %v", err)
		}
	})
}

func TestByWorkoutID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		push := mustCreateWorkout(t, b, models.NewStrength("Push", 45))
		pull := mustCreateWorkout(t, b, models.NewStrength("Pull", 45))
		mustCreateExercise(t, b, models.NewExercise(push.ID, "Bench", 3, 10))
		mustCreateExercise(t, b, models.NewExercise(pull.ID, "Row", 3, 10))
		mustCreateExercise(t, b, models.NewExercise(push.ID, "Dips", 3, 12))

		got, err := b.Exercises().ByWorkoutID(push.ID)
		if err != nil {
			t.Fatalf("ByWorkoutID failed: %v", err)
		}
		if len(got) != 2 || got[0].Name != "Bench" || got[1].Name != "Dips" {
			t.Errorf("unexpected exercises: %+v", got)
		}

		empty := mustCreateWorkout(t, b, models.NewCardio("Run", 20))
		none, err := b.Exercises().ByWorkoutID(empty.ID)
		if err != nil {
			t.Fatalf("ByWorkoutID failed: %v", err)
		}
		if none == nil || len(none) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", none)
		}
	})
}

func TestDeleteWorkoutCascades(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b Backend) {
		w := mustCreateWorkout(t, b, models.NewStrength("Push", 45))
		e := mustCreateExercise(t, b, models.NewExercise(w.ID, "Bench", 3, 10))

		if err := b.Workouts().Delete(w.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		got, err := b.Exercises().GetByID(e.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got != nil {
			t.Error("expected exercise to be cascade deleted")
		}
		if err := b.Workouts().Delete(w.ID); !errors.Is(err, models.ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound on second delete, got %v", err)
		}
	})
}

func TestSQLiteCheckConstraint(t *testing.T) {
	db := setupTestDB(t)

	err := db.Workouts().Create(models.NewCardio("Zero", 0))
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput from CHECK constraint, got %v", err)
	}
}

func TestSQLiteClosedDatabase(t *testing.T) {
	db := setupTestDB(t)
	_ = db.Close()

	_, err := db.Workouts().GetAll()
	if !errors.Is(err, models.ErrDatabaseOperation) {
		t.Errorf("expected ErrDatabaseOperation, got %v", err)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fitness.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	w := models.NewStrength("Deadlifts", 25)
	if err := db.Workouts().Create(w); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	db.Close()

	db, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	got, err := db.Workouts().GetByID(w.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID after reopen: %v %v", got, err)
	}
	if got.Kind() != models.KindStrength {
		t.Errorf("Kind = %s, want STRENGTH", got.Kind())
	}

	info, err := os.Stat(dbPath)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 600", perm)
	}
}

func TestDataDirXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	if got := DataDir(); got != "/tmp/xdg-data/fitness" {
		t.Errorf("DataDir() = %s, want /tmp/xdg-data/fitness", got)
	}
	if got := DefaultDBPath(); got != "/tmp/xdg-data/fitness/fitness.db" {
		t.Errorf("DefaultDBPath() = %s", got)
	}
}
