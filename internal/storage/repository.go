// ABOUTME: Storage contracts the service layer depends on.
// ABOUTME: Generic CRUD plus narrow lookup and query contracts, independent of engine.
package storage

import "github.com/harperreed/fitness/internal/models"

// CrudRepository is the generic persistence contract for one entity type.
// GetByID returns (nil, nil) when the entity does not exist.
// Engines wrap their failures with models.DatabaseError.
type CrudRepository[T any] interface {
	// Create persists entity and sets its ID.
	Create(entity *T) error
	// GetAll returns every entity in ascending ID order.
	GetAll() ([]*T, error)
	GetByID(id int64) (*T, error)
	// Update replaces the mutable fields of the entity stored under id.
	Update(id int64, entity *T) error
	Delete(id int64) error
}

// WorkoutLookup answers name-uniqueness questions without loading records.
type WorkoutLookup interface {
	ExistsByName(name string) (bool, error)
	ExistsByNameExcludingID(name string, excludeID int64) (bool, error)
}

// WorkoutQueries answers kind-aware questions.
type WorkoutQueries interface {
	// ShortestOfKind returns the workout of the given kind with the smallest
	// duration, lowest ID first on ties, or (nil, nil) if there is none.
	ShortestOfKind(kind models.Kind) (*models.Workout, error)
}

// ExerciseQueries answers questions about exercises of one workout.
type ExerciseQueries interface {
	// ByWorkoutID returns the workout's exercises in ascending ID order.
	ByWorkoutID(workoutID int64) ([]*models.Exercise, error)
}

// WorkoutStore is everything a full engine offers for workouts.
type WorkoutStore interface {
	CrudRepository[models.Workout]
	WorkoutLookup
	WorkoutQueries
}

// ExerciseStore is everything a full engine offers for exercises.
type ExerciseStore interface {
	CrudRepository[models.Exercise]
	ExerciseQueries
}

// Backend bundles the stores of one storage engine.
// This interface allows swapping implementations (e.g., for testing).
type Backend interface {
	Workouts() WorkoutStore
	Exercises() ExerciseStore
	Close() error
}
