// ABOUTME: Exercise business rules: field validation and owning-workout checks.
// ABOUTME: The owning workout of an exercise is fixed once it is added.
package service

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/storage"
)

// ExerciseService validates and orchestrates exercise lifecycle operations.
type ExerciseService struct {
	repo     storage.CrudRepository[models.Exercise]
	queries  storage.ExerciseQueries
	workouts storage.CrudRepository[models.Workout]
	log      *log.Logger
}

// NewExerciseService creates an exercise service. workouts is used to confirm
// that an exercise's owning workout exists.
func NewExerciseService(
	repo storage.CrudRepository[models.Exercise],
	queries storage.ExerciseQueries,
	workouts storage.CrudRepository[models.Workout],
	opts ...Option,
) *ExerciseService {
	o := buildOptions(opts)
	return &ExerciseService{
		repo:     repo,
		queries:  queries,
		workouts: workouts,
		log:      o.logger,
	}
}

// NewExerciseServiceFor wires an exercise service to every store of a backend.
func NewExerciseServiceFor(b storage.Backend, opts ...Option) *ExerciseService {
	exercises := b.Exercises()
	return NewExerciseService(exercises, exercises, b.Workouts(), opts...)
}

func validateExercise(e *models.Exercise) error {
	if e == nil {
		return models.InvalidInput("exercise cannot be nil")
	}
	if err := e.Validate(); err != nil {
		return models.InvalidInput("%s", err.Error())
	}
	return nil
}

// AddExercise binds e to workoutID and stores it. The assigned ID and owner
// are set on e only once it is stored.
func (s *ExerciseService) AddExercise(workoutID int64, e *models.Exercise) (*models.Exercise, error) {
	if err := requirePositiveID("workout", workoutID); err != nil {
		return nil, err
	}
	if err := validateExercise(e); err != nil {
		return nil, err
	}

	if s.workouts == nil {
		return nil, models.DatabaseError("look up owning workout", nil)
	}
	w, err := s.workouts.GetByID(workoutID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, models.NotFound("workout %d not found", workoutID)
	}

	stored := models.NewExercise(workoutID, strings.TrimSpace(e.Name), e.Sets, e.Reps)
	if err := s.repo.Create(stored); err != nil {
		return nil, err
	}
	e.ID, e.WorkoutID, e.Name = stored.ID, stored.WorkoutID, stored.Name
	s.log.Debug("added exercise", "id", e.ID, "workout", workoutID, "name", e.Name)
	return e, nil
}

// UpdateExercise replaces the name, sets, and reps of exercise id.
// The owning workout is carried over from the stored record.
func (s *ExerciseService) UpdateExercise(id int64, e *models.Exercise) (*models.Exercise, error) {
	if err := requirePositiveID("exercise", id); err != nil {
		return nil, err
	}
	if err := validateExercise(e); err != nil {
		return nil, err
	}

	existing, err := s.GetExerciseByID(id)
	if err != nil {
		return nil, err
	}
	return s.replace(existing, e.Name, e.Sets, e.Reps)
}

// ExercisePatch lists the exercise fields to change. Nil fields keep their stored value.
type ExercisePatch struct {
	Name *string
	Sets *int
	Reps *int
}

// PatchExercise changes only the fields set in p. The fields given are
// validated before the exercise is looked up.
func (s *ExerciseService) PatchExercise(id int64, p ExercisePatch) (*models.Exercise, error) {
	if err := requirePositiveID("exercise", id); err != nil {
		return nil, err
	}
	if p.Name == nil && p.Sets == nil && p.Reps == nil {
		return nil, models.InvalidInput("nothing to update: give a name, sets, or reps")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, models.InvalidInput("exercise name cannot be empty")
	}
	if (p.Sets != nil && *p.Sets <= 0) || (p.Reps != nil && *p.Reps <= 0) {
		return nil, models.InvalidInput("sets and reps must be greater than 0")
	}

	existing, err := s.GetExerciseByID(id)
	if err != nil {
		return nil, err
	}
	name, sets, reps := existing.Name, existing.Sets, existing.Reps
	if p.Name != nil {
		name = *p.Name
	}
	if p.Sets != nil {
		sets = *p.Sets
	}
	if p.Reps != nil {
		reps = *p.Reps
	}
	return s.replace(existing, name, sets, reps)
}

func (s *ExerciseService) replace(existing *models.Exercise, name string, sets, reps int) (*models.Exercise, error) {
	updated := &models.Exercise{
		ID:        existing.ID,
		WorkoutID: existing.WorkoutID,
		Name:      strings.TrimSpace(name),
		Sets:      sets,
		Reps:      reps,
	}
	if err := s.repo.Update(existing.ID, updated); err != nil {
		return nil, err
	}
	s.log.Debug("updated exercise", "id", existing.ID, "name", updated.Name)
	return updated, nil
}

// GetExerciseByID returns the exercise with the given ID.
func (s *ExerciseService) GetExerciseByID(id int64) (*models.Exercise, error) {
	if err := requirePositiveID("exercise", id); err != nil {
		return nil, err
	}
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, models.NotFound("exercise %d not found", id)
	}
	return e, nil
}

// GetExercisesByWorkout returns the exercises of workoutID in insertion order.
// A workout without exercises yields an empty slice.
func (s *ExerciseService) GetExercisesByWorkout(workoutID int64) ([]*models.Exercise, error) {
	if err := requirePositiveID("workout", workoutID); err != nil {
		return nil, err
	}
	if s.queries == nil {
		return nil, models.DatabaseError("exercises by workout query is not supported by this storage", nil)
	}
	exercises, err := s.queries.ByWorkoutID(workoutID)
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		exercises = []*models.Exercise{}
	}
	return exercises, nil
}

// DeleteExercise removes exercise id.
func (s *ExerciseService) DeleteExercise(id int64) error {
	if err := requirePositiveID("exercise", id); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return models.NotFound("exercise %d not found", id)
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.log.Debug("deleted exercise", "id", id, "workout", existing.WorkoutID)
	return nil
}
