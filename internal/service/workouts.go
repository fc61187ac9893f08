// ABOUTME: Workout business rules: validation, name uniqueness, sorting, and kind queries.
// ABOUTME: Depends only on storage contracts so any engine or fake can back it.
package service

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/storage"
)

// WorkoutService validates and orchestrates workout lifecycle operations.
type WorkoutService struct {
	repo    storage.CrudRepository[models.Workout]
	lookup  storage.WorkoutLookup
	queries storage.WorkoutQueries
	log     *log.Logger
}

// NewWorkoutService creates a workout service. queries may be nil, in which
// case the shortest-of-kind operations fail with a database operation error.
func NewWorkoutService(
	repo storage.CrudRepository[models.Workout],
	lookup storage.WorkoutLookup,
	queries storage.WorkoutQueries,
	opts ...Option,
) *WorkoutService {
	o := buildOptions(opts)
	return &WorkoutService{
		repo:    repo,
		lookup:  lookup,
		queries: queries,
		log:     o.logger,
	}
}

// NewWorkoutServiceFor wires a workout service to every contract of one store.
func NewWorkoutServiceFor(store storage.WorkoutStore, opts ...Option) *WorkoutService {
	return NewWorkoutService(store, store, store, opts...)
}

// validateWorkout checks caller-supplied fields before any storage call.
func validateWorkout(w *models.Workout) error {
	if w == nil {
		return models.InvalidInput("workout cannot be nil")
	}
	if err := w.Validate(); err != nil {
		return models.InvalidInput("%s", err.Error())
	}
	return nil
}

// CreateWorkout validates w, checks its name is free, and stores it.
// The assigned ID and trimmed name are set on w only once it is stored.
func (s *WorkoutService) CreateWorkout(w *models.Workout) (*models.Workout, error) {
	if err := validateWorkout(w); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(w.Name)

	if s.lookup == nil {
		return nil, models.DatabaseError("check workout name", nil)
	}
	taken, err := s.lookup.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.Duplicate("workout %q already exists", name)
	}

	stored := models.NewWorkout(name, w.DurationMinutes, w.Kind())
	if err := s.repo.Create(stored); err != nil {
		return nil, err
	}
	w.ID, w.Name = stored.ID, stored.Name
	s.log.Debug("created workout", "id", w.ID, "name", w.Name, "type", w.WorkoutType())
	return w, nil
}

// GetAllWorkouts returns every workout in insertion order.
func (s *WorkoutService) GetAllWorkouts() ([]*models.Workout, error) {
	return s.repo.GetAll()
}

// GetAllWorkoutsSortedByDuration returns every workout ordered by ascending
// duration. Equal durations keep insertion order.
func (s *WorkoutService) GetAllWorkoutsSortedByDuration() ([]*models.Workout, error) {
	workouts, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	models.SortByDuration(workouts)
	return workouts, nil
}

// GetWorkoutByID returns the workout with the given ID.
func (s *WorkoutService) GetWorkoutByID(id int64) (*models.Workout, error) {
	if err := requirePositiveID("workout", id); err != nil {
		return nil, err
	}
	w, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, models.NotFound("workout %d not found", id)
	}
	return w, nil
}

// GetShortestOfKind returns the shortest workout of kind.
func (s *WorkoutService) GetShortestOfKind(kind models.Kind) (*models.Workout, error) {
	if !kind.Valid() {
		return nil, models.InvalidInput("unknown workout kind: %q", string(kind))
	}
	if s.queries == nil {
		return nil, models.DatabaseError("shortest workout query is not supported by this storage", nil)
	}

	w, err := s.queries.ShortestOfKind(kind)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, models.NotFound("no %s workouts", strings.ToLower(kind.Label()))
	}
	return w, nil
}

// GetShortestCardio returns the shortest cardio workout.
func (s *WorkoutService) GetShortestCardio() (*models.Workout, error) {
	return s.GetShortestOfKind(models.KindCardio)
}

// GetShortestStrength returns the shortest strength workout.
func (s *WorkoutService) GetShortestStrength() (*models.Workout, error) {
	return s.GetShortestOfKind(models.KindStrength)
}

// UpdateWorkout replaces the name and duration of workout id. The stored
// kind is kept regardless of w's kind. Returns the workout as stored.
func (s *WorkoutService) UpdateWorkout(id int64, w *models.Workout) (*models.Workout, error) {
	if err := requirePositiveID("workout", id); err != nil {
		return nil, err
	}
	if err := validateWorkout(w); err != nil {
		return nil, err
	}

	existing, err := s.GetWorkoutByID(id)
	if err != nil {
		return nil, err
	}
	if w.Kind() != existing.Kind() {
		s.log.Warn("ignoring kind change on update", "id", id, "stored", existing.Kind(), "requested", w.Kind())
	}
	return s.replace(existing, w.Name, w.DurationMinutes)
}

// WorkoutPatch lists the workout fields to change. Nil fields keep their stored value.
type WorkoutPatch struct {
	Name            *string
	DurationMinutes *int
}

// PatchWorkout changes only the fields set in p. The fields given are
// validated before the workout is looked up.
func (s *WorkoutService) PatchWorkout(id int64, p WorkoutPatch) (*models.Workout, error) {
	if err := requirePositiveID("workout", id); err != nil {
		return nil, err
	}
	if p.Name == nil && p.DurationMinutes == nil {
		return nil, models.InvalidInput("nothing to update: give a name or a duration")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, models.InvalidInput("workout name cannot be empty")
	}
	if p.DurationMinutes != nil && *p.DurationMinutes <= 0 {
		return nil, models.InvalidInput("duration must be greater than 0")
	}

	existing, err := s.GetWorkoutByID(id)
	if err != nil {
		return nil, err
	}
	name, duration := existing.Name, existing.DurationMinutes
	if p.Name != nil {
		name = *p.Name
	}
	if p.DurationMinutes != nil {
		duration = *p.DurationMinutes
	}
	return s.replace(existing, name, duration)
}

// replace stores name and duration on existing, keeping its kind, and
// returns the workout as stored.
func (s *WorkoutService) replace(existing *models.Workout, name string, duration int) (*models.Workout, error) {
	id := existing.ID
	name = strings.TrimSpace(name)

	if s.lookup == nil {
		return nil, models.DatabaseError("check workout name", nil)
	}
	taken, err := s.lookup.ExistsByNameExcludingID(name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.Duplicate("workout %q already exists", name)
	}

	updated := models.RestoreWorkout(id, name, duration, existing.Kind())
	if err := s.repo.Update(id, updated); err != nil {
		return nil, err
	}
	s.log.Debug("updated workout", "id", id, "name", name)

	stored, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, models.NotFound("workout %d not found", id)
	}
	return stored, nil
}

// DeleteWorkout removes workout id and its exercises.
func (s *WorkoutService) DeleteWorkout(id int64) error {
	if err := requirePositiveID("workout", id); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return models.NotFound("workout %d not found", id)
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.log.Debug("deleted workout", "id", id, "name", existing.Name)
	return nil
}
