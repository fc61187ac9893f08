// ABOUTME: Workout and Exercise CRUD operations for Charm KV storage.
// ABOUTME: Handles uniqueness and cascade deletes manually since KV has no constraints.
package charm

import (
	"fmt"

	"github.com/harperreed/fitness/internal/models"
)

// workoutRecord is the stored JSON form of a workout.
type workoutRecord struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Type            models.Kind `json:"type"`
	DurationMinutes int         `json:"duration_minutes"`
}

func (r workoutRecord) model() *models.Workout {
	return models.RestoreWorkout(r.ID, r.Name, r.DurationMinutes, r.Type)
}

// exerciseRecord is the stored JSON form of an exercise.
type exerciseRecord struct {
	ID        int64  `json:"id"`
	WorkoutID int64  `json:"workout_id"`
	Name      string `json:"name"`
	Sets      int    `json:"sets"`
	Reps      int    `json:"reps"`
}

func (r exerciseRecord) model() *models.Exercise {
	return &models.Exercise{ID: r.ID, WorkoutID: r.WorkoutID, Name: r.Name, Sets: r.Sets, Reps: r.Reps}
}

// allWorkouts must be called with s.mu held.
func (s *Store) allWorkouts() ([]workoutRecord, error) {
	records, err := listByPrefix[workoutRecord](s, WorkoutPrefix)
	if err != nil {
		return nil, err
	}
	sortByID(records, func(r workoutRecord) int64 { return r.ID })
	return records, nil
}

// allExercises must be called with s.mu held.
func (s *Store) allExercises() ([]exerciseRecord, error) {
	records, err := listByPrefix[exerciseRecord](s, ExercisePrefix)
	if err != nil {
		return nil, err
	}
	sortByID(records, func(r exerciseRecord) int64 { return r.ID })
	return records, nil
}

// nameTaken must be called with s.mu held.
func (s *Store) nameTaken(name string, excludeID int64) (bool, error) {
	records, err := s.allWorkouts()
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if r.ID != excludeID && models.SameName(r.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

type kvWorkouts struct{ s *Store }

func (v kvWorkouts) Create(w *models.Workout) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable("create workout"); err != nil {
		return err
	}
	taken, err := s.nameTaken(w.Name, 0)
	if err != nil {
		return models.DatabaseError("create workout", err)
	}
	if taken {
		return models.Duplicate("workout %q already exists", w.Name)
	}

	id, err := s.nextID(workoutSeqKey)
	if err != nil {
		return models.DatabaseError("create workout", err)
	}
	rec := workoutRecord{ID: id, Name: w.Name, Type: w.Kind(), DurationMinutes: w.DurationMinutes}
	if err := s.put(workoutKey(id), rec); err != nil {
		return models.DatabaseError("create workout", err)
	}
	w.ID = id
	s.syncIfEnabled()
	return nil
}

func (v kvWorkouts) GetAll() ([]*models.Workout, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	records, err := v.s.allWorkouts()
	if err != nil {
		return nil, models.DatabaseError("list workouts", err)
	}
	workouts := make([]*models.Workout, 0, len(records))
	for _, r := range records {
		workouts = append(workouts, r.model())
	}
	return workouts, nil
}

func (v kvWorkouts) GetByID(id int64) (*models.Workout, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	var rec workoutRecord
	found, err := v.s.get(workoutKey(id), &rec)
	if err != nil {
		return nil, models.DatabaseError(fmt.Sprintf("get workout %d", id), err)
	}
	if !found {
		return nil, nil
	}
	return rec.model(), nil
}

// Update changes name and duration. The stored type is never rewritten.
func (v kvWorkouts) Update(id int64, w *models.Workout) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable("update workout"); err != nil {
		return err
	}
	var rec workoutRecord
	found, err := s.get(workoutKey(id), &rec)
	if err != nil {
		return models.DatabaseError("update workout", err)
	}
	if !found {
		return models.NotFound("workout %d not found", id)
	}
	taken, err := s.nameTaken(w.Name, id)
	if err != nil {
		return models.DatabaseError("update workout", err)
	}
	if taken {
		return models.Duplicate("workout %q already exists", w.Name)
	}

	rec.Name = w.Name
	rec.DurationMinutes = w.DurationMinutes
	if err := s.put(workoutKey(id), rec); err != nil {
		return models.DatabaseError("update workout", err)
	}
	s.syncIfEnabled()
	return nil
}

// Delete removes a workout and cascades to its exercises.
func (v kvWorkouts) Delete(id int64) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable("delete workout"); err != nil {
		return err
	}
	var rec workoutRecord
	found, err := s.get(workoutKey(id), &rec)
	if err != nil {
		return models.DatabaseError("delete workout", err)
	}
	if !found {
		return models.NotFound("workout %d not found", id)
	}

	exercises, err := s.allExercises()
	if err != nil {
		return models.DatabaseError("delete workout", err)
	}
	for _, e := range exercises {
		if e.WorkoutID != id {
			continue
		}
		if err := s.kv.Delete([]byte(exerciseKey(e.ID))); err != nil {
			return models.DatabaseError("delete workout exercises", err)
		}
	}

	if err := s.kv.Delete([]byte(workoutKey(id))); err != nil {
		return models.DatabaseError("delete workout", err)
	}
	s.syncIfEnabled()
	return nil
}

func (v kvWorkouts) ExistsByName(name string) (bool, error) {
	return v.ExistsByNameExcludingID(name, 0)
}

func (v kvWorkouts) ExistsByNameExcludingID(name string, excludeID int64) (bool, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	taken, err := v.s.nameTaken(name, excludeID)
	if err != nil {
		return false, models.DatabaseError("check workout name", err)
	}
	return taken, nil
}

func (v kvWorkouts) ShortestOfKind(kind models.Kind) (*models.Workout, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	records, err := v.s.allWorkouts()
	if err != nil {
		return nil, models.DatabaseError("find shortest workout", err)
	}
	var shortest *workoutRecord
	for i := range records {
		r := &records[i]
		if r.Type != kind {
			continue
		}
		if shortest == nil || r.DurationMinutes < shortest.DurationMinutes {
			shortest = r
		}
	}
	if shortest == nil {
		return nil, nil
	}
	return shortest.model(), nil
}

type kvExercises struct{ s *Store }

func (v kvExercises) Create(e *models.Exercise) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable("create exercise"); err != nil {
		return err
	}
	var parent workoutRecord
	found, err := s.get(workoutKey(e.WorkoutID), &parent)
	if err != nil {
		return models.DatabaseError("create exercise", err)
	}
	if !found {
		return models.NotFound("workout %d not found", e.WorkoutID)
	}

	id, err := s.nextID(exerciseSeqKey)
	if err != nil {
		return models.DatabaseError("create exercise", err)
	}
	rec := exerciseRecord{ID: id, WorkoutID: e.WorkoutID, Name: e.Name, Sets: e.Sets, Reps: e.Reps}
	if err := s.put(exerciseKey(id), rec); err != nil {
		return models.DatabaseError("create exercise", err)
	}
	e.ID = id
	s.syncIfEnabled()
	return nil
}

func (v kvExercises) GetAll() ([]*models.Exercise, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	records, err := v.s.allExercises()
	if err != nil {
		return nil, models.DatabaseError("list exercises", err)
	}
	exercises := make([]*models.Exercise, 0, len(records))
	for _, r := range records {
		exercises = append(exercises, r.model())
	}
	return exercises, nil
}

func (v kvExercises) GetByID(id int64) (*models.Exercise, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	var rec exerciseRecord
	found, err := v.s.get(exerciseKey(id), &rec)
	if err != nil {
		return nil, models.DatabaseError(fmt.Sprintf("get exercise %d", id), err)
	}
	if !found {
		return nil, nil
	}
	return rec.model(), nil
}

// Update changes name, sets, and reps. The owning workout is never rewritten.
func (v kvExercises) Update(id int64, e *models.Exercise) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable("update exercise"); err != nil {
		return err
	}
	var rec exerciseRecord
	found, err := s.get(exerciseKey(id), &rec)
	if err != nil {
		return models.DatabaseError("update exercise", err)
	}
	if !found {
		return models.NotFound("exercise %d not found", id)
	}

	rec.Name = e.Name
	rec.Sets = e.Sets
	rec.Reps = e.Reps
	if err := s.put(exerciseKey(id), rec); err != nil {
		return models.DatabaseError("update exercise", err)
	}
	s.syncIfEnabled()
	return nil
}

func (v kvExercises) Delete(id int64) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable("delete exercise"); err != nil {
		return err
	}
	var rec exerciseRecord
	found, err := s.get(exerciseKey(id), &rec)
	if err != nil {
		return models.DatabaseError("delete exercise", err)
	}
	if !found {
		return models.NotFound("exercise %d not found", id)
	}
	if err := s.kv.Delete([]byte(exerciseKey(id))); err != nil {
		return models.DatabaseError("delete exercise", err)
	}
	s.syncIfEnabled()
	return nil
}

func (v kvExercises) ByWorkoutID(workoutID int64) ([]*models.Exercise, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()

	records, err := v.s.allExercises()
	if err != nil {
		return nil, models.DatabaseError("list exercises", err)
	}
	exercises := []*models.Exercise{}
	for _, r := range records {
		if r.WorkoutID == workoutID {
			exercises = append(exercises, r.model())
		}
	}
	return exercises, nil
}
