// ABOUTME: In-memory storage engine used by tests and the "memory" backend.
// ABOUTME: Uniqueness and parent checks run under the same lock as the write.
package storage

import (
	"slices"
	"sync"

	"github.com/harperreed/fitness/internal/models"
)

// MemoryStore keeps workouts and exercises in maps guarded by one mutex.
type MemoryStore struct {
	mu             sync.RWMutex
	workouts       map[int64]models.Workout
	exercises      map[int64]models.Exercise
	nextWorkoutID  int64
	nextExerciseID int64
}

var _ Backend = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		workouts:  make(map[int64]models.Workout),
		exercises: make(map[int64]models.Exercise),
	}
}

// Workouts returns the workout store view.
func (m *MemoryStore) Workouts() WorkoutStore {
	return memoryWorkouts{m}
}

// Exercises returns the exercise store view.
func (m *MemoryStore) Exercises() ExerciseStore {
	return memoryExercises{m}
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// nameTaken must be called with m.mu held.
func (m *MemoryStore) nameTaken(name string, excludeID int64) bool {
	for id, w := range m.workouts {
		if id != excludeID && models.SameName(w.Name, name) {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

type memoryWorkouts struct{ m *MemoryStore }

func (s memoryWorkouts) Create(w *models.Workout) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if s.m.nameTaken(w.Name, 0) {
		return models.Duplicate("workout %q already exists", w.Name)
	}
	s.m.nextWorkoutID++
	w.ID = s.m.nextWorkoutID
	s.m.workouts[w.ID] = *w
	return nil
}

func (s memoryWorkouts) GetAll() ([]*models.Workout, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	workouts := make([]*models.Workout, 0, len(s.m.workouts))
	for _, id := range sortedKeys(s.m.workouts) {
		w := s.m.workouts[id]
		workouts = append(workouts, &w)
	}
	return workouts, nil
}

func (s memoryWorkouts) GetByID(id int64) (*models.Workout, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	w, ok := s.m.workouts[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (s memoryWorkouts) Update(id int64, w *models.Workout) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	existing, ok := s.m.workouts[id]
	if !ok {
		return models.NotFound("workout %d not found", id)
	}
	if s.m.nameTaken(w.Name, id) {
		return models.Duplicate("workout %q already exists", w.Name)
	}
	existing.Name = w.Name
	existing.DurationMinutes = w.DurationMinutes
	s.m.workouts[id] = existing
	return nil
}

func (s memoryWorkouts) Delete(id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.workouts[id]; !ok {
		return models.NotFound("workout %d not found", id)
	}
	delete(s.m.workouts, id)
	for eid, e := range s.m.exercises {
		if e.WorkoutID == id {
			delete(s.m.exercises, eid)
		}
	}
	return nil
}

func (s memoryWorkouts) ExistsByName(name string) (bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.m.nameTaken(name, 0), nil
}

func (s memoryWorkouts) ExistsByNameExcludingID(name string, excludeID int64) (bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return s.m.nameTaken(name, excludeID), nil
}

func (s memoryWorkouts) ShortestOfKind(kind models.Kind) (*models.Workout, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var shortest *models.Workout
	for _, id := range sortedKeys(s.m.workouts) {
		w := s.m.workouts[id]
		if w.Kind() != kind {
			continue
		}
		if shortest == nil || w.DurationMinutes < shortest.DurationMinutes {
			shortest = &w
		}
	}
	return shortest, nil
}

type memoryExercises struct{ m *MemoryStore }

func (s memoryExercises) Create(e *models.Exercise) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.workouts[e.WorkoutID]; !ok {
		return models.NotFound("workout %d not found", e.WorkoutID)
	}
	s.m.nextExerciseID++
	e.ID = s.m.nextExerciseID
	s.m.exercises[e.ID] = *e
	return nil
}

func (s memoryExercises) GetAll() ([]*models.Exercise, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	exercises := make([]*models.Exercise, 0, len(s.m.exercises))
	for _, id := range sortedKeys(s.m.exercises) {
		e := s.m.exercises[id]
		exercises = append(exercises, &e)
	}
	return exercises, nil
}

func (s memoryExercises) GetByID(id int64) (*models.Exercise, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	e, ok := s.m.exercises[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s memoryExercises) Update(id int64, e *models.Exercise) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	existing, ok := s.m.exercises[id]
	if !ok {
		return models.NotFound("exercise %d not found", id)
	}
	existing.Name = e.Name
	existing.Sets = e.Sets
	existing.Reps = e.Reps
	s.m.exercises[id] = existing
	return nil
}

func (s memoryExercises) Delete(id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.exercises[id]; !ok {
		return models.NotFound("exercise %d not found", id)
	}
	delete(s.m.exercises, id)
	return nil
}

func (s memoryExercises) ByWorkoutID(workoutID int64) ([]*models.Exercise, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	exercises := []*models.Exercise{}
	for _, id := range sortedKeys(s.m.exercises) {
		e := s.m.exercises[id]
		if e.WorkoutID == workoutID {
			exercises = append(exercises, &e)
		}
	}
	return exercises, nil
}
