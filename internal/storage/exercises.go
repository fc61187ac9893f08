// ABOUTME: Exercise CRUD and per-workout queries for SQLite storage.
// ABOUTME: The owning workout is written once on insert and never updated.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
)

// ExerciseRepository implements ExerciseStore on SQLite.
type ExerciseRepository struct {
	db *sql.DB
}

var _ ExerciseStore = (*ExerciseRepository)(nil)

const exerciseColumns = `id, workout_id, name, sets, reps`

// Create stores a new exercise and sets its ID.
func (r *ExerciseRepository) Create(e *models.Exercise) error {
	query := `INSERT INTO exercise (workout_id, name, sets, reps) VALUES (?, ?, ?, ?)`
	result, err := r.db.Exec(query, e.WorkoutID, e.Name, e.Sets, e.Reps)
	if err != nil {
		return wrapSQLError("create exercise", fmt.Sprintf("exercise %q", e.Name), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.DatabaseError("create exercise", err)
	}
	e.ID = id
	return nil
}

// GetAll retrieves every exercise in insertion order.
func (r *ExerciseRepository) GetAll() ([]*models.Exercise, error) {
	rows, err := r.db.Query(`SELECT ` + exerciseColumns + ` FROM exercise ORDER BY id ASC`)
	if err != nil {
		return nil, models.DatabaseError("list exercises", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// GetByID retrieves an exercise, or nil if it does not exist.
func (r *ExerciseRepository) GetByID(id int64) (*models.Exercise, error) {
	var e models.Exercise
	err := r.db.QueryRow(`SELECT `+exerciseColumns+` FROM exercise WHERE id = ?`, id).
		Scan(&e.ID, &e.WorkoutID, &e.Name, &e.Sets, &e.Reps)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, models.DatabaseError(fmt.Sprintf("get exercise %d", id), err)
	}
	return &e, nil
}

// Update changes name, sets, and reps.
func (r *ExerciseRepository) Update(id int64, e *models.Exercise) error {
	result, err := r.db.Exec(`UPDATE exercise SET name = ?, sets = ?, reps = ? WHERE id = ?`,
		e.Name, e.Sets, e.Reps, id)
	if err != nil {
		return wrapSQLError("update exercise", fmt.Sprintf("exercise %q", e.Name), err)
	}
	return requireAffected(result, "update exercise", fmt.Sprintf("exercise %d", id))
}

// Delete removes an exercise.
func (r *ExerciseRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM exercise WHERE id = ?`, id)
	if err != nil {
		return models.DatabaseError("delete exercise", err)
	}
	return requireAffected(result, "delete exercise", fmt.Sprintf("exercise %d", id))
}

// ByWorkoutID retrieves the exercises of one workout.
func (r *ExerciseRepository) ByWorkoutID(workoutID int64) ([]*models.Exercise, error) {
	rows, err := r.db.Query(`
		SELECT `+exerciseColumns+`
		FROM exercise
		WHERE workout_id = ?
		ORDER BY id ASC
	`, workoutID)
	if err != nil {
		return nil, models.DatabaseError("list exercises", err)
	}
	defer rows.Close()

	return scanExercises(rows)
}

// scanExercises scans multiple rows into a slice of Exercises.
func scanExercises(rows *sql.Rows) ([]*models.Exercise, error) {
	exercises := []*models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Name, &e.Sets, &e.Reps); err != nil {
			return nil, models.DatabaseError("scan exercise", err)
		}
		exercises = append(exercises, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, models.DatabaseError("scan exercises", err)
	}
	return exercises, nil
}
