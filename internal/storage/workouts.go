// ABOUTME: Workout CRUD, lookup, and kind queries for SQLite storage.
// ABOUTME: Deleting a workout cascades to its exercises through the foreign key.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
)

// WorkoutRepository implements WorkoutStore on SQLite.
type WorkoutRepository struct {
	db *sql.DB
}

var _ WorkoutStore = (*WorkoutRepository)(nil)

const workoutColumns = `id, name, type, duration_minutes`

// Create stores a new workout and sets its ID.
func (r *WorkoutRepository) Create(w *models.Workout) error {
	query := `INSERT INTO workout (name, type, duration_minutes) VALUES (?, ?, ?)`
	result, err := r.db.Exec(query, w.Name, string(w.Kind()), w.DurationMinutes)
	if err != nil {
		return wrapSQLError("create workout", fmt.Sprintf("workout %q", w.Name), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.DatabaseError("create workout", err)
	}
	w.ID = id
	return nil
}

// GetAll retrieves every workout in insertion order.
func (r *WorkoutRepository) GetAll() ([]*models.Workout, error) {
	rows, err := r.db.Query(`SELECT ` + workoutColumns + ` FROM workout ORDER BY id ASC`)
	if err != nil {
		return nil, models.DatabaseError("list workouts", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// GetByID retrieves a workout, or nil if it does not exist.
func (r *WorkoutRepository) GetByID(id int64) (*models.Workout, error) {
	row := r.db.QueryRow(`SELECT `+workoutColumns+` FROM workout WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, models.DatabaseError(fmt.Sprintf("get workout %d", id), err)
	}
	return w, nil
}

// Update changes name and duration. The stored type is never rewritten.
func (r *WorkoutRepository) Update(id int64, w *models.Workout) error {
	result, err := r.db.Exec(`UPDATE workout SET name = ?, duration_minutes = ? WHERE id = ?`,
		w.Name, w.DurationMinutes, id)
	if err != nil {
		return wrapSQLError("update workout", fmt.Sprintf("workout %q", w.Name), err)
	}
	return requireAffected(result, "update workout", fmt.Sprintf("workout %d", id))
}

// Delete removes a workout and, by cascade, its exercises.
func (r *WorkoutRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM workout WHERE id = ?`, id)
	if err != nil {
		return models.DatabaseError("delete workout", err)
	}
	return requireAffected(result, "delete workout", fmt.Sprintf("workout %d", id))
}

// ExistsByName reports whether any workout uses name.
func (r *WorkoutRepository) ExistsByName(name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM workout WHERE name = ?)`, name).Scan(&exists)
	if err != nil {
		return false, models.DatabaseError("lookup workout name", err)
	}
	return exists, nil
}

// ExistsByNameExcludingID reports whether a workout other than excludeID uses name.
func (r *WorkoutRepository) ExistsByNameExcludingID(name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM workout WHERE name = ? AND id <> ?)`,
		name, excludeID).Scan(&exists)
	if err != nil {
		return false, models.DatabaseError("lookup workout name", err)
	}
	return exists, nil
}

// ShortestOfKind returns the shortest workout of kind, or nil if none exist.
func (r *WorkoutRepository) ShortestOfKind(kind models.Kind) (*models.Workout, error) {
	row := r.db.QueryRow(`
		SELECT `+workoutColumns+`
		FROM workout
		WHERE type = ?
		ORDER BY duration_minutes ASC, id ASC
		LIMIT 1
	`, string(kind))
	w, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, models.DatabaseError("shortest "+kind.Label()+" workout", err)
	}
	return w, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanWorkout scans a single row into a Workout.
func scanWorkout(row rowScanner) (*models.Workout, error) {
	var (
		id       int64
		name     string
		kindStr  string
		duration int
	)
	if err := row.Scan(&id, &name, &kindStr, &duration); err != nil {
		return nil, err
	}

	kind, err := models.ParseKind(kindStr)
	if err != nil {
		return nil, fmt.Errorf("workout %d: %w", id, err)
	}
	return models.RestoreWorkout(id, name, duration, kind), nil
}

// scanWorkouts scans multiple rows into a slice of Workouts.
func scanWorkouts(rows *sql.Rows) ([]*models.Workout, error) {
	workouts := []*models.Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, models.DatabaseError("scan workout", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, models.DatabaseError("scan workouts", err)
	}
	return workouts, nil
}

// requireAffected turns a zero-row write into a not-found error.
func requireAffected(result sql.Result, op, subject string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return models.DatabaseError(op, err)
	}
	if affected == 0 {
		return models.NotFound("%s not found", subject)
	}
	return nil
}
