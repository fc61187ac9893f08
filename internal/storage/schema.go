// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the workout and exercise tables with their constraints.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workout (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE COLLATE NOCASE,
		type TEXT NOT NULL CHECK (type IN ('CARDIO', 'STRENGTH')),
		duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0)
	);

	CREATE TABLE IF NOT EXISTS exercise (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		sets INTEGER NOT NULL CHECK (sets > 0),
		reps INTEGER NOT NULL CHECK (reps > 0),
		FOREIGN KEY (workout_id) REFERENCES workout(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_workout_type_duration ON workout(type, duration_minutes, id);
	CREATE INDEX IF NOT EXISTS idx_exercise_workout ON exercise(workout_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
