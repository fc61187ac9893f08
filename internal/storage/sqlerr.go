// ABOUTME: Maps SQLite engine errors onto the shared error taxonomy.
// ABOUTME: Constraint violations become duplicate/not-found/invalid errors.
package storage

import (
	"errors"
	"strings"

	"github.com/harperreed/fitness/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// wrapSQLError classifies err from an operation on subject (e.g. "workout \"Run\"").
func wrapSQLError(op, subject string, err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return models.DatabaseError(op, err)
	}

	code := se.Code()
	msg := se.Error()
	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "UNIQUE"):
		return models.Duplicate("%s already exists", subject)
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY,
		code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "FOREIGN KEY"):
		return models.NotFound("%s references a missing workout", subject)
	case code == sqlite3.SQLITE_CONSTRAINT_CHECK,
		code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(msg, "CHECK"):
		return models.InvalidInput("%s violates a field constraint", subject)
	}
	return models.DatabaseError(op, err)
}
