package storage

import (
	"strings"
)

// isUniqueConstraintError performs a cheap check across supported drivers.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	// sqlite | mysql | postgres common markers
	if
	// SQLite
	(containsAny(msg, "UNIQUE constraint failed", "constraint failed")) ||
		// MySQL
		(containsAny(msg, "Duplicate entry", "Error 1062")) ||
		// Postgres
		(containsAny(msg, "duplicate key value", "violates unique constraint")) {
		return true
	}
	return false
}

// isForeignKeyError reports a violated foreign key across supported drivers.
func isForeignKeyError(err error) bool {
	return containsAny(
		err.Error(),
		// SQLite
		"FOREIGN KEY constraint failed",
		// MySQL
		"Error 1452", "a foreign key constraint fails",
		// Postgres
		"violates foreign key constraint",
	)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
