package db

import "strings"

// IsUniqueViolation reports whether err is a unique-constraint violation from
// either backend: Postgres reports "duplicate key value", sqlite reports
// "UNIQUE constraint failed". When constraintName is provided the error text
// must also reference that constraint or column.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && !strings.Contains(msg, constraintName) {
		return false
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
