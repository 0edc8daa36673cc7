package store

import "strings"

// The modernc driver surfaces SQLite constraint failures as plain errors;
// the message text is the stable part to match on.

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
