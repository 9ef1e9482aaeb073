package repository

import (
	"time"
)

// dayLayout is the storage format of the plan_items.day column.
const dayLayout = "2006-01-02"

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func dayKey(t time.Time) string {
	return t.Format(dayLayout)
}
