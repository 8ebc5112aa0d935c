package sqlite

import (
	"database/sql"
	"time"
)

// nullTime stores zero times as NULL and others as RFC3339 text.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// readTime reverses nullTime. NULL and unparsable text read as zero.
func readTime(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullText stores empty strings as NULL.
func nullText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func intBool(b bool) int {
	if b {
		return 1
	}
	return 0
}
