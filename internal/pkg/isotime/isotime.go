// Package isotime renders timestamps the way every API response exposes them:
// ISO-8601 in UTC with millisecond precision.
package isotime

import (
	"database/sql"
	"time"
)

const Layout = "2006-01-02T15:04:05.000Z"

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// FormatNull returns nil for a NULL column.
func FormatNull(t sql.NullTime) *string {
	if !t.Valid {
		return nil
	}
	s := Format(t.Time)
	return &s
}
