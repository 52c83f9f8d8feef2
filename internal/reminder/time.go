package reminder

import (
	"fmt"
	"time"

	"github.com/minderapp/minder/internal/model"
)

// isoFormats are the accepted input layouts for reminder due dates. Browsers
// submit datetime-local values without seconds; the other layouts cover
// API clients.
var isoFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

// ParseISO parses an ISO-8601 due date in local time
func ParseISO(s string) (time.Time, error) {
	for _, layout := range isoFormats {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}

// ToCanonical renders a time in the canonical storage format
func ToCanonical(t time.Time) string {
	return t.Format(model.TimeFormat)
}

// FromCanonical parses a canonical storage timestamp in local time
func FromCanonical(s string) (time.Time, error) {
	return time.ParseInLocation(model.TimeFormat, s, time.Local)
}
