package model

import "time"

// TimeFormat is the canonical storage format for due dates and event
// timestamps. Fixed-width and zero-padded, so sorting the strings
// lexicographically sorts them chronologically. Local time, no zone suffix.
const TimeFormat = "2006-01-02 15:04:05"

// Deadline proximity colors, shown on the reminder row
const (
	ColorRed    = "#e3735d" // due within 24 hours
	ColorOrange = "#dba723" // due within 48 hours
	ColorYellow = "#d1d435" // due within 72 hours
	ColorGreen  = "#3bc930" // due at least 3 days out
	ColorGray   = "#989898" // default, including past due
)

// Reminder is a single reminder belonging to a user
type Reminder struct {
	ID          string `json:"id"`
	DueDate     string `json:"due_date"` // canonical format
	Title       string `json:"title"`
	Tags        string `json:"tags"`
	Description string `json:"description"`
	// Color is derived from DueDate at fetch time, never stored
	Color string `json:"color,omitempty"`
}

// DeadlineColor classifies how close a due date is to now. Whole hours
// remaining are computed by truncating total seconds toward zero, so a
// reminder less than an hour past due still counts as zero hours left.
func DeadlineColor(dueDate string, now time.Time) string {
	due, err := time.ParseInLocation(TimeFormat, dueDate, now.Location())
	if err != nil {
		return ColorGray
	}

	hoursLeft := int(due.Sub(now).Seconds()) / 3600

	switch {
	case hoursLeft >= 0 && hoursLeft < 24:
		return ColorRed
	case hoursLeft >= 24 && hoursLeft < 48:
		return ColorOrange
	case hoursLeft >= 48 && hoursLeft < 72:
		return ColorYellow
	case hoursLeft >= 72:
		return ColorGreen
	default:
		return ColorGray
	}
}
