package reminder

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/minderapp/minder/internal/logger"
	"github.com/minderapp/minder/internal/model"
	"github.com/minderapp/minder/internal/store"
)

// Field limits in characters, applied after trimming whitespace
const (
	TitleMinLength       = 3
	TitleMaxLength       = 100
	TagsMaxLength        = 350
	DescriptionMaxLength = 1500
)

// PastWindow is the hours value callers use for the "past reminders" view.
// Any negative value selects past reminders; the magnitude is ignored, since
// the expiry prune has already dropped everything over 72 hours old.
const PastWindow = -72

// Reminder validation failures, checked in this order; the first failure
// short-circuits
var (
	ErrInvalidDeadline    = errors.New("due date is missing, malformed or in the past")
	ErrInvalidTitle       = errors.New("title must be 3 to 100 characters")
	ErrInvalidTags        = errors.New("tags must be at most 350 characters")
	ErrInvalidDescription = errors.New("description must be at most 1500 characters")
)

// Engine creates reminders and answers time-windowed queries over a user's
// reminder store
type Engine struct {
	stores *store.Manager
	now    func() time.Time
}

// NewEngine creates a reminder engine backed by the given stores
func NewEngine(stores *store.Manager) *Engine {
	return &Engine{stores: stores, now: time.Now}
}

// Create validates and stores a new reminder. The due date arrives in
// ISO-8601 form and is converted to the canonical format before storage.
func (e *Engine) Create(userID, title, dueISO, tags, description string) error {
	due, err := ParseISO(dueISO)
	if err != nil || !due.After(e.now()) {
		return ErrInvalidDeadline
	}

	// limits count characters, not bytes
	titleLen := utf8.RuneCountInString(strings.TrimSpace(title))
	if titleLen < TitleMinLength || titleLen > TitleMaxLength {
		return ErrInvalidTitle
	}
	if utf8.RuneCountInString(strings.TrimSpace(tags)) > TagsMaxLength {
		return ErrInvalidTags
	}
	if utf8.RuneCountInString(strings.TrimSpace(description)) > DescriptionMaxLength {
		return ErrInvalidDescription
	}

	return e.stores.UserExec(userID, "Add reminder", store.QueryInsertReminder,
		uuid.NewString(), ToCanonical(due), title, tags, description)
}

// Window returns the user's reminders due within periodHours hours of now,
// sorted ascending by due date, along with a count summary. A negative
// periodHours selects past-due reminders instead. Expired reminders (over
// 72 hours past due) are pruned before the query runs.
func (e *Engine) Window(userID string, periodHours int) ([]model.Reminder, string, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if periodHours >= 0 {
		rows, err = e.stores.UserQuery(userID,
			fmt.Sprintf("Get reminders within next %d hours", periodHours),
			store.QueryRemindersWithin, periodHours)
	} else {
		rows, err = e.stores.UserQuery(userID, "Get past reminders",
			store.QueryPastReminders)
	}
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	now := e.now()
	reminders := []model.Reminder{}
	for rows.Next() {
		var rem model.Reminder
		if err := rows.Scan(&rem.ID, &rem.DueDate, &rem.Title, &rem.Tags, &rem.Description); err != nil {
			logger.Error("Failed to scan reminder record",
				logger.F("user", userID), logger.F("error", err))
			continue
		}
		rem.Color = model.DeadlineColor(rem.DueDate, now)
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("reading reminder records: %w", err)
	}

	// canonical timestamps sort chronologically as strings
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].DueDate < reminders[j].DueDate
	})

	var summary string
	if periodHours > 0 {
		summary = fmt.Sprintf("Found %d reminder(s) within the next %d hours.",
			len(reminders), periodHours)
	} else {
		summary = fmt.Sprintf("Found %d expired reminder(s) (up to 72 hours since the present)",
			len(reminders))
	}

	return reminders, summary, nil
}
