package reminder

import (
	"strings"
	"testing"
	"time"

	"github.com/minderapp/minder/internal/model"
	"github.com/minderapp/minder/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*Engine, *store.Manager) {
	t.Helper()
	stores, err := store.Open(t.TempDir(), store.UsersStore, store.FailedSigninLog)
	require.NoError(t, err)
	t.Cleanup(func() { stores.Close() })
	return NewEngine(stores), stores
}

// isoIn renders a due date the given duration from now in ISO input form
func isoIn(d time.Duration) string {
	return time.Now().Add(d).Format("2006-01-02T15:04:05")
}

func TestCreateValidation(t *testing.T) {
	e, _ := newTestEngine(t)

	tests := []struct {
		name        string
		title       string
		due         string
		tags        string
		description string
		want        error
	}{
		{"past due date", "valid title", isoIn(-time.Hour), "", "", ErrInvalidDeadline},
		{"malformed due date", "valid title", "whenever", "", "", ErrInvalidDeadline},
		{"empty due date", "valid title", "", "", "", ErrInvalidDeadline},
		{"title too short", "ab", isoIn(time.Hour), "", "", ErrInvalidTitle},
		{"title too long", stringOfLen(101), isoIn(time.Hour), "", "", ErrInvalidTitle},
		{"tags too long", "valid title", isoIn(time.Hour), stringOfLen(351), "", ErrInvalidTags},
		{"description too long", "valid title", isoIn(time.Hour), "", stringOfLen(1501), ErrInvalidDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Create("user-1", tt.title, tt.due, tt.tags, tt.description)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func stringOfLen(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}

func TestCreateTitleBoundary(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.ErrorIs(t, e.Create("user-1", "ab", isoIn(time.Hour), "", ""), ErrInvalidTitle)
	assert.NoError(t, e.Create("user-1", "abc", isoIn(time.Hour), "", ""),
		"three characters is the minimum accepted title")
}

func TestCreateMeasuresCharactersNotBytes(t *testing.T) {
	e, _ := newTestEngine(t)

	// two characters, six bytes: still below the three-character minimum
	assert.ErrorIs(t, e.Create("user-1", "日本", isoIn(time.Hour), "", ""), ErrInvalidTitle)
	assert.NoError(t, e.Create("user-1", "日本語", isoIn(time.Hour), "", ""))

	assert.NoError(t, e.Create("user-1", "valid title", isoIn(time.Hour),
		strings.Repeat("ü", TagsMaxLength), ""),
		"tags at the limit are accepted regardless of byte count")
	assert.ErrorIs(t, e.Create("user-1", "valid title", isoIn(time.Hour),
		strings.Repeat("ü", TagsMaxLength+1), ""), ErrInvalidTags)
}

func TestCreateChecksDeadlineFirst(t *testing.T) {
	e, _ := newTestEngine(t)

	// both the deadline and the title are invalid; the deadline wins
	err := e.Create("user-1", "ab", isoIn(-time.Hour), "", "")
	assert.ErrorIs(t, err, ErrInvalidDeadline)
}

func TestWindowFiltersAndSorts(t *testing.T) {
	e, _ := newTestEngine(t)

	require.NoError(t, e.Create("user-1", "due in 30 hours", isoIn(30*time.Hour), "a", ""))
	require.NoError(t, e.Create("user-1", "due in 6 hours", isoIn(6*time.Hour), "b", ""))
	require.NoError(t, e.Create("user-1", "due in 200 hours", isoIn(200*time.Hour), "c", ""))

	within48, summary, err := e.Window("user-1", 48)
	require.NoError(t, err)
	require.Len(t, within48, 2)
	assert.Equal(t, "due in 6 hours", within48[0].Title, "ascending by due date")
	assert.Equal(t, "due in 30 hours", within48[1].Title)
	assert.Equal(t, "Found 2 reminder(s) within the next 48 hours.", summary)

	within24, _, err := e.Window("user-1", 24)
	require.NoError(t, err)
	require.Len(t, within24, 1)
	assert.Equal(t, "due in 6 hours", within24[0].Title,
		"the 30-hour reminder is outside a 24-hour window")
}

func TestWindowDerivesColors(t *testing.T) {
	e, _ := newTestEngine(t)

	require.NoError(t, e.Create("user-1", "imminent", isoIn(6*time.Hour), "", ""))
	require.NoError(t, e.Create("user-1", "tomorrow", isoIn(30*time.Hour), "", ""))
	require.NoError(t, e.Create("user-1", "comfortable", isoIn(100*time.Hour), "", ""))

	reminders, _, err := e.Window("user-1", 8760)
	require.NoError(t, err)
	require.Len(t, reminders, 3)
	assert.Equal(t, model.ColorRed, reminders[0].Color)
	assert.Equal(t, model.ColorOrange, reminders[1].Color)
	assert.Equal(t, model.ColorGreen, reminders[2].Color)
}

func TestWindowPastReminders(t *testing.T) {
	e, stores := newTestEngine(t)

	// recently past due; inserted directly since Create rejects past dates
	past := time.Now().Add(-10 * time.Hour).Format(model.TimeFormat)
	require.NoError(t, stores.UserExec("user-1", "Add reminder", store.QueryInsertReminder,
		"rem-past", past, "just missed", "", ""))
	require.NoError(t, e.Create("user-1", "still ahead", isoIn(time.Hour), "", ""))

	reminders, summary, err := e.Window("user-1", PastWindow)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "just missed", reminders[0].Title)
	assert.Equal(t, model.ColorGray, reminders[0].Color)
	assert.Equal(t, "Found 1 expired reminder(s) (up to 72 hours since the present)", summary)
}

func TestExpiredRemindersPruned(t *testing.T) {
	e, stores := newTestEngine(t)

	// 80 hours past due: beyond the 72-hour expiry horizon
	expired := time.Now().Add(-80 * time.Hour).Format(model.TimeFormat)
	require.NoError(t, stores.UserExec("user-1", "Add reminder", store.QueryInsertReminder,
		"rem-expired", expired, "long gone", "", ""))

	// any window fetch prunes first
	reminders, _, err := e.Window("user-1", 24)
	require.NoError(t, err)
	assert.Empty(t, reminders)

	// and it stays gone from the past view
	past, _, err := e.Window("user-1", PastWindow)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestPruneIsIdempotent(t *testing.T) {
	e, stores := newTestEngine(t)

	expired := time.Now().Add(-80 * time.Hour).Format(model.TimeFormat)
	require.NoError(t, stores.UserExec("user-1", "Add reminder", store.QueryInsertReminder,
		"rem-expired", expired, "long gone", "", ""))
	require.NoError(t, e.Create("user-1", "keeper", isoIn(time.Hour), "", ""))

	first, _, err := e.Window("user-1", 24)
	require.NoError(t, err)

	second, _, err := e.Window("user-1", 24)
	require.NoError(t, err)
	assert.Equal(t, first, second, "pruning again must change nothing")
	require.Len(t, second, 1)
	assert.Equal(t, "keeper", second[0].Title)
}
