package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineColorBoundaries(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		offset time.Duration
		want   string
	}{
		{"due right now", 0, ColorRed},
		{"one second out", time.Second, ColorRed},
		{"just under a day", 24*time.Hour - time.Second, ColorRed},
		{"exactly one day", 24 * time.Hour, ColorOrange},
		{"just under two days", 48*time.Hour - time.Second, ColorOrange},
		{"exactly two days", 48 * time.Hour, ColorYellow},
		{"just under three days", 72*time.Hour - time.Second, ColorYellow},
		{"exactly three days", 72 * time.Hour, ColorGreen},
		{"a year out", 365 * 24 * time.Hour, ColorGreen},
		{"an hour past due", -time.Hour, ColorGray},
		{"days past due", -50 * time.Hour, ColorGray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := now.Add(tt.offset).Format(TimeFormat)
			assert.Equal(t, tt.want, DeadlineColor(due, now))
		})
	}
}

func TestDeadlineColorTruncatesTowardZero(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

	// less than an hour past due truncates to zero hours left, which still
	// lands in the red bucket
	due := now.Add(-30 * time.Minute).Format(TimeFormat)
	assert.Equal(t, ColorRed, DeadlineColor(due, now))
}

func TestDeadlineColorMalformed(t *testing.T) {
	now := time.Now()
	assert.Equal(t, ColorGray, DeadlineColor("not a timestamp", now))
	assert.Equal(t, ColorGray, DeadlineColor("", now))
}
