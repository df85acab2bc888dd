package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnit_NormalizeWindow_ClampsDueForward(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	u := Unit{
		StartDate: start,
		DueDate:   start.AddDate(0, 0, -2),
	}

	u.NormalizeWindow()

	assert.Equal(t, start, u.DueDate, "inverted window must clamp due to start")
}

func TestUnit_NormalizeWindow_LeavesValidWindow(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	due := start.AddDate(0, 0, 5)
	u := Unit{StartDate: start, DueDate: due}

	u.NormalizeWindow()

	assert.Equal(t, due, u.DueDate)
}

func TestUnit_DependsOn(t *testing.T) {
	u := Unit{Dependencies: []string{"a", "b"}}

	assert.True(t, u.DependsOn("a"))
	assert.False(t, u.DependsOn("c"))
}

func TestUnit_IsDone(t *testing.T) {
	tests := []struct {
		status UnitStatus
		want   bool
	}{
		{UnitTodo, false},
		{UnitInProgress, false},
		{UnitDone, true},
		{UnitCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			u := Unit{Status: tt.status}
			assert.Equal(t, tt.want, u.IsDone())
		})
	}
}
