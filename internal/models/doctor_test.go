package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDoctorUsername(t *testing.T) {
	tests := []struct {
		fullName string
		want     string
	}{
		{"Jane Doe", "jane.doe"},
		{"JANE DOE", "jane.doe"},
		{"  Jane Doe  ", "jane.doe"},
		{"Jane Anne Doe", "jane.anne.doe"},
		{"Prince", "prince"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DoctorUsername(tt.fullName), "full name %q", tt.fullName)
	}
}

func TestAppointmentStatusTerminal(t *testing.T) {
	assert.False(t, StatusBooked.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestSlotKeyFor(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2024-01-10")
	assert.Equal(t, "7|2024-01-10|08:00-12:00", SlotKeyFor(7, date, "08:00-12:00"))
}
