package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func mondayEntry(start, end string, breaks ...domain.BreakInterval) *domain.WorkingHoursEntry {
	return &domain.WorkingHoursEntry{
		TenantID: 1,
		Weekday:  1,
		Enabled:  true,
		Start:    types.TimeString(start),
		End:      types.TimeString(end),
		Breaks:   breaks,
	}
}

// 2025-10-13 — понедельник
var testDate = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func TestGenerateCandidateSlots_Grid(t *testing.T) {
	tests := []struct {
		name     string
		entry    *domain.WorkingHoursEntry
		duration int
		buffer   int
		want     []types.TimeString
	}{
		{
			name:     "exact fit emits single slot",
			entry:    mondayEntry("08:00", "09:00"),
			duration: 60,
			buffer:   0,
			want:     []types.TimeString{"08:00"},
		},
		{
			name:     "one minute short emits nothing",
			entry:    mondayEntry("08:00", "08:59"),
			duration: 60,
			buffer:   0,
			want:     nil,
		},
		{
			name:     "step includes buffer",
			entry:    mondayEntry("08:00", "10:00"),
			duration: 30,
			buffer:   15,
			want:     []types.TimeString{"08:00", "08:45", "09:30"},
		},
		{
			name:     "negative buffer treated as zero",
			entry:    mondayEntry("08:00", "09:30"),
			duration: 30,
			buffer:   -10,
			want:     []types.TimeString{"08:00", "08:30", "09:00"},
		},
		{
			name:     "disabled day has no slots",
			entry:    &domain.WorkingHoursEntry{TenantID: 1, Weekday: 1, Enabled: false},
			duration: 30,
			buffer:   0,
			want:     nil,
		},
		{
			name:     "nil entry has no slots",
			entry:    nil,
			duration: 30,
			buffer:   0,
			want:     nil,
		},
		{
			name:     "slots overlapping break are skipped",
			entry:    mondayEntry("08:00", "12:00", domain.BreakInterval{Start: "09:00", End: "10:00"}),
			duration: 60,
			buffer:   0,
			want:     []types.TimeString{"08:00", "10:00", "11:00"},
		},
		{
			name:     "slot coinciding with break is skipped",
			entry:    mondayEntry("08:00", "11:00", domain.BreakInterval{Start: "09:00", End: "09:30"}),
			duration: 30,
			buffer:   30,
			want:     []types.TimeString{"08:00", "10:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateCandidateSlots(tt.entry, testDate, nil, 10, tt.duration, tt.buffer)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateCandidateSlots_Deterministic(t *testing.T) {
	entry := mondayEntry("09:00", "18:00", domain.BreakInterval{Start: "12:00", End: "13:00"})

	first := generateCandidateSlots(entry, testDate, nil, 10, 45, 15)
	second := generateCandidateSlots(entry, testDate, nil, 10, 45, 15)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestGenerateCandidateSlots_BlockedDates(t *testing.T) {
	entry := mondayEntry("08:00", "12:00")

	t.Run("tenant-wide block empties the day", func(t *testing.T) {
		blocked := []*domain.BlockedDate{{TenantID: 1, Date: testDate}}
		got := generateCandidateSlots(entry, testDate, blocked, 10, 30, 0)
		assert.Empty(t, got)
	})

	t.Run("block for another professional is ignored", func(t *testing.T) {
		blocked := []*domain.BlockedDate{{TenantID: 1, Date: testDate, ProfessionalID: ptr.Ptr(int64(99))}}
		got := generateCandidateSlots(entry, testDate, blocked, 10, 30, 0)
		assert.NotEmpty(t, got)
	})

	t.Run("block for matching professional empties the day", func(t *testing.T) {
		blocked := []*domain.BlockedDate{{TenantID: 1, Date: testDate, ProfessionalID: ptr.Ptr(int64(10))}}
		got := generateCandidateSlots(entry, testDate, blocked, 10, 30, 0)
		assert.Empty(t, got)
	})

	t.Run("block on another date is ignored", func(t *testing.T) {
		blocked := []*domain.BlockedDate{{TenantID: 1, Date: testDate.AddDate(0, 0, 1)}}
		got := generateCandidateSlots(entry, testDate, blocked, 10, 30, 0)
		assert.NotEmpty(t, got)
	})
}

func TestFilterAvailable(t *testing.T) {
	candidates := []types.TimeString{"08:00", "08:45", "09:30"}

	appt := func(start types.TimeString, status domain.AppointmentStatus) *domain.Appointment {
		return &domain.Appointment{StartTime: start, Status: status}
	}

	t.Run("booked slot is removed, order preserved", func(t *testing.T) {
		got := filterAvailable(candidates, []*domain.Appointment{appt("08:45", domain.StatusPending)})
		assert.Equal(t, []types.TimeString{"08:00", "09:30"}, got)
	})

	t.Run("cancelled appointment frees the slot", func(t *testing.T) {
		got := filterAvailable(candidates, []*domain.Appointment{appt("08:45", domain.StatusCancelled)})
		assert.Equal(t, candidates, got)
	})

	t.Run("confirmed and completed both occupy", func(t *testing.T) {
		got := filterAvailable(candidates, []*domain.Appointment{
			appt("08:00", domain.StatusConfirmed),
			appt("09:30", domain.StatusCompleted),
		})
		assert.Equal(t, []types.TimeString{"08:45"}, got)
	})

	t.Run("appointment outside the grid removes nothing", func(t *testing.T) {
		got := filterAvailable(candidates, []*domain.Appointment{appt("08:10", domain.StatusConfirmed)})
		assert.Equal(t, candidates, got)
	})

	t.Run("no appointments keeps full grid", func(t *testing.T) {
		got := filterAvailable(candidates, nil)
		assert.Equal(t, candidates, got)
	})
}
