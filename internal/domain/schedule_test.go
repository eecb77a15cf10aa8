package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func TestWorkingHoursEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   WorkingHoursEntry
		wantErr bool
	}{
		{
			name:  "valid enabled day",
			entry: WorkingHoursEntry{Weekday: 1, Enabled: true, Start: "08:00", End: "18:00"},
		},
		{
			name: "valid day with breaks",
			entry: WorkingHoursEntry{Weekday: 1, Enabled: true, Start: "08:00", End: "18:00",
				Breaks: []BreakInterval{{Start: "12:00", End: "13:00"}, {Start: "16:00", End: "16:30"}}},
		},
		{
			name:  "disabled day skips window checks",
			entry: WorkingHoursEntry{Weekday: 0, Enabled: false},
		},
		{
			name:    "start equals end",
			entry:   WorkingHoursEntry{Weekday: 1, Enabled: true, Start: "08:00", End: "08:00"},
			wantErr: true,
		},
		{
			name:    "start after end",
			entry:   WorkingHoursEntry{Weekday: 1, Enabled: true, Start: "18:00", End: "08:00"},
			wantErr: true,
		},
		{
			name:    "invalid weekday",
			entry:   WorkingHoursEntry{Weekday: 7, Enabled: false},
			wantErr: true,
		},
		{
			name: "break outside window",
			entry: WorkingHoursEntry{Weekday: 1, Enabled: true, Start: "08:00", End: "18:00",
				Breaks: []BreakInterval{{Start: "07:00", End: "09:00"}}},
			wantErr: true,
		},
		{
			name: "overlapping breaks",
			entry: WorkingHoursEntry{Weekday: 1, Enabled: true, Start: "08:00", End: "18:00",
				Breaks: []BreakInterval{{Start: "12:00", End: "13:00"}, {Start: "12:30", End: "14:00"}}},
			wantErr: true,
		},
		{
			name: "inverted break",
			entry: WorkingHoursEntry{Weekday: 1, Enabled: true, Start: "08:00", End: "18:00",
				Breaks: []BreakInterval{{Start: "13:00", End: "12:00"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWorkingHours)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkingHoursWeek_Validate_DuplicateWeekday(t *testing.T) {
	week := WorkingHoursWeek{
		{Weekday: 1, Enabled: true, Start: "08:00", End: "18:00"},
		{Weekday: 1, Enabled: false},
	}
	assert.ErrorIs(t, week.Validate(), ErrInvalidWorkingHours)
}

func TestWorkingHoursWeek_EntryFor(t *testing.T) {
	week := WorkingHoursWeek{
		{Weekday: 1, Enabled: true, Start: "08:00", End: "18:00"},
		{Weekday: 2, Enabled: false},
	}

	// 2025-10-13 - понедельник
	monday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	entry := week.EntryFor(monday)
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.Weekday)

	sunday := time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, week.EntryFor(sunday))
}

func TestBlockedDate_Matches(t *testing.T) {
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	otherDate := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)

	tenantWide := &BlockedDate{TenantID: 1, Date: date}
	assert.True(t, tenantWide.Matches(date, 10))
	assert.True(t, tenantWide.Matches(date, 20))
	assert.False(t, tenantWide.Matches(otherDate, 10))

	scoped := &BlockedDate{TenantID: 1, Date: date, ProfessionalID: ptr.Ptr(int64(10))}
	assert.True(t, scoped.Matches(date, 10))
	assert.False(t, scoped.Matches(date, 20))
}
