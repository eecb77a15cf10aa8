package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// GenerateSlots builds the candidate grid of start times for a single day.
//
// The grid starts at the working window's opening time and advances by
// durationMinutes plus bufferMinutes. A slot is emitted when it fits
// entirely inside the window and does not overlap any break. A negative
// buffer is treated as zero. The function is pure: the result depends
// only on its arguments.
func GenerateSlots(entry *WorkingHoursEntry, durationMinutes, bufferMinutes int) []types.TimeString {
	if entry == nil || !entry.Enabled {
		return nil
	}

	start, err := entry.Start.Minutes()
	if err != nil {
		return nil
	}
	end, err := entry.End.Minutes()
	if err != nil {
		return nil
	}

	if bufferMinutes < 0 {
		bufferMinutes = 0
	}
	step := durationMinutes + bufferMinutes
	if step <= 0 {
		return nil
	}

	var slots []types.TimeString
	for current := start; current+durationMinutes <= end; current += step {
		if overlapsAnyBreak(current, current+durationMinutes, entry.Breaks) {
			continue
		}
		slots = append(slots, minutesToTimeString(current))
	}
	return slots
}

// Strict overlap: slots adjoining a break boundary are allowed.
func overlapsAnyBreak(slotStart, slotEnd int, breaks []BreakInterval) bool {
	for _, br := range breaks {
		brStart, err := br.Start.Minutes()
		if err != nil {
			continue
		}
		brEnd, err := br.End.Minutes()
		if err != nil {
			continue
		}
		if slotStart < brEnd && brStart < slotEnd {
			return true
		}
	}
	return false
}

// DateBlocked reports whether any blocked date applies to the given
// professional on the given day.
func DateBlocked(blocked []*BlockedDate, date time.Time, professionalID int64) bool {
	for _, bd := range blocked {
		if bd.Matches(date, professionalID) {
			return true
		}
	}
	return false
}

func minutesToTimeString(total int) types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}
