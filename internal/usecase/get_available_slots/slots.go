package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// generateCandidateSlots строит сетку потенциальных слотов для одного дня.
// День без рабочих часов или с действующей блокировкой даёт пустую сетку.
func generateCandidateSlots(
	entry *domain.WorkingHoursEntry,
	date time.Time,
	blocked []*domain.BlockedDate,
	professionalID int64,
	durationMinutes int,
	bufferMinutes int,
) []types.TimeString {
	if domain.DateBlocked(blocked, date, professionalID) {
		return nil
	}
	return domain.GenerateSlots(entry, durationMinutes, bufferMinutes)
}

// filterAvailable убирает из сетки слоты, чьё время начала совпадает с
// временем начала занимающей слот записи. Порядок сохраняется.
func filterAvailable(candidates []types.TimeString, appointments []*domain.Appointment) []types.TimeString {
	occupied := make(map[types.TimeString]struct{}, len(appointments))
	for _, appt := range appointments {
		if !appt.OccupiesSlot() {
			continue
		}
		occupied[appt.StartTime] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, taken := occupied[slot]; taken {
			continue
		}
		available = append(available, slot)
	}
	return available
}
