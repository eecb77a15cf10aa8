package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/phone"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Slug == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано и корректно
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.ClientName == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if !phone.IsValid(req.ClientPhone) {
		return fmt.Errorf("%w: invalid clientPhone", ErrInvalidInput)
	}

	return nil
}

// validateSlot проверяет, что запрошенное время принадлежит сетке слотов
// и не занято активной записью. Вызывается внутри сериализуемой транзакции,
// когда список записей уже прочитан с блокировкой.
func validateSlot(
	startTime types.TimeString,
	grid []types.TimeString,
	appointments []*domain.Appointment,
) error {
	inGrid := false
	for _, slot := range grid {
		if slot == startTime {
			inGrid = true
			break
		}
	}
	if !inGrid {
		return fmt.Errorf("%w: startTime=%s is not on the slot grid", ErrInvalidTimeSlot, startTime)
	}

	for _, appt := range appointments {
		if appt.OccupiesSlot() && appt.StartTime == startTime {
			return fmt.Errorf("%w: startTime=%s", ErrSlotTaken, startTime)
		}
	}

	return nil
}
