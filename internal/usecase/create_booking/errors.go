package create_booking

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант с указанным slug не найден
	ErrTenantNotFound = errors.New("create_booking: tenant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrOutsideWorkingHours возвращается, когда тенант не работает в указанный день
	ErrOutsideWorkingHours = errors.New("create_booking: tenant is closed on this date")

	// ErrDateBlocked возвращается, когда дата заблокирована для записи
	ErrDateBlocked = errors.New("create_booking: date is blocked")

	// ErrInvalidTimeSlot возвращается, когда время начала не принадлежит сетке слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotTaken возвращается, когда слот уже занят другой записью
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
