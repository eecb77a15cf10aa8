package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// PaymentStatus represents the payment state of an appointment
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Appointment represents a booked time slot for a client
type Appointment struct {
	ID             int64
	TenantID       int64
	ClientID       int64
	ServiceID      int64
	ProfessionalID int64
	Date           time.Time // календарная дата записи (без времени)
	StartTime      types.TimeString
	Status         AppointmentStatus
	PaymentStatus  PaymentStatus
	TotalValue     float64
	DepositValue   float64

	// Denormalized data for history
	ServiceName     string
	DurationMinutes int

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// OccupiesSlot returns true if the appointment holds its time slot.
// Cancelled appointments free the slot.
func (a *Appointment) OccupiesSlot() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no transition is defined out of the current status
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle state machine allows
// moving from the current status to target.
//
// pending   -> confirmed | cancelled
// confirmed -> completed | cancelled
// completed, cancelled - терминальные состояния
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCompleted || target == StatusCancelled
	default:
		return false
	}
}

// RevenueContribution возвращает вклад записи в выручку за период:
// завершённые записи учитываются полной стоимостью, подтверждённые с частичной
// оплатой - только суммой предоплаты, остальные не учитываются
func (a *Appointment) RevenueContribution() float64 {
	if a.Status == StatusCompleted {
		return a.TotalValue
	}
	if a.Status == StatusConfirmed && a.PaymentStatus == PaymentPartial {
		return a.DepositValue
	}
	return 0
}

// ValidStatus проверяет, что строка является допустимым статусом записи
func ValidStatus(s string) bool {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// ValidPaymentStatus проверяет, что строка является допустимым статусом оплаты
func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPartial, PaymentPaid:
		return true
	default:
		return false
	}
}

// AppointmentsFilter фильтр для выборки записей тенанта
type AppointmentsFilter struct {
	TenantID         int64              // Обязательный параметр
	ProfessionalID   *int64             // Фильтр по специалисту (опционально)
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые записи
}
