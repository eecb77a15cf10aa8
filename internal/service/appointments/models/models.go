package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CreateAppointmentRequest запрос на создание записи администратором
type CreateAppointmentRequest struct {
	TenantID      int64
	ServiceID     int64
	Date          time.Time
	StartTime     types.TimeString
	ClientName    string
	ClientPhone   string
	ClientEmail   *string
	Notes         *string
	PaymentStatus *string  // pending | partial | paid, по умолчанию pending
	DepositValue  *float64 // Предоплата, при partial учитывается в выручке
}

// ListAppointmentsRequest запрос на получение записей тенанта
type ListAppointmentsRequest struct {
	TenantID         int64
	ProfessionalID   *int64     // Фильтр по специалисту (опционально)
	StartDate        *time.Time // Начало периода (опционально)
	EndDate          *time.Time // Конец периода (опционально)
	Status           *string    // Фильтр по статусу (опционально)
	IncludeCancelled bool       // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		TenantID:         r.TenantID,
		ProfessionalID:   r.ProfessionalID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		if !domain.ValidStatus(*r.Status) {
			return filter, ErrInvalidStatus
		}
		status := domain.AppointmentStatus(*r.Status)
		filter.Status = &status
	}

	return filter, nil
}

// CompleteAppointmentRequest запрос на завершение записи
type CompleteAppointmentRequest struct {
	PaymentStatus string   `json:"paymentStatus"`        // pending | partial | paid
	TotalValue    *float64 `json:"totalValue,omitempty"` // Итоговая сумма (по умолчанию — цена услуги)
}

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// UpdateNotesRequest запрос на обновление заметок записи
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID             int64  `json:"id"`
	ClientID       int64  `json:"clientId"`
	ServiceID      int64  `json:"serviceId"`
	ProfessionalID int64  `json:"professionalId"`
	Date           string `json:"date"`      // "2025-10-15"
	StartTime      string `json:"startTime"` // "10:00"
	Status         string `json:"status"`
	PaymentStatus  string `json:"paymentStatus"`

	// Денормализованные данные услуги
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	TotalValue      float64 `json:"totalValue"`
	DepositValue    float64 `json:"depositValue"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// MonthlyStatsResponse агрегированная статистика за месяц
type MonthlyStatsResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`

	Revenue        float64 `json:"revenue"`        // Завершённые — полная сумма, подтверждённые с частичной оплатой — предоплата
	CompletionRate float64 `json:"completionRate"` // Доля завершённых среди неотменённых, в процентах
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		ServiceID:          a.ServiceID,
		ProfessionalID:     a.ProfessionalID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		Status:             string(a.Status),
		PaymentStatus:      string(a.PaymentStatus),
		ServiceName:        a.ServiceName,
		DurationMinutes:    a.DurationMinutes,
		TotalValue:         a.TotalValue,
		DepositValue:       a.DepositValue,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}
