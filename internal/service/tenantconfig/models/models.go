package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// UpdateConfigRequest запрос на обновление настроек тенанта
// Все поля опциональны - обновляются только переданные значения.
// WorkingHours и BlockedDates заменяются целиком, если переданы.
type UpdateConfigRequest struct {
	Name                    *string            `json:"name,omitempty"`
	Address                 *string            `json:"address,omitempty"`
	Phone                   *string            `json:"phone,omitempty"`
	BufferMinutes           *int               `json:"bufferMinutes,omitempty"`
	CancellationWindowHours *int               `json:"cancellationWindowHours,omitempty"`
	WorkingHours            []WorkingHoursDay  `json:"workingHours,omitempty"`
	BlockedDates            []BlockedDateEntry `json:"blockedDates,omitempty"`
}

// WorkingHoursDay расписание одного дня недели
type WorkingHoursDay struct {
	Weekday int             `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	Enabled bool            `json:"enabled"`
	Start   string          `json:"start,omitempty"` // "09:00"
	End     string          `json:"end,omitempty"`   // "18:00"
	Breaks  []BreakInterval `json:"breaks,omitempty"`
}

// BreakInterval перерыв внутри рабочего дня
type BreakInterval struct {
	Start string `json:"start"` // "12:00"
	End   string `json:"end"`   // "13:00"
}

// BlockedDateEntry заблокированная дата
type BlockedDateEntry struct {
	Date           string  `json:"date"` // "2025-12-25"
	ProfessionalID *int64  `json:"professionalId,omitempty"`
	Reason         *string `json:"reason,omitempty"`
}

// ToDomainWeek конвертирует расписание недели в domain модель
func (r *UpdateConfigRequest) ToDomainWeek(tenantID int64) domain.WorkingHoursWeek {
	week := make(domain.WorkingHoursWeek, 0, len(r.WorkingHours))
	for _, day := range r.WorkingHours {
		entry := domain.WorkingHoursEntry{
			TenantID: tenantID,
			Weekday:  day.Weekday,
			Enabled:  day.Enabled,
			Start:    types.TimeString(day.Start),
			End:      types.TimeString(day.End),
		}
		for _, br := range day.Breaks {
			entry.Breaks = append(entry.Breaks, domain.BreakInterval{
				Start: types.TimeString(br.Start),
				End:   types.TimeString(br.End),
			})
		}
		week = append(week, entry)
	}
	return week
}

// ToDomainBlockedDates конвертирует заблокированные даты в domain модели
func (r *UpdateConfigRequest) ToDomainBlockedDates(tenantID int64) ([]*domain.BlockedDate, error) {
	blocked := make([]*domain.BlockedDate, 0, len(r.BlockedDates))
	for _, entry := range r.BlockedDates {
		date, err := time.Parse(domain.DateFormat, entry.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid blocked date %q: %v", entry.Date, err)
		}
		blocked = append(blocked, &domain.BlockedDate{
			TenantID:       tenantID,
			Date:           date,
			ProfessionalID: entry.ProfessionalID,
			Reason:         entry.Reason,
		})
	}
	return blocked, nil
}

// Response модели

// ConfigResponse настройки тенанта: профиль, политика записи и расписание
type ConfigResponse struct {
	ID                      int64              `json:"id"`
	Name                    string             `json:"name"`
	Slug                    string             `json:"slug"`
	Address                 *string            `json:"address,omitempty"`
	Phone                   *string            `json:"phone,omitempty"`
	BufferMinutes           int                `json:"bufferMinutes"`
	CancellationWindowHours int                `json:"cancellationWindowHours"`
	WorkingHours            []WorkingHoursDay  `json:"workingHours"`
	BlockedDates            []BlockedDateEntry `json:"blockedDates"`
}

// FromDomain собирает ответ из domain моделей
func FromDomain(tenant *domain.Tenant, week domain.WorkingHoursWeek, blocked []*domain.BlockedDate) *ConfigResponse {
	resp := &ConfigResponse{
		ID:                      tenant.ID,
		Name:                    tenant.Name,
		Slug:                    tenant.Slug,
		Address:                 tenant.Address,
		Phone:                   tenant.Phone,
		BufferMinutes:           tenant.BufferMinutes,
		CancellationWindowHours: tenant.CancellationWindowHours,
		WorkingHours:            make([]WorkingHoursDay, 0, len(week)),
		BlockedDates:            make([]BlockedDateEntry, 0, len(blocked)),
	}

	for _, entry := range week {
		day := WorkingHoursDay{
			Weekday: entry.Weekday,
			Enabled: entry.Enabled,
			Start:   entry.Start.String(),
			End:     entry.End.String(),
		}
		for _, br := range entry.Breaks {
			day.Breaks = append(day.Breaks, BreakInterval{
				Start: br.Start.String(),
				End:   br.End.String(),
			})
		}
		resp.WorkingHours = append(resp.WorkingHours, day)
	}

	for _, bd := range blocked {
		resp.BlockedDates = append(resp.BlockedDates, BlockedDateEntry{
			Date:           bd.Date.Format(domain.DateFormat),
			ProfessionalID: bd.ProfessionalID,
			Reason:         bd.Reason,
		})
	}

	return resp
}
