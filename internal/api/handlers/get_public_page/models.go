package get_public_page

import (
	getPublicPage "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_public_page"
)

// PublicPageResponse HTTP response model
type PublicPageResponse struct {
	ID            int64                  `json:"id"`
	Name          string                 `json:"name"`
	Slug          string                 `json:"slug"`
	Address       *string                `json:"address,omitempty"`
	Phone         *string                `json:"phone,omitempty"`
	Services      []ServiceResponse      `json:"services"`
	Professionals []ProfessionalResponse `json:"professionals"`
	WorkingHours  []WorkingHoursDay      `json:"workingHours"`
}

// ServiceResponse услуга на публичной странице
type ServiceResponse struct {
	ID              int64   `json:"id"`
	ProfessionalID  int64   `json:"professionalId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ProfessionalResponse специалист на публичной странице
type ProfessionalResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// WorkingHoursDay расписание одного дня недели
type WorkingHoursDay struct {
	Weekday int             `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	Enabled bool            `json:"enabled"`
	Start   string          `json:"start,omitempty"`
	End     string          `json:"end,omitempty"`
	Breaks  []BreakInterval `json:"breaks,omitempty"`
}

// BreakInterval перерыв внутри рабочего дня
type BreakInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getPublicPage.Response) *PublicPageResponse {
	out := &PublicPageResponse{
		ID:            resp.ID,
		Name:          resp.Name,
		Slug:          resp.Slug,
		Address:       resp.Address,
		Phone:         resp.Phone,
		Services:      make([]ServiceResponse, 0, len(resp.Services)),
		Professionals: make([]ProfessionalResponse, 0, len(resp.Professionals)),
	}
	for _, s := range resp.Services {
		out.Services = append(out.Services, ServiceResponse{
			ID:              s.ID,
			ProfessionalID:  s.ProfessionalID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	for _, p := range resp.Professionals {
		out.Professionals = append(out.Professionals, ProfessionalResponse{ID: p.ID, Name: p.Name})
	}
	for _, day := range resp.WorkingHours {
		outDay := WorkingHoursDay{
			Weekday: day.Weekday,
			Enabled: day.Enabled,
			Start:   day.Start,
			End:     day.End,
		}
		for _, br := range day.Breaks {
			outDay.Breaks = append(outDay.Breaks, BreakInterval{Start: br.Start, End: br.End})
		}
		out.WorkingHours = append(out.WorkingHours, outDay)
	}
	return out
}
