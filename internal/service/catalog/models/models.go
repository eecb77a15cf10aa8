package models

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	ProfessionalID  int64   `json:"professionalId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// UpdateServiceRequest запрос на обновление услуги
// Все поля опциональны - обновляются только переданные значения
type UpdateServiceRequest struct {
	ProfessionalID  *int64   `json:"professionalId,omitempty"`
	Name            *string  `json:"name,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// CreateProfessionalRequest запрос на создание специалиста
type CreateProfessionalRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// UpdateProfessionalRequest запрос на обновление специалиста
type UpdateProfessionalRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	ProfessionalID  int64   `json:"professionalId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Active          bool    `json:"active"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ProfessionalResponse ответ с данными специалиста
type ProfessionalResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ProfessionalListResponse ответ со списком специалистов
type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		ProfessionalID:  s.ProfessionalID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Active:          s.Active,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		if serviceResp := FromDomainService(s); serviceResp != nil {
			resp.Services = append(resp.Services, *serviceResp)
		}
	}
	return resp
}

// FromDomainProfessional конвертирует domain модель в DTO
func FromDomainProfessional(p *domain.Professional) *ProfessionalResponse {
	if p == nil {
		return nil
	}
	return &ProfessionalResponse{
		ID:    p.ID,
		Name:  p.Name,
		Phone: p.Phone,
		Email: p.Email,
	}
}

// FromDomainProfessionalList конвертирует список domain моделей в DTO
func FromDomainProfessionalList(professionals []*domain.Professional) *ProfessionalListResponse {
	resp := &ProfessionalListResponse{Professionals: make([]ProfessionalResponse, 0, len(professionals))}
	for _, p := range professionals {
		if profResp := FromDomainProfessional(p); profResp != nil {
			resp.Professionals = append(resp.Professionals, *profResp)
		}
	}
	return resp
}
