package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// ListClientsRequest запрос на получение клиентской базы тенанта
type ListClientsRequest struct {
	TenantID int64
	Search   string // Поиск по имени или телефону (опционально)
}

// UpdateNotesRequest запрос на обновление заметок о клиенте
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// Response модели

// ClientResponse ответ с данными клиента
type ClientResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Email      *string `json:"email,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	VisitCount int     `json:"visitCount"`           // Количество завершённых визитов
	LastVisit  *string `json:"lastVisit,omitempty"`  // Дата последнего завершённого визита

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientListResponse ответ со списком клиентов
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// Методы конвертации

// FromDomainClient конвертирует domain модель в DTO
func FromDomainClient(c *domain.Client) *ClientResponse {
	if c == nil {
		return nil
	}

	resp := &ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Notes:      c.Notes,
		VisitCount: c.VisitCount,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}

	if c.LastVisit != nil {
		lastVisit := c.LastVisit.Format(domain.DateFormat)
		resp.LastVisit = &lastVisit
	}

	return resp
}

// FromDomainClientList конвертирует список domain моделей в DTO
func FromDomainClientList(clients []*domain.Client) *ClientListResponse {
	resp := &ClientListResponse{
		Clients: make([]ClientResponse, 0, len(clients)),
	}

	for _, client := range clients {
		if clientResp := FromDomainClient(client); clientResp != nil {
			resp.Clients = append(resp.Clients, *clientResp)
		}
	}

	return resp
}
