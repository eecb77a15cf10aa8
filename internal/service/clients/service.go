package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
)

// Service сервис для работы с клиентской базой тенанта
type Service struct {
	clientRepo ClientRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepository ClientRepository, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepository,
		logger:     logger,
	}
}

// List получает клиентскую базу тенанта с агрегатами посещений
// Поддерживает поиск по имени (без учета регистра) и по телефону
func (s *Service) List(ctx context.Context, req *models.ListClientsRequest) (*models.ClientListResponse, error) {
	s.logger.Info("List: fetching clients for tenant=%d, search=%q", req.TenantID, req.Search)

	clients, err := s.clientRepo.ListByTenant(ctx, req.TenantID, req.Search)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d clients for tenant=%d", len(clients), req.TenantID)
	return models.FromDomainClientList(clients), nil
}

// UpdateNotes обновляет заметки о клиенте
func (s *Service) UpdateNotes(ctx context.Context, tenantID, id int64, req *models.UpdateNotesRequest) (*models.ClientResponse, error) {
	s.logger.Info("UpdateNotes: updating notes for client id=%d, tenant=%d", id, tenantID)

	if len(req.Notes) > domain.MaxNotesLength {
		s.logger.Warn("UpdateNotes: notes too long for client id=%d", id)
		return nil, fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if err := s.clientRepo.UpdateNotes(ctx, tenantID, id, req.Notes); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("UpdateNotes: client id=%d not found", id)
			return nil, ErrClientNotFound
		}
		s.logger.Error("UpdateNotes: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateNotes - repository error: %v", ErrInternal, err)
	}

	client, err := s.clientRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error("UpdateNotes: failed to reload client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateNotes - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClient(client), nil
}
