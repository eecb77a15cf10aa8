package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/internal/service/catalog/models"
)

// Service сервис для работы с каталогом услуг и специалистов тенанта
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepository CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepository,
		logger:      logger,
	}
}

// Услуги

// CreateService создает услугу, привязанную к специалисту
func (s *Service) CreateService(ctx context.Context, tenantID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: tenant=%d, professional=%d, name=%q", tenantID, req.ProfessionalID, req.Name)

	if err := validateServiceData(req.Name, req.DurationMinutes, req.Price); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	// Специалист должен существовать у этого тенанта
	if _, err := s.catalogRepo.GetProfessional(ctx, tenantID, req.ProfessionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			s.logger.Warn("CreateService: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("CreateService: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: CreateService - failed to get professional: %v", ErrInternal, err)
	}

	created, err := s.catalogRepo.CreateService(ctx, &domain.Service{
		TenantID:        tenantID,
		ProfessionalID:  req.ProfessionalID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	})
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// ListServices получает услуги тенанта
// onlyActive = true отдает только услуги, доступные для записи
func (s *Service) ListServices(ctx context.Context, tenantID int64, onlyActive bool) (*models.ServiceListResponse, error) {
	services, err := s.catalogRepo.ListServices(ctx, tenantID, onlyActive)
	if err != nil {
		s.logger.Error("ListServices: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(services), nil
}

// UpdateService обновляет переданные поля услуги
func (s *Service) UpdateService(ctx context.Context, tenantID, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: tenant=%d, service=%d", tenantID, id)

	service, err := s.getService(ctx, tenantID, id, "UpdateService")
	if err != nil {
		return nil, err
	}

	if req.ProfessionalID != nil {
		if _, err := s.catalogRepo.GetProfessional(ctx, tenantID, *req.ProfessionalID); err != nil {
			if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
				return nil, ErrProfessionalNotFound
			}
			s.logger.Error("UpdateService: failed to get professional id=%d: %v", *req.ProfessionalID, err)
			return nil, fmt.Errorf("%w: UpdateService - failed to get professional: %v", ErrInternal, err)
		}
		service.ProfessionalID = *req.ProfessionalID
	}
	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := validateServiceData(service.Name, service.DurationMinutes, service.Price); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, err
	}

	if err := s.catalogRepo.UpdateService(ctx, service); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: successfully updated service id=%d", id)
	return models.FromDomainService(service), nil
}

// DeleteService удаляет услугу
// Услуга с существующими записями не удаляется — история записей сохраняется.
func (s *Service) DeleteService(ctx context.Context, tenantID, id int64) error {
	s.logger.Info("DeleteService: tenant=%d, service=%d", tenantID, id)

	if err := s.catalogRepo.DeleteService(ctx, tenantID, id); err != nil {
		switch {
		case errors.Is(err, catalogRepo.ErrServiceNotFound):
			s.logger.Warn("DeleteService: service id=%d not found", id)
			return ErrServiceNotFound
		case errors.Is(err, catalogRepo.ErrHasDependencies):
			s.logger.Warn("DeleteService: service id=%d has appointments", id)
			return ErrHasDependencies
		default:
			s.logger.Error("DeleteService: repository error for service id=%d: %v", id, err)
			return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("DeleteService: successfully deleted service id=%d", id)
	return nil
}

// Специалисты

// CreateProfessional создает специалиста
func (s *Service) CreateProfessional(ctx context.Context, tenantID int64, req *models.CreateProfessionalRequest) (*models.ProfessionalResponse, error) {
	s.logger.Info("CreateProfessional: tenant=%d, name=%q", tenantID, req.Name)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	created, err := s.catalogRepo.CreateProfessional(ctx, &domain.Professional{
		TenantID: tenantID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		s.logger.Error("CreateProfessional: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateProfessional - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateProfessional: successfully created professional id=%d", created.ID)
	return models.FromDomainProfessional(created), nil
}

// ListProfessionals получает специалистов тенанта
func (s *Service) ListProfessionals(ctx context.Context, tenantID int64) (*models.ProfessionalListResponse, error) {
	professionals, err := s.catalogRepo.ListProfessionals(ctx, tenantID)
	if err != nil {
		s.logger.Error("ListProfessionals: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListProfessionals - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainProfessionalList(professionals), nil
}

// UpdateProfessional обновляет переданные поля специалиста
func (s *Service) UpdateProfessional(ctx context.Context, tenantID, id int64, req *models.UpdateProfessionalRequest) (*models.ProfessionalResponse, error) {
	s.logger.Info("UpdateProfessional: tenant=%d, professional=%d", tenantID, id)

	professional, err := s.catalogRepo.GetProfessional(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			s.logger.Warn("UpdateProfessional: professional id=%d not found", id)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("UpdateProfessional: repository error for professional id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateProfessional - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		professional.Name = *req.Name
	}
	if req.Phone != nil {
		professional.Phone = req.Phone
	}
	if req.Email != nil {
		professional.Email = req.Email
	}

	if err := s.catalogRepo.UpdateProfessional(ctx, professional); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("UpdateProfessional: repository error for professional id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateProfessional - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfessional: successfully updated professional id=%d", id)
	return models.FromDomainProfessional(professional), nil
}

// DeleteProfessional удаляет специалиста
// Специалист с привязанными услугами или записями не удаляется.
func (s *Service) DeleteProfessional(ctx context.Context, tenantID, id int64) error {
	s.logger.Info("DeleteProfessional: tenant=%d, professional=%d", tenantID, id)

	if err := s.catalogRepo.DeleteProfessional(ctx, tenantID, id); err != nil {
		switch {
		case errors.Is(err, catalogRepo.ErrProfessionalNotFound):
			s.logger.Warn("DeleteProfessional: professional id=%d not found", id)
			return ErrProfessionalNotFound
		case errors.Is(err, catalogRepo.ErrHasDependencies):
			s.logger.Warn("DeleteProfessional: professional id=%d has services or appointments", id)
			return ErrHasDependencies
		default:
			s.logger.Error("DeleteProfessional: repository error for professional id=%d: %v", id, err)
			return fmt.Errorf("%w: DeleteProfessional - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("DeleteProfessional: successfully deleted professional id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getService(ctx context.Context, tenantID, id int64, op string) (*domain.Service, error) {
	service, err := s.catalogRepo.GetService(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return service, nil
}

func validateServiceData(name string, durationMinutes int, price float64) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
