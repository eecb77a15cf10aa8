package tenantconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/tenant"
	"github.com/m04kA/SMC-SchedulingService/internal/service/tenantconfig/models"
)

// Service сервис для работы с настройками тенанта
type Service struct {
	tenantRepo   TenantRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	tenantRepository TenantRepository,
	scheduleRepository ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		tenantRepo:   tenantRepository,
		scheduleRepo: scheduleRepository,
		txManager:    txManager,
		logger:       logger,
	}
}

// Get возвращает настройки тенанта: профиль, политику записи и расписание
func (s *Service) Get(ctx context.Context, tenantID int64) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for tenant=%d", tenantID)

	tenant, err := s.getTenant(ctx, tenantID, "Get")
	if err != nil {
		return nil, err
	}

	week, err := s.scheduleRepo.GetWorkingHours(ctx, tenantID)
	if err != nil {
		s.logger.Error("Get: failed to get working hours for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Get - failed to get working hours: %v", ErrInternal, err)
	}

	blocked, err := s.scheduleRepo.GetBlockedDates(ctx, tenantID)
	if err != nil {
		s.logger.Error("Get: failed to get blocked dates for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Get - failed to get blocked dates: %v", ErrInternal, err)
	}

	return models.FromDomain(tenant, week, blocked), nil
}

// Update обновляет настройки тенанта
// Обновляются только переданные поля. Недельное расписание и список
// заблокированных дат заменяются целиком. Все изменения применяются
// в одной транзакции. Slug тенанта неизменяем.
func (s *Service) Update(ctx context.Context, tenantID int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for tenant=%d", tenantID)

	tenant, err := s.getTenant(ctx, tenantID, "Update")
	if err != nil {
		return nil, err
	}

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for tenant=%d: %v", tenantID, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Обновляем поля профиля и политики записи
		if applyTenantFields(tenant, req) {
			if err := s.tenantRepo.Update(txCtx, tenant); err != nil {
				s.logger.Error("Update: failed to update tenant=%d: %v", tenantID, err)
				return fmt.Errorf("%w: Update - failed to update tenant: %v", ErrInternal, err)
			}
		}

		// 2. Заменяем недельное расписание, если передано
		if req.WorkingHours != nil {
			domainWeek := req.ToDomainWeek(tenantID)
			if err := domainWeek.Validate(); err != nil {
				s.logger.Warn("Update: invalid working hours for tenant=%d: %v", tenantID, err)
				return fmt.Errorf("%w: %v", ErrInvalidWorkingHours, err)
			}
			if err := s.scheduleRepo.UpsertWorkingHours(txCtx, tenantID, domainWeek); err != nil {
				s.logger.Error("Update: failed to upsert working hours for tenant=%d: %v", tenantID, err)
				return fmt.Errorf("%w: Update - failed to upsert working hours: %v", ErrInternal, err)
			}
		}

		// 3. Заменяем заблокированные даты, если переданы
		if req.BlockedDates != nil {
			blocked, err := req.ToDomainBlockedDates(tenantID)
			if err != nil {
				s.logger.Warn("Update: invalid blocked dates for tenant=%d: %v", tenantID, err)
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if err := s.scheduleRepo.ReplaceBlockedDates(txCtx, tenantID, blocked); err != nil {
				s.logger.Error("Update: failed to replace blocked dates for tenant=%d: %v", tenantID, err)
				return fmt.Errorf("%w: Update - failed to replace blocked dates: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated config for tenant=%d", tenantID)
	return s.Get(ctx, tenantID)
}

// Вспомогательные методы

func (s *Service) getTenant(ctx context.Context, tenantID int64, op string) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("%s: tenant id=%d not found", op, tenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("%s: repository error for tenant=%d: %v", op, tenantID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return tenant, nil
}

// applyTenantFields переносит переданные поля запроса в модель тенанта.
// Возвращает true, если хотя бы одно поле изменилось.
func applyTenantFields(tenant *domain.Tenant, req *models.UpdateConfigRequest) bool {
	changed := false
	if req.Name != nil {
		tenant.Name = *req.Name
		changed = true
	}
	if req.Address != nil {
		tenant.Address = req.Address
		changed = true
	}
	if req.Phone != nil {
		tenant.Phone = req.Phone
		changed = true
	}
	if req.BufferMinutes != nil {
		tenant.BufferMinutes = *req.BufferMinutes
		changed = true
	}
	if req.CancellationWindowHours != nil {
		tenant.CancellationWindowHours = *req.CancellationWindowHours
		changed = true
	}
	return changed
}

func validateUpdateRequest(req *models.UpdateConfigRequest) error {
	if req.Name != nil && *req.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if req.BufferMinutes != nil && (*req.BufferMinutes < 0 || *req.BufferMinutes > domain.MaxBufferMinutes) {
		return fmt.Errorf("%w: bufferMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxBufferMinutes)
	}
	if req.CancellationWindowHours != nil && *req.CancellationWindowHours < 0 {
		return fmt.Errorf("%w: cancellationWindowHours must not be negative", ErrInvalidInput)
	}
	return nil
}
