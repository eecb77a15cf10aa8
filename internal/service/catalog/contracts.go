package catalog

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг и специалистов
type CatalogRepository interface {
	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetService(ctx context.Context, tenantID, id int64) (*domain.Service, error)
	ListServices(ctx context.Context, tenantID int64, onlyActive bool) ([]*domain.Service, error)
	UpdateService(ctx context.Context, s *domain.Service) error
	DeleteService(ctx context.Context, tenantID, id int64) error

	CreateProfessional(ctx context.Context, p *domain.Professional) (*domain.Professional, error)
	GetProfessional(ctx context.Context, tenantID, id int64) (*domain.Professional, error)
	ListProfessionals(ctx context.Context, tenantID int64) ([]*domain.Professional, error)
	UpdateProfessional(ctx context.Context, p *domain.Professional) error
	DeleteProfessional(ctx context.Context, tenantID, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
