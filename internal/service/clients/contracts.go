package clients

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Client, error)
	ListByTenant(ctx context.Context, tenantID int64, search string) ([]*domain.Client, error)
	UpdateNotes(ctx context.Context, tenantID, id int64, notes string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
