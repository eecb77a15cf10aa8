package tenantconfig

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// TenantRepository интерфейс репозитория тенантов
type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) error
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context, tenantID int64) (domain.WorkingHoursWeek, error)
	UpsertWorkingHours(ctx context.Context, tenantID int64, week domain.WorkingHoursWeek) error
	GetBlockedDates(ctx context.Context, tenantID int64) ([]*domain.BlockedDate, error)
	ReplaceBlockedDates(ctx context.Context, tenantID int64, blocked []*domain.BlockedDate) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
