package get_tenant_config

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/tenantconfig/models"
)

type TenantConfigService interface {
	Get(ctx context.Context, tenantID int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
