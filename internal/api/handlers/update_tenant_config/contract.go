package update_tenant_config

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/tenantconfig/models"
)

type TenantConfigService interface {
	Update(ctx context.Context, tenantID int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
