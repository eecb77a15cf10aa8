package update_tenant_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/tenantconfig"
	"github.com/m04kA/SMC-SchedulingService/internal/service/tenantconfig/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingTenantID     = "отсутствует ID тенанта"
	msgNotFound            = "тенант не найден"
	msgInvalidWorkingHours = "некорректное недельное расписание"
	msgInvalidInput        = "некорректные данные запроса"
)

type Handler struct {
	service TenantConfigService
	logger  Logger
}

func NewHandler(service TenantConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /config - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), tenantID, &req)
	if err != nil {
		switch {
		case errors.Is(err, tenantconfig.ErrTenantNotFound):
			h.logger.Warn("PUT /config - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, tenantconfig.ErrInvalidWorkingHours):
			h.logger.Warn("PUT /config - Invalid working hours: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidWorkingHours)

		case errors.Is(err, tenantconfig.ErrInvalidInput):
			h.logger.Warn("PUT /config - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /config - Failed to update config: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /config - Config updated: tenant_id=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
