package delete_professional

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/catalog"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgMissingTenantID       = "отсутствует ID тенанта"
	msgNotFound              = "специалист не найден"
	msgHasDependencies       = "специалиста нельзя удалить: за ним закреплены услуги или записи"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/professionals/{professionalId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := strconv.ParseInt(mux.Vars(r)["professionalId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /professionals/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	if err := h.service.DeleteProfessional(r.Context(), tenantID, professionalID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrProfessionalNotFound):
			h.logger.Warn("DELETE /professionals/{id} - Professional not found: professional_id=%d, tenant_id=%d", professionalID, tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrHasDependencies):
			h.logger.Warn("DELETE /professionals/{id} - Professional has dependencies: professional_id=%d, tenant_id=%d", professionalID, tenantID)
			handlers.RespondConflict(w, msgHasDependencies)

		default:
			h.logger.Error("DELETE /professionals/{id} - Failed to delete professional: professional_id=%d, error=%v", professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /professionals/{id} - Professional deleted: professional_id=%d, tenant_id=%d", professionalID, tenantID)
	w.WriteHeader(http.StatusNoContent)
}
