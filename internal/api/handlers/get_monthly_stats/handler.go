package get_monthly_stats

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
)

const (
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgInvalidYearOrMonth = "некорректные параметры year и month"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stats/monthly?year=2025&month=10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /stats/monthly - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		h.logger.Warn("GET /stats/monthly - Invalid year: %s", query.Get("year"))
		handlers.RespondBadRequest(w, msgInvalidYearOrMonth)
		return
	}

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		h.logger.Warn("GET /stats/monthly - Invalid month: %s", query.Get("month"))
		handlers.RespondBadRequest(w, msgInvalidYearOrMonth)
		return
	}

	result, err := h.service.MonthlyStats(r.Context(), tenantID, year, month)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /stats/monthly - Invalid input: year=%d, month=%d", year, month)
			handlers.RespondBadRequest(w, msgInvalidYearOrMonth)

		default:
			h.logger.Error("GET /stats/monthly - Failed to compute stats: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stats/monthly - Stats computed: tenant_id=%d, year=%d, month=%d, total=%d", tenantID, year, month, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
