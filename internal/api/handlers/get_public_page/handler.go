package get_public_page

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getPublicPage "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_public_page"
)

const (
	msgInvalidSlug    = "некорректный slug салона"
	msgTenantNotFound = "салон не найден"
)

type Handler struct {
	useCase GetPublicPageUseCase
	logger  Logger
}

func NewHandler(useCase GetPublicPageUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	result, err := h.useCase.Execute(r.Context(), getPublicPage.Request{Slug: slug})
	if err != nil {
		switch {
		case errors.Is(err, getPublicPage.ErrInvalidInput):
			h.logger.Warn("GET /public/{slug} - Invalid slug: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlug)

		case errors.Is(err, getPublicPage.ErrTenantNotFound):
			h.logger.Warn("GET /public/{slug} - Tenant not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgTenantNotFound)

		default:
			h.logger.Error("GET /public/{slug} - Failed to get public page: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/{slug} - Public page retrieved: slug=%s, services=%d", slug, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
