package update_client_notes

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
)

type ClientService interface {
	UpdateNotes(ctx context.Context, tenantID, id int64, req *models.UpdateNotesRequest) (*models.ClientResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
