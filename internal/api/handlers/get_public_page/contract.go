package get_public_page

import (
	"context"

	getPublicPage "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_public_page"
)

type GetPublicPageUseCase interface {
	Execute(ctx context.Context, req getPublicPage.Request) (*getPublicPage.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
