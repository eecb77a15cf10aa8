package get_public_page

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант с указанным slug не найден
	ErrTenantNotFound = errors.New("get_public_page: tenant not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_public_page: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_public_page: internal error")
)
