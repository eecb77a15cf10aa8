package notifier

import "errors"

var (
	// ErrDeliveryFailed возвращается, когда webhook не удалось доставить
	// Доставка best-effort: вызывающая сторона логирует ошибку и продолжает работу
	ErrDeliveryFailed = errors.New("notifier: delivery failed")
)
