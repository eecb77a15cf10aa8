package domain

import "time"

// Tenant represents a business account owning professionals, services and a
// public booking page reachable by a unique slug.
type Tenant struct {
	ID      int64
	Name    string
	Slug    string // URL-safe, уникальный, неизменяемый после публикации
	Address *string
	Phone   *string

	// Booking policy
	BufferMinutes           int // минимальный зазор между концом одного слота и началом следующего
	CancellationWindowHours int // за сколько часов клиент может отменить запись

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveBufferMinutes возвращает буфер между слотами
// Отрицательные значения трактуются как ноль
func (t *Tenant) EffectiveBufferMinutes() int {
	if t.BufferMinutes < 0 {
		return 0
	}
	return t.BufferMinutes
}
