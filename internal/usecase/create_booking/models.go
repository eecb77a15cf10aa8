package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи через публичную страницу
type Request struct {
	Slug        string           // Публичный slug тенанта
	ServiceID   int64            // ID услуги
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	ClientName  string           // Имя клиента
	ClientPhone string           // Телефон клиента (нормализуется)
	ClientEmail *string          // Email клиента (опционально)
	Notes       *string          // Заметки клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID             int64            // ID созданной записи
	TenantID       int64            // ID тенанта
	ClientID       int64            // ID клиента (найденного или созданного)
	ServiceID      int64            // ID услуги
	ProfessionalID int64            // ID специалиста
	Date           time.Time        // Дата записи
	StartTime      types.TimeString // Время начала
	Status         string           // Статус записи (pending)
	PaymentStatus  string           // Статус оплаты (pending)

	// Денормализованные данные услуги
	ServiceName     string  // Название услуги
	DurationMinutes int     // Длительность в минутах
	TotalValue      float64 // Полная стоимость услуги

	Notes *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
