package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Slug      string    // Публичный slug тенанта
	ServiceID int64     // ID услуги
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Slug            string             // Slug тенанта
	ServiceID       int64              // ID услуги
	ProfessionalID  int64              // ID специалиста, назначенного на услугу
	Date            time.Time          // Дата, на которую запрашивались слоты
	DurationMinutes int                // Длительность слота (равна длительности услуги)
	Slots           []types.TimeString // Доступные времена начала, по возрастанию
}
