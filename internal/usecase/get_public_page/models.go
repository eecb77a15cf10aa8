package get_public_page

// Request модель запроса публичной страницы тенанта
type Request struct {
	Slug string // Публичный slug тенанта
}

// Response публичная страница: профиль тенанта, активные услуги,
// специалисты и недельное расписание
type Response struct {
	ID            int64             // ID тенанта
	Name          string            // Название
	Slug          string            // Slug
	Address       *string           // Адрес (опционально)
	Phone         *string           // Телефон (опционально)
	Services      []Service         // Активные услуги
	Professionals []Professional    // Специалисты
	WorkingHours  []WorkingHoursDay // Недельное расписание
}

// Service услуга на публичной странице
type Service struct {
	ID              int64
	ProfessionalID  int64
	Name            string
	DurationMinutes int
	Price           float64
}

// Professional специалист на публичной странице
type Professional struct {
	ID   int64
	Name string
}

// WorkingHoursDay расписание одного дня недели
type WorkingHoursDay struct {
	Weekday int // 0 = воскресенье ... 6 = суббота
	Enabled bool
	Start   string // "09:00"
	End     string // "18:00"
	Breaks  []BreakInterval
}

// BreakInterval перерыв внутри рабочего дня
type BreakInterval struct {
	Start string
	End   string
}
