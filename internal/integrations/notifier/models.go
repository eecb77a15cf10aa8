package notifier

// Event типы событий, отправляемых внешнему webhook-коллаборатору
const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentConfirmed = "appointment.confirmed"
)

// AppointmentPayload данные записи в webhook-событии
type AppointmentPayload struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
	Status    string `json:"status"`
}

// ClientPayload данные клиента в webhook-событии
type ClientPayload struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// ServicePayload данные услуги в webhook-событии
type ServicePayload struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// TenantPayload данные тенанта в webhook-событии
type TenantPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Event webhook-событие о записи
type Event struct {
	EventID     string             `json:"eventId"` // uuid
	Type        string             `json:"type"`
	Appointment AppointmentPayload `json:"appointment"`
	Client      ClientPayload      `json:"client"`
	Service     ServicePayload     `json:"service"`
	Tenant      TenantPayload      `json:"tenant"`
}
