package domain

import "time"

// Professional belongs to exactly one tenant; services are assigned to
// exactly one professional.
type Professional struct {
	ID       int64
	TenantID int64
	Name     string
	Phone    *string
	Email    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service represents an offerable service of a tenant.
// Duration is the sole driver of slot width.
type Service struct {
	ID              int64
	TenantID        int64
	ProfessionalID  int64
	Name            string
	DurationMinutes int
	Price           float64
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOfferable returns true if the service can be booked publicly
func (s *Service) IsOfferable() bool {
	return s.Active
}
