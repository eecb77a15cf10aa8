package domain

import "time"

// Client belongs to one tenant, deduplicated by (tenant, normalized phone).
// VisitCount and LastVisit are derived from completed appointments and
// recomputed on read, never stored as source of truth.
type Client struct {
	ID       int64
	TenantID int64
	Name     string
	Phone    string // нормализованный номер (только цифры)
	Email    *string
	Notes    *string

	// Derived aggregates
	VisitCount int
	LastVisit  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
