package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrInvalidWorkingHours возвращается при нарушении инвариантов расписания
	ErrInvalidWorkingHours = errors.New("invalid working hours entry")
)

// BreakInterval интервал внутри рабочего дня, в котором слоты не предлагаются
// (обед, техническое окно)
type BreakInterval struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// WorkingHoursEntry рабочие часы тенанта на один день недели
// Weekday: 0=воскресенье .. 6=суббота
type WorkingHoursEntry struct {
	TenantID int64
	Weekday  int
	Enabled  bool
	Start    types.TimeString
	End      types.TimeString
	Breaks   []BreakInterval
}

// Validate проверяет инварианты записи расписания:
// корректный день недели; если день включен - start < end,
// каждый перерыв лежит внутри [start, end) и перерывы не пересекаются
func (e *WorkingHoursEntry) Validate() error {
	if e.Weekday < 0 || e.Weekday > 6 {
		return fmt.Errorf("%w: weekday must be in 0..6, got %d", ErrInvalidWorkingHours, e.Weekday)
	}

	if !e.Enabled {
		return nil
	}

	if err := e.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidWorkingHours, err)
	}
	if err := e.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidWorkingHours, err)
	}
	if !e.Start.IsBefore(e.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWorkingHours, e.Start, e.End)
	}

	for i, br := range e.Breaks {
		if err := br.Start.Validate(); err != nil {
			return fmt.Errorf("%w: break %d start: %v", ErrInvalidWorkingHours, i, err)
		}
		if err := br.End.Validate(); err != nil {
			return fmt.Errorf("%w: break %d end: %v", ErrInvalidWorkingHours, i, err)
		}
		if !br.Start.IsBefore(br.End) {
			return fmt.Errorf("%w: break %d start %s must be before end %s", ErrInvalidWorkingHours, i, br.Start, br.End)
		}
		if br.Start.IsBefore(e.Start) || br.End.IsAfter(e.End) {
			return fmt.Errorf("%w: break %d [%s, %s) is outside working window [%s, %s)",
				ErrInvalidWorkingHours, i, br.Start, br.End, e.Start, e.End)
		}
		for j := 0; j < i; j++ {
			other := e.Breaks[j]
			if br.Start.IsBefore(other.End) && other.Start.IsBefore(br.End) {
				return fmt.Errorf("%w: breaks %d and %d overlap", ErrInvalidWorkingHours, j, i)
			}
		}
	}

	return nil
}

// WorkingHoursWeek недельное расписание тенанта
type WorkingHoursWeek []WorkingHoursEntry

// EntryFor возвращает запись расписания на день недели указанной даты
// Если запись отсутствует, возвращает nil
func (w WorkingHoursWeek) EntryFor(date time.Time) *WorkingHoursEntry {
	weekday := int(date.Weekday())
	for i := range w {
		if w[i].Weekday == weekday {
			return &w[i]
		}
	}
	return nil
}

// Validate валидирует все записи недельного расписания
func (w WorkingHoursWeek) Validate() error {
	seen := make(map[int]bool, len(w))
	for i := range w {
		if seen[w[i].Weekday] {
			return fmt.Errorf("%w: duplicate weekday %d", ErrInvalidWorkingHours, w[i].Weekday)
		}
		seen[w[i].Weekday] = true
		if err := w[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// BlockedDate исключение из расписания: конкретная дата закрыта для записи
// целиком или для одного специалиста
type BlockedDate struct {
	ID             int64
	TenantID       int64
	Date           time.Time
	ProfessionalID *int64 // nil = блокировка на весь салон
	Reason         *string
}

// Matches reports whether the block suppresses slots for the given date and
// professional. A tenant-wide block (ProfessionalID == nil) matches any
// professional.
func (b *BlockedDate) Matches(date time.Time, professionalID int64) bool {
	by, bm, bd := b.Date.Date()
	dy, dm, dd := date.Date()
	if by != dy || bm != dm || bd != dd {
		return false
	}
	return b.ProfessionalID == nil || *b.ProfessionalID == professionalID
}
