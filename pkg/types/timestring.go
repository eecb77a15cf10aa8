package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeFormat формат времени HH:MM (24h)
const TimeFormat = "15:04"

// TimeString represents a wall-clock time of day as "HH:MM" (24h, zero-padded).
// The zero value is an empty string and is considered unset.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывая дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString парсит строку "HH:MM" (или "HH:MM:SS" из БД) в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	normalized, err := normalize(s)
	if err != nil {
		return "", err
	}
	return TimeString(normalized), nil
}

// normalize приводит строку к формату "HH:MM"
// Поддерживает "HH:MM:SS" (так время приходит из колонок типа TIME)
func normalize(s string) (string, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format(TimeFormat), nil
	}
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid time string format: %q", s)
	}
	return t.Format(TimeFormat), nil
}

// String returns the "HH:MM" representation.
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero returns true if the value is unset.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет, что значение имеет корректный формат "HH:MM"
func (ts TimeString) Validate() error {
	_, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return fmt.Errorf("invalid time string format: %q", string(ts))
	}
	return nil
}

// Minutes возвращает время как количество минут с начала суток
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return 0, fmt.Errorf("invalid time string format: %q", string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперед
// Результат не переходит через полночь: 23:50 + 30 → ошибка
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	total += minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("time %q + %d minutes is out of day range", string(ts), minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore returns true if ts is strictly earlier than other.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter returns true if ts is strictly later than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// Value implements driver.Valuer.
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan implements sql.Scanner.
// Принимает string, []byte и time.Time (драйвер может вернуть TIME как time.Time)
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case string:
		normalized, err := normalize(v)
		if err != nil {
			return err
		}
		*ts = TimeString(normalized)
		return nil
	case []byte:
		normalized, err := normalize(string(v))
		if err != nil {
			return err
		}
		*ts = TimeString(normalized)
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}
