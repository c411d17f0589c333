// utils/dates.go
package utils

import (
	"encoding/json"
	"fmt"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DateError reports a value that is neither an RFC 3339 timestamp nor a
// YYYY-MM-DD date.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q", e.Value)
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates, the latter
// interpreted as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, &DateError{Value: s}
}

// Date is a time.Time that decodes from JSON with ParseDate.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &DateError{Value: string(data)}
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// NewDate wraps t for request inputs built in code.
func NewDate(t time.Time) *Date {
	return &Date{Time: t}
}
