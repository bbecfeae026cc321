// Package time contains time related helpers
package time

import (
	"fmt"
	"time"
)

// DateTimeLayout is the date and time part FormatPrecise starts from
const DateTimeLayout = "2006-01-02 15:04:05"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// HourOf returns the wall-clock hour of t in its own location; ok=false when t is nil
func HourOf(t *time.Time) (int, bool) {
	if t == nil {
		return 0, false
	}
	return t.Hour(), true
}

// FormatPrecise renders t like a dataframe CSV export: fractional seconds only when
// non-zero (6 digits, 9 below a microsecond) and the offset only outside UTC
func FormatPrecise(t *time.Time) string {
	if t == nil {
		return ""
	}
	s := t.Format(DateTimeLayout)
	if ns := t.Nanosecond(); ns != 0 {
		if ns%1000 == 0 {
			s += fmt.Sprintf(".%06d", ns/1000)
		} else {
			s += fmt.Sprintf(".%09d", ns)
		}
	}
	if t.Location() != time.UTC {
		s += t.Format("-07:00")
	}
	return s
}

// Format renders t with layout, or "" when t is nil
func Format(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
