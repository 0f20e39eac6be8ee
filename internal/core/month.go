package core

import (
	"fmt"
	"time"
)

// Month identifies a calendar month. Ordering is by SortKey, never by the
// display label: "Feb-2025" sorts before "Dec-2025" even though the labels
// compare the other way round.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses the "Jan-2026" label form.
func ParseMonth(label string) (Month, error) {
	t, err := time.Parse("Jan-2006", label)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month label %q", label)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Label returns the display form, e.g. "Nov-2025".
func (m Month) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan-2006")
}

// SortKey is year*100 plus the zero-based month index, so numeric order is
// chronological order.
func (m Month) SortKey() int {
	return m.Year*100 + int(m.Month) - 1
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (m Month) Next() Month {
	t := time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) Previous() Month {
	t := time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether d falls inside the month.
func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year && d.Time.Month() == m.Month
}

// Start returns midnight UTC on the first day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}
