package core

import (
	"sort"
	"testing"
	"time"
)

func TestMonthLabelRoundTrip(t *testing.T) {
	tests := []struct {
		month Month
		label string
	}{
		{Month{2025, time.November}, "Nov-2025"},
		{Month{2026, time.January}, "Jan-2026"},
		{Month{2025, time.February}, "Feb-2025"},
	}
	for _, tt := range tests {
		if got := tt.month.Label(); got != tt.label {
			t.Errorf("Label() = %q, want %q", got, tt.label)
		}
		parsed, err := ParseMonth(tt.label)
		if err != nil {
			t.Fatalf("ParseMonth(%q): %v", tt.label, err)
		}
		if parsed != tt.month {
			t.Errorf("ParseMonth(%q) = %v, want %v", tt.label, parsed, tt.month)
		}
	}
}

func TestMonthSortKeyOrdersChronologically(t *testing.T) {
	months := []Month{
		{2025, time.December},
		{2026, time.January},
		{2025, time.February},
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].SortKey() < months[j].SortKey()
	})

	want := []string{"Feb-2025", "Dec-2025", "Jan-2026"}
	for i, m := range months {
		if m.Label() != want[i] {
			t.Fatalf("position %d = %s, want %s", i, m.Label(), want[i])
		}
	}
}

func TestMonthDays(t *testing.T) {
	tests := []struct {
		month Month
		want  int
	}{
		{Month{2025, time.November}, 30},
		{Month{2025, time.December}, 31},
		{Month{2024, time.February}, 29},
		{Month{2025, time.February}, 28},
	}
	for _, tt := range tests {
		if got := tt.month.Days(); got != tt.want {
			t.Errorf("%s Days() = %d, want %d", tt.month.Label(), got, tt.want)
		}
	}
}

func TestMonthNextWrapsYear(t *testing.T) {
	if got := (Month{2025, time.December}).Next(); got != (Month{2026, time.January}) {
		t.Errorf("Next() = %v", got)
	}
	if got := (Month{2026, time.January}).Previous(); got != (Month{2025, time.December}) {
		t.Errorf("Previous() = %v", got)
	}
}
