package insight

import (
	"testing"
	"time"
)

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday maps to monday",
			in:   time.Date(2025, 3, 5, 15, 30, 0, 0, time.UTC),
			want: date(2025, 3, 3),
		},
		{
			name: "sunday maps to previous monday",
			in:   date(2025, 3, 9),
			want: date(2025, 3, 3),
		},
		{
			name: "monday maps to itself",
			in:   time.Date(2025, 3, 3, 23, 59, 59, 0, time.UTC),
			want: date(2025, 3, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.in); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartOfMonth(t *testing.T) {
	in := time.Date(2025, 7, 19, 8, 0, 0, 0, time.UTC)
	want := date(2025, 7, 1)
	if got := StartOfMonth(in); !got.Equal(want) {
		t.Errorf("StartOfMonth(%v) = %v, want %v", in, got, want)
	}
}

func TestWeekKey_ISOYearBoundary(t *testing.T) {
	// 2024-12-30 is the Monday of ISO week 1 of 2025.
	if got := WeekKey(date(2024, 12, 30)); got != "2025-W01" {
		t.Errorf("WeekKey(2024-12-30) = %q, want %q", got, "2025-W01")
	}
	if got := WeekKey(date(2025, 3, 3)); got != "2025-W10" {
		t.Errorf("WeekKey(2025-03-03) = %q, want %q", got, "2025-W10")
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(date(2025, 3, 1)); got != "2025-03" {
		t.Errorf("MonthKey(2025-03-01) = %q, want %q", got, "2025-03")
	}
}

func TestGeneratePeriodWindows_Week(t *testing.T) {
	windows := GeneratePeriodWindows(date(2025, 3, 5), date(2025, 3, 20), GranularityWeek)

	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}
	if !windows[0].Start.Equal(date(2025, 3, 3)) {
		t.Errorf("first window starts %v, want 2025-03-03", windows[0].Start)
	}
	for i := 1; i < len(windows); i++ {
		if !windows[i].Start.Equal(windows[i-1].Start.AddDate(0, 0, 7)) {
			t.Errorf("window %d does not follow window %d by 7 days", i, i-1)
		}
		if !windows[i-1].End.Equal(windows[i].Start.AddDate(0, 0, -1)) {
			t.Errorf("windows %d and %d overlap or leave a gap", i-1, i)
		}
	}
}

func TestGeneratePeriodWindows_Month(t *testing.T) {
	windows := GeneratePeriodWindows(date(2025, 1, 15), date(2025, 3, 2), GranularityMonth)

	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}
	wantKeys := []string{"2025-01", "2025-02", "2025-03"}
	for i, w := range windows {
		if w.Key != wantKeys[i] {
			t.Errorf("window %d key = %q, want %q", i, w.Key, wantKeys[i])
		}
	}
	if !windows[1].End.Equal(date(2025, 2, 28)) {
		t.Errorf("february window ends %v, want 2025-02-28", windows[1].End)
	}
}

func TestGeneratePeriodWindows_EmptyRange(t *testing.T) {
	windows := GeneratePeriodWindows(date(2025, 3, 5), date(2025, 3, 1), GranularityWeek)
	if len(windows) != 0 {
		t.Errorf("got %d windows for inverted range, want 0", len(windows))
	}
}

func TestPeriodWindowContains(t *testing.T) {
	w := PeriodWindow{Start: date(2025, 3, 3), End: date(2025, 3, 9)}

	tests := []struct {
		name string
		in   time.Time
		want bool
	}{
		{name: "inside", in: date(2025, 3, 5), want: true},
		{name: "first day", in: date(2025, 3, 3), want: true},
		{name: "last day with time component", in: time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC), want: true},
		{name: "day before", in: date(2025, 3, 2), want: false},
		{name: "day after", in: date(2025, 3, 10), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.in); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
