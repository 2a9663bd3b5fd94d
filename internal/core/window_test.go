package core

import (
	"testing"
	"time"
)

func TestCurrentMonthWindow(t *testing.T) {
	cases := []struct {
		name  string
		now   time.Time
		since string
		until string
	}{
		{
			name:  "mid month",
			now:   time.Date(2024, 6, 15, 13, 45, 12, 0, time.UTC),
			since: "2024-06-01T00:00:00Z",
			until: "2024-07-01T00:00:00Z",
		},
		{
			name:  "december rolls the year",
			now:   time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
			since: "2024-12-01T00:00:00Z",
			until: "2025-01-01T00:00:00Z",
		},
		{
			name:  "first instant of month",
			now:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			since: "2025-03-01T00:00:00Z",
			until: "2025-04-01T00:00:00Z",
		},
		{
			name:  "leap february",
			now:   time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
			since: "2024-02-01T00:00:00Z",
			until: "2024-03-01T00:00:00Z",
		},
		{
			name:  "non-UTC clock normalized",
			now:   time.Date(2024, 1, 1, 5, 0, 0, 0, time.FixedZone("AEST", 10*3600)),
			since: "2023-12-01T00:00:00Z",
			until: "2024-01-01T00:00:00Z",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := CurrentMonthWindow(tc.now)
			if got := w.SinceParam(); got != tc.since {
				t.Fatalf("since: expected %s, got %s", tc.since, got)
			}
			if got := w.UntilParam(); got != tc.until {
				t.Fatalf("until: expected %s, got %s", tc.until, got)
			}
			if !w.End.After(w.Start) {
				t.Fatalf("end %v must be strictly after start %v", w.End, w.Start)
			}
		})
	}
}

func TestMonthWindowKey(t *testing.T) {
	a := CurrentMonthWindow(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	b := CurrentMonthWindow(time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC))
	if a.Key() != b.Key() {
		t.Fatalf("same month must produce the same key: %s vs %s", a.Key(), b.Key())
	}
	c := CurrentMonthWindow(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	if a.Key() == c.Key() {
		t.Fatalf("different months must produce different keys")
	}
}
