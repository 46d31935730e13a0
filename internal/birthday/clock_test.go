package birthday

import (
	"testing"
	"time"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return loc
}

func TestNextOccurrenceUsesCurrentYearAtLocalNine(t *testing.T) {
	jakarta := mustLoad(t, "Asia/Jakarta")
	bday := time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

	target, delta := NextOccurrence(bday, jakarta, now)

	want := time.Date(2024, 3, 10, 9, 0, 0, 0, jakarta)
	if !target.Equal(want) {
		t.Fatalf("target = %v, want %v", target, want)
	}
	if delta != want.Sub(now) {
		t.Fatalf("delta = %v", delta)
	}
	// Jakarta is UTC+7, so 09:00 local is 02:00 UTC on March 10.
	if got := target.UTC(); got.Hour() != 2 || got.Day() != 10 {
		t.Fatalf("target in UTC = %v", got)
	}
}

func TestNextOccurrenceIgnoresBirthYear(t *testing.T) {
	london := mustLoad(t, "Europe/London")
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	t1, _ := NextOccurrence(time.Date(1960, 7, 1, 0, 0, 0, 0, time.UTC), london, now)
	t2, _ := NextOccurrence(time.Date(2001, 7, 1, 0, 0, 0, 0, time.UTC), london, now)

	if !t1.Equal(t2) {
		t.Fatalf("targets differ by birth year: %v vs %v", t1, t2)
	}
	if t1.Year() != 2024 {
		t.Fatalf("target year = %d", t1.Year())
	}
}

func TestNextOccurrenceFeb29NormalizesToMarch1(t *testing.T) {
	london := mustLoad(t, "Europe/London")
	bday := time.Date(1992, 2, 29, 0, 0, 0, 0, time.UTC)
	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	target, _ := NextOccurrence(bday, london, now)
	if target.Month() != time.March || target.Day() != 1 {
		t.Fatalf("expected Mar 1 in a non-leap year, got %v", target)
	}
}

func TestDeltaDecreasesAcrossTicksAndCrossesOnce(t *testing.T) {
	london := mustLoad(t, "Europe/London")
	bday := time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC)

	start := time.Date(2024, 3, 10, 8, 55, 0, 0, time.UTC).In(london)
	var prev time.Duration
	firstDue := -1
	for tick := 0; tick < 10; tick++ {
		now := start.Add(time.Duration(tick) * time.Minute)
		_, delta := NextOccurrence(bday, london, now)
		if tick > 0 && delta >= prev {
			t.Fatalf("delta must strictly decrease, tick %d: %v -> %v", tick, prev, delta)
		}
		prev = delta
		if Classify(delta, true) == DueNow && firstDue == -1 {
			firstDue = tick
		}
	}
	// Exactly one minute out is still not due; 09:00:00 itself is the
	// crossing tick.
	if firstDue != 5 {
		t.Fatalf("first due tick = %d, want 5", firstDue)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		delta    time.Duration
		resolved bool
		want     Classification
	}{
		{"past due", -2 * time.Hour, true, DueNow},
		{"exactly now", 0, true, DueNow},
		{"inside window", 30 * time.Second, true, DueNow},
		{"at window edge", time.Minute, true, NotYetDue},
		{"future", 3 * time.Hour, true, NotYetDue},
		{"unresolved fails open", 10 * time.Hour, false, DueNow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.delta, tc.resolved); got != tc.want {
				t.Fatalf("Classify(%v, %v) = %v, want %v", tc.delta, tc.resolved, got, tc.want)
			}
		})
	}
}

func TestFormatTimeLeft(t *testing.T) {
	cases := map[time.Duration]string{
		500 * time.Millisecond: "less than a second",
		time.Second:            "1 second",
		61 * time.Second:       "1 minute, 1 second",
		2 * time.Hour:          "2 hours",
		26*time.Hour + 5*time.Minute: "1 day, 2 hours, 5 minutes",
	}
	for d, want := range cases {
		if got := FormatTimeLeft(d); got != want {
			t.Errorf("FormatTimeLeft(%v) = %q, want %q", d, got, want)
		}
	}
}
