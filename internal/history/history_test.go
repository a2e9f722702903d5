package history

import (
	"fmt"
	"testing"
	"time"
)

// stepClock returns a clock that advances one second per call
func stepClock() func() time.Time {
	base := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
}

func TestAnalytics_RecordEntry(t *testing.T) {
	a := New(WithClock(stepClock()))

	a.Record("react", 3)

	entries := a.Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Query != "react" || entries[0].ResultCount != 3 {
		t.Errorf("Unexpected entry: %+v", entries[0])
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("Entry timestamp should be set")
	}

	popular := a.Popular()
	if len(popular) != 1 || popular[0].Query != "react" || popular[0].Count != 1 {
		t.Errorf("Unexpected popularity: %+v", popular)
	}
}

func TestAnalytics_IgnoresBlankQuery(t *testing.T) {
	a := New()

	a.Record("", 5)
	a.Record("   ", 5)

	if len(a.Entries()) != 0 {
		t.Errorf("Blank queries should not be recorded")
	}
	if len(a.Popular()) != 0 {
		t.Errorf("Blank queries should not affect popularity")
	}
}

func TestAnalytics_TrimsQuery(t *testing.T) {
	a := New()

	a.Record("  react ", 1)
	a.Record("react", 1)

	popular := a.Popular()
	if len(popular) != 1 {
		t.Fatalf("Expected trimmed queries to share one popularity entry, got %d", len(popular))
	}
	if popular[0].Count != 2 {
		t.Errorf("Expected count 2, got %d", popular[0].Count)
	}
	if a.Entries()[1].Query != "react" {
		t.Errorf("Expected stored query to be trimmed, got %q", a.Entries()[1].Query)
	}
}

func TestAnalytics_EntriesNewestFirstAndCapped(t *testing.T) {
	a := New(WithClock(stepClock()))

	for i := 0; i < 15; i++ {
		a.Record(fmt.Sprintf("q%d", i), i)
	}

	entries := a.Entries()
	if len(entries) != maxEntries {
		t.Fatalf("Expected %d entries, got %d", maxEntries, len(entries))
	}
	if entries[0].Query != "q14" {
		t.Errorf("Expected newest entry q14 first, got %q", entries[0].Query)
	}
	if entries[len(entries)-1].Query != "q5" {
		t.Errorf("Expected oldest kept entry q5, got %q", entries[len(entries)-1].Query)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.After(entries[i-1].Timestamp) {
			t.Errorf("Entries not newest first at index %d", i)
		}
	}
}

func TestAnalytics_PopularityIncrementAndRefresh(t *testing.T) {
	a := New(WithClock(stepClock()))

	a.Record("go", 1)
	first := a.Popular()[0].LastUsed

	a.Record("go", 2)

	popular := a.Popular()
	if popular[0].Count != 2 {
		t.Errorf("Expected count 2, got %d", popular[0].Count)
	}
	if !popular[0].LastUsed.After(first) {
		t.Errorf("Expected LastUsed to be refreshed")
	}
}

func TestAnalytics_PopularitySortedStable(t *testing.T) {
	a := New()

	a.Record("alpha", 1)
	a.Record("beta", 1)
	a.Record("gamma", 1)
	a.Record("gamma", 1)

	popular := a.Popular()
	want := []string{"gamma", "alpha", "beta"}
	for i, q := range want {
		if popular[i].Query != q {
			t.Errorf("Popular[%d] = %q, want %q", i, popular[i].Query, q)
		}
	}
}

func TestAnalytics_PopularityCapped(t *testing.T) {
	a := New()

	for i := 0; i < 12; i++ {
		a.Record(fmt.Sprintf("q%d", i), 0)
	}
	// New count-1 entries sort last and fall off the cap
	a.Record("q11", 0)
	a.Record("q0", 0)

	popular := a.Popular()
	if len(popular) != maxPopular {
		t.Fatalf("Expected %d popular entries, got %d", maxPopular, len(popular))
	}
	if popular[0].Query != "q0" || popular[0].Count != 2 {
		t.Errorf("Expected q0 with count 2 on top, got %+v", popular[0])
	}
	for _, p := range popular {
		if p.Query == "q10" || p.Query == "q11" {
			t.Errorf("Expected %s to be dropped by the cap, got %+v", p.Query, popular)
		}
	}
}

func TestAnalytics_Stats(t *testing.T) {
	a := New()

	total, unique := a.Stats()
	if total != 0 || unique != 0 {
		t.Errorf("Expected empty stats, got total=%d unique=%d", total, unique)
	}

	a.Record("react", 1)
	a.Record("react", 1)
	a.Record("vue", 1)

	total, unique = a.Stats()
	if total != 3 {
		t.Errorf("Expected 3 total searches, got %d", total)
	}
	if unique != 2 {
		t.Errorf("Expected 2 unique queries, got %d", unique)
	}
}

func TestAnalytics_ClearHistory(t *testing.T) {
	a := New()
	a.Record("react", 1)

	a.ClearHistory()

	if len(a.Entries()) != 0 {
		t.Error("Expected history to be empty")
	}
	if len(a.Popular()) != 1 {
		t.Error("ClearHistory should keep popularity")
	}
}

func TestAnalytics_Clear(t *testing.T) {
	a := New()
	a.Record("react", 1)

	a.Clear()

	if len(a.Entries()) != 0 || len(a.Popular()) != 0 {
		t.Error("Expected history and popularity to be empty after Clear")
	}
}

func TestAnalytics_ReturnsCopies(t *testing.T) {
	a := New()
	a.Record("react", 1)

	entries := a.Entries()
	entries[0].Query = "mutated"
	popular := a.Popular()
	popular[0].Count = 99

	if a.Entries()[0].Query != "react" {
		t.Error("Entries should return a copy")
	}
	if a.Popular()[0].Count != 1 {
		t.Error("Popular should return a copy")
	}
}

func TestAnalytics_ConcurrentAccess(t *testing.T) {
	a := New()

	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				a.Record("react", j)
				_ = a.Entries()
				_ = a.Popular()
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	// 10 goroutines * 100 searches
	total, _ := a.Stats()
	if total != 1000 {
		t.Errorf("Expected 1000 searches, got %d", total)
	}
}
