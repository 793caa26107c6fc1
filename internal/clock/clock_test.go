package clock

import (
	"testing"
	"time"
)

func TestManual_SetAndAdvance(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewManual(start)

	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("Now() = %v, want %v", got, start)
	}

	if got := c.Advance(time.Hour); !got.Equal(start.Add(time.Hour)) {
		t.Errorf("Advance() = %v, want %v", got, start.Add(time.Hour))
	}

	later := start.AddDate(0, 1, 0)
	c.Set(later)
	if got := c.Now(); !got.Equal(later) {
		t.Errorf("Now() after Set = %v, want %v", got, later)
	}
}

func TestSystem_IsUTC(t *testing.T) {
	before := time.Now()
	got := System{}.Now()
	after := time.Now()

	if got.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", got.Location())
	}
	if got.Before(before.Add(-time.Second)) || got.After(after.Add(time.Second)) {
		t.Errorf("System.Now() = %v outside [%v, %v]", got, before, after)
	}
}
