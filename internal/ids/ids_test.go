package ids

import (
	"testing"
	"time"
)

func TestNew_UniqueAndSorted(t *testing.T) {
	prev := ""
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := New()
		if len(id) != 26 {
			t.Fatalf("expected 26-char ULID, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		if id <= prev {
			t.Errorf("expected %q > %q", id, prev)
		}
		prev = id
	}
}

func TestNewAt_UsesTimestamp(t *testing.T) {
	early := NewAt(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	late := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if early >= late {
		t.Errorf("expected %q < %q", early, late)
	}
}
