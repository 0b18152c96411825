package domain

import "testing"

func TestDebouncer_RequiresConsecutiveHits(t *testing.T) {
	d := NewDebouncer(3)
	samples := []bool{true, false, true, true, true}
	want := []bool{false, false, false, false, true}

	for i, s := range samples {
		if got := d.Observe(s); got != want[i] {
			t.Fatalf("sample %d: Observe(%v) = %v, want %v", i, s, got, want[i])
		}
	}
	if d.Streak() != 3 {
		t.Fatalf("expected streak 3, got %d", d.Streak())
	}
}

func TestDebouncer_MissResets(t *testing.T) {
	d := NewDebouncer(2)
	d.Observe(true)
	d.Observe(false)
	if d.Streak() != 0 {
		t.Fatalf("expected reset streak, got %d", d.Streak())
	}
	d.Observe(true)
	d.Reset()
	if d.Observe(true) {
		t.Fatalf("Reset must clear the streak")
	}
}

func TestNewDebouncer_ClampsRequired(t *testing.T) {
	d := NewDebouncer(0)
	if !d.Observe(true) {
		t.Fatalf("a single hit should satisfy a clamped debouncer")
	}
}
