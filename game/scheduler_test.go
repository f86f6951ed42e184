package game

import (
	"testing"
	"time"
)

func TestDriverFiresPeriodically(t *testing.T) {
	s := NewScheduler()
	count := 0
	d := s.NewDriver("tick", 20*time.Millisecond, func() { count++ })

	s.Advance(100 * time.Millisecond)
	if count != 0 {
		t.Fatalf("stopped driver fired %d times", count)
	}

	d.Start()
	s.Advance(100 * time.Millisecond)
	if count != 5 {
		t.Errorf("fired %d times in 100ms, want 5", count)
	}
	if s.Now() != 200*time.Millisecond {
		t.Errorf("Now() = %v, want 200ms", s.Now())
	}
	if d.Fired() != 5 {
		t.Errorf("Fired() = %d, want 5", d.Fired())
	}
}

func TestDriverStartTwiceDoesNotDouble(t *testing.T) {
	s := NewScheduler()
	count := 0
	d := s.NewDriver("tick", 20*time.Millisecond, func() { count++ })

	d.Start()
	gen := d.Generation()
	d.Start()
	if d.Generation() != gen {
		t.Error("starting an armed driver should keep its generation")
	}

	s.Advance(100 * time.Millisecond)
	if count != 5 {
		t.Errorf("fired %d times, want 5", count)
	}
}

func TestDriverStopCancelsPending(t *testing.T) {
	s := NewScheduler()
	var victim *Driver
	victimFired := 0

	killer := s.NewDriver("killer", time.Second, func() { victim.Stop() })
	victim = s.NewDriver("victim", time.Second, func() { victimFired++ })

	killer.Start()
	victim.Start()

	// Both are due at 1s; the killer runs first and the victim must not fire
	s.Advance(5 * time.Second)
	if victimFired != 0 {
		t.Errorf("stopped driver fired %d times", victimFired)
	}
	if victim.Active() {
		t.Error("victim should be inactive")
	}
}

func TestDriverStopThenStartResetsSchedule(t *testing.T) {
	s := NewScheduler()
	count := 0
	d := s.NewDriver("countdown", time.Second, func() { count++ })

	d.Start()
	s.Advance(900 * time.Millisecond)
	d.Stop()
	d.Start()
	s.Advance(900 * time.Millisecond)
	if count != 0 {
		t.Fatalf("fired %d times before a full interval elapsed since restart", count)
	}
	s.Advance(100 * time.Millisecond)
	if count != 1 {
		t.Errorf("fired %d times, want 1", count)
	}
}

func TestDriverTiesFireInRegistrationOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	a := s.NewDriver("a", 10*time.Millisecond, func() { order = append(order, "a") })
	b := s.NewDriver("b", 10*time.Millisecond, func() { order = append(order, "b") })

	b.Start()
	a.Start()
	s.Advance(20 * time.Millisecond)

	want := []string{"a", "b", "a", "b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestDriverSelfRestartKeepsNewSchedule(t *testing.T) {
	s := NewScheduler()
	var d *Driver
	var at []time.Duration
	d = s.NewDriver("self", 10*time.Millisecond, func() {
		at = append(at, s.Now())
		if len(at) == 1 {
			d.Stop()
			d.Start()
		}
	})

	d.Start()
	s.Advance(30 * time.Millisecond)

	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}
	if len(at) != len(want) {
		t.Fatalf("fired at %v, want %v", at, want)
	}
	for i := range want {
		if at[i] != want[i] {
			t.Errorf("fire %d at %v, want %v", i, at[i], want[i])
		}
	}
}

func TestNewDriverRejectsNonPositiveInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero interval")
		}
	}()
	NewScheduler().NewDriver("bad", 0, func() {})
}
