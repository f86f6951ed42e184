package game

import (
	"fmt"
	"time"
)

// Scheduler runs periodic drivers against a virtual clock. Everything happens
// on the goroutine that calls Advance; drivers never run concurrently.
type Scheduler struct {
	now     time.Duration
	drivers []*Driver
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Driver is a cancellable periodic callback.
type Driver struct {
	name     string
	sched    *Scheduler
	interval time.Duration
	fn       func()

	armed bool
	gen   uint64 // bumped on every Start and Stop
	due   time.Duration
	fired uint64
}

// NewDriver registers a stopped driver. Drivers registered earlier fire first
// when due at the same instant.
func (s *Scheduler) NewDriver(name string, interval time.Duration, fn func()) *Driver {
	if interval <= 0 {
		panic(fmt.Sprintf("scheduler: driver %q needs a positive interval, got %v", name, interval))
	}
	d := &Driver{name: name, sched: s, interval: interval, fn: fn}
	s.drivers = append(s.drivers, d)
	return d
}

// Start arms the driver to fire one interval from now. Starting an armed
// driver keeps its current schedule.
func (d *Driver) Start() {
	if d.armed {
		return
	}
	d.armed = true
	d.gen++
	d.due = d.sched.now + d.interval
}

// Stop disarms the driver. A pending invocation will not fire, even if it
// is due within the Advance call currently running.
func (d *Driver) Stop() {
	if !d.armed {
		return
	}
	d.armed = false
	d.gen++
}

// Active reports whether the driver is armed.
func (d *Driver) Active() bool { return d.armed }

// Generation identifies the current arming of the driver.
func (d *Driver) Generation() uint64 { return d.gen }

// Fired returns how many times the callback has run.
func (d *Driver) Fired() uint64 { return d.fired }

// next returns the armed driver due earliest at or before limit.
func (s *Scheduler) next(limit time.Duration) *Driver {
	var best *Driver
	for _, d := range s.drivers {
		if !d.armed || d.due > limit {
			continue
		}
		if best == nil || d.due < best.due {
			best = d
		}
	}
	return best
}

// Advance moves the clock forward by elapsed, firing every driver that comes
// due in order. Callbacks may start or stop any driver, including their own.
func (s *Scheduler) Advance(elapsed time.Duration) {
	limit := s.now + elapsed
	for {
		d := s.next(limit)
		if d == nil {
			break
		}
		s.now = d.due

		gen := d.gen
		d.fired++
		d.fn()

		// A callback that re-armed its own driver already set a fresh due time
		if d.armed && d.gen == gen {
			d.due += d.interval
		}
	}
	s.now = limit
}
