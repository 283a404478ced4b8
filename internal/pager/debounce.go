package pager

import "time"

// Debouncer collapses a burst of Reset calls into a single execution of fn,
// delay after the last call in the burst
type Debouncer struct {
	sched Scheduler
	delay time.Duration
	fn    func()
	timer Timer
}

// NewDebouncer creates a debouncer that runs fn through sched
func NewDebouncer(sched Scheduler, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		sched: sched,
		delay: delay,
		fn:    fn,
	}
}

// Reset cancels any pending execution and schedules a new one
func (d *Debouncer) Reset() {
	d.Cancel()
	d.timer = d.sched.AfterFunc(d.delay, d.fire)
}

// Cancel drops the pending execution, if any. It reports whether one was
// pending
func (d *Debouncer) Cancel() bool {
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// Pending reports whether an execution is scheduled
func (d *Debouncer) Pending() bool {
	return d.timer != nil
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

func (d *Debouncer) fire() {
	d.timer = nil
	d.fn()
}
