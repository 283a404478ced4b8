package pager

import "time"

// Timer is a pending callback scheduled through a Scheduler
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped
	Stop() bool
}

// Scheduler is the host's timer facility. Callbacks scheduled through it
// must be delivered on the same logical thread that calls into the
// Controller
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// QueueScheduler arms real timers but never runs callbacks on the timer
// goroutine. When a timer expires the callback is handed to post, which
// must deliver it to the host loop; the host loop then calls it
type QueueScheduler struct {
	post func(run func())
	now  func() time.Time
}

// NewQueueScheduler creates a scheduler that delivers expired timers
// through post
func NewQueueScheduler(post func(run func())) *QueueScheduler {
	return &QueueScheduler{
		post: post,
		now:  time.Now,
	}
}

// Now returns the wall clock time
func (s *QueueScheduler) Now() time.Time {
	return s.now()
}

// AfterFunc schedules f to be posted to the host loop after d
func (s *QueueScheduler) AfterFunc(d time.Duration, f func()) Timer {
	qt := &queuedTimer{}
	qt.timer = time.AfterFunc(d, func() {
		s.post(func() {
			// stopped and fired are only touched on the host loop
			if qt.stopped || qt.fired {
				return
			}
			qt.fired = true
			f()
		})
	})
	return qt
}

type queuedTimer struct {
	timer   *time.Timer
	stopped bool
	fired   bool
}

// Stop marks the timer dead. A fire already sitting in the host queue is
// discarded when it is drained
func (t *queuedTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}
