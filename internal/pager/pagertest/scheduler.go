// Package pagertest provides a virtual clock for driving pager timers in
// tests
package pagertest

import (
	"sort"
	"time"

	"wheelpage/internal/pager"
)

// ManualScheduler is a pager.Scheduler whose clock only moves on Advance.
// Callbacks run synchronously inside Advance, in due order
type ManualScheduler struct {
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	s    *ManualScheduler
	due  time.Time
	seq  int
	f    func()
	dead bool
}

// NewManualScheduler creates a scheduler starting at an arbitrary fixed time
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the virtual time
func (s *ManualScheduler) Now() time.Time { return s.now }

// AfterFunc schedules f at Now()+d
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) pager.Timer {
	s.seq++
	t := &manualTimer{s: s, due: s.now.Add(d), seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Pending returns the number of live timers
func (s *ManualScheduler) Pending() int {
	return len(s.timers)
}

// Advance moves the clock forward by d, running every timer that comes due
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now.Add(d)
	for {
		next := s.next(target)
		if next == nil {
			break
		}
		s.remove(next)
		s.now = next.due
		next.dead = true
		next.f()
	}
	s.now = target
}

func (s *ManualScheduler) next(limit time.Time) *manualTimer {
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due.Equal(s.timers[j].due) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].due.Before(s.timers[j].due)
	})
	if s.timers[0].due.After(limit) {
		return nil
	}
	return s.timers[0]
}

func (s *ManualScheduler) remove(t *manualTimer) {
	for i, other := range s.timers {
		if other == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// Stop implements pager.Timer
func (t *manualTimer) Stop() bool {
	if t.dead {
		return false
	}
	t.dead = true
	t.s.remove(t)
	return true
}
