// This file is part of Zeddy.
//
// Zeddy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zeddy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zeddy.  If not, see <https://www.gnu.org/licenses/>.

package host

import (
	"time"
)

// Simulated is a host with a manual clock. Time only moves when Advance()
// is called. Not safe for concurrent use.
type Simulated struct {
	now    time.Time
	timers []*simTimer
	posted []func()
	seq    int
	closed bool

	// if not nil AfterFunc() fails with this error
	FailTimers error
}

type simTimer struct {
	due     time.Time
	seq     int
	f       func()
	stopped bool
}

// Stop implements the Timer interface.
func (t *simTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewSimulated is the preferred method of initialisation for the Simulated
// type.
func NewSimulated(start time.Time) *Simulated {
	return &Simulated{
		now: start,
	}
}

// Now implements the Timers interface.
func (s *Simulated) Now() time.Time {
	return s.now
}

// AfterFunc implements the Timers interface. Negative durations are treated
// as zero.
func (s *Simulated) AfterFunc(d time.Duration, f func()) (Timer, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.FailTimers != nil {
		return nil, s.FailTimers
	}
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &simTimer{due: s.now.Add(d), seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t, nil
}

// Post implements the Host interface. Posted functions run on the next call
// to Advance() or RunPending().
func (s *Simulated) Post(f func()) error {
	if s.closed {
		return ErrClosed
	}
	s.posted = append(s.posted, f)
	return nil
}

// Close the host. Future calls to Post() and AfterFunc() fail.
func (s *Simulated) Close() {
	s.closed = true
}

// Pending returns the number of timers that have not run or been stopped.
func (s *Simulated) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// next removes and returns the earliest timer due at or before limit.
// Timers due at the same time run in the order they were created.
func (s *Simulated) next(limit time.Time) *simTimer {
	idx := -1
	for i, t := range s.timers {
		if t.stopped || t.due.After(limit) {
			continue
		}
		if idx == -1 || t.due.Before(s.timers[idx].due) ||
			(t.due.Equal(s.timers[idx].due) && t.seq < s.timers[idx].seq) {
			idx = i
		}
	}
	if idx == -1 {
		return nil
	}
	t := s.timers[idx]
	s.timers = append(s.timers[:idx], s.timers[idx+1:]...)
	return t
}

func (s *Simulated) runPosted() {
	for len(s.posted) > 0 {
		f := s.posted[0]
		s.posted = s.posted[1:]
		f()
	}
}

// RunPending runs posted functions and any timers that are due now.
func (s *Simulated) RunPending() {
	s.Advance(0)
}

// Advance moves the clock forward by d. Timers that become due are run in
// due order, with the clock set to each timer's due time while it runs.
// Timers created by timer functions are run too if they fall due before
// the end of the advance.
func (s *Simulated) Advance(d time.Duration) {
	end := s.now.Add(d)

	s.runPosted()
	for {
		t := s.next(end)
		if t == nil {
			break
		}
		if t.due.After(s.now) {
			s.now = t.due
		}
		t.stopped = true
		t.f()
		s.runPosted()
	}

	s.now = end
}

// AdvanceInSteps calls Advance() n times with the step duration. Simulates a
// host that services its loop at a regular interval.
func (s *Simulated) AdvanceInSteps(step time.Duration, n int) {
	for range n {
		s.Advance(step)
	}
}
