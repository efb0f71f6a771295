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
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop is the real host. Posted functions are run by the goroutine that
// calls Run().
type Loop struct {
	events chan func()

	quit     chan struct{}
	quitOnce sync.Once
	closed   atomic.Bool
}

// NewLoop is the preferred method of initialisation for the Loop type. The
// queue argument is the number of posted functions that can be waiting
// before Post() blocks.
func NewLoop(queue int) *Loop {
	if queue < 1 {
		queue = 1
	}
	return &Loop{
		events: make(chan func(), queue),
		quit:   make(chan struct{}),
	}
}

// Now implements the Timers interface.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post implements the Host interface.
func (l *Loop) Post(f func()) error {
	if l.closed.Load() {
		return ErrClosed
	}
	select {
	case l.events <- f:
		return nil
	case <-l.quit:
		return ErrClosed
	}
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

// Stop implements the Timer interface. The function will not run even if
// the timer has expired and is waiting in the queue.
func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	return t.timer.Stop()
}

// AfterFunc implements the Timers interface.
func (l *Loop) AfterFunc(d time.Duration, f func()) (Timer, error) {
	if l.closed.Load() {
		return nil, ErrClosed
	}

	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		_ = l.Post(func() {
			if t.stopped.Swap(true) {
				return
			}
			f()
		})
	})

	return t, nil
}

// Run services posted functions until the context is done or Quit() is
// called. Returns the context error if the context ended the loop.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Quit()
			return ctx.Err()
		case <-l.quit:
			return nil
		case f := <-l.events:
			f()
		}
	}
}

// Quit ends the loop. Safe to call more than once and from any goroutine.
// Functions still waiting in the queue are discarded.
func (l *Loop) Quit() {
	l.quitOnce.Do(func() {
		l.closed.Store(true)
		close(l.quit)
	})
}

// Done returns a channel that is closed when the loop has been told to quit.
func (l *Loop) Done() <-chan struct{} {
	return l.quit
}
