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

// Package host provides the single control thread that everything in the
// emulator runs on. Functions are posted to the host and run one at a time,
// each to completion. Timers post their function to the host when they
// expire, so a timer callback never runs at the same time as any other
// host function.
//
// The Loop type is the real host. The Simulated type has a manual clock and
// is used for testing timing sensitive code without waiting.
package host

import (
	"errors"
	"time"
)

// ErrClosed is returned when a function is posted or a timer is requested
// after the host has been closed.
var ErrClosed = errors.New("host closed")

// Timer is a handle to a pending timer function.
type Timer interface {
	// Stop prevents the timer function from running. Returns false if the
	// function has already run or the timer was already stopped.
	Stop() bool
}

// Timers is the part of a host needed by code that schedules itself.
type Timers interface {
	Now() time.Time

	// AfterFunc arranges for f to be run on the host after duration d. An
	// error means that no timer could be allocated and f will never run.
	AfterFunc(d time.Duration, f func()) (Timer, error)
}

// Host is the complete interface to the host. Implemented by the Loop and
// Simulated types.
type Host interface {
	Timers

	// Post queues f to be run on the host. Functions run in the order they
	// are posted. Safe to call from any goroutine.
	Post(f func()) error
}
