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

package host_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jetsetilly/zeddy/host"
	"github.com/jetsetilly/zeddy/test"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSimulatedOrder(t *testing.T) {
	sim := host.NewSimulated(epoch)
	test.ExpectImplements(t, sim, (host.Host)(nil))

	var order []int
	var times []time.Duration

	record := func(n int) func() {
		return func() {
			order = append(order, n)
			times = append(times, sim.Now().Sub(epoch))
		}
	}

	_, err := sim.AfterFunc(30*time.Millisecond, record(3))
	test.ExpectSuccess(t, err)
	_, err = sim.AfterFunc(10*time.Millisecond, record(1))
	test.ExpectSuccess(t, err)
	_, err = sim.AfterFunc(10*time.Millisecond, record(2))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sim.Pending(), 3)

	sim.Advance(20 * time.Millisecond)
	test.DemandEquality(t, len(order), 2)
	test.ExpectEquality(t, order[0], 1)
	test.ExpectEquality(t, order[1], 2)
	test.ExpectEquality(t, times[0], 10*time.Millisecond)
	test.ExpectEquality(t, sim.Now().Sub(epoch), 20*time.Millisecond)

	sim.Advance(20 * time.Millisecond)
	test.DemandEquality(t, len(order), 3)
	test.ExpectEquality(t, order[2], 3)
	test.ExpectEquality(t, times[2], 30*time.Millisecond)
	test.ExpectEquality(t, sim.Pending(), 0)
}

func TestSimulatedChained(t *testing.T) {
	sim := host.NewSimulated(epoch)

	var count int
	var rearm func()
	rearm = func() {
		count++
		_, _ = sim.AfterFunc(10*time.Millisecond, rearm)
	}
	_, _ = sim.AfterFunc(0, rearm)

	// timers created during the advance run if they fall due within it
	sim.Advance(100 * time.Millisecond)
	test.ExpectEquality(t, count, 11)
}

func TestSimulatedStop(t *testing.T) {
	sim := host.NewSimulated(epoch)

	var fired bool
	tmr, err := sim.AfterFunc(time.Millisecond, func() { fired = true })
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, tmr.Stop())
	test.ExpectFailure(t, tmr.Stop())

	sim.Advance(time.Second)
	test.ExpectFailure(t, fired)
}

func TestSimulatedPostAndClose(t *testing.T) {
	sim := host.NewSimulated(epoch)

	var ran bool
	test.ExpectSuccess(t, sim.Post(func() { ran = true }))
	test.ExpectFailure(t, ran)
	sim.RunPending()
	test.ExpectSuccess(t, ran)

	sim.FailTimers = errors.New("no timers")
	_, err := sim.AfterFunc(time.Millisecond, func() {})
	test.ExpectFailure(t, err)

	sim.FailTimers = nil
	sim.Close()
	_, err = sim.AfterFunc(time.Millisecond, func() {})
	test.ExpectSuccess(t, errors.Is(err, host.ErrClosed))
	test.ExpectSuccess(t, errors.Is(sim.Post(func() {}), host.ErrClosed))
}

func TestLoop(t *testing.T) {
	loop := host.NewLoop(4)
	test.ExpectImplements(t, loop, (host.Host)(nil))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error)
	go func() {
		done <- loop.Run(ctx)
	}()

	var count int
	test.ExpectSuccess(t, loop.Post(func() { count++ }))

	// the timer runs on the loop goroutine after the posted function
	_, err := loop.AfterFunc(time.Millisecond, func() {
		count++
		loop.Quit()
	})
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, <-done)
	test.ExpectEquality(t, count, 2)

	_, err = loop.AfterFunc(time.Millisecond, func() {})
	test.ExpectSuccess(t, errors.Is(err, host.ErrClosed))
	test.ExpectSuccess(t, errors.Is(loop.Post(func() {}), host.ErrClosed))
}

func TestLoopStoppedTimer(t *testing.T) {
	loop := host.NewLoop(4)

	var fired bool
	tmr, err := loop.AfterFunc(time.Millisecond, func() { fired = true })
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, tmr.Stop())
	test.ExpectFailure(t, tmr.Stop())

	_, err = loop.AfterFunc(20*time.Millisecond, loop.Quit)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, loop.Run(context.Background()))
	test.ExpectFailure(t, fired)
}

func TestLoopContext(t *testing.T) {
	loop := host.NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := loop.Run(ctx)
	test.ExpectSuccess(t, errors.Is(err, context.Canceled))
}
