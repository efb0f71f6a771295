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

package scheduler_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/zeddy/debugger/breakpoints"
	"github.com/jetsetilly/zeddy/hardware/clocks"
	"github.com/jetsetilly/zeddy/hardware/cpu/cputest"
	"github.com/jetsetilly/zeddy/hardware/execution"
	"github.com/jetsetilly/zeddy/host"
	"github.com/jetsetilly/zeddy/logger"
	"github.com/jetsetilly/zeddy/scheduler"
	"github.com/jetsetilly/zeddy/test"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// runner executes exactly the number of ticks it is asked for
type runner struct {
	calls   int
	budgets []float64
	err     error
}

func (r *runner) RunTicks(budget float64) (int, error) {
	r.calls++
	r.budgets = append(r.budgets, budget)
	if r.err != nil {
		return 0, r.err
	}
	return int(math.Ceil(budget)), nil
}

type fixture struct {
	sim   *host.Simulated
	log   *logger.Logger
	cfg   scheduler.ClockConfig
	sched *scheduler.Scheduler
}

func newFixture(r scheduler.Runner, frequency int, refresh int) *fixture {
	f := &fixture{
		sim: host.NewSimulated(epoch),
		log: logger.NewLogger(),
		cfg: scheduler.ClockConfig{Frequency: frequency, Refresh: refresh},
	}
	f.log.SetClock(f.sim.Now)
	f.sched = scheduler.NewScheduler(f.sim, r, func() scheduler.ClockConfig { return f.cfg }, f.log)
	return f
}

func TestAchievedFrequency(t *testing.T) {
	r := &runner{}
	f := newFixture(r, clocks.MSX, clocks.RefreshNTSC)

	_, ok := f.sched.Frequency()
	test.ExpectFailure(t, ok)

	test.DemandSuccess(t, f.sched.Start())

	// no time has passed
	_, ok = f.sched.Frequency()
	test.ExpectFailure(t, ok)

	// the first chunk runs immediately
	f.sim.RunPending()
	test.DemandEquality(t, r.calls, 1)
	test.ExpectEquality(t, r.budgets[0], 59659.0)
	test.ExpectApproximate(t, f.sched.State().Accumulator, 0.0833, 0.01)

	// sixty chunks are run in the first second. the scheduler runs a chunk at
	// the start of its period so measuring at exactly one second would
	// include the first chunk of the next second
	f.sim.Advance(999 * time.Millisecond)
	test.ExpectEquality(t, r.calls, 60)

	freq, ok := f.sched.Frequency()
	test.ExpectSuccess(t, ok)
	test.ExpectApproximate(t, freq, float64(clocks.MSX), 0.01)

	// the fractional ticks have been executed by the accumulator
	test.ExpectApproximate(t, f.sched.State().TotalTicks, uint64(clocks.MSX), 0.00001)
}

func TestLongRun(t *testing.T) {
	r := &runner{}
	f := newFixture(r, clocks.Spectrum, clocks.RefreshPAL)
	test.DemandSuccess(t, f.sched.Start())

	for range 10000 {
		f.sim.Advance(time.Millisecond)
		acc := f.sched.State().Accumulator
		if !test.ExpectSuccess(t, acc >= 0 && acc < 1, "accumulator") {
			break
		}
	}

	state := f.sched.State()
	test.ExpectSuccess(t, state.Running)
	test.ExpectEquality(t, state.StepCount, 501)
	test.ExpectApproximate(t, state.TotalTicks, uint64(clocks.Spectrum*10), 0.005)

	freq, ok := f.sched.Frequency()
	test.ExpectSuccess(t, ok)
	test.ExpectApproximate(t, freq, float64(clocks.Spectrum), 0.005)
}

func TestFractionalRate(t *testing.T) {
	r := &runner{}

	// seven ticks per second at two chunks per second is three and a half
	// ticks per chunk
	f := newFixture(r, 7, 2)
	test.DemandSuccess(t, f.sched.Start())
	f.sim.Advance(1999 * time.Millisecond)

	test.DemandEquality(t, len(r.budgets), 4)
	test.ExpectEquality(t, r.budgets[0], 3.0)
	test.ExpectEquality(t, r.budgets[1], 4.0)
	test.ExpectEquality(t, r.budgets[2], 3.0)
	test.ExpectEquality(t, r.budgets[3], 4.0)
	test.ExpectEquality(t, f.sched.State().TotalTicks, 14)
	test.ExpectEquality(t, f.sched.State().Accumulator, 0.0)
}

// stalled is a host whose clock runs ahead of the time timers are fired at,
// in the way a busy host services timers late
type stalled struct {
	*host.Simulated
	lag time.Duration
}

func (s *stalled) Now() time.Time {
	return s.Simulated.Now().Add(s.lag)
}

func TestCatchUp(t *testing.T) {
	r := &runner{}
	sim := &stalled{Simulated: host.NewSimulated(epoch)}
	cfg := scheduler.ClockConfig{Frequency: 6000, Refresh: 60}
	sched := scheduler.NewScheduler(sim, r, func() scheduler.ClockConfig { return cfg }, logger.NewLogger())

	test.DemandSuccess(t, sched.Start())
	sim.RunPending()
	test.ExpectEquality(t, r.calls, 1)
	test.ExpectEquality(t, sched.State().StepCount, 1)

	// the second chunk fires 101ms late. six chunks were missed and they are
	// all run in the same callback as the current chunk
	sim.lag = 101 * time.Millisecond
	sim.Advance(17 * time.Millisecond)
	test.ExpectEquality(t, r.calls, 8)
	test.ExpectEquality(t, sched.State().StepCount, 8)
	test.ExpectEquality(t, sched.State().TotalTicks, 800)

	// the schedule continues from the caught up position
	sim.Advance(16 * time.Millisecond)
	test.ExpectEquality(t, r.calls, 9)
}

func TestOnChunk(t *testing.T) {
	r := &runner{}
	f := newFixture(r, 1000, 10)

	var chunks int
	f.sched.OnChunk = func() {
		chunks++
	}

	test.DemandSuccess(t, f.sched.Start())
	f.sim.Advance(350 * time.Millisecond)
	test.ExpectEquality(t, chunks, 4)

	// no chunk callback for the chunk that ends the run
	r.err = errors.New("runner failure")
	f.sim.Advance(100 * time.Millisecond)
	test.ExpectEquality(t, chunks, 4)
	test.ExpectFailure(t, f.sched.Running())
}

func TestStopInOnChunk(t *testing.T) {
	r := &runner{}
	f := newFixture(r, 1000, 10)

	stop := true
	var chunks int
	f.sched.OnChunk = func() {
		chunks++
		if stop {
			stop = false
			f.sched.Stop()
		}
	}

	test.DemandSuccess(t, f.sched.Start())
	f.sim.RunPending()
	test.ExpectEquality(t, chunks, 1)
	test.ExpectFailure(t, f.sched.Running())
	test.ExpectEquality(t, f.sim.Pending(), 0)

	// a new run has a single chunk chain
	test.DemandSuccess(t, f.sched.Start())
	test.ExpectEquality(t, f.sim.Pending(), 1)

	f.sim.Advance(999 * time.Millisecond)
	test.ExpectEquality(t, chunks, 11)
	test.ExpectEquality(t, r.calls, 11)
	test.ExpectEquality(t, f.sim.Pending(), 1)

	f.sched.Stop()
	test.ExpectEquality(t, f.sim.Pending(), 0)
}

func TestRestartInOnChunk(t *testing.T) {
	r := &runner{}
	f := newFixture(r, 1000, 10)

	restart := true
	f.sched.OnChunk = func() {
		if restart {
			restart = false
			f.sched.Stop()
			test.ExpectSuccess(t, f.sched.Start())
		}
	}

	test.DemandSuccess(t, f.sched.Start())
	f.sim.RunPending()
	test.ExpectSuccess(t, f.sched.Running())
	test.ExpectEquality(t, r.calls, 2)
	test.ExpectEquality(t, f.sim.Pending(), 1)

	f.sim.Advance(999 * time.Millisecond)
	test.ExpectEquality(t, r.calls, 11)
	test.ExpectEquality(t, f.sim.Pending(), 1)
}

// the runner completes the instruction that crosses the budget. the excess
// is carried into the following chunks so the achieved frequency is not
// biased by the cost of an instruction
func TestInstructionOvershoot(t *testing.T) {
	for _, freq := range []int{60, 100, 1000} {
		eng := &cputest.Engine{Ticks: 4}
		ctl := execution.NewController(eng, breakpoints.NewRegistry())
		f := newFixture(ctl, freq, 60)

		test.DemandSuccess(t, f.sched.Start())
		f.sim.Advance(9999 * time.Millisecond)

		state := f.sched.State()
		test.ExpectSuccess(t, state.Running)
		test.ExpectEquality(t, state.StepCount, 600, freq)
		test.ExpectApproximate(t, state.TotalTicks, uint64(freq*10), 0.01)

		achieved, ok := f.sched.Frequency()
		test.ExpectSuccess(t, ok)
		test.ExpectApproximate(t, achieved, float64(freq), 0.01)

		acc := state.Accumulator
		test.ExpectSuccess(t, acc >= 0 && acc < 1, "accumulator")
	}
}

func TestStartIdempotent(t *testing.T) {
	r := &runner{}
	f := newFixture(r, 1000, 10)

	test.DemandSuccess(t, f.sched.Start())
	test.DemandSuccess(t, f.sched.Start())
	test.ExpectEquality(t, f.sim.Pending(), 1)
	test.ExpectEquality(t, f.log.Len(), 1)

	f.sim.Advance(50 * time.Millisecond)
	test.ExpectEquality(t, r.calls, 1)
	test.ExpectEquality(t, f.sim.Pending(), 1)
}

func TestTimerFailure(t *testing.T) {
	r := &runner{}
	f := newFixture(r, 1000, 10)
	f.sim.FailTimers = errors.New("out of timers")

	err := f.sched.Start()
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, f.sched.Running())
	test.ExpectEquality(t, f.sim.Pending(), 0)

	// the scheduler can be started once timers are available
	f.sim.FailTimers = nil
	test.ExpectSuccess(t, f.sched.Start())
	test.ExpectSuccess(t, f.sched.Running())
}

func TestRearmFailure(t *testing.T) {
	r := &runner{}
	f := newFixture(r, 1000, 10)

	test.DemandSuccess(t, f.sched.Start())
	f.sim.FailTimers = errors.New("out of timers")
	f.sim.RunPending()

	test.ExpectEquality(t, r.calls, 1)
	test.ExpectFailure(t, f.sched.Running())

	last, ok := f.log.LastLog()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, last.Level, logger.Error)
}

func TestDoubleStop(t *testing.T) {
	r := &runner{}
	f := newFixture(r, 1000, 10)

	var stops int
	f.sched.OnStop = func(err error) {
		stops++
		test.ExpectSuccess(t, err)
	}

	test.DemandSuccess(t, f.sched.Start())
	f.sim.Advance(250 * time.Millisecond)

	f.sched.Stop()
	test.ExpectFailure(t, f.sched.Running())
	test.ExpectEquality(t, f.sim.Pending(), 0)
	n := f.log.Len()

	f.sched.Stop()
	test.ExpectEquality(t, f.log.Len(), n)
	test.ExpectEquality(t, stops, 1)
}

func TestFrozenAfterStop(t *testing.T) {
	r := &runner{}
	f := newFixture(r, 1000, 10)

	test.DemandSuccess(t, f.sched.Start())
	f.sim.Advance(450 * time.Millisecond)
	f.sched.Stop()

	state := f.sched.State()
	freq, ok := f.sched.Frequency()
	test.DemandSuccess(t, ok)

	f.sim.Advance(time.Second)
	test.ExpectEquality(t, f.sched.State(), state)
	test.ExpectEquality(t, r.calls, 5)

	after, _ := f.sched.Frequency()
	test.ExpectEquality(t, after, freq)

	// a new run resets the state
	test.DemandSuccess(t, f.sched.Start())
	test.ExpectEquality(t, f.sched.State().TotalTicks, 0)
	test.ExpectEquality(t, f.sched.State().StepCount, 0)
}

func TestConfigChange(t *testing.T) {
	r := &runner{}
	f := newFixture(r, 6000, 60)

	test.DemandSuccess(t, f.sched.Start())
	f.sim.Advance(490 * time.Millisecond)
	test.ExpectEquality(t, r.calls, 30)

	// frequency change takes effect on the next chunk
	f.cfg.Frequency = 12000
	f.sim.Advance(10 * time.Millisecond)
	test.ExpectEquality(t, r.budgets[len(r.budgets)-1], 200.0)

	// refresh change rebases the schedule
	f.cfg.Refresh = 50
	f.sim.Advance(20 * time.Millisecond)
	test.ExpectEquality(t, f.sched.State().StepCount, 1)
	test.ExpectEquality(t, r.budgets[len(r.budgets)-1], 240.0)

	// measure over a longer period
	f.sim.Advance(9479 * time.Millisecond)
	freq, ok := f.sched.Frequency()
	test.ExpectSuccess(t, ok)
	test.ExpectApproximate(t, freq, 11700.0, 0.01)
}

func TestInvalidConfig(t *testing.T) {
	r := &runner{}
	f := newFixture(r, 0, 60)
	err := f.sched.Start()
	test.ExpectSuccess(t, errors.Is(err, scheduler.ErrConfig))
	test.ExpectFailure(t, f.sched.Running())

	f.cfg.Frequency = 1000
	test.DemandSuccess(t, f.sched.Start())
	f.cfg.Refresh = 0
	f.sim.RunPending()
	test.ExpectFailure(t, f.sched.Running())
	test.ExpectEquality(t, r.calls, 0)
}

func TestBreakpointStop(t *testing.T) {
	bp := breakpoints.NewRegistry()
	bp.Toggle(0x0010)
	eng := &cputest.Engine{}
	ctl := execution.NewController(eng, bp)
	f := newFixture(ctl, clocks.MSX, clocks.RefreshNTSC)

	var reason error
	f.sched.OnStop = func(err error) {
		reason = err
	}

	test.DemandSuccess(t, f.sched.Start())
	f.sim.Advance(100 * time.Millisecond)

	test.ExpectFailure(t, f.sched.Running())
	test.ExpectEquality(t, f.sim.Pending(), 0)
	test.ExpectEquality(t, eng.PC(), 0x0010)
	test.ExpectEquality(t, f.sched.State().TotalTicks, 16)

	stop, ok := execution.AsStop(reason)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, stop.Reason, execution.Breakpoint)

	last, ok := f.log.LastLog()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, last.Level, logger.Info)
	test.ExpectSuccess(t, strings.Contains(last.Detail, "0x0010"))
}

func TestFaultStop(t *testing.T) {
	eng := &cputest.Engine{FaultAt: 0x0020, FaultArmed: true}
	ctl := execution.NewController(eng, breakpoints.NewRegistry())
	f := newFixture(ctl, clocks.MSX, clocks.RefreshNTSC)

	test.DemandSuccess(t, f.sched.Start())
	f.sim.RunPending()
	test.ExpectFailure(t, f.sched.Running())

	last, ok := f.log.LastLog()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, last.Level, logger.Error)
	test.ExpectSuccess(t, strings.Contains(last.Detail, "0x0020"))
	test.ExpectSuccess(t, strings.Contains(last.Detail, "illegal operation"))
}
