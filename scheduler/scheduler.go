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

// Package scheduler runs the emulated machine at a virtual clock frequency.
//
// Execution happens in chunks, one chunk per refresh period. Each chunk is a
// timer function running on the host and executes the number of clock ticks
// that fit in the refresh period. If the host falls behind the missed chunks
// are executed in the same callback so that the number of ticks executed
// tracks wall time.
//
// The scheduler is not safe for concurrent use. All methods should be called
// from the host that the timers run on.
package scheduler

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jetsetilly/zeddy/hardware/execution"
	"github.com/jetsetilly/zeddy/host"
	"github.com/jetsetilly/zeddy/logger"
)

// tag used for log entries
const tag = "scheduler"

// ErrConfig is returned when the clock configuration is not usable.
var ErrConfig = errors.New("invalid clock configuration")

// ClockConfig is the target speed of the emulation.
type ClockConfig struct {
	// the number of clock ticks per second
	Frequency int

	// the number of chunks per second
	Refresh int
}

func (cfg ClockConfig) String() string {
	return fmt.Sprintf("%d Hz @ %d Hz", cfg.Frequency, cfg.Refresh)
}

func (cfg ClockConfig) valid() error {
	if cfg.Frequency <= 0 {
		return fmt.Errorf("%w: frequency must be positive (%d)", ErrConfig, cfg.Frequency)
	}
	if cfg.Refresh <= 0 {
		return fmt.Errorf("%w: refresh rate must be positive (%d)", ErrConfig, cfg.Refresh)
	}
	return nil
}

// ticksPerChunk returns the whole and fractional number of ticks in a chunk.
func (cfg ClockConfig) ticksPerChunk() (float64, float64) {
	return math.Modf(float64(cfg.Frequency) / float64(cfg.Refresh))
}

// Runner executes clock ticks. Implemented by the execution.Controller type.
type Runner interface {
	RunTicks(budget float64) (int, error)
}

// RunState is a snapshot of the state of the current or most recent run.
type RunState struct {
	Running bool

	// number of ticks executed since the start of the run
	TotalTicks uint64

	// time the run started. the measured frequency is relative to this time
	StartTime time.Time

	// the fractional ticks that have not yet been executed. always less than
	// one
	Accumulator float64

	// the number of chunks that have been executed since the scheduling epoch
	StepCount int
}

// Scheduler runs a Runner at the frequency described by a ClockConfig.
type Scheduler struct {
	timers host.Timers
	runner Runner
	config func() ClockConfig
	log    *logger.Logger

	state RunState

	// the time the chunk schedule is measured from. this is the same as the
	// StartTime field of RunState unless the refresh rate has changed during
	// the run
	epoch        time.Time
	epochRefresh int

	// the time the run stopped. used for frequency measurement after the
	// run has ended
	stopTime time.Time

	// the single pending chunk timer. nil if no chunk is pending
	timer host.Timer

	// ticks executed beyond the budget of earlier sub-chunks. the runner
	// finishes the instruction that crosses the budget so it can overshoot
	// by up to the cost of one instruction. the debt is taken from the
	// budget of following sub-chunks
	debt float64

	// OnStop is called when a run ends for any reason. The error is nil if
	// Stop() was called, otherwise it is the error that ended the run
	OnStop func(err error)

	// OnChunk is called at the end of every chunk that did not end the run
	OnChunk func()
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type. The config function is called at the start of every chunk so the
// clock configuration can change at any time.
func NewScheduler(timers host.Timers, runner Runner, config func() ClockConfig, log *logger.Logger) *Scheduler {
	return &Scheduler{
		timers: timers,
		runner: runner,
		config: config,
		log:    log,
	}
}

// Running returns true if the scheduler is running.
func (s *Scheduler) Running() bool {
	return s.state.Running
}

// State returns a copy of the current run state.
func (s *Scheduler) State() RunState {
	return s.state
}

// Start a new run. Does nothing if the scheduler is already running. The
// run state is reset and the first chunk is scheduled to run immediately.
//
// An error is returned if the first chunk could not be scheduled. The
// scheduler will not be running in that case.
func (s *Scheduler) Start() error {
	if s.state.Running {
		return nil
	}

	cfg := s.config()
	if err := cfg.valid(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	now := s.timers.Now()
	s.state = RunState{
		Running:   true,
		StartTime: now,
	}
	s.epoch = now
	s.epochRefresh = cfg.Refresh
	s.stopTime = time.Time{}
	s.debt = 0

	t, err := s.timers.AfterFunc(0, s.chunk)
	if err != nil {
		s.state.Running = false
		s.stopTime = now
		return fmt.Errorf("scheduler: %w", err)
	}
	s.timer = t

	s.log.Logf(logger.Info, tag, "running at %s", cfg)

	return nil
}

// Stop the run. The run state is frozen and can still be inspected. Does
// nothing if the scheduler is not running.
func (s *Scheduler) Stop() {
	if !s.state.Running {
		return
	}
	s.end()
	s.log.Info(tag, "stopped")
	if s.OnStop != nil {
		s.OnStop(nil)
	}
}

// end the run without logging.
func (s *Scheduler) end() {
	s.state.Running = false
	s.stopTime = s.timers.Now()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// halt the run because of an error from the runner or the host.
func (s *Scheduler) halt(err error) {
	s.end()

	if stop, ok := execution.AsStop(err); ok && stop.Expected() {
		s.log.Info(tag, stop)
	} else {
		s.log.Error(tag, err)
	}

	if s.OnStop != nil {
		s.OnStop(err)
	}
}

// elapsed returns the duration of the current or most recent run.
func (s *Scheduler) elapsed() time.Duration {
	if s.state.StartTime.IsZero() {
		return 0
	}
	if s.state.Running {
		return s.timers.Now().Sub(s.state.StartTime)
	}
	return s.stopTime.Sub(s.state.StartTime)
}

// Frequency returns the achieved frequency of the current or most recent run
// in ticks per second. Returns false if no time has elapsed.
func (s *Scheduler) Frequency() (float64, bool) {
	elapsed := s.elapsed()
	if elapsed <= 0 {
		return 0, false
	}
	ms := float64(elapsed) / float64(time.Millisecond)
	return float64(s.state.TotalTicks) / ms * 1000, true
}

// chunk is the timer function. Runs the ticks for the current chunk and any
// chunks that have been missed and then schedules the next chunk.
func (s *Scheduler) chunk() {
	if !s.state.Running {
		return
	}
	s.timer = nil

	cfg := s.config()
	if err := cfg.valid(); err != nil {
		s.halt(fmt.Errorf("scheduler: %w", err))
		return
	}

	now := s.timers.Now()

	// the step count is meaningless if the chunk duration has changed
	if cfg.Refresh != s.epochRefresh {
		s.epoch = now
		s.epochRefresh = cfg.Refresh
		s.state.StepCount = 0
	}

	elapsed := now.Sub(s.epoch)
	expected := int(int64(elapsed)*int64(cfg.Refresh)/int64(time.Second)) + 1

	s.state.StepCount++
	missed := max(0, expected-s.state.StepCount)

	whole, frac := cfg.ticksPerChunk()

	for range missed + 1 {
		budget := whole
		s.state.Accumulator += frac
		if s.state.Accumulator >= 1.0 {
			budget++
			s.state.Accumulator--
		}

		budget -= s.debt
		if budget <= 0 {
			s.debt = -budget
			continue
		}

		ticks, err := s.runner.RunTicks(budget)
		s.state.TotalTicks += uint64(ticks)
		if err != nil {
			s.halt(err)
			return
		}
		s.debt = max(0, float64(ticks)-budget)
	}

	s.state.StepCount += missed

	if s.OnChunk != nil {
		s.OnChunk()

		// the callback may have stopped the run or stopped and restarted it.
		// in both cases this chunk must not arm another timer
		if !s.state.Running || s.timer != nil {
			return
		}
	}

	next := s.epoch.Add(time.Duration(int64(s.state.StepCount) * int64(time.Second) / int64(cfg.Refresh)))
	delay := max(0, next.Sub(s.timers.Now()))

	t, err := s.timers.AfterFunc(delay, s.chunk)
	if err != nil {
		s.halt(fmt.Errorf("scheduler: %w", err))
		return
	}
	s.timer = t
}
