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

// Package execution advances an instruction engine and classifies why it
// stopped. The Controller owns the cycle and instruction counters. These
// survive any number of runs and are only changed by the reset functions.
//
// Breakpoints are checked after each instruction has committed, against
// the new value of the program counter. An instruction sitting on a
// breakpoint is therefore executed when execution is resumed, rather than
// triggering the same breakpoint again.
package execution

import (
	"fmt"

	"github.com/jetsetilly/zeddy/debugger/breakpoints"
	"github.com/jetsetilly/zeddy/hardware/cpu"
)

// Stats are the execution counters.
type Stats struct {
	Cycles       uint64
	Instructions uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("cycles: %d instructions: %d", s.Cycles, s.Instructions)
}

// Controller wraps a cpu.Engine.
type Controller struct {
	engine      cpu.Engine
	breakpoints *breakpoints.Registry
	stats       Stats
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController(engine cpu.Engine, bp *breakpoints.Registry) *Controller {
	return &Controller{
		engine:      engine,
		breakpoints: bp,
	}
}

// Engine returns the engine being controlled.
func (ctl *Controller) Engine() cpu.Engine {
	return ctl.engine
}

// Breakpoints returns the breakpoint registry used by the controller.
func (ctl *Controller) Breakpoints() *breakpoints.Registry {
	return ctl.breakpoints
}

// Stats returns a copy of the execution counters.
func (ctl *Controller) Stats() Stats {
	return ctl.stats
}

func (ctl *Controller) step() (int, error) {
	ticks, err := ctl.engine.Step()
	if ticks > 0 {
		ctl.stats.Cycles += uint64(ticks)
	}
	ctl.stats.Instructions++
	return ticks, err
}

// Step executes exactly one instruction. Breakpoints are not checked.
func (ctl *Controller) Step() error {
	if ctl.engine.Halted() {
		return fmt.Errorf("execution: step: %w", ErrHalted)
	}
	if _, err := ctl.step(); err != nil {
		return fmt.Errorf("execution: step: %w", err)
	}
	return nil
}

// RunTicks executes instructions until the tick cost of the executed
// instructions reaches or exceeds budget. Returns the number of ticks
// executed.
//
// If execution ends early the error is a *Stop.
func (ctl *Controller) RunTicks(budget float64) (int, error) {
	executed := 0
	progress := 0

	for float64(progress) < budget {
		if ctl.engine.Halted() {
			return executed, &Stop{Reason: Halt, PC: ctl.engine.PC()}
		}

		pc := ctl.engine.PC()
		ticks, err := ctl.step()
		if ticks > 0 {
			executed += ticks
			progress += ticks
		} else {
			// an instruction always makes progress against the budget
			progress++
		}

		if err != nil {
			return executed, &Stop{Reason: Fault, PC: pc, Err: err}
		}

		if ctl.engine.Halted() {
			return executed, &Stop{Reason: Halt, PC: ctl.engine.PC()}
		}

		if ctl.breakpoints != nil && ctl.breakpoints.Contains(ctl.engine.PC()) {
			return executed, &Stop{Reason: Breakpoint, PC: ctl.engine.PC()}
		}
	}

	return executed, nil
}

// ResetCounters zeroes the cycle and instruction counters. Breakpoints and
// the engine are not touched.
func (ctl *Controller) ResetCounters() {
	ctl.stats = Stats{}
}

// ResetCycles zeroes the cycle counter only.
func (ctl *Controller) ResetCycles() {
	ctl.stats.Cycles = 0
}

// ResetInstructions zeroes the instruction counter only.
func (ctl *Controller) ResetInstructions() {
	ctl.stats.Instructions = 0
}

// Reset reinitialises the engine's registers. Breakpoints and counters are
// preserved.
func (ctl *Controller) Reset() {
	ctl.engine.Reset()
}
