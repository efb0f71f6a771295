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

// Package cputest provides a predictable cpu.Engine for testing packages
// that drive an engine.
package cputest

import (
	"errors"

	"github.com/jetsetilly/zeddy/hardware/cpu"
)

// ErrFault is returned by Engine.Step() when the program counter is at the
// fault address.
var ErrFault = errors.New("illegal operation")

// Engine executes a one-byte instruction at every address. Every instruction
// costs the same number of ticks and advances the program counter by one.
type Engine struct {
	// tick cost of every instruction. defaults to one if less than one
	Ticks int

	// executing the instruction at this address halts the engine
	HaltAt    uint16
	HaltArmed bool

	// executing the instruction at this address returns ErrFault
	FaultAt    uint16
	FaultArmed bool

	regs   [cpu.NumRegisters]uint16
	halted bool

	// number of calls to Step() and Reset()
	Steps  int
	Resets int
}

// Step implements the cpu.Engine interface.
func (e *Engine) Step() (int, error) {
	if e.halted {
		return 0, errors.New("halted")
	}

	e.Steps++

	ticks := e.Ticks
	if ticks < 1 {
		ticks = 1
	}

	pc := e.regs[cpu.PC]
	if e.FaultArmed && pc == e.FaultAt {
		return ticks, ErrFault
	}

	e.regs[cpu.PC] = pc + 1
	if e.HaltArmed && pc == e.HaltAt {
		e.halted = true
	}

	return ticks, nil
}

// Reset implements the cpu.Engine interface.
func (e *Engine) Reset() {
	e.regs = [cpu.NumRegisters]uint16{}
	e.halted = false
	e.Resets++
}

// Halted implements the cpu.Engine interface.
func (e *Engine) Halted() bool {
	return e.halted
}

// SetHalted implements the cpu.Engine interface.
func (e *Engine) SetHalted(halted bool) {
	e.halted = halted
}

// PC implements the cpu.Engine interface.
func (e *Engine) PC() uint16 {
	return e.regs[cpu.PC]
}

// Register implements the cpu.Engine interface.
func (e *Engine) Register(reg cpu.Register) uint16 {
	return e.regs[reg]
}

// SetRegister implements the cpu.Engine interface.
func (e *Engine) SetRegister(reg cpu.Register, value uint16) {
	e.regs[reg] = value
}
