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

// Package z80 implements the cpu.Engine interface for the Zilog Z80. The
// instruction decoding is done by github.com/koron-go/z80. This package
// connects that CPU to the emulator's address space and translates between
// its register layout and the cpu.Register values.
package z80

import (
	"fmt"

	"github.com/jetsetilly/zeddy/hardware/cpu"
	"github.com/koron-go/z80"
)

// TicksPerInstruction is the tick cost charged for every instruction.
//
// TODO: per-opcode T-state costs instead of the flat four-tick estimate.
const TicksPerInstruction = 4

// Bus is the memory seen by the Z80. The memory.Space type satisfies it.
type Bus interface {
	Read8(address uint16) (uint8, error)
	Write8(address uint16, data uint8) error
}

// bus adapts a Bus to the z80.Memory interface. The z80 package has no way
// of reporting a failed access so the first error of an instruction is kept
// and collected by Step().
type bus struct {
	mem   Bus
	fault error
}

func (b *bus) Get(addr uint16) uint8 {
	v, err := b.mem.Read8(addr)
	if err != nil && b.fault == nil {
		b.fault = err
	}
	return v
}

func (b *bus) Set(addr uint16, value uint8) {
	if err := b.mem.Write8(addr, value); err != nil && b.fault == nil {
		b.fault = err
	}
}

// Engine is a Z80 implementing the cpu.Engine interface.
type Engine struct {
	cpu z80.CPU
	bus *bus

	// the address the program counter is set to on reset
	resetAddress uint16
}

// NewEngine is the preferred method of initialisation for the Engine type.
func NewEngine(mem Bus) *Engine {
	e := &Engine{
		bus: &bus{mem: mem},
	}
	e.cpu = z80.CPU{
		Memory: e.bus,
	}
	e.Reset()
	return e
}

// SetResetAddress changes the value of the program counter after a reset.
// The default is zero. Does not reset the CPU.
func (e *Engine) SetResetAddress(address uint16) {
	e.resetAddress = address
}

// Step implements the cpu.Engine interface.
func (e *Engine) Step() (int, error) {
	if e.cpu.HALT {
		return 0, fmt.Errorf("z80: step: cpu is halted")
	}

	pc := e.cpu.PC
	e.bus.fault = nil
	e.cpu.Step()

	if e.bus.fault != nil {
		err := e.bus.fault
		e.bus.fault = nil
		return TicksPerInstruction, fmt.Errorf("z80: instruction at %#04x: %w", pc, err)
	}

	return TicksPerInstruction, nil
}

// Reset implements the cpu.Engine interface.
func (e *Engine) Reset() {
	e.cpu.States = z80.States{
		SPR: z80.SPR{
			PC: e.resetAddress,
			SP: 0xffff,
		},
	}
	e.cpu.HALT = false
	e.bus.fault = nil
}

// Halted implements the cpu.Engine interface.
func (e *Engine) Halted() bool {
	return e.cpu.HALT
}

// SetHalted implements the cpu.Engine interface.
func (e *Engine) SetHalted(halted bool) {
	e.cpu.HALT = halted
}

// PC implements the cpu.Engine interface.
func (e *Engine) PC() uint16 {
	return e.cpu.PC
}

func pair(r z80.Register) uint16 {
	return uint16(r.Hi)<<8 | uint16(r.Lo)
}

func setPair(r *z80.Register, v uint16) {
	r.Hi = uint8(v >> 8)
	r.Lo = uint8(v)
}

// Register implements the cpu.Engine interface.
func (e *Engine) Register(reg cpu.Register) uint16 {
	s := &e.cpu.States
	switch reg {
	case cpu.A:
		return uint16(s.AF.Hi)
	case cpu.F:
		return uint16(s.AF.Lo)
	case cpu.B:
		return uint16(s.BC.Hi)
	case cpu.C:
		return uint16(s.BC.Lo)
	case cpu.D:
		return uint16(s.DE.Hi)
	case cpu.E:
		return uint16(s.DE.Lo)
	case cpu.H:
		return uint16(s.HL.Hi)
	case cpu.L:
		return uint16(s.HL.Lo)
	case cpu.AF:
		return pair(s.AF)
	case cpu.BC:
		return pair(s.BC)
	case cpu.DE:
		return pair(s.DE)
	case cpu.HL:
		return pair(s.HL)
	case cpu.IX:
		return s.IX
	case cpu.IY:
		return s.IY
	case cpu.SP:
		return s.SP
	case cpu.PC:
		return s.PC
	}
	return 0
}

// SetRegister implements the cpu.Engine interface. Values for 8-bit
// registers are truncated.
func (e *Engine) SetRegister(reg cpu.Register, value uint16) {
	s := &e.cpu.States
	switch reg {
	case cpu.A:
		s.AF.Hi = uint8(value)
	case cpu.F:
		s.AF.Lo = uint8(value)
	case cpu.B:
		s.BC.Hi = uint8(value)
	case cpu.C:
		s.BC.Lo = uint8(value)
	case cpu.D:
		s.DE.Hi = uint8(value)
	case cpu.E:
		s.DE.Lo = uint8(value)
	case cpu.H:
		s.HL.Hi = uint8(value)
	case cpu.L:
		s.HL.Lo = uint8(value)
	case cpu.AF:
		setPair(&s.AF, value)
	case cpu.BC:
		setPair(&s.BC, value)
	case cpu.DE:
		setPair(&s.DE, value)
	case cpu.HL:
		setPair(&s.HL, value)
	case cpu.IX:
		s.IX = value
	case cpu.IY:
		s.IY = value
	case cpu.SP:
		s.SP = value
	case cpu.PC:
		s.PC = value
	}
}
