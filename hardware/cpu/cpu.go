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

// Package cpu defines the boundary between the emulator and an instruction
// engine. The emulator never decodes instructions itself. It asks the engine
// to execute one instruction at a time and is told how many clock ticks the
// instruction cost.
//
// The z80 sub-package provides an Engine for the Zilog Z80.
package cpu

// Engine is an instruction-level CPU.
type Engine interface {
	// Step executes exactly one instruction and returns the number of clock
	// ticks it took. An error means the instruction faulted, for example
	// with an illegal memory access. The instruction may have partially
	// committed.
	Step() (int, error)

	// Reset reinitialises the register state of the CPU. Memory is not
	// touched.
	Reset()

	// The halted flag is set when the CPU executes a halt instruction. It
	// can also be set or cleared by the user.
	Halted() bool
	SetHalted(halted bool)

	// PC is the same as Register(PC).
	PC() uint16

	Register(reg Register) uint16
	SetRegister(reg Register, value uint16)
}
