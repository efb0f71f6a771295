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

package cpu

import (
	"fmt"
	"strings"
)

// Register identifies a CPU register. Engines dispatch on the value to
// direct field access.
type Register int

// List of valid Register values. The 8-bit registers come first.
const (
	A Register = iota
	F
	B
	C
	D
	E
	H
	L
	AF
	BC
	DE
	HL
	IX
	IY
	SP
	PC
	numRegisters
)

// NumRegisters is the number of Register values.
const NumRegisters = int(numRegisters)

var registerNames = [numRegisters]string{
	"A", "F", "B", "C", "D", "E", "H", "L",
	"AF", "BC", "DE", "HL", "IX", "IY", "SP", "PC",
}

func (r Register) String() string {
	if r < 0 || r >= numRegisters {
		return "unknown"
	}
	return registerNames[r]
}

// Is8Bit returns true if the register is an 8-bit register.
func (r Register) Is8Bit() bool {
	return r >= A && r <= L
}

// Registers returns every register in display order.
func Registers() []Register {
	r := make([]Register, numRegisters)
	for i := range r {
		r[i] = Register(i)
	}
	return r
}

// ParseRegister returns the Register with the name. Case insensitive.
func ParseRegister(name string) (Register, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range registerNames {
		if n == name {
			return Register(i), nil
		}
	}
	return 0, fmt.Errorf("cpu: unknown register (%s)", name)
}

// Snapshot is a copy of the register state of an engine.
type Snapshot struct {
	Values [numRegisters]uint16
	Halted bool
}

// TakeSnapshot copies the register state of the engine.
func TakeSnapshot(e Engine) Snapshot {
	var s Snapshot
	for i := range s.Values {
		s.Values[i] = e.Register(Register(i))
	}
	s.Halted = e.Halted()
	return s
}

// Get returns the value of a register in the snapshot.
func (s Snapshot) Get(r Register) uint16 {
	return s.Values[r]
}

func (s Snapshot) String() string {
	b := strings.Builder{}
	for i, v := range s.Values {
		r := Register(i)
		if r.Is8Bit() {
			continue
		}
		b.WriteString(fmt.Sprintf("%s=%04x ", r, v))
	}
	if s.Halted {
		b.WriteString("HALTED")
	}
	return strings.TrimSpace(b.String())
}
