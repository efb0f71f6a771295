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

package memory

import (
	"fmt"
	"strings"
)

// RAM is a read/write Device.
type RAM struct {
	memory []uint8
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM(size int) *RAM {
	return &RAM{
		memory: make([]uint8, size),
	}
}

// Size implements the Device interface.
func (ram *RAM) Size() int {
	return len(ram.memory)
}

// Read8 implements the Device interface.
func (ram *RAM) Read8(address uint16) (uint8, error) {
	if int(address) >= len(ram.memory) {
		return 0, fmt.Errorf("ram: %w: %#04x", ErrOutOfBounds, address)
	}
	return ram.memory[address], nil
}

// Write8 implements the Device interface.
func (ram *RAM) Write8(address uint16, data uint8) error {
	if int(address) >= len(ram.memory) {
		return fmt.Errorf("ram: %w: %#04x", ErrOutOfBounds, address)
	}
	ram.memory[address] = data
	return nil
}

// Write8Force implements the Device interface. There is no soft validation
// for RAM so this is the same as Write8().
func (ram *RAM) Write8Force(address uint16, data uint8) error {
	return ram.Write8(address, data)
}

func (ram *RAM) String() string {
	return hexDump(ram.memory, 0)
}

// ROM is a Device that can only be written with Write8Force().
type ROM struct {
	RAM
}

// NewROM is the preferred method of initialisation for the ROM type.
func NewROM(size int) *ROM {
	return &ROM{
		RAM: RAM{memory: make([]uint8, size)},
	}
}

// Write8 implements the Device interface. Always fails.
func (rom *ROM) Write8(address uint16, data uint8) error {
	if int(address) >= len(rom.memory) {
		return fmt.Errorf("rom: %w: %#04x", ErrOutOfBounds, address)
	}
	return fmt.Errorf("rom: %w: %#04x", ErrReadOnly, address)
}

// Write8Force implements the Device interface.
func (rom *ROM) Write8Force(address uint16, data uint8) error {
	return rom.RAM.Write8(address, data)
}

// hexDump formats data in rows of 16 bytes, with addresses starting at
// origin.
func hexDump(data []uint8, origin uint16) string {
	s := strings.Builder{}
	s.WriteString("       -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	s.WriteString("     ---- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --\n")
	for i := 0; i < len(data); i += 16 {
		s.WriteString(fmt.Sprintf("%04x |", int(origin)+i))
		for j := i; j < i+16 && j < len(data); j++ {
			s.WriteString(fmt.Sprintf(" %02x", data[j]))
		}
		s.WriteString("\n")
	}
	return strings.TrimSuffix(s.String(), "\n")
}
