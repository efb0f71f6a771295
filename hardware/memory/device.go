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

// Device is a block of byte-addressable memory that can be mapped into a
// Space. Addresses are local to the device and run from zero to Size()-1.
type Device interface {
	Size() int
	Read8(address uint16) (uint8, error)

	// Write8 is the normal write path. It may apply soft validation, for
	// example a ROM rejects it.
	Write8(address uint16, data uint8) error

	// Write8Force bypasses soft validation. Used for bulk clears and when
	// loading a program.
	Write8Force(address uint16, data uint8) error
}

// ChangeTracker is implemented by devices that record which addresses have
// been written to.
type ChangeTracker interface {
	// Changes returns the sorted list of addresses written since the last
	// clear. The boolean is false if change recording is not active.
	Changes() ([]uint16, bool)
	ClearChange(address uint16)
	ClearChanges()
}
