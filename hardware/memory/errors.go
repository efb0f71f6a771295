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

import "errors"

// Sentinel errors returned by the memory package and by device
// implementations. Test for them with errors.Is().
var (
	// the address is outside the range of the device
	ErrOutOfBounds = errors.New("address out of bounds")

	// no region is mapped at the address
	ErrUnmapped = errors.New("address not mapped")

	// a soft write to a read-only device
	ErrReadOnly = errors.New("read only memory")

	// a new region overlaps an existing region
	ErrOverlap = errors.New("overlapping region")

	// data is too large for the address space
	ErrTooLarge = errors.New("data too large")
)
