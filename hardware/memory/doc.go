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

// Package memory implements the flat 16-bit address space seen by the
// execution engine. The address space is composed of ordered,
// non-overlapping regions. Each region is backed by a Device, for example
// RAM, ROM or the memory-mapped display found in the display sub-package.
//
// Devices are addressed locally. An address of zero is the first byte of
// the device whatever the origin of the region it is mapped to. The Space
// type translates between the two.
//
// Writes can be recorded in a ChangeSet so that a renderer or a memory
// viewer can update incrementally.
package memory
