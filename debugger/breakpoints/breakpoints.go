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

// Package breakpoints keeps the set of program counter values that suspend
// execution. The execution controller checks the set after every
// instruction, against the address of the next instruction.
//
// The registry is not safe for concurrent use. All access should happen on
// the host loop.
package breakpoints

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is the set of breakpoint addresses. The zero value is not usable,
// use NewRegistry().
type Registry struct {
	addresses map[uint16]struct{}
}

// NewRegistry is the preferred method of initialisation for the Registry
// type.
func NewRegistry() *Registry {
	return &Registry{
		addresses: make(map[uint16]struct{}),
	}
}

// Toggle adds the address if it is absent and removes it if it is present.
// Returns true if the address is a breakpoint after the toggle.
func (bp *Registry) Toggle(address uint16) bool {
	if _, ok := bp.addresses[address]; ok {
		delete(bp.addresses, address)
		return false
	}
	bp.addresses[address] = struct{}{}
	return true
}

// Contains returns true if address is a breakpoint.
func (bp *Registry) Contains(address uint16) bool {
	_, ok := bp.addresses[address]
	return ok
}

// Len returns the number of breakpoints.
func (bp *Registry) Len() int {
	return len(bp.addresses)
}

// List returns the breakpoint addresses in ascending order.
func (bp *Registry) List() []uint16 {
	l := make([]uint16, 0, len(bp.addresses))
	for a := range bp.addresses {
		l = append(l, a)
	}
	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })
	return l
}

// Clear removes every breakpoint.
func (bp *Registry) Clear() {
	clear(bp.addresses)
}

func (bp *Registry) String() string {
	if len(bp.addresses) == 0 {
		return "no breakpoints"
	}
	s := strings.Builder{}
	for i, a := range bp.List() {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("%#04x", a))
	}
	return s.String()
}
