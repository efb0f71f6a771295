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

import "sort"

// ChangeSet is the set of addresses written to since the last clear.
type ChangeSet struct {
	addresses map[uint16]struct{}
}

// NewChangeSet is the preferred method of initialisation for the ChangeSet
// type.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		addresses: make(map[uint16]struct{}),
	}
}

// Add address to the set.
func (c *ChangeSet) Add(address uint16) {
	c.addresses[address] = struct{}{}
}

// Contains returns true if address is in the set.
func (c *ChangeSet) Contains(address uint16) bool {
	_, ok := c.addresses[address]
	return ok
}

// Clear removes a single address from the set.
func (c *ChangeSet) Clear(address uint16) {
	delete(c.addresses, address)
}

// ClearAll empties the set.
func (c *ChangeSet) ClearAll() {
	clear(c.addresses)
}

// Len returns the number of addresses in the set.
func (c *ChangeSet) Len() int {
	return len(c.addresses)
}

// List returns the addresses in the set in ascending order.
func (c *ChangeSet) List() []uint16 {
	l := make([]uint16, 0, len(c.addresses))
	for a := range c.addresses {
		l = append(l, a)
	}
	sort.Slice(l, func(i, j int) bool { return l[i] < l[j] })
	return l
}
