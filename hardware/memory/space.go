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
	"sort"
)

// AddressSpaceSize is the number of addresses reachable with a 16-bit
// address bus.
const AddressSpaceSize = 0x10000

// Region is a Device mapped into the Space at an origin address.
type Region struct {
	Name   string
	Origin uint16
	Device Device
}

// Memtop returns the last address of the region.
func (r Region) Memtop() uint16 {
	return uint16(int(r.Origin) + r.Device.Size() - 1)
}

func (r Region) end() int {
	return int(r.Origin) + r.Device.Size()
}

func (r Region) String() string {
	return fmt.Sprintf("%04x-%04x %s", r.Origin, r.Memtop(), r.Name)
}

// Space is the complete address space. Regions are kept in ascending order
// of origin and never overlap.
type Space struct {
	regions []Region

	recording bool
	changes   *ChangeSet
}

// NewSpace is the preferred method of initialisation for the Space type. The
// new Space has no regions and is not recording changes.
func NewSpace() *Space {
	return &Space{
		changes: NewChangeSet(),
	}
}

// AddRegion maps dev into the space at origin. Fails with ErrOverlap if any
// address of the new region is already mapped.
func (s *Space) AddRegion(name string, origin uint16, dev Device) error {
	r := Region{Name: name, Origin: origin, Device: dev}

	if dev.Size() <= 0 {
		return fmt.Errorf("memory: region %s has no size", name)
	}
	if r.end() > AddressSpaceSize {
		return fmt.Errorf("memory: %w: region %s extends beyond %#x", ErrTooLarge, name, AddressSpaceSize)
	}

	for _, e := range s.regions {
		if int(r.Origin) < e.end() && int(e.Origin) < r.end() {
			return fmt.Errorf("memory: %w: %s with %s", ErrOverlap, r, e)
		}
	}

	s.regions = append(s.regions, r)
	sort.Slice(s.regions, func(i, j int) bool {
		return s.regions[i].Origin < s.regions[j].Origin
	})

	return nil
}

// Regions returns a copy of the list of regions, in address order.
func (s *Space) Regions() []Region {
	c := make([]Region, len(s.regions))
	copy(c, s.regions)
	return c
}

// Region returns the region that address is mapped to.
func (s *Space) Region(address uint16) (Region, bool) {
	i := sort.Search(len(s.regions), func(i int) bool {
		return s.regions[i].end() > int(address)
	})
	if i < len(s.regions) && s.regions[i].Origin <= address {
		return s.regions[i], true
	}
	return Region{}, false
}

// Size returns the extent of the mapped address space. That is, the address
// one past the end of the highest region.
func (s *Space) Size() int {
	if len(s.regions) == 0 {
		return 0
	}
	return s.regions[len(s.regions)-1].end()
}

// Read8 reads the byte at address.
func (s *Space) Read8(address uint16) (uint8, error) {
	r, ok := s.Region(address)
	if !ok {
		return 0, fmt.Errorf("memory: %w: %#04x", ErrUnmapped, address)
	}
	return r.Device.Read8(address - r.Origin)
}

// Write8 writes data to address using the device's normal write path. The
// address is recorded in the change set on success.
func (s *Space) Write8(address uint16, data uint8) error {
	r, ok := s.Region(address)
	if !ok {
		return fmt.Errorf("memory: %w: %#04x", ErrUnmapped, address)
	}
	if err := r.Device.Write8(address-r.Origin, data); err != nil {
		return err
	}
	if s.recording {
		s.changes.Add(address)
	}
	return nil
}

// Write8Force writes data to address, bypassing any soft validation of the
// device. The address is recorded in the change set on success.
func (s *Space) Write8Force(address uint16, data uint8) error {
	r, ok := s.Region(address)
	if !ok {
		return fmt.Errorf("memory: %w: %#04x", ErrUnmapped, address)
	}
	if err := r.Device.Write8Force(address-r.Origin, data); err != nil {
		return err
	}
	if s.recording {
		s.changes.Add(address)
	}
	return nil
}

// RecordChanges turns change recording on or off. Turning recording off
// empties the change set.
func (s *Space) RecordChanges(record bool) {
	s.recording = record
	if !record {
		s.changes.ClearAll()
	}
}

// Changes implements the ChangeTracker interface. Addresses are absolute.
func (s *Space) Changes() ([]uint16, bool) {
	if !s.recording {
		return nil, false
	}
	return s.changes.List(), true
}

// Changed returns true if address is in the change set.
func (s *Space) Changed(address uint16) bool {
	return s.recording && s.changes.Contains(address)
}

// ClearChange implements the ChangeTracker interface.
//
// Changes recorded by the devices themselves are not affected.
func (s *Space) ClearChange(address uint16) {
	s.changes.Clear(address)
}

// ClearChanges implements the ChangeTracker interface.
//
// Changes recorded by the devices themselves are not affected.
func (s *Space) ClearChanges() {
	s.changes.ClearAll()
}

// Load copies data into the space starting at address zero. If clearFirst
// is true every mapped address is zeroed first. All writes use
// Write8Force().
//
// Data that does not fit in the mapped space is an error and nothing is
// written.
func (s *Space) Load(data []byte, clearFirst bool) error {
	if len(data) > s.Size() {
		return fmt.Errorf("memory: load: %w: %d bytes for %d addresses", ErrTooLarge, len(data), s.Size())
	}

	for i := range data {
		if _, ok := s.Region(uint16(i)); !ok {
			return fmt.Errorf("memory: load: %w: %#04x", ErrUnmapped, i)
		}
	}

	if clearFirst {
		for _, r := range s.regions {
			for a := 0; a < r.Device.Size(); a++ {
				if err := s.Write8Force(r.Origin+uint16(a), 0); err != nil {
					return fmt.Errorf("memory: load: %w", err)
				}
			}
		}
	}

	for i, b := range data {
		if err := s.Write8Force(uint16(i), b); err != nil {
			return fmt.Errorf("memory: load: %w", err)
		}
	}

	return nil
}

// Save returns the contents of the space from address zero to Size(). Gaps
// between regions are saved as zero.
func (s *Space) Save() ([]byte, error) {
	data := make([]byte, s.Size())
	for _, r := range s.regions {
		for a := 0; a < r.Device.Size(); a++ {
			v, err := r.Device.Read8(uint16(a))
			if err != nil {
				return nil, fmt.Errorf("memory: save: %w", err)
			}
			data[int(r.Origin)+a] = v
		}
	}
	return data, nil
}

// Dump returns a hex dump of length bytes starting at address. Unmapped
// addresses are shown as zero.
func (s *Space) Dump(address uint16, length int) string {
	if int(address)+length > AddressSpaceSize {
		length = AddressSpaceSize - int(address)
	}
	data := make([]uint8, length)
	for i := range data {
		data[i], _ = s.Read8(address + uint16(i))
	}
	return hexDump(data, address)
}
