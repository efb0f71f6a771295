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

// Package display implements the memory-mapped framebuffer. Every byte of
// the device is one RGB332 pixel, stored row by row.
//
// The device records every address written to. A renderer should ask for
// the changes, convert the buffer with RGBA() or Image() at native
// resolution and then clear the changes. Scaling is the business of the
// presentation layer only.
package display

import (
	"fmt"

	"github.com/jetsetilly/zeddy/hardware/memory"
)

// Device is the memory-mapped display. It implements the memory.Device and
// memory.ChangeTracker interfaces.
type Device struct {
	width  int
	height int
	pixels []Pixel

	changes *memory.ChangeSet
}

// NewDevice is the preferred method of initialisation for the Device type.
func NewDevice(width, height int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("display: invalid dimensions %dx%d", width, height)
	}
	if width*height > memory.AddressSpaceSize {
		return nil, fmt.Errorf("display: %w: %dx%d", memory.ErrTooLarge, width, height)
	}

	return &Device{
		width:   width,
		height:  height,
		pixels:  make([]Pixel, width*height),
		changes: memory.NewChangeSet(),
	}, nil
}

// Size implements the memory.Device interface.
func (dsp *Device) Size() int {
	return len(dsp.pixels)
}

// Width of the display in pixels.
func (dsp *Device) Width() int {
	return dsp.width
}

// Height of the display in pixels.
func (dsp *Device) Height() int {
	return dsp.height
}

// Read8 implements the memory.Device interface.
func (dsp *Device) Read8(address uint16) (uint8, error) {
	if int(address) >= len(dsp.pixels) {
		return 0, fmt.Errorf("display: %w: %#04x", memory.ErrOutOfBounds, address)
	}
	return uint8(dsp.pixels[address]), nil
}

// Write8 implements the memory.Device interface. The value is stored as an
// RGB332 pixel and the address is recorded in the change set.
func (dsp *Device) Write8(address uint16, data uint8) error {
	if int(address) >= len(dsp.pixels) {
		return fmt.Errorf("display: %w: %#04x", memory.ErrOutOfBounds, address)
	}
	dsp.pixels[address] = Pixel(data)
	dsp.changes.Add(address)
	return nil
}

// Write8Force implements the memory.Device interface. The display has no
// soft validation so this is the same as Write8().
func (dsp *Device) Write8Force(address uint16, data uint8) error {
	return dsp.Write8(address, data)
}

// Pixel returns the pixel at x, y.
func (dsp *Device) Pixel(x, y int) (Pixel, error) {
	if x < 0 || y < 0 || x >= dsp.width || y >= dsp.height {
		return 0, fmt.Errorf("display: %w: pixel %d,%d", memory.ErrOutOfBounds, x, y)
	}
	return dsp.pixels[y*dsp.width+x], nil
}

// SetPixel packs the channel values and writes them to the pixel at x, y.
// The write goes through Write8() and so is recorded in the change set.
func (dsp *Device) SetPixel(x, y int, r, g, b uint8) error {
	if x < 0 || y < 0 || x >= dsp.width || y >= dsp.height {
		return fmt.Errorf("display: %w: pixel %d,%d", memory.ErrOutOfBounds, x, y)
	}
	return dsp.Write8(uint16(y*dsp.width+x), uint8(PackRGB(r, g, b)))
}

// Changes implements the memory.ChangeTracker interface. The display always
// records changes so the boolean is always true.
func (dsp *Device) Changes() ([]uint16, bool) {
	return dsp.changes.List(), true
}

// HasChanges returns true if any address has been written since the last
// clear.
func (dsp *Device) HasChanges() bool {
	return dsp.changes.Len() > 0
}

// ClearChange implements the memory.ChangeTracker interface.
func (dsp *Device) ClearChange(address uint16) {
	dsp.changes.Clear(address)
}

// ClearChanges implements the memory.ChangeTracker interface.
func (dsp *Device) ClearChanges() {
	dsp.changes.ClearAll()
}
