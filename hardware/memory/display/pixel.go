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

package display

import "fmt"

// Pixel is a packed RGB332 colour. Three bits of red in the top of the byte,
// then three bits of green and two bits of blue.
type Pixel uint8

// PackRGB creates a Pixel from the three channel values. Red and green are
// masked to three bits and blue to two bits.
func PackRGB(r, g, b uint8) Pixel {
	return Pixel(((r & 0x07) << 5) | ((g & 0x07) << 2) | (b & 0x03))
}

// Channels returns the unscaled red, green and blue values of the pixel.
func (p Pixel) Channels() (r, g, b uint8) {
	return uint8(p>>5) & 0x07, uint8(p>>2) & 0x07, uint8(p) & 0x03
}

// RGB returns the 8-bit red, green and blue values of the pixel. The red
// and green bits occupy the top bits of their bytes. Blue sits one bit lower
// so that full blue is 0x60.
func (p Pixel) RGB() (r, g, b uint8) {
	return uint8(p) & 0xe0, (uint8(p) & 0x1c) << 3, (uint8(p) & 0x03) << 5
}

func (p Pixel) String() string {
	r, g, b := p.Channels()
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}
