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

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// RGBA converts the whole buffer to an interleaved RGBA byte stream at the
// native resolution of the display. The dst slice is reused if it has
// enough capacity. Alpha is always 255.
func (dsp *Device) RGBA(dst []byte) []byte {
	n := len(dsp.pixels) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]

	for i, p := range dsp.pixels {
		r, g, b := p.RGB()
		o := i * 4
		dst[o] = r
		dst[o+1] = g
		dst[o+2] = b
		dst[o+3] = 255
	}

	return dst
}

// Image returns the display as an image at native resolution.
func (dsp *Device) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, dsp.width, dsp.height))
	img.Pix = dsp.RGBA(img.Pix)
	return img
}

// SaveScreenshot writes the display as a PNG image. The image is scaled by
// the integer scale value using nearest-neighbour sampling so that pixel
// edges stay sharp. The display buffer itself is not altered.
func (dsp *Device) SaveScreenshot(w io.Writer, scale int) error {
	if scale < 1 {
		return fmt.Errorf("display: screenshot: invalid scale %d", scale)
	}

	src := dsp.Image()

	var img image.Image = src
	if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, dsp.width*scale, dsp.height*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		img = dst
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("display: screenshot: %w", err)
	}

	return nil
}
