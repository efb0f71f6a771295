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

// Package status prepares the status lines shown under the display in the
// SDL window. The lines are rendered to an image with a fixed-width bitmap
// font so that the package can be used (and tested) without SDL.
package status

import (
	"fmt"
	"image"
	"image/color"

	"github.com/jetsetilly/zeddy/session"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// NumLines is the number of lines returned by Lines().
const NumLines = 3

// dimensions of the font and the margin around the text
const (
	charWidth  = 7
	lineHeight = 13
	margin     = 2
)

// Colours used by Render().
var (
	Background = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	Foreground = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
)

// Height returns the height in pixels of the image for the number of lines.
func Height(lines int) int {
	return lines*lineHeight + margin*2
}

// Lines returns the status of the session: run state and clock, the
// execution counters and the most recent log entry.
func Lines(sess *session.Session) []string {
	state := "stopped"
	if sess.Running() {
		state = "running"
	}
	if sess.CPU.Halted() {
		state = fmt.Sprintf("%s (halted)", state)
	}

	clock := fmt.Sprintf("%s %s", state, sess.Prefs.Clock())
	if f, ok := sess.Frequency(); ok {
		clock = fmt.Sprintf("%s achieved %.0f Hz", clock, f)
	}

	var last string
	if e, ok := sess.Log.LastLog(); ok {
		last = e.String()
	}

	return []string{
		clock,
		fmt.Sprintf("pc %04x %s", sess.CPU.PC(), sess.Stats()),
		last,
	}
}

// Render draws the lines onto a new image of the given width. Lines that are
// too long for the width are truncated.
func Render(lines []string, width int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, Height(len(lines))))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(Foreground),
		Face: basicfont.Face7x13,
	}

	maxChars := (width - margin*2) / charWidth
	for i, s := range lines {
		if len(s) > maxChars {
			s = s[:max(0, maxChars)]
		}
		d.Dot = fixed.P(margin, margin+(i+1)*lineHeight-basicfont.Face7x13.Descent)
		d.DrawString(s)
	}

	return img
}
