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

package status_test

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/zeddy/gui/status"
	"github.com/jetsetilly/zeddy/host"
	"github.com/jetsetilly/zeddy/session"
	"github.com/jetsetilly/zeddy/test"
)

func TestLines(t *testing.T) {
	sim := host.NewSimulated(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	sess, err := session.NewSession(sim, session.Options{})
	test.DemandSuccess(t, err)

	lines := status.Lines(sess)
	test.DemandEquality(t, len(lines), status.NumLines)
	test.ExpectEquality(t, lines[0], "stopped 3579545 Hz @ 60 Hz")
	test.ExpectEquality(t, lines[2], "")

	test.DemandSuccess(t, sess.SetFrequency(6000))
	test.DemandSuccess(t, sess.Run())
	sim.Advance(time.Second)

	lines = status.Lines(sess)
	test.ExpectEquality(t, strings.HasPrefix(lines[0], "running 6000 Hz @ 60 Hz achieved"), true)
	test.ExpectEquality(t, strings.HasPrefix(lines[1], "pc "), true)
	test.ExpectEquality(t, lines[2], "scheduler: running at 6000 Hz @ 60 Hz")

	sess.Stop()
	sess.ToggleHalt()
	lines = status.Lines(sess)
	test.ExpectEquality(t, strings.HasPrefix(lines[0], "stopped (halted)"), true)
}

// count returns the number of pixels that are not the background colour
func count(img *image.RGBA) int {
	var n int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != status.Background {
				n++
			}
		}
	}
	return n
}

func TestRender(t *testing.T) {
	img := status.Render([]string{"", ""}, 100)
	test.ExpectEquality(t, img.Bounds().Dx(), 100)
	test.ExpectEquality(t, img.Bounds().Dy(), status.Height(2))
	test.ExpectEquality(t, count(img), 0)

	img = status.Render([]string{"hello"}, 100)
	test.ExpectInequality(t, count(img), 0)

	// text is truncated to the width of the image
	short := count(status.Render([]string{"MMMM"}, 30))
	long := count(status.Render([]string{"MMMMMMMMMMMM"}, 30))
	test.ExpectEquality(t, short, long)

	// an image too narrow for any text
	img = status.Render([]string{"hello"}, 3)
	test.ExpectEquality(t, count(img), 0)
}
