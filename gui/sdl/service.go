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

package sdl

import (
	"path/filepath"
	"strings"

	"github.com/jetsetilly/zeddy/paths"
	"github.com/veandco/go-sdl2/sdl"
)

// service polls SDL events and redraws the window. Runs on the host and
// re-arms itself.
func (win *Window) service() {
	win.timer = nil

	// loop until there are no more events to retrieve. servicing only some of
	// the events means queued events take longer to resolve
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			win.quit()
			return

		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Repeat == 0 {
				if !win.key(ev.Keysym.Sym) {
					win.quit()
					return
				}
			}

		case *sdl.WindowEvent:
			win.dirty = true
		}
	}

	if err := win.redraw(); err != nil {
		win.sess.Log.Error(tag, err)
	}

	// a closed host means the program is ending
	_ = win.arm(servicePeriod)
}

// key handles a key press. Returns false if the key asks to quit.
func (win *Window) key(k sdl.Keycode) bool {
	switch k {
	case sdl.K_ESCAPE, sdl.K_q:
		return false
	case sdl.K_SPACE:
		_ = win.sess.ToggleRun()
	case sdl.K_s:
		_ = win.sess.Step()
	case sdl.K_h:
		win.sess.ToggleHalt()
	case sdl.K_r:
		win.sess.Reset()
	case sdl.K_p:
		_ = win.sess.ScreenshotFile(win.screenshotFilename())
	}
	return true
}

// screenshotFilename is a unique filename based on the name of the loaded
// program.
func (win *Window) screenshotFilename() string {
	name := filepath.Base(win.sess.Program)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "." {
		name = ""
	}
	return paths.UniqueFilename("screenshot", name, "png", win.host.Now())
}
