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

// Package sdl presents the display of a session in an SDL window, with a
// status bar underneath. The display is uploaded to a streaming texture at
// native resolution and scaled by the renderer when it is copied to the
// window.
//
// SDL functions must be called from the main thread. The window does all of
// its work in functions run by the host, so the host must be run on the main
// thread. See runtime.LockOSThread().
package sdl

import (
	"fmt"
	"time"

	"github.com/jetsetilly/zeddy/host"
	"github.com/jetsetilly/zeddy/notifications"
	"github.com/jetsetilly/zeddy/session"
	"github.com/jetsetilly/zeddy/version"
	"github.com/veandco/go-sdl2/sdl"
)

// tag used for log entries
const tag = "sdl"

// how often events are polled and the window redrawn
const servicePeriod = time.Second / 60

// Window is the SDL presentation of a session.
type Window struct {
	host host.Host
	sess *session.Session

	window   *sdl.Window
	renderer *sdl.Renderer

	// much of the sdl magic happens in the screen object
	scr *screen

	// called when the window is closed or the quit key is pressed
	quit func()

	timer host.Timer

	// whether the window needs to be redrawn
	dirty bool
}

// NewWindow is the preferred method of initialisation for the Window type.
// The quit function is called when the window is closed. Must be called from
// the main thread.
func NewWindow(h host.Host, sess *session.Session, quit func()) (*Window, error) {
	win := &Window{
		host:  h,
		sess:  sess,
		quit:  quit,
		dirty: true,
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	var err error

	// the correct size for the window is set by the screen
	win.window, err = sdl.CreateWindow(version.ApplicationName,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED), 0, 0,
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	win.renderer, err = sdl.CreateRenderer(win.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		win.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	win.scr, err = newScreen(win)
	if err != nil {
		win.renderer.Destroy()
		win.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl: %w", err)
	}

	sess.Subscribe(func(_ notifications.Notice) {
		win.dirty = true
	})

	return win, nil
}

// Start servicing the window. Events are polled and the window is redrawn
// until Destroy() is called or the host is closed.
func (win *Window) Start() error {
	return win.arm(0)
}

func (win *Window) arm(d time.Duration) error {
	t, err := win.host.AfterFunc(d, win.service)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	win.timer = t
	return nil
}

// Destroy the window and release SDL.
func (win *Window) Destroy() {
	if win.timer != nil {
		win.timer.Stop()
		win.timer = nil
	}
	win.scr.destroy()
	win.renderer.Destroy()
	win.window.Destroy()
	sdl.Quit()
}

// redraw the window if anything has changed.
func (win *Window) redraw() error {
	// the status bar shows the achieved frequency which changes continuously
	// while running
	if !win.dirty && !win.sess.Running() {
		return nil
	}
	win.dirty = false

	if err := win.scr.update(); err != nil {
		return err
	}
	win.renderer.Present()

	return nil
}
