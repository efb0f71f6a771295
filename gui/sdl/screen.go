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
	"github.com/jetsetilly/zeddy/gui/status"
	"github.com/veandco/go-sdl2/sdl"
)

const scrDepth int32 = 4

type screen struct {
	win *Window

	// native dimensions of the display
	width  int32
	height int32

	// the scale the window was last sized for
	scale int32

	// pixels are converted from the display device once per update and
	// copied to the streaming texture
	pixels  []byte
	texture *sdl.Texture

	// status bar is rendered to an image and copied to its own texture
	statusTexture *sdl.Texture
	statusWidth   int32
	statusHeight  int32
}

func newScreen(win *Window) (*screen, error) {
	scr := &screen{
		win:    win,
		width:  int32(win.sess.Display.Width()),
		height: int32(win.sess.Display.Height()),
	}

	var err error

	scr.texture, err = win.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), scr.width, scr.height)
	if err != nil {
		return nil, err
	}

	if err := scr.setScaling(); err != nil {
		scr.destroy()
		return nil, err
	}

	return scr, nil
}

func (scr *screen) destroy() {
	if scr.texture != nil {
		scr.texture.Destroy()
		scr.texture = nil
	}
	if scr.statusTexture != nil {
		scr.statusTexture.Destroy()
		scr.statusTexture = nil
	}
}

// setScaling resizes the window and the status bar for the scale preference.
// Does nothing if the scale has not changed.
func (scr *screen) setScaling() error {
	scale := int32(scr.win.sess.Prefs.Scale.Value())
	if scale == scr.scale {
		return nil
	}
	scr.scale = scale

	scr.statusWidth = scr.width * scale
	scr.statusHeight = int32(status.Height(status.NumLines))

	if scr.statusTexture != nil {
		scr.statusTexture.Destroy()
	}

	var err error
	scr.statusTexture, err = scr.win.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), scr.statusWidth, scr.statusHeight)
	if err != nil {
		return err
	}

	scr.win.window.SetSize(scr.statusWidth, scr.height*scale+scr.statusHeight)

	return nil
}

// upload copies rows of pixels to a locked streaming texture. the pitch of
// the texture may be larger than the width of a row.
func upload(texture *sdl.Texture, pixels []byte, width int32) error {
	dst, pitch, err := texture.Lock(nil)
	if err != nil {
		return err
	}
	defer texture.Unlock()

	rowLen := int(width * scrDepth)
	for src, d := 0, 0; src+rowLen <= len(pixels) && d+rowLen <= len(dst); src, d = src+rowLen, d+pitch {
		copy(dst[d:d+rowLen], pixels[src:src+rowLen])
	}

	return nil
}

func (scr *screen) update() error {
	if err := scr.setScaling(); err != nil {
		return err
	}

	// display changes have been seen once they have been converted
	scr.pixels = scr.win.sess.Display.RGBA(scr.pixels)
	scr.win.sess.Display.ClearChanges()

	if err := upload(scr.texture, scr.pixels, scr.width); err != nil {
		return err
	}

	img := status.Render(status.Lines(scr.win.sess), int(scr.statusWidth))
	if err := upload(scr.statusTexture, img.Pix, scr.statusWidth); err != nil {
		return err
	}

	if err := scr.win.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	if err := scr.win.renderer.Clear(); err != nil {
		return err
	}

	dst := &sdl.Rect{X: 0, Y: 0, W: scr.width * scr.scale, H: scr.height * scr.scale}
	if err := scr.win.renderer.Copy(scr.texture, nil, dst); err != nil {
		return err
	}

	dst = &sdl.Rect{X: 0, Y: scr.height * scr.scale, W: scr.statusWidth, H: scr.statusHeight}
	return scr.win.renderer.Copy(scr.statusTexture, nil, dst)
}
