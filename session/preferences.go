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

package session

import (
	"github.com/jetsetilly/zeddy/hardware/clocks"
	"github.com/jetsetilly/zeddy/prefs"
	"github.com/jetsetilly/zeddy/scheduler"
)

// Preferences defines and collates all the preference values used by the
// session.
type Preferences struct {
	dsk *prefs.Disk

	// clock frequency in Hz
	Frequency prefs.Int

	// number of scheduler chunks per second
	Refresh prefs.Int

	// the scale of the display in the SDL window and in screenshots
	Scale prefs.Int
}

func (p *Preferences) String() string {
	return p.Clock().String()
}

// newPreferences is the preferred method of initialisation for the
// Preferences type. If path is empty the preferences are not backed by a
// file.
func newPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.Frequency.SetHookPre(prefs.Positive)
	p.Refresh.SetHookPre(prefs.Positive)
	p.Scale.SetHookPre(prefs.Positive)

	if path == "" {
		return p, nil
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}
	if err := p.dsk.Add("clock.frequency", &p.Frequency); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("clock.refresh", &p.Refresh); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("display.scale", &p.Scale); err != nil {
		return nil, err
	}
	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.Frequency.Set(clocks.Default)
	_ = p.Refresh.Set(clocks.Refresh)
	_ = p.Scale.Set(4)
}

// Clock returns the current clock configuration.
func (p *Preferences) Clock() scheduler.ClockConfig {
	return scheduler.ClockConfig{
		Frequency: p.Frequency.Value(),
		Refresh:   p.Refresh.Value(),
	}
}

// Load preferences from disk. Does nothing if there is no prefs file.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load()
}

// Save preferences to disk. Does nothing if there is no prefs file.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
