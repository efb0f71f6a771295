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
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/zeddy/hardware/cpu"
	"github.com/jetsetilly/zeddy/hardware/execution"
	"github.com/jetsetilly/zeddy/logger"
	"github.com/jetsetilly/zeddy/notifications"
	"github.com/jetsetilly/zeddy/scheduler"
)

// Screenshot writes the display as a PNG image. The scale is taken from the
// preferences.
func (s *Session) Screenshot(w io.Writer) error {
	if err := s.Display.SaveScreenshot(w, s.Prefs.Scale.Value()); err != nil {
		s.Log.Error(tag, err)
		s.publish()
		return fmt.Errorf("session: %w", err)
	}
	s.publish(notifications.NotifyScreenshot)
	return nil
}

// ScreenshotFile saves the display as a PNG image to the named file.
func (s *Session) ScreenshotFile(filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		s.Log.Error(tag, err)
		s.publish()
		return fmt.Errorf("session: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("session: %w", err)
		}
	}()

	if err := s.Screenshot(f); err != nil {
		return err
	}

	s.Log.Logf(logger.Info, tag, "screenshot saved to %s", filename)
	s.publish()
	return nil
}

// region is the part of memory.Region shown in a structure dump. the device
// itself is left out because the contents of memory would swamp the graph
type region struct {
	Name   string
	Origin uint16
	Memtop uint16
}

// structure is the session state shown in a structure dump
type structure struct {
	Program     string
	Registers   cpu.Snapshot
	Stats       execution.Stats
	Clock       scheduler.ClockConfig
	Run         scheduler.RunState
	Breakpoints []uint16
	Regions     []region
}

func (s *Session) structure() *structure {
	st := &structure{
		Program:     s.Program,
		Registers:   s.Registers(),
		Stats:       s.Stats(),
		Clock:       s.Prefs.Clock(),
		Run:         s.Scheduler.State(),
		Breakpoints: s.Breakpoints.List(),
	}
	for _, r := range s.Mem.Regions() {
		st.Regions = append(st.Regions, region{
			Name:   r.Name,
			Origin: r.Origin,
			Memtop: r.Memtop(),
		})
	}
	return st
}

// DumpStructure writes a graphviz description of the session state.
func (s *Session) DumpStructure(w io.Writer) {
	memviz.Map(w, s.structure())
}

// DumpStructureFile writes the graphviz description of the session state to
// the named file.
func (s *Session) DumpStructureFile(filename string) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		s.Log.Error(tag, err)
		s.publish()
		return fmt.Errorf("session: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("session: %w", err)
		}
	}()

	s.DumpStructure(f)
	s.Log.Logf(logger.Info, tag, "structure written to %s", filename)
	s.publish()
	return nil
}
