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

// Package session ties the parts of the emulator together. A Session owns
// the address space, the display, the CPU, the execution controller, the
// breakpoints, the log and the scheduler.
//
// The operator surfaces (console, SDL window, startup script) work through
// the methods of the Session type. All methods must be called from the host
// the session was created with. Other goroutines should post a function to
// the host.
//
// Observers are told about changes with the Subscribe() function. Every
// notice also increases the revision number, which can be polled instead.
package session

import (
	"errors"
	"fmt"
	"os"

	"github.com/jetsetilly/zeddy/debugger/breakpoints"
	"github.com/jetsetilly/zeddy/hardware/cpu"
	"github.com/jetsetilly/zeddy/hardware/cpu/z80"
	"github.com/jetsetilly/zeddy/hardware/execution"
	"github.com/jetsetilly/zeddy/hardware/memory"
	"github.com/jetsetilly/zeddy/hardware/memory/display"
	"github.com/jetsetilly/zeddy/host"
	"github.com/jetsetilly/zeddy/logger"
	"github.com/jetsetilly/zeddy/notifications"
	"github.com/jetsetilly/zeddy/scheduler"
)

// tag used for log entries
const tag = "session"

// ErrRunning is returned by operations that are not allowed while the
// scheduler is running.
var ErrRunning = errors.New("emulation is running")

// Default memory map.
const (
	DisplayOrigin = 0x4000
	DisplayWidth  = 64
	DisplayHeight = 64
)

// Options for NewSession().
type Options struct {
	// path to the preferences file. preferences are not saved if empty
	PrefsFile string

	// dimensions of the display. the default dimensions are used if zero
	DisplayWidth  int
	DisplayHeight int

	// creates the CPU. a Z80 is created if nil
	NewEngine func(mem *memory.Space) cpu.Engine
}

// Session is the emulator session.
type Session struct {
	host host.Host

	Log         *logger.Logger
	Mem         *memory.Space
	Display     *display.Device
	CPU         cpu.Engine
	Controller  *execution.Controller
	Breakpoints *breakpoints.Registry
	Scheduler   *scheduler.Scheduler
	Prefs       *Preferences

	// the name of the most recently loaded program file
	Program string

	revision    int
	logRevision int
	observers   []func(notifications.Notice)
}

// NewSession is the preferred method of initialisation for the Session type.
//
// The address space is RAM from address zero to the display, the display and
// then RAM up to the end of the address space.
func NewSession(h host.Host, opts Options) (*Session, error) {
	if opts.DisplayWidth == 0 {
		opts.DisplayWidth = DisplayWidth
	}
	if opts.DisplayHeight == 0 {
		opts.DisplayHeight = DisplayHeight
	}

	s := &Session{
		host:        h,
		Log:         logger.NewLogger(),
		Mem:         memory.NewSpace(),
		Breakpoints: breakpoints.NewRegistry(),
	}
	s.Log.SetClock(h.Now)

	var err error

	s.Prefs, err = newPreferences(opts.PrefsFile)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s.Display, err = display.NewDevice(opts.DisplayWidth, opts.DisplayHeight)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	upper := DisplayOrigin + s.Display.Size()
	if upper > memory.AddressSpaceSize {
		return nil, fmt.Errorf("session: display too large for address space")
	}

	if err := s.Mem.AddRegion("ram", 0, memory.NewRAM(DisplayOrigin)); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if err := s.Mem.AddRegion("display", DisplayOrigin, s.Display); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if upper < memory.AddressSpaceSize {
		err := s.Mem.AddRegion("ram", uint16(upper), memory.NewRAM(memory.AddressSpaceSize-upper))
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
	}
	s.Mem.RecordChanges(true)

	if opts.NewEngine != nil {
		s.CPU = opts.NewEngine(s.Mem)
	} else {
		s.CPU = z80.NewEngine(s.Mem)
	}

	s.Controller = execution.NewController(s.CPU, s.Breakpoints)

	s.Scheduler = scheduler.NewScheduler(h, s.Controller, s.Prefs.Clock, s.Log)
	s.Scheduler.OnStop = func(_ error) {
		s.publish(notifications.NotifyRunState, notifications.NotifyCPU,
			notifications.NotifyCounters, notifications.NotifyMemory)
	}
	s.Scheduler.OnChunk = func() {
		s.publish(notifications.NotifyCounters)
	}

	return s, nil
}

// Subscribe adds a function to be called for every notice.
func (s *Session) Subscribe(f func(notifications.Notice)) {
	s.observers = append(s.observers, f)
}

// Revision returns a number that increases every time the session sends a
// notice.
func (s *Session) Revision() int {
	return s.revision
}

// publish the notices to all observers. NotifyDisplay and NotifyLog are added
// if the display or the log have changed.
func (s *Session) publish(notices ...notifications.Notice) {
	if s.Display.HasChanges() {
		notices = append(notices, notifications.NotifyDisplay)
	}
	if r := s.Log.Revision(); r != s.logRevision {
		s.logRevision = r
		notices = append(notices, notifications.NotifyLog)
	}
	if len(notices) == 0 {
		return
	}

	s.revision++
	for _, n := range notices {
		for _, f := range s.observers {
			f(n)
		}
	}
}

// Running returns true if the scheduler is running.
func (s *Session) Running() bool {
	return s.Scheduler.Running()
}

// Step executes a single instruction. Not allowed while the scheduler is
// running.
func (s *Session) Step() error {
	if s.Scheduler.Running() {
		return fmt.Errorf("session: step: %w", ErrRunning)
	}

	err := s.Controller.Step()
	if err != nil {
		if errors.Is(err, execution.ErrHalted) {
			s.Log.Warning(tag, err)
		} else {
			s.Log.Error(tag, err)
		}
	}

	s.publish(notifications.NotifyCPU, notifications.NotifyCounters, notifications.NotifyMemory)
	return err
}

// ToggleRun starts the scheduler if it is stopped and stops it if it is
// running.
func (s *Session) ToggleRun() error {
	if s.Scheduler.Running() {
		s.Scheduler.Stop()
		return nil
	}

	if err := s.Scheduler.Start(); err != nil {
		s.Log.Error(tag, err)
		s.publish()
		return err
	}

	s.publish(notifications.NotifyRunState)
	return nil
}

// Run starts the scheduler. Does nothing if it is already running.
func (s *Session) Run() error {
	if s.Scheduler.Running() {
		return nil
	}
	return s.ToggleRun()
}

// Stop the scheduler. Does nothing if it is not running.
func (s *Session) Stop() {
	s.Scheduler.Stop()
}

// ToggleHalt flips the halted state of the CPU.
func (s *Session) ToggleHalt() bool {
	halted := !s.CPU.Halted()
	s.CPU.SetHalted(halted)
	if halted {
		s.Log.Info(tag, "cpu halted")
	} else {
		s.Log.Info(tag, "cpu resumed")
	}
	s.publish(notifications.NotifyCPU)
	return halted
}

// Reset the CPU. The scheduler is stopped. Memory, breakpoints and the
// execution counters are not changed.
func (s *Session) Reset() {
	s.Scheduler.Stop()
	s.Controller.Reset()
	s.Log.Info(tag, "cpu reset")
	s.publish(notifications.NotifyCPU)
}

// Load a program into memory from address zero. Memory is cleared first.
// The scheduler is stopped and the CPU is reset.
func (s *Session) Load(data []byte) error {
	s.Scheduler.Stop()

	if err := s.Mem.Load(data, true); err != nil {
		s.Log.Error(tag, err)
		s.publish()
		return fmt.Errorf("session: %w", err)
	}
	s.Mem.ClearChanges()
	s.Controller.Reset()

	s.Log.Logf(logger.Info, tag, "loaded %d bytes", len(data))
	s.publish(notifications.NotifyMemory, notifications.NotifyCPU)
	return nil
}

// LoadFile loads the program in the named file.
func (s *Session) LoadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		s.Log.Error(tag, err)
		s.publish()
		return fmt.Errorf("session: %w", err)
	}
	if err := s.Load(data); err != nil {
		return err
	}
	s.Program = filename
	return nil
}

// Save returns the contents of memory.
func (s *Session) Save() ([]byte, error) {
	data, err := s.Mem.Save()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return data, nil
}

// SaveFile writes the contents of memory to the named file.
func (s *Session) SaveFile(filename string) error {
	data, err := s.Save()
	if err != nil {
		s.Log.Error(tag, err)
		s.publish()
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		s.Log.Error(tag, err)
		s.publish()
		return fmt.Errorf("session: %w", err)
	}
	s.Log.Logf(logger.Info, tag, "saved %d bytes to %s", len(data), filename)
	s.publish()
	return nil
}

// ToggleBreakpoint adds or removes a breakpoint. Returns true if the
// breakpoint is now set.
func (s *Session) ToggleBreakpoint(address uint16) bool {
	set := s.Breakpoints.Toggle(address)
	if set {
		s.Log.Logf(logger.Info, tag, "breakpoint set at %#04x", address)
	} else {
		s.Log.Logf(logger.Info, tag, "breakpoint cleared at %#04x", address)
	}
	s.publish(notifications.NotifyBreakpoints)
	return set
}

// ResetCycles zeroes the cycle counter.
func (s *Session) ResetCycles() {
	s.Controller.ResetCycles()
	s.publish(notifications.NotifyCounters)
}

// ResetInstructions zeroes the instruction counter.
func (s *Session) ResetInstructions() {
	s.Controller.ResetInstructions()
	s.publish(notifications.NotifyCounters)
}

// Stats returns the execution counters.
func (s *Session) Stats() execution.Stats {
	return s.Controller.Stats()
}

// SetFrequency changes the target clock frequency. Takes effect on the next
// scheduler chunk.
func (s *Session) SetFrequency(hz int) error {
	if err := s.Prefs.Frequency.Set(hz); err != nil {
		s.Log.Warning(tag, err)
		s.publish()
		return fmt.Errorf("session: frequency: %w", err)
	}
	s.Log.Logf(logger.Info, tag, "clock is now %s", s.Prefs.Clock())
	s.publish(notifications.NotifyClock)
	return nil
}

// SetRefresh changes the scheduler refresh rate. Takes effect on the next
// scheduler chunk.
func (s *Session) SetRefresh(hz int) error {
	if err := s.Prefs.Refresh.Set(hz); err != nil {
		s.Log.Warning(tag, err)
		s.publish()
		return fmt.Errorf("session: refresh: %w", err)
	}
	s.Log.Logf(logger.Info, tag, "clock is now %s", s.Prefs.Clock())
	s.publish(notifications.NotifyClock)
	return nil
}

// Frequency returns the achieved frequency of the current or most recent
// run.
func (s *Session) Frequency() (float64, bool) {
	return s.Scheduler.Frequency()
}

// Registers returns a snapshot of the CPU registers.
func (s *Session) Registers() cpu.Snapshot {
	return cpu.TakeSnapshot(s.CPU)
}

// Close stops the scheduler and saves the preferences.
func (s *Session) Close() error {
	s.Scheduler.Stop()
	if err := s.Prefs.Save(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return nil
}
