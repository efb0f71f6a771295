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

package execution

import (
	"errors"
	"fmt"
)

// ErrHalted is returned by Step() when the CPU is halted.
var ErrHalted = errors.New("cpu is halted")

// Reason classifies why a run of instructions ended early.
type Reason int

// List of valid Reason values.
const (
	// the CPU is halted. an expected condition
	Halt Reason = iota

	// the program counter reached a breakpoint. an expected condition
	Breakpoint

	// the engine reported an error, for example an illegal memory access
	Fault
)

func (r Reason) String() string {
	switch r {
	case Halt:
		return "halt"
	case Breakpoint:
		return "breakpoint"
	case Fault:
		return "fault"
	}
	return "unknown"
}

// Stop is the error returned by RunTicks() when execution ends before the
// tick budget is used.
type Stop struct {
	Reason Reason

	// value of the program counter when execution stopped. for a Fault this
	// is the address of the faulting instruction
	PC uint16

	// the engine error for a Fault. nil otherwise
	Err error
}

func (s *Stop) Error() string {
	switch s.Reason {
	case Halt:
		return fmt.Sprintf("halted at %#04x", s.PC)
	case Breakpoint:
		return fmt.Sprintf("breakpoint at %#04x", s.PC)
	}
	return fmt.Sprintf("fault at %#04x: %v", s.PC, s.Err)
}

// Unwrap returns the engine error for a Fault.
func (s *Stop) Unwrap() error {
	return s.Err
}

// Expected returns true for stop reasons that are not failures.
func (s *Stop) Expected() bool {
	return s.Reason != Fault
}

// AsStop is a convenience function for errors.As() with a *Stop target.
func AsStop(err error) (*Stop, bool) {
	var s *Stop
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}
