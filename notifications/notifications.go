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

package notifications

// Notice describes an event that changes the presentation of the session.
type Notice string

// List of defined notifications.
const (
	// the scheduler has started or stopped
	NotifyRunState Notice = "NotifyRunState"

	// the display memory has changed
	NotifyDisplay Notice = "NotifyDisplay"

	// memory outside of the display has changed. sent after edits and
	// program loading. not sent for every write made by the running program
	NotifyMemory Notice = "NotifyMemory"

	// a new entry has been added to the log
	NotifyLog Notice = "NotifyLog"

	// a breakpoint has been added or removed
	NotifyBreakpoints Notice = "NotifyBreakpoints"

	// the CPU has been reset, stepped or had its halted state changed
	NotifyCPU Notice = "NotifyCPU"

	// the clock configuration has changed
	NotifyClock Notice = "NotifyClock"

	// the execution counters have changed
	NotifyCounters Notice = "NotifyCounters"

	// a screenshot has been saved
	NotifyScreenshot Notice = "NotifyScreenshot"
)
