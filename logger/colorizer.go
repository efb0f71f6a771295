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

package logger

import (
	"io"

	"github.com/jetsetilly/zeddy/terminal/ansi"
)

// Colorizer applies basic colouring rules to echoed log entries. Warnings
// are printed in yellow and errors in red.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface. Text written directly is passed
// through without colouring.
func (c Colorizer) Write(p []byte) (n int, err error) {
	return c.out.Write(p)
}

func (c Colorizer) writeEntry(e Entry) {
	switch e.Level {
	case Warning:
		io.WriteString(c.out, ansi.Pens["yellow"])
	case Error:
		io.WriteString(c.out, ansi.Pens["red"])
	default:
		io.WriteString(c.out, e.String())
		io.WriteString(c.out, "\n")
		return
	}
	io.WriteString(c.out, e.String())
	io.WriteString(c.out, ansi.NormalPen)
	io.WriteString(c.out, "\n")
}
