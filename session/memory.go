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
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jetsetilly/zeddy/logger"
	"github.com/jetsetilly/zeddy/notifications"
)

// CellFormat is the format used to show and edit a memory cell.
type CellFormat int

// List of valid CellFormat values.
const (
	Hex CellFormat = iota
	Dec
	ASCII
)

func (f CellFormat) String() string {
	switch f {
	case Hex:
		return "hex"
	case Dec:
		return "dec"
	case ASCII:
		return "ascii"
	}
	return "unknown"
}

// MaxLen returns the maximum number of characters of a cell in the format.
func (f CellFormat) MaxLen() int {
	switch f {
	case Dec:
		return 3
	case ASCII:
		return 1
	}
	return 2
}

// ParseCellFormat returns the CellFormat with the name.
func ParseCellFormat(s string) (CellFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hex", "":
		return Hex, nil
	case "dec", "decimal":
		return Dec, nil
	case "ascii":
		return ASCII, nil
	}
	return Hex, fmt.Errorf("session: unknown cell format (%s)", s)
}

// Unreadable is the cell text for an address that cannot be read.
const Unreadable = "N/A"

func formatCell(v uint8, format CellFormat) string {
	switch format {
	case Dec:
		return strconv.Itoa(int(v))
	case ASCII:
		if v < utf8.RuneSelf {
			return string(rune(v))
		}
		return "?"
	}
	return fmt.Sprintf("%02X", v)
}

func parseCell(text string, format CellFormat) (uint8, bool) {
	switch format {
	case Dec:
		v, err := strconv.ParseUint(text, 10, 8)
		return uint8(v), err == nil
	case ASCII:
		if text == "" {
			return 0, false
		}
		return text[0], true
	}
	v, err := strconv.ParseUint(text, 16, 8)
	return uint8(v), err == nil
}

// FormatCell returns the text for the memory cell at address.
func (s *Session) FormatCell(address uint16, format CellFormat) string {
	v, err := s.Mem.Read8(address)
	if err != nil {
		return Unreadable
	}
	return formatCell(v, format)
}

// EditMemory parses text in the format and writes the value to address. The
// returned string is the text the cell should now show.
//
// If the text cannot be parsed or the write fails the returned string is the
// formatted value of the cell as it was before the edit, the change set is
// not touched and an error is returned. A successful edit removes the address
// from the change set, so that edits made by the operator are not
// highlighted as changes made by the program.
func (s *Session) EditMemory(address uint16, text string, format CellFormat) (string, error) {
	revert := s.FormatCell(address, format)

	v, ok := parseCell(text, format)
	if !ok {
		err := fmt.Errorf("session: %q is not a valid %s value", text, format)
		s.Log.Warning(tag, err)
		s.publish()
		return revert, err
	}

	if err := s.Mem.Write8(address, v); err != nil {
		err = fmt.Errorf("session: %w", err)
		s.Log.Error(tag, err)
		s.publish()
		return revert, err
	}
	s.Mem.ClearChange(address)

	s.Log.Logf(logger.Info, tag, "written %#04x to %#04x", v, address)
	s.publish(notifications.NotifyMemory)

	return s.FormatCell(address, format), nil
}
