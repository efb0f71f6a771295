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

// Package logger is the diagnostic log for the emulator session. Entries are
// appended in order and are never evicted. The most recent entry is
// available in constant time for status line displays.
//
// There is no central logger. The session creates a Logger and passes it to
// the components that need it.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Level of a log entry.
type Level int

// List of valid Level values.
const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// Entry represents a single line/entry in the log.
type Entry struct {
	Timestamp time.Time
	Level     Level

	// short summary of the entry. used as the prefix when the entry is
	// printed
	Tag string

	// the full message
	Detail string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.Tag, e.Detail)
}

// Logger is an append-only list of log entries. The zero value is not
// usable, use NewLogger().
type Logger struct {
	crit     sync.Mutex
	entries  []Entry
	revision int
	echo     io.Writer

	// returns the timestamp for new entries
	now func() time.Time
}

// NewLogger is the preferred method of initialisation for the Logger type.
func NewLogger() *Logger {
	return &Logger{
		entries: make([]Entry, 0, 64),
		now:     time.Now,
	}
}

// SetClock changes the source of timestamps for new entries. Useful when the
// logger is used with a simulated host clock.
func (l *Logger) SetClock(now func() time.Time) {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.now = now
}

// Log adds an entry to the log. The detail argument can be a string, an
// error, a fmt.Stringer or any other value. Other values are formatted with
// the %v verb.
func (l *Logger) Log(level Level, tag string, detail any) {
	var s string

	switch d := detail.(type) {
	case string:
		s = d
	case error:
		s = d.Error()
	case fmt.Stringer:
		s = d.String()
	default:
		s = fmt.Sprintf("%v", d)
	}

	l.log(level, tag, s)
}

// Logf adds a formatted entry to the log.
func (l *Logger) Logf(level Level, tag string, detail string, args ...any) {
	l.log(level, tag, fmt.Sprintf(detail, args...))
}

// Info adds an entry at the Info level.
func (l *Logger) Info(tag string, detail any) {
	l.Log(Info, tag, detail)
}

// Warning adds an entry at the Warning level.
func (l *Logger) Warning(tag string, detail any) {
	l.Log(Warning, tag, detail)
}

// Error adds an entry at the Error level.
func (l *Logger) Error(tag string, detail any) {
	l.Log(Error, tag, detail)
}

func (l *Logger) log(level Level, tag string, detail string) {
	l.crit.Lock()
	defer l.crit.Unlock()

	// remove all newline characters from tag and detail string
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	e := Entry{
		Timestamp: l.now(),
		Level:     level,
		Tag:       tag,
		Detail:    detail,
	}
	l.entries = append(l.entries, e)
	l.revision++

	if l.echo != nil {
		if c, ok := l.echo.(Colorizer); ok {
			c.writeEntry(e)
		} else {
			io.WriteString(l.echo, e.String())
			io.WriteString(l.echo, "\n")
		}
	}
}

// LastLog returns the most recent entry. The boolean is false if the log is
// empty.
func (l *Logger) LastLog() (Entry, bool) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Logs returns a copy of every entry in insertion order.
func (l *Logger) Logs() []Entry {
	l.crit.Lock()
	defer l.crit.Unlock()

	c := make([]Entry, len(l.entries))
	copy(c, l.entries)
	return c
}

// Len returns the number of entries in the log.
func (l *Logger) Len() int {
	l.crit.Lock()
	defer l.crit.Unlock()
	return len(l.entries)
}

// Revision changes every time the log changes. Pollers can compare it with
// the value they last saw rather than copying the log.
func (l *Logger) Revision() int {
	l.crit.Lock()
	defer l.crit.Unlock()
	return l.revision
}

// Write contents of log to io.Writer.
func (l *Logger) Write(output io.Writer) {
	l.Tail(output, -1)
}

// Tail writes the last N entries to io.Writer. A negative number writes
// every entry.
func (l *Logger) Tail(output io.Writer, number int) {
	l.crit.Lock()
	defer l.crit.Unlock()

	// cap number to the number of entries
	if number < 0 || number > len(l.entries) {
		number = len(l.entries)
	}

	for _, e := range l.entries[len(l.entries)-number:] {
		io.WriteString(output, e.String())
		io.WriteString(output, "\n")
	}
}

// SetEcho prints new log entries to io.Writer as they are added. A nil
// writer stops the echo. Use a Colorizer for coloured output.
func (l *Logger) SetEcho(output io.Writer) {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.echo = output
}
