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

package logger_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/zeddy/logger"
	"github.com/jetsetilly/zeddy/terminal/ansi"
	"github.com/jetsetilly/zeddy/test"
)

// test the use of the Tail() function
func TestLogger(t *testing.T) {
	log := logger.NewLogger()
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Info("test", "this is a test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\n")

	// clear the buffer before continuing, makes comparisons easier to manage
	w.Reset()

	log.Warning("test2", "this is another test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for exactly the correct number of entries is okay
	w.Reset()
	log.Tail(w, 2)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "test2: this is another test\n")

	// and no entries
	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestLastLog(t *testing.T) {
	log := logger.NewLogger()

	_, ok := log.LastLog()
	test.ExpectFailure(t, ok)

	log.Info("run", "started")
	log.Error("engine", "illegal operation")

	e, ok := log.LastLog()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, e.Level, logger.Error)
	test.ExpectEquality(t, e.Tag, "engine")
	test.ExpectEquality(t, e.Detail, "illegal operation")
}

func TestInsertionOrder(t *testing.T) {
	log := logger.NewLogger()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	log.SetClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	})

	log.Info("a", "first")
	log.Warning("b", "second")
	log.Error("c", "third")

	logs := log.Logs()
	test.DemandEquality(t, len(logs), 3)
	test.ExpectEquality(t, logs[0].Tag, "a")
	test.ExpectEquality(t, logs[1].Tag, "b")
	test.ExpectEquality(t, logs[2].Tag, "c")
	test.ExpectEquality(t, logs[0].Level, logger.Info)
	test.ExpectEquality(t, logs[1].Level, logger.Warning)
	test.ExpectEquality(t, logs[2].Level, logger.Error)
	test.ExpectSuccess(t, logs[0].Timestamp.Before(logs[1].Timestamp))
	test.ExpectSuccess(t, logs[1].Timestamp.Before(logs[2].Timestamp))

	// the copy returned by Logs() is independent of the log
	logs[0].Tag = "changed"
	test.ExpectEquality(t, log.Logs()[0].Tag, "a")
}

// identical entries are not merged
func TestNoMerging(t *testing.T) {
	log := logger.NewLogger()
	for range 1000 {
		log.Info("tag", "detail")
	}
	test.ExpectEquality(t, log.Len(), 1000)
}

func TestRevision(t *testing.T) {
	log := logger.NewLogger()
	r := log.Revision()
	log.Info("tag", "detail")
	test.ExpectInequality(t, log.Revision(), r)

	// revision does not change when the log is only read
	r = log.Revision()
	_ = log.Logs()
	test.ExpectEquality(t, log.Revision(), r)
}

// the Log() function explicitly handles error types by using the Error() result
func TestErrorLogging(t *testing.T) {
	log := logger.NewLogger()
	w := &strings.Builder{}

	err := errors.New("test error")

	log.Log(logger.Error, "tag", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: test error\n")

	w.Reset()

	// test "wrapping" of errors using the %v verb
	log.Logf(logger.Error, "tag", "wrapped: %v", err)
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "tag: wrapped: test error\n")
}

// the Log() function explicitly handles Stringer types
type stringerTest struct{}

func (_ stringerTest) String() string {
	return "stringer test"
}

func TestStringerLogging(t *testing.T) {
	log := logger.NewLogger()
	w := &strings.Builder{}

	log.Log(logger.Info, "tag", stringerTest{})
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: stringer test\n")
}

// for explicitly unsupported types, the Log() function will log the detail
// argument using the %v verb from the fmt package
func TestIntLogging(t *testing.T) {
	log := logger.NewLogger()
	w := &strings.Builder{}

	log.Log(logger.Info, "tag", 100)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: 100\n")
}

func TestNewlines(t *testing.T) {
	log := logger.NewLogger()
	log.Info("ta\ng", "multi\nline")
	e, _ := log.LastLog()
	test.ExpectEquality(t, e.String(), "tag: multiline")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger()
	w := &strings.Builder{}

	log.SetEcho(w)
	log.Info("tag", "plain")
	test.ExpectEquality(t, w.String(), "tag: plain\n")

	w.Reset()
	log.SetEcho(logger.NewColorizer(w))
	log.Info("tag", "plain")
	log.Error("tag", "bad")
	test.ExpectEquality(t, w.String(), "tag: plain\n"+ansi.Pens["red"]+"tag: bad"+ansi.NormalPen+"\n")

	w.Reset()
	log.SetEcho(nil)
	log.Info("tag", "silent")
	test.ExpectEquality(t, w.String(), "")
}
