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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/zeddy/prefs"
	"github.com/jetsetilly/zeddy/test"
)

func TestCommandLineStackValues(t *testing.T) {
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("clock.refresh::50")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "clock.refresh::50")

	// surrounding space is removed
	prefs.PushCommandLineStack("   clock.refresh:: 50 ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "clock.refresh::50")

	// remaining values are sorted by key
	prefs.PushCommandLineStack("clock.refresh::50; clock.frequency::4000000")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "clock.frequency::4000000; clock.refresh::50")

	// malformed pairs are ignored
	prefs.PushCommandLineStack("clock.refresh_50")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	prefs.PushCommandLineStack("clock.refresh_50;clock.frequency::1")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "clock.frequency::1")

	// a value is consumed when it is taken from the stack
	prefs.PushCommandLineStack("clock.refresh::50;clock.frequency::1")
	ok, v := prefs.GetCommandLinePref("clock.refresh")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "50")
	ok, _ = prefs.GetCommandLinePref("clock.refresh")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "clock.frequency::1")
}

func TestCommandLineStack(t *testing.T) {
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)

	prefs.PushCommandLineStack("foo::bar")
	prefs.PushCommandLineStack("baz::qux")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 2)

	// only the top group is consulted
	ok, _ := prefs.GetCommandLinePref("foo")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}
