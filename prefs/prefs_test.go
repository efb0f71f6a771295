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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/zeddy/prefs"
	"github.com/jetsetilly/zeddy/test"
)

func tmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "prefs")
}

func cmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	if err != nil {
		t.Errorf("error reading prefs file: %v", err)
		return
	}

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := tmpPrefFile(t)
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w, x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))
	test.ExpectFailure(t, x.Set(1))

	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestInt(t *testing.T) {
	fn := tmpPrefFile(t)
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectSuccess(t, w.Set("99"))
	test.ExpectEquality(t, w.Value(), 99)

	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	err = v.Set("---")
	test.ExpectSuccess(t, errors.Is(err, prefs.ErrInvalid))
	test.ExpectFailure(t, v.Set(1.0))
	test.ExpectEquality(t, v.Value(), 10)
}

func TestFloatAndString(t *testing.T) {
	var f prefs.Float
	test.ExpectSuccess(t, f.Set("1.5"))
	test.ExpectEquality(t, f.String(), "1.500")
	test.ExpectSuccess(t, f.Set(2))
	test.ExpectEquality(t, f.Get().(float64), 2.0)
	test.ExpectFailure(t, f.Set("abc"))

	var s prefs.String
	test.ExpectEquality(t, s.String(), "")
	test.ExpectSuccess(t, s.Set("bar"))
	test.ExpectEquality(t, s.String(), "bar")
	test.ExpectSuccess(t, s.Reset())
	test.ExpectEquality(t, s.String(), "")
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var post int

	v.SetHookPre(prefs.Positive)
	v.SetHookPost(func(nv prefs.Value) error {
		post = nv.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(50))
	test.ExpectEquality(t, post, 50)

	// rejected values do not change the stored value or call the post hook
	err := v.Set(0)
	test.ExpectSuccess(t, errors.Is(err, prefs.ErrInvalid))
	test.ExpectFailure(t, v.Set("-10"))
	test.ExpectEquality(t, v.Value(), 50)
	test.ExpectEquality(t, post, 50)
}

func TestLoad(t *testing.T) {
	fn := tmpPrefFile(t)
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("clock.frequency", &v))
	test.ExpectSuccess(t, dsk.Add("name", &s))

	// loading a file that doesn't exist is not an error
	test.ExpectSuccess(t, dsk.Load())

	test.ExpectSuccess(t, v.Set(3500000))
	test.ExpectSuccess(t, s.Set("spectrum"))
	test.DemandSuccess(t, dsk.Save())

	test.ExpectSuccess(t, v.Reset())
	test.ExpectSuccess(t, s.Reset())
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, v.Value(), 3500000)
	test.ExpectEquality(t, s.String(), "spectrum")

	// command line values take precedence over the file
	prefs.PushCommandLineStack("clock.frequency::4000000")
	defer prefs.PopCommandLineStack()
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, v.Value(), 4000000)
	test.ExpectEquality(t, s.String(), "spectrum")
}

func TestInvalidFile(t *testing.T) {
	fn := tmpPrefFile(t)
	test.DemandSuccess(t, os.WriteFile(fn, []byte("not a prefs file\n"), 0o600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, dsk.Load())
	test.ExpectFailure(t, dsk.Save())

	_, err = prefs.NewDisk("")
	test.ExpectFailure(t, err)
}

func TestAddErrors(t *testing.T) {
	dsk, err := prefs.NewDisk(tmpPrefFile(t))
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectFailure(t, dsk.Add("test", &v))
	test.ExpectFailure(t, dsk.Add("bad::key", &v))
}

// values saved by a different disk instance using the same file are not
// clobbered
func TestSharedFile(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	cmpFile(t, fn, "foo :: bar\ntest :: true\n")
}
