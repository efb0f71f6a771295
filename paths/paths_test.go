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

package paths_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/zeddy/paths"
	"github.com/jetsetilly/zeddy/test"
)

func TestPaths(t *testing.T) {
	// a .zeddy directory in the current directory takes precedence
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
	test.DemandSuccess(t, os.Mkdir(".zeddy", 0o700))

	test.ExpectEquality(t, paths.ResourcePath("foo/bar", "baz"), ".zeddy/foo/bar/baz")
	test.ExpectEquality(t, paths.ResourcePath("foo/bar", ""), ".zeddy/foo/bar")
	test.ExpectEquality(t, paths.ResourcePath("", "baz"), ".zeddy/baz")
	test.ExpectEquality(t, paths.ResourcePath("", ""), ".zeddy")

	pth, err := paths.CreateResourcePath("shots", "a.png")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".zeddy", "shots", "a.png"))
	_, err = os.Stat(filepath.Join(".zeddy", "shots"))
	test.ExpectSuccess(t, err)
}

func TestUniqueFilename(t *testing.T) {
	n := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	test.ExpectEquality(t, paths.UniqueFilename("shot", "demo", "png", n), "shot_demo_20240309_140507.png")
	test.ExpectEquality(t, paths.UniqueFilename("shot", " ", ".png", n), "shot_20240309_140507.png")
	test.ExpectEquality(t, paths.UniqueFilename("dump", "", "", n), "dump_20240309_140507")
}
