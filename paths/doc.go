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

// Package paths prepares paths to the files that Zeddy reads and writes
// between sessions, such as the preferences file.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate base directory. If a directory named ".zeddy" exists in the
// current directory then that is the base directory. Otherwise the base is
// the zeddy directory in the user's config directory, as returned by
// os.UserConfigDir().
//
// On a modern Linux system the following:
//
//	paths.ResourcePath("prefs")
//
// will return:
//
//	/home/user/.config/zeddy/prefs
package paths
