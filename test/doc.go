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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectFailure and ExpectSuccess functions test for failure and success
// under generic conditions. The bool and error types are supported.
//
// It is worth describing how the "Expect" functions handle the nil type
// because it is not obvious. The nil type is considered a success and
// consequently will cause ExpectFailure to fail and ExpectSuccess to
// succeed. Because of how errors usually work (nil to indicate no error) we
// need to interpret nil in this way.
//
// ExpectEquality and ExpectInequality compare like-typed values. The
// ExpectApproximate function is useful for measured quantities, such as
// frequencies, where the exact value depends on timing.
//
// The Demand functions are the same as the Expect functions except that a
// failure ends the test immediately.
//
// All functions take an optional list of tags which are prefixed to any
// failure message. Useful when testing in a loop.
package test
