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

// Package clocks defines the clock frequencies of some well known Z80
// machines and the host refresh rates usually paired with them. The values
// are suitable for the clock preferences.
package clocks

import (
	"fmt"
	"sort"
	"strings"
)

// Z80 clock frequencies in Hz.
const (
	MSX      = 3579545
	Spectrum = 3500000
	CPC      = 4000000
	TRS80    = 2027520
	Default  = MSX
)

// Refresh rates in Hz.
const (
	RefreshPAL  = 50
	RefreshNTSC = 60
	Refresh     = RefreshNTSC
)

// Presets maps a machine name to its clock frequency.
var Presets = map[string]int{
	"msx":      MSX,
	"spectrum": Spectrum,
	"cpc":      CPC,
	"trs80":    TRS80,
}

// Lookup returns the clock frequency for a machine name. Case insensitive.
func Lookup(name string) (int, error) {
	f, ok := Presets[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("clocks: unknown machine (%s)", name)
	}
	return f, nil
}

// Names returns the sorted list of machine names in Presets.
func Names() []string {
	n := make([]string, 0, len(Presets))
	for k := range Presets {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}
