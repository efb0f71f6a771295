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

package cpu_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/zeddy/hardware/cpu"
	"github.com/jetsetilly/zeddy/test"
)

type fixedEngine struct {
	halted bool
}

func (e *fixedEngine) Step() (int, error) { return 1, nil }
func (e *fixedEngine) Reset() {}
func (e *fixedEngine) Halted() bool { return e.halted }
func (e *fixedEngine) SetHalted(h bool) { e.halted = h }
func (e *fixedEngine) PC() uint16 { return e.Register(cpu.PC) }
func (e *fixedEngine) Register(r cpu.Register) uint16 { return uint16(r) * 0x101 }
func (e *fixedEngine) SetRegister(cpu.Register, uint16) {}

func TestRegisterNames(t *testing.T) {
	for _, r := range cpu.Registers() {
		p, err := cpu.ParseRegister(strings.ToLower(r.String()))
		test.ExpectSuccess(t, err, r)
		test.ExpectEquality(t, p, r)
	}

	_, err := cpu.ParseRegister("Q")
	test.ExpectFailure(t, err)

	test.ExpectEquality(t, cpu.Register(-1).String(), "unknown")
	test.ExpectSuccess(t, cpu.L.Is8Bit())
	test.ExpectFailure(t, cpu.HL.Is8Bit())
}

func TestSnapshot(t *testing.T) {
	e := &fixedEngine{halted: true}
	s := cpu.TakeSnapshot(e)
	test.ExpectEquality(t, s.Get(cpu.B), 0x0202)
	test.ExpectEquality(t, s.Get(cpu.PC), e.PC())
	test.ExpectSuccess(t, s.Halted)
	test.ExpectSuccess(t, strings.HasPrefix(s.String(), "AF=0808 BC=0909"))
	test.ExpectSuccess(t, strings.HasSuffix(s.String(), "HALTED"))
}
