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

// Package script runs Lua scripts against a session. Scripts are usually run
// once at startup to prepare memory, set breakpoints and start the emulation.
//
// The following functions are available to scripts:
//
//	step([n])                       execute n instructions (default 1)
//	run()                           start the scheduler
//	stop()                          stop the scheduler
//	halt()                          toggle the halted state of the CPU, returns the new state
//	reset()                         reset the CPU
//	peek(addr)                      returns the value at addr
//	poke(addr, value[, format])     write value to addr. string values are parsed in the
//	                                format (hex, dec or ascii, default hex)
//	toggle_break(addr)              toggle a breakpoint, returns the new state
//	frequency([hz])                 set the clock frequency, returns target and achieved frequency
//	refresh([hz])                   set the refresh rate, returns the refresh rate
//	log(msg)                        add an entry to the log
//	pc()                            returns the program counter
//
// Errors raised by a function stop the script.
package script

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jetsetilly/zeddy/logger"
	"github.com/jetsetilly/zeddy/session"
	lua "github.com/yuin/gopher-lua"
)

// tag used for log entries
const tag = "script"

// Script is a Lua interpreter bound to a session. Not safe for concurrent
// use. All functions must be called from the session's host.
type Script struct {
	sess *session.Session
	L    *lua.LState
}

// NewScript is the preferred method of initialisation for the Script type.
// Close() should be called when the Script is no longer required.
func NewScript(sess *session.Session) *Script {
	scr := &Script{
		sess: sess,
		L:    lua.NewState(),
	}

	funcs := map[string]lua.LGFunction{
		"step":         scr.step,
		"run":          scr.run,
		"stop":         scr.stop,
		"halt":         scr.halt,
		"reset":        scr.reset,
		"peek":         scr.peek,
		"poke":         scr.poke,
		"toggle_break": scr.toggleBreak,
		"frequency":    scr.frequency,
		"refresh":      scr.refresh,
		"log":          scr.log,
		"pc":           scr.pc,
	}
	for name, f := range funcs {
		scr.L.SetGlobal(name, scr.L.NewFunction(f))
	}

	return scr
}

// Close the Lua interpreter.
func (scr *Script) Close() {
	scr.L.Close()
}

// RunString runs the Lua source. The context can be used to interrupt a
// script that does not terminate.
func (scr *Script) RunString(ctx context.Context, source string) error {
	scr.L.SetContext(ctx)
	defer scr.L.RemoveContext()

	if err := scr.L.DoString(source); err != nil {
		scr.sess.Log.Error(tag, err)
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// RunFile runs the Lua script in the named file.
func (scr *Script) RunFile(ctx context.Context, filename string) error {
	scr.L.SetContext(ctx)
	defer scr.L.RemoveContext()

	if err := scr.L.DoFile(filename); err != nil {
		scr.sess.Log.Error(tag, err)
		return fmt.Errorf("script: %w", err)
	}
	scr.sess.Log.Logf(logger.Info, tag, "finished %s", filename)
	return nil
}

// checkAddress returns the address argument at position n.
func checkAddress(L *lua.LState, n int) uint16 {
	a := L.CheckInt(n)
	if a < 0 || a > 0xffff {
		L.ArgError(n, fmt.Sprintf("address out of range (%#x)", a))
	}
	return uint16(a)
}

func (scr *Script) step(L *lua.LState) int {
	n := L.OptInt(1, 1)
	for range n {
		if err := scr.sess.Step(); err != nil {
			L.RaiseError("%v", err)
		}
	}
	return 0
}

func (scr *Script) run(L *lua.LState) int {
	if err := scr.sess.Run(); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) stop(L *lua.LState) int {
	scr.sess.Stop()
	return 0
}

func (scr *Script) halt(L *lua.LState) int {
	L.Push(lua.LBool(scr.sess.ToggleHalt()))
	return 1
}

func (scr *Script) reset(L *lua.LState) int {
	scr.sess.Reset()
	return 0
}

func (scr *Script) peek(L *lua.LState) int {
	addr := checkAddress(L, 1)
	v, err := scr.sess.Mem.Read8(addr)
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (scr *Script) poke(L *lua.LState) int {
	addr := checkAddress(L, 1)

	var text string
	format := session.Hex

	switch v := L.CheckAny(2).(type) {
	case lua.LNumber:
		if v < 0 || v > 0xff {
			L.ArgError(2, fmt.Sprintf("value out of range (%v)", v))
		}
		text = strconv.Itoa(int(v))
		format = session.Dec
	case lua.LString:
		text = string(v)
		var err error
		format, err = session.ParseCellFormat(L.OptString(3, "hex"))
		if err != nil {
			L.ArgError(3, err.Error())
		}
	default:
		L.ArgError(2, "number or string expected")
	}

	if _, err := scr.sess.EditMemory(addr, text, format); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) toggleBreak(L *lua.LState) int {
	addr := checkAddress(L, 1)
	L.Push(lua.LBool(scr.sess.ToggleBreakpoint(addr)))
	return 1
}

func (scr *Script) frequency(L *lua.LState) int {
	if L.GetTop() >= 1 {
		if err := scr.sess.SetFrequency(L.CheckInt(1)); err != nil {
			L.RaiseError("%v", err)
		}
	}
	L.Push(lua.LNumber(scr.sess.Prefs.Frequency.Value()))
	if f, ok := scr.sess.Frequency(); ok {
		L.Push(lua.LNumber(f))
	} else {
		L.Push(lua.LNil)
	}
	return 2
}

func (scr *Script) refresh(L *lua.LState) int {
	if L.GetTop() >= 1 {
		if err := scr.sess.SetRefresh(L.CheckInt(1)); err != nil {
			L.RaiseError("%v", err)
		}
	}
	L.Push(lua.LNumber(scr.sess.Prefs.Refresh.Value()))
	return 1
}

func (scr *Script) log(L *lua.LState) int {
	scr.sess.Log.Info(tag, L.CheckString(1))
	return 0
}

func (scr *Script) pc(L *lua.LState) int {
	L.Push(lua.LNumber(scr.sess.CPU.PC()))
	return 1
}
