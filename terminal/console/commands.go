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

package console

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/zeddy/hardware/clocks"
	"github.com/jetsetilly/zeddy/session"
	"github.com/jetsetilly/zeddy/terminal/ansi"
)

// List of console commands.
const (
	KeywordHelp              = "HELP"
	KeywordQuit              = "QUIT"
	KeywordRun               = "RUN"
	KeywordStop              = "STOP"
	KeywordToggle            = "TOGGLE"
	KeywordStep              = "STEP"
	KeywordHalt              = "HALT"
	KeywordReset             = "RESET"
	KeywordBreak             = "BREAK"
	KeywordBreaks            = "BREAKS"
	KeywordMem               = "MEM"
	KeywordPoke              = "POKE"
	KeywordMap               = "MAP"
	KeywordFreq              = "FREQ"
	KeywordRefresh           = "REFRESH"
	KeywordRegs              = "REGS"
	KeywordLog               = "LOG"
	KeywordLoad              = "LOAD"
	KeywordSave              = "SAVE"
	KeywordShot              = "SHOT"
	KeywordDump              = "DUMP"
	KeywordCounters          = "COUNTERS"
	KeywordResetCycles       = "RESET-CYCLES"
	KeywordResetInstructions = "RESET-INSTRUCTIONS"
)

// Help text for each command.
var Help = map[string]string{
	KeywordHelp:              "HELP [COMMAND]\tlist commands or show help for one command",
	KeywordQuit:              "QUIT\tleave the console",
	KeywordRun:               "RUN\tstart the scheduler",
	KeywordStop:              "STOP\tstop the scheduler",
	KeywordToggle:            "TOGGLE\tstart the scheduler if it is stopped, stop it if it is running",
	KeywordStep:              "STEP\texecute one instruction",
	KeywordHalt:              "HALT\ttoggle the halted state of the CPU",
	KeywordReset:             "RESET\treset the CPU. memory and breakpoints are kept",
	KeywordBreak:             "BREAK ADDR\ttoggle a breakpoint",
	KeywordBreaks:            "BREAKS\tlist breakpoints",
	KeywordMem:               "MEM ADDR [COUNT] [HEX|DEC|ASCII]\tshow memory. changed cells are highlighted",
	KeywordPoke:              "POKE ADDR VALUE [HEX|DEC|ASCII]\twrite to memory",
	KeywordMap:               "MAP\tshow the memory map",
	KeywordFreq:              "FREQ [HZ|MACHINE]\tshow or set the clock frequency",
	KeywordRefresh:           "REFRESH [HZ]\tshow or set the scheduler refresh rate",
	KeywordRegs:              "REGS\tshow the CPU registers",
	KeywordLog:               "LOG [N]\tshow the last N log entries",
	KeywordLoad:              "LOAD FILE\tload a program from address zero",
	KeywordSave:              "SAVE FILE\tsave the contents of memory",
	KeywordShot:              "SHOT FILE\tsave the display as a PNG image",
	KeywordDump:              "DUMP FILE\tsave the session structure as a graphviz file",
	KeywordCounters:          "COUNTERS\tshow the execution counters",
	KeywordResetCycles:       "RESET-CYCLES\tzero the cycle counter",
	KeywordResetInstructions: "RESET-INSTRUCTIONS\tzero the instruction counter",
}

// number of cells in each row of the MEM command
const memRowLen = 8

// default number of cells shown by the MEM command
const memDefaultCount = 64

// default number of entries shown by the LOG command
const logDefaultCount = 10

// Execute runs a single command. The first return value is true if the
// command asks the console to quit. Must be called from the host.
func (c *Console) Execute(input string) (bool, error) {
	defer c.printLog()

	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return false, nil
	}

	command := strings.ToUpper(tokens[0])
	args := tokens[1:]

	// most commands take a fixed number of arguments
	need := func(least, most int) error {
		if len(args) < least {
			return fmt.Errorf("console: %s: not enough arguments", command)
		}
		if len(args) > most {
			return fmt.Errorf("console: %s: too many arguments", command)
		}
		return nil
	}

	switch command {
	default:
		return false, fmt.Errorf("console: %s is not a command", command)

	case KeywordHelp:
		if err := need(0, 1); err != nil {
			return false, err
		}
		c.help(args)

	case KeywordQuit:
		return true, nil

	case KeywordRun:
		return false, c.sess.Run()

	case KeywordStop:
		c.sess.Stop()

	case KeywordToggle:
		return false, c.sess.ToggleRun()

	case KeywordStep:
		if err := c.sess.Step(); err != nil {
			return false, err
		}
		c.print(styleFeedback, c.sess.Registers().String())

	case KeywordHalt:
		c.sess.ToggleHalt()

	case KeywordReset:
		c.sess.Reset()

	case KeywordBreak:
		if err := need(1, 1); err != nil {
			return false, err
		}
		addr, err := parseAddress(args[0])
		if err != nil {
			return false, err
		}
		c.sess.ToggleBreakpoint(addr)

	case KeywordBreaks:
		if c.sess.Breakpoints.Len() == 0 {
			c.print(styleFeedback, "no breakpoints")
		} else {
			c.print(styleFeedback, c.sess.Breakpoints.String())
		}

	case KeywordMem:
		if err := need(1, 3); err != nil {
			return false, err
		}
		return false, c.mem(args)

	case KeywordPoke:
		if err := need(2, 3); err != nil {
			return false, err
		}
		addr, err := parseAddress(args[0])
		if err != nil {
			return false, err
		}
		format := session.Hex
		if len(args) == 3 {
			format, err = session.ParseCellFormat(args[2])
			if err != nil {
				return false, err
			}
		}
		v, err := c.sess.EditMemory(addr, args[1], format)
		c.print(styleFeedback, "%04x: %s", addr, v)
		if err != nil {
			return false, err
		}

	case KeywordMap:
		for _, r := range c.sess.Mem.Regions() {
			c.print(styleFeedback, r.String())
		}

	case KeywordFreq:
		if err := need(0, 1); err != nil {
			return false, err
		}
		if len(args) == 0 {
			c.clock()
			break
		}
		hz, err := strconv.Atoi(args[0])
		if err != nil {
			hz, err = clocks.Lookup(args[0])
			if err != nil {
				return false, fmt.Errorf("console: %s: %w", command, err)
			}
		}
		return false, c.sess.SetFrequency(hz)

	case KeywordRefresh:
		if err := need(0, 1); err != nil {
			return false, err
		}
		if len(args) == 0 {
			c.clock()
			break
		}
		hz, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("console: %s: %w", command, err)
		}
		return false, c.sess.SetRefresh(hz)

	case KeywordRegs:
		c.print(styleFeedback, c.sess.Registers().String())

	case KeywordLog:
		if err := need(0, 1); err != nil {
			return false, err
		}
		n := logDefaultCount
		if len(args) == 1 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil {
				return false, fmt.Errorf("console: %s: %w", command, err)
			}
		}
		s := &strings.Builder{}
		c.sess.Log.Tail(s, n)
		if s.Len() > 0 {
			c.print(styleFeedback, s.String())
		}

	case KeywordLoad:
		if err := need(1, 1); err != nil {
			return false, err
		}
		return false, c.sess.LoadFile(args[0])

	case KeywordSave:
		if err := need(1, 1); err != nil {
			return false, err
		}
		return false, c.sess.SaveFile(args[0])

	case KeywordShot:
		if err := need(1, 1); err != nil {
			return false, err
		}
		return false, c.sess.ScreenshotFile(args[0])

	case KeywordDump:
		if err := need(1, 1); err != nil {
			return false, err
		}
		return false, c.sess.DumpStructureFile(args[0])

	case KeywordCounters:
		c.print(styleFeedback, c.sess.Stats().String())

	case KeywordResetCycles:
		c.sess.ResetCycles()
		c.print(styleFeedback, c.sess.Stats().String())

	case KeywordResetInstructions:
		c.sess.ResetInstructions()
		c.print(styleFeedback, c.sess.Stats().String())
	}

	return false, nil
}

func (c *Console) help(args []string) {
	if len(args) == 1 {
		txt, ok := Help[strings.ToUpper(args[0])]
		if !ok {
			c.print(styleHelp, "no help for %s", strings.ToUpper(args[0]))
			return
		}
		c.print(styleHelp, txt)
		return
	}

	keys := make([]string, 0, len(Help))
	for k := range Help {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	c.print(styleHelp, strings.Join(keys, " "))
	if c.term != nil {
		c.print(styleHelp, "keys: space run/stop, s step, h halt, r reset, : command, ? help, q quit")
	}
}

func (c *Console) clock() {
	c.print(styleFeedback, "target: %s", c.sess.Prefs.Clock())
	if f, ok := c.sess.Frequency(); ok {
		c.print(styleFeedback, "achieved: %.0f Hz", f)
	}
}

func (c *Console) mem(args []string) error {
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	count := memDefaultCount
	format := session.Hex

	for _, a := range args[1:] {
		if n, err := strconv.Atoi(a); err == nil {
			if n <= 0 {
				return fmt.Errorf("console: %s: count must be positive", KeywordMem)
			}
			count = n
			continue
		}
		format, err = session.ParseCellFormat(a)
		if err != nil {
			return err
		}
	}

	b := &strings.Builder{}
	for i := 0; i < count; i++ {
		a := int(addr) + i
		if a > 0xffff {
			break
		}
		if i%memRowLen == 0 {
			if i > 0 {
				c.print(styleFeedback, b.String())
				b.Reset()
			}
			fmt.Fprintf(b, "%04x:", a)
		}

		cell := c.sess.FormatCell(uint16(a), format)
		if cell == session.Unreadable {
			cell = strings.Repeat("-", format.MaxLen())
		}
		cell = fmt.Sprintf("%*s", format.MaxLen(), cell)

		b.WriteRune(' ')
		if c.term != nil && c.sess.Mem.Changed(uint16(a)) {
			b.WriteString(ansi.Pens["yellow"])
			b.WriteString(cell)
			b.WriteString(ansi.NormalPen)
		} else {
			b.WriteString(cell)
		}
	}
	if b.Len() > 0 {
		c.print(styleFeedback, b.String())
	}

	return nil
}

// parseAddress accepts decimal, 0x prefixed hex and $ prefixed hex.
func parseAddress(s string) (uint16, error) {
	var v uint64
	var err error
	switch {
	case strings.HasPrefix(s, "$"):
		v, err = strconv.ParseUint(s[1:], 16, 16)
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		v, err = strconv.ParseUint(s[2:], 16, 16)
	default:
		v, err = strconv.ParseUint(s, 10, 16)
	}
	if err != nil {
		return 0, fmt.Errorf("console: invalid address (%s)", s)
	}
	return uint16(v), nil
}
