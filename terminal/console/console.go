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

// Package console is the operator console for Zeddy. When the input and the
// output are a real terminal the console works in cbreak mode: single keys
// control the emulation and the colon key opens a command line. Otherwise
// every line of input is treated as a command.
//
// The console reads input on its own goroutine. Every action is posted to
// the host and the console waits for it to complete before reading more
// input.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/zeddy/host"
	"github.com/jetsetilly/zeddy/session"
	"github.com/jetsetilly/zeddy/terminal/ansi"
	"github.com/jetsetilly/zeddy/terminal/easyterm"
	"golang.org/x/term"
)

// Prompt is printed before the command line in cbreak mode.
const Prompt = ": "

// style of printed output
type style int

const (
	styleFeedback style = iota
	styleError
	styleHelp
	styleLog
)

// Console is the operator console.
type Console struct {
	host host.Host
	sess *session.Session

	reader *bufio.Reader
	output io.Writer

	// term is nil if the input or the output is not a real terminal
	term *easyterm.Terminal

	// print new log entries after every action. should be false if the log
	// is echoed elsewhere
	ShowLog bool
	logged  int
}

// NewConsole is the preferred method of initialisation for the Console type.
func NewConsole(h host.Host, sess *session.Session, input io.Reader, output io.Writer) (*Console, error) {
	c := &Console{
		host:    h,
		sess:    sess,
		reader:  bufio.NewReader(input),
		output:  output,
		ShowLog: true,
		logged:  sess.Log.Len(),
	}

	in, ok := input.(*os.File)
	if !ok {
		return c, nil
	}
	out, ok := output.(*os.File)
	if !ok {
		return c, nil
	}
	if !term.IsTerminal(int(in.Fd())) || !term.IsTerminal(int(out.Fd())) {
		return c, nil
	}

	c.term = &easyterm.Terminal{}
	if err := c.term.Initialise(in, out); err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}

	return c, nil
}

// IsRealTerminal returns true if the console is working in cbreak mode.
func (c *Console) IsRealTerminal() bool {
	return c.term != nil
}

// CleanUp returns the terminal to canonical mode. Should be called before the
// program exits because Run() may still be waiting for input.
func (c *Console) CleanUp() {
	if c.term != nil {
		c.term.CleanUp()
	}
}

// Run reads input until the input is exhausted, the quit command or key is
// used, or the context is cancelled. The context is checked only between
// reads.
func (c *Console) Run(ctx context.Context) error {
	if c.term == nil {
		return c.runLines(ctx)
	}

	defer c.term.CleanUp()
	if err := c.term.CBreakMode(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return c.runKeys(ctx)
}

func (c *Console) runLines(ctx context.Context) error {
	for ctx.Err() == nil {
		line, err := c.reader.ReadString('\n')
		if line != "" {
			quit, err := c.do(ctx, func() (bool, error) {
				return c.Execute(line)
			})
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("console: %w", err)
		}
	}
	return nil
}

func (c *Console) runKeys(ctx context.Context) error {
	for ctx.Err() == nil {
		r, _, err := c.reader.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("console: %w", err)
		}

		var cmd string

		switch r {
		case ' ':
			cmd = KeywordToggle
		case 's':
			cmd = KeywordStep
		case 'h':
			cmd = KeywordHalt
		case 'r':
			cmd = KeywordReset
		case '?':
			cmd = KeywordHelp
		case 'q', easyterm.KeyCtrlD:
			cmd = KeywordQuit
		case ':':
			cmd, err = c.readLine()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cmd) == "" {
				continue
			}
		case easyterm.KeyCarriageReturn, easyterm.KeyLineFeed:
			continue
		}

		quit, err := c.do(ctx, func() (bool, error) {
			if cmd == "" {
				return false, fmt.Errorf("console: unknown key (%q). press ? for help", r)
			}
			return c.Execute(cmd)
		})
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	return nil
}

// readLine switches to canonical mode for the length of one line of input.
func (c *Console) readLine() (string, error) {
	if err := c.term.CanonicalMode(); err != nil {
		return "", fmt.Errorf("console: %w", err)
	}
	defer func() {
		_ = c.term.CBreakMode()
	}()

	io.WriteString(c.output, Prompt)
	line, err := c.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("console: %w", err)
	}
	return line, nil
}

// do posts the function to the host and waits for it to complete. Errors from
// the function are printed, not returned. An error is returned only if the
// host could not run the function.
func (c *Console) do(ctx context.Context, f func() (bool, error)) (bool, error) {
	done := make(chan bool, 1)
	err := c.host.Post(func() {
		quit, err := f()
		if err != nil {
			c.print(styleError, "%v", err)
		}
		done <- quit
	})
	if err != nil {
		return false, fmt.Errorf("console: %w", err)
	}

	select {
	case quit := <-done:
		return quit, nil
	case <-ctx.Done():
		return false, nil
	}
}

func (c *Console) print(st style, s string, a ...any) {
	if len(a) > 0 {
		s = fmt.Sprintf(s, a...)
	}
	s = strings.TrimRight(s, "\n")

	if c.term == nil {
		if st == styleError {
			s = fmt.Sprintf("* %s", s)
		}
		io.WriteString(c.output, s)
		io.WriteString(c.output, "\n")
		return
	}

	switch st {
	case styleError:
		io.WriteString(c.output, ansi.Pens["red"])
	case styleHelp:
		io.WriteString(c.output, ansi.DimPens["cyan"])
	case styleLog:
		io.WriteString(c.output, ansi.DimPens["white"])
	}
	io.WriteString(c.output, s)
	io.WriteString(c.output, ansi.NormalPen)
	io.WriteString(c.output, "\n")
}

// printLog prints log entries added since the last call.
func (c *Console) printLog() {
	if !c.ShowLog {
		c.logged = c.sess.Log.Len()
		return
	}

	logs := c.sess.Log.Logs()
	for _, e := range logs[c.logged:] {
		c.print(styleLog, e.String())
	}
	c.logged = len(logs)
}
