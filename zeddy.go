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

// Zeddy runs Z80 programs at a configurable clock frequency, with the output
// shown on a memory mapped display.
//
//	zeddy [flags] [program file]
//
// The program is loaded at address zero. Unless the -headless flag is given
// the display is shown in an SDL window. The console reads commands from the
// standard input unless the -for flag is given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/jetsetilly/zeddy/gui/sdl"
	"github.com/jetsetilly/zeddy/hardware/clocks"
	"github.com/jetsetilly/zeddy/host"
	"github.com/jetsetilly/zeddy/logger"
	"github.com/jetsetilly/zeddy/paths"
	"github.com/jetsetilly/zeddy/prefs"
	"github.com/jetsetilly/zeddy/script"
	"github.com/jetsetilly/zeddy/session"
	"github.com/jetsetilly/zeddy/statsview"
	"github.com/jetsetilly/zeddy/terminal/console"
	"github.com/jetsetilly/zeddy/version"
)

// tag used for log entries
const tag = "zeddy"

// values to use with os.Exit()
const (
	exitOK    = 0
	exitArgs  = 10
	exitError = 20
)

// size of the host's event queue
const hostQueue = 64

func init() {
	// SDL must be serviced from the main thread. the host loop runs on the
	// main goroutine so that goroutine must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	os.Exit(launch(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options collated from the command line.
type options struct {
	freq       int
	refresh    int
	scale      int
	prefs      string
	script     string
	headless   bool
	runFor     time.Duration
	screenshot string
	statsview  bool
	echo       bool
	run        bool
	version    bool
	program    string
}

// parseArgs returns flag.ErrHelp if help was requested. The help message is
// written to output.
func parseArgs(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet(strings.ToLower(version.ApplicationName), flag.ContinueOnError)
	fs.SetOutput(output)

	freq := fs.String("freq", "", fmt.Sprintf("clock frequency in Hz or a machine name (%s)", strings.Join(clocks.Names(), ", ")))
	fs.IntVar(&opts.refresh, "refresh", 0, "scheduler refresh rate in Hz")
	fs.IntVar(&opts.scale, "scale", 0, "display scale in the window and in screenshots")
	fs.StringVar(&opts.prefs, "prefs", "", `preferences for this run. eg. "clock.frequency::4000000; clock.refresh::50"`)
	fs.StringVar(&opts.script, "script", "", "lua script to run at startup")
	fs.BoolVar(&opts.headless, "headless", false, "do not open a window")
	fs.DurationVar(&opts.runFor, "for", 0, "run for the duration and then quit. the console is not used")
	fs.StringVar(&opts.screenshot, "screenshot", "", "save a screenshot to the file before quitting")
	fs.BoolVar(&opts.statsview, "statsview", false, fmt.Sprintf("run the runtime statistics server at %s", statsview.DefaultAddress))
	fs.BoolVar(&opts.echo, "echo", false, "echo log entries to stderr")
	fs.BoolVar(&opts.run, "run", false, "start the emulation immediately")
	fs.BoolVar(&opts.version, "version", false, "print the version and quit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if *freq != "" {
		var err error
		opts.freq, err = strconv.Atoi(*freq)
		if err != nil {
			opts.freq, err = clocks.Lookup(*freq)
			if err != nil {
				return opts, err
			}
		}
		if opts.freq <= 0 {
			return opts, fmt.Errorf("frequency must be positive")
		}
	}
	if opts.refresh < 0 {
		return opts, fmt.Errorf("refresh rate cannot be negative")
	}
	if opts.scale < 0 {
		return opts, fmt.Errorf("scale cannot be negative")
	}
	if opts.runFor < 0 {
		return opts, fmt.Errorf("run duration cannot be negative")
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.program = fs.Arg(0)
	default:
		return opts, fmt.Errorf("too many arguments")
	}

	return opts, nil
}

// commandLinePrefs returns the preferences set on the command line as a
// prefs string. Specific flags take priority over the -prefs flag.
func (opts options) commandLinePrefs() string {
	var p []string
	if opts.prefs != "" {
		p = append(p, opts.prefs)
	}
	if opts.freq > 0 {
		p = append(p, fmt.Sprintf("clock.frequency::%d", opts.freq))
	}
	if opts.refresh > 0 {
		p = append(p, fmt.Sprintf("clock.refresh::%d", opts.refresh))
	}
	if opts.scale > 0 {
		p = append(p, fmt.Sprintf("display.scale::%d", opts.scale))
	}
	return strings.Join(p, "; ")
}

func launch(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "* error: %v\n", err)
		return exitArgs
	}

	if opts.version {
		fmt.Fprintln(stdout, version.String())
		return exitOK
	}

	if err := run(opts, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "* error: %v\n", err)
		return exitError
	}

	return exitOK
}

func run(opts options, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	prefsFile, err := paths.CreateResourcePath(prefs.DefaultPrefsFile)
	if err != nil {
		return err
	}

	loop := host.NewLoop(hostQueue)

	prefs.PushCommandLineStack(opts.commandLinePrefs())
	sess, err := session.NewSession(loop, session.Options{PrefsFile: prefsFile})
	unused := prefs.PopCommandLineStack()
	if err != nil {
		return err
	}

	if opts.echo {
		sess.Log.SetEcho(logger.NewColorizer(stderr))
	}
	if unused != "" {
		sess.Log.Logf(logger.Warning, tag, "unused preferences: %s", unused)
	}

	if opts.statsview {
		stop := statsview.Launch(stdout, "")
		defer stop()
	}

	if opts.program != "" {
		if err := sess.LoadFile(opts.program); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// startupErr is written by the startup function on the loop and read
	// after the loop has ended
	var startupErr error

	startup := func() {
		if opts.script != "" {
			scr := script.NewScript(sess)
			defer scr.Close()
			if err := scr.RunFile(ctx, opts.script); err != nil {
				startupErr = err
				loop.Quit()
				return
			}
		}

		if opts.run || opts.runFor > 0 {
			if err := sess.Run(); err != nil {
				startupErr = err
				loop.Quit()
				return
			}
		}

		if opts.runFor > 0 {
			if _, err := loop.AfterFunc(opts.runFor, loop.Quit); err != nil {
				startupErr = err
				loop.Quit()
			}
		}
	}
	if err := loop.Post(startup); err != nil {
		return err
	}

	if !opts.headless {
		win, err := sdl.NewWindow(loop, sess, loop.Quit)
		if err != nil {
			return err
		}
		defer win.Destroy()
		if err := win.Start(); err != nil {
			return err
		}
	}

	if opts.runFor == 0 {
		con, err := console.NewConsole(loop, sess, stdin, stdout)
		if err != nil {
			return err
		}
		defer con.CleanUp()
		con.ShowLog = !opts.echo

		go func() {
			if err := con.Run(ctx); err != nil && !errors.Is(err, host.ErrClosed) {
				fmt.Fprintf(stderr, "* error: %v\n", err)
			}
			loop.Quit()
		}()
	}

	err = loop.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// the loop has ended so it is safe to use the session from this goroutine

	if opts.screenshot != "" {
		if err := sess.ScreenshotFile(opts.screenshot); err != nil {
			return err
		}
	}

	if opts.runFor > 0 {
		if f, ok := sess.Frequency(); ok {
			fmt.Fprintf(stdout, "%s\n%s\nachieved %.0f Hz\n", sess.Prefs.Clock(), sess.Stats(), f)
		}
	}

	if err := sess.Close(); err != nil {
		return err
	}

	return startupErr
}
