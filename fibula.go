// This file is part of Fibula.
//
// Fibula is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Fibula is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Fibula.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/fibula/debugger"
	"github.com/jetsetilly/fibula/debugger/terminal"
	"github.com/jetsetilly/fibula/debugger/terminal/colorterm"
	"github.com/jetsetilly/fibula/debugger/terminal/plainterm"
	"github.com/jetsetilly/fibula/gui/sdllight"
	"github.com/jetsetilly/fibula/logger"
	"github.com/jetsetilly/fibula/modalflag"
	"github.com/jetsetilly/fibula/performance"
	"github.com/jetsetilly/fibula/playmode"
	"github.com/jetsetilly/fibula/recorder"
	"github.com/jetsetilly/fibula/regression"
	"github.com/jetsetilly/fibula/resources"
	"github.com/jetsetilly/fibula/statsview"
	"github.com/jetsetilly/fibula/testbench"
	"github.com/jetsetilly/fibula/version"
)

// the terminal script run when the debugger starts, relative to the fibula
// config directory.
const defaultInitScript = "debuggerInit"

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when an alternative handler is
	// more appropriate. for example, the playmode and debugger packages
	// provide mode specific handlers.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that must live on the main thread.
//
// Note that there is no Create() function because we need the freedom to
// create the GUI how we want. Instead, the creator channel of the mainSync
// struct accepts a function that returns an instance of GuiCreator.
type GuiCreator interface {
	// release all resources used by the gui
	Destroy()

	// Service() should not pause or loop longer than necessary (if at all).
	// It MUST ONLY be called as part of a larger loop from the main thread.
	// It should service all gui events that are not safe to do in
	// sub-threads.
	Service()
}

// communication between the main() function and the launch() function. this
// is required because many gui solutions (notably SDL) require window event
// handling (including creation) to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two
	// channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with the reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be turned off with the reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through the
	// mainSync instance
	go launch(sync)

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new gui creation functions
	//  3. state requests
	//  4. anything in the Service() function of the most recently created GUI
	//
	done := false
	var scr GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if scr != nil {
				scr.Destroy()
			}

			scr, err = creator()
			if err != nil {
				sync.creationError <- err

				// comparing an interface value to nil stops working as soon
				// as a concrete type has been stored in it, so the variable
				// is explicitly reset on error
				scr = nil
			} else {
				sync.creation <- scr
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if scr != nil {
					scr.Destroy()
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}

		default:
			// service the most recently created GUI
			if scr != nil {
				scr.Service()
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses the mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	vrsn, rev, _ := version.Version()
	logger.Logf(logger.Allow, "version", "%s (%s)", vrsn, rev)

	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PLAY", "DEBUG", "PERFORMANCE", "BENCH", "REGRESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		fallthrough

	case "PLAY":
		err = play(md, sync)

	case "DEBUG":
		err = debug(md, sync)

	case "PERFORMANCE":
		err = perform(md)

	case "BENCH":
		err = bench(md)

	case "REGRESS":
		err = regress(md, sync)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

func play(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	record := md.AddBool("record", false, "record panel input to a transcript file")
	playback := md.AddString("playback", "", "transcript file to play back")
	stim := md.AddString("stimulus", "", "stimulus file to drive the button (WAV or MP3)")
	wav := md.AddString("wavline", "", "write the button line to a WAV file")
	scaling := md.AddFloat64("scale", 0.0, "size of a single light in pixels")
	uncapped := md.AddBool("uncapped", false, "do not cap the simulation to the crystal frequency")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		// create gui
		sync.creator <- func() (GuiCreator, error) {
			return sdllight.NewSdlLight()
		}

		// wait for creator result
		var scr playmode.Window
		select {
		case g := <-sync.creation:
			scr = g.(playmode.Window)
		case err := <-sync.creationError:
			return err
		}

		// turn off fallback ctrl-c handling. this so that playmode can end
		// playback and recording sessions gracefully
		sync.state <- stateRequest{req: reqNoIntSig}

		err = playmode.Play(scr, *playback, *record, *stim, *wav, float32(*scaling), *uncapped)
		if err != nil {
			return err
		}

		if *record {
			fmt.Println("! recording completed")
		}

	default:
		return fmt.Errorf("no arguments required for %s mode", md)
	}

	return nil
}

func debug(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	defInitScript, err := resources.JoinPath(defaultInitScript)
	if err != nil {
		return err
	}

	termType := md.AddString("term", "COLOR", "terminal type to use in debug mode: COLOR, PLAIN")
	initScript := md.AddString("initscript", defInitScript, "script to run on debugger start")
	profile := md.AddBool("profile", false, "run debugger through cpu and memory profilers")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var term terminal.Terminal
	var echo io.Writer = os.Stdout

	switch strings.ToUpper(*termType) {
	default:
		fmt.Printf("! unknown terminal type (%s) defaulting to plain\n", *termType)
		fallthrough
	case "PLAIN":
		term = &plainterm.PlainTerminal{}
	case "COLOR":
		term = &colorterm.ColorTerminal{}
		echo = logger.NewColorizer(os.Stdout)
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(echo, false)
	} else {
		logger.SetEcho(nil, false)
	}

	// turn off fallback ctrl-c handling. this so that the debugger can
	// handle quit events with a confirmation request. it also allows the
	// debugger to use ctrl-c events to interrupt execution of the machine
	// without quitting the debugger itself
	sync.state <- stateRequest{req: reqNoIntSig}

	dbg, err := debugger.NewDebugger(term)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		// set up a running function
		dbgRun := func() error {
			return dbg.Start(*initScript)
		}

		// if profile generation has been requested then run the dbgRun()
		// function prepared above through the RunProfiler() function
		if *profile {
			err := performance.RunProfiler(performance.ProfileAll, "debugger", dbgRun)
			if err != nil {
				return err
			}
		} else {
			err := dbgRun()
			if err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("no arguments required for %s mode", md)
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	profile := md.AddString("profile", "NONE", "run performance check through a profiler: NONE, CPU, MEM, ALL")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	uncapped := md.AddBool("uncapped", true, "run the machine as fast as possible")
	stats := md.AddBool("statsview", false, "run the statsview server (requires the statsview build tag)")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview is not available in this build (rebuild with the statsview tag)")
		}
		statsview.Launch(md.Output)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		err = performance.Check(md.Output, prf, *uncapped, *duration)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("no arguments required for %s mode", md)
	}

	return nil
}

func bench(md *modalflag.Modes) error {
	md.NewMode()

	md.AdditionalHelp(
		`Bench scripts are Starlark programs with builtins for driving the machine and
checking what it does. See the testbench package documentation for the list of
builtins. Each script runs on a fresh machine.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("bench script required for %s mode", md)
	default:
		for _, scriptFile := range md.RemainingArgs() {
			err := testbench.Run(md.Output, scriptFile)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func regress(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")
		failOnError := md.AddBool("fail", false, "stop the run on the first error")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		// turn off default sigint handling
		sync.state <- stateRequest{req: reqNoIntSig}

		err = regression.RegressRun(md.Output, *verbose, *failOnError, md.RemainingArgs())
		if err != nil {
			return err
		}

	case "LIST":
		md.NewMode()

		// no additional arguments

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			err := regression.RegressList(md.Output)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

	case "DELETE":
		md.NewMode()

		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			// use stdin for confirmation unless the "yes" flag has been sent
			var confirmation io.Reader
			if *answerYes {
				confirmation = &yesReader{}
			} else {
				confirmation = os.Stdin
			}

			err := regression.RegressDelete(md.Output, confirmation, md.GetArg(0))
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("only one entry can be deleted at a time")
		}

	case "ADD":
		return regressAdd(md)
	}

	return nil
}

func regressAdd(md *modalflag.Modes) error {
	md.NewMode()

	mode := md.AddString("mode", "", "type of regression entry")
	notes := md.AddString("notes", "", "additional annotation for the database")
	presses := md.AddInt("presses", 7, "number of button presses to simulate [digest]")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	md.AdditionalHelp(
		`The regression test to be added can be a name for a digest entry or the path to a
previously recorded playback file. For playback files, the flags marked [digest] do
not make sense and will be ignored.

Available modes are DIGEST and PLAYBACK. If no mode is explicitly given then
PLAYBACK will be used for playback recordings and DIGEST for anything else.

Note that asking for log output will suppress regression progress meters.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, false)
		md.Output = &nopWriter{}
	} else {
		logger.SetEcho(nil, false)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("entry name or playback file required for %s mode", md)
	case 1:
		var reg regression.Regressor

		if *mode == "" {
			if recorder.IsPlaybackFile(md.GetArg(0)) {
				*mode = "PLAYBACK"
			} else {
				*mode = "DIGEST"
			}
		}

		switch strings.ToUpper(*mode) {
		case "DIGEST":
			reg = &regression.DigestRegression{
				Name:    md.GetArg(0),
				Presses: *presses,
				Notes:   *notes,
			}
		case "PLAYBACK":
			// check and warn if unneeded arguments have been specified
			md.Visit(func(flg string) {
				if flg == "presses" {
					fmt.Printf("! ignored %s flag when adding playback entry\n", flg)
				}
			})

			reg = &regression.PlaybackRegression{
				Script: md.GetArg(0),
				Notes:  *notes,
			}
		default:
			return fmt.Errorf("unrecognised regression mode (%s)", *mode)
		}

		err := regression.RegressAdd(md.Output, reg)
		if err != nil {
			// carriage return (without newline) at the beginning of the
			// error message so that the last progress output from
			// RegressAdd() is overwritten
			return fmt.Errorf("\rerror adding regression test: %w", err)
		}
	default:
		return fmt.Errorf("regression tests can only be added one at a time")
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display vcs revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		vrsn, rev, _ := version.Version()
		fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, vrsn)
		if *revision {
			fmt.Fprintln(md.Output, rev)
		}
	default:
		return fmt.Errorf("no arguments required for %s mode", md)
	}

	return nil
}

// yesReader always reads a y. used to automate the regress delete
// confirmation.
type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	p[0] = 'y'
	return 1, nil
}

// nopWriter is an empty writer.
type nopWriter struct{}

func (*nopWriter) Write(p []byte) (n int, err error) {
	return 0, nil
}
