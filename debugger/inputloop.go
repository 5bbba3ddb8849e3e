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

package debugger

import (
	"errors"
	"io"

	"github.com/jetsetilly/fibula/debugger/script"
	"github.com/jetsetilly/fibula/debugger/terminal"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/debounce"
	"github.com/jetsetilly/fibula/hardware/panel"
	"github.com/jetsetilly/fibula/hardware/processor"
)

// the number of edges between event checks while the emulation is running.
// checking on every edge slows the emulation down far too much.
const inputCtDelay = hardware.PerformanceBrake / 4

// inputLoop has two modes, defined by the scriptLoop argument. when
// scriptLoop is true the loop ends when the script runs out of commands.
//
// the function is called recursively when a script is run with the SCRIPT
// command.
func (dbg *Debugger) inputLoop(inp terminal.Input, scriptLoop bool) error {
	for dbg.running {
		if dbg.continueEmulation {
			// events and terminal activity are checked every inputCtDelay
			// edges rather than on every edge
			dbg.inputCt++
			if dbg.inputCt >= inputCtDelay {
				dbg.inputCt = 0
				dbg.checkEvents()
				if inp.TermReadCheck() {
					dbg.haltImmediately = true
				}
			}

			dbg.stepEmulation()
			continue
		}

		// the emulation is paused. pick up any events that arrived while the
		// terminal wasn't being read and then block on the terminal
		dbg.checkEvents()
		if !dbg.running || dbg.continueEmulation {
			continue
		}

		err := dbg.termRead(inp)
		if err != nil {
			if scriptLoop && errors.Is(err, script.ErrScriptEnd) {
				dbg.printLine(terminal.StyleFeedback, "%s", err)
				return nil
			}
			return err
		}
	}

	return nil
}

// stepEmulation runs the machine for one edge and checks the halt
// conditions.
func (dbg *Debugger) stepEmulation() {
	if dbg.tap != tapNone {
		dbg.serviceTap()
	}

	prevState := dbg.fib.Proc.State

	err := dbg.fib.Step()
	if err != nil {
		dbg.printLine(terminal.StyleError, "%s", err)
		dbg.lastStepError = true
	}

	// every halt condition is checked on every edge, whatever the quantum.
	// messages accumulate until the emulation pauses
	dbg.breakMessages = dbg.breakpoints.check(dbg.breakMessages)
	dbg.trapMessages = dbg.traps.check(dbg.trapMessages)

	if dbg.breakMessages != "" || dbg.trapMessages != "" || dbg.haltImmediately || dbg.lastStepError {
		dbg.haltEmulation()
		return
	}

	// quantum boundaries are only counted when stepping. a RUN or a button
	// tap is only stopped by a halt condition
	if dbg.runUntilHalt || dbg.tap != tapNone {
		return
	}

	boundary := dbg.quantum == QuantumEdge ||
		(prevState != processor.Fetching && dbg.fib.Proc.State == processor.Fetching)

	if boundary {
		dbg.stepsRemaining--
		dbg.printMachineState()
		if dbg.stepsRemaining <= 0 {
			dbg.continueEmulation = false
		}
	}
}

// haltEmulation stops the emulation and reports why.
func (dbg *Debugger) haltEmulation() {
	dbg.printLine(terminal.StyleFeedback, dbg.breakMessages)
	dbg.printLine(terminal.StyleFeedback, dbg.trapMessages)
	dbg.breakMessages = ""
	dbg.trapMessages = ""

	dbg.runUntilHalt = false
	dbg.continueEmulation = false
	dbg.stepsRemaining = 0
	dbg.haltImmediately = false
	dbg.lastStepError = false

	dbg.printMachineState()
}

// termRead blocks until input is received from the terminal and then parses
// it. errors from parsed commands are printed to the terminal rather than
// returned.
func (dbg *Debugger) termRead(inp terminal.Input) error {
	inputLen, err := inp.TermRead(dbg.input[:], dbg.buildPrompt(), dbg.events)

	if err != nil {
		if errors.Is(err, io.EOF) {
			err = terminal.UserAbort
		}

		if errors.Is(err, terminal.UserInterrupt) {
			dbg.handleInterrupt()
			return nil
		}

		if errors.Is(err, terminal.UserAbort) {
			dbg.running = false
			return nil
		}

		return err
	}

	if inputLen > 0 {
		err = dbg.parseInput(string(dbg.input[:inputLen-1]), inp.IsInteractive())
		if err != nil {
			dbg.printLine(terminal.StyleError, "%s", err)
		}
	}

	return nil
}

// checkEvents polls the event channels in the ReadEvents instance.
func (dbg *Debugger) checkEvents() {
	select {
	case <-dbg.events.IntEvents:
		dbg.handleInterrupt()
	case f := <-dbg.events.RawEvents:
		f()
	default:
	}
}

// handleInterrupt processes a ctrl-c event appropriately for the current
// state of the debugger.
func (dbg *Debugger) handleInterrupt() {
	// a ctrl-c while the emulation is running stops the emulation, not the
	// debugger
	if dbg.continueEmulation {
		dbg.haltImmediately = true
		dbg.runUntilHalt = false
		return
	}

	// a terminal that isn't really a terminal has no business asking for
	// confirmation
	if !dbg.term.IsRealTerminal() || !dbg.term.IsInteractive() {
		dbg.running = false
		return
	}

	confirm := make([]byte, 32)
	_, err := dbg.term.TermRead(confirm,
		terminal.Prompt{
			Content: "really quit (y/n) ",
			Type:    terminal.PromptTypeConfirm,
		}, dbg.events)
	if err != nil {
		// it's impossible to say what the user wants at this point so we
		// simply quit
		dbg.running = false
		return
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		dbg.running = false
	}
}

// tapState is the progress of a button tap. the BUTTON TAP command drives
// the button by watching the debouncer rather than by counting edges. a
// fixed schedule could press the button before the debouncer has settled the
// release it waits for at power-on, swallowing the tap entirely.
type tapState int

const (
	tapNone tapState = iota

	// waiting for the debouncer to be ready to accept a press
	tapWaitReady

	// the button is down. waiting for the press to be recognised
	tapPressed

	// the button is up again. waiting for the debouncer to settle so that a
	// following tap starts clean
	tapSettling
)

// tapButton begins a button tap. the machine runs until the tap has
// completed.
func (dbg *Debugger) tapButton() error {
	// a tap begins with the button up. this also means the debouncer can
	// always reach the ready state
	err := dbg.fib.Panel.HandleEvent(panel.ButtonSet, false)
	if err != nil {
		return err
	}

	dbg.tap = tapWaitReady
	dbg.continueEmulation = true

	return nil
}

// serviceTap progresses the tap. a halt in the middle of a tap leaves it in
// place and stepping again finishes it.
func (dbg *Debugger) serviceTap() {
	var err error

	switch dbg.tap {
	case tapWaitReady:
		if dbg.fib.Deb.State == debounce.WaitPress {
			err = dbg.fib.Panel.HandleEvent(panel.ButtonSet, true)
			dbg.tap = tapPressed
		}

	case tapPressed:
		if dbg.fib.Deb.State == debounce.DebouncePress {
			// the press has been recognised. release the button
			err = dbg.fib.Panel.HandleEvent(panel.ButtonSet, false)
			dbg.tap = tapSettling
		}

	case tapSettling:
		if dbg.fib.Deb.State == debounce.WaitPress {
			dbg.tap = tapNone
			dbg.printLine(terminal.StyleFeedback, "button tapped")
			if !dbg.runUntilHalt {
				dbg.haltImmediately = true
			}
		}
	}

	if err != nil {
		dbg.printLine(terminal.StyleError, "%s", err)
	}
}
