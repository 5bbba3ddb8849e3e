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
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/fibula/debugger/script"
	"github.com/jetsetilly/fibula/debugger/terminal"
	"github.com/jetsetilly/fibula/debugger/terminal/commandline"
	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/processor/instructions"
	"github.com/jetsetilly/fibula/logger"
	"github.com/jetsetilly/fibula/wavline"
)

// Debugger is the controlling type for a debugging session.
type Debugger struct {
	fib *hardware.Fib

	// the terminal the debugger is connected to
	term terminal.Terminal

	// events serviced by the input loop in addition to the terminal. the
	// same instance is handed to every TermRead()
	events *terminal.ReadEvents

	// buffer for user input
	input [255]byte

	// granularity of the STEP command
	quantum Quantum

	// is the debugger session running. the session ends when this is false
	running bool

	// emulate until a halt condition is met, rather than for a fixed number
	// of steps
	runUntilHalt bool

	// emulation should step forward at least one more edge before pausing
	// for input
	continueEmulation bool

	// number of quantum boundaries to pass before pausing for input. only
	// meaningful when continueEmulation is true and runUntilHalt is not
	stepsRemaining int

	// halt the emulation at the next edge. set by the HALT command and by a
	// ctrl-c while the emulation is running
	haltImmediately bool

	// the most recent Step() returned an error. a halt condition
	lastStepError bool

	// halt conditions and the accumulated messages for when they are met
	breakpoints   *breakpoints
	traps         *traps
	breakMessages string
	trapMessages  string

	// count of edges since events were last checked
	inputCt int

	// the button tap in progress, if any
	tap tapState

	// script recording
	scriptScribe script.Scribe

	// line capture attached with the WAVLINE command. ended when the session
	// ends or when a new capture is started
	wavline *wavline.WavLine
}

// NewDebugger creates all the necessary parts of a debugging session. The
// terminal is not initialised until Start() is called.
func NewDebugger(term terminal.Terminal) (*Debugger, error) {
	dbg := &Debugger{
		term:    term,
		quantum: QuantumInstruction,
	}

	var err error

	dbg.fib, err = hardware.NewFib(environment.MainEmulation, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("debugger: %w", err)
	}

	dbg.breakpoints = newBreakpoints(dbg)
	dbg.traps = newTraps(dbg)

	// there is no GUI in a debugging session so nothing ever pushes onto the
	// UserInput channel. the terminal contract requires the other channels
	// to be serviced however
	dbg.events = &terminal.ReadEvents{
		IntEvents: make(chan os.Signal, 1),
		RawEvents: make(chan func(), 32),
	}

	dbg.term.RegisterTabCompletion(commandline.NewTabCompletion(debuggerCommands))

	return dbg, nil
}

// Start the debugging session. The initScript, if not empty, names a
// terminal script the commands of which are run before the interactive
// session begins.
func (dbg *Debugger) Start(initScript string) error {
	err := dbg.term.Initialise()
	if err != nil {
		return fmt.Errorf("debugger: %w", err)
	}
	defer dbg.term.CleanUp()
	defer dbg.end()

	signal.Notify(dbg.events.IntEvents, os.Interrupt)
	defer signal.Stop(dbg.events.IntEvents)

	dbg.running = true

	if initScript != "" {
		plb, err := script.RescribeScript(initScript)
		if err != nil {
			// an unusable init script is not fatal to the session
			logger.Logf(logger.Allow, "debugger", "error running init script: %v", err)
		} else {
			dbg.term.Silence(true)
			err = dbg.inputLoop(plb, true)
			dbg.term.Silence(false)
			if err != nil {
				return fmt.Errorf("debugger: %w", err)
			}
		}
	}

	err = dbg.inputLoop(dbg.term, false)
	if err != nil {
		return fmt.Errorf("debugger: %w", err)
	}

	return nil
}

// end cleans up the session.
func (dbg *Debugger) end() {
	if err := dbg.scriptScribe.EndSession(); err != nil {
		logger.Log(logger.Allow, "debugger", err.Error())
	}

	if dbg.wavline != nil {
		if err := dbg.wavline.End(); err != nil {
			logger.Log(logger.Allow, "debugger", err.Error())
		}
		dbg.wavline = nil
	}
}

// buildPrompt returns a prompt suitable for the current state of the machine
// and of the debugger.
func (dbg *Debugger) buildPrompt() terminal.Prompt {
	p := terminal.Prompt{
		Content: fmt.Sprintf("edge %d pc=%#04x %s %s",
			dbg.fib.Bar.Edge(), dbg.fib.Proc.PC,
			instructions.Decode(dbg.fib.Mem.Peek(dbg.fib.Proc.PC)),
			dbg.fib.Bar),
		Recording: dbg.scriptScribe.IsActive(),
	}

	switch dbg.quantum {
	case QuantumEdge:
		p.Type = terminal.PromptTypeEdgeStep
	default:
		p.Type = terminal.PromptTypeInstructionStep
	}

	return p
}

// printMachineState prints a one line summary of the machine appropriate to
// the stepping quantum.
func (dbg *Debugger) printMachineState() {
	switch dbg.quantum {
	case QuantumEdge:
		dbg.printLine(terminal.StyleEdgeStep, dbg.fib.Proc.String())
	default:
		dbg.printLine(terminal.StyleInstructionStep, "%s; %s",
			instructions.Decode(dbg.fib.Proc.Inst), dbg.fib.Regs)
	}
}

// parseInput splits the input into individual commands and processes each of
// them in turn.
func (dbg *Debugger) parseInput(input string, interactive bool) error {
	input = strings.TrimSpace(input)

	// ignore comments. useful for hand-written scripts
	if strings.HasPrefix(input, "#") {
		return nil
	}

	commands := strings.Split(input, ";")
	for i := range commands {
		err := dbg.parseCommand(commands[i], interactive)
		if err != nil {
			// the command isn't recorded if it caused an error
			dbg.scriptScribe.Rollback()
			return err
		}
	}

	return nil
}

// parseCommand tokenises the input, checks it against the command template
// and acts on it.
func (dbg *Debugger) parseCommand(input string, interactive bool) error {
	tokens := commandline.TokeniseInput(input)

	// the empty string is the same as stepping one quantum
	if tokens.Remaining() == 0 {
		dbg.stepsRemaining = 1
		dbg.continueEmulation = true
		return nil
	}

	err := debuggerCommands.ValidateTokens(tokens)
	if err != nil {
		return err
	}

	// some commands must not be run from scripts or while a script is being
	// recorded. a successful validation against the unsafe template means
	// the command has matched one of them
	if dbg.scriptScribe.IsActive() || !interactive {
		tokens.Reset()
		if scriptUnsafeCommands.ValidateTokens(tokens) == nil {
			return fmt.Errorf("'%s' is unsafe to use in scripts", tokens.String())
		}
	}

	// write the normalised input to any script being recorded
	tokens.Reset()
	dbg.scriptScribe.WriteInput(tokens.String())

	tokens.Reset()
	return dbg.processTokens(tokens)
}
