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
	"sort"
	"strconv"

	"github.com/jetsetilly/fibula/debugger/script"
	"github.com/jetsetilly/fibula/debugger/terminal"
	"github.com/jetsetilly/fibula/debugger/terminal/commandline"
	"github.com/jetsetilly/fibula/hardware/memory"
	"github.com/jetsetilly/fibula/hardware/panel"
	"github.com/jetsetilly/fibula/hardware/processor/instructions"
	"github.com/jetsetilly/fibula/logger"
	"github.com/jetsetilly/fibula/stimulus"
	"github.com/jetsetilly/fibula/version"
	"github.com/jetsetilly/fibula/wavline"
)

var debuggerCommands *commandline.Commands
var scriptUnsafeCommands *commandline.Commands

// the command templates are parsed at package initialisation. a failure is a
// programming error.
func init() {
	var err error

	debuggerCommands, err = commandline.ParseCommandTemplate(commandTemplate)
	if err != nil {
		panic(err)
	}

	err = debuggerCommands.AddHelp(cmdHelp, helps)
	if err != nil {
		panic(err)
	}
	sort.Stable(debuggerCommands)

	scriptUnsafeCommands, err = commandline.ParseCommandTemplate(scriptUnsafeTemplate)
	if err != nil {
		panic(err)
	}
}

// processTokens interprets the tokens of a single, already validated,
// command.
func (dbg *Debugger) processTokens(tokens *commandline.Tokens) error {
	command, _ := tokens.Get()

	switch command {
	case cmdHelp:
		keyword, ok := tokens.Get()
		if ok {
			dbg.printLine(terminal.StyleHelp, debuggerCommands.Help(keyword))
		} else {
			dbg.printLine(terminal.StyleHelp, debuggerCommands.HelpOverview())
		}

	case cmdQuit:
		dbg.running = false

	case cmdReset:
		err := dbg.fib.Reset()
		if err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "machine reset")

	case cmdRun:
		dbg.runUntilHalt = true
		dbg.continueEmulation = true

	case cmdHalt:
		dbg.haltImmediately = true

	case cmdStep:
		num := 1
		if arg, ok := tokens.Get(); ok {
			n, err := strconv.ParseInt(arg, 0, 32)
			if err != nil || n < 1 {
				return fmt.Errorf("cannot step by %s", arg)
			}
			num = int(n)
		}
		dbg.stepsRemaining = num
		dbg.continueEmulation = true

	case cmdQuantum:
		mode, ok := tokens.Get()
		if ok {
			switch mode {
			case "EDGE":
				dbg.quantum = QuantumEdge
			case "INSTRUCTION":
				dbg.quantum = QuantumInstruction
			}
		}
		dbg.printLine(terminal.StyleFeedback, "quantum: %s", dbg.quantum)

	case cmdScript:
		option, _ := tokens.Get()
		switch option {
		case "RECORD":
			saveFile, _ := tokens.Get()
			err := dbg.scriptScribe.StartSession(saveFile)
			if err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "recording to %s", saveFile)

			// the feedback line has gone to the scribe like any other
			// terminal output. take it back out or it would be the first
			// line of the new script
			dbg.scriptScribe.Rollback()

		case "END":
			// the END command has itself been written to the scribe by this
			// point. take it back out before the file is finished with
			dbg.scriptScribe.Rollback()
			err := dbg.scriptScribe.EndSession()
			if err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "script recording ended")

		default:
			plb, err := script.RescribeScript(option)
			if err != nil {
				return err
			}

			// the SCRIPT command itself is recorded but the commands it
			// replays are not
			if dbg.scriptScribe.IsActive() {
				dbg.scriptScribe.StartPlayback()
				defer dbg.scriptScribe.EndPlayback()
			}

			err = dbg.inputLoop(plb, true)
			if err != nil {
				return err
			}
		}

	case cmdButton:
		option, ok := tokens.Get()
		if !ok {
			dbg.printLine(terminal.StyleInstrument, dbg.fib.Panel.String())
			return nil
		}
		switch option {
		case "HOLD":
			err := dbg.fib.Panel.HandleEvent(panel.ButtonSet, true)
			if err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, dbg.fib.Panel.String())
		case "RELEASE":
			err := dbg.fib.Panel.HandleEvent(panel.ButtonSet, false)
			if err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, dbg.fib.Panel.String())
		case "TAP":
			err := dbg.tapButton()
			if err != nil {
				return err
			}
		}

	case cmdProcessor:
		dbg.printLine(terminal.StyleInstrument, dbg.fib.Proc.String())

	case cmdRegisters:
		dbg.printLine(terminal.StyleInstrument, dbg.fib.Regs.String())

	case cmdMemory:
		option, ok := tokens.Get()
		if !ok {
			dbg.printLine(terminal.StyleInstrument, dbg.fib.Mem.String())
			return nil
		}

		switch option {
		case "POKE":
			a, _ := tokens.Get()
			addr, err := strconv.ParseUint(a, 0, 8)
			if err != nil || addr >= memory.Size {
				return fmt.Errorf("address must be between 0 and %#04x (%s)", memory.Size-1, a)
			}
			v, _ := tokens.Get()
			val, err := strconv.ParseUint(v, 0, 8)
			if err != nil {
				return fmt.Errorf("value must be an 8 bit number (%s)", v)
			}
			dbg.fib.Mem.Poke(uint8(addr), uint8(val))
			dbg.printLine(terminal.StyleFeedback, "%#04x -> %02x (%s)",
				addr, uint8(val), instructions.Decode(uint8(val)))
		default:
			addr, err := strconv.ParseUint(option, 0, 8)
			if err != nil || addr >= memory.Size {
				return fmt.Errorf("address must be between 0 and %#04x (%s)", memory.Size-1, option)
			}
			val := dbg.fib.Mem.Peek(uint8(addr))
			dbg.printLine(terminal.StyleInstrument, "%#04x -> %02x (%s)",
				addr, val, instructions.Decode(val))
		}

	case cmdDebounce:
		dbg.printLine(terminal.StyleInstrument, dbg.fib.Deb.String())

	case cmdLights:
		dbg.printLine(terminal.StyleInstrument, dbg.fib.Bar.String())

	case cmdList:
		image := make([]uint8, 0, memory.Size)
		for i := 0; i < memory.Size; i++ {
			image = append(image, dbg.fib.Mem.Peek(uint8(i)))
		}
		for addr, line := range instructions.Disassemble(image) {
			pointer := "   "
			if uint8(addr) == dbg.fib.Proc.PC {
				pointer = "-> "
			}
			dbg.printLine(terminal.StyleInstrument, "%s%s", pointer, line)
		}

	case cmdBreak:
		if tokens.Remaining() == 0 {
			dbg.breakpoints.list()
			return nil
		}
		err := dbg.breakpoints.parseCommand(tokens)
		if err != nil {
			return err
		}

	case cmdTrap:
		if tokens.Remaining() == 0 {
			dbg.traps.list()
			return nil
		}
		err := dbg.traps.parseCommand(tokens)
		if err != nil {
			return err
		}

	case cmdClear:
		clear, _ := tokens.Get()
		switch clear {
		case "BREAKS":
			dbg.breakpoints.clear()
			dbg.printLine(terminal.StyleFeedback, "breakpoints cleared")
		case "TRAPS":
			dbg.traps.clear()
			dbg.printLine(terminal.StyleFeedback, "traps cleared")
		case "ALL":
			dbg.breakpoints.clear()
			dbg.traps.clear()
			dbg.printLine(terminal.StyleFeedback, "breakpoints and traps cleared")
		}

	case cmdStimulus:
		file, _ := tokens.Get()
		stim, err := stimulus.FromFile(dbg.fib.Env, file)
		if err != nil {
			return err
		}
		ply, err := stimulus.NewPlayer(stim)
		if err != nil {
			return err
		}
		err = ply.AttachToFib(dbg.fib)
		if err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "stimulus attached: %s", stim)

	case cmdWavline:
		file, _ := tokens.Get()
		if dbg.wavline != nil {
			err := dbg.wavline.End()
			dbg.wavline = nil
			if err != nil {
				return err
			}
		}
		wl, err := wavline.New(dbg.fib.Env, file)
		if err != nil {
			return err
		}
		dbg.wavline = wl
		dbg.fib.SetLineProbe(wl.Probe)
		dbg.printLine(terminal.StyleFeedback, "capturing button lines to %s", file)

	case cmdDump:
		err := dbg.dumpMachine()
		if err != nil {
			return err
		}

	case cmdLog:
		option, ok := tokens.Get()
		if ok && option == "LAST" {
			logger.Tail(dbg.printStyle(terminal.StyleLog), 1)
		} else {
			logger.Write(dbg.printStyle(terminal.StyleLog))
		}

	case cmdVersion:
		ver, rev, _ := version.Version()
		dbg.printLine(terminal.StyleFeedback, "%s (%s)", version.ApplicationName, ver)
		if option, ok := tokens.Get(); ok && option == "REVISION" {
			dbg.printLine(terminal.StyleFeedback, rev)
		}
	}

	return nil
}
