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

// debugger keywords.
const (
	cmdHelp = "HELP"

	cmdQuit  = "QUIT"
	cmdReset = "RESET"

	// emulation control
	cmdRun     = "RUN"
	cmdHalt    = "HALT"
	cmdStep    = "STEP"
	cmdQuantum = "QUANTUM"
	cmdScript  = "SCRIPT"

	// the push-button
	cmdButton = "BUTTON"

	// machine state
	cmdProcessor = "PROCESSOR"
	cmdRegisters = "REGISTERS"
	cmdMemory    = "MEMORY"
	cmdDebounce  = "DEBOUNCE"
	cmdLights    = "LIGHTS"
	cmdList      = "LIST"

	// halt conditions
	cmdBreak = "BREAK"
	cmdTrap  = "TRAP"
	cmdClear = "CLEAR"

	// button line stimulus and capture
	cmdStimulus = "STIMULUS"
	cmdWavline  = "WAVLINE"

	// misc
	cmdDump    = "DUMP"
	cmdLog     = "LOG"
	cmdVersion = "VERSION"
)

var commandTemplate = []string{
	cmdQuit,
	cmdReset,

	cmdRun,
	cmdHalt,
	cmdStep + " (%<steps>N)",
	cmdQuantum + " (EDGE|INSTRUCTION)",
	cmdScript + " [RECORD %<new file>F|END|%<file>F]",

	cmdButton + " (HOLD|RELEASE|TAP)",

	cmdProcessor,
	cmdRegisters,
	cmdMemory + " (%<address>N|POKE %<address>N %<value>N)",
	cmdDebounce,
	cmdLights,
	cmdList,

	cmdBreak + " (PC %<address>N|OUT %<value>N)",
	cmdTrap + " (LIGHTS)",
	cmdClear + " [BREAKS|TRAPS|ALL]",

	cmdStimulus + " %<file>F",
	cmdWavline + " %<file>F",

	cmdDump,
	cmdLog + " (LAST)",
	cmdVersion + " (REVISION)",
}

// list of commands that should not be run when a script is being recorded or
// played back.
var scriptUnsafeTemplate = []string{
	cmdScript + " [RECORD %<new file>F]",
	cmdRun,
}
