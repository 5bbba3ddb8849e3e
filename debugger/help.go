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

// help text for the debugger commands.
var helps = map[string]string{
	cmdHelp: "Lists commands and provides help for individual commands",

	cmdQuit:  "Exits the debugger",
	cmdReset: "Resets the machine to its initial state",

	cmdRun:     "Runs the machine until a halt condition is met",
	cmdHalt:    "Halts the machine at the next clock edge",
	cmdStep:    "Steps forward the specified number of quanta (default 1). An empty command line is the same as STEP",
	cmdQuantum: "Changes or reports the stepping quantum. One of EDGE or INSTRUCTION",
	cmdScript:  "Runs commands from a script file or records commands to a new script file",

	cmdButton: "Operates the push-button. TAP holds the button for long enough that the debouncer accepts the press and then releases it. With no argument, prints the current button position",

	cmdProcessor: "Prints the current state of the processor",
	cmdRegisters: "Prints the current state of the register file",
	cmdDebounce:  "Prints the current state of the button debouncer",
	cmdLights:    "Prints the current state of the lightbar",
	cmdMemory:    "Prints the instruction memory. A single address prints just that word. POKE changes the word at an address",
	cmdList:      "Lists the contents of the instruction memory as instructions",

	cmdBreak: "Halts the machine when the target reaches the specified value. With no argument, lists the current breakpoints",
	cmdTrap:  "Halts the machine when the lights change. With no argument, lists the current traps",
	cmdClear: "Clears breakpoints and/or traps",

	cmdStimulus: "Feeds the button line from a WAV or MP3 capture file",
	cmdWavline:  "Captures the raw and debounced button lines to a WAV file",

	cmdDump:    "Writes a graphviz visualisation of the machine state to a file",
	cmdLog:     "Prints the application log. LAST prints only the most recent entry",
	cmdVersion: "Prints the version string. REVISION also prints the source revision",
}
