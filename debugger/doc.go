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

// Package debugger implements an interactive debugging tool for the Fibula
// machine. Features include:
//
//   - disassembly of the instruction memory
//   - memory peek and poke
//   - stepping by clock edge or by instruction
//   - basic scripting
//   - breakpoints and traps
//   - button operation, including a correctly timed tap
//   - stimulus playback and line capture
//
// Some of these features come courtesy of other packages, described
// elsewhere, but all are exposed through the debugger package.
//
// Initialisation of the debugger is done with the NewDebugger() function
//
//	dbg, _ := debugger.NewDebugger(term)
//
// The term argument must be an instance of a type that satisfies the
// terminal.Terminal interface. The colorterm and plainterm sub-packages
// provide good reference implementations.
//
// Once initialised, the debugger can be started with the Start() function.
//
//	dbg.Start(initScript)
//
// The initScript is a script previously created either by the script.Scribe
// package or by hand. Its commands are run before the interactive session
// begins.
//
// The debugger runs in the one goroutine and steps the machine between
// terminal reads. There is no GUI in this mode. The lightbar is observed
// with the LIGHTS command, the state line printed after every step, or by
// capturing the button lines to a WAV file with the WAVLINE command.
package debugger
