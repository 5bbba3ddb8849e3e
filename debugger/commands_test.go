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
	"strings"
	"testing"

	"github.com/jetsetilly/fibula/test"
)

func TestCommandTemplate(t *testing.T) {
	valid := []string{
		"QUIT",
		"RESET",
		"RUN",
		"HALT",
		"STEP",
		"STEP 5",
		"step 0x10",
		"QUANTUM",
		"QUANTUM EDGE",
		"QUANTUM INSTRUCTION",
		"SCRIPT RECORD foo.script",
		"SCRIPT END",
		"SCRIPT foo.script",
		"BUTTON",
		"BUTTON HOLD",
		"BUTTON RELEASE",
		"BUTTON TAP",
		"PROCESSOR",
		"REGISTERS",
		"MEMORY",
		"MEMORY 0xf",
		"MEMORY $f",
		"MEMORY POKE 0x4 0x21",
		"DEBOUNCE",
		"LIGHTS",
		"LIST",
		"BREAK",
		"BREAK PC 0x8",
		"BREAK OUT 13",
		"TRAP",
		"TRAP LIGHTS",
		"CLEAR BREAKS",
		"CLEAR TRAPS",
		"CLEAR ALL",
		"STIMULUS press.wav",
		"WAVLINE capture.wav",
		"DUMP",
		"LOG",
		"LOG LAST",
		"VERSION",
		"VERSION REVISION",
		"HELP",
		"HELP STEP",
	}

	for _, input := range valid {
		test.ExpectSuccess(t, debuggerCommands.Validate(input), input)
	}

	invalid := []string{
		"NOSUCH",
		"STEP X",
		"STEP 5 6",
		"QUANTUM FAST",
		"SCRIPT",
		"SCRIPT RECORD",
		"BREAK LIGHTS 1",
		"TRAP PC",
		"CLEAR",
		"STIMULUS",
		"BUTTON WIGGLE",
		"LOG LAST NOW",
		"HELP NOSUCH",
	}

	for _, input := range invalid {
		test.ExpectFailure(t, debuggerCommands.Validate(input), input)
	}
}

// the RUN command and the SCRIPT RECORD command are the only commands that
// are unsafe in scripts.
func TestCommandTemplate_scriptUnsafe(t *testing.T) {
	test.ExpectSuccess(t, scriptUnsafeCommands.Validate("RUN"))
	test.ExpectSuccess(t, scriptUnsafeCommands.Validate("SCRIPT RECORD foo.script"))

	test.ExpectFailure(t, scriptUnsafeCommands.Validate("STEP"))
	test.ExpectFailure(t, scriptUnsafeCommands.Validate("SCRIPT foo.script"))
	test.ExpectFailure(t, scriptUnsafeCommands.Validate("SCRIPT END"))
}

// every command should have help text.
func TestCommandHelp(t *testing.T) {
	for tag := range debuggerCommands.Index {
		h := debuggerCommands.Help(tag)
		test.ExpectSuccess(t, !strings.HasPrefix(h, "no help for"), tag)
	}
}
