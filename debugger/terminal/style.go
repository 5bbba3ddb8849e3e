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

package terminal

// Style is used to identify the category of text being sent to the
// Output.TermPrintLine() function. The terminal implementation can interpret
// this how it sees fit - the most likely treatment is to print different
// styles in different colours.
type Style int

// List of terminal styles.
const (
	// input echoed by the terminal implementation. many implementations will
	// not need to print anything for this style.
	StyleEcho Style = iota

	// help information. the bulk of the HELP command output uses this style.
	StyleHelp

	// terminal feedback for the command just executed.
	StyleFeedback

	// like StyleFeedback but for output that originates from outside of the
	// immediate read/process loop. for example, a notification that a script
	// has finished.
	StyleFeedbackNonInteractive

	// the machine state line printed after every stepped instruction.
	StyleInstructionStep

	// the machine state line printed after every stepped clock edge.
	StyleEdgeStep

	// output from the instrumentation commands (PROCESSOR, MEMORY, etc.)
	StyleInstrument

	// recent entries from the central logger.
	StyleLog

	// a loud and clear error.
	StyleError

	// prompt styles.
	StylePromptInstructionStep
	StylePromptEdgeStep
	StylePromptConfirm
)

// IsPrompt returns true if the style is one of the prompt styles.
func (sty Style) IsPrompt() bool {
	switch sty {
	case StylePromptInstructionStep, StylePromptEdgeStep, StylePromptConfirm:
		return true
	}
	return false
}

// IncludeInScriptOutput returns true if lines of the given style should be
// written (as comments) to any script being recorded. Echoed input is
// excluded because the input itself is already part of the script.
func (sty Style) IncludeInScriptOutput() bool {
	switch sty {
	case StyleFeedback, StyleInstructionStep, StyleEdgeStep, StyleInstrument:
		return true
	}
	return false
}
