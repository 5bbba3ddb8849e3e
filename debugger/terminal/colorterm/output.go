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

//go:build !windows
// +build !windows

package colorterm

import (
	"github.com/jetsetilly/fibula/debugger/terminal"
	"github.com/jetsetilly/fibula/debugger/terminal/colorterm/easyterm/ansi"
)

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if ct.silenced && style != terminal.StyleError {
		return
	}

	// echoed input has already been output to the terminal by the line editor
	if style == terminal.StyleEcho {
		return
	}

	ct.EasyTerm.TermPrint("\r")

	switch style {
	case terminal.StyleHelp:
		ct.EasyTerm.TermPrint(ansi.DimPens["white"])

	case terminal.StylePromptInstructionStep:
		ct.EasyTerm.TermPrint(ansi.PenStyles["bold"])

	case terminal.StylePromptEdgeStep:
		ct.EasyTerm.TermPrint(ansi.DimPens["white"])

	case terminal.StylePromptConfirm:
		ct.EasyTerm.TermPrint(ansi.Pens["blue"])

	case terminal.StyleFeedback:
		ct.EasyTerm.TermPrint(ansi.DimPens["white"])

	case terminal.StyleInstructionStep:
		ct.EasyTerm.TermPrint(ansi.Pens["yellow"])

	case terminal.StyleEdgeStep:
		ct.EasyTerm.TermPrint(ansi.DimPens["yellow"])

	case terminal.StyleInstrument:
		ct.EasyTerm.TermPrint(ansi.Pens["cyan"])

	case terminal.StyleLog:
		ct.EasyTerm.TermPrint(ansi.Pens["magenta"])

	case terminal.StyleFeedbackNonInteractive:
		// simulate the echo of the return key which would be present if
		// the input was interactive
		ct.EasyTerm.TermPrint("\n")
		ct.EasyTerm.TermPrint(ansi.DimPens["white"])

	case terminal.StyleError:
		ct.EasyTerm.TermPrint(ansi.Pens["red"])
		ct.EasyTerm.TermPrint("* ")
	}

	ct.EasyTerm.TermPrint(s)
	ct.EasyTerm.TermPrint(ansi.NormalPen)

	// prompt styles do not get a newline
	if !style.IsPrompt() {
		ct.EasyTerm.TermPrint("\n")
	}
}
