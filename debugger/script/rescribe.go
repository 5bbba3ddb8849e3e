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

package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jetsetilly/fibula/debugger/terminal"
)

// ErrScriptEnd is a sentinel error returned by TermRead() when the end of
// the script has been reached.
var ErrScriptEnd = errors.New("script has ended")

// Rescribe represents a previously scribed script. The type implements the
// terminal.Input interface.
type Rescribe struct {
	scriptFile string
	lines      []string
	lineCt     int
}

// RescribeScript is the preferred method of initialisation for the Rescribe
// type.
func RescribeScript(scriptfile string) (*Rescribe, error) {
	f, err := os.Open(scriptfile)
	if err != nil {
		return nil, fmt.Errorf("script: %v", err)
	}

	buffer, err := io.ReadAll(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("script: %v", err)
	}

	err = f.Close()
	if err != nil {
		return nil, fmt.Errorf("script: %v", err)
	}

	scr := &Rescribe{scriptFile: scriptfile}
	scr.lines = strings.Split(string(buffer), "\n")

	// pass over any leading output lines, leaving the line counter at the
	// first input line
	for scr.lineCt < len(scr.lines) && isOutputLine(scr.lines[scr.lineCt]) {
		scr.lineCt++
	}

	return scr, nil
}

// IsInteractive implements the terminal.Input interface.
func (scr *Rescribe) IsInteractive() bool {
	return false
}

// IsRealTerminal implements the terminal.Input interface.
func (scr *Rescribe) IsRealTerminal() bool {
	return false
}

// TermReadCheck implements the terminal.Input interface.
func (scr *Rescribe) TermReadCheck() bool {
	return false
}

// TermRead implements the terminal.Input interface.
func (scr *Rescribe) TermRead(buffer []byte, _ terminal.Prompt, _ *terminal.ReadEvents) (int, error) {
	if scr.lineCt > len(scr.lines)-1 {
		return -1, fmt.Errorf("%s: %w", scr.scriptFile, ErrScriptEnd)
	}

	command := len(scr.lines[scr.lineCt]) + 1
	copy(buffer, []byte(scr.lines[scr.lineCt]))
	scr.lineCt++

	// pass over any output lines
	for scr.lineCt < len(scr.lines) && isOutputLine(scr.lines[scr.lineCt]) {
		scr.lineCt++
	}

	return command, nil
}
