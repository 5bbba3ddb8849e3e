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
	"fmt"
	"io"
	"os"
	"strings"
)

// the prefix for comment lines in a script file. the Scribe writes terminal
// output as comment lines and the Rescribe type skips over them on replay.
const commentLine = "#"

// check if line is prefixed with commentLine (ignoring leading spaces).
func isOutputLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), commentLine)
}

// Scribe captures the commands of a debugging session into a script file.
//
// A Scribe can be used again after a StartSession()/EndSession() cycle. Most
// functions fail silently if there is no active session, so it is safe to
// call them without an explicit IsActive() check.
type Scribe struct {
	file       *os.File
	scriptfile string

	// the depth of script playback during the writing of a new script.
	// commands arriving from a replayed script are not written, the command
	// that started the replay is record enough
	playbackDepth int

	// the pending input/output. not written to the file until Commit() so
	// that a command that errors can be taken back with Rollback()
	inputLine  string
	outputLine string
}

// IsActive returns true if a script is currently being captured.
func (scr Scribe) IsActive() bool {
	return scr.file != nil
}

// StartSession begins the capture of a new script. For safety, the named
// file must not already exist.
func (scr *Scribe) StartSession(scriptfile string) error {
	if scr.IsActive() {
		return fmt.Errorf("script: already recording to %s", scr.scriptfile)
	}

	f, err := os.OpenFile(scriptfile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("script: %v", err)
	}

	scr.file = f
	scr.scriptfile = scriptfile

	return nil
}

// EndSession the current scribe session.
func (scr *Scribe) EndSession() error {
	if !scr.IsActive() {
		return nil
	}

	defer func() {
		scr.file = nil
		scr.scriptfile = ""
		scr.playbackDepth = 0
		scr.inputLine = ""
		scr.outputLine = ""
	}()

	// make sure everything has been written to the output file. if the
	// commit fails carry on with the close and report the commit error only
	// if the close succeeds
	err := scr.Commit()

	errClose := scr.file.Close()
	if errClose != nil {
		return fmt.Errorf("script: %v", errClose)
	}

	return err
}

// StartPlayback indicates that a replayed script has begun.
func (scr *Scribe) StartPlayback() {
	if !scr.IsActive() {
		return
	}
	_ = scr.Commit()
	scr.playbackDepth++
}

// EndPlayback indicates that a replayed script has finished.
func (scr *Scribe) EndPlayback() {
	if !scr.IsActive() {
		return
	}
	_ = scr.Commit()
	scr.playbackDepth--
}

// Rollback undoes calls to WriteInput() and WriteOutput() since the last
// Commit().
func (scr *Scribe) Rollback() {
	if !scr.IsActive() {
		return
	}

	scr.inputLine = ""
	scr.outputLine = ""
}

// WriteInput stages a command for writing to the open script file.
func (scr *Scribe) WriteInput(command string) {
	if !scr.IsActive() || scr.playbackDepth > 0 {
		return
	}

	_ = scr.Commit()
	if command != "" {
		scr.inputLine = fmt.Sprintf("%s\n", command)
	}
}

// WriteOutput stages terminal output for writing to the open script file.
// Each line of the output is prefixed with the comment symbol.
func (scr *Scribe) WriteOutput(result string) {
	if !scr.IsActive() || scr.playbackDepth > 0 {
		return
	}

	if result == "" {
		return
	}

	for _, l := range strings.Split(result, "\n") {
		scr.outputLine = fmt.Sprintf("%s%s %s\n", scr.outputLine, commentLine, l)
	}
}

// Commit the most recent calls to WriteInput() and WriteOutput().
func (scr *Scribe) Commit() error {
	if !scr.IsActive() {
		return nil
	}

	defer func() {
		scr.inputLine = ""
		scr.outputLine = ""
	}()

	if scr.inputLine != "" {
		n, err := io.WriteString(scr.file, scr.inputLine)
		if err != nil {
			return fmt.Errorf("script: %v", err)
		}
		if n != len(scr.inputLine) {
			return fmt.Errorf("script: truncated write to %s", scr.scriptfile)
		}
	}

	if scr.outputLine != "" {
		n, err := io.WriteString(scr.file, scr.outputLine)
		if err != nil {
			return fmt.Errorf("script: %v", err)
		}
		if n != len(scr.outputLine) {
			return fmt.Errorf("script: truncated write to %s", scr.scriptfile)
		}
	}

	return nil
}
