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

package recorder

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// fields in a transcript line
const (
	fieldEdge int = iota
	fieldEvent
	fieldEventData
	numFields
)

const fieldSep = ", "

// the event field of the line written by End(). not a panel event. the data
// field of a digest line carries the hash of the lights stream
const digestEvent = "Digest"

// transcript header format
// ------------------------
//
// # <magic>
// # <version>
// # <memory image hash>

const (
	lineMagic int = iota
	lineVersion
	lineImageHash
	numHeaderLines
)

const (
	magic   = "fibula recording"
	version = "v1.0"
)

func (rec *Recorder) writeHeader() error {
	lines := make([]string, numHeaderLines)

	lines[lineMagic] = magic
	lines[lineVersion] = version
	lines[lineImageHash] = fmt.Sprintf("%s\n", rec.fib.ImageHash)

	line := strings.Join(lines, "\n")

	n, err := io.WriteString(rec.output, line)
	if err != nil {
		rec.output.Close()
		return fmt.Errorf("recorder: %w", err)
	}

	if n != len(line) {
		rec.output.Close()
		return fmt.Errorf("recorder: transcript truncated")
	}

	return nil
}

func (plb *Playback) readHeader(lines []string) error {
	if len(lines) < numHeaderLines || lines[lineMagic] != magic {
		return fmt.Errorf("playback: not a fibula recording")
	}

	if lines[lineVersion] != version {
		return fmt.Errorf("playback: unsupported recording version (%s)", lines[lineVersion])
	}

	plb.ImageHash = lines[lineImageHash]

	return nil
}

// IsPlaybackFile returns true if the named file looks like a recording
// transcript. Only the first line of the file is examined.
func IsPlaybackFile(filename string) bool {
	f, err := os.Open(filename)
	if err != nil {
		return false
	}
	defer f.Close()

	b := make([]byte, len(magic))
	n, err := f.Read(b)
	if err != nil || n != len(magic) {
		return false
	}

	return string(b) == magic
}
