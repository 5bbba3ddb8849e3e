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
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/fibula/digest"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/panel"
)

// ErrPlaybackEnded is returned by GetPlayback() when the machine has reached
// the end of the recording. It is not an error condition so much as a signal
// for the running machine to stop.
var ErrPlaybackEnded = errors.New("playback has ended")

// ErrLightsMismatch is returned by GetPlayback() at the end of the recording
// if the lights seen during the replay differ from the hash in the
// transcript.
var ErrLightsMismatch = errors.New("lights do not match the recording")

type playbackEntry struct {
	edge  uint64
	event panel.Event
	data  panel.EventData

	// the line in the transcript the entry appears on
	line int
}

// Playback reperforms the panel events recorded in a transcript. It
// implements the panel.EventPlayback interface.
type Playback struct {
	transcript string

	// hash of the memory image the recording was made with, from the
	// transcript header
	ImageHash string

	sequence []playbackEntry
	seqCt    int

	// the edge at which the recording was ended and the hash of the lights
	// at that point. an empty endDigest means the transcript has no digest
	// line and verification is skipped
	endEdge   uint64
	endDigest string

	fib    *hardware.Fib
	digest *digest.Lights
	origin uint64
}

func (plb *Playback) String() string {
	if plb.fib == nil || plb.endEdge == 0 {
		return plb.transcript
	}
	curr := plb.fib.Bar.Edge() - plb.origin
	return fmt.Sprintf("%d/%d (%.1f%%)", curr, plb.endEdge, 100*(float64(curr)/float64(plb.endEdge)))
}

// NewPlayback is the preferred method of implementation for the Playback
// type.
func NewPlayback(transcript string) (*Playback, error) {
	plb := &Playback{
		transcript: transcript,
		sequence:   make([]playbackEntry, 0),
	}

	tf, err := os.Open(transcript)
	if err != nil {
		return nil, fmt.Errorf("playback: %v", err)
	}
	buffer, err := io.ReadAll(tf)
	if err != nil {
		return nil, fmt.Errorf("playback: %v", err)
	}
	err = tf.Close()
	if err != nil {
		return nil, fmt.Errorf("playback: %v", err)
	}

	// convert file contents to an array of lines
	lines := strings.Split(string(buffer), "\n")

	// read header and perform validation checks
	err = plb.readHeader(lines)
	if err != nil {
		return nil, err
	}

	// loop through the event lines of the transcript
	for i := numHeaderLines; i < len(lines)-1; i++ {
		toks := strings.Split(lines[i], fieldSep)

		if len(toks) != numFields {
			return nil, fmt.Errorf("playback: expected %d fields at line %d", numFields, i+1)
		}

		entry := playbackEntry{line: i + 1}

		entry.edge, err = strconv.ParseUint(toks[fieldEdge], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("playback: %s at line %d", err, i+1)
		}

		// the digest line marks the end of the recording
		if toks[fieldEvent] == digestEvent {
			plb.endEdge = entry.edge
			plb.endDigest = toks[fieldEventData]
			continue
		}

		entry.event = panel.Event(toks[fieldEvent])
		entry.data = parseEventData(toks[fieldEventData])

		// events appear in the transcript in the order they happened. if
		// the transcript has no digest line the playback ends at the final
		// event
		if entry.edge > plb.endEdge {
			plb.endEdge = entry.edge
		}

		plb.sequence = append(plb.sequence, entry)
	}

	return plb, nil
}

// event data is written to the transcript with the %v verb. the limited
// range of types allowed in an EventData value means the original type can
// be recovered from the string form.
func parseEventData(s string) panel.EventData {
	switch s {
	case "":
		return nil
	case "true":
		return true
	case "false":
		return false
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 32); err == nil {
		return float32(f)
	}

	return s
}

// AttachToFib attaches the playback instance to the machine's panel.
//
// Note that this will reset the machine.
func (plb *Playback) AttachToFib(fib *hardware.Fib) error {
	if fib == nil || fib.Bar == nil {
		return fmt.Errorf("playback: no machine available")
	}

	// keep it simple and disallow any difference in the memory image. the
	// recorded timings only make sense against the same program
	if plb.ImageHash != fib.ImageHash {
		return fmt.Errorf("playback: recording was made with a different memory image")
	}

	plb.fib = fib

	// we want the machine in the same known state the recording began in
	err := fib.Reset()
	if err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	plb.origin = fib.Bar.Edge()

	plb.digest, err = digest.NewLights(fib.Bar)
	if err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	fib.Panel.AttachPlayback(plb)

	return nil
}

// GetPlayback returns an event that is due at the current machine edge, or
// NoEvent if there is nothing due. Once the machine has run on to the edge
// at which the recording was ended the returned error is ErrPlaybackEnded.
func (plb *Playback) GetPlayback() (panel.Event, panel.EventData, error) {
	if plb.fib == nil {
		return panel.NoEvent, nil, fmt.Errorf("playback: not attached to a machine")
	}

	curr := plb.fib.Bar.Edge() - plb.origin

	// the end of the event sequence. the machine keeps running to the edge
	// at which the recording was ended before we call a stop
	if plb.seqCt >= len(plb.sequence) {
		if curr < plb.endEdge {
			return panel.NoEvent, nil, nil
		}
		return panel.NoEvent, nil, plb.end()
	}

	entry := plb.sequence[plb.seqCt]
	if entry.edge == curr {
		plb.seqCt++
		return entry.event, entry.data, nil
	}

	return panel.NoEvent, nil, nil
}

// end of playback responsibilities: compare the hash of the lights seen
// during the replay with the hash in the transcript.
func (plb *Playback) end() error {
	if plb.endDigest != "" {
		err := plb.digest.Flush()
		if err != nil {
			return fmt.Errorf("playback: %w", err)
		}
		if plb.digest.Hash() != plb.endDigest {
			return fmt.Errorf("playback: %w", ErrLightsMismatch)
		}
	}
	return ErrPlaybackEnded
}
