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

// Package recorder transcribes panel events to disk so that a session can be
// replayed later. The Recorder type does the transcribing and the Playback
// type does the replaying.
//
// Event timing is expressed in clock edges relative to the moment the
// recording began. A transcript ends with the hash of the lights seen during
// the session, allowing the replay to prove it produced the same output.
package recorder

import (
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/fibula/digest"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/panel"
)

// Recorder transcribes panel events to a file. It implements the
// panel.EventRecorder interface.
type Recorder struct {
	fib    *hardware.Fib
	output *os.File
	digest *digest.Lights

	// edge count at the moment the recording began. events are written with
	// edge counts relative to this
	origin uint64
}

// NewRecorder is the preferred method of implementation for the Recorder
// type. Attaching the Recorder to the machine's panel is implicit in this
// function call.
//
// Note that this will reset the machine.
func NewRecorder(transcript string, fib *hardware.Fib) (*Recorder, error) {
	if fib == nil || fib.Bar == nil {
		return nil, fmt.Errorf("recorder: no machine available")
	}

	rec := &Recorder{fib: fib}

	// we want the machine in a known state before the transcript starts
	err := fib.Reset()
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}

	rec.origin = fib.Bar.Edge()

	rec.digest, err = digest.NewLights(fib.Bar)
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}

	// a transcript is never overwritten
	rec.output, err = os.OpenFile(transcript, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("recorder: can't create transcript (%v)", err)
	}

	err = rec.writeHeader()
	if err != nil {
		return nil, err
	}

	fib.Panel.AttachEventRecorder(rec)

	return rec, nil
}

// End flushes the lights digest, writes it to the transcript and closes the
// file. The Recorder is of no use after a call to End().
func (rec *Recorder) End() error {
	// fold any light events still in the digest buffer into the hash
	err := rec.digest.Flush()
	if err != nil {
		rec.output.Close()
		return fmt.Errorf("recorder: %w", err)
	}

	line := fmt.Sprintf("%d%s%s%s%s\n", rec.fib.Bar.Edge()-rec.origin, fieldSep, digestEvent, fieldSep, rec.digest.Hash())

	_, err = io.WriteString(rec.output, line)
	if err != nil {
		rec.output.Close()
		return fmt.Errorf("recorder: %w", err)
	}

	err = rec.output.Close()
	if err != nil {
		return fmt.Errorf("recorder: %w", err)
	}

	return nil
}

// RecordEvent implements the panel.EventRecorder interface.
func (rec *Recorder) RecordEvent(event panel.Event, value panel.EventData) error {
	// no need to write a transcript entry for events that do nothing
	if event == panel.NoEvent {
		return nil
	}

	// the power switch is not part of the recording. the transcript ends
	// with the digest line written by End()
	if event == panel.PowerOff {
		return nil
	}

	var d string
	if value != nil {
		d = fmt.Sprintf("%v", value)
	}

	line := fmt.Sprintf("%d%s%s%s%s\n", rec.fib.Bar.Edge()-rec.origin, fieldSep, event, fieldSep, d)

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
