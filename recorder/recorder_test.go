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

package recorder_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/clocks"
	"github.com/jetsetilly/fibula/hardware/panel"
	"github.com/jetsetilly/fibula/hardware/processor/instructions"
	"github.com/jetsetilly/fibula/recorder"
	"github.com/jetsetilly/fibula/test"
)

const settleEdges = clocks.DebounceWindow + 200

func newTestFib(t *testing.T) *hardware.Fib {
	t.Helper()
	t.Setenv("FIBULA_HOME", t.TempDir())

	fib, err := hardware.NewFib(environment.Testbench, nil, nil)
	test.DemandSuccess(t, err)
	fib.Env.Normalise()

	err = fib.Env.Prefs.Realtime.Set(false)
	test.DemandSuccess(t, err)

	return fib
}

func runEdges(t *testing.T, fib *hardware.Fib, edges int) {
	t.Helper()
	for i := 0; i < edges; i++ {
		if err := fib.Step(); err != nil {
			t.Fatalf("unexpected error during machine step: %v", err)
		}
	}
}

func press(t *testing.T, fib *hardware.Fib, held bool) {
	t.Helper()
	test.DemandSuccess(t, fib.Panel.HandleEvent(panel.ButtonSet, held))
}

func TestRecorderPlayback_roundTrip(t *testing.T) {
	transcript := filepath.Join(t.TempDir(), "recording")

	// record a session with two button presses
	fib := newTestFib(t)
	rec, err := recorder.NewRecorder(transcript, fib)
	test.DemandSuccess(t, err)

	runEdges(t, fib, settleEdges)
	press(t, fib, true)
	runEdges(t, fib, settleEdges)
	press(t, fib, false)
	runEdges(t, fib, settleEdges)
	press(t, fib, true)
	runEdges(t, fib, settleEdges)
	press(t, fib, false)
	runEdges(t, fib, settleEdges)
	test.DemandEquality(t, fib.Bar.Lights(), 3)

	test.DemandSuccess(t, rec.End())
	test.ExpectSuccess(t, recorder.IsPlaybackFile(transcript))

	// replay the session on a fresh machine
	plb, err := recorder.NewPlayback(transcript)
	test.DemandSuccess(t, err)

	fib2 := newTestFib(t)
	test.DemandSuccess(t, plb.AttachToFib(fib2))

	for {
		err = fib2.Step()
		if err != nil {
			break
		}
	}

	// the replay ends cleanly, which includes the digest comparison, and
	// the machine is in the same place the recording finished in
	test.ExpectSuccess(t, errors.Is(err, recorder.ErrPlaybackEnded))
	test.ExpectEquality(t, fib2.Bar.Lights(), 3)
	test.ExpectEquality(t, fib2.Bar.Edge(), fib.Bar.Edge())
}

func TestRecorder_existingTranscript(t *testing.T) {
	transcript := filepath.Join(t.TempDir(), "recording")
	test.DemandSuccess(t, os.WriteFile(transcript, []byte("hello"), 0644))

	// a transcript is never overwritten
	fib := newTestFib(t)
	_, err := recorder.NewRecorder(transcript, fib)
	test.ExpectFailure(t, err)
}

func TestPlayback_imageMismatch(t *testing.T) {
	transcript := filepath.Join(t.TempDir(), "recording")

	fib := newTestFib(t)
	rec, err := recorder.NewRecorder(transcript, fib)
	test.DemandSuccess(t, err)
	runEdges(t, fib, settleEdges)
	test.DemandSuccess(t, rec.End())

	// a machine running a different program cannot replay the transcript.
	// the altered word is in a slot the program never fetches so the image
	// itself is still valid
	img := instructions.FibonacciImage()
	img[13] = uint8(instructions.Add)

	fib2 := newTestFib(t)
	test.DemandSuccess(t, fib2.AttachImage(img))

	plb, err := recorder.NewPlayback(transcript)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, plb.AttachToFib(fib2))
}

func TestPlayback_notARecording(t *testing.T) {
	transcript := filepath.Join(t.TempDir(), "not-a-recording")
	test.DemandSuccess(t, os.WriteFile(transcript, []byte("hello\nworld\n"), 0644))

	test.ExpectSuccess(t, !recorder.IsPlaybackFile(transcript))

	_, err := recorder.NewPlayback(transcript)
	test.ExpectFailure(t, err)
}
