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

package regression_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/clocks"
	"github.com/jetsetilly/fibula/hardware/panel"
	"github.com/jetsetilly/fibula/recorder"
	"github.com/jetsetilly/fibula/regression"
	"github.com/jetsetilly/fibula/test"
)

const settleEdges = clocks.DebounceWindow + 200

func newTestFib(t *testing.T) *hardware.Fib {
	t.Helper()

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

func TestRegression_digest(t *testing.T) {
	t.Setenv("FIBULA_HOME", t.TempDir())

	reg := &regression.DigestRegression{Name: "fibonacci", Presses: 2, Notes: "standard sequence"}
	err := regression.RegressAdd(io.Discard, reg)
	test.DemandSuccess(t, err)

	s := &strings.Builder{}
	err = regression.RegressList(s)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s.String(), "[digest] fibonacci presses=2 [standard sequence]"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "Total: 1"))

	// rerunning the test compares against the stored hash
	s.Reset()
	err = regression.RegressRun(s, false, false, nil)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s.String(), "succeed: 000"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "1 succeed, 0 fail"))

	// a clean run leaves nothing for the FAILS keyword to rerun
	s.Reset()
	err = regression.RegressRun(s, false, false, []string{"FAILS"})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s.String(), "no previous fails"))

	s.Reset()
	err = regression.RegressDelete(s, strings.NewReader("y\n"), "0")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s.String(), "deleted test #0"))

	s.Reset()
	err = regression.RegressList(s)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s.String(), "database is empty"))
}

func TestRegression_playback(t *testing.T) {
	t.Setenv("FIBULA_HOME", t.TempDir())

	transcript := filepath.Join(t.TempDir(), "recording")

	// record a short session with a single button press
	fib := newTestFib(t)
	rec, err := recorder.NewRecorder(transcript, fib)
	test.DemandSuccess(t, err)

	runEdges(t, fib, settleEdges)
	test.DemandSuccess(t, fib.Panel.HandleEvent(panel.ButtonSet, true))
	runEdges(t, fib, settleEdges)
	test.DemandSuccess(t, fib.Panel.HandleEvent(panel.ButtonSet, false))
	runEdges(t, fib, settleEdges)
	test.DemandEquality(t, fib.Bar.Lights(), 2)

	test.DemandSuccess(t, rec.End())

	// adding the test replays the transcript and stores a copy of it in the
	// regression scripts directory
	reg := &regression.PlaybackRegression{Script: transcript, Notes: "single press"}
	err = regression.RegressAdd(io.Discard, reg)
	test.DemandSuccess(t, err)
	test.ExpectInequality(t, reg.Script, transcript)

	s := &strings.Builder{}
	err = regression.RegressRun(s, false, false, nil)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s.String(), "succeed: 000 [playback]"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "1 succeed, 0 fail"))
}

func TestRegression_failure(t *testing.T) {
	home := t.TempDir()
	t.Setenv("FIBULA_HOME", home)

	// a database entry with a hash that cannot possibly match
	test.DemandSuccess(t, os.MkdirAll(filepath.Join(home, "regression"), 0700))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(home, "regression", "db"),
		[]byte("000, digest, bad, 1, , 0000000000000000000000000000000000000000\n"), 0600))

	s := &strings.Builder{}
	err := regression.RegressRun(s, true, false, nil)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s.String(), "failure: 000"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "lights hash is"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "0 succeed, 1 fail"))

	// the failed key is remembered and can be rerun with the FAILS keyword
	s.Reset()
	err = regression.RegressRun(s, false, false, []string{"FAILS"})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s.String(), "failure: 000"))
}
