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

package playmode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/clocks"
	"github.com/jetsetilly/fibula/hardware/panel"
	"github.com/jetsetilly/fibula/stimulus"
	"github.com/jetsetilly/fibula/test"
)

func TestPlay_optionScreening(t *testing.T) {
	t.Setenv("FIBULA_HOME", t.TempDir())

	// these combinations are rejected before the machine or the GUI is
	// touched, which is why a nil window is fine here
	err := Play(nil, "transcript", true, "", "", 0, false)
	test.ExpectFailure(t, err)

	err = Play(nil, "transcript", false, "stim.wav", "", 0, false)
	test.ExpectFailure(t, err)

	// a recording transcript handed to the -stimulus option
	path := filepath.Join(t.TempDir(), "transcript")
	err = os.WriteFile(path, []byte("fibula recording\nv1.0\nabcdef\n"), 0644)
	test.DemandSuccess(t, err)

	err = Play(nil, "", false, path, "", 0, false)
	test.ExpectFailure(t, err)
}

func TestBouncedInput(t *testing.T) {
	t.Setenv("FIBULA_HOME", t.TempDir())

	fib, err := hardware.NewFib(environment.Testbench, nil, nil)
	test.DemandSuccess(t, err)
	fib.Env.Normalise()
	test.DemandSuccess(t, fib.Env.Prefs.Realtime.Set(false))
	test.DemandSuccess(t, fib.Env.Prefs.BounceSeed.Set(3))

	bnc := stimulus.NewBouncer(fib.Env, stimulus.DefaultSynthesizeOpts())
	test.DemandSuccess(t, bnc.AttachToFib(fib))

	w := &bouncedInput{pan: fib.Panel, bnc: bnc}

	// power-on settling before any input
	test.DemandSuccess(t, fib.RunForEdges(clocks.DebounceWindow+200, nil))
	test.ExpectEquality(t, fib.Bar.Lights(), 1)

	// button events are diverted to the bounce synthesiser rather than
	// applied to the panel directly
	test.DemandSuccess(t, w.HandleEvent(panel.ButtonSet, true))
	test.ExpectEquality(t, fib.Panel.Button, false)

	// but the machine sees the press once it has run through the panel's
	// playback slot. the hold time allows for the worst case bounce span
	// and the settling window that follows recognition
	hold := clocks.DebounceWindow + (clocks.DebounceWindow / 2)
	test.DemandSuccess(t, fib.RunForEdges(hold, nil))
	test.DemandSuccess(t, w.HandleEvent(panel.ButtonSet, false))
	test.DemandSuccess(t, fib.RunForEdges(hold, nil))
	test.ExpectEquality(t, fib.Bar.Lights(), 2)

	// every other event type passes straight through to the panel
	test.DemandSuccess(t, w.HandleEvent(panel.MachineReset, nil))
	test.ExpectSuccess(t, fib.Panel.ResetPending())

	test.ExpectFailure(t, w.HandleEvent(panel.ButtonSet, "held"))
}
