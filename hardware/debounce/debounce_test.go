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

package debounce_test

import (
	"testing"

	"github.com/jetsetilly/fibula/hardware/clocks"
	"github.com/jetsetilly/fibula/hardware/debounce"
	"github.com/jetsetilly/fibula/test"
)

func edge(deb *debounce.Debouncer, raw bool) {
	deb.RawIn = raw
	deb.Step()
	deb.Commit()
}

// run the debouncer for the given number of edges with the raw line held at
// a level, returning the number of pulses seen on the out line
func run(deb *debounce.Debouncer, raw bool, edges int) int {
	pulses := 0
	for i := 0; i < edges; i++ {
		edge(deb, raw)
		if deb.Out {
			pulses++
		}
	}
	return pulses
}

// arm takes a freshly reset debouncer through the release settling window,
// leaving it waiting for a press
func arm(t *testing.T, deb *debounce.Debouncer) {
	t.Helper()
	test.ExpectEquality(t, run(deb, false, clocks.DebounceWindow+1), 0)
	test.ExpectEquality(t, deb.State, debounce.WaitPress)
}

func TestArming(t *testing.T) {
	deb := debounce.NewDebouncer()

	// a button held down from reset keeps the debouncer waiting
	test.ExpectEquality(t, run(deb, true, 100), 0)
	test.ExpectEquality(t, deb.State, debounce.WaitRelease)
	test.ExpectSuccess(t, deb.Pressed())

	// the release starts the settling window
	edge(deb, false)
	test.ExpectEquality(t, deb.State, debounce.DebounceRelease)

	// the window is exactly one full wrap of the timer
	test.ExpectEquality(t, run(deb, false, clocks.DebounceWindow-1), 0)
	test.ExpectEquality(t, deb.State, debounce.DebounceRelease)
	edge(deb, false)
	test.ExpectEquality(t, deb.State, debounce.WaitPress)
	test.ExpectSuccess(t, !deb.Pressed())
}

func TestPulseWidth(t *testing.T) {
	deb := debounce.NewDebouncer()
	arm(t, deb)

	// a recognised press produces a pulse exactly one edge wide
	edge(deb, true)
	test.ExpectSuccess(t, deb.Out)
	test.ExpectEquality(t, deb.State, debounce.DebouncePress)
	test.ExpectSuccess(t, deb.Pressed())
	edge(deb, true)
	test.ExpectSuccess(t, !deb.Out)
}

func TestGlitchRejection(t *testing.T) {
	deb := debounce.NewDebouncer()
	edge(deb, false)
	test.ExpectEquality(t, deb.State, debounce.DebounceRelease)

	// the raw line toggling on every edge is the worst bounce imaginable.
	// none of it reaches the out line and none of it stretches the window
	for i := 0; i < clocks.DebounceWindow-1; i++ {
		edge(deb, i%2 == 0)
		test.ExpectSuccess(t, !deb.Out)
	}
	test.ExpectEquality(t, deb.State, debounce.DebounceRelease)
	edge(deb, false)
	test.ExpectEquality(t, deb.State, debounce.WaitPress)
}

func TestBouncyPress(t *testing.T) {
	deb := debounce.NewDebouncer()
	arm(t, deb)

	// the first high sample is recognised
	edge(deb, true)
	test.ExpectSuccess(t, deb.Out)

	// contact bounce after the press is swallowed by the settling window
	pulses := 0
	for i := 0; i < clocks.DebounceWindow; i++ {
		edge(deb, i%3 == 0)
		if deb.Out {
			pulses++
		}
	}
	test.ExpectEquality(t, pulses, 0)
	test.ExpectEquality(t, deb.State, debounce.WaitRelease)
}

func TestHeldThroughWindow(t *testing.T) {
	deb := debounce.NewDebouncer()
	edge(deb, false)

	// a press during the release window is not forgotten so much as not yet
	// looked at. if the button is still down when the window closes the
	// pulse follows immediately
	test.ExpectEquality(t, run(deb, true, clocks.DebounceWindow), 0)
	test.ExpectEquality(t, deb.State, debounce.WaitPress)
	edge(deb, true)
	test.ExpectSuccess(t, deb.Out)
}

func TestRepeatedPresses(t *testing.T) {
	deb := debounce.NewDebouncer()
	arm(t, deb)

	pulses := 0
	for press := 0; press < 3; press++ {
		// press and hold through the press window
		pulses += run(deb, true, clocks.DebounceWindow+1)
		test.ExpectEquality(t, deb.State, debounce.WaitRelease)

		// release and hold through the release window
		pulses += run(deb, false, clocks.DebounceWindow+1)
		test.ExpectEquality(t, deb.State, debounce.WaitPress)
	}
	test.ExpectEquality(t, pulses, 3)
}

func TestReset(t *testing.T) {
	deb := debounce.NewDebouncer()
	arm(t, deb)
	edge(deb, true)
	test.ExpectSuccess(t, deb.Out)

	deb.Reset()
	test.ExpectEquality(t, deb.State, debounce.WaitRelease)
	test.ExpectSuccess(t, !deb.Out)
	test.ExpectEquality(t, deb.Timer, 0)

	// the debouncer needs arming again after a reset
	test.ExpectEquality(t, run(deb, true, 100), 0)
	test.ExpectEquality(t, deb.State, debounce.WaitRelease)
}
