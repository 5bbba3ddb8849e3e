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

// Package debounce implements the conditioning circuit that sits between the
// advance button and the processor's wake input. A mechanical switch does not
// produce a clean transition. The contacts bounce and a single press can look
// like a burst of presses to logic running at crystal speed.
//
// The debouncer converts each physical press into a single one-edge pulse on
// its Out line. After recognising an edge it goes deaf to the input for a
// fixed settling window, long enough for any bouncing to die down. The window
// is the time taken for a twenty bit timer to wrap, about 42ms at the crystal
// frequency.
//
// Note that the debouncer starts by waiting for the button to be released.
// Nothing happens until the input has been seen low and a full settling
// window has passed. It also means a button held down through a reset does
// not produce a pulse.
package debounce

import (
	"fmt"

	"github.com/jetsetilly/fibula/hardware/clocks"
)

// TimerMask constrains the settle timer to its twenty bit width.
const TimerMask = clocks.DebounceWindow - 1

// State records where the debouncer is in its press/release cycle.
type State int

// List of debouncer states. The debouncer is in the WaitRelease state
// immediately after reset.
const (
	WaitRelease State = iota
	DebounceRelease
	WaitPress
	DebouncePress
)

func (s State) String() string {
	switch s {
	case WaitRelease:
		return "waiting for release"
	case DebounceRelease:
		return "settling release"
	case WaitPress:
		return "waiting for press"
	case DebouncePress:
		return "settling press"
	}
	return "unknown"
}

// Debouncer conditions the raw advance button line into clean one-edge
// pulses.
type Debouncer struct {
	// the sampled state of the physical button. a register driven by the
	// top-level wiring
	RawIn bool

	// Out is high for exactly one edge per recognised press
	Out bool

	// the settle timer. only meaningful in the two settling states
	Timer uint32

	State State

	nextOut   bool
	nextTimer uint32
	nextState State
}

// NewDebouncer is the preferred method of initialisation for the Debouncer
// type.
func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Reset the debouncer to its initial state, waiting for the button to be
// released.
func (deb *Debouncer) Reset() {
	deb.RawIn = false
	deb.Out = false
	deb.Timer = 0
	deb.State = WaitRelease
}

// Pressed is the debouncer's current belief about the button. It reports
// true from the recognition of a press until the recognition of the
// following release.
//
// Immediately after reset the debouncer has seen nothing and assumes the
// button may be down, so Pressed reports true until a release has settled.
func (deb *Debouncer) Pressed() bool {
	return deb.State == DebouncePress || deb.State == WaitRelease
}

// Step computes the debouncer's next state from a snapshot of the current
// state. No registers change until Commit().
func (deb *Debouncer) Step() {
	// the out pulse clears on every edge unless a press is recognised below
	deb.nextOut = false
	deb.nextTimer = deb.Timer
	deb.nextState = deb.State

	switch deb.State {
	case WaitRelease:
		if !deb.RawIn {
			deb.nextTimer = 1
			deb.nextState = DebounceRelease
		}

	case DebounceRelease:
		// the input is ignored while settling. the timer runs from 1 and
		// the state ends on the edge after it wraps, a full window later
		deb.nextTimer = (deb.Timer + 1) & TimerMask
		if deb.Timer == 0 {
			deb.nextState = WaitPress
		}

	case WaitPress:
		if deb.RawIn {
			deb.nextOut = true
			deb.nextTimer = 1
			deb.nextState = DebouncePress
		}

	case DebouncePress:
		deb.nextTimer = (deb.Timer + 1) & TimerMask
		if deb.Timer == 0 {
			deb.nextState = WaitRelease
		}
	}
}

// Commit the values staged by Step().
func (deb *Debouncer) Commit() {
	deb.Out = deb.nextOut
	deb.Timer = deb.nextTimer
	deb.State = deb.nextState
}

func (deb *Debouncer) String() string {
	raw := "released"
	if deb.RawIn {
		raw = "pressed"
	}
	return fmt.Sprintf("%s (raw %s, timer %06x)", deb.State, raw, deb.Timer)
}
