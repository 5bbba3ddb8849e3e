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

package hardware

// Step the machine forward one edge of the crystal clock.
//
// The edge is simulated in two phases. First every component computes its
// next state from a snapshot of the current state of everything else. Then
// every register takes its new value at once. This is what makes the
// simulation honest about simultaneity. No component can see another
// component's new value during the edge on which it changes.
func (fib *Fib) Step() error {
	// events from an attached playback that are due at this point in the
	// simulation are applied before the edge
	err := fib.Panel.HandlePlaybackEvents()
	if err != nil {
		return err
	}

	// a reset request from the panel is a power cycle, not a clocked signal
	if fib.Panel.ResetPending() {
		err = fib.Reset()
		if err != nil {
			return err
		}
	}

	// phase one
	fib.Mem.Step()
	fib.Regs.Step()
	fib.Proc.Step()
	fib.Deb.Step()

	// the top-level wiring is registered too. the processor's enable input
	// follows the divider, the divider toggles, the wake input follows the
	// debouncer's out line and the debouncer samples the panel button
	fib.nextEnable = fib.divider
	fib.nextWakeIn = fib.Deb.Out
	fib.nextRawIn = fib.Panel.Button

	// phase two
	fib.Mem.Commit()
	fib.Regs.Commit()
	fib.Proc.Commit()
	fib.Deb.Commit()

	fib.Proc.Enable = fib.nextEnable
	fib.divider = !fib.divider
	fib.Proc.WakeIn = fib.nextWakeIn
	fib.Deb.RawIn = fib.nextRawIn

	// the lights are wired to the output latch with nothing in between
	err = fib.Bar.Step(fib.Proc.Out)
	if err != nil {
		return err
	}

	if fib.probe != nil {
		fib.probe(fib.Bar.Edge(), fib.Deb.RawIn, fib.Deb.Pressed())
	}

	return nil
}
