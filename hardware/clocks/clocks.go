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

// Package clocks defines the clock values for the Fib-1 machine. All values
// are in units of Hz or clock edges.
package clocks

const (
	// the crystal on the board. every register in the design updates on the
	// edges of this clock
	Crystal = 25000000

	// the processor is enabled on alternating edges by the step divider
	StepDivider = 2

	// the effective instruction stepping rate of the processor
	Processor = Crystal / StepDivider

	// the number of edges the debounce timer must count before the input is
	// considered settled. the duration of the window in wall-clock terms is
	// DebounceWindow/Crystal, about 42ms
	DebounceWindow = 1 << 20
)
