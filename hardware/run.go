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

import (
	"fmt"

	"github.com/jetsetilly/fibula/debugger/govern"
)

// The continueCheck() function passed to Run() is called on every edge and
// there are twenty five million edges in a second of simulated time. A full
// continue check that often would dominate the simulation.
//
// PerformanceBrake is a standard value that can be used to filter out
// expensive code paths within a continueCheck() implementation. It is one
// millisecond of simulated time. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if endCondition {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 25000

// Run sets the simulation running as quickly as the lightbar's limiter
// allows. continueCheck() is consulted on every edge.
func (fib *Fib) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	state := govern.Running

	var err error

	for state != govern.Ending {
		switch state {
		case govern.Running:
			err = fib.Step()
			if err != nil {
				return err
			}
		case govern.Paused:
		default:
			return fmt.Errorf("fib: unsupported simulation state (%s) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForEdges sets the simulation running for the specified number of clock
// edges. Useful for the performance and regression tests. Not used by the
// debugger because breakpoints and traps are more flexible.
func (fib *Fib) RunForEdges(numEdges int, continueCheck func(edge uint64) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(_ uint64) (govern.State, error) { return govern.Running, nil }
	}

	target := fib.Bar.Edge() + uint64(numEdges)

	state := govern.Running
	for fib.Bar.Edge() != target && state != govern.Ending {
		err := fib.Step()
		if err != nil {
			return err
		}

		state, err = continueCheck(fib.Bar.Edge())
		if err != nil {
			return err
		}
	}

	return nil
}
