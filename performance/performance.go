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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/fibula/debugger/govern"
	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware"
)

// sentinel error returned by the Run() loop when the measurement period has
// elapsed.
var timedOut = errors.New("performance timed out")

// Check the performance of the simulation.
//
// The machine runs headless for the specified duration and the achieved edge
// rate is reported against the crystal frequency of the real hardware. A
// cpu or memory profile (or both) is created as defined by the Profile
// argument.
func Check(output io.Writer, profile Profile, uncapped bool, duration string) error {
	fib, err := hardware.NewFib(environment.Performance, nil, nil)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	if uncapped {
		err = fib.Env.Prefs.Realtime.Set(false)
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
	}

	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	// starting edge count (should be 0)
	startEdge := fib.Bar.Edge()

	// run for specified period of time
	runner := func() error {
		// the channel signals twice. false at the end of the leadtime and
		// true at the end of the measurement period
		timerChan := make(chan bool)

		// a two second leadtime gives the limiter and the go runtime time to
		// settle down before measurement begins
		go func() {
			time.AfterFunc(2*time.Second, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		// checking the timer channel is relatively expensive so it is looked
		// at only once every PerformanceBrake edges
		performanceBrake := 0

		err := fib.Run(func() (govern.State, error) {
			performanceBrake++
			if performanceBrake >= hardware.PerformanceBrake {
				performanceBrake = 0

				select {
				case v := <-timerChan:
					if v {
						return govern.Ending, timedOut
					}

					// the leadtime has concluded. measurement starts here
					startEdge = fib.Bar.Edge()
				default:
				}
			}

			return govern.Running, nil
		})

		// the timeout is how the run is supposed to end. swallowing it here
		// means the profiler still writes any requested memory profile
		if err != nil && !errors.Is(err, timedOut) {
			return err
		}

		return nil
	}

	// launch runner directly or through the profiler, depending on supplied
	// arguments
	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	numEdges := fib.Bar.Edge() - startEdge
	eps, accuracy := CalcEPS(numEdges, dur.Seconds())
	fmt.Fprintf(output, "%.2fM edges/sec (%d edges in %.2f seconds) %.1f%%\n", eps/1e6, numEdges, dur.Seconds(), accuracy)

	return nil
}
