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

package lightbar

import (
	"sync/atomic"
	"time"
)

// the limiter works in quanta rather than individual edges. blocking on a
// ticker twenty five million times a second is not practical so the
// simulation is released in bursts, each burst being ten milliseconds of
// simulated time.
const quantaPerSecond = 100

type limiter struct {
	// whether to wait on the pulse at the end of each quantum
	active bool

	// number of edges in a quantum and the progress through the current one
	quantum int
	count   int

	// pulse that performs the limiting
	pulse *time.Ticker

	// measurement of the actual simulation rate
	measureCt      int
	measureTime    time.Time
	measuringPulse *time.Ticker
	actual         atomic.Value // float32
}

func (lmtr *limiter) init() {
	lmtr.active = true
	lmtr.quantum = int(nominalRate) / quantaPerSecond
	lmtr.pulse = time.NewTicker(time.Second / quantaPerSecond)
	lmtr.measureTime = time.Now()
	lmtr.measuringPulse = time.NewTicker(time.Second)
	lmtr.actual.Store(float32(0))
}

// step is called on every clock edge. almost every call does nothing more
// than increment the counters.
func (lmtr *limiter) step() {
	lmtr.count++
	lmtr.measureCt++
	if lmtr.count < lmtr.quantum {
		return
	}
	lmtr.count = 0

	if lmtr.active {
		<-lmtr.pulse.C
	}

	lmtr.measureActual()
}

// measures the simulation rate on every tick of the measuringPulse ticker.
// called once per quantum, never per edge. checking the pulse channel is
// itself expensive.
func (lmtr *limiter) measureActual() {
	select {
	case <-lmtr.measuringPulse.C:
		t := time.Now()
		actual := float32(lmtr.measureCt) / float32(t.Sub(lmtr.measureTime).Seconds())
		lmtr.actual.Store(actual)
		lmtr.measureTime = t
		lmtr.measureCt = 0
	default:
	}
}

func (lmtr *limiter) actualRate() float32 {
	return lmtr.actual.Load().(float32)
}
