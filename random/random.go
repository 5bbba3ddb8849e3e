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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Clock defines the time source that random numbers are seeded from. The
// lightbar of the emulated machine satisfies this interface.
type Clock interface {
	// the number of clock edges seen since the machine was powered on
	Edge() uint64
}

// Random is a random number generator that is sensitive to time within the
// emulation. The same number is returned for the same point in the
// emulation's lifetime, which keeps parallel emulations in agreement.
type Random struct {
	clock Clock

	// use a zero base seed rather than the randomised one. the sequence of
	// numbers then depends only on the emulation clock, which is useful
	// whenever random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
	}
}

// new RNG from the standard library, seeded from the emulation clock
func (rnd *Random) rand() *rand.Rand {
	seed := int64(rnd.clock.Edge())
	if !rnd.ZeroSeed {
		seed += baseSeed
	}
	return rand.New(rand.NewSource(seed))
}

// Intn returns a random number between 0 and n.
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}

// Int63 returns a random 63-bit integer. Useful as a seed for a longer lived
// sequence of random numbers.
func (rnd *Random) Int63() int64 {
	return rnd.rand().Int63()
}
