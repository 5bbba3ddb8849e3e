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

package stimulus

import (
	"math/rand"

	"github.com/jetsetilly/fibula/hardware/clocks"
)

// SynthesizeOpts controls the shape of a synthesized press and release
// train.
type SynthesizeOpts struct {
	// edges of silence before the first press. should be at least one
	// debounce window so the machine has settled from power-on
	LeadInEdges uint64

	// edges the button rests in the pressed and released positions, not
	// counting bounce. both must comfortably exceed the debounce window or
	// the press will never register
	HoldEdges    uint64
	ReleaseEdges uint64

	// contact bounce. every transition is preceded by up to MaxBounces
	// glitches of up to MaxBounceEdges each. glitches must be shorter than
	// the debounce window or they stop being glitches
	MaxBounces     int
	MaxBounceEdges uint64
}

// DefaultSynthesizeOpts returns options modelled on a thumb on a tactile
// switch: a fifth of a second in each position and bounce bursts well
// inside the debounce window.
func DefaultSynthesizeOpts() SynthesizeOpts {
	return SynthesizeOpts{
		LeadInEdges:    clocks.DebounceWindow + (clocks.DebounceWindow / 2),
		HoldEdges:      clocks.Crystal / 5,
		ReleaseEdges:   clocks.Crystal / 5,
		MaxBounces:     8,
		MaxBounceEdges: clocks.DebounceWindow / 64,
	}
}

// Synthesize generates a press and release train for the button line. Each
// transition arrives with a burst of contact bounce, the way a real switch
// misbehaves.
//
// The rnd argument is the source of the bounce pattern. Tests that want a
// reproducible waveform should supply a deterministically seeded source. A
// nil rnd means no bounce at all: every press and release is clean.
func Synthesize(rnd *rand.Rand, presses int, opts SynthesizeOpts) *Stimulus {
	stim := &Stimulus{}

	stim.append(false, opts.LeadInEdges)

	for i := 0; i < presses; i++ {
		bounce(rnd, stim, opts, true)
		stim.append(true, opts.HoldEdges)
		bounce(rnd, stim, opts, false)
		stim.append(false, opts.ReleaseEdges)
	}

	return stim
}

// a burst of glitches before the line comes to rest at the level.
func bounce(rnd *rand.Rand, stim *Stimulus, opts SynthesizeOpts, level bool) {
	if rnd == nil || opts.MaxBounces <= 0 || opts.MaxBounceEdges == 0 {
		return
	}

	n := rnd.Intn(opts.MaxBounces + 1)
	for i := 0; i < n; i++ {
		stim.append(level, 1+uint64(rnd.Int63n(int64(opts.MaxBounceEdges))))
		stim.append(!level, 1+uint64(rnd.Int63n(int64(opts.MaxBounceEdges))))
	}
}
