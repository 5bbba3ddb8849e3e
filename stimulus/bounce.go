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
	"fmt"
	"math/rand"

	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/panel"
)

// Bouncer wraps live button transitions in synthesized contact bounce,
// imitating the switch that the GUI button stands in for. It implements the
// panel.EventPlayback interface.
//
// A transition is posted with Post() and unrolls over the following edges
// as a burst of glitches before the line comes to rest. A transition posted
// while an earlier one is still bouncing replaces the remainder of that
// bounce. Only the MaxBounces and MaxBounceEdges fields of the
// SynthesizeOpts are used.
type Bouncer struct {
	fib  *hardware.Fib
	opts SynthesizeOpts

	rnd *rand.Rand

	// the scheduled levels for the line. entries are in edge order
	queue []bounceSeg
}

type bounceSeg struct {
	// the machine edge at which the line takes the level
	at uint64

	level bool
}

// NewBouncer is the preferred method of initialisation for the Bouncer
// type. The bounce pattern is seeded from the input.bounceseed preference,
// or from the emulation clock when the preference is zero.
func NewBouncer(env *environment.Environment, opts SynthesizeOpts) *Bouncer {
	seed := int64(env.Prefs.BounceSeed.Get().(int))
	if seed == 0 {
		seed = env.Random.Int63()
	}

	return &Bouncer{
		opts: opts,
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

// AttachToFib attaches the bouncer to the machine's panel.
func (bnc *Bouncer) AttachToFib(fib *hardware.Fib) error {
	if fib == nil || fib.Bar == nil {
		return fmt.Errorf("stimulus: no machine available")
	}

	bnc.fib = fib
	bnc.queue = bnc.queue[:0]

	fib.Panel.AttachPlayback(bnc)

	return nil
}

// Post a transition of the button line. The transition reaches the panel
// over the following edges, glitches first. Post() must be called from the
// run loop's continue check, never concurrently with the running machine.
func (bnc *Bouncer) Post(level bool) {
	at := bnc.fib.Bar.Edge()

	bnc.queue = bnc.queue[:0]

	n := 0
	if bnc.opts.MaxBounces > 0 && bnc.opts.MaxBounceEdges > 0 {
		n = bnc.rnd.Intn(bnc.opts.MaxBounces + 1)
	}

	for i := 0; i < n; i++ {
		bnc.queue = append(bnc.queue, bounceSeg{at: at, level: level})
		at += 1 + uint64(bnc.rnd.Int63n(int64(bnc.opts.MaxBounceEdges)))
		bnc.queue = append(bnc.queue, bounceSeg{at: at, level: !level})
		at += 1 + uint64(bnc.rnd.Int63n(int64(bnc.opts.MaxBounceEdges)))
	}

	bnc.queue = append(bnc.queue, bounceSeg{at: at, level: level})
}

// GetPlayback implements the panel.EventPlayback interface.
func (bnc *Bouncer) GetPlayback() (panel.Event, panel.EventData, error) {
	if len(bnc.queue) == 0 {
		return panel.NoEvent, nil, nil
	}

	if bnc.fib.Bar.Edge() < bnc.queue[0].at {
		return panel.NoEvent, nil, nil
	}

	seg := bnc.queue[0]
	bnc.queue = bnc.queue[1:]

	return panel.ButtonSet, seg.level, nil
}
