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

// Package lightbar represents the display of the machine: the row of eight
// LEDs wired to the output latch. It is also the machine's timepiece. The
// lightbar counts every clock edge and that count is used whenever some
// other part of the system needs to know what time it is in the simulation.
//
// Forwarding of light changes to the outside world is through the Renderer
// interface. Any number of renderers can be attached. The SDL window is a
// renderer. So is the digest used by the regression tests.
package lightbar

import (
	"fmt"

	"github.com/jetsetilly/fibula/hardware/clocks"
)

// NumLights is the width of the lightbar. One light per bit of the output
// latch.
const NumLights = 8

// Renderer implementations receive the state of the lights whenever it
// changes. The edge argument records when in the simulation the change
// happened.
type Renderer interface {
	SetLights(edge uint64, lights uint8) error
}

// LightBar represents the row of LEDs wired to the machine's output latch.
type LightBar struct {
	lights uint8
	edges  uint64

	renderers []Renderer

	lmtr limiter
}

// NewLightBar is the preferred method of initialisation for the LightBar
// type.
func NewLightBar() *LightBar {
	bar := &LightBar{
		renderers: make([]Renderer, 0),
	}
	bar.lmtr.init()
	return bar
}

// AddRenderer adds an implementation of the Renderer interface to the
// lightbar.
func (bar *LightBar) AddRenderer(r Renderer) {
	bar.renderers = append(bar.renderers, r)
}

// Edge returns the number of clock edges seen since the simulation began.
// The count is monotonic. It survives a machine reset.
func (bar *LightBar) Edge() uint64 {
	return bar.edges
}

// Lights returns the current state of the lights. Bit n of the returned
// value is light n.
func (bar *LightBar) Lights() uint8 {
	return bar.lights
}

// Step the lightbar forward one clock edge with the current state of the
// output latch. Renderers are notified only when the lights change.
func (bar *LightBar) Step(lights uint8) error {
	bar.edges++

	if lights != bar.lights {
		bar.lights = lights
		for _, r := range bar.renderers {
			err := r.SetLights(bar.edges, bar.lights)
			if err != nil {
				return fmt.Errorf("lightbar: %w", err)
			}
		}
	}

	bar.lmtr.step()

	return nil
}

// Reset the lights to dark. The edge count is not touched, it is the wall
// clock of the simulation and keeps going through a machine reset.
func (bar *LightBar) Reset() error {
	if bar.lights != 0 {
		bar.lights = 0
		for _, r := range bar.renderers {
			err := r.SetLights(bar.edges, bar.lights)
			if err != nil {
				return fmt.Errorf("lightbar: %w", err)
			}
		}
	}
	return nil
}

// SetRealtime controls whether the simulation is throttled to the speed of
// the original hardware. With the limiter off the simulation runs as fast
// as the host allows.
func (bar *LightBar) SetRealtime(set bool) {
	bar.lmtr.active = set
}

// ActualRate returns the most recent measurement of simulated clock edges
// per second of host time.
func (bar *LightBar) ActualRate() float32 {
	return bar.lmtr.actualRate()
}

func (bar *LightBar) String() string {
	return fmt.Sprintf("lights=%08b (%d)", bar.lights, bar.lights)
}

// the nominal rate of the simulation for limiting purposes
const nominalRate = float32(clocks.Crystal)
