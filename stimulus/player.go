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

	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/panel"
)

// Player feeds a stimulus to the machine's panel, edge by edge, from inside
// the run loop. It implements the panel.EventPlayback interface.
type Player struct {
	stim *Stimulus
	fib  *hardware.Fib

	segCt int

	// the edge at which the current segment ends, relative to origin
	boundary uint64

	// the waveform begins at the machine edge current at the time of
	// attachment. unlike a recording transcript a stimulus carries no state
	// expectations so the machine is not reset
	origin uint64

	ended bool
}

// NewPlayer is the preferred method of initialisation for the Player type.
func NewPlayer(stim *Stimulus) (*Player, error) {
	if stim == nil || len(stim.segments) == 0 {
		return nil, fmt.Errorf("stimulus: nothing to play")
	}
	return &Player{stim: stim}, nil
}

// AttachToFib attaches the player to the machine's panel. The waveform
// starts at the current machine edge.
func (ply *Player) AttachToFib(fib *hardware.Fib) error {
	if fib == nil || fib.Bar == nil {
		return fmt.Errorf("stimulus: no machine available")
	}

	ply.fib = fib
	ply.origin = fib.Bar.Edge()
	ply.segCt = 0
	ply.boundary = 0
	ply.ended = false

	fib.Panel.AttachPlayback(ply)

	return nil
}

// Ended returns true once the waveform has been played in full.
func (ply *Player) Ended() bool {
	return ply.ended
}

// GetPlayback implements the panel.EventPlayback interface. The button line
// is left in the released position when the waveform runs out.
func (ply *Player) GetPlayback() (panel.Event, panel.EventData, error) {
	if ply.fib == nil {
		return panel.NoEvent, nil, fmt.Errorf("stimulus: not attached to a machine")
	}

	if ply.ended {
		return panel.NoEvent, nil, nil
	}

	curr := ply.fib.Bar.Edge() - ply.origin

	// nothing to do until the current segment has run its course
	if curr < ply.boundary {
		return panel.NoEvent, nil, nil
	}

	if ply.segCt >= len(ply.stim.segments) {
		ply.ended = true
		return panel.ButtonSet, false, nil
	}

	seg := ply.stim.segments[ply.segCt]
	ply.segCt++
	ply.boundary += seg.edges

	return panel.ButtonSet, seg.level, nil
}
