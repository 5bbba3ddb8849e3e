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

// Package panel represents the physical controls of the machine: the advance
// button, the reset button and the power switch.
//
// The panel is the meeting point of user input and the simulated hardware.
// Input sources (the GUI, the debugger, a playback file, a stimulus
// waveform) post events with HandleEvent() or through an attached
// EventPlayback. The machine reads the resulting state of the Button line
// when it samples the panel every edge.
package panel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPowerOff is returned by HandleEvent() when the power switch is used.
// It is not an error condition so much as a signal for the running machine
// to stop.
var ErrPowerOff = errors.New("machine has been powered off")

// Panel represents the machine's physical controls.
type Panel struct {
	// the state of the advance button. true means held down. the top-level
	// wiring samples this line into the debouncer every edge
	Button bool

	reset bool

	playback EventPlayback
	recorder []EventRecorder
}

// NewPanel is the preferred method of initialisation for the Panel type.
func NewPanel() *Panel {
	return &Panel{
		recorder: make([]EventRecorder, 0),
	}
}

// Reset releases the advance button. Attached playbacks and recorders
// survive a reset.
func (pan *Panel) Reset() {
	pan.Button = false
	pan.reset = false
}

// ResetPending returns true if a reset button event has been received since
// the last call. The pending state is consumed by the call.
func (pan *Panel) ResetPending() bool {
	r := pan.reset
	pan.reset = false
	return r
}

// HandleEvent applies an event to the panel and mirrors it to any attached
// event recorders.
func (pan *Panel) HandleEvent(event Event, value EventData) error {
	switch event {
	case NoEvent:
		return nil

	case ButtonSet:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("panel: unexpected data for %v event (%T)", event, value)
		}
		pan.Button = b

	case MachineReset:
		pan.reset = true

	case PowerOff:
		return ErrPowerOff

	default:
		return fmt.Errorf("panel: unsupported event (%v)", event)
	}

	for _, r := range pan.recorder {
		err := r.RecordEvent(event, value)
		if err != nil {
			return fmt.Errorf("panel: %w", err)
		}
	}

	return nil
}

// HandlePlaybackEvents requests events from the attached playback source
// until it has nothing more for the current machine edge.
func (pan *Panel) HandlePlaybackEvents() error {
	if pan.playback == nil {
		return nil
	}

	// there may be more than one event due at the same edge
	for {
		ev, v, err := pan.playback.GetPlayback()
		if err != nil {
			return err
		}
		if ev == NoEvent {
			return nil
		}
		err = pan.HandleEvent(ev, v)
		if err != nil {
			return err
		}
	}
}

// AttachPlayback attaches an EventPlayback implementation. An attachment of
// nil removes any existing playback.
func (pan *Panel) AttachPlayback(b EventPlayback) {
	pan.playback = b
}

// AttachEventRecorder attaches an EventRecorder implementation. More than
// one recorder can be attached at once.
func (pan *Panel) AttachEventRecorder(r EventRecorder) {
	pan.recorder = append(pan.recorder, r)
}

// ClearEventRecorders removes all attached event recorders.
func (pan *Panel) ClearEventRecorders() {
	pan.recorder = pan.recorder[:0]
}

func (pan *Panel) String() string {
	s := strings.Builder{}
	s.WriteString("button=")
	if pan.Button {
		s.WriteString("held")
	} else {
		s.WriteString("no")
	}
	return s.String()
}
