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

package panel

// Event represents the actions that can be performed at the machine's
// panel.
type Event string

// List of defined events.
const (
	NoEvent Event = "NoEvent" // nil

	// the advance button. the value is the new state of the physical line,
	// true for held down
	ButtonSet Event = "Button" // bool

	// the reset button
	MachineReset Event = "Reset" // nil

	// the power switch
	PowerOff Event = "PowerOff" // nil
)

// EventData is the value associated with the event. The underlying type
// should be restricted to bool, float32 or int. This makes life easier for
// playback file parsers. For the same reason the strings "true" and "false"
// should never appear as event data.
type EventData any

// EventPlayback implementations feed events to the panel on request.
//
// Intended for the playback of events previously recorded to a file but
// usable for other purposes. The stimulus package for example uses it to
// drive the button from an audio waveform.
type EventPlayback interface {
	// GetPlayback returns NoEvent if there is nothing due at the current
	// machine edge
	GetPlayback() (Event, EventData, error)
}

// EventRecorder implementations mirror an incoming event.
type EventRecorder interface {
	RecordEvent(Event, EventData) error
}
