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

package userinput

// Event represents the supported events that can be sent over the userinput
// channel. Implementations of this interface are described in this package.
type Event interface{}

// EventQuit is sent when a quit request is made by the user. For example,
// closing the GUI window.
type EventQuit struct{}

// KeyMod identifies the modifier key held at the time of an EventKeyboard.
type KeyMod int

// List of valid KeyMod values.
const (
	KeyModNone KeyMod = iota
	KeyModShift
	KeyModCtrl
	KeyModAlt
)

// EventKeyboard is the data from a keyboard event. Key names are the
// conventional names for the key and not scan codes.
type EventKeyboard struct {
	Key  string
	Down bool
	Mod  KeyMod

	// Repeat is true if the event is a key repeat rather than a fresh press.
	// the physical button line is level sensitive so repeats carry no new
	// information
	Repeat bool
}

// MouseButton identifies the mouse button in an EventMouseButton.
type MouseButton int

// List of valid MouseButton values.
const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// EventMouseButton is the data from a mouse button event.
type EventMouseButton struct {
	Button MouseButton
	Down   bool
}

// GamepadButton identifies the button in an EventGamepadButton.
type GamepadButton int

// List of valid GamepadButton values.
const (
	GamepadButtonNone GamepadButton = iota
	GamepadButtonStart
	GamepadButtonBack
	GamepadButtonA
)

// EventGamepadButton is the data from a gamepad button event.
type EventGamepadButton struct {
	Button GamepadButton
	Down   bool
}
