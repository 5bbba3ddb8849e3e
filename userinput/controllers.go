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

import (
	"github.com/jetsetilly/fibula/hardware/panel"
)

// Controllers keeps track of hardware userinput options.
type Controllers struct {
	// whether or not the last HandleUserInput() was for an event that was
	// consumed by the machine as an input
	LastKeyHandled bool

	// is true if last event was consumed by the simulated panel
	HandledByMachine bool

	// is true if last event was a quit event
	Quit bool
}

func (c *Controllers) mouseButton(ev EventMouseButton, handle HandleInput) error {
	var err error

	switch ev.Button {
	case MouseButtonLeft:
		err = handle.HandleEvent(panel.ButtonSet, ev.Down)
		if ev.Down {
			c.HandledByMachine = true
		}
	}

	return err
}

func (c *Controllers) keyboard(ev EventKeyboard, handle HandleInput) error {
	var err error

	// the button line is level sensitive. a repeat event would assert a level
	// that is already asserted
	if ev.Repeat {
		c.LastKeyHandled = false
		return nil
	}

	// by default we'll say the key has been handled, unless specified otherwise
	c.LastKeyHandled = true

	if ev.Down && ev.Mod == KeyModNone {
		switch ev.Key {
		// panel
		case "F2":
			err = handle.HandleEvent(panel.MachineReset, nil)
			c.HandledByMachine = true

		// the advance button
		case "Space":
			err = handle.HandleEvent(panel.ButtonSet, true)
			c.HandledByMachine = true

		default:
			c.LastKeyHandled = false
		}
	} else {
		switch ev.Key {
		// the advance button
		case "Space":
			err = handle.HandleEvent(panel.ButtonSet, false)

		default:
			c.LastKeyHandled = false
		}
	}

	return err
}

func (c *Controllers) gamepadButton(ev EventGamepadButton, handle HandleInput) error {
	switch ev.Button {
	case GamepadButtonStart:
		if ev.Down {
			c.HandledByMachine = true
			return handle.HandleEvent(panel.MachineReset, nil)
		}
	case GamepadButtonA:
		c.HandledByMachine = true
		return handle.HandleEvent(panel.ButtonSet, ev.Down)
	}
	return nil
}

// HandleUserInput deciphers the Event and forwards the input to the machine's
// panel.
func (c *Controllers) HandleUserInput(ev Event, handle HandleInput) error {
	c.Quit = false
	c.HandledByMachine = false

	var err error
	switch ev := ev.(type) {
	case EventQuit:
		c.Quit = true
	case EventKeyboard:
		err = c.keyboard(ev, handle)
	case EventMouseButton:
		err = c.mouseButton(ev, handle)
	case EventGamepadButton:
		err = c.gamepadButton(ev, handle)
	default:
	}

	return err
}
