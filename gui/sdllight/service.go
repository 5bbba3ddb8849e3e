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

package sdllight

import (
	"github.com/jetsetilly/fibula/logger"
	"github.com/jetsetilly/fibula/userinput"

	"github.com/veandco/go-sdl2/sdl"
)

// the number of milliseconds Service() waits for an SDL event before giving
// up and completing the iteration
const serviceTimeout = 17

func (scr *SdlLight) setupService() {
	// we do not want mouse motion events. there is nothing in the window
	// that can be pointed at
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)
}

// Service SDL events and repaint the window when required.
//
// MUST ONLY be called from the #mainthread
func (scr *SdlLight) Service() {
	// run any outstanding service functions and feature requests
	select {
	case f := <-scr.service:
		f()
	case r := <-scr.featureSet:
		scr.serviceSetFeature(r)
	case r := <-scr.featureGet:
		scr.serviceGetFeature(r)
	default:
	}

	// wait for an SDL event, timing out so that the service loop keeps
	// turning when nothing is happening. once an event has arrived, drain
	// the queue. servicing a single event per iteration is not enough when
	// events arrive in bursts
	for ev := sdl.WaitEventTimeout(serviceTimeout); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		// close window
		case *sdl.QuitEvent:
			scr.quit()

		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_EXPOSED {
				scr.crit.section.Lock()
				scr.crit.dirty = true
				scr.crit.section.Unlock()
			}

		case *sdl.KeyboardEvent:
			scr.serviceKeyboard(ev)

		case *sdl.MouseButtonEvent:
			if scr.events != nil && ev.Button == sdl.BUTTON_LEFT {
				select {
				case scr.events <- userinput.EventMouseButton{
					Button: userinput.MouseButtonLeft,
					Down:   ev.Type == sdl.MOUSEBUTTONDOWN}:
				default:
					logger.Log(logger.Allow, "sdl", "dropped mouse button event")
				}
			}

		case *sdl.ControllerButtonEvent:
			if scr.events != nil {
				button := userinput.GamepadButtonNone
				switch ev.Button {
				case sdl.CONTROLLER_BUTTON_A:
					button = userinput.GamepadButtonA
				case sdl.CONTROLLER_BUTTON_BACK:
					button = userinput.GamepadButtonBack
				case sdl.CONTROLLER_BUTTON_START:
					button = userinput.GamepadButtonStart
				}

				if button != userinput.GamepadButtonNone {
					select {
					case scr.events <- userinput.EventGamepadButton{
						Button: button,
						Down:   ev.State == sdl.PRESSED}:
					default:
						logger.Log(logger.Allow, "sdl", "dropped gamepad button event")
					}
				}
			}
		}
	}

	scr.render()
}

// forward a quit event to the emulation. without an event channel there is
// nobody to tell.
func (scr *SdlLight) quit() {
	if scr.events == nil {
		logger.Log(logger.Allow, "sdl", "dropped quit event")
		return
	}

	select {
	case scr.events <- userinput.EventQuit{}:
	default:
		logger.Log(logger.Allow, "sdl", "dropped quit event")
	}
}

func (scr *SdlLight) serviceKeyboard(ev *sdl.KeyboardEvent) {
	// keys the GUI handles itself. scale and theme adjustments repeat with
	// the key
	if ev.Type == sdl.KEYDOWN {
		switch ev.Keysym.Sym {
		case sdl.K_ESCAPE:
			if ev.Repeat == 0 {
				scr.quit()
			}
			return
		case sdl.K_PLUS, sdl.K_EQUALS, sdl.K_KP_PLUS:
			scr.cycleTheme(1)
			return
		case sdl.K_MINUS, sdl.K_KP_MINUS:
			scr.cycleTheme(-1)
			return
		case sdl.K_COMMA:
			if err := scr.setWindow(scr.scale - scaleStep); err != nil {
				logger.Log(logger.Allow, "sdl", err.Error())
			}
			return
		case sdl.K_PERIOD:
			if err := scr.setWindow(scr.scale + scaleStep); err != nil {
				logger.Log(logger.Allow, "sdl", err.Error())
			}
			return
		}
	} else {
		// the release of a key the GUI handles itself must not leak to the
		// emulation
		switch ev.Keysym.Sym {
		case sdl.K_ESCAPE, sdl.K_PLUS, sdl.K_EQUALS, sdl.K_KP_PLUS,
			sdl.K_MINUS, sdl.K_KP_MINUS, sdl.K_COMMA, sdl.K_PERIOD:
			return
		}
	}

	if scr.events == nil {
		return
	}

	mod := userinput.KeyModNone
	if sdl.GetModState()&sdl.KMOD_LALT == sdl.KMOD_LALT ||
		sdl.GetModState()&sdl.KMOD_RALT == sdl.KMOD_RALT {
		mod = userinput.KeyModAlt
	} else if sdl.GetModState()&sdl.KMOD_LSHIFT == sdl.KMOD_LSHIFT ||
		sdl.GetModState()&sdl.KMOD_RSHIFT == sdl.KMOD_RSHIFT {
		mod = userinput.KeyModShift
	} else if sdl.GetModState()&sdl.KMOD_LCTRL == sdl.KMOD_LCTRL ||
		sdl.GetModState()&sdl.KMOD_RCTRL == sdl.KMOD_RCTRL {
		mod = userinput.KeyModCtrl
	}

	select {
	case scr.events <- userinput.EventKeyboard{
		Key:    sdl.GetKeyName(ev.Keysym.Sym),
		Down:   ev.Type == sdl.KEYDOWN,
		Mod:    mod,
		Repeat: ev.Repeat != 0}:
	default:
		logger.Log(logger.Allow, "sdl", "dropped keyboard event")
	}
}
