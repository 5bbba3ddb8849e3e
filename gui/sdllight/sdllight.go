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
	"fmt"
	"runtime"
	"sync"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/fibula/debugger/govern"
	"github.com/jetsetilly/fibula/gui"
	"github.com/jetsetilly/fibula/hardware/lightbar"
	"github.com/jetsetilly/fibula/hardware/panel"
	"github.com/jetsetilly/fibula/logger"
	"github.com/jetsetilly/fibula/userinput"
	"github.com/jetsetilly/fibula/version"

	"github.com/veandco/go-sdl2/sdl"
)

// layout measurements expressed in multiples of the size of one light. the
// window is sized from these by the scale value.
const (
	layoutMargin      = 0.25
	layoutGap         = 0.25
	layoutButtonStrip = 0.25

	// width and height of the entire window
	layoutW = layoutMargin + lightbar.NumLights + (lightbar.NumLights-1)*layoutGap + layoutMargin
	layoutH = layoutMargin + 1.0 + layoutGap + layoutButtonStrip + layoutMargin
)

// the smallest scale that produces a usable window
const minScale = 10.0

// fields in the crit struct are written by the emulation goroutine and read
// by the rendering thread. use the section mutex.
type crit struct {
	section sync.Mutex

	// state of the lights as reported by the lightbar
	lights uint8

	// state of the physical button line as seen by the panel
	button bool

	// whether the window content needs redrawing
	dirty bool
}

// SdlLight is a lightweight SDL implementation of the gui.GUI interface.
type SdlLight struct {
	window    *sdl.Window
	glContext sdl.GLContext

	prefs *preferences

	// index into the themes array. only ever changed in the rendering thread
	theme int

	// the size of one light in pixels
	scale float32

	// the mode the simulation is running in. used to decorate the window
	// title
	mode govern.Mode

	// the channel to which user input is forwarded. set with the
	// ReqSetEventChan feature request. input is swallowed while nil
	events chan userinput.Event

	// functions that must run in the main thread are queued on the service
	// channel and run by Service()
	service chan func()

	// SetFeature() and GetFeature() hand requests over to these channels for
	// servicing in the main thread
	featureSet     chan featureRequest
	featureSetErr  chan error
	featureGet     chan featureRequest
	featureGetData chan gui.FeatureReqData
	featureGetErr  chan error

	// gamepads opened at startup. closed again on Destroy()
	gamepads []*sdl.GameController

	crit crit
}

// NewSdlLight is the preferred method of initialisation for the SdlLight
// type.
//
// MUST ONLY be called from the #mainthread.
func NewSdlLight() (*SdlLight, error) {
	scr := &SdlLight{
		service:        make(chan func(), 1),
		featureSet:     make(chan featureRequest, 1),
		featureSetErr:  make(chan error, 1),
		featureGet:     make(chan featureRequest, 1),
		featureGetData: make(chan gui.FeatureReqData, 1),
		featureGetErr:  make(chan error, 1),
	}

	// the SDL package calls LockOSThread() but we call it here too. it can't
	// hurt and we never unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_EVERYTHING)
	if err != nil {
		return nil, fmt.Errorf("sdllight: %w", err)
	}

	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	if err != nil {
		return nil, fmt.Errorf("sdllight: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
	if err != nil {
		return nil, fmt.Errorf("sdllight: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	if err != nil {
		return nil, fmt.Errorf("sdllight: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	if err != nil {
		return nil, fmt.Errorf("sdllight: %w", err)
	}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdl", "version %d.%d.%d",
		sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	scr.prefs, err = newPreferences()
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdllight: %w", err)
	}
	scr.scale = float32(scr.prefs.scale.Get().(float64))
	if scr.scale < minScale {
		scr.scale = minScale
	}
	scr.theme = themeIndex(scr.prefs.theme.Get().(string))

	scr.window, err = sdl.CreateWindow(windowTitle(scr.mode),
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(layoutW*scr.scale), int32(layoutH*scr.scale),
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI|sdl.WINDOW_HIDDEN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdllight: %w", err)
	}

	scr.glContext, err = scr.window.GLCreateContext()
	if err != nil {
		_ = scr.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdllight: %w", err)
	}
	err = scr.window.GLMakeCurrent(scr.glContext)
	if err != nil {
		_ = scr.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdllight: %w", err)
	}

	// sync with the monitor refresh rate. not a problem if it fails, the
	// service loop paces itself in any case
	err = sdl.GLSetSwapInterval(1)
	if err != nil {
		logger.Logf(logger.Allow, "sdl", "GLSetSwapInterval(1): %s", err.Error())
	}

	err = gl.Init()
	if err != nil {
		scr.Destroy()
		return nil, fmt.Errorf("sdllight: %w", err)
	}
	logger.Logf(logger.Allow, "sdl", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "sdl", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))

	// gamepads. the advance button works from a gamepad as well as the
	// keyboard
	for i := 0; i < sdl.NumJoysticks(); i++ {
		pad := sdl.GameControllerOpen(i)
		if pad.Attached() {
			logger.Logf(logger.Allow, "sdl", "gamepad: %s", pad.Joystick().Name())
			scr.gamepads = append(scr.gamepads, pad)
		}
	}

	scr.setupService()

	// first draw so the window does not open onto garbage
	scr.crit.dirty = true

	return scr, nil
}

// Destroy ends the GUI and releases the SDL resources. No other SdlLight
// function should be called afterwards.
//
// MUST ONLY be called from the #mainthread.
func (scr *SdlLight) Destroy() {
	err := scr.prefs.save()
	if err != nil {
		logger.Logf(logger.Allow, "sdl", "%s", err.Error())
	}

	for _, pad := range scr.gamepads {
		pad.Close()
	}

	sdl.GLDeleteContext(scr.glContext)

	if scr.window != nil {
		err = scr.window.Destroy()
		if err != nil {
			logger.Logf(logger.Allow, "sdl", "%s", err.Error())
		}
		scr.window = nil
	}

	sdl.Quit()
}

// SetLights implements the lightbar.Renderer interface. It can be called
// from any goroutine. The new state is picked up by the next Service()
// iteration.
func (scr *SdlLight) SetLights(_ uint64, lights uint8) error {
	scr.crit.section.Lock()
	defer scr.crit.section.Unlock()
	scr.crit.lights = lights
	scr.crit.dirty = true
	return nil
}

// RecordEvent implements the panel.EventRecorder interface. The event stream
// feeds the button indicator. Events arrive from whatever is driving the
// panel, so the indicator lights for playback and stimulus files just as it
// does for the user's own presses.
func (scr *SdlLight) RecordEvent(ev panel.Event, v panel.EventData) error {
	if ev != panel.ButtonSet {
		return nil
	}

	down, ok := v.(bool)
	if !ok {
		return fmt.Errorf("sdllight: unexpected value for %v event (%T)", ev, v)
	}

	scr.crit.section.Lock()
	defer scr.crit.section.Unlock()
	scr.crit.button = down
	scr.crit.dirty = true
	return nil
}

// change the window size. scale is the size of one light in pixels.
func (scr *SdlLight) setWindow(scale float32) error {
	if scale < minScale {
		return fmt.Errorf("window scale must be at least %.0f", minScale)
	}

	scr.scale = scale
	scr.window.SetSize(int32(layoutW*scale), int32(layoutH*scale))
	_ = scr.prefs.scale.Set(scale)

	scr.crit.section.Lock()
	scr.crit.dirty = true
	scr.crit.section.Unlock()

	return nil
}

func (scr *SdlLight) showWindow(visible bool) {
	if visible {
		scr.window.Show()
		scr.crit.section.Lock()
		scr.crit.dirty = true
		scr.crit.section.Unlock()
	} else {
		scr.window.Hide()
	}
}

// the window title decorated with the simulation mode.
func windowTitle(mode govern.Mode) string {
	vrsn, _, _ := version.Version()
	title := fmt.Sprintf("%s (%s)", version.ApplicationName, vrsn)
	if mode == govern.ModeDebugger {
		title = fmt.Sprintf("%s [debugger]", title)
	}
	return title
}
