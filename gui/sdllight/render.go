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
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/fibula/hardware/lightbar"

	"github.com/veandco/go-sdl2/sdl"
)

// how much the scale changes with each press of the scale keys
const scaleStep = 5.0

// a theme is the pair of colours used to draw the lights. the off colour is
// a dim ember of the on colour so that dark lights are still visible against
// the background.
type theme struct {
	label string
	on    [3]float32
	off   [3]float32
}

var themes = []theme{
	{label: "green", on: [3]float32{0.10, 0.95, 0.25}, off: [3]float32{0.02, 0.13, 0.04}},
	{label: "amber", on: [3]float32{1.00, 0.75, 0.10}, off: [3]float32{0.14, 0.10, 0.02}},
	{label: "red", on: [3]float32{0.95, 0.15, 0.12}, off: [3]float32{0.13, 0.03, 0.02}},
}

// the colour of the window background
var background = [3]float32{0.05, 0.05, 0.06}

// themeIndex returns the index of the named theme, or zero if the name is
// not one we know.
func themeIndex(label string) int {
	for i, t := range themes {
		if t.label == label {
			return i
		}
	}
	return 0
}

// cycle the theme forwards (positive) or backwards (negative).
func (scr *SdlLight) cycleTheme(d int) {
	scr.theme = (((scr.theme + d) % len(themes)) + len(themes)) % len(themes)
	_ = scr.prefs.theme.Set(themes[scr.theme].label)

	scr.crit.section.Lock()
	scr.crit.dirty = true
	scr.crit.section.Unlock()
}

// render the lights and the button indicator. does nothing unless the
// content has been marked dirty since the last render.
//
// there is no shader pipeline. every rectangle is drawn by clearing a
// scissored region of the framebuffer.
//
// MUST ONLY be called from the #mainthread
func (scr *SdlLight) render() {
	// leave the dirty flag alone while the window is hidden. the repaint
	// happens when the window is next shown
	if scr.window.GetFlags()&sdl.WINDOW_SHOWN != sdl.WINDOW_SHOWN {
		return
	}

	scr.crit.section.Lock()
	dirty := scr.crit.dirty
	lights := scr.crit.lights
	button := scr.crit.button
	scr.crit.dirty = false
	scr.crit.section.Unlock()

	if !dirty {
		return
	}

	dw, dh := scr.window.GLGetDrawableSize()

	// pixels per layout unit. the drawable size can differ from the window
	// size on high-DPI displays
	unit := float32(dw) / layoutW

	gl.Viewport(0, 0, dw, dh)

	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(background[0], background[1], background[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.Enable(gl.SCISSOR_TEST)

	thm := themes[scr.theme]

	// the row of lights. bit 7 is drawn leftmost so the bar reads as a
	// binary number
	y := int32((layoutMargin + layoutButtonStrip + layoutGap) * unit)
	for i := 0; i < lightbar.NumLights; i++ {
		x := layoutMargin + float32(i)*(1.0+layoutGap)

		col := thm.off
		if lights&(0x80>>i) != 0x00 {
			col = thm.on
		}

		gl.Scissor(int32(x*unit), y, int32(unit), int32(unit))
		gl.ClearColor(col[0], col[1], col[2], 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}

	// the button indicator strip under the lights
	col := thm.off
	if button {
		col = thm.on
	}

	gl.Scissor(int32(layoutMargin*unit), int32(layoutMargin*unit),
		int32((layoutW-2*layoutMargin)*unit), int32(layoutButtonStrip*unit))
	gl.ClearColor(col[0], col[1], col[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.Disable(gl.SCISSOR_TEST)

	scr.window.GLSwap()
}
