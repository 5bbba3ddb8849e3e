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

// Package sdllight is an SDL implementation of the gui.GUI interface. It
// shows the machine's lightbar in a small window: eight lights and, below
// them, an indicator that lights whenever the advance button is held.
//
// There is deliberately no shader pipeline. Each light is drawn by clearing
// a scissored rectangle of the framebuffer, which is as simple as OpenGL
// rendering gets.
//
// The window listens for a small number of keys:
//
//	space         press the advance button
//	F2            press the reset button
//	+ / -         cycle the light theme
//	, / .         shrink / grow the window
//	escape        quit
//
// Everything except theme and scale changes is forwarded over the userinput
// event channel for the main emulation to deal with.
//
// SdlLight must be created and serviced in the program's main thread. The
// Service() function will not block for long and should be called in a
// tight loop from that thread.
package sdllight
