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

package gui

// FeatureReq is used to request the setting of a gui attribute
// eg. changing the scale of the window.
type FeatureReq string

// FeatureReqData represents the information associated with a FeatureReq. See
// commentary for the defined FeatureReq values for the underlying type.
type FeatureReqData any

// List of valid feature requests. argument must be of the type specified or
// else the type conversion will fail and the application will probably crash.
//
// Note that, like the name suggests, these are requests, they may or may not
// be satisfied depending on other conditions in the GUI.
const (
	// the channel to which the GUI should forward user input. without this
	// request the GUI swallows all input.
	ReqSetEventChan FeatureReq = "ReqSetEventChan" // chan userinput.Event

	// whether the gui window is visible or not.
	ReqSetVisibility FeatureReq = "ReqSetVisibility" // bool

	// the scale of the gui window. the value is the size of a single light
	// in pixels.
	ReqSetScale FeatureReq = "ReqSetScale" // float32

	// notify the GUI of the mode the simulation is running in. the GUI uses
	// the mode to decorate the window title.
	ReqSetEmulationMode FeatureReq = "ReqSetEmulationMode" // govern.Mode

	// cycle the light theme. positive values cycle forwards, negative values
	// backwards. named after the keys that trigger the request.
	ReqSetPlusMinus FeatureReq = "ReqSetPlusMinus" // int
)
