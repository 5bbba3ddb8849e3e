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

	"github.com/jetsetilly/fibula/debugger/govern"
	"github.com/jetsetilly/fibula/gui"
	"github.com/jetsetilly/fibula/userinput"
)

// feature requests are handed over to the featureSet and featureGet channels
// for servicing in the main thread.
type featureRequest struct {
	request gui.FeatureReq
	args    []gui.FeatureReqData
}

// SetFeature implements the gui.GUI interface. The request is serviced in
// the main thread but SetFeature() can be called from any goroutine.
func (scr *SdlLight) SetFeature(request gui.FeatureReq, args ...gui.FeatureReqData) error {
	scr.featureSet <- featureRequest{request: request, args: args}
	return <-scr.featureSetErr
}

// SetFeatureNoError implements the gui.GUI interface.
func (scr *SdlLight) SetFeatureNoError(request gui.FeatureReq, args ...gui.FeatureReqData) {
	scr.featureSet <- featureRequest{request: request, args: args}
	go func() {
		<-scr.featureSetErr
	}()
}

// GetFeature implements the gui.GUI interface.
func (scr *SdlLight) GetFeature(request gui.FeatureReq) (gui.FeatureReqData, error) {
	scr.featureGet <- featureRequest{request: request}
	return <-scr.featureGetData, <-scr.featureGetErr
}

func (scr *SdlLight) serviceSetFeature(request featureRequest) {
	// lazy (but clear) handling of type assertion errors
	defer func() {
		if r := recover(); r != nil {
			scr.featureSetErr <- fmt.Errorf("sdllight: %v: %v", request.request, r)
		}
	}()

	var err error

	switch request.request {
	case gui.ReqSetEventChan:
		scr.events = request.args[0].(chan userinput.Event)

	case gui.ReqSetVisibility:
		scr.showWindow(request.args[0].(bool))

	case gui.ReqSetScale:
		err = scr.setWindow(request.args[0].(float32))

	case gui.ReqSetEmulationMode:
		scr.mode = request.args[0].(govern.Mode)
		scr.window.SetTitle(windowTitle(scr.mode))

	case gui.ReqSetPlusMinus:
		scr.cycleTheme(request.args[0].(int))

	default:
		err = fmt.Errorf(gui.UnsupportedGuiFeature, request.request)
	}

	scr.featureSetErr <- err
}

func (scr *SdlLight) serviceGetFeature(request featureRequest) {
	var data gui.FeatureReqData
	var err error

	switch request.request {
	case gui.ReqSetScale:
		data = scr.scale

	case gui.ReqSetEmulationMode:
		data = scr.mode

	default:
		err = fmt.Errorf(gui.UnsupportedGuiFeature, request.request)
	}

	scr.featureGetData <- data
	scr.featureGetErr <- err
}
