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
	"github.com/jetsetilly/fibula/prefs"
	"github.com/jetsetilly/fibula/resources"
)

type preferences struct {
	dsk *prefs.Disk

	// the size of one light in pixels
	scale prefs.Float

	// the colour theme. one of the labels in the themes array
	theme prefs.String
}

// preferences are loaded at GUI creation and saved again when the GUI is
// destroyed.
func newPreferences() (*preferences, error) {
	p := &preferences{}
	p.setDefaults()

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("sdllight.scale", &p.scale)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("sdllight.theme", &p.theme)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// setDefaults reverts all settings to default values.
func (p *preferences) setDefaults() {
	_ = p.scale.Set(40.0)
	_ = p.theme.Set(themes[0].label)
}

// save current preferences to disk.
func (p *preferences) save() error {
	return p.dsk.Save()
}
