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

package preferences

import (
	"github.com/jetsetilly/fibula/prefs"
	"github.com/jetsetilly/fibula/resources"
)

// Preferences defines and collates all the preference values used by the
// emulated hardware.
type Preferences struct {
	dsk *prefs.Disk

	// button events from the GUI are wrapped in a synthesised contact bounce
	// train before being put on the raw input line. with this disabled the
	// debouncer only ever sees perfectly clean input
	SynthBounce prefs.Bool

	// base seed for synthesised bounce. zero means derive the seed from the
	// emulation clock
	BounceSeed prefs.Int

	// pace the simulation against the crystal frequency. when disabled the
	// simulation runs as fast as the host allows
	Realtime prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("input.synthbounce", &p.SynthBounce)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("input.bounceseed", &p.BounceSeed)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("lightbar.realtime", &p.Realtime)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	_ = p.SynthBounce.Set(true)
	_ = p.BounceSeed.Set(0)
	_ = p.Realtime.Set(true)
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
