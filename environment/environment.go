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

package environment

import (
	"github.com/jetsetilly/fibula/hardware/preferences"
	"github.com/jetsetilly/fibula/random"
)

// Label is used to name the environment.
type Label string

// List of defined labels. The empty string is reserved for the main
// emulation.
const (
	MainEmulation Label = ""
	Performance   Label = "performance"
	Regression    Label = "regression"
	Testbench     Label = "testbench"
)

// Environment provides context for an emulation. Particularly useful when
// more than one emulation is running in the same process.
type Environment struct {
	Label Label

	// any randomisation required by the emulation should be retrieved
	// through this structure
	Random *random.Random

	// the emulation preferences
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// The clock argument must be supplied. The prefs argument can be nil, in
// which case a new Preferences instance is created. Providing a non-nil value
// allows the preferences of more than one emulation to be synchronised.
func NewEnvironment(label Label, clock random.Clock, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label:  label,
		Random: random.NewRandom(clock),
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// regression testing where the initial state must be the same for every run.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Prefs.SetDefaults()
}

// IsMainEmulation returns true if the environment is the main emulation in
// the system.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// IsEmulation checks the emulation label and returns true if it matches.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface. Only the main
// emulation writes to the central log, which keeps secondary emulations from
// flooding it.
func (env *Environment) AllowLogging() bool {
	return env.IsMainEmulation()
}
