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

package performance

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
)

// Profile defines the specific profiles to generate during a run.
type Profile int

// List of valid Profile values. The values can be ORed together.
const (
	ProfileNone Profile = 0b00
	ProfileCPU  Profile = 0b01
	ProfileMem  Profile = 0b10
	ProfileAll  Profile = 0b11
)

// ParseProfileString converts a string to a Profile value. The string is
// case insensitive.
func ParseProfileString(profile string) (Profile, error) {
	switch strings.ToUpper(profile) {
	case "NONE":
		return ProfileNone, nil
	case "CPU":
		return ProfileCPU, nil
	case "MEM":
		return ProfileMem, nil
	case "ALL":
		return ProfileAll, nil
	}
	return ProfileNone, fmt.Errorf("unrecognised profile (%s)", profile)
}

// RunProfiler runs the supplied function, generating the requested profiles
// in the current directory. The tag forms the first part of each profile's
// filename.
func RunProfiler(profile Profile, tag string, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", tag))
		if err != nil {
			return err
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			_ = f.Close()
			return err
		}

		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	err := run()
	if err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(fmt.Sprintf("%s_mem.profile", tag))
		if err != nil {
			return err
		}
		defer f.Close()

		runtime.GC()
		err = pprof.WriteHeapProfile(f)
		if err != nil {
			return err
		}
	}

	return nil
}
