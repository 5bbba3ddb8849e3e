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

package resources

import (
	"os"
	"path/filepath"
)

// the directory name for all resources. relative to the base path returned by
// basePath()
const resourceDir = ".fibula"

// the environment variable that overrides the base path entirely. useful for
// testing and for running several instances side by side
const envOverride = "FIBULA_HOME"

// basePath returns the directory all resources are rooted in. the unadorned
// resourceDir is preferred if it exists in the current directory, which is
// more convenient during development. otherwise the user's home directory is
// used.
func basePath() (string, error) {
	if p := os.Getenv(envOverride); p != "" {
		return p, nil
	}

	if _, err := os.Stat(resourceDir); err == nil {
		return resourceDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, resourceDir), nil
}

// JoinPath prepends the supplied path with an OS/environment specific base
// path.
//
// The function creates all folders necessary to reach the end of sub-path. It
// does not otherwise touch or create the file.
func JoinPath(path ...string) (string, error) {
	b, err := basePath()
	if err != nil {
		return "", err
	}

	p := filepath.Join(b, filepath.Join(path...))

	// check if path already exists
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", err
	}

	return p, nil
}
