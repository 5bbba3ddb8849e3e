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

package prefs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// DefaultPrefsFile is the default filename for preferences. Callers should
// use resources.JoinPath() to get the full path to the file.
const DefaultPrefsFile = "fibula.prefs"

// the string that separates the key from the value on a single line of the
// prefs file
const keySep = " :: "

// Disk represents preference values that are loaded from and saved to disk.
//
// Many Disk instances can use the same file. Entries in the file that have
// not been registered with this instance are left untouched on Save().
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add a preference entry to the Disk instance. The key must be unique to the
// instance and must not contain the key separator sequence.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.Contains(key, strings.TrimSpace(keySep)) {
		return fmt.Errorf("prefs: invalid key: %s", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: duplicate key: %s", key)
	}
	dsk.entries[key] = p
	return nil
}

// HasEntry returns true if the key has been registered with this instance.
func (dsk *Disk) HasEntry(key string) bool {
	_, ok := dsk.entries[key]
	return ok
}

// Reset all registered entries to their zero values.
func (dsk *Disk) Reset() error {
	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
	}
	return nil
}

// String returns all registered entries as "key :: value" lines, sorted by
// key.
func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, k := range dsk.sortedKeys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k].String()))
	}
	return s.String()
}

func (dsk *Disk) sortedKeys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// read the prefs file into a map of raw string values. a missing file is not
// an error.
func (dsk *Disk) readFile() (map[string]string, []string, error) {
	onDisk := make(map[string]string)
	order := make([]string, 0)

	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return onDisk, order, nil
		}
		return nil, nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, ok := strings.Cut(line, keySep)
		if !ok {
			return nil, nil, fmt.Errorf("prefs: %s: malformed entry at line %d", dsk.path, n)
		}

		if _, ok := onDisk[key]; !ok {
			order = append(order, key)
		}
		onDisk[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("prefs: %w", err)
	}

	return onDisk, order, nil
}

// Load entries from the prefs file. Registered entries that do not appear in
// the file keep their current value. Values in the file that fail to parse
// are reported as an error but loading continues.
func (dsk *Disk) Load() error {
	onDisk, _, err := dsk.readFile()
	if err != nil {
		return err
	}

	var loadErr error
	for k, p := range dsk.entries {
		if v, ok := onDisk[k]; ok {
			if err := p.Set(v); err != nil && loadErr == nil {
				loadErr = fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return loadErr
}

// Save entries to the prefs file. Entries in the file belonging to other Disk
// instances are preserved.
func (dsk *Disk) Save() error {
	onDisk, order, err := dsk.readFile()
	if err != nil {
		return err
	}

	// update with our values, appending new keys to the ordering
	for _, k := range dsk.sortedKeys() {
		if _, ok := onDisk[k]; !ok {
			order = append(order, k)
		}
		onDisk[k] = dsk.entries[k].String()
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	for _, k := range order {
		if _, err := io.WriteString(f, fmt.Sprintf("%s%s%s\n", k, keySep, onDisk[k])); err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
	}

	return nil
}
