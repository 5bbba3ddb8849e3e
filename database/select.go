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

package database

import "fmt"

// SelectAll entries in the database, in key order. onSelect can be nil.
//
// onSelect() should return true if the select process is to continue.
// Returning an error ends the select process regardless of the continue
// flag.
func (db Session) SelectAll(onSelect func(key int, ent Entry) (bool, error)) error {
	return db.SelectKeys(onSelect)
}

// SelectKeys matches entries with the specified key(s), in the order given.
// If the list of keys is empty then all entries are matched, in key order
// (SelectAll() maybe more appropriate in that case). onSelect can be nil.
//
// onSelect() should return true if the select process is to continue.
// Returning an error ends the select process regardless of the continue
// flag.
func (db Session) SelectKeys(onSelect func(key int, ent Entry) (bool, error), keys ...int) error {
	if onSelect == nil {
		onSelect = func(_ int, _ Entry) (bool, error) { return true, nil }
	}

	keyList := keys
	if len(keys) == 0 {
		keyList = db.SortedKeyList()
	}

	for _, key := range keyList {
		ent, ok := db.entries[key]
		if !ok {
			return fmt.Errorf("database: key not available [%03d]", key)
		}

		cont, err := onSelect(key, ent)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}

	return nil
}
