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

package database_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/fibula/database"
	"github.com/jetsetilly/fibula/test"
)

type testEntry struct {
	label    string
	cleanups *int
}

func deserialiseTestEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != 1 {
		return nil, fmt.Errorf("test: wrong number of fields")
	}
	return &testEntry{label: fields[0]}, nil
}

func (ent testEntry) ID() string {
	return "test"
}

func (ent testEntry) String() string {
	return ent.label
}

func (ent *testEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{ent.label}, nil
}

func (ent testEntry) CleanUp() error {
	if ent.cleanups != nil {
		*ent.cleanups++
	}
	return nil
}

func initTestSession(db *database.Session) error {
	return db.RegisterEntryType("test", deserialiseTestEntry)
}

func TestDatabase_addAndList(t *testing.T) {
	p := filepath.Join(t.TempDir(), "db")

	db, err := database.StartSession(p, database.ActivityCreating, initTestSession)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, db.Add(&testEntry{label: "foo"}))
	test.ExpectSuccess(t, db.Add(&testEntry{label: "bar"}))
	test.ExpectEquality(t, db.NumEntries(), 2)
	test.ExpectSuccess(t, db.EndSession(true))

	// reopen for reading and check the entries survived the round trip
	db, err = database.StartSession(p, database.ActivityReading, initTestSession)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 2)

	s := &strings.Builder{}
	test.ExpectSuccess(t, db.List(s))
	test.ExpectSuccess(t, strings.Contains(s.String(), "000 foo"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "001 bar"))
	test.ExpectSuccess(t, strings.Contains(s.String(), "Total: 2"))

	// a session opened for reading cannot commit changes
	test.ExpectFailure(t, db.EndSession(true))
	test.ExpectSuccess(t, db.EndSession(false))
}

func TestDatabase_emptyFinalField(t *testing.T) {
	p := filepath.Join(t.TempDir(), "db")

	db, err := database.StartSession(p, database.ActivityCreating, initTestSession)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, db.Add(&testEntry{label: ""}))
	test.ExpectSuccess(t, db.EndSession(true))

	// an entry ending with an empty field must survive the round trip
	db, err = database.StartSession(p, database.ActivityReading, initTestSession)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 1)

	ent, err := db.Get(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "")

	test.ExpectSuccess(t, db.EndSession(false))
}

func TestDatabase_delete(t *testing.T) {
	p := filepath.Join(t.TempDir(), "db")

	cleanups := 0

	db, err := database.StartSession(p, database.ActivityCreating, initTestSession)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, db.Add(&testEntry{label: "foo", cleanups: &cleanups}))
	test.ExpectSuccess(t, db.Add(&testEntry{label: "bar", cleanups: &cleanups}))

	// deleting an entry runs its cleanup function
	test.ExpectSuccess(t, db.Delete(0))
	test.ExpectEquality(t, cleanups, 1)
	test.ExpectFailure(t, db.Delete(100))
	test.ExpectSuccess(t, db.EndSession(true))

	// the remaining entry keeps its key
	db, err = database.StartSession(p, database.ActivityReading, initTestSession)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 1)

	ent, err := db.Get(1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ent.String(), "bar")

	_, err = db.Get(0)
	test.ExpectFailure(t, err)

	test.ExpectSuccess(t, db.EndSession(false))
}

func TestDatabase_selectKeys(t *testing.T) {
	p := filepath.Join(t.TempDir(), "db")

	db, err := database.StartSession(p, database.ActivityCreating, initTestSession)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, db.Add(&testEntry{label: "a"}))
	test.ExpectSuccess(t, db.Add(&testEntry{label: "b"}))
	test.ExpectSuccess(t, db.Add(&testEntry{label: "c"}))

	seen := []string{}
	onSelect := func(key int, ent database.Entry) (bool, error) {
		seen = append(seen, ent.String())
		return true, nil
	}

	// specified keys are visited in the order given
	test.ExpectSuccess(t, db.SelectKeys(onSelect, 2, 0))
	test.ExpectEquality(t, strings.Join(seen, " "), "c a")

	// an empty key list matches everything, in key order
	seen = seen[:0]
	test.ExpectSuccess(t, db.SelectAll(onSelect))
	test.ExpectEquality(t, strings.Join(seen, " "), "a b c")

	test.ExpectFailure(t, db.SelectKeys(onSelect, 100))

	test.ExpectSuccess(t, db.EndSession(false))
}

func TestDatabase_unrecognisedEntryType(t *testing.T) {
	p := filepath.Join(t.TempDir(), "db")
	test.DemandSuccess(t, os.WriteFile(p, []byte("000, alien, field\n"), 0600))

	_, err := database.StartSession(p, database.ActivityReading, initTestSession)
	test.ExpectFailure(t, err)
}
