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

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const fieldSep = ", "
const entrySep = "\n"

// every entry in the database file leads with the entry key and the entry
// type ID. the remaining fields belong to the entry itself.
const (
	leaderFieldKey int = iota
	leaderFieldID
	numLeaderFields
)

func recordHeader(key int, id string) string {
	return fmt.Sprintf("%03d%s%s", key, fieldSep, id)
}

// Activity states what the database session will be used for.
type Activity int

// Valid Activity values. ActivityReading prohibits the commit stage of
// EndSession().
const (
	ActivityReading Activity = iota
	ActivityCreating
	ActivityModifying
)

// Session keeps track of a database session.
type Session struct {
	dbfile   *os.File
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]deserialiser
}

// StartSession starts/initialises a new database session. The init argument
// is the function to call once the database file has been opened and before
// any entries are read. Entry types should be registered with the session at
// that point.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		activity:   activity,
		entryTypes: make(map[string]deserialiser),
	}

	var flags int
	switch activity {
	case ActivityReading:
		flags = os.O_RDONLY
	case ActivityCreating:
		flags = os.O_RDWR | os.O_CREATE
	case ActivityModifying:
		flags = os.O_RDWR
	}

	var err error
	db.dbfile, err = os.OpenFile(path, flags, 0600)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	// closing of db.dbfile requires a call to EndSession()

	err = init(db)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	err = db.readDBFile()
	if err != nil {
		return nil, err
	}

	return db, nil
}

// EndSession closes the database. Changes made during the session are
// written to disk if commitChanges is true. A session started with
// ActivityReading cannot commit changes.
func (db *Session) EndSession(commitChanges bool) error {
	if db.dbfile == nil {
		return fmt.Errorf("database: session already ended")
	}

	// write entries to database
	if commitChanges {
		if db.activity == ActivityReading {
			return fmt.Errorf("database: cannot commit to a database opened for reading")
		}

		err := db.dbfile.Truncate(0)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}

		_, err = db.dbfile.Seek(0, io.SeekStart)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}

		for _, key := range db.SortedKeyList() {
			ser, err := db.entries[key].Serialise()
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}

			s := strings.Builder{}
			s.WriteString(recordHeader(key, db.entries[key].ID()))
			for i := 0; i < len(ser); i++ {
				s.WriteString(fieldSep)
				s.WriteString(ser[i])
			}
			s.WriteString(entrySep)

			_, err = db.dbfile.WriteString(s.String())
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}
		}
	}

	// end session by closing file
	err := db.dbfile.Close()
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	db.dbfile = nil

	return nil
}

func (db *Session) readDBFile() error {
	// clobbers the contents of db.entries
	db.entries = make(map[int]Entry)

	// make sure we're at the beginning of the file
	if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	buffer, err := io.ReadAll(db.dbfile)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	// split entries
	lines := strings.Split(string(buffer), entrySep)

	for i := 0; i < len(lines); i++ {
		// only carriage returns are trimmed. a trailing space is significant
		// because the final field of an entry may be empty
		lines[i] = strings.TrimRight(lines[i], "\r")
		if len(strings.TrimSpace(lines[i])) == 0 {
			continue
		}

		fields := strings.Split(lines[i], fieldSep)
		if len(fields) < numLeaderFields {
			return fmt.Errorf("database: malformed entry at line %d", i+1)
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return fmt.Errorf("database: invalid key [%s] at line %d", fields[leaderFieldKey], i+1)
		}

		if _, ok := db.entries[key]; ok {
			return fmt.Errorf("database: duplicate key [%d] at line %d", key, i+1)
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return fmt.Errorf("database: unrecognised entry type [%s] at line %d", fields[leaderFieldID], i+1)
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}

		db.entries[key] = ent
	}

	return nil
}
