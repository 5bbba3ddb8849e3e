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

package regression

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jetsetilly/fibula/database"
	"github.com/jetsetilly/fibula/debugger/terminal/colorterm/easyterm/ansi"
	"github.com/jetsetilly/fibula/resources"
)

// locations of the regression files, relative to the fibula config
// directory.
const (
	regressionPath    = "regression"
	regressionDBFile  = "db"
	regressionScripts = "scripts"
	fails             = "fails"
)

// Regressor is the generic entry type in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newRegression
	// flag indicates that the test is being run for the first time and that
	// the entry should record the result rather than compare against it.
	//
	// message is the string that is to be printed during the regression. the
	// returned string is the detail to display in the event of a test
	// failure.
	regress(newRegression bool, output io.Writer, message string) (bool, string, error)
}

// when starting a database session we need to register what entries we will
// find in the database.
func initDBSession(db *database.Session) error {
	if err := db.RegisterEntryType(digestEntryID, deserialiseDigestEntry); err != nil {
		return err
	}

	if err := db.RegisterEntryType(playbackEntryID, deserialisePlaybackEntry); err != nil {
		return err
	}

	// make sure regression script directory exists
	scripts, err := resources.JoinPath(regressionPath, regressionScripts)
	if err != nil {
		return fmt.Errorf("regression script directory: %w", err)
	}
	if err := os.MkdirAll(scripts, 0700); err != nil {
		return fmt.Errorf("regression script directory: %w", err)
	}

	return nil
}

func dbPath() (string, error) {
	return resources.JoinPath(regressionPath, regressionDBFile)
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer) error {
	if output == nil {
		return fmt.Errorf("regression: io.Writer should not be nil (use io.Discard)")
	}

	p, err := dbPath()
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	db, err := database.StartSession(p, database.ActivityReading, initDBSession)
	if err != nil {
		// a database that has never been written to is the same as an empty
		// one
		if errors.Is(err, os.ErrNotExist) {
			output.Write([]byte("database is empty\n"))
			return nil
		}
		return fmt.Errorf("regression: %w", err)
	}
	defer db.EndSession(false)

	err = db.List(output)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	return nil
}

// RegressAdd adds a new regression test to the database. The test is run
// once to record the result the reruns will be compared against.
func RegressAdd(output io.Writer, reg Regressor) error {
	if output == nil {
		return fmt.Errorf("regression: io.Writer should not be nil (use io.Discard)")
	}

	p, err := dbPath()
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	db, err := database.StartSession(p, database.ActivityCreating, initDBSession)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}
	defer db.EndSession(true)

	msg := fmt.Sprintf("adding: %s", reg)

	ok, _, err := reg.regress(true, output, msg)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}
	if !ok {
		return fmt.Errorf("regression: %s failed during add", reg)
	}

	output.Write([]byte(ansi.ClearLine))
	output.Write([]byte(fmt.Sprintf("\radded: %s\n", reg)))

	err = db.Add(reg)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	return nil
}

// RegressDelete removes a test from the regression database.
//
// Before the deletion, confirmation is requested from the confirmation
// io.Reader. The test is deleted on a response of y or Y.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) error {
	if output == nil {
		return fmt.Errorf("regression: io.Writer should not be nil (use io.Discard)")
	}

	v, err := strconv.Atoi(key)
	if err != nil {
		return fmt.Errorf("regression: invalid key [%s]", key)
	}

	p, err := dbPath()
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	db, err := database.StartSession(p, database.ActivityModifying, initDBSession)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}
	defer db.EndSession(true)

	ent, err := db.Get(v)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	output.Write([]byte(fmt.Sprintf("%s\ndelete? (y/n): ", ent)))

	confirm := make([]byte, 32)
	_, err = confirmation.Read(confirm)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		err = db.Delete(v)
		if err != nil {
			return fmt.Errorf("regression: %w", err)
		}
		output.Write([]byte(fmt.Sprintf("deleted test #%s from the regression database\n", key)))
	}

	return nil
}

// RegressRun runs the tests in the regression database. The keys argument
// limits the run to the tests with the specified keys. An empty keys list
// means that every entry is tested.
//
// The special key value FAILS reruns the tests that failed the last time
// they were run.
func RegressRun(output io.Writer, verbose bool, failOnError bool, keys []string) error {
	if output == nil {
		return fmt.Errorf("regression: io.Writer should not be nil (use io.Discard)")
	}

	// expand the FAILS keyword into the keys that failed in the previous run
	keys, err := addFailsToKeys(keys)
	if err != nil {
		if errors.Is(err, noPreviousFails) {
			output.Write([]byte("no previous fails to rerun\n"))
			return nil
		}
		return fmt.Errorf("regression: %w", err)
	}

	keysV := make([]int, 0, len(keys))
	for _, k := range keys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("regression: invalid key [%s]", k)
		}
		keysV = append(keysV, v)
	}

	p, err := dbPath()
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	db, err := database.StartSession(p, database.ActivityReading, initDBSession)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			output.Write([]byte("database is empty\n"))
			return nil
		}
		return fmt.Errorf("regression: %w", err)
	}
	defer db.EndSession(false)

	numSucceed := 0
	numFail := 0
	numError := 0
	failedKeys := []string{}

	defer func() {
		numSkipped := db.NumEntries() - numSucceed - numFail - numError
		output.Write([]byte(fmt.Sprintf("regression tests: %d succeed, %d fail, %d skipped", numSucceed, numFail, numSkipped)))
		if numError > 0 {
			output.Write([]byte(" [with errors]"))
		}
		output.Write([]byte("\n"))
	}()

	onSelect := func(key int, ent database.Entry) (bool, error) {
		// database entry should also satisfy the Regressor interface
		reg, ok := ent.(Regressor)
		if !ok {
			return false, fmt.Errorf("regression: database entry does not satisfy the Regressor interface")
		}

		// run regress() function with message. message does not have a
		// trailing newline
		msg := fmt.Sprintf("running: %03d %s", key, reg)
		ok, failm, err := reg.regress(false, output, msg)

		// once regress() has completed we clear the line ready for the
		// completion message
		output.Write([]byte(ansi.ClearLine))

		if err != nil {
			numError++
			failedKeys = append(failedKeys, strconv.Itoa(key))
			output.Write([]byte(fmt.Sprintf("\r  error: %03d %s\n", key, reg)))
			if verbose {
				output.Write([]byte(fmt.Sprintf("  %s\n", err)))
			}
			if failOnError {
				return false, nil
			}
		} else if !ok {
			numFail++
			failedKeys = append(failedKeys, strconv.Itoa(key))
			output.Write([]byte(fmt.Sprintf("\rfailure: %03d %s\n", key, reg)))
			if verbose && failm != "" {
				output.Write([]byte(fmt.Sprintf("  %s\n", failm)))
			}
		} else {
			numSucceed++
			output.Write([]byte(fmt.Sprintf("\rsucceed: %03d %s\n", key, reg)))
		}

		return true, nil
	}

	err = db.SelectKeys(onSelect, keysV...)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	// remember which tests failed so they can be rerun with the FAILS
	// keyword
	err = saveFails(failedKeys)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	return nil
}
