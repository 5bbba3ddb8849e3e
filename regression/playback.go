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
	"path/filepath"
	"strings"
	"time"

	"github.com/jetsetilly/fibula/database"
	"github.com/jetsetilly/fibula/debugger/govern"
	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/recorder"
)

const playbackEntryID = "playback"

const (
	playbackFieldScript int = iota
	playbackFieldNotes
	numPlaybackFields
)

// PlaybackRegression replays panel input from a previously recorded session.
// The recording transcript carries a hash of the lights seen during the
// recording so the replay will fail if the machine no longer behaves the
// same way.
type PlaybackRegression struct {
	Script string
	Notes  string
}

func deserialisePlaybackEntry(fields database.SerialisedEntry) (database.Entry, error) {
	reg := &PlaybackRegression{}

	// basic sanity check
	if len(fields) > numPlaybackFields {
		return nil, fmt.Errorf("playback: too many fields")
	}
	if len(fields) < numPlaybackFields {
		return nil, fmt.Errorf("playback: too few fields")
	}

	// string fields need no conversion
	reg.Script = fields[playbackFieldScript]
	reg.Notes = fields[playbackFieldNotes]

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg PlaybackRegression) ID() string {
	return playbackEntryID
}

// String implements the database.Entry interface.
func (reg PlaybackRegression) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[%s] %s", reg.ID(), filepath.Base(reg.Script)))
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}
	return s.String()
}

// Serialise implements the database.Entry interface.
func (reg *PlaybackRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
			reg.Script,
			reg.Notes,
		},
		nil
}

// CleanUp implements the database.Entry interface. The transcript is removed
// from the regression scripts directory.
func (reg PlaybackRegression) CleanUp() error {
	err := os.Remove(reg.Script)
	if _, ok := err.(*os.PathError); ok {
		return nil
	}
	return err
}

// regress implements the Regressor interface.
func (reg *PlaybackRegression) regress(newRegression bool, output io.Writer, msg string) (bool, string, error) {
	output.Write([]byte(msg))

	plb, err := recorder.NewPlayback(reg.Script)
	if err != nil {
		return false, "", fmt.Errorf("playback: %w", err)
	}

	fib, err := hardware.NewFib(environment.Regression, nil, nil)
	if err != nil {
		return false, "", fmt.Errorf("playback: %w", err)
	}

	// a regression run must not be affected by user preferences or by the
	// realtime limiter
	fib.Env.Normalise()
	err = fib.Env.Prefs.Realtime.Set(false)
	if err != nil {
		return false, "", fmt.Errorf("playback: %w", err)
	}

	err = plb.AttachToFib(fib)
	if err != nil {
		return false, "", fmt.Errorf("playback: %w", err)
	}

	// display progress meter every second
	tck := time.NewTicker(time.Second)
	defer tck.Stop()

	err = fib.Run(func() (govern.State, error) {
		select {
		case <-tck.C:
			output.Write([]byte(fmt.Sprintf("\r%s [%s]", msg, plb)))
		default:
		}
		return govern.Running, nil
	})

	if err != nil {
		// a hash mismatch at the end of the replay is a test failure rather
		// than an error
		if errors.Is(err, recorder.ErrLightsMismatch) {
			return false, err.Error(), nil
		}

		// the ErrPlaybackEnded error is expected. if we receive it then the
		// regression test has succeeded
		if !errors.Is(err, recorder.ErrPlaybackEnded) {
			return false, "", fmt.Errorf("playback: %w", err)
		}
	}

	// if this is a new regression we want to store the transcript in the
	// regression scripts directory
	if newRegression {
		newScript, err := uniqueFilename("playback")
		if err != nil {
			return false, "", fmt.Errorf("playback: %w", err)
		}

		// check that the filename is unique
		nf, _ := os.Open(newScript)
		// no need to bother with returned error. nf tells us everything we
		// need to know
		if nf != nil {
			nf.Close()
			return false, "", fmt.Errorf("playback: script already exists [%s]", newScript)
		}

		// create new file
		nf, err = os.Create(newScript)
		if err != nil {
			return false, "", fmt.Errorf("playback: error copying transcript: %w", err)
		}
		defer nf.Close()

		// open old file
		of, err := os.Open(reg.Script)
		if err != nil {
			return false, "", fmt.Errorf("playback: error copying transcript: %w", err)
		}
		defer of.Close()

		// copy old file to new file
		_, err = io.Copy(nf, of)
		if err != nil {
			return false, "", fmt.Errorf("playback: error copying transcript: %w", err)
		}

		// update script name in regression type
		reg.Script = newScript
	}

	return true, "", nil
}
