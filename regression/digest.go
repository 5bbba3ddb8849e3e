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
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jetsetilly/fibula/database"
	"github.com/jetsetilly/fibula/debugger/govern"
	"github.com/jetsetilly/fibula/digest"
	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/clocks"
	"github.com/jetsetilly/fibula/stimulus"
)

const digestEntryID = "digest"

const (
	digestFieldName int = iota
	digestFieldPresses
	digestFieldNotes
	digestFieldDigest
	numDigestFields
)

// DigestRegression runs the machine headless for a set number of button
// presses, driven by a synthesized stimulus, and compares the hash of the
// lightbar output with the hash stored in the database.
type DigestRegression struct {
	Name    string
	Presses int
	Notes   string
	digest  string
}

func deserialiseDigestEntry(fields database.SerialisedEntry) (database.Entry, error) {
	reg := &DigestRegression{}

	// basic sanity check
	if len(fields) > numDigestFields {
		return nil, fmt.Errorf("digest: too many fields")
	}
	if len(fields) < numDigestFields {
		return nil, fmt.Errorf("digest: too few fields")
	}

	// string fields need no conversion
	reg.Name = fields[digestFieldName]
	reg.Notes = fields[digestFieldNotes]
	reg.digest = fields[digestFieldDigest]

	var err error

	reg.Presses, err = strconv.Atoi(fields[digestFieldPresses])
	if err != nil {
		return nil, fmt.Errorf("digest: invalid presses field [%s]", fields[digestFieldPresses])
	}
	if reg.Presses < 1 {
		return nil, fmt.Errorf("digest: presses field must be a positive number [%d]", reg.Presses)
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg DigestRegression) ID() string {
	return digestEntryID
}

// String implements the database.Entry interface.
func (reg DigestRegression) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[%s] %s presses=%d", reg.ID(), reg.Name, reg.Presses))
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}
	return s.String()
}

// Serialise implements the database.Entry interface.
func (reg *DigestRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
			reg.Name,
			strconv.Itoa(reg.Presses),
			reg.Notes,
			reg.digest,
		},
		nil
}

// CleanUp implements the database.Entry interface.
func (reg DigestRegression) CleanUp() error {
	return nil
}

// regress implements the Regressor interface.
func (reg *DigestRegression) regress(newRegression bool, output io.Writer, msg string) (bool, string, error) {
	output.Write([]byte(msg))

	fib, err := hardware.NewFib(environment.Regression, nil, nil)
	if err != nil {
		return false, "", fmt.Errorf("digest: %w", err)
	}

	// a regression run must not be affected by user preferences or by the
	// realtime limiter
	fib.Env.Normalise()
	err = fib.Env.Prefs.Realtime.Set(false)
	if err != nil {
		return false, "", fmt.Errorf("digest: %w", err)
	}

	dig, err := digest.NewLights(fib.Bar)
	if err != nil {
		return false, "", fmt.Errorf("digest: %w", err)
	}

	// drive the button with clean synthesized presses
	stim := stimulus.Synthesize(nil, reg.Presses, stimulus.DefaultSynthesizeOpts())

	ply, err := stimulus.NewPlayer(stim)
	if err != nil {
		return false, "", fmt.Errorf("digest: %w", err)
	}

	err = ply.AttachToFib(fib)
	if err != nil {
		return false, "", fmt.Errorf("digest: %w", err)
	}

	// run to the end of the stimulus plus a full debounce window so the
	// final release has settled
	numEdges := int(stim.NumEdges() + clocks.DebounceWindow)

	// display progress meter every second
	tck := time.NewTicker(time.Second)
	defer tck.Stop()

	err = fib.RunForEdges(numEdges, func(edge uint64) (govern.State, error) {
		select {
		case <-tck.C:
			output.Write([]byte(fmt.Sprintf("\r%s [%d%%]", msg, edge*100/uint64(numEdges))))
		default:
		}
		return govern.Running, nil
	})
	if err != nil {
		return false, "", fmt.Errorf("digest: %w", err)
	}

	err = dig.Flush()
	if err != nil {
		return false, "", fmt.Errorf("digest: %w", err)
	}

	if newRegression {
		reg.digest = dig.Hash()
		return true, "", nil
	}

	if dig.Hash() != reg.digest {
		failm := fmt.Sprintf("lights hash is %s (expected %s)", dig.Hash(), reg.digest)
		return false, failm, nil
	}

	return true, "", nil
}
