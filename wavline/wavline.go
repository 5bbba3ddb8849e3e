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

// Package wavline captures the button conditioning circuit as an audio
// file, in the manner of a logic analyser. Channel 0 of the resulting
// stereo WAV is the raw line as sampled by the hardware and channel 1 is
// the debouncer's settled opinion of it.
//
// Note that the capture is buffered in memory in its entirety and written
// to disk on program end. It is therefore probably only suitable for
// testing purposes.
package wavline

import (
	"fmt"
	"os"

	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware/clocks"
	"github.com/jetsetilly/fibula/logger"
	"github.com/youpy/go-wav"
)

// tag string used in calls to Log().
const logTag = "wavline"

// one audio sample per this many machine edges.
const decimation = 512

// SampleFreq is the sample rate of the written file in Hz. A little over
// 48kHz.
const SampleFreq = clocks.Crystal / decimation

// sample levels for the two line states.
const (
	levelLow  = -16000
	levelHigh = 16000
)

// WavLine accumulates the per-edge state of the button conditioning
// circuit. Attach the Probe function with the machine's SetLineProbe().
type WavLine struct {
	env      *environment.Environment
	filename string
	buffer   []wav.Sample

	ct      int
	raw     bool
	settled bool
}

// New is the preferred method of initialisation for the WavLine type.
func New(env *environment.Environment, filename string) (*WavLine, error) {
	wl := &WavLine{
		env:      env,
		filename: filename,
		buffer:   make([]wav.Sample, 0),
	}
	return wl, nil
}

// Probe receives the state of the button conditioning circuit every machine
// edge. A glitch anywhere in the decimation bucket is stretched to the
// whole sample so that it survives the downsampling.
func (wl *WavLine) Probe(edge uint64, raw bool, settled bool) {
	wl.raw = wl.raw || raw
	wl.settled = wl.settled || settled

	wl.ct++
	if wl.ct < decimation {
		return
	}
	wl.ct = 0

	s := wav.Sample{}
	s.Values[0] = level(wl.raw)
	s.Values[1] = level(wl.settled)
	wl.buffer = append(wl.buffer, s)

	wl.raw = false
	wl.settled = false
}

func level(b bool) int {
	if b {
		return levelHigh
	}
	return levelLow
}

// End writes the capture to disk. The WavLine is of no use after a call to
// End().
func (wl *WavLine) End() (rerr error) {
	f, err := os.Create(wl.filename)
	if err != nil {
		return fmt.Errorf("wavline: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = fmt.Errorf("wavline: %v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(wl.buffer)), 2, uint32(SampleFreq), 16)
	if enc == nil {
		return fmt.Errorf("wavline: %v", "bad parameters for wav encoding")
	}

	logger.Logf(wl.env, logTag, "writing line capture to %s", wl.filename)

	err = enc.WriteSamples(wl.buffer)
	if err != nil {
		return fmt.Errorf("wavline: %v", err)
	}

	return nil
}
