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

// Package stimulus prepares waveforms for the machine's button line.
//
// A Stimulus can be loaded from an audio capture of the button contact
// voltage, the kind produced by hanging a sound card across the switch, or
// synthesized from a description of a press and release train. Either way
// the result is a sequence of line levels with a duration in clock edges,
// ready to be fed to the panel by the Player type.
package stimulus

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware/clocks"
	"github.com/jetsetilly/fibula/logger"
)

// tag string used in calls to Log().
const stimulusLogTag = "stimulus"

// a run of edges for which the line is at a single level.
type segment struct {
	level bool
	edges uint64
}

// Stimulus is a prepared waveform for the button line. The zero value is an
// empty waveform.
type Stimulus struct {
	segments []segment
	numEdges uint64
}

// append a run of edges to the waveform. runs at the same level as the
// previous run are folded together.
func (stim *Stimulus) append(level bool, edges uint64) {
	if edges == 0 {
		return
	}

	stim.numEdges += edges

	if l := len(stim.segments); l > 0 && stim.segments[l-1].level == level {
		stim.segments[l-1].edges += edges
		return
	}

	stim.segments = append(stim.segments, segment{level: level, edges: edges})
}

// NumEdges returns the duration of the stimulus in clock edges.
func (stim *Stimulus) NumEdges() uint64 {
	return stim.numEdges
}

func (stim *Stimulus) String() string {
	return fmt.Sprintf("%d level changes over %d edges (%.02fs)",
		len(stim.segments), stim.numEdges, float64(stim.numEdges)/clocks.Crystal)
}

// FromFile loads a stimulus from an audio capture of the button contact
// voltage. WAV and MP3 files are supported. Only the first channel of a
// multi-channel capture is used.
//
// Samples above the zero level are interpreted as a pressed button. The
// capture is resampled against the crystal clock so that one audio sample
// covers a whole number of edges.
func FromFile(env *environment.Environment, path string) (*Stimulus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stimulus: %v", err)
	}
	defer f.Close()

	var data []float32
	var sampleRate float64

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		logger.Log(env, stimulusLogTag, "loading from wav file")
		data, sampleRate, err = decodeWav(f)
	case ".mp3":
		logger.Log(env, stimulusLogTag, "loading from mp3 file")
		data, sampleRate, err = decodeMp3(f)
	default:
		return nil, fmt.Errorf("stimulus: unsupported file type (%s)", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	if len(data) == 0 || sampleRate == 0 {
		return nil, fmt.Errorf("stimulus: capture is empty")
	}

	logger.Logf(env, stimulusLogTag, "sample rate: %0.2fHz", sampleRate)
	logger.Logf(env, stimulusLogTag, "total time: %.02fs", float64(len(data))/sampleRate)

	// the length of each sample in clock edges
	edgesPerSample := uint64(math.Round(clocks.Crystal / sampleRate))
	if edgesPerSample == 0 {
		edgesPerSample = 1
	}

	stim := &Stimulus{}
	for _, v := range data {
		stim.append(v > 0.0, edgesPerSample)
	}

	logger.Log(env, stimulusLogTag, stim.String())

	return stim, nil
}

func decodeWav(f *os.File) ([]float32, float64, error) {
	dec := wav.NewDecoder(f)
	if dec == nil {
		return nil, 0, fmt.Errorf("stimulus: wav: error decoding")
	}

	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("stimulus: wav: not a valid wav file")
	}

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("stimulus: wav: %w", err)
	}
	floatBuf := buf.AsFloat32Buffer()

	// copy first channel only of data stream
	data := make([]float32, 0, len(floatBuf.Data)/int(dec.NumChans))
	for i := 0; i < len(floatBuf.Data); i += int(dec.NumChans) {
		data = append(data, floatBuf.Data[i])
	}

	return data, float64(dec.SampleRate), nil
}

func decodeMp3(f *os.File) ([]float32, float64, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("stimulus: mp3: %w", err)
	}

	data := make([]float32, 0)

	// according to the go-mp3 docs:
	//
	// "The stream is always formatted as 16bit (little endian) 2 channels
	// even if the source is single channel MP3. Thus, a sample always
	// consists of 4 bytes."
	err = nil
	chunk := make([]byte, 4096)
	for err != io.EOF {
		var chunkLen int
		chunkLen, err = dec.Read(chunk)
		if err != nil && err != io.EOF {
			return nil, 0, fmt.Errorf("stimulus: mp3: %w", err)
		}

		// index increment of 4 because there are two bytes per sample per
		// channel and we only want the first channel
		for i := 0; i < chunkLen-1; i += 4 {
			v := int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8)
			data = append(data, float32(v))
		}
	}

	return data, float64(dec.SampleRate()), nil
}
