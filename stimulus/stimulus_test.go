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

package stimulus_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/clocks"
	"github.com/jetsetilly/fibula/stimulus"
	"github.com/jetsetilly/fibula/test"
	"github.com/youpy/go-wav"
)

func newTestFib(t *testing.T) *hardware.Fib {
	t.Helper()
	t.Setenv("FIBULA_HOME", t.TempDir())

	fib, err := hardware.NewFib(environment.Testbench, nil, nil)
	test.DemandSuccess(t, err)
	fib.Env.Normalise()

	err = fib.Env.Prefs.Realtime.Set(false)
	test.DemandSuccess(t, err)

	return fib
}

// options sized for test running time rather than realism.
func testOpts() stimulus.SynthesizeOpts {
	return stimulus.SynthesizeOpts{
		LeadInEdges:    clocks.DebounceWindow + 200,
		HoldEdges:      clocks.DebounceWindow + (clocks.DebounceWindow / 2),
		ReleaseEdges:   clocks.DebounceWindow + (clocks.DebounceWindow / 2),
		MaxBounces:     6,
		MaxBounceEdges: clocks.DebounceWindow / 64,
	}
}

func playThrough(t *testing.T, fib *hardware.Fib, stim *stimulus.Stimulus) {
	t.Helper()

	ply, err := stimulus.NewPlayer(stim)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ply.AttachToFib(fib))

	// the full waveform plus a settling window
	err = fib.RunForEdges(int(stim.NumEdges())+clocks.DebounceWindow+200, nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, ply.Ended())
}

func TestSynthesize_cleanPresses(t *testing.T) {
	fib := newTestFib(t)

	stim := stimulus.Synthesize(nil, 3, testOpts())
	playThrough(t, fib, stim)

	// the lights show 1 from power-on and each press advances the sequence
	test.ExpectEquality(t, fib.Bar.Lights(), 5)
}

func TestSynthesize_bounceIsRejected(t *testing.T) {
	fib := newTestFib(t)

	// the same number of advances no matter how dirty the transitions are
	rnd := rand.New(rand.NewSource(1))
	stim := stimulus.Synthesize(rnd, 3, testOpts())
	playThrough(t, fib, stim)

	test.ExpectEquality(t, fib.Bar.Lights(), 5)
}

func TestFromFile_wav(t *testing.T) {
	fib := newTestFib(t)

	// a capture of one press at 44.1kHz. contact voltage is high while the
	// button is down
	const sampleRate = 44100

	samples := make([]wav.Sample, 0)
	appendLevel := func(n int, level bool) {
		v := -16000
		if level {
			v = 16000
		}
		for i := 0; i < n; i++ {
			s := wav.Sample{}
			s.Values[0] = v
			samples = append(samples, s)
		}
	}

	// 2000 samples at this rate is slightly more than one debounce window
	appendLevel(2000, false)
	appendLevel(4000, true)
	appendLevel(4000, false)

	path := filepath.Join(t.TempDir(), "capture.wav")
	f, err := os.Create(path)
	test.DemandSuccess(t, err)

	enc := wav.NewWriter(f, uint32(len(samples)), 1, sampleRate, 16)
	test.DemandSuccess(t, enc.WriteSamples(samples))
	test.DemandSuccess(t, f.Close())

	stim, err := stimulus.FromFile(fib.Env, path)
	test.DemandSuccess(t, err)

	playThrough(t, fib, stim)
	test.ExpectEquality(t, fib.Bar.Lights(), 2)
}

func TestFromFile_unsupported(t *testing.T) {
	fib := newTestFib(t)

	path := filepath.Join(t.TempDir(), "capture.txt")
	test.DemandSuccess(t, os.WriteFile(path, []byte("not audio"), 0644))

	_, err := stimulus.FromFile(fib.Env, path)
	test.ExpectFailure(t, err)
}

func TestPlayer_emptyStimulus(t *testing.T) {
	_, err := stimulus.NewPlayer(&stimulus.Stimulus{})
	test.ExpectFailure(t, err)
}

func TestBouncer_livePresses(t *testing.T) {
	fib := newTestFib(t)

	// a fixed seed so the bounce pattern is not at the mercy of the wall
	// clock
	err := fib.Env.Prefs.BounceSeed.Set(7)
	test.DemandSuccess(t, err)

	bnc := stimulus.NewBouncer(fib.Env, testOpts())
	test.DemandSuccess(t, bnc.AttachToFib(fib))

	// power-on settling
	test.DemandSuccess(t, fib.RunForEdges(clocks.DebounceWindow+200, nil))
	test.ExpectEquality(t, fib.Bar.Lights(), 1)

	hold := clocks.DebounceWindow + (clocks.DebounceWindow / 2)

	for _, want := range []uint8{2, 3, 5} {
		bnc.Post(true)
		test.DemandSuccess(t, fib.RunForEdges(hold, nil))
		bnc.Post(false)
		test.DemandSuccess(t, fib.RunForEdges(hold, nil))
		test.ExpectEquality(t, fib.Bar.Lights(), want)
	}
}
