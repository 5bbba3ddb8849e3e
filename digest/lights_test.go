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

package digest_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/fibula/digest"
	"github.com/jetsetilly/fibula/hardware/lightbar"
	"github.com/jetsetilly/fibula/test"
)

// run a lightbar through a sequence of light values and return the resulting
// hash. the lightbar only forwards changes so consecutive duplicate values
// do not produce events.
func hashOfRun(t *testing.T, values []uint8) string {
	t.Helper()

	bar := lightbar.NewLightBar()
	bar.SetRealtime(false)

	dig, err := digest.NewLights(bar)
	test.DemandSuccess(t, err)

	for _, v := range values {
		test.DemandSuccess(t, bar.Step(v))
	}
	test.DemandSuccess(t, dig.Flush())

	return dig.Hash()
}

func TestLights_interface(t *testing.T) {
	bar := lightbar.NewLightBar()
	dig, err := digest.NewLights(bar)
	test.DemandSuccess(t, err)
	test.ExpectImplements[digest.Digest](t, dig, nil)
	test.ExpectImplements[lightbar.Renderer](t, dig, nil)
}

func TestLights_noLightbar(t *testing.T) {
	_, err := digest.NewLights(nil)
	test.ExpectFailure(t, err)
}

func TestLights_freshValue(t *testing.T) {
	bar := lightbar.NewLightBar()
	dig, err := digest.NewLights(bar)
	test.DemandSuccess(t, err)

	// a digest that has seen no events hashes to the zeroed value
	test.ExpectEquality(t, dig.Hash(), strings.Repeat("0", 40))
}

func TestLights_determinism(t *testing.T) {
	a := hashOfRun(t, []uint8{1, 1, 2, 3, 5, 8, 13, 21})
	b := hashOfRun(t, []uint8{1, 1, 2, 3, 5, 8, 13, 21})
	test.ExpectEquality(t, a, b)

	// a different stream of lights must produce a different hash
	c := hashOfRun(t, []uint8{1, 1, 2, 3, 5, 8, 13, 34})
	test.ExpectInequality(t, a, c)

	// the edge on which a change happens is part of the stream. the same
	// values arriving at different times are a different stream.
	d := hashOfRun(t, []uint8{1, 1, 1, 2, 3, 5, 8, 13, 21})
	test.ExpectInequality(t, a, d)
}

func TestLights_originRelative(t *testing.T) {
	// a digest attached to a machine that has already been running produces
	// the same hash as a digest attached to a fresh machine, provided the
	// stream of changes is the same
	bar := lightbar.NewLightBar()
	bar.SetRealtime(false)

	for i := 0; i < 100; i++ {
		test.DemandSuccess(t, bar.Step(0))
	}

	dig, err := digest.NewLights(bar)
	test.DemandSuccess(t, err)

	for _, v := range []uint8{1, 1, 2, 3} {
		test.DemandSuccess(t, bar.Step(v))
	}
	test.DemandSuccess(t, dig.Flush())

	test.ExpectEquality(t, dig.Hash(), hashOfRun(t, []uint8{1, 1, 2, 3}))
}

func TestLights_chaining(t *testing.T) {
	bar := lightbar.NewLightBar()
	bar.SetRealtime(false)

	dig, err := digest.NewLights(bar)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, bar.Step(0x01))
	test.DemandSuccess(t, dig.Flush())
	a := dig.Hash()

	// flushing again with no new events still folds the previous hash back
	// into the buffer so the value moves on
	test.DemandSuccess(t, dig.Flush())
	b := dig.Hash()
	test.ExpectInequality(t, a, b)
}

func TestLights_reset(t *testing.T) {
	bar := lightbar.NewLightBar()
	bar.SetRealtime(false)

	dig, err := digest.NewLights(bar)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, bar.Step(0xff))
	test.DemandSuccess(t, dig.Flush())
	test.ExpectInequality(t, dig.Hash(), strings.Repeat("0", 40))

	dig.ResetDigest()
	test.ExpectEquality(t, dig.Hash(), strings.Repeat("0", 40))
}
