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

package testbench

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestBench(t *testing.T) *Bench {
	t.Helper()
	t.Setenv("FIBULA_HOME", t.TempDir())

	bch, err := NewBench(nil)
	assert.NoError(t, err)

	return bch
}

func TestBenchSequence(t *testing.T) {
	assert := assert.New(t)
	bch := newTestBench(t)

	script := []string{
		"settle()",
		"expect(lights() == 1, 'output after power-on')",
		"for want in [2, 3, 5, 8, 13, 21, 34]:",
		"    tap()",
		"    expect(lights() == want, 'sequence at %d' % want)",
	}
	err := bch.RunString(strings.Join(script, "\n"))
	assert.NoError(err)
}

func TestBenchPressAndRun(t *testing.T) {
	assert := assert.New(t)
	bch := newTestBench(t)

	script := []string{
		"settle()",
		"expect(pc() == 9, 'parked past the wfi')",
		"expect(reg_a() == 1 and reg_b() == 1, 'registers after the prologue')",
		"press()",
		"n = run_until_out()",
		"expect(lights() == 2, 'first advance')",
		"expect(n < 100, 'wake is prompt')",
		"release()",
		"settle()",
	}
	err := bch.RunString(strings.Join(script, "\n"))
	assert.NoError(err)
}

func TestBenchTap(t *testing.T) {
	assert := assert.New(t)
	bch := newTestBench(t)

	err := bch.RunString("tap(3)\nexpect(lights() == 5, 'three taps')")
	assert.NoError(err)

	// the machine the builtins report on is the real one
	assert.Equal(uint8(5), bch.fib.Proc.Out)
}

func TestBenchReset(t *testing.T) {
	assert := assert.New(t)
	bch := newTestBench(t)

	script := []string{
		"tap(2)",
		"expect(lights() == 3, 'two taps')",
		"reset()",
		"run_until_out()",
		"expect(lights() == 1, 'back to the start')",
	}
	err := bch.RunString(strings.Join(script, "\n"))
	assert.NoError(err)
}

func TestBenchStep(t *testing.T) {
	assert := assert.New(t)
	bch := newTestBench(t)

	// two edges for the enable line to come up and one for the first fetch
	err := bch.RunString("step(3)\nexpect(pc() == 1, 'first fetch done')")
	assert.NoError(err)
}

func TestBenchWhileLoop(t *testing.T) {
	assert := assert.New(t)
	bch := newTestBench(t)

	script := []string{
		"n = 0",
		"while lights() != 1:",
		"    step(100)",
		"    n += 1",
		"expect(n > 0, 'took at least one pass')",
	}
	err := bch.RunString(strings.Join(script, "\n"))
	assert.NoError(err)
}

func TestBenchExpectFailure(t *testing.T) {
	assert := assert.New(t)
	bch := newTestBench(t)

	err := bch.RunString("settle()\nexpect(False, 'doomed')")
	assert.Error(err)
	assert.Contains(err.Error(), "expectation failed: doomed")

	// the error names the position in the script
	assert.Contains(err.Error(), "bench:2")
}

func TestBenchHeldButton(t *testing.T) {
	assert := assert.New(t)
	bch := newTestBench(t)

	// a press held down advances the sequence exactly once. after that the
	// debouncer waits for a release and a settle can never finish
	script := []string{
		"press()",
		"settle()",
		"run_until_out()",
		"expect(lights() == 2, 'held press advances once')",
		"settle()",
	}
	err := bch.RunString(strings.Join(script, "\n"))
	assert.Error(err)
	assert.Contains(err.Error(), "did not reach")
}

func TestBenchSyntaxError(t *testing.T) {
	assert := assert.New(t)
	bch := newTestBench(t)

	err := bch.RunString("expect(")
	assert.Error(err)
	assert.Contains(err.Error(), "bench:1")
}

func TestBenchPrint(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("FIBULA_HOME", t.TempDir())

	output := &bytes.Buffer{}
	bch, err := NewBench(output)
	assert.NoError(err)

	err = bch.RunString("print('hello from the bench')")
	assert.NoError(err)
	assert.Contains(output.String(), "hello from the bench")
}

func TestBenchRunFile(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("FIBULA_HOME", t.TempDir())

	scriptFile := filepath.Join(t.TempDir(), "sequence.bench")
	script := "tap(2)\nexpect(lights() == 3, 'two taps')\n"
	err := os.WriteFile(scriptFile, []byte(script), 0644)
	assert.NoError(err)

	output := &bytes.Buffer{}
	err = Run(output, scriptFile)
	assert.NoError(err)
	assert.Contains(output.String(), "ok (")
}

func TestBenchRunFileFailure(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("FIBULA_HOME", t.TempDir())

	scriptFile := filepath.Join(t.TempDir(), "fail.bench")
	err := os.WriteFile(scriptFile, []byte("settle()\nexpect(False, 'doomed')\n"), 0644)
	assert.NoError(err)

	err = Run(&bytes.Buffer{}, scriptFile)
	assert.Error(err)
	assert.Contains(err.Error(), "fail.bench:2")
	assert.Contains(err.Error(), "doomed")
}
