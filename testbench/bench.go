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
	"errors"
	"fmt"
	"io"

	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Bench is a machine harnessed for scripting. The machine is headless and
// runs as fast as the host allows.
type Bench struct {
	fib *hardware.Fib

	// destination for the script's print() statements and for the report
	// written by Run()
	output io.Writer
}

// NewBench is the preferred method of initialisation for the Bench type. A
// nil output discards anything the script prints.
func NewBench(output io.Writer) (*Bench, error) {
	if output == nil {
		output = io.Discard
	}

	bch := &Bench{
		output: output,
	}

	var err error

	bch.fib, err = hardware.NewFib(environment.Testbench, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("testbench: %w", err)
	}

	// a bench runs normalised and uncapped. the same script gives the same
	// verdict on every run
	bch.fib.Env.Normalise()
	err = bch.fib.Env.Prefs.Realtime.Set(false)
	if err != nil {
		return nil, fmt.Errorf("testbench: %w", err)
	}

	return bch, nil
}

// RunFile executes the bench script in the named file.
func (bch *Bench) RunFile(filename string) error {
	return bch.exec(filename, nil)
}

// RunString executes src as a bench script.
func (bch *Bench) RunString(src string) error {
	return bch.exec("bench", src)
}

func (bch *Bench) exec(filename string, src any) error {
	thread := &starlark.Thread{
		Name: "testbench",
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(bch.output, msg)
		},
	}

	// bench scripts are imperative by nature so the control-flow dialect
	// options are all switched on
	opts := &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}

	_, err := starlark.ExecFileOptions(opts, thread, filename, src, bch.globals())
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return fmt.Errorf("testbench: %s", evalErr.Backtrace())
		}
		return fmt.Errorf("testbench: %w", err)
	}

	return nil
}

// Run executes the bench script in the named file against a fresh machine
// and reports the outcome to output. This is the entry point used by the
// BENCH mode of the main program.
func Run(output io.Writer, scriptFile string) error {
	bch, err := NewBench(output)
	if err != nil {
		return err
	}

	err = bch.RunFile(scriptFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s: ok (%d edges)\n", scriptFile, bch.fib.Bar.Edge())

	return nil
}
