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

	"github.com/jetsetilly/fibula/hardware/clocks"
	"github.com/jetsetilly/fibula/hardware/debounce"
	"github.com/jetsetilly/fibula/hardware/panel"
	"github.com/jetsetilly/fibula/hardware/processor"
	"github.com/jetsetilly/fibula/hardware/processor/instructions"
	"go.starlark.net/starlark"
)

// upper bound on any wait inside a builtin. the longest legitimate wait is
// two settling windows back to back
const waitLimit = 8 * clocks.DebounceWindow

// globals returns the predeclared environment for bench scripts. Every
// builtin operates on the bench's machine.
func (bch *Bench) globals() starlark.StringDict {
	return starlark.StringDict{
		"reset":         starlark.NewBuiltin("reset", bch.reset),
		"step":          starlark.NewBuiltin("step", bch.step),
		"press":         starlark.NewBuiltin("press", bch.press),
		"release":       starlark.NewBuiltin("release", bch.release),
		"tap":           starlark.NewBuiltin("tap", bch.tap),
		"settle":        starlark.NewBuiltin("settle", bch.settle),
		"run_until_out": starlark.NewBuiltin("run_until_out", bch.runUntilOut),
		"lights":        starlark.NewBuiltin("lights", bch.lights),
		"pc":            starlark.NewBuiltin("pc", bch.pc),
		"reg_a":         starlark.NewBuiltin("reg_a", bch.regA),
		"reg_b":         starlark.NewBuiltin("reg_b", bch.regB),
		"expect":        starlark.NewBuiltin("expect", bch.expect),
	}
}

// waitDebounce runs the machine until the debouncer reaches the target
// state, returning the number of edges consumed.
func (bch *Bench) waitDebounce(target debounce.State) (int, error) {
	ct := 0
	for bch.fib.Deb.State != target {
		if ct >= waitLimit {
			return ct, fmt.Errorf("debouncer did not reach the %s state within %d edges", target, waitLimit)
		}
		if err := bch.fib.Step(); err != nil {
			return ct, err
		}
		ct++
	}
	return ct, nil
}

func (bch *Bench) reset(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if err := bch.fib.Reset(); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (bch *Bench) step(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	n := 1
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &n); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("%s: the number of edges must be positive", b.Name())
	}
	for i := 0; i < n; i++ {
		if err := bch.fib.Step(); err != nil {
			return nil, err
		}
	}
	return starlark.None, nil
}

func (bch *Bench) press(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if err := bch.fib.Panel.HandleEvent(panel.ButtonSet, true); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (bch *Bench) release(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if err := bch.fib.Panel.HandleEvent(panel.ButtonSet, false); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// one tap is a full press/release cycle as the debouncer understands it:
// wait for the line to be ready, press until the press is accepted, release
// and wait for the release to settle. each tap advances the standard
// program by one term of the sequence.
func (bch *Bench) tap(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	n := 1
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &n); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("%s: the number of taps must be positive", b.Name())
	}

	// the button may have been left held by an earlier press()
	if err := bch.fib.Panel.HandleEvent(panel.ButtonSet, false); err != nil {
		return nil, err
	}

	ct := 0
	for i := 0; i < n; i++ {
		e, err := bch.waitDebounce(debounce.WaitPress)
		ct += e
		if err != nil {
			return nil, err
		}

		if err := bch.fib.Panel.HandleEvent(panel.ButtonSet, true); err != nil {
			return nil, err
		}

		e, err = bch.waitDebounce(debounce.DebouncePress)
		ct += e
		if err != nil {
			return nil, err
		}

		if err := bch.fib.Panel.HandleEvent(panel.ButtonSet, false); err != nil {
			return nil, err
		}
	}

	// leave the machine ready for whatever the script does next
	e, err := bch.waitDebounce(debounce.WaitPress)
	ct += e
	if err != nil {
		return nil, err
	}

	return starlark.MakeInt(ct), nil
}

func (bch *Bench) settle(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	ct, err := bch.waitDebounce(debounce.WaitPress)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(ct), nil
}

// an OUT instruction has committed on the edge where the processor moves
// from decoding back to fetching. the lightbar is updated on that same edge
// so a following lights() sees the fresh value.
func (bch *Bench) runUntilOut(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}

	ct := 0
	for {
		if ct >= waitLimit {
			return nil, fmt.Errorf("%s: no OUT instruction within %d edges", b.Name(), waitLimit)
		}

		prev := bch.fib.Proc.State
		if err := bch.fib.Step(); err != nil {
			return nil, err
		}
		ct++

		if prev == processor.Decoding && bch.fib.Proc.State == processor.Fetching &&
			instructions.Decode(bch.fib.Proc.Inst) == instructions.Out {
			return starlark.MakeInt(ct), nil
		}
	}
}

func (bch *Bench) lights(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(bch.fib.Bar.Lights())), nil
}

func (bch *Bench) pc(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(bch.fib.Proc.PC)), nil
}

func (bch *Bench) regA(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt64(int64(bch.fib.Regs.A)), nil
}

func (bch *Bench) regB(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt64(int64(bch.fib.Regs.B)), nil
}

func (bch *Bench) expect(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var cond starlark.Value
	msg := ""
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &cond, &msg); err != nil {
		return nil, err
	}
	if !bool(cond.Truth()) {
		if msg == "" {
			return nil, errors.New("expectation failed")
		}
		return nil, fmt.Errorf("expectation failed: %s", msg)
	}
	return starlark.None, nil
}
