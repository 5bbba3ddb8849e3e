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

// Package hardware assembles the components of the Fib-1 into a complete
// machine. The Fib type is the machine. Everything else in the simulation,
// the debugger, the play window, the regression runner, works by stepping a
// Fib and looking at what happened.
//
// The machine is synchronous. A call to Step() is one edge of the crystal
// clock and every register in every component changes at that moment and no
// other. Between calls the simulation is perfectly still and can be
// inspected safely.
package hardware

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware/debounce"
	"github.com/jetsetilly/fibula/hardware/lightbar"
	"github.com/jetsetilly/fibula/hardware/memory"
	"github.com/jetsetilly/fibula/hardware/panel"
	"github.com/jetsetilly/fibula/hardware/preferences"
	"github.com/jetsetilly/fibula/hardware/processor"
	"github.com/jetsetilly/fibula/hardware/processor/instructions"
	"github.com/jetsetilly/fibula/hardware/registers"
	"github.com/jetsetilly/fibula/prefs"
)

// LineProbe is called at the end of every machine edge with the state of the
// button conditioning circuit: the raw sampled line and the debouncer's
// settled belief. Used by the wavline package to record line traces.
type LineProbe func(edge uint64, raw bool, settled bool)

// Fib is the main container for the simulated components of the Fib-1.
type Fib struct {
	Env *environment.Environment

	Mem   *memory.Memory
	Regs  *registers.RegisterFile
	Proc  *processor.Processor
	Deb   *debounce.Debouncer
	Panel *panel.Panel

	// SHA-1 of the instruction memory image most recently attached to the
	// machine. Recordings and regression entries use this to make sure they
	// are replaying against the same program.
	ImageHash string

	// the lightbar is not part of the machine but is attached to it
	Bar *lightbar.LightBar

	// the clock divider. the processor's enable input follows this register,
	// meaning the processor sees every second edge
	divider bool

	// values staged for the top-level registers during Step()
	nextEnable bool
	nextWakeIn bool
	nextRawIn  bool

	probe LineProbe
}

// NewFib creates a new Fib-1 machine and loads it with the standard
// Fibonacci program. It is used for all aspects of simulation: debugging
// sessions, play sessions and regression runs.
//
// The two optional arguments, compare with NewEnvironment(), can be nil for
// sensible defaults.
func NewFib(label environment.Label, bar *lightbar.LightBar, prf *preferences.Preferences) (*Fib, error) {
	if bar == nil {
		bar = lightbar.NewLightBar()
	}

	fib := &Fib{
		Bar:   bar,
		Regs:  registers.NewRegisterFile(),
		Deb:   debounce.NewDebouncer(),
		Panel: panel.NewPanel(),
	}

	var err error

	fib.Env, err = environment.NewEnvironment(label, bar, prf)
	if err != nil {
		return nil, fmt.Errorf("fib: %w", err)
	}

	// the realtime preference is live. changing it in the GUI or with the
	// PREFS command takes effect without a restart
	bar.SetRealtime(fib.Env.Prefs.Realtime.Get().(bool))
	fib.Env.Prefs.Realtime.SetHook(func(v prefs.Value) error {
		bar.SetRealtime(v.(bool))
		return nil
	})

	err = fib.AttachImage(nil)
	if err != nil {
		return nil, err
	}

	return fib, nil
}

// AttachImage fits the machine with a new instruction memory image and
// resets it. A nil image means the standard Fibonacci program.
//
// The image is checked before use. An image with a reserved opcode in it
// does not describe a machine that could have been synthesised and is
// rejected.
func (fib *Fib) AttachImage(img []uint8) error {
	if img == nil {
		img = instructions.FibonacciImage()
	}

	err := instructions.ValidateImage(img)
	if err != nil {
		return fmt.Errorf("fib: %w", err)
	}

	// hash the image at the full width of the memory so that a short image
	// and its zero-padded equivalent describe the same machine
	var image [memory.Size]uint8
	copy(image[:], img)
	fib.ImageHash = fmt.Sprintf("%x", sha1.Sum(image[:]))

	fib.Mem = memory.NewMemory(img)
	fib.Proc = processor.NewProcessor(fib.Mem, fib.Regs)

	return fib.Reset()
}

// Reset the machine. This is the equivalent of a power cycle. Every register
// in every component returns to its initial value.
//
// The state of the panel is deliberately untouched. The buttons belong to
// the user's hands, not to the machine.
func (fib *Fib) Reset() error {
	fib.Mem.Reset()
	fib.Regs.Reset()
	fib.Proc.Reset()
	fib.Deb.Reset()
	fib.divider = false

	return fib.Bar.Reset()
}

// SetLineProbe attaches a probe to the button conditioning circuit. A nil
// probe removes any existing probe.
func (fib *Fib) SetLineProbe(probe LineProbe) {
	fib.probe = probe
}

func (fib *Fib) String() string {
	return fmt.Sprintf("%s\n%s\n%s\n%s", fib.Proc, fib.Regs, fib.Deb, fib.Bar)
}
