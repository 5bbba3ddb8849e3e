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

package processor_test

import (
	"testing"

	"github.com/jetsetilly/fibula/hardware/memory"
	"github.com/jetsetilly/fibula/hardware/processor"
	"github.com/jetsetilly/fibula/hardware/processor/instructions"
	"github.com/jetsetilly/fibula/hardware/registers"
	"github.com/jetsetilly/fibula/test"
)

type harness struct {
	mem  *memory.Memory
	regs *registers.RegisterFile
	proc *processor.Processor
}

func newHarness(img []uint8) *harness {
	h := &harness{
		mem:  memory.NewMemory(img),
		regs: registers.NewRegisterFile(),
	}
	h.proc = processor.NewProcessor(h.mem, h.regs)
	return h
}

// edge advances every component by one clock edge
func (h *harness) edge(enable bool) {
	h.proc.Enable = enable
	h.mem.Step()
	h.regs.Step()
	h.proc.Step()
	h.mem.Commit()
	h.regs.Commit()
	h.proc.Commit()
}

// cycle runs a disabled edge followed by an enabled edge, imitating the
// top-level clock divider. the one memory read in flight catches up with the
// address register during the disabled edge
func (h *harness) cycle() {
	h.edge(false)
	h.edge(true)
}

func (h *harness) run(cycles int) {
	for i := 0; i < cycles; i++ {
		h.cycle()
	}
}

// wake pulses the WakeIn input for the duration of one cycle
func (h *harness) wake() {
	h.proc.WakeIn = true
	h.cycle()
	h.proc.WakeIn = false
}

// parked returns true if the processor is stalled on a WFI instruction
func (h *harness) parked() bool {
	return h.proc.State == processor.Decoding && instructions.Decode(h.proc.Inst) == instructions.Wfi
}

// image assembles a full size memory image from the list of opcodes. words
// not covered by the list are left as zero, which decodes as JUMP
func image(ops ...instructions.Opcode) []uint8 {
	img := make([]uint8, memory.Size)
	for i, op := range ops {
		img[i] = uint8(op)
	}
	return img
}

func TestProgramFlow(t *testing.T) {
	h := newHarness(instructions.FibonacciImage())

	// prologue: LOAD SWAP LOAD OUT. each instruction takes a fetch cycle and
	// a decode cycle
	h.run(8)
	test.ExpectEquality(t, h.proc.Out, 1)
	test.ExpectEquality(t, h.regs.A, 1)
	test.ExpectEquality(t, h.regs.B, 1)

	// the JUMP at the end of the prologue lands on the WFI at the head of
	// the steady state loop. generous number of cycles to prove the stall
	h.run(20)
	test.ExpectSuccess(t, h.parked())
	test.ExpectEquality(t, h.proc.PC, processor.JumpTarget+1)
	test.ExpectEquality(t, h.proc.Out, 1)

	// each wake releases one trip around the loop: SWAP ADD OUT JUMP WFI
	h.wake()
	h.run(6)
	test.ExpectEquality(t, h.proc.Out, 2)
	h.run(10)
	test.ExpectSuccess(t, h.parked())

	h.wake()
	h.run(6)
	test.ExpectEquality(t, h.proc.Out, 3)
	h.run(10)
	test.ExpectSuccess(t, h.parked())

	h.wake()
	h.run(6)
	test.ExpectEquality(t, h.proc.Out, 5)
}

func TestJumpTarget(t *testing.T) {
	// the words following a JUMP look like an operand but the jump target is
	// hardcoded in the decoder. two images that differ only in those words
	// must produce identical program counter trajectories
	imgA := image(instructions.Load, instructions.Out, instructions.Jump)
	imgB := image(instructions.Load, instructions.Out, instructions.Jump)
	for i := 3; i < 8; i++ {
		imgB[i] = uint8(instructions.Add)
	}
	imgA[8] = uint8(instructions.Out)
	imgA[9] = uint8(instructions.Jump)
	imgB[8] = uint8(instructions.Out)
	imgB[9] = uint8(instructions.Jump)

	a := newHarness(imgA)
	b := newHarness(imgB)

	for i := 0; i < 40; i++ {
		a.cycle()
		b.cycle()
		test.ExpectEquality(t, a.proc.PC, b.proc.PC, "cycle", i)
		test.ExpectEquality(t, a.proc.Out, b.proc.Out, "cycle", i)
	}
}

func TestWfiGating(t *testing.T) {
	img := image(instructions.Wfi, instructions.Load, instructions.Out)

	h := newHarness(img)
	h.run(2)
	test.ExpectSuccess(t, h.parked())

	// no amount of running makes progress without a wake pulse
	h.run(100)
	test.ExpectSuccess(t, h.parked())
	test.ExpectEquality(t, h.proc.PC, 1)
	test.ExpectEquality(t, h.proc.Out, 0)

	h.wake()
	test.ExpectFailure(t, h.parked())
	test.ExpectSuccess(t, !h.proc.Wake)

	// LOAD and OUT follow
	h.run(4)
	test.ExpectEquality(t, h.proc.Out, 1)
}

func TestWfiEarlyLatch(t *testing.T) {
	img := image(instructions.Load, instructions.Wfi, instructions.Out)
	img[8] = uint8(instructions.Wfi)

	h := newHarness(img)

	// the wake pulse arrives while the processor is still working through
	// the LOAD. the latch holds it until the WFI is reached
	h.wake()
	test.ExpectSuccess(t, h.proc.Wake)

	// fetch LOAD is cycle one (performed by the wake call), decode LOAD,
	// fetch WFI, decode WFI, fetch OUT, decode OUT. the WFI consumes the
	// latched wake without stalling
	h.run(5)
	test.ExpectEquality(t, h.proc.Out, 1)
	test.ExpectSuccess(t, !h.proc.Wake)
}

func TestRegisterPulseWidth(t *testing.T) {
	img := image(instructions.Add, instructions.Out)

	h := newHarness(img)
	h.regs.A = 3
	h.regs.B = 4

	// fetch and decode the ADD. the decode edge raises the pulse
	h.run(2)
	test.ExpectSuccess(t, h.regs.DoAdd)
	test.ExpectEquality(t, h.regs.A, 3)

	// the pulse is consumed and cleared on the very next edge
	h.edge(false)
	test.ExpectSuccess(t, !h.regs.DoAdd)
	test.ExpectEquality(t, h.regs.A, 7)

	// and the addition does not repeat
	h.edge(true)
	test.ExpectEquality(t, h.regs.A, 7)
}

func TestReservedOpcodes(t *testing.T) {
	img := image(instructions.Load, 0b110, 0b111, instructions.Out)
	img[8] = uint8(instructions.Wfi)

	h := newHarness(img)

	// LOAD, two reserved words, OUT. the reserved words decode to nothing
	// and the processor moves on to the next fetch
	h.run(8)
	test.ExpectEquality(t, h.proc.Out, 1)
	test.ExpectEquality(t, h.regs.A, 1)
	test.ExpectEquality(t, h.regs.B, 0)
}

func TestDisabledHold(t *testing.T) {
	h := newHarness(instructions.FibonacciImage())

	// without the enable input nothing in the state machine moves
	for i := 0; i < 10; i++ {
		h.edge(false)
	}
	test.ExpectEquality(t, h.proc.PC, 0)
	test.ExpectEquality(t, h.proc.State, processor.Fetching)

	// but the wake latch is not gated. a pulse arriving while the processor
	// is disabled is not lost
	h.proc.WakeIn = true
	h.edge(false)
	h.proc.WakeIn = false
	test.ExpectSuccess(t, h.proc.Wake)

	for i := 0; i < 10; i++ {
		h.edge(false)
	}
	test.ExpectSuccess(t, h.proc.Wake)
}

func TestReset(t *testing.T) {
	h := newHarness(instructions.FibonacciImage())
	h.run(30)
	test.ExpectSuccess(t, h.parked())

	h.proc.Reset()
	h.regs.Reset()
	h.mem.Reset()
	test.ExpectEquality(t, h.proc.PC, 0)
	test.ExpectEquality(t, h.proc.Out, 0)
	test.ExpectEquality(t, h.proc.State, processor.Fetching)

	// the program runs identically after a reset
	h.run(8)
	test.ExpectEquality(t, h.proc.Out, 1)
}
