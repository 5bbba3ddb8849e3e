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

// Package processor implements the control unit of the Fib-1. The processor
// fetches from the instruction memory, decodes the opcode and drives the
// register file, the program counter and the output latch.
//
// The processor is clock-gated by the Enable input. On edges where Enable is
// low the control state machine and its registers hold. Two things are not
// gated, matching the synthesised design: the memory address register, which
// follows the program counter on every edge, and the wake latch, which
// samples the WakeIn input on every edge so that a wake pulse cannot be
// missed while the processor is disabled.
package processor

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/fibula/hardware/memory"
	"github.com/jetsetilly/fibula/hardware/processor/instructions"
	"github.com/jetsetilly/fibula/hardware/registers"
)

// JumpTarget is the program counter value installed by the JUMP instruction.
//
// The target is hardcoded by the decoder. The words following a JUMP in the
// program image look like an operand field but they are never read, which
// suggests a general jump was planned at some point and then simplified. The
// instruction is best understood as "return to the steady state loop" and
// nothing more.
const JumpTarget = 0x8

// State records which stage of the fetch/decode cycle the processor is in.
type State int

// List of processor states. The processor is in the Fetching state
// immediately after reset.
const (
	Fetching State = iota
	Decoding
	MovingPC
)

func (s State) String() string {
	switch s {
	case Fetching:
		return "fetching"
	case Decoding:
		return "decoding"
	case MovingPC:
		return "moving pc"
	}
	return "unknown"
}

// Processor implements the control unit of the Fib-1.
type Processor struct {
	mem  *memory.Memory
	regs *registers.RegisterFile

	// the program counter wraps modulo the size of the instruction memory
	PC uint8

	// the most recently fetched instruction word
	Inst uint8

	// the output latch. written only by the OUT instruction and held
	// otherwise. bit i of the latch drives light i on the lightbar
	Out uint8

	// the wake latch. set by a pulse on WakeIn and held until consumed by a
	// WFI instruction
	Wake bool

	State State

	// inputs. both are registers driven by the top-level wiring
	Enable bool
	WakeIn bool

	// values staged by Step() and applied by Commit()
	nextPC     uint8
	nextInst   uint8
	nextOut    uint8
	nextWake   bool
	nextState  State
	nextAddr   uint8
	nextDoSwap bool
	nextDoAdd  bool
	nextDoLoad bool
}

// NewProcessor is the preferred method of initialisation for the Processor
// type.
func NewProcessor(mem *memory.Memory, regs *registers.RegisterFile) *Processor {
	return &Processor{
		mem:  mem,
		regs: regs,
	}
}

// Reset the processor to its initial state. The program counter, the
// instruction register, the output latch and the wake latch all return to
// zero and the state machine returns to Fetching.
func (proc *Processor) Reset() {
	proc.PC = 0
	proc.Inst = 0
	proc.Out = 0
	proc.Wake = false
	proc.State = Fetching
	proc.Enable = false
	proc.WakeIn = false
}

// Step computes the processor's next state from a snapshot of the current
// state. No registers change until Commit().
func (proc *Processor) Step() {
	// assignments that happen on every edge regardless of Enable: the memory
	// address register tracks the program counter, the register file pulses
	// clear, and the wake latch holds or samples WakeIn
	proc.nextAddr = proc.PC
	proc.nextDoSwap = false
	proc.nextDoAdd = false
	proc.nextDoLoad = false
	if proc.Wake {
		proc.nextWake = true
	} else {
		proc.nextWake = proc.WakeIn
	}

	proc.nextPC = proc.PC
	proc.nextInst = proc.Inst
	proc.nextOut = proc.Out
	proc.nextState = proc.State

	if !proc.Enable {
		return
	}

	switch proc.State {
	case Fetching:
		proc.nextInst = proc.mem.Data
		proc.nextPC = (proc.PC + 1) & memory.AddrMask
		proc.nextState = Decoding

	case Decoding:
		switch instructions.Decode(proc.Inst) {
		case instructions.Jump:
			proc.nextPC = JumpTarget
			proc.nextState = MovingPC

		case instructions.Add:
			proc.nextDoAdd = true
			proc.nextState = Fetching

		case instructions.Swap:
			proc.nextDoSwap = true
			proc.nextState = Fetching

		case instructions.Load:
			proc.nextDoLoad = true
			proc.nextState = Fetching

		case instructions.Wfi:
			// the processor parks here until the wake latch is set. this is
			// the only state in which an enabled edge does not guarantee
			// progress
			if proc.Wake {
				proc.nextWake = false
				proc.nextState = Fetching
			}

		case instructions.Out:
			proc.nextOut = uint8(proc.regs.A)
			proc.nextState = Fetching

		default:
			// reserved opcodes perform no operation and fall through to the
			// next fetch
			proc.nextState = Fetching
		}

	case MovingPC:
		// a one edge bubble after a jump. the fetch that follows sees the
		// memory data register caught up with the new program counter
		proc.nextState = Fetching
	}
}

// Commit the values staged by Step(). As well as the processor's own
// registers this applies the registered writes the processor drives into the
// memory and the register file.
func (proc *Processor) Commit() {
	proc.PC = proc.nextPC
	proc.Inst = proc.nextInst
	proc.Out = proc.nextOut
	proc.Wake = proc.nextWake
	proc.State = proc.nextState

	proc.mem.Addr = proc.nextAddr
	proc.regs.DoSwap = proc.nextDoSwap
	proc.regs.DoAdd = proc.nextDoAdd
	proc.regs.DoLoad = proc.nextDoLoad
}

func (proc *Processor) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("pc=%#04x inst=%02x (%s) out=%#04x", proc.PC, proc.Inst, instructions.Decode(proc.Inst), proc.Out))
	s.WriteString(fmt.Sprintf(" [%s", proc.State))
	if proc.Wake {
		s.WriteString(" wake")
	}
	s.WriteString("]")
	return s.String()
}
