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

// Package instructions defines the instruction set of the Fib-1 processor
// and the program it ships with.
//
// An instruction is a single 8 bit word. The operation is selected by the
// low 3 bits and the remaining bits are ignored by the decoder. There are no
// operand fields. The set is fixed and closed, it is not a general purpose
// ISA and nothing in this package supports extending it.
package instructions

import "fmt"

// Opcode is the 3 bit operation selector decoded from the low bits of a
// fetched instruction.
type Opcode uint8

// Mask isolates the opcode bits of an instruction word.
const Mask = 0b111

// List of valid opcodes. The two remaining encodings are reserved and decode
// as no-ops.
const (
	Jump Opcode = 0b000
	Add  Opcode = 0b001
	Swap Opcode = 0b010
	Load Opcode = 0b011
	Wfi  Opcode = 0b100
	Out  Opcode = 0b101
)

// Decode returns the Opcode encoded in an instruction word.
func Decode(word uint8) Opcode {
	return Opcode(word & Mask)
}

// IsReserved returns true if the opcode is one of the two encodings with no
// assigned operation.
func (op Opcode) IsReserved() bool {
	return op > Out
}

func (op Opcode) String() string {
	switch op {
	case Jump:
		return "JUMP"
	case Add:
		return "ADD"
	case Swap:
		return "SWAP"
	case Load:
		return "LOAD"
	case Wfi:
		return "WFI"
	case Out:
		return "OUT"
	}
	return fmt.Sprintf("??? (%03b)", uint8(op))
}
