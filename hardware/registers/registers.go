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

// Package registers implements the register file of the Fib-1: two 32 bit
// registers driven by three one-edge control pulses.
package registers

import "fmt"

// RegisterFile implements the two working registers of the Fib-1.
type RegisterFile struct {
	A uint32
	B uint32

	// control pulses. driven by the processor and cleared by it on the
	// following edge, so each is high for exactly one edge at a time. if
	// more than one is high the control logic resolves the conflict with
	// strict priority: swap, then add, then load
	DoSwap bool
	DoAdd  bool
	DoLoad bool

	nextA uint32
	nextB uint32
}

// NewRegisterFile is the preferred method of initialisation for the
// RegisterFile type.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Reset the registers and control pulses to zero.
func (reg *RegisterFile) Reset() {
	reg.A = 0
	reg.B = 0
	reg.DoSwap = false
	reg.DoAdd = false
	reg.DoLoad = false
}

// Step computes the next register values from a snapshot of the current
// state. The swap operation in particular depends on both registers reading
// their pre-edge values.
func (reg *RegisterFile) Step() {
	reg.nextA = reg.A
	reg.nextB = reg.B

	if reg.DoSwap {
		reg.nextA = reg.B
		reg.nextB = reg.A
	} else if reg.DoAdd {
		reg.nextA = reg.A + reg.B
	} else if reg.DoLoad {
		reg.nextA = 1
	}
}

// Commit the values staged by Step().
func (reg *RegisterFile) Commit() {
	reg.A = reg.nextA
	reg.B = reg.nextB
}

func (reg *RegisterFile) String() string {
	op := ""
	if reg.DoSwap {
		op = " (swap)"
	} else if reg.DoAdd {
		op = " (add)"
	} else if reg.DoLoad {
		op = " (load)"
	}
	return fmt.Sprintf("a=%08x b=%08x%s", reg.A, reg.B, op)
}
