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

// Package memory implements the instruction memory of the Fib-1. The memory
// is a 16 entry store of 8 bit words with a registered read port and an
// independent write port.
//
// The read port is synchronous with one edge of latency. The address
// presented in the Addr register selects the word that appears in the Data
// register after the next call to Step()/Commit(). The write port commits on
// every edge for which WriteEnable is high. Nothing in the Fib-1 design ever
// drives the write port but it is part of the memory's contract and the
// debugger makes use of it indirectly through Poke().
package memory

import (
	"fmt"
	"strings"
)

// Size of the memory in words. Addresses are 4 bits wide so out-of-range
// addressing cannot occur.
const Size = 16

// AddrMask is applied to all values entering the address registers.
const AddrMask = Size - 1

// Memory implements the instruction store of the Fib-1.
type Memory struct {
	// address presented to the read port. driven from the program counter by
	// the processor on every edge
	Addr uint8

	// registered output of the read port. reflects the contents at the
	// address presented on the previous edge
	Data uint8

	// the write port. commits WriteData to WriteAddr on any edge for which
	// WriteEnable is high
	WriteAddr   uint8
	WriteData   uint8
	WriteEnable bool

	contents [Size]uint8

	// values staged by Step() and applied by Commit()
	nextData  uint8
	nextWrite uint8
	writing   bool
	writeAddr uint8
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The contents of the supplied image are copied into the store. An image
// shorter than the memory leaves the remaining words at zero.
func NewMemory(image []uint8) *Memory {
	mem := &Memory{}
	copy(mem.contents[:], image)
	return mem
}

// Reset the port registers. The contents of the memory are left untouched,
// matching the behaviour of the synthesised block RAM which is initialised
// at configuration time and not by the reset line.
func (mem *Memory) Reset() {
	mem.Addr = 0
	mem.Data = 0
	mem.WriteAddr = 0
	mem.WriteData = 0
	mem.WriteEnable = false
}

// Step computes the next state of the port registers from a snapshot of the
// current state. No visible state changes until Commit().
func (mem *Memory) Step() {
	mem.nextData = mem.contents[mem.Addr&AddrMask]

	mem.writing = mem.WriteEnable
	if mem.writing {
		mem.writeAddr = mem.WriteAddr & AddrMask
		mem.nextWrite = mem.WriteData
	}
}

// Commit the values staged by Step().
func (mem *Memory) Commit() {
	mem.Data = mem.nextData
	if mem.writing {
		mem.contents[mem.writeAddr] = mem.nextWrite
	}
}

// Peek returns the word at the supplied address, bypassing the read port.
// For debugging only.
func (mem *Memory) Peek(addr uint8) uint8 {
	return mem.contents[addr&AddrMask]
}

// Poke writes the word at the supplied address, bypassing the write port.
// For debugging only.
func (mem *Memory) Poke(addr uint8, data uint8) {
	mem.contents[addr&AddrMask] = data
}

func (mem *Memory) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("addr=%#04x data=%#04x\n", mem.Addr, mem.Data))
	for i := 0; i < Size; i++ {
		if uint8(i) == mem.Addr&AddrMask {
			s.WriteString(fmt.Sprintf("[%02x]", mem.contents[i]))
		} else {
			s.WriteString(fmt.Sprintf(" %02x ", mem.contents[i]))
		}
	}
	return strings.TrimRight(s.String(), " ")
}
