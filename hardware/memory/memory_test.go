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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/fibula/hardware/memory"
	"github.com/jetsetilly/fibula/test"
)

func step(mem *memory.Memory) {
	mem.Step()
	mem.Commit()
}

func TestReadLatency(t *testing.T) {
	mem := memory.NewMemory([]uint8{0x0a, 0x0b, 0x0c})

	// an address presented at edge N is not visible at edge N. it is visible
	// at edge N+1 and stays until the address register changes
	for addr := uint8(0); addr < memory.Size; addr++ {
		mem.Addr = addr
		before := mem.Data
		mem.Step()
		test.ExpectEquality(t, mem.Data, before, "data register must not change before commit", addr)
		mem.Commit()
		test.ExpectEquality(t, mem.Data, mem.Peek(addr), "addr", addr)
	}
}

func TestWritePort(t *testing.T) {
	mem := memory.NewMemory(nil)

	// a write with enable low commits nothing
	mem.WriteAddr = 0x03
	mem.WriteData = 0xff
	step(mem)
	test.ExpectEquality(t, mem.Peek(0x03), 0)

	// with enable high the write commits on the following edge
	mem.WriteEnable = true
	mem.Step()
	test.ExpectEquality(t, mem.Peek(0x03), 0, "write must not land before commit")
	mem.Commit()
	test.ExpectEquality(t, mem.Peek(0x03), 0xff)

	// the write port is registered, so a write landing at the same edge as a
	// read of the same address returns the old value through the read port
	mem.Addr = 0x03
	mem.WriteData = 0x55
	step(mem)
	test.ExpectEquality(t, mem.Data, 0xff)
	test.ExpectEquality(t, mem.Peek(0x03), 0x55)

	// enable held high commits on every edge
	mem.WriteAddr = 0x04
	mem.WriteData = 0x01
	step(mem)
	test.ExpectEquality(t, mem.Peek(0x04), 0x01)
}

func TestAddressMasking(t *testing.T) {
	image := make([]uint8, memory.Size)
	for i := range image {
		image[i] = uint8(i)
	}
	mem := memory.NewMemory(image)

	// addresses are 4 bits. wider values wrap
	mem.Addr = 0x12
	step(mem)
	test.ExpectEquality(t, mem.Data, 0x02)

	test.ExpectEquality(t, mem.Peek(0x1f), 0x0f)
}

func TestReset(t *testing.T) {
	mem := memory.NewMemory([]uint8{0xaa})
	mem.Addr = 0x01
	mem.WriteEnable = true
	step(mem)

	mem.Reset()
	test.ExpectEquality(t, mem.Addr, 0)
	test.ExpectEquality(t, mem.Data, 0)
	test.ExpectEquality(t, mem.WriteEnable, false)

	// contents survive reset
	test.ExpectEquality(t, mem.Peek(0x00), 0xaa)
}
