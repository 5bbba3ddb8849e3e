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

package instructions_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/fibula/hardware/processor/instructions"
	"github.com/jetsetilly/fibula/test"
)

func TestDecode(t *testing.T) {
	// only the low 3 bits select the operation
	test.ExpectEquality(t, instructions.Decode(0b00000001), instructions.Add)
	test.ExpectEquality(t, instructions.Decode(0b11111001), instructions.Add)
	test.ExpectEquality(t, instructions.Decode(0b00000000), instructions.Jump)
}

func TestReserved(t *testing.T) {
	test.ExpectSuccess(t, instructions.Opcode(0b110).IsReserved())
	test.ExpectSuccess(t, instructions.Opcode(0b111).IsReserved())
	for op := instructions.Jump; op <= instructions.Out; op++ {
		test.ExpectFailure(t, op.IsReserved(), op)
	}
}

func TestShippedImage(t *testing.T) {
	// the shipped program must never encode a reserved opcode
	img := instructions.FibonacciImage()
	test.DemandEquality(t, len(img), instructions.MaxImageSize)
	test.ExpectSuccess(t, instructions.ValidateImage(img))
}

func TestValidateImage(t *testing.T) {
	// a corrupted image is rejected with the reserved opcode error
	img := instructions.FibonacciImage()
	img[9] = 0b110
	err := instructions.ValidateImage(img)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, instructions.ErrReservedOpcode))

	// an oversized image is rejected
	img = make([]uint8, instructions.MaxImageSize+1)
	err = instructions.ValidateImage(img)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, instructions.ErrImageSize))

	// an empty image is fine
	test.ExpectSuccess(t, instructions.ValidateImage(nil))
}

func TestDisassemble(t *testing.T) {
	dsm := instructions.Disassemble(instructions.FibonacciImage())
	test.DemandEquality(t, len(dsm), instructions.MaxImageSize)
	test.ExpectEquality(t, dsm[0], "0x00  03  LOAD")
	test.ExpectEquality(t, dsm[8], "0x08  04  WFI")
	test.ExpectEquality(t, dsm[12], "0x0c  00  JUMP")
}
