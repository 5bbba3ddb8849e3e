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

package instructions

import (
	"errors"
	"fmt"
	"strings"
)

// MaxImageSize is the number of words in the instruction memory.
const MaxImageSize = 16

// sentinel errors returned by ValidateImage.
var (
	ErrImageSize      = errors.New("image is larger than the instruction memory")
	ErrReservedOpcode = errors.New("reserved opcode in image")
)

// FibonacciImage returns the program the Fib-1 ships with.
//
// The prologue at address 0x0 sets the registers to the first two values of
// the sequence and emits the first result. The loop from address 0x8 waits
// for the button, advances the sequence and emits the new value. The zero
// words after each JUMP are never fetched, the jump target is fixed at 0x8
// by the decoder.
func FibonacciImage() []uint8 {
	return []uint8{
		uint8(Load),
		uint8(Swap),
		uint8(Load),
		uint8(Out),

		uint8(Jump),
		0x00,
		0x00,
		0x00,

		uint8(Wfi),
		uint8(Swap),
		uint8(Add),
		uint8(Out),

		uint8(Jump),
		0x00,
		0x00,
		0x00,
	}
}

// ValidateImage checks a program image against the design's single
// design-time fault: the reserved opcodes must never appear. The policy for
// a reserved opcode is fixed (no operation, default advance) but its
// original intent is undocumented, so an image that encodes one is rejected
// rather than trusted.
func ValidateImage(image []uint8) error {
	if len(image) > MaxImageSize {
		return fmt.Errorf("instructions: %w: %d words", ErrImageSize, len(image))
	}

	for addr, word := range image {
		if op := Decode(word); op.IsReserved() {
			return fmt.Errorf("instructions: %w: %03b at address %#04x", ErrReservedOpcode, uint8(op), addr)
		}
	}

	return nil
}

// Disassemble returns a one line summary for every word in the image.
func Disassemble(image []uint8) []string {
	s := make([]string, 0, len(image))
	for addr, word := range image {
		s = append(s, fmt.Sprintf("%#04x  %02x  %s", addr, word, Decode(word)))
	}
	return s
}

// DisassembleString returns the whole image disassembled as a single string.
func DisassembleString(image []uint8) string {
	return strings.Join(Disassemble(image), "\n")
}
