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

package debugger

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/fibula/debugger/terminal/commandline"
	"github.com/jetsetilly/fibula/hardware/memory"
)

// target is a value in the machine that can be watched by a breakpoint or a
// trap.
type target struct {
	label  string
	format string

	// the largest value the target can hold. used to reject breakpoint
	// values that could never match
	max int

	value func() int
}

func (trg target) formatValue(val int) string {
	return fmt.Sprintf(trg.format, val)
}

// parseTarget interprets the next token and returns the corresponding
// target.
func parseTarget(dbg *Debugger, tokens *commandline.Tokens) (target, error) {
	keyword, ok := tokens.Get()
	if !ok {
		return target{}, fmt.Errorf("target required")
	}

	switch strings.ToUpper(keyword) {
	case "PC":
		return target{
			label:  "PC",
			format: "%#04x",
			max:    memory.Size - 1,
			value:  func() int { return int(dbg.fib.Proc.PC) },
		}, nil

	case "OUT":
		// the value of the output latch, in decimal. for the standard
		// program this is a fibonacci number
		return target{
			label:  "OUT",
			format: "%d",
			max:    255,
			value:  func() int { return int(dbg.fib.Proc.Out) },
		}, nil

	case "LIGHTS":
		return target{
			label:  "LIGHTS",
			format: "%08b",
			max:    255,
			value:  func() int { return int(dbg.fib.Bar.Lights()) },
		}, nil
	}

	return target{}, fmt.Errorf("invalid target (%s)", keyword)
}
