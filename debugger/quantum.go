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

// Quantum specifies the step granularity of the debugger.
type Quantum int

// List of valid Quantum values.
//
// QuantumInstruction steps until the processor has completed an instruction.
// Note that because of how the machine is wired, the effect of a register
// instruction is not visible in the register file until one edge after the
// instruction has completed.
//
// QuantumEdge steps a single clock edge. The processor is only enabled on
// every second edge so two edge steps may be needed before any change is
// seen.
const (
	QuantumInstruction Quantum = iota
	QuantumEdge
)

func (q Quantum) String() string {
	switch q {
	case QuantumInstruction:
		return "INSTRUCTION"
	case QuantumEdge:
		return "EDGE"
	}
	return "unknown quantum"
}
