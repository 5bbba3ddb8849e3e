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

package main_test

import (
	"testing"

	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/hardware"
)

// BenchmarkMachine measures the cost of stepping the machine one clock edge.
// This is the number the PERFORMANCE mode report builds on.
func BenchmarkMachine(b *testing.B) {
	b.Setenv("FIBULA_HOME", b.TempDir())

	fib, err := hardware.NewFib(environment.Performance, nil, nil)
	if err != nil {
		b.Fatal(err)
	}
	fib.Env.Normalise()

	if err := fib.Env.Prefs.Realtime.Set(false); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := fib.Step(); err != nil {
			b.Fatal(err)
		}
	}
}
