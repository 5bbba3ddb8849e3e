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

// Package testbench runs Starlark scripts against a headless machine. It is
// the programmable counterpart of the debugger: where the debugger is for
// poking at the machine by hand, a bench script drives it to a verdict with
// no interaction at all.
//
// A bench script is ordinary Starlark with the machine exposed through a
// small set of builtins:
//
//	reset()               power cycle the machine
//	step(n=1)             step the machine by n crystal edges
//	press()               press the advance button
//	release()             release the advance button
//	tap(n=1)              n full press/release cycles, debounce and all
//	settle()              run until the debouncer is ready for a press
//	run_until_out()       run until an OUT instruction commits
//	lights()              the value on the lightbar
//	pc()                  the program counter
//	reg_a(), reg_b()      the working registers
//	expect(cond, msg="")  fail the bench if cond is false
//
// tap(), settle() and run_until_out() return the number of edges they
// consumed. A failed expectation, or a wait that exceeds its limit, ends the
// script with an error that names the position in the script.
//
// For example:
//
//	settle()
//	expect(lights() == 1, "output after power-on")
//	for want in [2, 3, 5, 8, 13, 21]:
//	    tap()
//	    expect(lights() == want, "sequence at %d" % want)
//
// The BENCH mode of the main program runs a script file with the Run()
// function.
package testbench
