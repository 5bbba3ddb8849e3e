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

// Package modalflag wraps the flag package from the Go standard library. It
// adds the idea of program modes (and sub-modes) with a different set of
// flags for each mode.
//
// Initialise a Modes struct with the arguments to be parsed:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//
// Flags are added in the manner of the flag package. The returned pointer is
// filled in when Parse() is called:
//
//	verbose := md.AddBool("verbose", false, "print additional log messages")
//
// Unlike the flag package the arguments are not given to the Parse()
// function. They are already known from the NewArgs() call, which allows
// repeated parsing as the mode deepens. Parse() returns a ParseResult and
// the idiomatic response to it is:
//
//	p, err := md.Parse()
//	if err != nil || p != modalflag.ParseContinue {
//		return err
//	}
//
// A help request is serviced by Parse() itself. The ParseHelp result says
// that this has happened and that the program should finish without printing
// anything more.
//
// Arguments that are not flags are available after parsing through the
// RemainingArgs() and GetArg() functions:
//
//	switch len(md.RemainingArgs()) {
//	case 0:
//		return fmt.Errorf("argument required")
//	case 1:
//		process(md.GetArg(0))
//	default:
//		return fmt.Errorf("too many arguments")
//	}
//
// Modes are what distinguish the package from plain flag handling. A mode is
// a command line argument that puts the program into a different mode of
// operation, in the way that the go command is divided into build, test,
// doc, and so on. Each mode can have its own flags and its own expectation
// of arguments.
//
//	md.AddSubModes("RUN", "DEBUG", "BENCH")
//
// The first sub-mode in the list is the default, used when the first
// argument matches none of them. Comparisons are case insensitive.
//
// After a Parse() the selected mode is available through the Mode()
// function. The program can then call NewMode(), add the flags for the
// selected mode and Parse() again:
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		uncapped := md.AddBool("uncapped", false, "run flat out")
//		p, err := md.Parse()
//		...
//	}
//
// Sub-modes nest as deeply as required. Each call to Parse() consumes the
// mode selector, if there is one, and the flags for that mode, leaving the
// remaining arguments for the next layer.
package modalflag
