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

package modalflag

import (
	"flag"
	"io"
	"strings"
)

const modeSeparator = "/"

// Modes handles command line arguments in layers. Each layer can declare its
// own flags and its own list of sub-modes. The Output field should be set
// before the first call to Parse() or help messages will not be seen.
type Modes struct {
	// where to print output (help messages etc). should almost always be
	// os.Stdout
	Output io.Writer

	// whether Parse() has been called since the most recent NewArgs() or
	// NewMode()
	parsed bool

	// the underlying flagset. replaced on every call to NewArgs() and
	// NewMode(). never call the flagset's own Parse() function, use the
	// Parse() function of the Modes struct
	flags *flag.FlagSet

	// the argument list given to NewArgs(). argsIdx walks forward over the
	// list as mode selectors are consumed
	args    []string
	argsIdx int

	// the list of sub-modes given to AddSubModes() for the current layer
	subModes []string

	// the series of modes selected over successive calls to Parse(). never
	// reset
	path []string

	// long form help text for the current mode. see AdditionalHelp()
	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected during parsing, separated by slashes.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs initialises the Modes struct with a list of arguments, most likely
// from the command line.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0

	// a freshly initialised Modes struct begins with a new mode
	md.NewMode()
}

// NewMode marks the start of a new layer of arguments. Flags and sub-modes
// added after this call belong to the new layer.
func (md *Modes) NewMode() {
	md.subModes = []string{}
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.parsed = false
}

// AdditionalHelp adds long form help text. It is printed after the flag
// summary when help is requested.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns false if Parse() has not been called since the most recent
// NewArgs() or NewMode(). A Modes struct counts as parsed even if Parse()
// returned an error.
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// parsing succeeded and the program should carry on. if sub-modes were
	// specified for the layer the Mode() function says which one was
	// selected
	ParseContinue ParseResult = iota

	// help was requested and has already been printed
	ParseHelp

	// an error occurred and is returned as the second return value
	ParseError
)

// Parse the current layer of arguments. The idiomatic response to the
// return values is:
//
//	p, err := md.Parse()
//	if err != nil || p != modalflag.ParseContinue {
//		return err
//	}
//
// Help requests are serviced by the function itself. The ParseHelp result
// says that this has happened and that nothing more needs to be printed. The
// error value is nil in that case so the pattern above quits cleanly.
//
// Note that the Output field of the Modes struct must be set for help
// messages to be seen anywhere.
func (md *Modes) Parse() (ParseResult, error) {
	// the parsed flag is set in all instances, even if we eventually return
	// an error
	md.parsed = true

	// divert output of the flagset to an instance of helpWriter
	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			hw.Help(md.Output, md.Path(), md.subModes, md.additionalHelp)
			hw.Clear()
			return ParseHelp, nil
		}

		// a flag was not recognised. if sub-modes have been defined then the
		// flag may belong to the default sub-mode, so select that and
		// continue. otherwise return the error
		if len(md.subModes) > 0 {
			md.path = append(md.path, md.subModes[0])
		} else {
			return ParseError, err
		}
	} else if len(md.subModes) > 0 {
		arg := strings.ToUpper(md.flags.Arg(0))

		// check whether the first argument is in the list of sub-modes,
		// assuming the default sub-mode until a match is found
		mode := md.subModes[0]
		for i := range md.subModes {
			if md.subModes[i] == arg {
				mode = arg
				md.argsIdx++
				break // for loop
			}
		}

		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// RemainingArgs returns the arguments left over after a call to Parse() ie.
// those that are not flags or a listed sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered argument that is not a flag or a listed
// sub-mode.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

// AddSubModes adds to the list of sub-modes for the next call to Parse().
// The first sub-mode in the list is the default, used when the first
// argument matches none of them.
//
// Note that sub-mode comparisons are case insensitive.
func (md *Modes) AddSubModes(submodes ...string) {
	md.subModes = append(md.subModes, submodes...)
	for i := range md.subModes {
		md.subModes[i] = strings.ToUpper(md.subModes[i])
	}
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddFloat64 flag for next call to Parse().
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.flags.Float64(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// Visit the flags that have been set, in lexicographical order, calling fn
// for each.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
