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

// breakpoints are used to halt execution when a target is *changed to* a
// specific value. compare to traps which are used to halt execution when a
// target *changes from* its current value.

package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/fibula/debugger/terminal"
	"github.com/jetsetilly/fibula/debugger/terminal/commandline"
)

// breakpoints keeps track of all the currently defined breakers.
type breakpoints struct {
	dbg    *Debugger
	breaks []breaker
}

// breaker defines a specific break condition.
type breaker struct {
	target target
	value  int

	// a breaker that has fired does not fire again until the target value
	// has moved away from the break value
	ignore bool
}

func (bk breaker) String() string {
	return fmt.Sprintf("%s->%s", bk.target.label, bk.target.formatValue(bk.value))
}

func (bk *breaker) check() bool {
	if bk.target.value() != bk.value {
		bk.ignore = false
		return false
	}
	if bk.ignore {
		return false
	}
	bk.ignore = true
	return true
}

// newBreakpoints is the preferred method of initialisation for breakpoints.
func newBreakpoints(dbg *Debugger) *breakpoints {
	bp := &breakpoints{dbg: dbg}
	bp.clear()
	return bp
}

// clear all breakpoints.
func (bp *breakpoints) clear() {
	bp.breaks = make([]breaker, 0, 10)
}

// check compares the current state of the machine with every break
// condition. the supplied string is appended with a message for every
// breaker that has fired and returned.
func (bp *breakpoints) check(previousResult string) string {
	if len(bp.breaks) == 0 {
		return previousResult
	}

	checkString := strings.Builder{}
	checkString.WriteString(previousResult)

	for i := range bp.breaks {
		if bp.breaks[i].check() {
			checkString.WriteString(fmt.Sprintf("break on %s\n", bp.breaks[i]))
		}
	}

	return checkString.String()
}

// list the currently defined breakpoints.
func (bp breakpoints) list() {
	if len(bp.breaks) == 0 {
		bp.dbg.printLine(terminal.StyleFeedback, "no breakpoints")
	} else {
		for i := range bp.breaks {
			bp.dbg.printLine(terminal.StyleFeedback, "%2d: %s", i, bp.breaks[i])
		}
	}
}

// parseCommand adds a breakpoint from the tokens of a BREAK command.
func (bp *breakpoints) parseCommand(tokens *commandline.Tokens) error {
	tgt, err := parseTarget(bp.dbg, tokens)
	if err != nil {
		return err
	}

	v, _ := tokens.Get()
	val, err := strconv.ParseInt(v, 0, 32)
	if err != nil {
		return fmt.Errorf("invalid value (%s) for %s breakpoint", v, tgt.label)
	}
	if val < 0 || int(val) > tgt.max {
		return fmt.Errorf("value out of range (%s). %s can never reach it", v, tgt.label)
	}

	nbk := breaker{target: tgt, value: int(val)}

	for _, bk := range bp.breaks {
		if bk.target.label == nbk.target.label && bk.value == nbk.value {
			bp.dbg.printLine(terminal.StyleFeedback, "breakpoint already exists (%s)", bk)
			return nil
		}
	}

	bp.breaks = append(bp.breaks, nbk)

	return nil
}
