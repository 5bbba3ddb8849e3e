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

// traps are used to halt execution whenever a target *changes from* its
// current value. compare to breakpoints which are used to halt execution
// when a target is *changed to* a specific value.

package debugger

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/fibula/debugger/terminal"
	"github.com/jetsetilly/fibula/debugger/terminal/commandline"
)

// traps keeps track of all the currently defined trappers.
type traps struct {
	dbg   *Debugger
	traps []trapper
}

// trapper defines a specific trap condition.
type trapper struct {
	target    target
	origValue int
}

func (tr trapper) String() string {
	return tr.target.label
}

// newTraps is the preferred method of initialisation for traps.
func newTraps(dbg *Debugger) *traps {
	tr := &traps{dbg: dbg}
	tr.clear()
	return tr
}

// clear all traps.
func (tr *traps) clear() {
	tr.traps = make([]trapper, 0, 10)
}

// check compares the current state of the machine with every trap
// condition. the supplied string is appended with a message for every
// trapper that has fired and returned.
func (tr *traps) check(previousResult string) string {
	if len(tr.traps) == 0 {
		return previousResult
	}

	checkString := strings.Builder{}
	checkString.WriteString(previousResult)

	for i := range tr.traps {
		currVal := tr.traps[i].target.value()
		if currVal != tr.traps[i].origValue {
			tr.traps[i].origValue = currVal
			checkString.WriteString(fmt.Sprintf("trap on %s (%s)\n",
				tr.traps[i].target.label, tr.traps[i].target.formatValue(currVal)))
		}
	}

	return checkString.String()
}

// list the currently defined traps.
func (tr traps) list() {
	if len(tr.traps) == 0 {
		tr.dbg.printLine(terminal.StyleFeedback, "no traps")
	} else {
		for i := range tr.traps {
			tr.dbg.printLine(terminal.StyleFeedback, "%2d: %s", i, tr.traps[i])
		}
	}
}

// parseCommand adds a trap from the tokens of a TRAP command.
func (tr *traps) parseCommand(tokens *commandline.Tokens) error {
	tgt, err := parseTarget(tr.dbg, tokens)
	if err != nil {
		return err
	}

	for _, t := range tr.traps {
		if t.target.label == tgt.label {
			tr.dbg.printLine(terminal.StyleFeedback, "trap already exists (%s)", t)
			return nil
		}
	}

	tr.traps = append(tr.traps, trapper{target: tgt, origValue: tgt.value()})

	return nil
}
