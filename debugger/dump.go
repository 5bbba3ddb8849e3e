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
	"os"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/fibula/debugger/terminal"
)

// dumpMachine writes a graphviz visualisation of the machine to a file in
// the current directory. an existing file is never overwritten.
//
// the output is of most use when chasing a bug in the emulation itself
// rather than in the running program.
func (dbg *Debugger) dumpMachine() error {
	n := time.Now()
	timestamp := fmt.Sprintf("%04d%02d%02d_%02d%02d%02d",
		n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second())
	fn := fmt.Sprintf("dump_%s.dot", timestamp)

	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	memviz.Map(f, dbg.fib)

	err = f.Close()
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	dbg.printLine(terminal.StyleFeedback, "machine dumped to %s", fn)

	return nil
}
