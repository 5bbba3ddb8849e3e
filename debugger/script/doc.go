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

// Package script allows the debugger to record and replay debugging scripts.
// In this package we refer to this as scribing and rescribing.
//
// Scripts can of course be handwritten and be rescribed as though they had
// been scribed by the debugger. In that case there is a risk of errors, an
// invalid command would never have been written by the Scribe type but a
// handwritten script can contain anything. On rescribing, invalid commands
// are replayed anyway and the appropriate error message printed to the
// terminal. Comment lines begin with the # symbol.
//
// A script can be run while a new script is being scribed. The command that
// ran the script is recorded in the new script but the commands inside the
// replayed script are not.
//
// The Rescribe type satisfies the terminal.Input interface and is used as an
// input source for the debugger's input loop.
package script
