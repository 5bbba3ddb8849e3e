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

//go:build !windows
// +build !windows

package colorterm

import (
	"bufio"
	"io"
)

// readRune is a single result from the runeReader goroutine.
type readRune struct {
	r   rune
	n   int
	err error
}

// runeReader presents runes from an io.Reader over a channel. reading from a
// channel rather than the reader directly allows the input loop to select
// over other event channels at the same time.
type runeReader struct {
	ch chan readRune
}

func initRuneReader(input io.Reader) runeReader {
	reader := runeReader{
		ch: make(chan readRune),
	}

	br := bufio.NewReader(input)

	go func() {
		for {
			r, n, err := br.ReadRune()
			reader.ch <- readRune{r: r, n: n, err: err}
			if err != nil {
				return
			}
		}
	}()

	return reader
}
