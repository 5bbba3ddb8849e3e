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

package commandline

import (
	"strconv"
	"strings"
)

// TabCompletion provides tab completion functionality for Commands. It
// implements the terminal.TabCompletion interface.
type TabCompletion struct {
	cmds *Commands

	// the list of possible completions for the current session and which of
	// those options was used most recently
	options []string
	idx     int

	// the tokens that precede the completed token. case is preserved
	prefix []string

	// lastGuess is the last string returned by the Complete() function. we
	// use it to decide whether to start a new completion session or to cycle
	// through the options of the current session
	lastGuess string
}

// NewTabCompletion is the preferred method of initialisation for the
// TabCompletion type.
func NewTabCompletion(cmds *Commands) *TabCompletion {
	tc := &TabCompletion{
		cmds:    cmds,
		options: make([]string, 0, len(cmds.cmds)),
	}
	return tc
}

// Reset ends the current completion session.
func (tc *TabCompletion) Reset() {
	tc.options = tc.options[:0]
	tc.idx = 0
	tc.prefix = tc.prefix[:0]
	tc.lastGuess = ""
}

// Complete transforms the input such that the last token in the input is
// expanded to the next possible completion, according to the command
// template. Completed tokens are returned with a trailing space. Calling
// Complete() with the result of the previous call cycles through the
// remaining options. If no completion is possible the input is returned
// unchanged.
func (tc *TabCompletion) Complete(input string) string {
	// if the input is the same as the result of the previous call then cycle
	// to the next option in the current session
	if input == tc.lastGuess && len(tc.options) > 0 {
		tc.idx++
		if tc.idx >= len(tc.options) {
			tc.idx = 0
		}
		tc.lastGuess = tc.build()
		return tc.lastGuess
	}

	// this is a new tab completion session
	tc.Reset()

	tokens := tokeniseInput(input)
	if len(tokens) == 0 {
		return input
	}

	// the final token is the one being completed, unless the input ends with
	// whitespace in which case the completion starts from nothing
	var partial string
	if strings.HasSuffix(input, " ") || strings.HasSuffix(input, "\t") {
		tc.prefix = append(tc.prefix, tokens...)
	} else {
		tc.prefix = append(tc.prefix, tokens[:len(tokens)-1]...)
		partial = tokens[len(tokens)-1]
	}

	// the frontier is the set of nodes that could consume the next token,
	// starting with the top-level command keywords
	frontier := make([]point, 0, len(tc.cmds.cmds))
	for _, c := range tc.cmds.cmds {
		frontier = append(frontier, point{n: c})
	}

	// consume the tokens that precede the partial token, advancing the
	// frontier as we go. if a token cannot be consumed then no completion is
	// possible
	for _, tok := range tc.prefix {
		var conts []*cont
		for _, p := range frontier {
			if matchToken(p.n, tok) {
				conts = append(conts, &cont{seq: p.n.next, rep: p.n.repeat, out: p.k})
			}
		}
		if len(conts) == 0 {
			return input
		}

		frontier = frontier[:0]
		seen := make(map[*node]bool)
		for _, k := range conts {
			expandCont(k, seen, &frontier)
		}
	}

	// candidate options are the keywords in the frontier that the partial
	// token is a prefix of. placeholders cannot be completed and are never
	// offered
	partial = strings.ToUpper(partial)
	for _, p := range frontier {
		if p.n.isPlaceholder() {
			continue
		}
		if strings.HasPrefix(p.n.tag, partial) && !tc.dupe(p.n.tag) {
			tc.options = append(tc.options, p.n.tag)
		}
	}

	if len(tc.options) == 0 {
		return input
	}

	tc.lastGuess = tc.build()
	return tc.lastGuess
}

// build stitches the prefix tokens and the current option back into a single
// string.
func (tc *TabCompletion) build() string {
	s := strings.Builder{}
	for _, p := range tc.prefix {
		s.WriteString(p)
		s.WriteString(" ")
	}
	s.WriteString(tc.options[tc.idx])
	s.WriteString(" ")
	return s.String()
}

func (tc *TabCompletion) dupe(opt string) bool {
	for _, o := range tc.options {
		if o == opt {
			return true
		}
	}
	return false
}

// a point is a node that can consume a token, together with the continuation
// that applies once the node's own sequence has been consumed.
type point struct {
	n *node
	k *cont
}

// a cont is a position in a node sequence. when the sequence is exhausted
// matters continue with the out field, possibly looping through the rep field
// first for repeat groups.
type cont struct {
	seq []*node
	idx int
	rep *node
	out *cont
}

// expandPoint gathers every node reachable from n, without consuming a token,
// into the frontier. the seen map bounds the recursion.
func expandPoint(n *node, k *cont, seen map[*node]bool, frontier *[]point) {
	if seen[n] {
		return
	}
	seen[n] = true

	if n.tag == "" {
		// empty nodes exist to group a nested sequence. move directly to the
		// nodes of that sequence
		expandCont(&cont{seq: n.next, rep: n.repeat, out: k}, seen, frontier)
	} else {
		*frontier = append(*frontier, point{n: n, k: k})
	}

	// branches are alternatives to this node
	for _, b := range n.branch {
		expandPoint(b, k, seen, frontier)
	}

	// an optional node can be passed over entirely
	if n.typ == nodeOptional {
		expandCont(k, seen, frontier)
	}
}

// expandCont gathers every node reachable from the continuation into the
// frontier.
func expandCont(k *cont, seen map[*node]bool, frontier *[]point) {
	if k == nil {
		return
	}

	if k.idx < len(k.seq) {
		rest := &cont{seq: k.seq, idx: k.idx + 1, rep: k.rep, out: k.out}
		expandPoint(k.seq[k.idx], rest, seen, frontier)
		return
	}

	// the sequence is exhausted. a repeat group offers the whole group again
	// in addition to whatever follows it
	if k.rep != nil {
		expandPoint(k.rep, k.out, seen, frontier)
	}
	expandCont(k.out, seen, frontier)
}

// matchToken checks a token against a single node, with the same matching
// rules used by the validation process.
func matchToken(n *node, tok string) bool {
	if tok == "" {
		return false
	}
	if tok[0] == '$' {
		tok = "0x" + tok[1:]
	}

	switch n.tag {
	case "%N":
		_, err := strconv.ParseInt(tok, 0, 32)
		return err == nil
	case "%P":
		_, err := strconv.ParseFloat(tok, 32)
		return err == nil
	case "%S", "%F":
		return true
	}

	return strings.ToUpper(tok) == n.tag
}
