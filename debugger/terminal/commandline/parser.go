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
	"fmt"
	"strings"
	"unicode"
)

// ParseCommandTemplate turns a string representation of a command template
// into a machine friendly representation.
//
// Syntax
//
//	[ a ]   required keyword
//	( a )   optional keyword
//	[ a | b ]   required selection
//	( a | b )   optional selection
//	{ a }   repeat group (optional and may appear multiple times)
//
// groups can be nested and sequences of keywords can appear inside a group.
//
// placeholder directives match classes of argument rather than a specific
// keyword:
//
//	%N      numeric argument
//	%P      floating-point argument
//	%S      string argument
//	%F      filename argument
//
// a placeholder can be given a friendly label for help and usage strings. for
// example: %<filename>F.
func ParseCommandTemplate(template []string) (*Commands, error) {
	cmds := &Commands{
		Index: make(map[string]*node),
		cmds:  make([]*node, 0, len(template)),
	}

	for t := range template {
		defn := strings.TrimSpace(template[t])
		if defn == "" {
			continue
		}

		p, d, err := parseDefinition(defn, "")
		if err != nil {
			return nil, fmt.Errorf("parser: %s: %v (char %d)", defn, err, d)
		}

		// the first entry in every definition must be a simple keyword. the
		// keyword is how the validation process finds the correct command in
		// the first place
		if p.tag == "" || p.isPlaceholder() {
			return nil, fmt.Errorf("parser: %s: command must begin with a keyword", defn)
		}

		if _, ok := cmds.Index[p.tag]; ok {
			return nil, fmt.Errorf("parser: duplicate definition for %s", p.tag)
		}

		cmds.cmds = append(cmds.cmds, p)
		cmds.Index[p.tag] = p
	}

	return cmds, nil
}

// list of characters that terminate a keyword.
const parseDelimiters = " \t()[]{}|"

// parseDefinition parses a single definition from a command template. the
// trigger argument indicates how the definition is being grouped: one of "(",
// "[", "{" or, at the outermost level, the empty string.
//
// returns the head node of the group, the number of characters consumed and
// any error. in the case of an error the characters consumed value indicates
// where in the definition the error occurred.
func parseDefinition(defn string, trigger string) (*node, int, error) {
	var typ nodeType
	var repeat bool

	switch trigger {
	case "":
		typ = nodeRoot
	case "(":
		typ = nodeOptional
	case "[":
		typ = nodeRequired
	case "{":
		// repeat groups are optional groups by definition
		typ = nodeOptional
		repeat = true
	default:
		return nil, 0, fmt.Errorf("unknown group type (%s)", trigger)
	}

	// each group is a list of alternatives and each alternative is a sequence
	// of elements. an element is either a simple keyword/placeholder or a
	// nested group
	type element struct {
		n     *node
		group bool
	}
	var alts [][]element
	var seq []element

	closeAlternative := func() error {
		if len(seq) == 0 {
			return fmt.Errorf("empty alternative")
		}
		alts = append(alts, seq)
		seq = nil
		return nil
	}

	// the outermost group has no closing delimiter
	closed := trigger == ""

	i := 0

scan:
	for i < len(defn) {
		c := defn[i]
		switch c {
		case ' ', '\t':
			i++

		case '(', '[', '{':
			sub, d, err := parseDefinition(defn[i+1:], string(c))
			if err != nil {
				return nil, i + 1 + d, err
			}
			seq = append(seq, element{n: sub, group: true})
			i += d + 1

		case ')', ']', '}':
			if trigger == "" {
				return nil, i, fmt.Errorf("unexpected %c", c)
			}
			if (c == ')' && trigger != "(") || (c == ']' && trigger != "[") || (c == '}' && trigger != "{") {
				return nil, i, fmt.Errorf("unexpected %c in group opened with %s", c, trigger)
			}
			i++
			closed = true
			break scan

		case '|':
			if trigger == "" {
				return nil, i, fmt.Errorf("alternatives are not allowed at the outermost level")
			}
			if err := closeAlternative(); err != nil {
				return nil, i, err
			}
			i++

		default:
			j := i
			for j < len(defn) && !strings.ContainsRune(parseDelimiters, rune(defn[j])) {
				j++
			}
			n, err := parseKeyword(defn[i:j])
			if err != nil {
				return nil, i, err
			}
			n.typ = typ
			seq = append(seq, element{n: n})
			i = j
		}
	}

	if !closed {
		return nil, i, fmt.Errorf("group opened with %s is not closed", trigger)
	}

	if err := closeAlternative(); err != nil {
		return nil, i, err
	}

	// assemble turns a sequence of elements into a single node. the first
	// element leads the sequence with the remainder in the next array
	//
	// a sequence that leads with a nested group needs an empty node at its
	// head. without it there would be nowhere to hang the type of the
	// enclosing group
	assemble := func(seq []element) *node {
		if seq[0].group {
			if len(seq) == 1 && seq[0].n.typ == typ {
				return seq[0].n
			}
			wrap := &node{typ: typ}
			for _, e := range seq {
				wrap.next = append(wrap.next, e.n)
			}
			return wrap
		}

		head := seq[0].n
		for _, e := range seq[1:] {
			head.next = append(head.next, e.n)
		}
		return head
	}

	head := assemble(alts[0])
	for _, alt := range alts[1:] {
		head.branch = append(head.branch, assemble(alt))
	}

	if repeat {
		head.repeatStart = true

		// every node that can end an iteration of the group points back to
		// the head of the group
		head.repeat = head
		for _, b := range head.branch {
			b.repeat = head
		}
		if head.tag == "" && len(head.next) > 0 {
			last := head.next[len(head.next)-1]
			last.repeat = head
			for _, b := range last.branch {
				b.repeat = head
			}
		}
	}

	return head, i, nil
}

// parseKeyword turns a single word from a command template into a node,
// normalising simple keywords to uppercase and checking the correctness of
// placeholder directives.
func parseKeyword(word string) (*node, error) {
	if !strings.ContainsRune(word, '%') {
		return &node{tag: strings.ToUpper(word)}, nil
	}

	if word[0] != '%' {
		return nil, fmt.Errorf("placeholder directives must be separated from other characters (%s)", word)
	}

	// the %% directive matches a literal % character
	if word == "%%" {
		return &node{tag: "%%"}, nil
	}

	rest := word[1:]

	// friendly label for the placeholder
	var label string
	if strings.HasPrefix(rest, "<") {
		cl := strings.IndexRune(rest, '>')
		if cl == -1 {
			return nil, fmt.Errorf("unclosed placeholder label (%s)", word)
		}
		label = rest[1:cl]
		rest = rest[cl+1:]
	}

	if len(rest) != 1 {
		return nil, fmt.Errorf("unrecognised placeholder directive (%s)", word)
	}

	switch unicode.ToUpper(rune(rest[0])) {
	case 'N', 'P', 'S', 'F':
	default:
		return nil, fmt.Errorf("unrecognised placeholder directive (%s)", word)
	}

	return &node{
		tag:              fmt.Sprintf("%%%c", unicode.ToUpper(rune(rest[0]))),
		placeholderLabel: label,
	}, nil
}
