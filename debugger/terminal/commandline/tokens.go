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
	"strings"
)

// Tokens represents tokenised input. This can be used to walk through the
// input string (using Get()) for eas(ier) parsing.
type Tokens struct {
	input  string
	tokens []string
	curr   int
}

// TokeniseInput creates and returns a new Tokens instance.
//
// Tokens are separated by whitespace. Double-quotes can be used to preserve
// whitespace in a token, the quotes themselves are not part of the token. The
// quoting is simple-minded: there is no escaping mechanism.
func TokeniseInput(input string) *Tokens {
	tk := &Tokens{
		input:  strings.TrimSpace(input),
		tokens: tokeniseInput(input),
	}
	return tk
}

// tokeniseInput is the "raw" tokenising function (without wrapping everything
// up in a Tokens instance). used by TokeniseInput() and anywhere else where we
// need to divide input into tokens (eg. TabCompletion.Complete()).
func tokeniseInput(input string) []string {
	tokens := make([]string, 0, 8)

	var quoted bool
	var tok strings.Builder

	for _, r := range input {
		switch {
		case r == '"':
			quoted = !quoted
		case !quoted && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			if tok.Len() > 0 {
				tokens = append(tokens, tok.String())
				tok.Reset()
			}
		default:
			tok.WriteRune(r)
		}
	}
	if tok.Len() > 0 {
		tokens = append(tokens, tok.String())
	}

	return tokens
}

// String representation of the tokens. The original input but normalised for
// whitespace and with any updates made since tokenisation.
func (tk *Tokens) String() string {
	return strings.Join(tk.tokens, " ")
}

// Reset begins the token traversal process from the beginning.
func (tk *Tokens) Reset() {
	tk.curr = 0
}

// End the token traversal process. It can be restarted with the Reset()
// function.
func (tk *Tokens) End() {
	tk.curr = len(tk.tokens)
}

// IsEnd returns true if we're at the end of the token list.
func (tk *Tokens) IsEnd() bool {
	return tk.curr >= len(tk.tokens)
}

// Len returns the number of tokens.
func (tk *Tokens) Len() int {
	return len(tk.tokens)
}

// Remaining returns the count of remaining tokens in the token list.
func (tk *Tokens) Remaining() int {
	return len(tk.tokens) - tk.curr
}

// Remainder returns the remaining tokens as a single string.
func (tk *Tokens) Remainder() string {
	return strings.Join(tk.tokens[tk.curr:], " ")
}

// Get returns the next token in the list, and a success boolean - if the end
// of the token list has been reached, the function returns false instead of
// true.
func (tk *Tokens) Get() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	tk.curr++
	return tk.tokens[tk.curr-1], true
}

// Unget walks backwards in the token list.
func (tk *Tokens) Unget() {
	if tk.curr > 0 {
		tk.curr--
	}
}

// Peek returns the next token in the list (without advancing the list), and a
// success boolean - if the end of the token list has been reached, the
// function returns false instead of true.
func (tk *Tokens) Peek() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	return tk.tokens[tk.curr], true
}

// Update replaces the token most recently returned by Get(). Useful for
// normalising tokens once they have been matched against a command template.
func (tk *Tokens) Update(s string) {
	if tk.curr > 0 {
		tk.tokens[tk.curr-1] = s
	}
}
