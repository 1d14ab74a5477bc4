// SPDX-FileCopyrightText: © 2026 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

package distill

import (
	"strings"
)

// turtleText is a Turtle document where every directive and statement
// ends its own line.
type turtleText struct {
	src string
	// number of triple statements, directives excluded.
	statements int
}

// splitTurtle puts a line break after every top level statement
// terminator and after every SPARQL style directive. The decoder
// skips whatever follows a directive on the same line.
// Strings, IRIs and comments are copied untouched.
func splitTurtle(src string) turtleText {
	res := turtleText{}
	b := new(strings.Builder)
	b.Grow(len(src) + 16)

	start := true      // at the beginning of a statement
	directive := false // inside an @prefix or @base directive
	sparql := false    // inside a PREFIX or BASE directive

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '#':
			j := strings.IndexByte(src[i:], '\n')
			if j < 0 {
				j = len(src) - i
			}
			b.WriteString(src[i : i+j])
			i += j
			continue
		case c == '<':
			j := strings.IndexByte(src[i:], '>')
			if j < 0 {
				b.WriteString(src[i:])
				i = len(src)
				continue
			}
			b.WriteString(src[i : i+j+1])
			i += j + 1
			start = false
			if sparql {
				b.WriteByte('\n')
				sparql = false
				start = true
			}
			continue
		case c == '"' || c == '\'':
			j := turtleStringEnd(src, i)
			b.WriteString(src[i:j])
			i = j
			start = false
			continue
		case c == '.' && isTurtleTerminator(src, i):
			b.WriteString(".\n")
			i++
			if !directive {
				res.statements++
			}
			directive = false
			start = true
			continue
		}

		if start && !isTurtleSpace(c) {
			switch strings.ToLower(turtleWord(src, i)) {
			case "@prefix", "@base":
				directive = true
			case "prefix", "base":
				sparql = true
			}
			start = false
		}
		b.WriteByte(c)
		i++
	}

	res.src = b.String()
	return res
}

// isTurtleTerminator returns true when the dot at i ends a statement.
// Dots inside names and decimals are followed by a name character.
func isTurtleTerminator(src string, i int) bool {
	if i+1 == len(src) {
		return true
	}
	switch c := src[i+1]; c {
	case '#', '<', '[', '(', '"', '\'', '@':
		return true
	default:
		return isTurtleSpace(c)
	}
}

// turtleStringEnd returns the index following the string literal
// starting at i.
func turtleStringEnd(src string, i int) int {
	q := src[i : i+1]
	long := strings.HasPrefix(src[i:], q+q+q)
	j := i + 1
	if long {
		j = i + 3
	}

	for j < len(src) {
		switch {
		case src[j] == '\\':
			j += 2
			continue
		case long && strings.HasPrefix(src[j:], q+q+q):
			return j + 3
		case !long && src[j] == q[0]:
			return j + 1
		case !long && (src[j] == '\n' || src[j] == '\r'):
			return j
		}
		j++
	}
	return len(src)
}

func turtleWord(src string, i int) string {
	j := i
	for j < len(src) && !isTurtleSpace(src[j]) && src[j] != '<' {
		j++
	}
	return src[i:j]
}

func isTurtleSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
