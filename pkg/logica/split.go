// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package logica

import (
	"strings"
	"unicode"

	"github.com/EvgSkv/logica/pkg/span"
)

// SplitRaw splits a span on every top-level (bracket-depth-zero,
// outside-string) occurrence of sep, which must be a single rune. Splitting
// never occurs inside brackets, quotes, or comments, since those are
// screened by the Traverser. A '|' next to another '|' never splits, so
// "||" stays whole as an operator.
func SplitRaw(s span.Span, sep rune) []span.Span {
	t := NewTraverser(s)
	text := []rune(s.Text())

	var parts []span.Span

	start := 0

	for t.HasNext() {
		step := t.Next()
		if step.Status != OK {
			continue
		}

		if len(step.Stack) == 0 && rune(s.Slice(step.Index, step.Index+1).Text()[0]) == sep {
			i := step.Index
			if sep == '|' && ((i > 0 && text[i-1] == '|') || (i+1 < len(text) && text[i+1] == '|')) {
				continue
			}

			parts = append(parts, s.Slice(start, step.Index))
			start = step.Index + 1
		}
	}

	parts = append(parts, s.Slice(start, s.Len()))

	return parts
}

// Strip trims leading and trailing whitespace from a span, then, if what
// remains is wrapped in a single outer "(...)" whose interior is whole (its
// brackets, strings, and comments all close cleanly), peels that
// parenthesis pair too. This repeats until neither trimming nor peeling
// changes anything, so "( (X) )" reduces all the way down to "X".
func Strip(s span.Span) span.Span {
	for {
		trimmed := stripSpaces(s)

		text := []rune(trimmed.Text())
		if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
			return trimmed
		}

		inner := trimmed.Slice(1, trimmed.Len()-1)
		if !IsWhole(inner) {
			return trimmed
		}

		s = inner
	}
}

// stripSpaces trims leading and trailing whitespace from a span without
// copying the underlying text.
func stripSpaces(s span.Span) span.Span {
	text := s.Text()
	runes := []rune(text)

	lo := 0
	for lo < len(runes) && unicode.IsSpace(runes[lo]) {
		lo++
	}

	hi := len(runes)
	for hi > lo && unicode.IsSpace(runes[hi-1]) {
		hi--
	}

	return s.Slice(lo, hi)
}

// SplitOnWhitespace splits a span into maximal non-whitespace runs, ignoring
// bracket/string nesting: it operates purely lexically, mirroring how
// keyword/denotation tokens are pulled off the front of a rule head before
// the head is handed to the bracket-aware parsers.
func SplitOnWhitespace(s span.Span) []span.Span {
	text := []rune(s.Text())

	var parts []span.Span

	i := 0
	for i < len(text) {
		for i < len(text) && unicode.IsSpace(text[i]) {
			i++
		}

		start := i

		for i < len(text) && !unicode.IsSpace(text[i]) {
			i++
		}

		if i > start {
			parts = append(parts, s.Slice(start, i))
		}
	}

	return parts
}

// SplitInTwo splits a span on the first top-level occurrence of sep,
// requiring exactly one such occurrence. Used for constructs like
// "name = value" and "key: value" that must appear exactly once.
func SplitInTwo(s span.Span, sep rune) (span.Span, span.Span, error) {
	parts := SplitRaw(s, sep)
	if len(parts) != 2 {
		return span.Span{}, span.Span{}, span.NewError(span.Structural, s,
			"expected exactly one %q, found %d", sep, len(parts)-1)
	}

	return parts[0], parts[1], nil
}

// SplitInOneOrTwo splits a span on the first top-level occurrence of sep,
// tolerating zero or one occurrence. If sep does not occur, the second
// return value is the empty span at the end of s and ok is false.
func SplitInOneOrTwo(s span.Span, sep rune) (first, second span.Span, ok bool, err error) {
	parts := SplitRaw(s, sep)

	switch len(parts) {
	case 1:
		return parts[0], s.Slice(s.Len(), s.Len()), false, nil
	case 2:
		return parts[0], parts[1], true, nil
	default:
		return span.Span{}, span.Span{}, false, span.NewError(span.Structural, s,
			"expected at most one %q, found %d", sep, len(parts)-1)
	}
}

// StripWord reports whether span s, when trimmed, begins with word followed
// by a word boundary (whitespace, an opening bracket, or end of input), and
// if so returns the remainder of the span after word (not yet re-stripped).
// This underlies stripping a leading "distinct" off a rule head and the
// "import" keyword off an import statement.
func StripWord(s span.Span, word string) (rest span.Span, ok bool) {
	trimmed := Strip(s)
	text := trimmed.Text()

	if !strings.HasPrefix(text, word) {
		return span.Span{}, false
	}

	runes := []rune(text)
	wlen := len([]rune(word))

	if wlen < len(runes) {
		next := runes[wlen]
		if !unicode.IsSpace(next) && next != '(' {
			return span.Span{}, false
		}
	}

	return trimmed.Slice(wlen, trimmed.Len()), true
}

// CountRaw returns the number of top-level occurrences of sep in s.
func CountRaw(s span.Span, sep rune) int {
	return len(SplitRaw(s, sep)) - 1
}
