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

	"github.com/EvgSkv/logica/pkg/span"
)

// ParseExpression parses span s as a Logica expression. tooMuch reports
// whether the enclosing file carried the TOO_MUCH incantation (see
// ScanTooMuch), unlocking a handful of extra arithmetic operators and
// propositional equivalence. Productions are tried from the loosest-binding
// structural form down to bare literals and identifiers, in this order:
//
//  1. implication:   if C1 then V1 [else if C2 then V2]* else VN
//  2. combine:       {[distinct] head :- body}
//  3. infix chain:   || && -> == <= >= < > != = in is not is ++? ++ + - * / % ^ !  ("~" excluded)
//  4. unary:         -A, !A          (produced as call{predicate_name: op, record: A})
//  5. subscript:     A[B]            (desugars to Element(A, B))
//  6. list:          [elements]
//  7. record:        {fields}
//  8. literal
//  9. call:          Name(args) / Name{fields}
//  10. variable
func ParseExpression(s span.Span, tooMuch bool) (Expr, error) {
	s = Strip(s)

	if s.IsEmpty() {
		return nil, span.NewError(span.Structural, s, "expected an expression, found nothing")
	}

	if expr, ok, err := tryParseImplication(s, tooMuch); err != nil || ok {
		return expr, err
	}

	if expr, ok, err := tryParseCombine(s, tooMuch); err != nil || ok {
		return expr, err
	}

	return ParseInfix(s, exprLevels(tooMuch), map[string]bool{"~": true}, tooMuch, func(sp span.Span) (Expr, error) {
		return parseExpressionLeaf(sp, tooMuch)
	})
}

// tryParseImplication recognises "if C1 then V1 [else if C2 then V2]* else
// VN" written directly as an expression. Every "then"/"else" here is
// required to be found at top level; a missing final "else" is a parse
// error rather than a fall-through, since a leading "if " keyword commits
// the span to this production.
func tryParseImplication(s span.Span, tooMuch bool) (Expr, bool, error) {
	text := s.Text()
	if !strings.HasPrefix(text, "if ") && !strings.HasPrefix(text, "if\n") && !strings.HasPrefix(text, "if\t") {
		return nil, false, nil
	}

	inner := Strip(s.Slice(2, s.Len()))

	segments := splitTopLevelWord(inner, "else if")

	last := segments[len(segments)-1]

	condSpan, elseSpan, ok := splitTopLevelWordOnce(last, "else")
	if !ok {
		return nil, true, span.NewError(span.Structural, last, "expected 'else' in if-then-else expression")
	}

	segments[len(segments)-1] = condSpan

	clauses := make([]IfThenClause, 0, len(segments))

	for _, seg := range segments {
		condPart, consPart, ok := splitTopLevelWordOnce(seg, "then")
		if !ok {
			return nil, true, span.NewError(span.Structural, seg, "expected 'then' in if-then-else expression")
		}

		cond, err := ParseExpression(condPart, tooMuch)
		if err != nil {
			return nil, true, err
		}

		cons, err := ParseExpression(consPart, tooMuch)
		if err != nil {
			return nil, true, err
		}

		clauses = append(clauses, IfThenClause{Condition: cond, Consequence: cons})
	}

	otherwise, err := ParseExpression(elseSpan, tooMuch)
	if err != nil {
		return nil, true, err
	}

	return &Implication{base{s}, clauses, otherwise}, true, nil
}

// splitTopLevelWord splits s on every top-level occurrence of word (a
// multi-word token such as "else if"), returning the segments between
// occurrences in order. With no occurrence, it returns a single segment
// equal to s.
func splitTopLevelWord(s span.Span, word string) []span.Span {
	var segments []span.Span

	rest := s

	for {
		start, end, ok := findTopLevelWord(rest, word)
		if !ok {
			segments = append(segments, rest)
			return segments
		}

		segments = append(segments, rest.Slice(0, start))
		rest = rest.Slice(end, rest.Len())
	}
}

// splitTopLevelWordOnce splits s at the first top-level occurrence of word,
// returning the parts before and after it.
func splitTopLevelWordOnce(s span.Span, word string) (before, after span.Span, ok bool) {
	start, end, found := findTopLevelWord(s, word)
	if !found {
		return span.Span{}, span.Span{}, false
	}

	return s.Slice(0, start), s.Slice(end, s.Len()), true
}

// findTopLevelWord finds the first (leftmost) top-level occurrence of word
// (which may itself contain internal whitespace, e.g. "else if") as a
// whole token in s.
func findTopLevelWord(s span.Span, word string) (start, end int, ok bool) {
	text := []rune(s.Text())
	wr := []rune(word)
	t := NewTraverser(s)

	for t.HasNext() {
		step := t.Next()
		if step.Status != OK || len(step.Stack) != 0 {
			continue
		}

		i := step.Index
		if i+len(wr) > len(text) || string(text[i:i+len(wr)]) != word {
			continue
		}

		if i > 0 && isIdentRune(text[i-1]) {
			continue
		}

		if i+len(wr) < len(text) && isIdentRune(text[i+len(wr)]) {
			continue
		}

		return i, i + len(wr), true
	}

	return 0, 0, false
}

// tryParseCombine recognises "{[distinct] head :- body}" written directly
// as an expression: an inline aggregating sub-query.
func tryParseCombine(s span.Span, tooMuch bool) (Expr, bool, error) {
	text := s.Text()
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		return nil, false, nil
	}

	inner := Strip(s.Slice(1, s.Len()-1))
	if CountRaw(inner, ':') == 0 {
		return nil, false, nil
	}

	rule, err := ParseRule(inner, tooMuch)
	if err != nil {
		return nil, true, err
	}

	return &Combine{base{s}, rule}, true, nil
}

func parseExpressionLeaf(s span.Span, tooMuch bool) (Expr, error) {
	s = Strip(s)

	if s.IsEmpty() {
		return nil, span.NewError(span.Structural, s, "expected an expression, found nothing")
	}

	text := s.Text()

	if target, index, ok := trySplitSubscript(s); ok {
		targetExpr, err := ParseExpression(target, tooMuch)
		if err != nil {
			return nil, err
		}

		indexExpr, err := ParseExpression(index, tooMuch)
		if err != nil {
			return nil, err
		}

		return &Call{base{s}, "Element", nil, []Expr{targetExpr, indexExpr}}, nil
	}

	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		return parseListLiteral(s, tooMuch)
	}

	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		rec, err := ParseRecordInternals(Strip(s.Slice(1, s.Len()-1)), tooMuch, false)
		if err != nil {
			return nil, err
		}

		rec.span = s

		return rec, nil
	}

	if lit, err := ParseLiteral(s); err != nil {
		return nil, err
	} else if lit.HasValue() {
		return lit.Unwrap(), nil
	}

	if name, argsSpan, form, ok := trySplitCall(s); ok {
		return parseCallWith(s, name, argsSpan, form, tooMuch, false)
	}

	if v, ok, err := ParseVariable(s); err != nil {
		return nil, err
	} else if ok {
		return v, nil
	}

	return nil, span.NewError(span.Generic, s, "could not parse expression %q", text)
}

// trySplitSubscript recognises a trailing "[...]" whose opening bracket is
// at top level and whose target (everything before it) is non-empty.
func trySplitSubscript(s span.Span) (target, index span.Span, ok bool) {
	text := []rune(s.Text())
	if len(text) == 0 || text[len(text)-1] != ']' {
		return span.Span{}, span.Span{}, false
	}

	t := NewTraverser(s)

	openIdx := -1

	for t.HasNext() {
		step := t.Next()
		if step.Status != OK {
			continue
		}

		if len(step.Stack) == 1 && step.Top() == '[' && text[step.Index] == '[' {
			openIdx = step.Index
		}
	}

	if openIdx <= 0 {
		return span.Span{}, span.Span{}, false
	}

	return s.Slice(0, openIdx), s.Slice(openIdx+1, s.Len()-1), true
}

// callForm distinguishes the two ways a call's arguments may be written.
type callForm int

const (
	formArgs callForm = iota
	formRecord
)

// trySplitCall recognises Name(...) and Name{...}, requiring the name to be
// a bare identifier immediately followed by the opening bracket (no
// whitespace), so that e.g. "(1, 2)" without a preceding name is not taken
// as a call.
func trySplitCall(s span.Span) (name string, argsSpan span.Span, form callForm, ok bool) {
	text := []rune(s.Text())

	if len(text) == 0 || !isIdentStart(text[0]) {
		return "", span.Span{}, 0, false
	}

	i := 0
	for i < len(text) && isIdentRune(text[i]) {
		i++
	}

	if i == 0 || i >= len(text) {
		return "", span.Span{}, 0, false
	}

	open, close, form := '(', ')', formArgs
	if text[i] == '{' {
		open, close, form = '{', '}', formRecord
	} else if text[i] != '(' {
		return "", span.Span{}, 0, false
	}

	if text[len(text)-1] != close {
		return "", span.Span{}, 0, false
	}

	_ = open

	return string(text[:i]), s.Slice(i+1, s.Len()-1), form, true
}

// splitLeadingCall recognises "Name(...)" or "Name{...}" at the very start
// of s, without requiring the call to consume the rest of s, and returns
// whatever text trails the call's closing bracket. This is what lets a rule
// head carry a "= expr" or "op= expr" value suffix after its call, unlike
// trySplitCall which demands the call span the whole of s.
func splitLeadingCall(s span.Span) (name string, argsSpan, callSpan, rest span.Span, form callForm, ok bool) {
	text := []rune(s.Text())
	if len(text) == 0 || !isIdentStart(text[0]) {
		return "", span.Span{}, span.Span{}, span.Span{}, 0, false
	}

	i := 0
	for i < len(text) && isIdentRune(text[i]) {
		i++
	}

	if i == 0 || i >= len(text) {
		return "", span.Span{}, span.Span{}, span.Span{}, 0, false
	}

	var open, close rune

	switch text[i] {
	case '(':
		open, close, form = '(', ')', formArgs
	case '{':
		open, close, form = '{', '}', formRecord
	default:
		return "", span.Span{}, span.Span{}, span.Span{}, 0, false
	}

	t := NewTraverser(s)
	opened, closeIdx := false, -1

	for t.HasNext() {
		step := t.Next()
		if step.Status != OK {
			continue
		}

		if !opened && step.Index == i && len(step.Stack) == 1 && step.Top() == open {
			opened = true
			continue
		}

		if opened && len(step.Stack) == 0 {
			closeIdx = step.Index
			break
		}
	}

	if closeIdx < 0 || text[closeIdx] != close {
		return "", span.Span{}, span.Span{}, span.Span{}, 0, false
	}

	return string(text[:i]), s.Slice(i+1, closeIdx), s.Slice(0, closeIdx+1), s.Slice(closeIdx+1, len(text)), form, true
}

// parseCallWith builds a Call from an already-split name/args pair.
// allowAggregation permits the record's fields to use the "name ? op =
// expr" aggregation-slot form; only a rule head passes true.
func parseCallWith(s span.Span, name string, argsSpan span.Span, form callForm, tooMuch, allowAggregation bool) (Expr, error) {
	if isReservedIdentifier(name) {
		return nil, span.NewError(span.Semantic, s, "reserved identifier: %q (the %q prefix is reserved)", name, reservedPrefix)
	}

	rec, err := ParseRecordInternals(Strip(argsSpan), tooMuch, allowAggregation)
	if err != nil {
		return nil, err
	}

	// A call written with "(...)" still collapses to plain positional Args
	// when every field turned out to be positional, matching the common
	// case, but the record internals grammar does not actually distinguish
	// "(...)" from "{...}": a named or aggregated field is just as legal
	// inside parens, so such a call keeps its full Record instead of
	// erroring.
	if form == formRecord || rec.RestOf != nil || hasNonPositionalField(rec) {
		return &Call{base{s}, name, rec, nil}, nil
	}

	args := make([]Expr, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		args = append(args, f.Value)
	}

	return &Call{base{s}, name, nil, args}, nil
}

func hasNonPositionalField(rec *Record) bool {
	for _, f := range rec.Fields {
		if f.Name != "" || f.Aggregation != nil {
			return true
		}
	}

	return false
}

func parseListLiteral(s span.Span, tooMuch bool) (Expr, error) {
	inner := Strip(s.Slice(1, s.Len()-1))

	list := &ListExpr{base: base{s}}

	if inner.IsEmpty() {
		return list, nil
	}

	for _, part := range SplitRaw(inner, ',') {
		elem, err := ParseExpression(part, tooMuch)
		if err != nil {
			return nil, err
		}

		list.Elements = append(list.Elements, elem)
	}

	return list, nil
}
