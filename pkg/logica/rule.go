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

// ParseRule parses a single rule statement: an optionally-"distinct" head
// call, decorated with zero or more trailing denotations (couldbe, cantbe,
// shouldbe, order_by(...), limit(...)), and an optional ":-"-introduced
// body.
func ParseRule(s span.Span, tooMuch bool) (*Rule, error) {
	full := s
	s = Strip(s)

	if s.IsEmpty() {
		return nil, span.NewError(span.Structural, s, "empty rule")
	}

	headPart, bodyPart, hasBody, err := splitOnImplication(s)
	if err != nil {
		return nil, err
	}

	headCallSpan, distinct, annotations, err := parseHeadDenotations(headPart, tooMuch)
	if err != nil {
		return nil, err
	}

	call, aggregated, err := parseHeadCallWithValue(headCallSpan, tooMuch)
	if err != nil {
		return nil, err
	}

	// An aggregated head implicitly denotes the rule distinct, matching the
	// reference parser: it does not require the "distinct" keyword to also
	// be written out.
	distinct = distinct || aggregated

	rule := &Rule{
		base:        base{s},
		Head:        call,
		Distinct:    distinct,
		FullText:    full,
		Annotations: annotations,
	}

	if hasBody {
		body, err := ParseProposition(bodyPart, tooMuch)
		if err != nil {
			return nil, err
		}

		rule.Body = body
	}

	return rule, nil
}

// parseHeadCallWithValue parses a rule head's call, then folds in a trailing
// "= expr" or "op= expr" value suffix as a synthetic logica_value field.
// aggregated reports whether the suffix carried an aggregation operator,
// which the caller ORs into the rule's distinct flag rather than rejecting
// outright, matching the reference parser: it does not require "distinct"
// to be written out as well.
func parseHeadCallWithValue(s span.Span, tooMuch bool) (*Call, bool, error) {
	name, argsSpan, callSpan, rest, form, ok := splitLeadingCall(Strip(s))
	if !ok {
		return nil, false, span.NewError(span.Structural, s, "rule head must be a predicate call")
	}

	headExpr, err := parseCallWith(callSpan, name, argsSpan, form, tooMuch, true)
	if err != nil {
		return nil, false, err
	}

	call, ok := headExpr.(*Call)
	if !ok {
		return nil, false, span.NewError(span.Structural, callSpan, "rule head must be a predicate call")
	}

	rest = Strip(rest)
	if rest.IsEmpty() {
		return call, false, nil
	}

	op, valueSpan, hasEq, err := SplitInOneOrTwo(rest, '=')
	if err != nil || !hasEq {
		return nil, false, span.NewError(span.Structural, rest, "trailing text after rule head call")
	}

	op = Strip(op)

	valueExpr, err := ParseExpression(valueSpan, tooMuch)
	if err != nil {
		return nil, false, err
	}

	field := Field{Name: "logica_value"}

	var aggregated bool

	if op.IsEmpty() {
		field.Value = valueExpr
	} else {
		field.Aggregation = &Call{base{op}, op.Text(), nil, []Expr{valueExpr}}
		aggregated = true
	}

	mergeValueField(call, field)

	return call, aggregated, nil
}

// mergeValueField appends field to call's record, first converting a
// positional argument list into positional record fields if the call had no
// record yet.
func mergeValueField(call *Call, field Field) {
	if call.Record == nil {
		call.Record = &Record{base: base{call.Heritage()}}

		for _, a := range call.Args {
			call.Record.Fields = append(call.Record.Fields, Field{Value: a})
		}

		call.Args = nil
	}

	call.Record.Fields = append(call.Record.Fields, field)
}

// splitOnImplication splits s on its single top-level ":-", if any.
func splitOnImplication(s span.Span) (head, body span.Span, hasBody bool, err error) {
	text := []rune(s.Text())
	t := NewTraverser(s)

	idx := -1
	count := 0

	for t.HasNext() {
		step := t.Next()
		if step.Status != OK || len(step.Stack) != 0 {
			continue
		}

		i := step.Index
		if i+1 < len(text) && text[i] == ':' && text[i+1] == '-' {
			idx = i
			count++
		}
	}

	if count > 1 {
		return span.Span{}, span.Span{}, false, span.NewError(span.Structural, s,
			"rule has %d occurrences of ':-', expected at most one", count)
	}

	if count == 0 {
		return s, span.Span{}, false, nil
	}

	return s.Slice(0, idx), s.Slice(idx+2, s.Len()), true, nil
}

// parseHeadDenotations strips "distinct" and any trailing denotation
// keywords off a rule head, returning the remaining bare call span plus the
// distinct flag and the annotations the denotations produce.
func parseHeadDenotations(head span.Span, tooMuch bool) (call span.Span, distinct bool, annotations []Annotation, err error) {
	head = Strip(head)

	if rest, ok := StripWord(head, "distinct"); ok {
		distinct = true
		head = Strip(rest)
	}

	for {
		if rest, ok := stripTrailingWord(head, "distinct"); ok {
			distinct = true
			head = rest

			continue
		}

		if rest, ok := stripTrailingWord(head, "couldbe"); ok {
			annotations = append(annotations, Annotation{Name: "CouldBe"})
			head = rest

			continue
		}

		if rest, ok := stripTrailingWord(head, "cantbe"); ok {
			annotations = append(annotations, Annotation{Name: "CantBe"})
			head = rest

			continue
		}

		if rest, ok := stripTrailingWord(head, "shouldbe"); ok {
			annotations = append(annotations, Annotation{Name: "ShouldBe"})
			head = rest

			continue
		}

		if rest, args, ok := stripTrailingCall(head, "order_by"); ok {
			argExprs, aerr := parseArgList(args, tooMuch)
			if aerr != nil {
				return span.Span{}, false, nil, aerr
			}

			annotations = append(annotations, Annotation{Name: "OrderBy", Args: argExprs})
			head = rest

			continue
		}

		if rest, args, ok := stripTrailingCall(head, "limit"); ok {
			argExprs, aerr := parseArgList(args, tooMuch)
			if aerr != nil {
				return span.Span{}, false, nil, aerr
			}

			annotations = append(annotations, Annotation{Name: "Limit", Args: argExprs})
			head = rest

			continue
		}

		break
	}

	return Strip(head), distinct, annotations, nil
}

// stripTrailingWord reports whether s, once stripped, ends with word at a
// word boundary, returning the remainder.
func stripTrailingWord(s span.Span, word string) (rest span.Span, ok bool) {
	t := Strip(s)
	text := t.Text()

	if !strings.HasSuffix(text, word) {
		return span.Span{}, false
	}

	runes := []rune(text)
	prefixLen := len(runes) - len([]rune(word))

	if prefixLen > 0 && isIdentRune(runes[prefixLen-1]) {
		return span.Span{}, false
	}

	return Strip(t.Slice(0, prefixLen)), true
}

// stripTrailingCall reports whether s, once stripped, ends with
// "name(...)" as a top-level trailing call, returning the remainder and the
// call's argument span.
func stripTrailingCall(s span.Span, name string) (rest, args span.Span, ok bool) {
	t := Strip(s)
	text := []rune(t.Text())

	if len(text) == 0 || text[len(text)-1] != ')' {
		return span.Span{}, span.Span{}, false
	}

	tr := NewTraverser(t)
	openIdx := -1

	for tr.HasNext() {
		step := tr.Next()
		if step.Status != OK {
			continue
		}

		if len(step.Stack) == 1 && step.Top() == '(' && text[step.Index] == '(' {
			openIdx = step.Index
		}
	}

	nameLen := len([]rune(name))
	if openIdx < nameLen {
		return span.Span{}, span.Span{}, false
	}

	if string(text[openIdx-nameLen:openIdx]) != name {
		return span.Span{}, span.Span{}, false
	}

	if openIdx-nameLen > 0 && isIdentRune(text[openIdx-nameLen-1]) {
		return span.Span{}, span.Span{}, false
	}

	return Strip(t.Slice(0, openIdx-nameLen)), t.Slice(openIdx+1, len(text)-1), true
}

func parseArgList(s span.Span, tooMuch bool) ([]Expr, error) {
	s = Strip(s)
	if s.IsEmpty() {
		return nil, nil
	}

	var out []Expr

	for _, part := range SplitRaw(s, ',') {
		expr, err := ParseExpression(part, tooMuch)
		if err != nil {
			return nil, err
		}

		out = append(out, expr)
	}

	return out, nil
}
