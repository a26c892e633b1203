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

import "github.com/EvgSkv/logica/pkg/span"

// tryFunctorRule recognises "R := F(A: V, …)" at the statement level and
// translates it to a single rule with head "@Make(R, F, {record})",
// instantiating F as R. It reports matched=false, with no error, whenever
// stmt carries no top-level ":=" at all, so the caller can fall through to
// ordinary rule parsing.
func tryFunctorRule(stmt span.Span, tooMuch bool) (rule *Rule, matched bool, err error) {
	left, right, hasAssign, err := splitOnFunctorAssign(stmt)
	if err != nil {
		return nil, true, err
	}

	if !hasAssign {
		return nil, false, nil
	}

	newPredicateExpr, err := ParseExpression(Strip(left), tooMuch)
	if err != nil {
		return nil, true, err
	}

	newPredicate, ok := newPredicateExpr.(*Variable)
	if !ok || IsVariableName(newPredicate.Name) {
		return nil, true, span.NewError(span.Semantic, left,
			"left hand side of a functor rule must be a predicate name, found %q", left.Text())
	}

	definitionExpr, err := ParseExpression(Strip(right), tooMuch)
	if err != nil {
		return nil, true, err
	}

	definition, ok := definitionExpr.(*Call)
	if !ok {
		return nil, true, span.NewError(span.Structural, right,
			"right hand side of a functor rule must be a predicate call, found %q", right.Text())
	}

	applicant := &Variable{base{definition.Heritage()}, definition.Name}
	arguments := callArguments(definition)

	head := &Call{
		base: base{stmt},
		Name: "@Make",
		Args: []Expr{newPredicate, applicant, arguments},
	}

	return &Rule{base: base{stmt}, Head: head, FullText: stmt}, true, nil
}

// tryFunctionRule recognises "H(...) --> expr" at the statement level and
// translates it to two rules: an "@CompileAsUdf(H)" annotation, marking H as
// user-defined-function syntax, and the ordinary rule "H(...) = expr".
func tryFunctionRule(stmt span.Span, tooMuch bool) (rules []*Rule, matched bool, err error) {
	left, right, hasArrow, err := splitOnArrow(stmt)
	if err != nil {
		return nil, true, err
	}

	if !hasArrow {
		return nil, false, nil
	}

	name, argsSpan, callSpan, trailer, form, ok := splitLeadingCall(Strip(left))
	if !ok || !Strip(trailer).IsEmpty() {
		return nil, true, span.NewError(span.Structural, left,
			"left hand side of a function rule must be a predicate call, found %q", left.Text())
	}

	headExpr, err := parseCallWith(callSpan, name, argsSpan, form, tooMuch, true)
	if err != nil {
		return nil, true, err
	}

	call, ok := headExpr.(*Call)
	if !ok {
		return nil, true, span.NewError(span.Structural, left,
			"left hand side of a function rule must be a predicate call, found %q", left.Text())
	}

	valueExpr, err := ParseExpression(Strip(right), tooMuch)
	if err != nil {
		return nil, true, err
	}

	mergeValueField(call, Field{Name: "logica_value", Value: valueExpr})

	rule := &Rule{base: base{stmt}, Head: call, FullText: stmt}

	annotation := &Rule{
		base: base{stmt},
		Head: &Call{
			base: base{stmt},
			Name: "@CompileAsUdf",
			Args: []Expr{&Variable{base{callSpan}, name}},
		},
		FullText: stmt,
	}

	return []*Rule{annotation, rule}, true, nil
}

// callArguments returns the expression a functor rule's "arguments" field
// carries for a definition call: the call's own record when it was written
// in record-call form, or its positional arguments repackaged as one.
func callArguments(call *Call) Expr {
	if call.Record != nil {
		return call.Record
	}

	rec := &Record{base: base{call.Heritage()}}

	for _, a := range call.Args {
		rec.Fields = append(rec.Fields, Field{Value: a})
	}

	return rec
}

// splitOnFunctorAssign splits s on its single top-level ":=", if any.
func splitOnFunctorAssign(s span.Span) (left, right span.Span, ok bool, err error) {
	idxs := topLevelOccurrences(s, ":=")

	switch len(idxs) {
	case 0:
		return span.Span{}, span.Span{}, false, nil
	case 1:
		i := idxs[0]
		return s.Slice(0, i), s.Slice(i+2, s.Len()), true, nil
	default:
		return span.Span{}, span.Span{}, false, span.NewError(span.Structural, s,
			"found %d occurrences of ':=', expected at most one", len(idxs))
	}
}

// splitOnArrow splits s on its single top-level "-->", if any.
func splitOnArrow(s span.Span) (left, right span.Span, ok bool, err error) {
	idxs := topLevelOccurrences(s, "-->")

	switch len(idxs) {
	case 0:
		return span.Span{}, span.Span{}, false, nil
	case 1:
		i := idxs[0]
		return s.Slice(0, i), s.Slice(i+3, s.Len()), true, nil
	default:
		return span.Span{}, span.Span{}, false, span.NewError(span.Structural, s,
			"found %d occurrences of '-->', expected at most one", len(idxs))
	}
}

// topLevelOccurrences returns the start index of every top-level
// (bracket-depth-zero) occurrence of token in s.
func topLevelOccurrences(s span.Span, token string) []int {
	text := []rune(s.Text())
	tok := []rune(token)
	t := NewTraverser(s)

	var idxs []int

	for t.HasNext() {
		step := t.Next()
		if step.Status != OK || len(step.Stack) != 0 {
			continue
		}

		i := step.Index
		if i+len(tok) <= len(text) && string(text[i:i+len(tok)]) == token {
			idxs = append(idxs, i)
		}
	}

	return idxs
}
