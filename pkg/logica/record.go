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

// ParseRecordInternals parses the comma-separated interior of a record
// literal or record-call argument list (the text between the outer
// brackets, already stripped of them). Fields may be positional
// ("1, 2, 3"), named ("a: 1, b: 2" or "a = 1, b = 2"), aggregated
// ("a ? Max = expr", only when allowAggregation is set), or a spread
// ("*rest"). allowAggregation is only set for a rule head's own record; an
// aggregated field is otherwise rejected, and the flag is never threaded
// into a nested record parsed from a field's own value.
func ParseRecordInternals(s span.Span, tooMuch, allowAggregation bool) (*Record, error) {
	rec := &Record{base: base{s}}

	parts := SplitRaw(s, ',')
	if len(parts) == 1 && Strip(parts[0]).IsEmpty() {
		return rec, nil
	}

	for _, part := range parts {
		part = Strip(part)

		if strings.HasPrefix(part.Text(), "*") {
			rest := Strip(part.Slice(1, part.Len()))

			expr, err := ParseExpression(rest, tooMuch)
			if err != nil {
				return nil, err
			}

			rec.RestOf = expr

			continue
		}

		field, err := parseField(part, tooMuch, allowAggregation)
		if err != nil {
			return nil, err
		}

		rec.Fields = append(rec.Fields, field)
	}

	return rec, nil
}

// parseField parses one field of a record: a named field ("name: value"),
// an aggregated field ("name ? op = expr"), or a bare positional
// expression. The aggregated form splits on the first top-level '?' and
// then, within its value, the first top-level '=' separating the
// aggregation operator from its argument expression.
func parseField(part span.Span, tooMuch, allowAggregation bool) (Field, error) {
	if name, value, ok := trySplitFieldName(part); ok {
		expr, err := ParseExpression(Strip(value), tooMuch)
		if err != nil {
			return Field{}, err
		}

		return Field{Name: name, Value: expr}, nil
	}

	left, right, split, err := SplitInOneOrTwo(part, '?')
	if err != nil {
		return Field{}, err
	}

	if split {
		if !allowAggregation {
			return Field{}, span.NewError(span.Semantic, part,
				"aggregated field %q is only allowed in a rule head", part.Text())
		}

		name := Strip(left)
		if name.IsEmpty() {
			return Field{}, span.NewError(span.Structural, part, "aggregated fields have to be named")
		}

		op, argSpan, err := SplitInTwo(right, '=')
		if err != nil {
			return Field{}, err
		}

		op = Strip(op)

		argExpr, err := ParseExpression(argSpan, tooMuch)
		if err != nil {
			return Field{}, err
		}

		return Field{
			Name:        name.Text(),
			Aggregation: &Call{base{op}, op.Text(), nil, []Expr{argExpr}},
		}, nil
	}

	expr, err := ParseExpression(part, tooMuch)
	if err != nil {
		return Field{}, err
	}

	return Field{Value: expr}, nil
}

// trySplitFieldName splits "name: value" or "name = value" at the first
// top-level ':' or '=', requiring the left side to be a bare identifier so
// that expressions containing ':' or '=' deeper inside (e.g. inside a
// nested record) are not mistaken for a field name.
func trySplitFieldName(part span.Span) (name string, value span.Span, ok bool) {
	for _, sep := range []rune{':', '='} {
		left, right, split, err := SplitInOneOrTwo(part, sep)
		if err != nil || !split {
			continue
		}

		left = Strip(left)
		if isIdentifier(left) {
			return left.Text(), right, true
		}
	}

	return "", span.Span{}, false
}
