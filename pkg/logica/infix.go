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
	"sort"
	"strings"
	"unicode"

	"github.com/EvgSkv/logica/pkg/span"
)

// opLevel is one precedence level of the shared infix grammar, from
// poorest-binding to tightest-binding. Each level here holds exactly one
// operator: the reference grammar tries operators one at a time, in a
// fixed order, rather than grouping several onto a shared tier, so a mix
// of operators that might elsewhere be considered "the same precedence"
// (e.g. "/" and "*") associates according to relative position in this
// list rather than uniform left-to-right evaluation.
type opLevel struct {
	ops []string
}

// baseExprOps is the fixed infix/unary operator table, poorest binding
// first (tried first) to tightest binding last.
var baseExprOps = []string{
	"||", "&&", "->", "==", "<=", ">=", "<", ">", "!=", "=", "~",
	" in ", " is not ", " is ", "++?", "++", "+", "-", "*", "/", "%", "^", "!",
}

// tooMuchExtraOps lists the extra arithmetic operators unlocked by the
// TOO_MUCH incantation (see ScanTooMuch), tried before every operator in
// baseExprOps.
var tooMuchExtraOps = []string{"---", "-+-", "-*-", "-/-", "-%-", "-^-"}

// unaryOps names operators that apply to a single right-hand operand when
// their left split is empty, producing a call rather than a binary
// operator application.
var unaryOps = map[string]bool{"-": true, "!": true}

// exprLevels returns the expression/proposition infix operator table for
// the given TOO_MUCH state, one operator per precedence level.
func exprLevels(tooMuch bool) []opLevel {
	var ops []string
	if tooMuch {
		ops = append(ops, tooMuchExtraOps...)
	}

	ops = append(ops, baseExprOps...)

	levels := make([]opLevel, len(ops))
	for i, op := range ops {
		levels[i] = opLevel{[]string{op}}
	}

	return levels
}

// isWordOp reports whether op needs word-boundary checking (either it is
// spelled entirely with identifier characters, or it is a space-padded
// keyword operator like " in ") rather than plain substring matching.
func isWordOp(op string) bool {
	trimmed := strings.Trim(op, " ")
	if trimmed == "" {
		return false
	}

	for _, r := range trimmed {
		if !isIdentRune(r) {
			return false
		}
	}

	return true
}

// ParseInfix parses the shared infix grammar over span s, applying levels
// in the order given (poorest-binding tried first) and calling leaf once
// no configured operator applies anywhere in s. disallow names operators
// that must be skipped in this call, letting callers reuse the same table
// in different structural positions (e.g. excluding "~", whose bare form
// is negation rather than an infix operator).
func ParseInfix(s span.Span, levels []opLevel, disallow map[string]bool, tooMuch bool, leaf func(span.Span) (Expr, error)) (Expr, error) {
	if expr, ok, err := matchTopLevelInfix(s, levels, disallow, tooMuch); err != nil || ok {
		return expr, err
	}

	return leaf(Strip(s))
}

// matchTopLevelInfix tries every level in order and, on the first level
// whose operator occurs at top level in s, builds the call node it
// desugars to. Operands recurse through the full expression grammar
// (ParseExpression) rather than back into this level table directly, so an
// operand that is itself an implication or a combine parses correctly; the
// level table is only reconsulted once ParseExpression itself falls back
// to it. ok is false, with no error, when no configured operator matches
// anywhere in s, letting proposition-level callers fall through to their
// next production instead of treating this as a parse error.
func matchTopLevelInfix(s span.Span, levels []opLevel, disallow map[string]bool, tooMuch bool) (Expr, bool, error) {
	s = Strip(s)

	for _, level := range levels {
		ops := level.ops
		if disallow != nil {
			var filtered []string

			for _, op := range ops {
				if !disallow[op] {
					filtered = append(filtered, op)
				}
			}

			ops = filtered
		}

		if len(ops) == 0 {
			continue
		}

		start, end, op, ok := findTopLevelOp(s, ops)
		if !ok {
			continue
		}

		leftSpan := s.Slice(0, start)
		rightSpan := Strip(s.Slice(end, s.Len()))

		if unaryOps[op] && Strip(leftSpan).IsEmpty() {
			rec, err := ParseRecordInternals(rightSpan, tooMuch, false)
			if err != nil {
				return nil, true, err
			}

			return &Call{base{s}, op, rec, nil}, true, nil
		}

		left, err := ParseExpression(leftSpan, tooMuch)
		if err != nil {
			return nil, true, err
		}

		right, err := ParseExpression(rightSpan, tooMuch)
		if err != nil {
			return nil, true, err
		}

		rec := &Record{
			base: base{s},
			Fields: []Field{
				{Name: "left", Value: left},
				{Name: "right", Value: right},
			},
		}

		return &Call{base{s}, strings.TrimSpace(op), rec, nil}, true, nil
	}

	return nil, false, nil
}

// findTopLevelOp locates the rightmost occurrence, at bracket/string depth
// zero, of any operator in ops. A non-unary operator requires a non-empty
// left-hand side; a unary operator ("-", "!") is allowed an empty
// left-hand side so that a leading "-x" is recognised here rather than
// mis-parsed by a leaf production. Longer operators are preferred over
// shorter ones sharing a prefix (">=" over ">").
func findTopLevelOp(s span.Span, ops []string) (start, end int, op string, ok bool) {
	sorted := append([]string(nil), ops...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	text := []rune(s.Text())
	t := NewTraverser(s)

	type occurrence struct {
		start, end int
		op         string
	}

	var found []occurrence

	for t.HasNext() {
		step := t.Next()
		if step.Status != OK || len(step.Stack) != 0 {
			continue
		}

		i := step.Index

		for _, candidate := range sorted {
			cr := []rune(candidate)
			if i+len(cr) > len(text) {
				continue
			}

			if string(text[i:i+len(cr)]) != candidate {
				continue
			}

			if isWordOp(candidate) {
				lead := len(candidate) - len(strings.TrimLeft(candidate, " "))
				trail := len(candidate) - len(strings.TrimRight(candidate, " "))
				before := i + lead - 1
				after := i + len(cr) - trail

				if before >= 0 && isIdentRune(text[before]) {
					continue
				}

				if after < len(text) && isIdentRune(text[after]) {
					continue
				}
			}

			leftEmpty := len(rstrip(text[:i])) == 0
			if leftEmpty && !unaryOps[candidate] {
				continue
			}

			found = append(found, occurrence{i, i + len(cr), candidate})

			break
		}
	}

	if len(found) == 0 {
		return 0, 0, "", false
	}

	last := found[len(found)-1]

	return last.start, last.end, last.op, true
}

func rstrip(rs []rune) []rune {
	i := len(rs)
	for i > 0 && unicode.IsSpace(rs[i-1]) {
		i--
	}

	return rs[:i]
}
