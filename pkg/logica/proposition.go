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

// ParseProposition parses span s as a rule body: a disjunction of
// conjunctions of atoms. Top level splits on '|' (disjunction) then ','
// (conjunction); an atom that is itself parenthesised recurses
// before the '|'/',' splitting is applied to it, so grouping works as
// expected. '|' rather than ';' is used for disjunction so that a rule
// body's own top-level structure never collides with ';' as the top-level
// statement terminator between rules in a file.
func ParseProposition(s span.Span, tooMuch bool) (Prop, error) {
	s = Strip(s)
	if s.IsEmpty() {
		return nil, span.NewError(span.Structural, s, "expected a proposition, found nothing")
	}

	alternatives := SplitRaw(s, '|')
	if len(alternatives) > 1 {
		disj := &Disjunction{base: base{s}}

		for _, alt := range alternatives {
			conjuncts, err := parseConjuncts(alt, tooMuch)
			if err != nil {
				return nil, err
			}

			disj.Alternatives = append(disj.Alternatives, conjuncts)
		}

		return disj, nil
	}

	conjuncts, err := parseConjuncts(s, tooMuch)
	if err != nil {
		return nil, err
	}

	if len(conjuncts) == 1 {
		return conjuncts[0], nil
	}

	return &Conjunction{base{s}, conjuncts}, nil
}

func parseConjuncts(s span.Span, tooMuch bool) ([]Prop, error) {
	var out []Prop

	for _, part := range SplitRaw(s, ',') {
		atom, err := parsePropAtom(part, tooMuch)
		if err != nil {
			return nil, err
		}

		out = append(out, atom)
	}

	return out, nil
}

// propInfixLevels is the restricted infix table proposition atoms consult
// before falling back to the general expression infix table: only "&&" and
// "||" apply here, in this order, combining boolean-valued expression
// operands rather than the full operator set.
var propInfixLevels = []opLevel{{[]string{"&&"}}, {[]string{"||"}}}

// parsePropAtom parses a single proposition not containing a top-level ','
// or '|' — except that stripping a wrapping "(...)" may expose one that was
// hidden by the parens, in which case this hands off to ParseProposition
// instead of treating the span as one atom.
func parsePropAtom(s span.Span, tooMuch bool) (Prop, error) {
	s = Strip(s)

	// Strip may have just peeled a wrapping "(...)" that was hiding a
	// top-level '|' or ',' from the split that produced this atom (e.g. an
	// atom "(P(x) | Q(x))" inside "(P(x) | Q(x)), R(x)"). Once peeled, that
	// separator is no longer nested, so this span is not actually a single
	// atom and needs to go back through the disjunction/conjunction split
	// rather than be parsed as one.
	if len(SplitRaw(s, '|')) > 1 || len(SplitRaw(s, ',')) > 1 {
		return ParseProposition(s, tooMuch)
	}

	text := s.Text()

	if strings.HasPrefix(text, "if ") || strings.HasPrefix(text, "if\n") || strings.HasPrefix(text, "if\t") {
		return nil, span.NewError(span.Structural, s,
			"if-then-else is only valid as an expression, not as a proposition")
	}

	if tooMuch {
		if left, right, ok := splitTopLevelToken(s, "<=>"); ok {
			leftProp, err := ParseProposition(left, tooMuch)
			if err != nil {
				return nil, err
			}

			rightProp, err := ParseProposition(right, tooMuch)
			if err != nil {
				return nil, err
			}

			return propositionalEquivalence(s, leftProp, rightProp), nil
		}
	}

	if left, right, ok := splitTopLevelToken(s, "=>"); ok {
		leftProp, err := ParseProposition(left, tooMuch)
		if err != nil {
			return nil, err
		}

		rightProp, err := ParseProposition(right, tooMuch)
		if err != nil {
			return nil, err
		}

		return propositionalImplication(s, leftProp, rightProp), nil
	}

	if name, argsSpan, form, ok := trySplitCall(s); ok {
		call, err := parseCallWith(s, name, argsSpan, form, tooMuch, false)
		if err != nil {
			return nil, err
		}

		return &Predicate{base{s}, call.(*Call)}, nil
	}

	if expr, ok, err := matchTopLevelInfix(s, propInfixLevels, nil, tooMuch); err != nil {
		return nil, err
	} else if ok {
		return &Predicate{base{s}, expr.(*Call)}, nil
	}

	if left, right, ok := splitTopLevelToken(s, "=="); ok {
		leftExpr, err := ParseExpression(left, tooMuch)
		if err != nil {
			return nil, err
		}

		rightExpr, err := ParseExpression(right, tooMuch)
		if err != nil {
			return nil, err
		}

		return &Unification{base{s}, leftExpr, rightExpr}, nil
	}

	if before, after, ok := findTopLevelWord(s, "in"); ok {
		elemExpr, err := ParseExpression(s.Slice(0, before), tooMuch)
		if err != nil {
			return nil, err
		}

		collExpr, err := ParseExpression(s.Slice(after, s.Len()), tooMuch)
		if err != nil {
			return nil, err
		}

		return &Inclusion{base{s}, elemExpr, collExpr}, nil
	}

	if expr, ok, err := matchTopLevelInfix(s, exprLevels(tooMuch), map[string]bool{"~": true}, tooMuch); err != nil {
		return nil, err
	} else if ok {
		return &Predicate{base{s}, expr.(*Call)}, nil
	}

	if strings.HasPrefix(text, "~") {
		operand, err := parsePropAtom(Strip(s.Slice(1, s.Len())), tooMuch)
		if err != nil {
			return nil, err
		}

		return &Negation{base{s}, operand}, nil
	}

	expr, err := ParseExpression(s, tooMuch)
	if err != nil {
		return nil, err
	}

	return &ExprProp{base{s}, expr}, nil
}

// splitTopLevelToken splits s at its single top-level occurrence of token,
// reporting ok=false when token occurs zero or more than once at top
// level (the latter is left for the caller's next production, rather than
// erroring, since a token appearing twice at top level usually means it
// isn't the production being tried).
func splitTopLevelToken(s span.Span, token string) (left, right span.Span, ok bool) {
	idxs := topLevelOccurrences(s, token)
	if len(idxs) != 1 {
		return span.Span{}, span.Span{}, false
	}

	i := idxs[0]

	return s.Slice(0, i), s.Slice(i+len([]rune(token)), s.Len()), true
}

// propositionalImplication desugars "cond => cons" to "~(cond, ~cons)",
// matching the reference grammar's own expansion.
func propositionalImplication(heritage span.Span, cond, cons Prop) Prop {
	return &Negation{base{heritage}, &Conjunction{base{heritage}, []Prop{cond, &Negation{base{heritage}, cons}}}}
}

// propositionalEquivalence desugars "a <=> b", available only under the
// TOO_MUCH incantation, to "(a => b), (b => a)".
func propositionalEquivalence(heritage span.Span, left, right Prop) Prop {
	return &Conjunction{base{heritage}, []Prop{
		propositionalImplication(heritage, left, right),
		propositionalImplication(heritage, right, left),
	}}
}
