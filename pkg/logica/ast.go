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

// Expr is any parsed expression node. Every implementation retains the span
// of source text it was parsed from (its heritage) via Heritage.
type Expr interface {
	// Heritage returns the original source text this node was parsed from.
	Heritage() span.Span
	exprNode()
}

// base embeds into every concrete Expr/Prop node to provide Heritage and
// pin the node to this package's sum types.
type base struct {
	span span.Span
}

// Heritage returns the span of source text this node came from.
func (b base) Heritage() span.Span { return b.span }

func (base) exprNode() {}
func (base) propNode() {}

// Literal is a scalar constant: a number, string, boolean, or null.
type Literal struct {
	base
	// Kind names the literal's type: "int", "float", "string", "bool", or
	// "null".
	Kind string
	// Text is the normalised literal value rendered as source text (decoded
	// string contents for Kind=="string", "true"/"false" for Kind=="bool").
	Text string
}

// Variable is a bare identifier reference, either a logic variable (e.g.
// X) or a predicate/function name used as a value (e.g. Sqrt).
type Variable struct {
	base
	Name string
}

// ListExpr is a bracketed list of expressions: [a, b, c].
type ListExpr struct {
	base
	Elements []Expr
}

// Field is one entry of a Record: either positional (Name empty) or named
// (Name set from "name: value" or "name = value").
type Field struct {
	// Name is empty for a positional field.
	Name string
	// Value is the field's expression, or nil if Aggregation is set.
	Value Expr
	// Aggregation holds an aggregating call (e.g. Sum(x)) before rewriting
	// collapses it into Value. Rewriting guarantees this is nil afterward.
	Aggregation *Call
}

// Record is a Logica record literal: {a: 1, b: 2} or a bare positional tuple
// (1, 2), optionally spread with a "* rest" field.
type Record struct {
	base
	Fields []Field
	// RestOf is the expression a "* rest" field spreads from, or nil.
	RestOf Expr
}

// Call is a predicate or function application: Name(arg1, arg2, ...) or,
// when Record is non-nil, Name{field: value, ...}.
type Call struct {
	base
	Name string
	// Record holds the call's arguments when written in record-call form.
	// Exactly one of Record and Args is populated after parsing.
	Record *Record
	Args   []Expr
}

// Combine is an aggregating sub-query: an inline rule (Head/Body/Distinct)
// used as an expression. Its Head is itself a Rule, reusing the same shape
// as a top-level rule definition.
type Combine struct {
	base
	Rule *Rule
}

// IfThenClause is one "condition then consequence" clause of a
// (possibly chained) if/then/else expression.
type IfThenClause struct {
	Condition   Expr
	Consequence Expr
}

// Implication is a conditional expression: "if c1 then v1 else if c2 then
// v2 ... else vN". IfThen holds each condition/consequence clause in
// source order; the first whose condition holds supplies the value,
// falling back to Otherwise if none do.
type Implication struct {
	base
	IfThen    []IfThenClause
	Otherwise Expr
}

// Prop is any parsed proposition node, i.e. a statement that can appear in
// a rule body.
type Prop interface {
	Heritage() span.Span
	propNode()
}

// Predicate is a bare predicate application used as a proposition, such as
// P(x, y) appearing in a rule body.
type Predicate struct {
	base
	Call *Call
}

// Unification is an equality constraint between two expressions: left =
// right.
type Unification struct {
	base
	Left  Expr
	Right Expr
}

// Inclusion is a set-membership constraint: element in collection.
type Inclusion struct {
	base
	Element    Expr
	Collection Expr
}

// Conjunction is a top-level, flattened list of propositions joined by ",".
type Conjunction struct {
	base
	Conjuncts []Prop
}

// Disjunction is a top-level, flattened list of proposition lists joined by
// "|": Alternatives[i] is itself a list of conjuncts.
type Disjunction struct {
	base
	Alternatives [][]Prop
}

// Negation is a boolean negation of a proposition: "~p".
type Negation struct {
	base
	Operand Prop
}

// ExprProp wraps a bare expression used as a proposition (e.g. an infix
// comparison like x > 0).
type ExprProp struct {
	base
	Expr Expr
}

// Annotation names the rule-head annotations distilled from denotation
// keywords (@OrderBy / @Limit) attached to a predicate during the
// denotation rewrite.
type Annotation struct {
	Name string
	Args []Expr
}

// Rule is a single Logica rule: a head call, an optional body, and any
// annotations produced by rewriting denotation keywords off the head.
// Combine reuses this same type for its inline sub-query, since a
// combine{...} block has exactly the same head/body/distinct/full_text
// shape as a top-level rule.
type Rule struct {
	base
	Head *Call
	// Body is nil for a fact (a rule with no ":-").
	Body Prop
	// Distinct records whether the head call was marked "distinct".
	Distinct bool
	// FullText is the entire rule's original source, head through body,
	// kept for diagnostics.
	FullText span.Span
	// Annotations accumulates denotation-derived markers such as
	// @OrderBy/@Limit, attached during rewriting.
	Annotations []Annotation
}

// ImportStatement is a single "import a.b.C [as D]" line.
type ImportStatement struct {
	base
	// Path is the dotted predicate path, e.g. ["a", "b", "C"].
	Path []string
	// Synonym is the local name to bind the imported predicate to; equal to
	// the last element of Path when no "as" clause is given.
	Synonym string
}

// FileResult is the fully parsed, rewritten, and import-resolved output of
// parsing one top-level Logica file.
type FileResult struct {
	Rules   []*Rule
	Imports []*ImportStatement
}
