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
	"fmt"
	"sort"

	"github.com/EvgSkv/logica/pkg/span"
)

// LiftMultiBodyAggregations finds record fields in rule's head whose value
// is a Combine (an aggregation with its own, independent body) that
// coexists with fields aggregating over the rule's own body, and lifts each
// such Combine field out into a fresh auxiliary predicate joined back on
// whatever variables the Combine's body shares with the outer rule. This is
// necessary because a single row of the head record cannot mix two
// differently-grouped aggregations without first computing them as
// separate relations.
func LiftMultiBodyAggregations(rule *Rule, auxCounter *int) (*Rule, []*Rule) {
	if rule.Head.Record == nil {
		return rule, nil
	}

	hasBareAgg, hasCombine := false, false

	for _, f := range rule.Head.Record.Fields {
		if f.Aggregation != nil {
			hasBareAgg = true
		}

		if _, ok := f.Value.(*Combine); ok {
			hasCombine = true
		}
	}

	if !hasBareAgg || !hasCombine {
		return rule, nil
	}

	outerVars := variablesIn(rule.Head)

	var aux []*Rule

	clone := *rule
	clone.Head = &Call{base: rule.Head.base, Name: rule.Head.Name, Record: &Record{base: rule.Head.Record.base}}

	for _, f := range rule.Head.Record.Fields {
		combine, ok := f.Value.(*Combine)
		if !ok {
			clone.Head.Record.Fields = append(clone.Head.Record.Fields, f)
			continue
		}

		*auxCounter++
		auxName := fmt.Sprintf("_MultBodyAggAux%d", *auxCounter)

		innerVars := variablesIn(combine.Rule.Body)

		keys := sortedIntersection(outerVars, innerVars)

		auxFields := make([]Field, 0, len(keys)+1)
		for _, k := range keys {
			auxFields = append(auxFields, Field{Name: k, Value: &Variable{base{combine.Heritage()}, k}})
		}

		auxFields = append(auxFields, Field{Name: "value", Aggregation: combine.Rule.Head})

		auxHead := &Call{base: combine.base, Name: auxName, Record: &Record{base: combine.base, Fields: auxFields}}
		auxRule := &Rule{base: combine.base, Head: auxHead, Body: combine.Rule.Body, FullText: combine.Heritage()}

		aux = append(aux, auxRule)

		joinFields := make([]Field, 0, len(keys))
		for _, k := range keys {
			joinFields = append(joinFields, Field{Name: k, Value: &Variable{base{combine.Heritage()}, k}})
		}

		joinCall := &Call{base: combine.base, Name: auxName, Record: &Record{base: combine.base, Fields: joinFields}}

		clone.Head.Record.Fields = append(clone.Head.Record.Fields, Field{
			Name:  f.Name,
			Value: &Call{base: combine.base, Name: "Element", Args: []Expr{joinCall, &Literal{base{combine.Heritage()}, "string", "value"}}},
		})

		clone.Body = joinBody(clone.Body, &Predicate{base{combine.Heritage()}, joinCall}, combine.Heritage())
	}

	return &clone, aux
}

func joinBody(body Prop, extra Prop, heritage span.Span) Prop {
	if body == nil {
		return extra
	}

	return &Conjunction{base{heritage}, []Prop{body, extra}}
}

// NormalizeAggregationSlots walks the entire node (Rule head, body, and any
// nested Combine, however deeply nested inside expressions) and replaces
// every remaining record field whose Aggregation is set with an equivalent
// Value expression, so no field-value slot contains an aggregation key once
// this returns. Unlike RewriteDNF, this recursion does not stop at nested
// Combine bodies: it normalises the whole tree in one pass.
func NormalizeAggregationSlots(rule *Rule) {
	normalizeCall(rule.Head)

	if rule.Body != nil {
		normalizeProp(rule.Body)
	}
}

func normalizeRecord(r *Record) {
	if r == nil {
		return
	}

	for i := range r.Fields {
		f := &r.Fields[i]
		if f.Aggregation != nil {
			f.Aggregation.Name = mapAggregationOperator(f.Aggregation.Name)
			normalizeCall(f.Aggregation)
			f.Value = f.Aggregation
			f.Aggregation = nil
		} else if f.Value != nil {
			normalizeExpr(f.Value)
		}
	}

	if r.RestOf != nil {
		normalizeExpr(r.RestOf)
	}
}

// mapAggregationOperator renames an aggregation operator to the call it
// desugars to: "+" and "++" name distinct running-total aggregators from
// their scalar infix counterparts, "*" already names the "any row" literal
// aggregator, and anything else (a plain function name like Sum or Max) is
// already a callable and passes through unchanged.
func mapAggregationOperator(op string) string {
	switch op {
	case "+":
		return "Agg+"
	case "++":
		return "Agg++"
	case "*":
		return "*"
	default:
		return op
	}
}

func normalizeCall(c *Call) {
	if c == nil {
		return
	}

	if c.Record != nil {
		normalizeRecord(c.Record)
	}

	for _, a := range c.Args {
		normalizeExpr(a)
	}
}

func normalizeExpr(e Expr) {
	switch v := e.(type) {
	case *Call:
		normalizeCall(v)
	case *ListExpr:
		for _, el := range v.Elements {
			normalizeExpr(el)
		}
	case *Record:
		normalizeRecord(v)
	case *Implication:
		for _, clause := range v.IfThen {
			normalizeExpr(clause.Condition)
			normalizeExpr(clause.Consequence)
		}

		normalizeExpr(v.Otherwise)
	case *Combine:
		NormalizeAggregationSlots(v.Rule)
	}
}

func normalizeProp(p Prop) {
	switch v := p.(type) {
	case *Predicate:
		normalizeCall(v.Call)
	case *Unification:
		normalizeExpr(v.Left)
		normalizeExpr(v.Right)
	case *Inclusion:
		normalizeExpr(v.Element)
		normalizeExpr(v.Collection)
	case *Conjunction:
		for _, c := range v.Conjuncts {
			normalizeProp(c)
		}
	case *Disjunction:
		for _, alt := range v.Alternatives {
			for _, c := range alt {
				normalizeProp(c)
			}
		}
	case *Negation:
		normalizeProp(v.Operand)
	case *ExprProp:
		normalizeExpr(v.Expr)
	}
}

// variablesIn collects the set of variable names referenced anywhere within
// node, which may be an Expr, a Prop, or a *Call.
func variablesIn(node any) map[string]bool {
	out := map[string]bool{}
	collectVars(node, out)

	return out
}

func collectVars(node any, out map[string]bool) {
	switch v := node.(type) {
	case *Variable:
		out[v.Name] = true
	case *Call:
		if v == nil {
			return
		}

		if v.Record != nil {
			for _, f := range v.Record.Fields {
				if f.Value != nil {
					collectVars(f.Value, out)
				}

				if f.Aggregation != nil {
					collectVars(f.Aggregation, out)
				}
			}

			if v.Record.RestOf != nil {
				collectVars(v.Record.RestOf, out)
			}
		}

		for _, a := range v.Args {
			collectVars(a, out)
		}
	case *ListExpr:
		for _, e := range v.Elements {
			collectVars(e, out)
		}
	case *Record:
		collectVars(&Call{Record: v}, out)
	case *Implication:
		for _, clause := range v.IfThen {
			collectVars(clause.Condition, out)
			collectVars(clause.Consequence, out)
		}

		collectVars(v.Otherwise, out)
	case *Combine:
		collectVars(v.Rule.Head, out)
		collectVars(v.Rule.Body, out)
	case *Predicate:
		collectVars(v.Call, out)
	case *Unification:
		collectVars(v.Left, out)
		collectVars(v.Right, out)
	case *Inclusion:
		collectVars(v.Element, out)
		collectVars(v.Collection, out)
	case *Conjunction:
		for _, c := range v.Conjuncts {
			collectVars(c, out)
		}
	case *Disjunction:
		for _, alt := range v.Alternatives {
			for _, c := range alt {
				collectVars(c, out)
			}
		}
	case *Negation:
		collectVars(v.Operand, out)
	case *ExprProp:
		collectVars(v.Expr, out)
	}
}

func sortedIntersection(a, b map[string]bool) []string {
	var out []string

	for k := range a {
		if b[k] {
			out = append(out, k)
		}
	}

	sort.Strings(out)

	return out
}
