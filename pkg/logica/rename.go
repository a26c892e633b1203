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

// RenameAllPredicates returns a copy of rules with every predicate defined
// among them (i.e. every rule's own head) prefixed, and every reference to
// one of those predicates from within any rule's body renamed to match,
// including references nested inside Combine sub-queries. References to
// names not defined within this rule set (builtins, or predicates that will
// themselves be resolved by a further import) are left untouched.
func RenameAllPredicates(rules []*Rule, prefix string) []*Rule {
	local := make(map[string]bool, len(rules))
	for _, r := range rules {
		local[r.Head.Name] = true
	}

	out := make([]*Rule, len(rules))

	for i, r := range rules {
		clone := *r
		clone.Head = renameCallHead(r.Head, prefix)

		if r.Body != nil {
			clone.Body = renamePropRefs(r.Body, local, prefix)
		}

		out[i] = &clone
	}

	return out
}

func renameCallHead(c *Call, prefix string) *Call {
	clone := *c
	clone.Name = prefix + c.Name

	return &clone
}

func renamePropRefs(p Prop, local map[string]bool, prefix string) Prop {
	switch v := p.(type) {
	case *Predicate:
		clone := *v
		clone.Call = renameCallRefs(v.Call, local, prefix)

		return &clone
	case *Unification:
		clone := *v
		clone.Left = renameExprRefs(v.Left, local, prefix)
		clone.Right = renameExprRefs(v.Right, local, prefix)

		return &clone
	case *Inclusion:
		clone := *v
		clone.Element = renameExprRefs(v.Element, local, prefix)
		clone.Collection = renameExprRefs(v.Collection, local, prefix)

		return &clone
	case *Conjunction:
		clone := *v
		clone.Conjuncts = make([]Prop, len(v.Conjuncts))

		for i, c := range v.Conjuncts {
			clone.Conjuncts[i] = renamePropRefs(c, local, prefix)
		}

		return &clone
	case *Disjunction:
		clone := *v
		clone.Alternatives = make([][]Prop, len(v.Alternatives))

		for i, alt := range v.Alternatives {
			renamed := make([]Prop, len(alt))
			for j, c := range alt {
				renamed[j] = renamePropRefs(c, local, prefix)
			}

			clone.Alternatives[i] = renamed
		}

		return &clone
	case *Negation:
		clone := *v
		clone.Operand = renamePropRefs(v.Operand, local, prefix)

		return &clone
	case *ExprProp:
		clone := *v
		clone.Expr = renameExprRefs(v.Expr, local, prefix)

		return &clone
	default:
		return p
	}
}

func renameCallRefs(c *Call, local map[string]bool, prefix string) *Call {
	clone := *c
	if local[c.Name] {
		clone.Name = prefix + c.Name
	}

	if c.Record != nil {
		clone.Record = renameRecordRefs(c.Record, local, prefix)
	}

	if c.Args != nil {
		clone.Args = make([]Expr, len(c.Args))
		for i, a := range c.Args {
			clone.Args[i] = renameExprRefs(a, local, prefix)
		}
	}

	return &clone
}

func renameRecordRefs(r *Record, local map[string]bool, prefix string) *Record {
	clone := *r
	clone.Fields = make([]Field, len(r.Fields))

	for i, f := range r.Fields {
		nf := f
		if f.Value != nil {
			nf.Value = renameExprRefs(f.Value, local, prefix)
		}

		if f.Aggregation != nil {
			nf.Aggregation = renameCallRefs(f.Aggregation, local, prefix)
		}

		clone.Fields[i] = nf
	}

	if r.RestOf != nil {
		clone.RestOf = renameExprRefs(r.RestOf, local, prefix)
	}

	return &clone
}

func renameExprRefs(e Expr, local map[string]bool, prefix string) Expr {
	switch v := e.(type) {
	case *Call:
		return renameCallRefs(v, local, prefix)
	case *Record:
		return renameRecordRefs(v, local, prefix)
	case *ListExpr:
		clone := *v
		clone.Elements = make([]Expr, len(v.Elements))

		for i, el := range v.Elements {
			clone.Elements[i] = renameExprRefs(el, local, prefix)
		}

		return &clone
	case *Implication:
		clone := *v
		clone.IfThen = make([]IfThenClause, len(v.IfThen))

		for i, clause := range v.IfThen {
			clone.IfThen[i] = IfThenClause{
				Condition:   renameExprRefs(clause.Condition, local, prefix),
				Consequence: renameExprRefs(clause.Consequence, local, prefix),
			}
		}

		clone.Otherwise = renameExprRefs(v.Otherwise, local, prefix)

		return &clone
	case *Combine:
		clone := *v
		innerRule := *v.Rule
		innerRule.Head = renameCallRefs(v.Rule.Head, local, prefix)

		if v.Rule.Body != nil {
			innerRule.Body = renamePropRefs(v.Rule.Body, local, prefix)
		}

		clone.Rule = &innerRule

		return &clone
	default:
		return e
	}
}
