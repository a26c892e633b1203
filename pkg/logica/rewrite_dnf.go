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
	"github.com/EvgSkv/logica/pkg/span"
	"github.com/EvgSkv/logica/pkg/util"
)

// RewriteDNF expands a rule whose body contains a top-level disjunction
// into one rule per disjunctive branch, all sharing the original head,
// distinct flag, and annotations. Nested Combine bodies are left untouched:
// only the outermost rule body is put into disjunctive normal form, and a
// disjunction inside a Combine body stays in place.
func RewriteDNF(rule *Rule) []*Rule {
	if rule.Body == nil {
		return []*Rule{rule}
	}

	branches := disjunctiveNormalForm(rule.Body)
	if len(branches) <= 1 {
		return []*Rule{rule}
	}

	out := make([]*Rule, 0, len(branches))

	for _, branch := range branches {
		clone := *rule
		clone.Body = conjunctionOf(branch, rule.Body.Heritage())
		out = append(out, &clone)
	}

	return out
}

// disjunctiveNormalForm expands p into a list of conjunctive branches, each
// a flat list of non-disjunctive atoms.
func disjunctiveNormalForm(p Prop) [][]Prop {
	switch v := p.(type) {
	case *Conjunction:
		return crossProduct(v.Conjuncts)
	case *Disjunction:
		var out [][]Prop

		for _, alt := range v.Alternatives {
			out = append(out, crossProduct(alt)...)
		}

		return out
	default:
		return [][]Prop{{p}}
	}
}

// crossProduct expands each atom in atoms into its own disjunctive
// branches, then takes the cartesian product across the sequence so that
// e.g. "(a | b), c" becomes [[a,c], [b,c]].
func crossProduct(atoms []Prop) [][]Prop {
	acc := [][]Prop{{}}

	for _, atom := range atoms {
		branches := disjunctiveNormalForm(atom)

		var next [][]Prop

		for _, prefix := range acc {
			for _, branch := range branches {
				combined := prefix
				for _, p := range branch {
					combined = util.Append(combined, p)
				}

				next = append(next, combined)
			}
		}

		acc = next
	}

	return acc
}

// conjunctionOf wraps a branch of atoms back into a single Prop: bare when
// there is exactly one atom, a Conjunction otherwise.
func conjunctionOf(atoms []Prop, heritage span.Span) Prop {
	if len(atoms) == 1 {
		return atoms[0]
	}

	return &Conjunction{base{heritage}, atoms}
}
