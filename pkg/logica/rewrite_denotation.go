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

// ExtractDenotations turns the trailing denotations a rule's head collected
// during parsing (couldbe, cantbe, shouldbe, order_by(...), limit(...))
// into separate annotation facts of the form "@Name(PredicateName, args...)"
// and clears them off the rule itself, so downstream consumers only ever
// see denotations as ordinary rules over an "@"-prefixed predicate.
func ExtractDenotations(rule *Rule) []*Rule {
	if len(rule.Annotations) == 0 {
		return nil
	}

	out := make([]*Rule, 0, len(rule.Annotations))

	for _, ann := range rule.Annotations {
		args := make([]Expr, 0, len(ann.Args)+1)
		args = append(args, &Literal{base{rule.Heritage()}, "string", rule.Head.Name})
		args = append(args, ann.Args...)

		out = append(out, &Rule{
			base:     base{rule.Heritage()},
			Head:     &Call{base{rule.Heritage()}, "@" + ann.Name, nil, args},
			FullText: rule.Heritage(),
		})
	}

	rule.Annotations = nil

	return out
}
