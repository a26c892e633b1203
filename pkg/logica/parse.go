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

	log "github.com/sirupsen/logrus"

	"github.com/EvgSkv/logica/pkg/span"
)

// ParseFile parses one Logica source file end to end: comment removal,
// statement splitting, per-statement dispatch to the import or rule parser,
// the DNF / multi-body-aggregation / aggregation-slot / denotation
// rewrites, and import resolution against resolver (which may be nil if
// content is known to contain no imports). The returned FileResult's rules
// are fully rewritten and, when resolver is non-nil, merged with every
// transitively imported predicate.
//
// Comments are stripped up front by running the whole file through
// RemoveComments and rebuilding a Source from the result, rather than
// skipped in place statement by statement: a Span is a contiguous rune
// range into one owned buffer, so it cannot represent the file with
// comments excised except by materializing that text as a new Source.
// Heritage and error positions reported from here on are therefore
// relative to the comment-stripped text, not the original file's byte
// offsets.
func ParseFile(content []byte, name string, resolver *Resolver) (*FileResult, error) {
	tooMuch := ScanTooMuch(content)
	if tooMuch {
		log.WithField("file", name).Debug("logica: TOO_MUCH incantation found, extra operators enabled")
	}

	cleaned, err := RemoveComments(span.NewSource(name, content).Whole())
	if err != nil {
		return nil, err
	}

	whole := span.NewSourceFromString(name, cleaned).Whole()

	var (
		rawRules []*Rule
		imports  []*ImportStatement
	)

	for _, stmt := range SplitRaw(whole, ';') {
		stmt = Strip(stmt)
		if stmt.IsEmpty() {
			continue
		}

		if rest, ok := StripWord(stmt, "import"); ok {
			imp, err := parseImportStatement(Strip(rest))
			if err != nil {
				return nil, err
			}

			imports = append(imports, imp)

			continue
		}

		// Two specialized rule forms are tried before falling back to an
		// ordinary rule, matching the order the reference grammar tries
		// them in.
		if funcRules, matched, err := tryFunctionRule(stmt, tooMuch); err != nil {
			return nil, err
		} else if matched {
			rawRules = append(rawRules, funcRules...)
			continue
		}

		if functorRule, matched, err := tryFunctorRule(stmt, tooMuch); err != nil {
			return nil, err
		} else if matched {
			rawRules = append(rawRules, functorRule)
			continue
		}

		rule, err := ParseRule(stmt, tooMuch)
		if err != nil {
			return nil, err
		}

		rawRules = append(rawRules, rule)
	}

	auxCounter := 0

	var rules []*Rule

	for _, rule := range rawRules {
		for _, branch := range RewriteDNF(rule) {
			main, aux := LiftMultiBodyAggregations(branch, &auxCounter)

			NormalizeAggregationSlots(main)

			for _, a := range aux {
				NormalizeAggregationSlots(a)
			}

			rules = append(rules, aux...)
			rules = append(rules, ExtractDenotations(main)...)
			rules = append(rules, main)
		}
	}

	if len(imports) > 0 {
		if resolver == nil {
			return nil, span.NewError(span.Import, imports[0].Heritage(),
				"file has imports but no import resolver was configured")
		}

		for _, stmt := range imports {
			resolved, err := resolver.Resolve(stmt)
			if err != nil {
				return nil, err
			}

			prefix, imported := resolved.Left, resolved.Right

			log.WithField("file", name).Debugf("logica: merged %d rule(s) from import %s", len(imported), stmt.Synonym)

			rules = append(rules, imported...)
			rules = append(rules, synonymRule(stmt, prefix+lastSegment(stmt.Path)))
		}
	}

	if errs := CheckUnusedImports(imports, rawRules); len(errs) > 0 {
		return nil, errs[0]
	}

	return &FileResult{Rules: rules, Imports: imports}, nil
}

// tooMuchIncantation is the literal source phrase that unlocks the
// TOO_MUCH operator set: the extra "---"/"-+-"/... arithmetic operators
// and propositional "<=>" equivalence.
const tooMuchIncantation = "Signa inter verba conjugo, symbolum infixus evoco!"

// ScanTooMuch reports whether content carries the TOO_MUCH incantation
// anywhere in its raw text. Per the reference grammar, this is scanned
// once over the whole file up front rather than tracked as mutable state
// during parsing, and the resulting bit is passed explicitly into every
// parsing routine that consults the operator table.
func ScanTooMuch(content []byte) bool {
	return strings.Contains(string(content), tooMuchIncantation)
}

func lastSegment(path []string) string {
	return path[len(path)-1]
}

// parseImportStatement parses the text following the "import" keyword:
// a dotted path, optionally followed by "as Synonym".
func parseImportStatement(s span.Span) (*ImportStatement, error) {
	pathSpan := s
	synonym := ""

	if before, after, ok := findTopLevelWord(s, "as"); ok {
		pathSpan = s.Slice(0, before)

		synSpan := Strip(s.Slice(after, s.Len()))
		if !isIdentifier(synSpan) {
			return nil, span.NewError(span.Structural, synSpan, "expected identifier after 'as'")
		}

		synonym = synSpan.Text()
		if isReservedIdentifier(synonym) {
			return nil, span.NewError(span.Semantic, synSpan,
				"reserved identifier: %q (the %q prefix is reserved)", synonym, reservedPrefix)
		}
	}

	ip, err := ParseImportPath(Strip(pathSpan))
	if err != nil {
		return nil, err
	}

	if synonym == "" {
		synonym = ip.PredicateName()
	}

	return &ImportStatement{base{s}, ip.Segments, synonym}, nil
}
