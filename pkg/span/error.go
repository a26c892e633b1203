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
package span

import "fmt"

// Kind classifies a ParsingError, without implying any hierarchy between
// kinds.
type Kind uint

const (
	// Lexical covers unmatched brackets and strings left open across a
	// newline.
	Lexical Kind = iota
	// Structural covers malformed statement shape: too many separators,
	// misplaced denotations, trailing text.
	Structural
	// Semantic covers identifiers and fields which are individually
	// well-formed but violate a naming or placement rule.
	Semantic
	// Import covers file resolution, cycles and prefixing.
	Import
	// Rewrite covers inconsistencies discovered while normalising rules.
	Rewrite
	// Generic covers "could not parse expression/proposition" style
	// fallthrough failures.
	Generic
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Structural:
		return "structural"
	case Semantic:
		return "semantic"
	case Import:
		return "import"
	case Rewrite:
		return "rewrite"
	default:
		return "generic"
	}
}

// ParsingError is a structured error which retains the span of the original
// text where an error occurred, along with an error message.  It is the sole
// error type produced by the Logica parser; there is no partial-tree
// recovery, so the first ParsingError raised aborts parsing entirely.
type ParsingError struct {
	kind Kind
	span Span
	msg  string
}

// NewError constructs a new ParsingError of the given kind, over the given
// span, with a formatted message.
func NewError(kind Kind, sp Span, format string, args ...any) *ParsingError {
	return &ParsingError{kind, sp, fmt.Sprintf(format, args...)}
}

// Kind returns the classification of this error.
func (p *ParsingError) Kind() Kind {
	return p.kind
}

// Span returns the span of the original text this error is reported
// against.
func (p *ParsingError) Span() Span {
	return p.span
}

// Message returns the human-readable message for this error, without
// location context.
func (p *ParsingError) Message() string {
	return p.msg
}

// Error implements the error interface.  Rendering with colour and wider
// context is left to the caller; this only clamps the pre/post context to
// 300 runes each side, per the error surface contract.
func (p *ParsingError) Error() string {
	return p.Render(300)
}

// Render is like Error, but clamps the pre/post context to width runes each
// side instead of the fixed default. Callers that know their output
// destination (e.g. a terminal of known width) use this to avoid wrapping.
func (p *ParsingError) Render(width int) string {
	pre, mid, post := p.span.Context(width)
	if mid == "" {
		mid = "<EMPTY>"
	}

	return fmt.Sprintf("[%s] %s: %s>>%s<<%s", p.kind, p.msg, pre, mid, post)
}
