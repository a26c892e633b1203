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
	"strconv"
	"strings"
	"unicode"

	"github.com/EvgSkv/logica/pkg/span"
	"github.com/EvgSkv/logica/pkg/util"
)

// reservedPrefix names the identifier prefix reserved for internal use;
// any identifier starting with it is rejected wherever a variable or
// predicate name is recognised.
const reservedPrefix = "x_"

func isReservedIdentifier(name string) bool {
	return strings.HasPrefix(name, reservedPrefix)
}

// isIdentStart / isIdentRune classify identifier characters: predicate and
// variable names are ASCII letters, digits, and underscores, and may not
// start with a digit.
func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentRune(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

// isIdentifier reports whether s's text is a single identifier token with
// nothing else around it.
func isIdentifier(s span.Span) bool {
	text := []rune(s.Text())
	if len(text) == 0 || !isIdentStart(text[0]) {
		return false
	}

	for _, r := range text[1:] {
		if !isIdentRune(r) {
			return false
		}
	}

	return true
}

// IsVariableName reports whether name would be parsed as a logic variable
// reference (as opposed to a predicate/function name): variables start with
// a lowercase letter or underscore, while predicate and function names
// start with an uppercase letter. Bare identifiers are parsed the same way
// regardless of case (see ParseVariable); this only matters where a caller
// needs to enforce the naming convention itself, such as rejecting a
// lowercase target in a functor rule.
func IsVariableName(name string) bool {
	if name == "" {
		return false
	}

	r := []rune(name)[0]

	return r == '_' || unicode.IsLower(r)
}

// ParseLiteral attempts to parse s (already stripped) as a scalar literal:
// number, string, boolean, or null. Returns an empty option if s is not a
// literal at all, letting the caller fall through to variable/call parsing.
func ParseLiteral(s span.Span) (util.Option[Expr], error) {
	text := s.Text()

	switch text {
	case "true", "false":
		return util.Some[Expr](&Literal{base{s}, "bool", text}), nil
	case "null":
		return util.Some[Expr](&Literal{base{s}, "null", ""}), nil
	}

	if strings.HasPrefix(text, `"""`) {
		return literalOption(parseTripleQuotedString(s))
	}

	if strings.HasPrefix(text, `"`) {
		return literalOption(parseDoubleQuotedString(s))
	}

	if strings.HasPrefix(text, "'") {
		return literalOption(parseSingleQuotedString(s))
	}

	if text == "∞" {
		return util.Some[Expr](&Literal{base{s}, "int", "-1"}), nil
	}

	if isNumberLiteral(text) {
		return literalOption(parseNumberLiteral(s))
	}

	return util.None[Expr](), nil
}

func literalOption(lit *Literal, err error) (util.Option[Expr], error) {
	if err != nil {
		return util.None[Expr](), err
	}

	return util.Some[Expr](lit), nil
}

func isNumberLiteral(text string) bool {
	if text == "" {
		return false
	}

	i := 0
	if text[0] == '-' {
		i++
	}

	if i >= len(text) {
		return false
	}

	return text[i] >= '0' && text[i] <= '9'
}

// parseNumberLiteral parses s as a number literal: an optional trailing "u"
// is stripped, then the remaining body must parse as a finite
// floating-point value, rejecting text that merely happens to be built
// from digit/./e/E/+/- characters without forming a well-shaped number
// (e.g. "1-2", "1e"). The original text, "u" suffix included, is retained
// verbatim as the literal's stored value.
func parseNumberLiteral(s span.Span) (*Literal, error) {
	text := s.Text()
	kind := "int"

	body := text
	if strings.HasSuffix(body, "u") {
		body = strings.TrimSuffix(body, "u")
	}

	if strings.ContainsAny(body, ".eE") {
		kind = "float"
	}

	for _, r := range body {
		if r != '-' && r != '.' && r != 'e' && r != 'E' && r != '+' && !unicode.IsDigit(r) {
			return nil, span.NewError(span.Lexical, s, "malformed numeric literal %q", text)
		}
	}

	if _, err := strconv.ParseFloat(body, 64); err != nil {
		return nil, span.NewError(span.Lexical, s, "malformed numeric literal %q", text)
	}

	return &Literal{base{s}, kind, text}, nil
}

// parseDoubleQuotedString decodes a "..." literal per the Logica grammar:
// a double-quoted string may not itself span multiple lines (guaranteed
// already by the Traverser) and has no escape processing beyond the
// doubled-quote-free contract enforced at the traversal layer.
func parseDoubleQuotedString(s span.Span) (*Literal, error) {
	text := s.Text()
	if len(text) < 2 || !strings.HasSuffix(text, `"`) {
		return nil, span.NewError(span.Lexical, s, "unterminated string literal")
	}

	return &Literal{base{s}, "string", text[1 : len(text)-1]}, nil
}

// parseTripleQuotedString decodes a """...""" literal, which may contain
// newlines and unescaped quotes as long as they don't form the closing
// triple.
func parseTripleQuotedString(s span.Span) (*Literal, error) {
	text := s.Text()
	if len(text) < 6 || !strings.HasSuffix(text, `"""`) {
		return nil, span.NewError(span.Lexical, s, "unterminated triple-quoted string literal")
	}

	return &Literal{base{s}, "string", text[3 : len(text)-3]}, nil
}

// parseSingleQuotedString decodes a '...' literal, honoring backslash
// escapes for \\, \', \n, \t.
func parseSingleQuotedString(s span.Span) (*Literal, error) {
	text := s.Text()
	if len(text) < 2 || !strings.HasSuffix(text, "'") {
		return nil, span.NewError(span.Lexical, s, "unterminated string literal")
	}

	body := text[1 : len(text)-1]

	var out strings.Builder

	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 >= len(runes) {
			out.WriteRune(runes[i])
			continue
		}

		i++

		switch runes[i] {
		case '\\':
			out.WriteRune('\\')
		case '\'':
			out.WriteRune('\'')
		case 'n':
			out.WriteRune('\n')
		case 't':
			out.WriteRune('\t')
		default:
			return nil, span.NewError(span.Lexical, s, "unknown escape sequence \\%c", runes[i])
		}
	}

	return &Literal{base{s}, "string", out.String()}, nil
}

// ParseVariable parses s as a bare Variable or predicate-name Variable
// reference, requiring the whole span to be a single identifier. Reports an
// error, rather than simply ok=false, when the identifier carries the
// reserved "x_" prefix, since that shape is unambiguous and must be
// rejected outright rather than left to fall through to another
// production.
func ParseVariable(s span.Span) (*Variable, bool, error) {
	if !isIdentifier(s) {
		return nil, false, nil
	}

	text := s.Text()
	if isReservedIdentifier(text) {
		return nil, false, span.NewError(span.Semantic, s, "reserved identifier: %q (the %q prefix is reserved)", text, reservedPrefix)
	}

	return &Variable{base{s}, text}, true, nil
}
