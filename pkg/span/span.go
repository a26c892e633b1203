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

// Package span provides the shared source-text handle and rune-range
// references (spans) used throughout the Logica parser to preserve heritage
// and to pinpoint errors in the original text.
package span

import "fmt"

// Source is the immutable, shared text of a single input file.  Every Span
// derived from a Source retains a handle back to it, so that heritage and
// error context can always be recovered without copying the underlying
// text.
type Source struct {
	// Name of the file this text came from ("main" for the top-level file).
	name string
	// Full contents of the file, as runes so indices are stable under
	// multi-byte UTF-8 characters.
	text []rune
}

// NewSource constructs a new Source from raw file content.
func NewSource(name string, content []byte) *Source {
	return &Source{name, []rune(string(content))}
}

// NewSourceFromString constructs a new Source directly from a string.
func NewSourceFromString(name string, content string) *Source {
	return &Source{name, []rune(content)}
}

// Name returns the filename associated with this source.
func (s *Source) Name() string {
	return s.name
}

// Len returns the number of runes in this source.
func (s *Source) Len() int {
	return len(s.text)
}

// Whole returns a span covering the entirety of this source.
func (s *Source) Whole() Span {
	return Span{s, 0, len(s.text)}
}

// Span is a half-open [Start,Stop) rune range into a shared Source.  Two
// spans over the same Source can be compared and sliced without copying the
// underlying text.  Spans are immutable once constructed.
type Span struct {
	source *Source
	start  int
	stop   int
}

// New constructs a span over the given source.  Panics if the range is
// invalid, since a malformed span indicates a parser bug rather than a user
// error.
func New(source *Source, start, stop int) Span {
	if start > stop || start < 0 || stop > len(source.text) {
		panic(fmt.Sprintf("invalid span [%d,%d) over %d runes", start, stop, len(source.text)))
	}
	//
	return Span{source, start, stop}
}

// Source returns the underlying source text handle of this span.
func (s Span) Source() *Source {
	return s.source
}

// Start returns the starting rune offset of this span within its source.
func (s Span) Start() int {
	return s.start
}

// Stop returns one past the final rune offset of this span within its
// source.
func (s Span) Stop() int {
	return s.stop
}

// Len returns the number of runes covered by this span.
func (s Span) Len() int {
	return s.stop - s.start
}

// IsEmpty returns true if this span covers no runes.
func (s Span) IsEmpty() bool {
	return s.start == s.stop
}

// Text returns the substring of the source text covered by this span. This
// is the node's heritage when the span is attached to an AST node.
func (s Span) Text() string {
	return string(s.source.text[s.start:s.stop])
}

// Slice returns the sub-span [Start+lo, Start+hi) of this span, with lo and
// hi addressed relative to this span's own start.  Used pervasively by the
// splitting/stripping utilities to narrow a span without copying text.
func (s Span) Slice(lo, hi int) Span {
	return New(s.source, s.start+lo, s.start+hi)
}

// SameSource reports whether two spans are slices of the same source text.
func (s Span) SameSource(o Span) bool {
	return s.source == o.source
}

// Context returns up to radius runes of text immediately before and after
// this span, clamped to the bounds of the source. Used by error rendering to
// show pre/mid/post context around the offending span.
func (s Span) Context(radius int) (pre, mid, post string) {
	text := s.source.text
	lo := s.start - radius
	if lo < 0 {
		lo = 0
	}

	hi := s.stop + radius
	if hi > len(text) {
		hi = len(text)
	}

	return string(text[lo:s.start]), string(text[s.start:s.stop]), string(text[s.stop:hi])
}

// String renders this span as "start:stop" for debugging.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.start, s.stop)
}
