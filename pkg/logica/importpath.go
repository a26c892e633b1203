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

// ImportPath is a dotted sequence of segments naming a predicate to import,
// e.g. "a.b.C" parses to ["a", "b", "C"]. The final segment is the
// predicate name; every earlier segment is a directory or file component of
// the module path it lives under.
type ImportPath struct {
	Segments []string
}

// ParseImportPath splits s on '.' into an ImportPath, rejecting empty
// segments.
func ParseImportPath(s span.Span) (ImportPath, error) {
	text := Strip(s).Text()
	if text == "" {
		return ImportPath{}, span.NewError(span.Import, s, "empty import path")
	}

	segments := strings.Split(text, ".")
	for _, seg := range segments {
		if seg == "" {
			return ImportPath{}, span.NewError(span.Import, s, "malformed import path %q", text)
		}
	}

	return ImportPath{segments}, nil
}

// PredicateName returns the final segment of the path: the name the
// imported predicate is defined under in its source file.
func (p ImportPath) PredicateName() string {
	return p.Segments[len(p.Segments)-1]
}

// ModulePath returns every segment but the last: the file path (dot
// separated, mapped to '/' by the resolver) the predicate is expected to
// live in.
func (p ImportPath) ModulePath() []string {
	return p.Segments[:len(p.Segments)-1]
}

// String renders the path in its original dotted form.
func (p ImportPath) String() string {
	return strings.Join(p.Segments, ".")
}

// FilePath renders the module path portion as a slash-separated relative
// file path with the given extension, e.g. "a/b" + ".l".
func (p ImportPath) FilePath(ext string) string {
	return strings.Join(p.ModulePath(), "/") + ext
}
