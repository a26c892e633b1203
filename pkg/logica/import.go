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
	"github.com/EvgSkv/logica/pkg/util"
)

// FileReader loads the raw contents of a module file at path, however the
// caller wants to source it (disk, embedded FS, network). Search-path
// composition (e.g. from an environment variable) is left entirely to the
// caller; the resolver only tries the roots it is given, in order.
type FileReader func(path string) ([]byte, error)

// Resolver resolves "import a.b.C [as D]" statements into the renamed,
// prefixed rule set of the imported file, caching parsed files by module
// path and detecting import cycles.
type Resolver struct {
	Roots []string
	Read  FileReader

	cache      map[string]*FileResult
	inProgress map[string]bool
	log        *log.Logger
}

// NewResolver constructs a Resolver which searches roots in order, using
// read to load file contents.
func NewResolver(roots []string, read FileReader) *Resolver {
	return &Resolver{
		Roots:      roots,
		Read:       read,
		cache:      map[string]*FileResult{},
		inProgress: map[string]bool{},
		log:        log.StandardLogger(),
	}
}

// Resolve loads the file backing stmt's import path, verifies the imported
// predicate is defined there, and returns that file's rules renamed under a
// prefix unique to the module path, paired with the prefix itself.
func (r *Resolver) Resolve(stmt *ImportStatement) (util.Pair[string, []*Rule], error) {
	ip := ImportPath{stmt.Path}
	modulePath := ip.ModulePath()

	fr, err := r.load(modulePath, stmt.Heritage())
	if err != nil {
		return util.Pair[string, []*Rule]{}, err
	}

	predName := ip.PredicateName()

	found := util.ContainsMatching(fr.Rules, func(rule *Rule) bool {
		return rule.Head.Name == predName
	})

	if !found {
		return util.Pair[string, []*Rule]{}, span.NewError(span.Import, stmt.Heritage(),
			"predicate %s is not defined in %s", predName, ip.FilePath(".l"))
	}

	prefix := strings.Join(modulePath, "_") + "_"

	return util.NewPair(prefix, RenameAllPredicates(fr.Rules, prefix)), nil
}

// load parses the file at modulePath, using the cache when available and
// raising an Import error on a cycle.
func (r *Resolver) load(modulePath []string, at span.Span) (*FileResult, error) {
	key := strings.Join(modulePath, "/")

	if cached, ok := r.cache[key]; ok {
		return cached, nil
	}

	if r.inProgress[key] {
		return nil, span.NewError(span.Import, at, "circular import involving %q", key)
	}

	content, name, err := r.readFile(modulePath)
	if err != nil {
		return nil, span.NewError(span.Import, at, "%v", err)
	}

	r.log.Debugf("logica: resolving import %q from %q", key, name)

	r.inProgress[key] = true
	defer delete(r.inProgress, key)

	fr, err := ParseFile(content, name, r)
	if err != nil {
		return nil, err
	}

	r.cache[key] = fr

	return fr, nil
}

func (r *Resolver) readFile(modulePath []string) ([]byte, string, error) {
	rel := strings.Join(modulePath, "/") + ".l"

	var lastErr error

	for _, root := range r.Roots {
		candidate := root + "/" + rel

		data, err := r.Read(candidate)
		if err == nil {
			return data, candidate, nil
		}

		lastErr = err
	}

	return nil, "", span.NewError(span.Import, span.Span{},
		"could not find module %q in any import root (last error: %v)", strings.Join(modulePath, "."), lastErr)
}

// synonymRule builds a generic pass-through rule "synonym(*R) :-
// prefixedName(*R)." so callers can refer to an imported predicate by its
// local synonym without needing to know its prefixed name, regardless of
// the predicate's arity or field names.
func synonymRule(stmt *ImportStatement, prefixedName string) *Rule {
	restVar := &Variable{base{stmt.Heritage()}, "_ImportRest"}

	headRec := &Record{base: base{stmt.Heritage()}, RestOf: restVar}
	bodyRec := &Record{base: base{stmt.Heritage()}, RestOf: restVar}

	head := &Call{base{stmt.Heritage()}, stmt.Synonym, headRec, nil}
	body := &Predicate{base{stmt.Heritage()}, &Call{base{stmt.Heritage()}, prefixedName, bodyRec, nil}}

	return &Rule{
		base:     base{stmt.Heritage()},
		Head:     head,
		Body:     body,
		FullText: stmt.Heritage(),
	}
}

// CheckUnusedImports reports an error for every import statement whose
// synonym is never referenced by name in the rules' bodies (heads are not
// scanned).
func CheckUnusedImports(imports []*ImportStatement, rules []*Rule) []error {
	used := map[string]bool{}

	for _, r := range rules {
		collectCalledNames(r, used)
	}

	var errs []error

	for _, stmt := range imports {
		if !used[stmt.Synonym] {
			errs = append(errs, span.NewError(span.Import, stmt.Heritage(),
				"unused import: %s", stmt.Synonym))
		}
	}

	return errs
}

func collectCalledNames(r *Rule, used map[string]bool) {
	if r.Body != nil {
		walkPropCalls(r.Body, used)
	}
}

func walkPropCalls(p Prop, used map[string]bool) {
	switch v := p.(type) {
	case *Predicate:
		used[v.Call.Name] = true
		walkExprCalls(v.Call, used)
	case *Unification:
		walkExprCalls(v.Left, used)
		walkExprCalls(v.Right, used)
	case *Inclusion:
		walkExprCalls(v.Element, used)
		walkExprCalls(v.Collection, used)
	case *Conjunction:
		for _, c := range v.Conjuncts {
			walkPropCalls(c, used)
		}
	case *Disjunction:
		for _, alt := range v.Alternatives {
			for _, c := range alt {
				walkPropCalls(c, used)
			}
		}
	case *Negation:
		walkPropCalls(v.Operand, used)
	case *ExprProp:
		walkExprCalls(v.Expr, used)
	}
}

func walkExprCalls(e Expr, used map[string]bool) {
	switch v := e.(type) {
	case *Call:
		used[v.Name] = true

		if v.Record != nil {
			for _, f := range v.Record.Fields {
				if f.Value != nil {
					walkExprCalls(f.Value, used)
				}

				if f.Aggregation != nil {
					walkExprCalls(f.Aggregation, used)
				}
			}
		}

		for _, a := range v.Args {
			walkExprCalls(a, used)
		}
	case *ListExpr:
		for _, el := range v.Elements {
			walkExprCalls(el, used)
		}
	case *Implication:
		for _, clause := range v.IfThen {
			walkExprCalls(clause.Condition, used)
			walkExprCalls(clause.Consequence, used)
		}

		walkExprCalls(v.Otherwise, used)
	case *Combine:
		if v.Rule.Body != nil {
			walkPropCalls(v.Rule.Body, used)
		}

		walkExprCalls(v.Rule.Head, used)
	}
}
