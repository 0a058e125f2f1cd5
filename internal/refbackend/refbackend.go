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

// Package refbackend implements smt2.Backend in memory, by brute-force
// enumeration over small finite domains, entirely for exercising the
// front-end's own test suite.  It is not a solving engine: CheckSat gives up
// and reports Unknown once the combined domain of the Boolean and
// bit-vector variables involved in the current assertions exceeds a small
// cap, and it does not implement floating-point arithmetic at all (FP terms
// build and sort-check but evaluate to an error, since a faithful IEEE-754
// interpreter is out of scope for a reference test double).
package refbackend

import (
	"fmt"

	"github.com/apach301/bitwuzla/pkg/smt2"
	"github.com/apach301/bitwuzla/pkg/smt2/bitvec"
)

// enumerationCap bounds the total number of assignments CheckSat will try
// before giving up and reporting Unknown.
const enumerationCap = 1 << 20

type termKind uint8

const (
	kBool termKind = iota
	kBVConst
	kRoundingMode
	kFPSpecial
	kVar
	kApply
	kUFApply
	kIte
	kConstArray
	kLet
	kQuantify
)

type term struct {
	kind termKind
	sort *smt2.Sort

	boolVal bool
	bvVal   bitvec.Value
	rmTag   smt2.TokenKind

	name string

	op      smt2.TokenKind
	indices []uint64
	args    []smt2.TermID
	rm      smt2.TermID

	fill smt2.TermID

	letNames  []string
	letValues []smt2.TermID
	body      smt2.TermID

	quantUniversal bool
	quantNames     []string
	quantSorts     []*smt2.Sort
}

type funcDecl struct {
	domain []*smt2.Sort
	rng    *smt2.Sort
}

type funcDefine struct {
	argNames []string
	argSorts []*smt2.Sort
	rng      *smt2.Sort
	body     smt2.TermID
}

// Backend is the in-memory reference implementation of smt2.Backend.
type Backend struct {
	sorts *smt2.SortTable
	terms []term // index 0 is an unused sentinel so TermID(0) means "none"

	consts    map[string]smt2.TermID
	funcs     map[string]funcDecl
	defines   map[string]funcDefine
	declOrder []string
	declMarks []int

	asserts     []smt2.TermID
	assertMarks []int

	model      map[string]value // valid only when haveModel is true, after a Sat result
	haveModel  bool
	lastResult smt2.CheckResult
}

// New constructs a fresh Backend sharing sorts with its owning Driver.
func New(sorts *smt2.SortTable) smt2.Backend {
	return &Backend{
		sorts:   sorts,
		terms:   make([]term, 1),
		consts:  make(map[string]smt2.TermID),
		funcs:   make(map[string]funcDecl),
		defines: make(map[string]funcDefine),
	}
}

func (b *Backend) push(t term) smt2.TermID {
	b.terms = append(b.terms, t)
	return smt2.TermID(len(b.terms) - 1)
}

func (b *Backend) get(t smt2.TermID) *term {
	return &b.terms[t]
}

// Bool implements smt2.Backend.
func (b *Backend) Bool(value bool) smt2.TermID {
	return b.push(term{kind: kBool, sort: b.sorts.Bool(), boolVal: value})
}

// BVConst implements smt2.Backend.
func (b *Backend) BVConst(v bitvec.Value) smt2.TermID {
	return b.push(term{kind: kBVConst, sort: b.sorts.BitVec(int(v.Width())), bvVal: v})
}

// FPSpecialConst implements smt2.Backend.
func (b *Backend) FPSpecialConst(tag smt2.TokenKind, eb, sb int) smt2.TermID {
	return b.push(term{kind: kFPSpecial, sort: b.sorts.FloatingPoint(eb, sb), op: tag})
}

// RoundingModeConst implements smt2.Backend.
func (b *Backend) RoundingModeConst(tag smt2.TokenKind) smt2.TermID {
	return b.push(term{kind: kRoundingMode, sort: b.sorts.RoundingMode(), rmTag: tag})
}

// Var implements smt2.Backend. It caches one term per name for the lifetime
// of the Backend: a
// let-bound or quantified variable that reuses a name already bound
// elsewhere (including a previously declared constant) resolves to that
// same cached term rather than a fresh one. Real scripts essentially never
// shadow a name with a different sort, so this reference implementation
// accepts the imprecision rather than threading lexical scope through the
// Backend boundary.
func (b *Backend) Var(name string, sort *smt2.Sort) smt2.TermID {
	if t, ok := b.consts[name]; ok {
		return t
	}

	t := b.push(term{kind: kVar, sort: sort, name: name})
	b.consts[name] = t

	return t
}

// Apply implements smt2.Backend.
func (b *Backend) Apply(tag smt2.TokenKind, indices []uint64, args []smt2.TermID, rm smt2.TermID) (smt2.TermID, error) {
	sort, err := b.sortOfApply(tag, indices, args, rm)
	if err != nil {
		return 0, err
	}

	return b.push(term{kind: kApply, sort: sort, op: tag, indices: indices, args: args, rm: rm}), nil
}

// ApplyUF implements smt2.Backend.  A define-fun application is expanded
// inline as a let-binding of its formals to args, so the reference model
// evaluator can see through it; a plain declare-fun application stays
// opaque (kUFApply), since this backend does not model uninterpreted
// function interpretations.
func (b *Backend) ApplyUF(name string, args []smt2.TermID) (smt2.TermID, error) {
	if def, ok := b.defines[name]; ok {
		if len(def.argSorts) != len(args) {
			return 0, fmt.Errorf("function %q expects %d arguments, got %d", name, len(def.argSorts), len(args))
		}

		return b.push(term{kind: kLet, sort: def.rng, letNames: def.argNames, letValues: args, body: def.body}), nil
	}

	decl, ok := b.funcs[name]
	if !ok {
		return 0, fmt.Errorf("undeclared function %q", name)
	}

	if len(decl.domain) != len(args) {
		return 0, fmt.Errorf("function %q expects %d arguments, got %d", name, len(decl.domain), len(args))
	}

	return b.push(term{kind: kUFApply, sort: decl.rng, name: name, args: args}), nil
}

// Ite implements smt2.Backend.
func (b *Backend) Ite(cond, then, els smt2.TermID) smt2.TermID {
	return b.push(term{kind: kIte, sort: b.get(then).sort, args: []smt2.TermID{cond, then, els}})
}

// ConstArray implements smt2.Backend.
func (b *Backend) ConstArray(sort *smt2.Sort, fill smt2.TermID) smt2.TermID {
	return b.push(term{kind: kConstArray, sort: sort, fill: fill})
}

// Let implements smt2.Backend.
func (b *Backend) Let(names []string, values []smt2.TermID, body smt2.TermID) smt2.TermID {
	return b.push(term{kind: kLet, sort: b.get(body).sort, letNames: names, letValues: values, body: body})
}

// Quantify implements smt2.Backend.
func (b *Backend) Quantify(universal bool, varNames []string, varSorts []*smt2.Sort, body smt2.TermID) smt2.TermID {
	return b.push(term{
		kind: kQuantify, sort: b.sorts.Bool(), quantUniversal: universal,
		quantNames: varNames, quantSorts: varSorts, body: body,
	})
}

// SortOf implements smt2.Backend.
func (b *Backend) SortOf(t smt2.TermID) *smt2.Sort {
	if int(t) >= len(b.terms) {
		return nil
	}

	return b.get(t).sort
}

// DeclareSort implements smt2.Backend.
func (b *Backend) DeclareSort(name string, arity int) {
	b.declOrder = append(b.declOrder, "sort:"+name)
}

// DeclareFun implements smt2.Backend.
func (b *Backend) DeclareFun(name string, domain []*smt2.Sort, rng *smt2.Sort) {
	b.funcs[name] = funcDecl{domain: domain, rng: rng}
	b.declOrder = append(b.declOrder, "fun:"+name)

	if len(domain) == 0 {
		b.Var(name, rng)
	}
}

// DefineFun implements smt2.Backend.  A zero-argument define-fun aliases
// name directly to body's term, so a later bare reference to name resolves
// through Var without ever allocating a spurious free variable for it.
func (b *Backend) DefineFun(name string, argNames []string, argSorts []*smt2.Sort, rng *smt2.Sort, body smt2.TermID) error {
	if b.get(body).sort != rng {
		return fmt.Errorf("define-fun %q body sort does not match declared range", name)
	}

	b.defines[name] = funcDefine{argNames: argNames, argSorts: argSorts, rng: rng, body: body}
	b.declOrder = append(b.declOrder, "def:"+name)

	if len(argNames) == 0 {
		b.consts[name] = body
	}

	return nil
}

// Assert implements smt2.Backend.
func (b *Backend) Assert(t smt2.TermID) {
	b.asserts = append(b.asserts, t)
	b.haveModel = false
}

// Push implements smt2.Backend.
func (b *Backend) Push(n int) {
	for i := 0; i < n; i++ {
		b.assertMarks = append(b.assertMarks, len(b.asserts))
		b.declMarks = append(b.declMarks, len(b.declOrder))
	}
}

// Pop implements smt2.Backend.
func (b *Backend) Pop(n int) error {
	if n > len(b.assertMarks) {
		return fmt.Errorf("pop %d exceeds push depth %d", n, len(b.assertMarks))
	}

	for i := 0; i < n; i++ {
		last := len(b.assertMarks) - 1
		mark := b.assertMarks[last]
		b.asserts = b.asserts[:mark]
		b.assertMarks = b.assertMarks[:last]

		declLast := len(b.declMarks) - 1
		declMark := b.declMarks[declLast]

		for _, key := range b.declOrder[declMark:] {
			b.forgetDeclaration(key)
		}

		b.declOrder = b.declOrder[:declMark]
		b.declMarks = b.declMarks[:declLast]
	}

	b.haveModel = false

	return nil
}

func (b *Backend) forgetDeclaration(key string) {
	switch {
	case len(key) > 4 && key[:4] == "fun:":
		name := key[4:]
		delete(b.funcs, name)
		delete(b.consts, name)
	case len(key) > 4 && key[:4] == "def:":
		name := key[4:]
		delete(b.defines, name)
		delete(b.consts, name)
	}
}

// CheckSat implements smt2.Backend.
func (b *Backend) CheckSat(assumptions []smt2.TermID) smt2.CheckResult {
	goals := append(append([]smt2.TermID{}, b.asserts...), assumptions...)

	vars := b.collectVars()

	result, model := b.search(goals, vars)
	b.lastResult = result

	if result == smt2.Sat {
		b.model = model
		b.haveModel = true
	} else {
		b.haveModel = false
	}

	return result
}

// Value implements smt2.Backend.
func (b *Backend) Value(t smt2.TermID) (string, error) {
	if !b.haveModel {
		return "", fmt.Errorf("no model available")
	}

	v, err := b.eval(t, b.model)
	if err != nil {
		return "", err
	}

	return v.text(), nil
}

// UnsatCore implements smt2.Backend.  The reference backend does not track
// named assertions, so it conservatively returns every current assertion's
// synthetic name when the last result was Unsat.
func (b *Backend) UnsatCore() []string {
	if b.lastResult != smt2.Unsat {
		return nil
	}

	names := make([]string, len(b.asserts))
	for i := range b.asserts {
		names[i] = fmt.Sprintf("a%d", i)
	}

	return names
}
