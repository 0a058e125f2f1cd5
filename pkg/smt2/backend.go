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
package smt2

import "github.com/apach301/bitwuzla/pkg/smt2/bitvec"

// CheckResult captures the outcome of a check-sat or check-sat-assuming
// query, or of a get-value/get-model request against a Backend that has not
// yet decided satisfiability.
type CheckResult int

const (
	// Unknown means the backend could not determine a definite answer.
	Unknown CheckResult = iota
	// Sat means the asserted constraints are satisfiable.
	Sat
	// Unsat means the asserted constraints are unsatisfiable.
	Unsat
)

// String renders a CheckResult in the response syntax used by check-sat.
func (r CheckResult) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// TermID is an opaque handle to a term constructed by a Backend.  The parser
// never inspects a TermID's representation; it only threads handles between
// Backend calls.
type TermID uint64

// Backend is the capability a solving engine must implement to receive terms
// and commands from this front-end.  The front-end never performs solving
// itself: it lexes, parses, sort-checks and dispatches; everything that
// requires deciding satisfiability, building a model, or proving
// unsatisfiability is delegated here.  internal/refbackend provides a
// minimal in-memory implementation used by this package's own tests.
type Backend interface {
	// Bool builds the Boolean constant term true or false.
	Bool(value bool) TermID
	// BVConst builds a bit-vector constant term from a parsed value.
	BVConst(v bitvec.Value) TermID
	// FPSpecialConst builds one of the five FP special constants (+zero,
	// -zero, +oo, -oo, NaN) at the given exponent/significand width.
	FPSpecialConst(tag TokenKind, eb, sb int) TermID
	// RoundingModeConst builds one of the five named rounding-mode
	// constants (RNE, RNA, RTP, RTN, RTZ).
	RoundingModeConst(tag TokenKind) TermID
	// Var resolves a previously declared constant/0-ary function symbol to
	// its term, or a let/binder-bound variable to its bound term.
	Var(name string, sort *Sort) TermID
	// Apply builds the term obtained by applying the named operator (tag
	// identifies which theory operator; indices carries any "(_ op k*)"
	// numeral parameters) to args, in the given rounding mode context where
	// applicable (rm is TermID(0) when the operator takes no rounding
	// mode).
	Apply(tag TokenKind, indices []uint64, args []TermID, rm TermID) (TermID, error)
	// ApplyUF builds an application of a user-declared function symbol.
	ApplyUF(name string, args []TermID) (TermID, error)
	// Ite builds an if-then-else term.
	Ite(cond, then, els TermID) TermID
	// ConstArray builds the constant array of the given Array sort whose
	// every index maps to fill, implementing "((as const T) fill)".
	ConstArray(sort *Sort, fill TermID) TermID
	// Let binds names to terms for the evaluation of body; names/values
	// are parallel slices of equal length.
	Let(names []string, values []TermID, body TermID) TermID
	// Quantify builds a forall/exists term; universal is true for forall.
	Quantify(universal bool, varNames []string, varSorts []*Sort, body TermID) TermID
	// SortOf returns the declared sort of a term, used by the parser to
	// sort-check arguments before calling Apply.
	SortOf(t TermID) *Sort

	// DeclareSort registers a new uninterpreted sort name of the given
	// arity (only arity 0 is supported by this front-end).
	DeclareSort(name string, arity int)
	// DeclareFun registers a new function/constant symbol.
	DeclareFun(name string, domain []*Sort, rng *Sort)
	// DefineFun registers name as shorthand for body, where body was built
	// with argNames bound to argSorts.
	DefineFun(name string, argNames []string, argSorts []*Sort, rng *Sort, body TermID) error

	// Assert adds t as a hard constraint at the current assertion level.
	Assert(t TermID)
	// Push opens n new assertion levels.
	Push(n int)
	// Pop closes n assertion levels, discarding every assertion made since
	// the matching Push.
	Pop(n int) error
	// CheckSat decides satisfiability of every assertion currently on the
	// stack, optionally together with assumption literals (check-sat
	// assuming passes a non-empty assumptions slice; plain check-sat passes
	// nil).
	CheckSat(assumptions []TermID) CheckResult
	// Value returns the model value of t after a Sat CheckSat result.
	Value(t TermID) (string, error)
	// UnsatCore returns the named subset of assertions that sufficed to
	// prove unsatisfiability, after an Unsat CheckSat result.
	UnsatCore() []string
}
