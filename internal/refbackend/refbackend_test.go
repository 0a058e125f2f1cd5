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
package refbackend

import (
	"testing"

	"github.com/apach301/bitwuzla/pkg/smt2"
	"github.com/apach301/bitwuzla/pkg/smt2/bitvec"
)

func newBackend(t *testing.T) (*Backend, *smt2.SortTable) {
	t.Helper()

	sorts := smt2.NewSortTable()
	b := New(sorts).(*Backend)

	return b, sorts
}

func TestVarCachesByName(t *testing.T) {
	b, sorts := newBackend(t)

	x1 := b.Var("x", sorts.Bool())
	x2 := b.Var("x", sorts.Bool())

	if x1 != x2 {
		t.Fatal("expected repeated Var(\"x\", ...) calls to return the same TermID")
	}
}

func TestDeclareFunZeroArityRegistersVar(t *testing.T) {
	b, sorts := newBackend(t)

	b.DeclareFun("c", nil, sorts.Bool())

	if _, ok := b.consts["c"]; !ok {
		t.Fatal("expected a 0-ary declare-fun to register a free variable")
	}
}

func TestApplyUFDefineFunInlinesAsLet(t *testing.T) {
	b, sorts := newBackend(t)

	bv4 := sorts.BitVec(4)
	a := b.Var("a", bv4)

	body, err := b.Apply(smt2.TagBVAdd, nil, []smt2.TermID{a, a}, 0)
	if err != nil {
		t.Fatalf("Apply: %s", err)
	}

	if err := b.DefineFun("double", []string{"a"}, []*smt2.Sort{bv4}, bv4, body); err != nil {
		t.Fatalf("DefineFun: %s", err)
	}

	one, err := bitvec.FromBinary("0001")
	if err != nil {
		t.Fatalf("FromBinary: %s", err)
	}

	arg := b.BVConst(one)

	applied, err := b.ApplyUF("double", []smt2.TermID{arg})
	if err != nil {
		t.Fatalf("ApplyUF: %s", err)
	}

	if b.get(applied).kind != kLet {
		t.Fatalf("expected a define-fun application to build a kLet term, got kind %d", b.get(applied).kind)
	}

	got, err := b.eval(applied, nil)
	if err != nil {
		t.Fatalf("eval: %s", err)
	}

	want, err := bitvec.FromBinary("0010")
	if err != nil {
		t.Fatalf("FromBinary: %s", err)
	}

	if !got.bv.Equal(want) {
		t.Fatalf("double(1) = %s, want %s", got.bv.String(), want.String())
	}
}

func TestApplyUFUndeclaredFunctionErrors(t *testing.T) {
	b, _ := newBackend(t)

	if _, err := b.ApplyUF("nope", nil); err == nil {
		t.Fatal("expected ApplyUF on an undeclared function to error")
	}
}

func TestApplyUFDeclareFunStaysOpaqueAndForcesUnknown(t *testing.T) {
	b, sorts := newBackend(t)

	b.DeclareFun("f", []*smt2.Sort{sorts.Bool()}, sorts.Bool())

	x := b.Var("x", sorts.Bool())

	applied, err := b.ApplyUF("f", []smt2.TermID{x})
	if err != nil {
		t.Fatalf("ApplyUF: %s", err)
	}

	if b.get(applied).kind != kUFApply {
		t.Fatal("expected a declare-fun application to stay opaque as kUFApply")
	}

	b.Assert(applied)

	if got := b.CheckSat(nil); got != smt2.Unknown {
		t.Fatalf("CheckSat = %v, want Unknown for a goal depending on an uninterpreted function", got)
	}
}

func TestCheckSatSimpleSat(t *testing.T) {
	b, sorts := newBackend(t)

	x := b.Var("x", sorts.Bool())
	b.Assert(x)

	if got := b.CheckSat(nil); got != smt2.Sat {
		t.Fatalf("CheckSat = %v, want Sat", got)
	}

	val, err := b.Value(x)
	if err != nil {
		t.Fatalf("Value: %s", err)
	}

	if val != "true" {
		t.Fatalf("Value(x) = %q, want true", val)
	}
}

func TestCheckSatUnsatConstant(t *testing.T) {
	b, _ := newBackend(t)

	b.Assert(b.Bool(false))

	if got := b.CheckSat(nil); got != smt2.Unsat {
		t.Fatalf("CheckSat = %v, want Unsat", got)
	}

	if _, err := b.Value(0); err == nil {
		t.Fatal("expected Value to error when no model is available")
	}
}

func TestCheckSatWideBitVecForcesUnknown(t *testing.T) {
	b, sorts := newBackend(t)

	x := b.Var("x", sorts.BitVec(maxEnumerableWidth+1))
	b.Assert(b.Bool(true))
	_ = x

	if got := b.CheckSat(nil); got != smt2.Unknown {
		t.Fatalf("CheckSat = %v, want Unknown for a variable wider than maxEnumerableWidth", got)
	}
}

func TestCheckSatCombinedDomainExceedsCapForcesUnknown(t *testing.T) {
	b, sorts := newBackend(t)

	for i := 0; i < 2; i++ {
		b.Var(string(rune('a'+i)), sorts.BitVec(maxEnumerableWidth))
	}

	b.Assert(b.Bool(true))

	if got := b.CheckSat(nil); got != smt2.Unknown {
		t.Fatalf("CheckSat = %v, want Unknown once combined domain exceeds enumerationCap", got)
	}
}

func TestPushPopForgetsDeclarationsAndAssertions(t *testing.T) {
	b, sorts := newBackend(t)

	b.DeclareFun("g", nil, sorts.Bool())
	b.Push(1)
	b.DeclareFun("h", nil, sorts.Bool())
	b.Assert(b.Bool(false))

	if _, ok := b.consts["h"]; !ok {
		t.Fatal("expected h to be registered before pop")
	}

	if err := b.Pop(1); err != nil {
		t.Fatalf("Pop: %s", err)
	}

	if _, ok := b.consts["h"]; ok {
		t.Fatal("expected pop to forget a declaration made after the matching push")
	}

	if _, ok := b.consts["g"]; !ok {
		t.Fatal("expected pop to leave declarations made before the matching push intact")
	}

	if len(b.asserts) != 0 {
		t.Fatalf("expected pop to discard assertions made after the matching push, got %d remaining", len(b.asserts))
	}
}

func TestPopBeyondPushDepthErrors(t *testing.T) {
	b, _ := newBackend(t)

	if err := b.Pop(1); err == nil {
		t.Fatal("expected Pop to error when it exceeds the current push depth")
	}
}

func TestDefineFunZeroArgAliasesConst(t *testing.T) {
	b, sorts := newBackend(t)

	body := b.Bool(true)
	if err := b.DefineFun("flag", nil, nil, sorts.Bool(), body); err != nil {
		t.Fatalf("DefineFun: %s", err)
	}

	if got := b.Var("flag", sorts.Bool()); got != body {
		t.Fatalf("Var(\"flag\", ...) = %v, want the define-fun body term %v", got, body)
	}
}

func TestUnsatCoreAfterUnsatReturnsSyntheticNames(t *testing.T) {
	b, _ := newBackend(t)

	b.Assert(b.Bool(false))
	b.CheckSat(nil)

	core := b.UnsatCore()
	if len(core) != 1 || core[0] != "a0" {
		t.Fatalf("UnsatCore = %v, want [a0]", core)
	}
}

func TestUnsatCoreEmptyWhenLastResultNotUnsat(t *testing.T) {
	b, sorts := newBackend(t)

	x := b.Var("x", sorts.Bool())
	b.Assert(x)
	b.CheckSat(nil)

	if core := b.UnsatCore(); core != nil {
		t.Fatalf("UnsatCore = %v, want nil after a Sat result", core)
	}
}
