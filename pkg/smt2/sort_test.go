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

import "testing"

func TestSortTableHashConsesBitVec(t *testing.T) {
	sorts := NewSortTable()

	a := sorts.BitVec(32)
	b := sorts.BitVec(32)

	if a != b {
		t.Fatal("expected two BitVec(32) requests to return the same *Sort")
	}

	c := sorts.BitVec(64)
	if a == c {
		t.Fatal("expected BitVec(32) and BitVec(64) to be distinct sorts")
	}
}

func TestSortTableBoolAndRoundingModeSingletons(t *testing.T) {
	sorts := NewSortTable()

	if sorts.Bool() != sorts.Bool() {
		t.Fatal("Bool() must be stable across calls")
	}

	if sorts.RoundingMode() != sorts.RoundingMode() {
		t.Fatal("RoundingMode() must be stable across calls")
	}
}

func TestSortTableArrayConsing(t *testing.T) {
	sorts := NewSortTable()

	idx := sorts.BitVec(8)
	elem := sorts.BitVec(8)

	arr1 := sorts.Array(idx, elem)
	arr2 := sorts.Array(idx, elem)

	if arr1 != arr2 {
		t.Fatal("expected identical Array(idx, elem) requests to be consed")
	}

	if arr1.String() != "(Array (_ BitVec 8) (_ BitVec 8))" {
		t.Fatalf("String() = %q", arr1.String())
	}
}

func TestSortTableUninterpretedDistinctByName(t *testing.T) {
	sorts := NewSortTable()

	a := sorts.Uninterpreted("Foo")
	b := sorts.Uninterpreted("Foo")
	c := sorts.Uninterpreted("Bar")

	if a != b {
		t.Fatal("expected same-named uninterpreted sorts to be consed")
	}

	if a == c {
		t.Fatal("expected differently-named uninterpreted sorts to differ")
	}
}

func TestSortTableDefineAlias(t *testing.T) {
	sorts := NewSortTable()

	target := sorts.BitVec(16)
	sorts.DefineAlias("Word", target)

	if got := sorts.ResolveAlias("Word"); got != target {
		t.Fatalf("ResolveAlias(\"Word\") = %v, want %v", got, target)
	}

	if got := sorts.ResolveAlias("Unknown"); got != nil {
		t.Fatalf("ResolveAlias(\"Unknown\") = %v, want nil", got)
	}
}

func TestSortStringForms(t *testing.T) {
	sorts := NewSortTable()

	if got := sorts.Bool().String(); got != "Bool" {
		t.Fatalf("Bool().String() = %q", got)
	}

	fp := sorts.FloatingPoint(Float32Exp, Float32Sig)
	if got := fp.String(); got != "(_ FloatingPoint 8 24)" {
		t.Fatalf("FloatingPoint.String() = %q", got)
	}

	fn := sorts.Function([]*Sort{sorts.BitVec(8), sorts.BitVec(8)}, sorts.Bool())
	if got := fn.String(); got != "((_ BitVec 8) (_ BitVec 8)) Bool" {
		t.Fatalf("Function.String() = %q", got)
	}
}
