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
package smt2_test

import (
	"strings"
	"testing"
)

// These scenarios are lifted literally from the specification this front-end
// implements; each exercises one cross-cutting behaviour no single unit test
// elsewhere covers end-to-end.

func TestScenarioBitVectorEquality(t *testing.T) {
	lines := runScript(t, `
		(set-logic QF_BV)
		(declare-const x (_ BitVec 8))
		(assert (= x (_ bv5 8)))
		(check-sat)
		(exit)
	`)

	want := []string{"success", "success", "success", "sat", "success"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}

	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestScenarioLetShadowing(t *testing.T) {
	lines := runScript(t, `
		(set-logic QF_BV)
		(declare-const x (_ BitVec 4))
		(assert (let ((x #b0000)) (= x #b0000)))
		(check-sat)
	`)

	last := lines[len(lines)-1]
	if last != "sat" {
		t.Fatalf("check-sat = %q, want sat", last)
	}
}

func TestScenarioCheckSatAssuming(t *testing.T) {
	lines := runScript(t, `
		(set-option :incremental true)
		(set-logic QF_BV)
		(declare-const p (_ BitVec 1))
		(assert (= p #b1))
		(check-sat-assuming (p))
		(check-sat-assuming ((bvnot p)))
		(get-unsat-assumptions)
	`)

	if len(lines) < 2 {
		t.Fatalf("got %v, want at least 2 lines", lines)
	}

	if lines[len(lines)-2] != "unsat" {
		t.Fatalf("second check-sat-assuming = %q, want unsat", lines[len(lines)-2])
	}

	if lines[len(lines)-1] != "((bvnot p))" {
		t.Fatalf("get-unsat-assumptions = %q, want ((bvnot p))", lines[len(lines)-1])
	}
}

func TestScenarioArrayWellTypednessError(t *testing.T) {
	lines := runScript(t, `
		(set-logic QF_ABV)
		(declare-const a (Array (_ BitVec 8) (_ BitVec 32)))
		(assert (= (select a #b0) #x00000000))
	`)

	last := lines[len(lines)-1]
	want := "first (array) argument of 'select' has index bit-width 8 but the second (index) argument has bit-width 1"

	if !strings.Contains(last, want) {
		t.Fatalf("assert error = %q, want it to contain %q", last, want)
	}
}

func TestScenarioPushPopSymmetry(t *testing.T) {
	lines := runScript(t, `
		(set-logic QF_BV)
		(push 1)
		(declare-const y (_ BitVec 1))
		(assert (= y #b0))
		(pop 1)
		(declare-const y (_ BitVec 1))
		(check-sat)
	`)

	want := []string{"success", "success", "success", "success", "success", "sat"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}

	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestScenarioExtractBounds(t *testing.T) {
	lines := runScript(t, `
		(set-logic QF_BV)
		(declare-const z (_ BitVec 8))
		(assert (= ((_ extract 7 0) z) z))
		(assert (= ((_ extract 8 0) z) z))
	`)

	if len(lines) < 2 {
		t.Fatalf("got %v, want at least 2 lines", lines)
	}

	if lines[len(lines)-2] != "success" {
		t.Fatalf("first assert = %q, want success", lines[len(lines)-2])
	}

	last := lines[len(lines)-1]
	want := "first (high) 'extract' parameter 8 too large for bit-vector argument of bit-width 8"

	if !strings.Contains(last, want) {
		t.Fatalf("second assert error = %q, want it to contain %q", last, want)
	}
}
