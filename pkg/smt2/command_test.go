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
	"bytes"
	"strings"
	"testing"

	"github.com/apach301/bitwuzla/internal/refbackend"
	"github.com/apach301/bitwuzla/pkg/smt2"
)

// runScript drives script through a fresh Driver over the reference backend
// and returns every line it wrote to the response channel.
func runScript(t *testing.T, script string) []string {
	t.Helper()

	var out bytes.Buffer

	driver := smt2.NewDriver(strings.NewReader(script), &out, "<test>", refbackend.New, nil)
	if err := driver.Run(); err != nil {
		t.Fatalf("Run: %s", err)
	}

	text := strings.TrimRight(out.String(), "\n")
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}

func TestDeclareAndAssertSucceed(t *testing.T) {
	lines := runScript(t, `
		(declare-const x Bool)
		(assert x)
		(check-sat)
	`)

	want := []string{"success", "success", "sat"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}

	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestUnsatConstantAssertion(t *testing.T) {
	lines := runScript(t, `
		(assert false)
		(check-sat)
	`)

	if lines[len(lines)-1] != "unsat" {
		t.Fatalf("last line = %q, want unsat", lines[len(lines)-1])
	}
}

func TestGetValueEchoesSurfaceSyntax(t *testing.T) {
	lines := runScript(t, `
		(declare-const x (_ BitVec 4))
		(assert (= x #b0011))
		(check-sat)
		(get-value (x))
	`)

	last := lines[len(lines)-1]
	if last != "((x #b0011))" {
		t.Fatalf("get-value response = %q, want ((x #b0011))", last)
	}
}

func TestGetAssertionsEchoesLiteralText(t *testing.T) {
	lines := runScript(t, `
		(declare-const x Bool)
		(assert (and x x))
		(get-assertions)
	`)

	last := lines[len(lines)-1]
	if last != "((and x x))" {
		t.Fatalf("get-assertions response = %q, want ((and x x))", last)
	}
}

func TestPushPopRestoresAssertionSet(t *testing.T) {
	lines := runScript(t, `
		(declare-const x Bool)
		(assert x)
		(push 1)
		(assert (not x))
		(check-sat)
		(pop 1)
		(get-assertions)
	`)

	if lines[len(lines)-3] != "unsat" {
		t.Fatalf("check-sat inside push = %q, want unsat", lines[len(lines)-3])
	}

	if lines[len(lines)-1] != "(x)" {
		t.Fatalf("get-assertions after pop = %q, want (x)", lines[len(lines)-1])
	}
}

func TestDefineFunIsUsableInAssertions(t *testing.T) {
	lines := runScript(t, `
		(define-fun double ((a (_ BitVec 4))) (_ BitVec 4) (bvadd a a))
		(declare-const x (_ BitVec 4))
		(assert (= x (double #b0001)))
		(check-sat)
		(get-value (x))
	`)

	last := lines[len(lines)-1]
	if last != "((x #b0010))" {
		t.Fatalf("get-value response = %q, want ((x #b0010))", last)
	}
}

func TestGetValueBeforeCheckSatFails(t *testing.T) {
	lines := runScript(t, `
		(declare-const x Bool)
		(get-value (x))
	`)

	if !strings.HasPrefix(lines[len(lines)-1], "(error") {
		t.Fatalf("expected an error response, got %q", lines[len(lines)-1])
	}
}

func TestPrintSuccessCanBeDisabled(t *testing.T) {
	lines := runScript(t, `
		(set-option :print-success false)
		(declare-const x Bool)
		(assert x)
		(check-sat)
	`)

	want := []string{"sat"}
	if len(lines) != len(want) || lines[0] != want[0] {
		t.Fatalf("got %v, want %v", lines, want)
	}
}

func TestUnsatCoreAfterUnsatCheck(t *testing.T) {
	lines := runScript(t, `
		(set-option :print-success false)
		(assert false)
		(check-sat)
		(get-unsat-core)
	`)

	if lines[0] != "unsat" {
		t.Fatalf("check-sat = %q, want unsat", lines[0])
	}

	if lines[1] != "(a0)" {
		t.Fatalf("get-unsat-core = %q, want (a0)", lines[1])
	}
}
