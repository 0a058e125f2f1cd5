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

import (
	"bytes"
	"errors"
	"testing"
)

func TestEmitterSuccessHonoursPrintSuccessOption(t *testing.T) {
	var buf bytes.Buffer

	opts := NewOptions()
	e := NewEmitter(&buf, opts)

	e.Success()

	if buf.String() != "success\n" {
		t.Fatalf("got %q, want %q", buf.String(), "success\n")
	}

	buf.Reset()
	opts.PrintSuccess = false
	e.Success()

	if buf.String() != "" {
		t.Fatalf("got %q, want empty output when :print-success is false", buf.String())
	}
}

func TestEmitterErrorEscapesQuotes(t *testing.T) {
	var buf bytes.Buffer

	e := NewEmitter(&buf, NewOptions())
	e.Error(errors.New(`bad token "foo"`))

	want := "(error \"bad token \"\"foo\"\"\")\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestEmitterCheckSatResult(t *testing.T) {
	cases := map[CheckResult]string{
		Sat:     "sat\n",
		Unsat:   "unsat\n",
		Unknown: "unknown\n",
	}

	for result, want := range cases {
		var buf bytes.Buffer

		NewEmitter(&buf, NewOptions()).CheckSatResult(result)

		if buf.String() != want {
			t.Errorf("CheckSatResult(%v) = %q, want %q", result, buf.String(), want)
		}
	}
}

func TestEmitterGetValueResultFormatsPairs(t *testing.T) {
	var buf bytes.Buffer

	NewEmitter(&buf, NewOptions()).GetValueResult([]ValuePair{
		{Term: "x", Value: "#b0011"},
		{Term: "y", Value: "true"},
	})

	want := "((x #b0011) (y true))\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestEmitterGetValueResultEmpty(t *testing.T) {
	var buf bytes.Buffer

	NewEmitter(&buf, NewOptions()).GetValueResult(nil)

	if buf.String() != "()\n" {
		t.Fatalf("got %q, want %q", buf.String(), "()\n")
	}
}

func TestEmitterAssertionsJoinsWithSpaces(t *testing.T) {
	var buf bytes.Buffer

	NewEmitter(&buf, NewOptions()).Assertions([]string{"(and x y)", "z"})

	want := "((and x y) z)\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestEmitterUnsatCore(t *testing.T) {
	var buf bytes.Buffer

	NewEmitter(&buf, NewOptions()).UnsatCore([]string{"a0", "a1"})

	if buf.String() != "(a0 a1)\n" {
		t.Fatalf("got %q, want %q", buf.String(), "(a0 a1)\n")
	}
}

func TestEmitterEchoEscapesQuotes(t *testing.T) {
	var buf bytes.Buffer

	NewEmitter(&buf, NewOptions()).Echo(`say "hi"`)

	want := "\"say \"\"hi\"\"\"\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestEmitterOptionValue(t *testing.T) {
	var buf bytes.Buffer

	NewEmitter(&buf, NewOptions()).OptionValue("stdout")

	if buf.String() != "stdout\n" {
		t.Fatalf("got %q, want %q", buf.String(), "stdout\n")
	}
}
