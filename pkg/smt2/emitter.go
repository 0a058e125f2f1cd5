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
	"fmt"
	"io"
	"strings"
)

// ValuePair is one "(term value)" entry of a get-value or get-model
// response.
type ValuePair struct {
	Term  string
	Value string
}

// Emitter writes SMT-LIB2 command responses to an output stream, honouring
// the :print-success option (a "success" response is written only while the
// option is on; NewOptions turns it on, the standard's default).
type Emitter struct {
	w    io.Writer
	opts *Options
}

// NewEmitter constructs an Emitter writing to w and consulting opts for
// :print-success.
func NewEmitter(w io.Writer, opts *Options) *Emitter {
	return &Emitter{w: w, opts: opts}
}

// Success emits "success" if :print-success is enabled.
func (e *Emitter) Success() {
	if e.opts.PrintSuccess {
		fmt.Fprintln(e.w, "success")
	}
}

// Error emits "(error \"...\")", the response for any command that failed.
func (e *Emitter) Error(err error) {
	fmt.Fprintf(e.w, "(error \"%s\")\n", escapeString(err.Error()))
}

// CheckSatResult emits "sat", "unsat" or "unknown".
func (e *Emitter) CheckSatResult(r CheckResult) {
	fmt.Fprintln(e.w, r.String())
}

// GetValueResult emits the "((t1 v1) (t2 v2) ...)" response to get-value.
func (e *Emitter) GetValueResult(pairs []ValuePair) {
	e.writePairs(pairs)
}

// Model emits the "((t1 v1) ...)" response to get-model, in the same shape
// as GetValueResult: this front-end does not distinguish a "model" response
// object from a value list, since both report the same underlying
// term-to-value mapping.
func (e *Emitter) Model(pairs []ValuePair) {
	e.writePairs(pairs)
}

func (e *Emitter) writePairs(pairs []ValuePair) {
	var b strings.Builder

	b.WriteString("(")

	for i, p := range pairs {
		if i > 0 {
			b.WriteString(" ")
		}

		fmt.Fprintf(&b, "(%s %s)", p.Term, p.Value)
	}

	b.WriteString(")")

	fmt.Fprintln(e.w, b.String())
}

// Assertions emits the "(a1 a2 ...)" response to get-assertions.
func (e *Emitter) Assertions(texts []string) {
	fmt.Fprintf(e.w, "(%s)\n", strings.Join(texts, " "))
}

// UnsatCore emits the "(name1 name2 ...)" response to get-unsat-core.
func (e *Emitter) UnsatCore(names []string) {
	fmt.Fprintf(e.w, "(%s)\n", strings.Join(names, " "))
}

// OptionValue emits the raw value of a get-option response.
func (e *Emitter) OptionValue(value string) {
	fmt.Fprintln(e.w, value)
}

// Echo emits the response to an "echo" command (an informal but widely
// supported extension: it prints its string argument verbatim).
func (e *Emitter) Echo(text string) {
	fmt.Fprintf(e.w, "\"%s\"\n", escapeString(text))
}

func escapeString(s string) string {
	return strings.ReplaceAll(s, "\"", "\"\"")
}
