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

import "fmt"

// SyntaxError reports a single lexical, syntactic or sort-checking failure,
// tagged with the position of the offending token.
type SyntaxError struct {
	Pos     Position
	File    string
	Message string
}

// Error formats e as "<file>:<line>:<col>: <message>".
func (e *SyntaxError) Error() string {
	file := e.File
	if file == "" {
		file = "<stdin>"
	}

	return fmt.Sprintf("%s:%s: %s", file, e.Pos, e.Message)
}

// errorLatch holds the first SyntaxError recorded into it and ignores any
// later ones; has reports whether one is held and reset clears it. The
// Parser carries one, but Parser.fail does not record into it: each error is
// returned to the caller, and the Driver emits every error it receives.
type errorLatch struct {
	first *SyntaxError
}

func (l *errorLatch) record(err *SyntaxError) {
	if l.first == nil {
		l.first = err
	}
}

func (l *errorLatch) has() bool {
	return l.first != nil
}

func (l *errorLatch) reset() {
	l.first = nil
}
