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

func TestSymbolTablePreseedsKeywords(t *testing.T) {
	tab := NewSymbolTable()

	entry := tab.Lookup("and")
	if entry == nil {
		t.Fatal("expected \"and\" to be pre-bound")
	}

	if entry.Scope != 0 {
		t.Fatalf("Scope = %d, want 0", entry.Scope)
	}
}

func TestSymbolTableShadowingAndPop(t *testing.T) {
	tab := NewSymbolTable()

	outer := tab.Declare("x", TagSymbol, nil, 0)

	tab.PushScope()

	inner := tab.Declare("x", TagSymbol, nil, 0)
	if tab.Lookup("x") != inner {
		t.Fatal("expected inner declaration to shadow outer")
	}

	if inner.Prev != outer {
		t.Fatal("expected inner entry to chain to outer via Prev")
	}

	tab.PopScope()

	if tab.Lookup("x") != outer {
		t.Fatal("expected pop to restore outer declaration")
	}
}

func TestSymbolTablePopRemovesUnshadowedName(t *testing.T) {
	tab := NewSymbolTable()

	tab.PushScope()
	tab.Declare("fresh-name", TagSymbol, nil, 0)

	if tab.Lookup("fresh-name") == nil {
		t.Fatal("expected declaration to be visible before pop")
	}

	tab.PopScope()

	if tab.Lookup("fresh-name") != nil {
		t.Fatal("expected pop to remove a name with no prior binding")
	}
}

func TestSymbolTablePopScopeZeroIsNoop(t *testing.T) {
	tab := NewSymbolTable()

	before := tab.Scope()
	tab.PopScope()

	if tab.Scope() != before {
		t.Fatalf("Scope() changed from %d to %d after popping scope 0", before, tab.Scope())
	}
}

func TestSymbolEntryIDsAreDistinct(t *testing.T) {
	tab := NewSymbolTable()

	a := tab.Declare("a", TagSymbol, nil, 0)
	b := tab.Declare("b", TagSymbol, nil, 0)

	if a.ID() == b.ID() {
		t.Fatal("expected distinct entries to have distinct IDs")
	}
}
