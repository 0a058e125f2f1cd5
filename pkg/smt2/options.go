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

// Options holds the session-wide settings a set-option command can change
// and a get-option command can read back.  Defaults match the SMT-LIB2
// standard's required defaults.
type Options struct {
	PrintSuccess         bool
	GlobalDeclarations   bool
	ProduceModels        bool
	ProduceUnsatCores     bool
	ProduceUnsatAssumptions bool
	Incremental          bool
	RegularOutputChannel string
	// QuoteEquivalence controls whether a quoted symbol "|x|" and the bare
	// symbol "x" name the same entry in the symbol table, a deliberate
	// deviation from strict SMT-LIB2 (which always treats them as distinct
	// identifiers) retained here for compatibility and exposed as a
	// settable option rather than hard-wired on. Toggling it updates the
	// lexer this session's Parser reads from; it has no effect on symbols
	// already lexed before the set-option that changes it.
	QuoteEquivalence bool

	// other collects any keyword this front-end does not interpret itself,
	// keyed by the keyword text; Get reads it back.
	other map[string]string
}

// NewOptions returns an Options with the SMT-LIB2-mandated defaults.
func NewOptions() *Options {
	return &Options{
		PrintSuccess:         true,
		RegularOutputChannel: "stdout",
		QuoteEquivalence:     true,
		other:                make(map[string]string),
	}
}

// Set applies a set-option assignment.  name is the keyword's text,
// including the leading ':'.
func (o *Options) Set(kind TokenKind, name, value string) {
	switch kind {
	case TagKwPrintSuccess:
		o.PrintSuccess = value == "true"
	case TagKwGlobalDeclarations:
		o.GlobalDeclarations = value == "true"
	case TagKwProduceModels:
		o.ProduceModels = value == "true"
	case TagKwProduceUnsatCores:
		o.ProduceUnsatCores = value == "true"
	case TagKwProduceUnsatAssumptions:
		o.ProduceUnsatAssumptions = value == "true"
	case TagKwIncremental:
		o.Incremental = value == "true"
	case TagKwRegularOutputChannel:
		o.RegularOutputChannel = value
	case TagKwQuoteEquivalence:
		o.QuoteEquivalence = value == "true"
	default:
		o.other[name] = value
	}
}

// Get reads back a previously-set option, or the empty string and false if
// name was never set and is not one of the fields above.
func (o *Options) Get(kind TokenKind, name string) (string, bool) {
	switch kind {
	case TagKwPrintSuccess:
		return boolStr(o.PrintSuccess), true
	case TagKwGlobalDeclarations:
		return boolStr(o.GlobalDeclarations), true
	case TagKwProduceModels:
		return boolStr(o.ProduceModels), true
	case TagKwProduceUnsatCores:
		return boolStr(o.ProduceUnsatCores), true
	case TagKwProduceUnsatAssumptions:
		return boolStr(o.ProduceUnsatAssumptions), true
	case TagKwIncremental:
		return boolStr(o.Incremental), true
	case TagKwRegularOutputChannel:
		return o.RegularOutputChannel, true
	case TagKwQuoteEquivalence:
		return boolStr(o.QuoteEquivalence), true
	default:
		v, ok := o.other[name]
		return v, ok
	}
}

func boolStr(b bool) string {
	if b {
		return "true"
	}

	return "false"
}
