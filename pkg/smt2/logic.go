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

// Features records which theory families the logic named by a set-logic
// command covers. Logics form a monotone lattice: QF_BV is the smallest, ALL
// enables everything, and each named logic turns on exactly the theory
// combinators its name advertises. The Driver stores the Features of the
// last set-logic but does not consult them: no operator is rejected because
// of the chosen logic.
type Features struct {
	BitVec        bool
	Array         bool
	UF            bool
	FloatingPoint bool
	Quantifiers   bool
}

// FeaturesFor returns the Features enabled by a given logic tag.
func FeaturesFor(tag TokenKind) Features {
	switch tag {
	case TagLogicQFBV:
		return Features{BitVec: true}
	case TagLogicQFABV:
		return Features{BitVec: true, Array: true}
	case TagLogicQFUFBV:
		return Features{BitVec: true, UF: true}
	case TagLogicQFAUFBV:
		return Features{BitVec: true, Array: true, UF: true}
	case TagLogicBV:
		return Features{BitVec: true, Quantifiers: true}
	case TagLogicALL:
		return Features{BitVec: true, Array: true, UF: true, FloatingPoint: true, Quantifiers: true}
	default:
		// An unrecognised logic name is accepted (per set-logic's liberal
		// handling of vendor extensions) but enables nothing beyond Core;
		// the Backend may still support operators the parser would
		// otherwise reject, so this is advisory, not an enforced sandbox.
		return Features{}
	}
}
