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

import "github.com/apach301/bitwuzla/pkg/smt2"

// sortOfApply derives the result sort of applying tag to args. The actual
// arity/argument-kind/sort-match checking lives in smt2.CheckOperatorSort,
// the shared static type checker every Backend gets for free through
// pkg/smt2's parser; this is a thin adapter translating args/rm from TermID
// handles to the sorts CheckOperatorSort needs, so this backend does not
// duplicate that logic.
func (b *Backend) sortOfApply(tag smt2.TokenKind, indices []uint64, args []smt2.TermID, rm smt2.TermID) (*smt2.Sort, error) {
	argSorts := make([]*smt2.Sort, len(args))
	for i, a := range args {
		argSorts[i] = b.get(a).sort
	}

	var rmSort *smt2.Sort
	if rm != 0 {
		rmSort = b.get(rm).sort
	}

	return smt2.CheckOperatorSort(tag, indices, argSorts, rmSort, b.sorts)
}
