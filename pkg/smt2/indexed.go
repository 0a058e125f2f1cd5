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
	"strconv"

	"github.com/apach301/bitwuzla/pkg/smt2/bitvec"
)

// indexedSortTag resolves the head symbol of an indexed sort form, i.e. the
// "BitVec" in "(_ BitVec 32)" or the "FloatingPoint" in
// "(_ FloatingPoint 8 24)".
func indexedSortTag(name string) (TokenKind, bool) {
	switch name {
	case "BitVec":
		return TagBitVec, true
	case "FloatingPoint":
		return TagFloatingPoint, true
	default:
		return TagInvalid, false
	}
}

// buildIndexedSort constructs the Sort named by an indexed sort form given
// its already-parsed numeral indices.
func buildIndexedSort(sorts *SortTable, tag TokenKind, indices []uint64) (*Sort, error) {
	switch tag {
	case TagBitVec:
		if len(indices) != 1 || indices[0] == 0 {
			return nil, errIndexedArity("BitVec", 1, len(indices))
		}

		return sorts.BitVec(int(indices[0])), nil
	case TagFloatingPoint:
		if len(indices) != 2 {
			return nil, errIndexedArity("FloatingPoint", 2, len(indices))
		}

		return sorts.FloatingPoint(int(indices[0]), int(indices[1])), nil
	default:
		return nil, errIndexedArity("sort", 0, len(indices))
	}
}

func errIndexedArity(name string, want, got int) error {
	return &SyntaxError{Message: "indexed form " + name + " expects " +
		strconv.Itoa(want) + " index(es), got " + strconv.Itoa(got)}
}

// parseBVConstSymbol recognises the compact "bvK" constant symbol, valid
// only as the operator of an indexed application "(_ bvK n)".  It returns
// the decimal numeral K and true if name has the bv-prefix shape.
func parseBVConstSymbol(name string) (string, bool) {
	if len(name) <= len(bvConstPrefix) || name[:len(bvConstPrefix)] != bvConstPrefix {
		return "", false
	}

	digits := name[len(bvConstPrefix):]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", false
		}
	}

	return digits, true
}

// buildBVConstFromIndices builds the bit-vector value denoted by
// "(_ bvK n)" given the already-parsed numeral K and width n.
func buildBVConstFromIndices(numeral string, width uint64) (bitvec.Value, error) {
	return bitvec.FromDecimal(numeral, uint(width))
}

// fpSpecialConstantWidths resolves a special FP constant symbol (+zero,
// -zero, +oo, -oo, NaN) combined with its trailing "(_ name eb sb)" indices
// into the eb/sb pair.
func fpSpecialConstantWidths(indices []uint64) (eb, sb int, err error) {
	if len(indices) != 2 {
		return 0, 0, errIndexedArity("FP special constant", 2, len(indices))
	}

	return int(indices[0]), int(indices[1]), nil
}
