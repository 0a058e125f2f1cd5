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

// CheckOperatorSort is the integrated static type checker for the combined
// BV/Array/FP/UF theory: given an operator tag, its "(_ op k*)" numeral
// indices, and the sorts of its already-parsed arguments, it either returns
// the operator's result sort or an error describing the first sort mismatch
// it finds. It never inspects a term's value, only its sort, and it runs
// before a term is ever handed to a Backend, so every Backend plugged into
// this front-end gets the same type-checking for free. rmSort is the sort of
// the separately-parsed rounding-mode argument for operators with hasRM set
// in operatorTable, or nil otherwise.
func CheckOperatorSort(tag TokenKind, indices []uint64, argSorts []*Sort, rmSort *Sort, sorts *SortTable) (*Sort, error) {
	if info, ok := operatorTable[tag]; ok && info.hasRM {
		if rmSort != sorts.RoundingMode() {
			return nil, fmt.Errorf("first argument to %v is not RoundingMode", tag)
		}
	}

	argSort := func(i int) *Sort { return argSorts[i] }

	switch tag {
	// Core.
	case TagNot, TagAnd, TagOr, TagXor, TagImplies:
		for i := range argSorts {
			if argSort(i) != sorts.Bool() {
				return nil, fmt.Errorf("argument %d is not Bool", i)
			}
		}

		return sorts.Bool(), nil

	case TagEqual, TagDistinct:
		first := argSort(0)
		for i := 1; i < len(argSorts); i++ {
			if argSort(i) != first {
				return nil, fmt.Errorf("argument %d sort does not match argument 0", i)
			}
		}

		return sorts.Bool(), nil

	case TagIte:
		if argSort(0) != sorts.Bool() {
			return nil, fmt.Errorf("ite condition is not Bool")
		}

		if argSort(1) != argSort(2) {
			return nil, fmt.Errorf("ite branches have different sorts")
		}

		return argSort(1), nil

	// Array.
	case TagSelect:
		a := argSort(0)
		if !a.IsArray() {
			return nil, fmt.Errorf("select's first argument is not an Array")
		}

		if idx := argSort(1); idx != a.Index {
			return nil, arraySortMismatchError("select", a.Index, idx)
		}

		return a.Element, nil

	case TagStore:
		a := argSort(0)
		if !a.IsArray() {
			return nil, fmt.Errorf("store's first argument is not an Array")
		}

		if idx := argSort(1); idx != a.Index {
			return nil, arraySortMismatchError("store", a.Index, idx)
		}

		if val := argSort(2); val != a.Element {
			return nil, fmt.Errorf("store's value argument sort %v does not match the array's element sort %v", val, a.Element)
		}

		return a, nil

	// Bit-vector: unary.
	case TagBVNot, TagBVNeg:
		return argSort(0), nil
	case TagBVRedOr, TagBVRedAnd:
		return sorts.BitVec(1), nil

	// Bit-vector: left-associative / n-ary.
	case TagConcat:
		width := 0
		for i := range argSorts {
			width += argSort(i).Width
		}

		return sorts.BitVec(width), nil

	case TagBVAnd, TagBVOr, TagBVXor, TagBVXNor, TagBVAdd, TagBVSub, TagBVMul:
		if err := allSameSort(argSorts); err != nil {
			return nil, err
		}

		return argSort(0), nil

	// Bit-vector: binary, same width result.
	case TagBVUDiv, TagBVURem, TagBVSDiv, TagBVSRem, TagBVSMod,
		TagBVShl, TagBVLShr, TagBVAShr, TagBVNand, TagBVNor,
		TagExtRotateLeft, TagExtRotateRight:
		if err := allSameSort(argSorts); err != nil {
			return nil, err
		}

		return argSort(0), nil

	case TagBVComp:
		if err := allSameSort(argSorts); err != nil {
			return nil, err
		}

		return sorts.BitVec(1), nil

	case TagBVULt, TagBVULe, TagBVUGt, TagBVUGe,
		TagBVSLt, TagBVSLe, TagBVSGt, TagBVSGe:
		if err := allSameSort(argSorts); err != nil {
			return nil, err
		}

		return sorts.Bool(), nil

	// Bit-vector: indexed.
	case TagExtract:
		hi, lo := indices[0], indices[1]
		if lo > hi {
			return nil, fmt.Errorf("extract indices out of order: %d %d", hi, lo)
		}

		if width := argSort(0).Width; int(hi) >= width {
			return nil, fmt.Errorf("first (high) 'extract' parameter %d too large for bit-vector argument of bit-width %d", hi, width)
		}

		return sorts.BitVec(int(hi - lo + 1)), nil

	case TagZeroExtend, TagSignExtend:
		return sorts.BitVec(argSort(0).Width + int(indices[0])), nil

	case TagRepeat:
		return sorts.BitVec(argSort(0).Width * int(indices[0])), nil

	case TagRotateLeft, TagRotateRight:
		return argSort(0), nil

	// Floating-point: no rounding mode.
	case TagFPAbs, TagFPNeg:
		return argSort(0), nil

	case TagFPRem, TagFPMin, TagFPMax:
		if err := allSameSort(argSorts); err != nil {
			return nil, err
		}

		return argSort(0), nil

	case TagFPLeq, TagFPLt, TagFPGeq, TagFPGt, TagFPEq:
		if err := allSameSort(argSorts); err != nil {
			return nil, err
		}

		return sorts.Bool(), nil

	case TagFPIsNormal, TagFPIsSubnormal, TagFPIsZero, TagFPIsInfinite,
		TagFPIsNaN, TagFPIsNegative, TagFPIsPositive:
		return sorts.Bool(), nil

	case TagFPToReal:
		return nil, fmt.Errorf("fp.to_real is not supported by this type checker")

	// Floating-point: rounding-mode-consuming.
	case TagFPAdd, TagFPSub, TagFPMul, TagFPDiv:
		if err := allSameSort(argSorts); err != nil {
			return nil, err
		}

		return argSort(0), nil

	case TagFPFma:
		if err := allSameSort(argSorts); err != nil {
			return nil, err
		}

		return argSort(0), nil

	case TagFPSqrt, TagFPRoundToIntegral:
		return argSort(0), nil

	case TagFPToFP, TagFPToFPUnsigned:
		return sorts.FloatingPoint(int(indices[0]), int(indices[1])), nil

	case TagFPToUBV, TagFPToSBV:
		return sorts.BitVec(int(indices[0])), nil

	default:
		return nil, fmt.Errorf("operator %v is not supported by this type checker", tag)
	}
}

// arraySortMismatchError reports an array operator's index-sort mismatch. For
// the common bit-vector-indexed case it names both bit-widths explicitly,
// matching the diagnostic SMT-LIB2 scripts most often see in practice; for a
// non-bit-vector index sort it falls back to naming the two sorts directly.
func arraySortMismatchError(op string, want, got *Sort) error {
	if want.IsBitVec() && got.IsBitVec() {
		return fmt.Errorf(
			"first (array) argument of '%s' has index bit-width %d but the second (index) argument has bit-width %d",
			op, want.Width, got.Width,
		)
	}

	return fmt.Errorf("%s's index argument sort %v does not match the array's index sort %v", op, got, want)
}

// allSameSort reports an error naming the first argument whose sort differs
// from argument 0's, the "all operands share the same sort" check most N-ary
// BV and FP operators require.
func allSameSort(argSorts []*Sort) error {
	first := argSorts[0]
	for i := 1; i < len(argSorts); i++ {
		if argSorts[i] != first {
			return fmt.Errorf("argument %d sort does not match argument 0", i)
		}
	}

	return nil
}
