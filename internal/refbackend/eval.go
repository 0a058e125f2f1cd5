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

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/apach301/bitwuzla/pkg/smt2"
	"github.com/apach301/bitwuzla/pkg/smt2/bitvec"
)

// value is the result of evaluating a term against a total variable
// assignment: exactly one of the two payload fields is meaningful, chosen by
// sort.Kind.
type value struct {
	sort *smt2.Sort
	b    bool
	bv   bitvec.Value
}

func (v value) text() string {
	if v.sort == nil {
		return "<unknown>"
	}

	if v.sort.Kind == smt2.SortBool {
		if v.b {
			return "true"
		}

		return "false"
	}

	if v.sort.IsBitVec() {
		return v.bv.String()
	}

	return "<unmodelled>"
}

// bvFromBits reconstructs a bit-vector value of the given width from a dense
// uint64 bit pattern, as produced by the enumeration in search.go.
func bvFromBits(pattern uint64, width int) bitvec.Value {
	var digits strings.Builder

	for i := width - 1; i >= 0; i-- {
		if pattern>>uint(i)&1 == 1 {
			digits.WriteByte('1')
		} else {
			digits.WriteByte('0')
		}
	}

	v, _ := bitvec.FromBinary(digits.String())

	return v
}

// eval interprets t under assignment, an env mapping every free variable
// (model variable or enclosing let/quantifier binder) to its value. Arrays,
// uninterpreted function applications and quantified formulas are outside
// the reference backend's brute-force model: evaluating one returns an
// error, which search.go treats as inconclusive (CheckSat reports Unknown
// rather than risking a wrong answer).
func (b *Backend) eval(t smt2.TermID, env map[string]value) (value, error) {
	tm := b.get(t)

	switch tm.kind {
	case kBool:
		return value{sort: tm.sort, b: tm.boolVal}, nil

	case kBVConst:
		return value{sort: tm.sort, bv: tm.bvVal}, nil

	case kRoundingMode, kFPSpecial:
		return value{}, fmt.Errorf("floating-point values are not modelled by the reference backend")

	case kVar:
		v, ok := env[tm.name]
		if !ok {
			return value{}, fmt.Errorf("no assignment for variable %q", tm.name)
		}

		return v, nil

	case kIte:
		cond, err := b.eval(tm.args[0], env)
		if err != nil {
			return value{}, err
		}

		if cond.b {
			return b.eval(tm.args[1], env)
		}

		return b.eval(tm.args[2], env)

	case kLet:
		inner := make(map[string]value, len(env)+len(tm.letNames))
		for k, v := range env {
			inner[k] = v
		}

		for i, name := range tm.letNames {
			v, err := b.eval(tm.letValues[i], env)
			if err != nil {
				return value{}, err
			}

			inner[name] = v
		}

		return b.eval(tm.body, inner)

	case kApply:
		return b.evalApply(tm, env)

	case kUFApply, kConstArray, kQuantify:
		return value{}, fmt.Errorf("term kind %d has no value under the reference backend's brute-force model", tm.kind)

	default:
		return value{}, fmt.Errorf("unrecognised term kind %d", tm.kind)
	}
}

func (b *Backend) evalApply(tm *term, env map[string]value) (value, error) {
	args := make([]value, len(tm.args))

	for i, a := range tm.args {
		v, err := b.eval(a, env)
		if err != nil {
			return value{}, err
		}

		args[i] = v
	}

	switch tm.op {
	case smt2.TagNot:
		return value{sort: tm.sort, b: !args[0].b}, nil
	case smt2.TagAnd:
		r := true
		for _, a := range args {
			r = r && a.b
		}

		return value{sort: tm.sort, b: r}, nil
	case smt2.TagOr:
		r := false
		for _, a := range args {
			r = r || a.b
		}

		return value{sort: tm.sort, b: r}, nil
	case smt2.TagXor:
		r := args[0].b
		for _, a := range args[1:] {
			r = r != a.b
		}

		return value{sort: tm.sort, b: r}, nil
	case smt2.TagImplies:
		r := args[len(args)-1].b
		for i := len(args) - 2; i >= 0; i-- {
			r = !args[i].b || r
		}

		return value{sort: tm.sort, b: r}, nil
	case smt2.TagEqual:
		return value{sort: tm.sort, b: pairwiseEqual(args)}, nil
	case smt2.TagDistinct:
		return value{sort: tm.sort, b: allDistinct(args)}, nil

	case smt2.TagBVNot:
		return value{sort: tm.sort, bv: bvNot(args[0].bv)}, nil
	case smt2.TagBVNeg:
		return value{sort: tm.sort, bv: bvNeg(args[0].bv)}, nil
	case smt2.TagBVRedOr:
		return value{sort: tm.sort, bv: bvRedOr(args[0].bv)}, nil
	case smt2.TagBVRedAnd:
		return value{sort: tm.sort, bv: bvRedAnd(args[0].bv)}, nil
	case smt2.TagConcat:
		acc := args[0].bv
		for _, a := range args[1:] {
			acc = bitvec.Concat(acc, a.bv)
		}

		return value{sort: tm.sort, bv: acc}, nil
	case smt2.TagBVAnd, smt2.TagBVOr, smt2.TagBVXor, smt2.TagBVXNor,
		smt2.TagBVAdd, smt2.TagBVSub, smt2.TagBVMul:
		return value{sort: tm.sort, bv: bvFold(tm.op, args)}, nil
	case smt2.TagBVUDiv, smt2.TagBVURem, smt2.TagBVShl, smt2.TagBVLShr, smt2.TagBVNand, smt2.TagBVNor:
		return value{sort: tm.sort, bv: bvBinary(tm.op, args[0].bv, args[1].bv)}, nil
	case smt2.TagBVSDiv, smt2.TagBVSRem, smt2.TagBVSMod, smt2.TagBVAShr:
		return value{}, fmt.Errorf("operator %v (signed) is not implemented by the reference backend", tm.op)
	case smt2.TagBVComp:
		if args[0].bv.Equal(args[1].bv) {
			return value{sort: tm.sort, bv: mustBV("1")}, nil
		}

		return value{sort: tm.sort, bv: mustBV("0")}, nil
	case smt2.TagBVULt, smt2.TagBVULe, smt2.TagBVUGt, smt2.TagBVUGe:
		return value{sort: tm.sort, b: bvCompare(tm.op, args[0].bv, args[1].bv)}, nil
	case smt2.TagBVSLt, smt2.TagBVSLe, smt2.TagBVSGt, smt2.TagBVSGe:
		return value{}, fmt.Errorf("operator %v (signed) is not implemented by the reference backend", tm.op)
	case smt2.TagExtract:
		return value{sort: tm.sort, bv: args[0].bv.Extract(uint(tm.indices[0]), uint(tm.indices[1]))}, nil
	case smt2.TagZeroExtend:
		return value{sort: tm.sort, bv: args[0].bv.ZeroExtend(uint(tm.indices[0]))}, nil
	case smt2.TagSignExtend:
		return value{sort: tm.sort, bv: args[0].bv.SignExtend(uint(tm.indices[0]))}, nil
	case smt2.TagRepeat, smt2.TagRotateLeft, smt2.TagRotateRight,
		smt2.TagExtRotateLeft, smt2.TagExtRotateRight:
		return value{}, fmt.Errorf("operator %v is not implemented by the reference backend", tm.op)

	default:
		return value{}, fmt.Errorf("operator %v (floating-point or array) is not implemented by the reference backend", tm.op)
	}
}

func pairwiseEqual(args []value) bool {
	for i := 1; i < len(args); i++ {
		if !valueEqual(args[0], args[i]) {
			return false
		}
	}

	return true
}

func allDistinct(args []value) bool {
	for i := range args {
		for j := i + 1; j < len(args); j++ {
			if valueEqual(args[i], args[j]) {
				return false
			}
		}
	}

	return true
}

func valueEqual(a, b value) bool {
	if a.sort.Kind == smt2.SortBool {
		return a.b == b.b
	}

	return a.bv.Equal(b.bv)
}

func bvNot(v bitvec.Value) bitvec.Value {
	width := int(v.Width())
	bits := make([]byte, width)

	for i := 0; i < width; i++ {
		if v.BitSet().Test(uint(i)) {
			bits[width-1-i] = '0'
		} else {
			bits[width-1-i] = '1'
		}
	}

	out, _ := bitvec.FromBinary(string(bits))

	return out
}

func bvNeg(v bitvec.Value) bitvec.Value {
	one := mustBVWidth(1, v.Width())
	return bvBinary(smt2.TagBVAdd, bvNot(v), one)
}

func bvRedOr(v bitvec.Value) bitvec.Value {
	for i := uint(0); i < v.Width(); i++ {
		if v.BitSet().Test(i) {
			return mustBV("1")
		}
	}

	return mustBV("0")
}

func bvRedAnd(v bitvec.Value) bitvec.Value {
	for i := uint(0); i < v.Width(); i++ {
		if !v.BitSet().Test(i) {
			return mustBV("0")
		}
	}

	return mustBV("1")
}

func bvFold(op smt2.TokenKind, args []value) bitvec.Value {
	acc := args[0].bv
	for _, a := range args[1:] {
		acc = bvBinary(op, acc, a.bv)
	}

	return acc
}

// bvBinary implements the two-operand bit-vector operators over the
// unsigned big.Int magnitude each bitvec.Value already carries, masking the
// result back to the operand width exactly as bitvec.FromDecimal does for a
// parsed constant.
func bvBinary(op smt2.TokenKind, a, b bitvec.Value) bitvec.Value {
	width := a.Width()
	am, bm := a.BigInt(), b.BigInt()

	switch op {
	case smt2.TagBVAdd:
		return mustBVFrom(new(big.Int).Add(am, bm), width)
	case smt2.TagBVSub:
		return mustBVFrom(new(big.Int).Sub(am, bm), width)
	case smt2.TagBVMul:
		return mustBVFrom(new(big.Int).Mul(am, bm), width)
	case smt2.TagBVAnd:
		return bitwise(a, b, func(x, y bool) bool { return x && y })
	case smt2.TagBVOr:
		return bitwise(a, b, func(x, y bool) bool { return x || y })
	case smt2.TagBVXor:
		return bitwise(a, b, func(x, y bool) bool { return x != y })
	case smt2.TagBVXNor:
		return bitwise(a, b, func(x, y bool) bool { return x == y })
	case smt2.TagBVNand:
		return bitwise(a, b, func(x, y bool) bool { return !(x && y) })
	case smt2.TagBVNor:
		return bitwise(a, b, func(x, y bool) bool { return !(x || y) })
	case smt2.TagBVUDiv:
		if bm.Sign() == 0 {
			return mustBVWidth(-1, width)
		}

		return mustBVFrom(new(big.Int).Div(am, bm), width)
	case smt2.TagBVURem:
		if bm.Sign() == 0 {
			return a
		}

		return mustBVFrom(new(big.Int).Rem(am, bm), width)
	case smt2.TagBVShl:
		return mustBVFrom(new(big.Int).Lsh(am, uint(bm.Uint64())), width)
	case smt2.TagBVLShr:
		return mustBVFrom(new(big.Int).Rsh(am, uint(bm.Uint64())), width)
	default:
		panic(fmt.Sprintf("bvBinary: unhandled operator %v", op))
	}
}

// bitwise applies a boolean combinator bit by bit, least-significant bit
// first, using the dense bitset.BitSet view of each operand.
func bitwise(a, b bitvec.Value, f func(x, y bool) bool) bitvec.Value {
	width := a.Width()
	as, bs := a.BitSet(), b.BitSet()

	var digits strings.Builder

	bits := make([]bool, width)
	for i := uint(0); i < width; i++ {
		bits[i] = f(as.Test(i), bs.Test(i))
	}

	for i := int(width) - 1; i >= 0; i-- {
		if bits[i] {
			digits.WriteByte('1')
		} else {
			digits.WriteByte('0')
		}
	}

	return mustBV(digits.String())
}

func bvCompare(op smt2.TokenKind, a, b bitvec.Value) bool {
	cmp := a.BigInt().Cmp(b.BigInt())

	switch op {
	case smt2.TagBVULt:
		return cmp < 0
	case smt2.TagBVULe:
		return cmp <= 0
	case smt2.TagBVUGt:
		return cmp > 0
	case smt2.TagBVUGe:
		return cmp >= 0
	default:
		panic(fmt.Sprintf("bvCompare: unhandled operator %v", op))
	}
}

func mustBV(digits string) bitvec.Value {
	v, err := bitvec.FromBinary(digits)
	if err != nil {
		panic(err)
	}

	return v
}

// mustBVFrom masks mag modulo 2^width (as bitvec.FromDecimal does for a
// parsed constant) and renders it as a Value of that width.
func mustBVFrom(mag *big.Int, width uint) bitvec.Value {
	bound := new(big.Int).Lsh(big.NewInt(1), width)
	m := new(big.Int).Mod(mag, bound)

	digits := m.Text(2)
	if pad := int(width) - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}

	return mustBV(digits)
}

// mustBVWidth builds the Value n at the given width; n < 0 builds the
// all-ones pattern, the conventional bvudiv-by-zero result.
func mustBVWidth(n int, width uint) bitvec.Value {
	if n < 0 {
		return mustBV(strings.Repeat("1", int(width)))
	}

	return mustBVFrom(big.NewInt(int64(n)), width)
}
