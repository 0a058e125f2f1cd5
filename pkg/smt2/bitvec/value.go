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

// Package bitvec provides a fixed-width, arbitrary-precision bit-vector
// constant representation used while parsing BitVec literals (binary, hex
// and the "(_ bvK n)" indexed form) before they are handed to a Backend.
package bitvec

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

var bigOne = big.NewInt(1)

// Value is an unsigned bit-vector constant of a fixed width.  The underlying
// magnitude is staged in a big.Int (so literals of any width parse without a
// fixed-size integer overflowing) and always kept masked to Width bits.
type Value struct {
	width uint
	mag   big.Int
}

// Width returns the number of bits in v.
func (v Value) Width() uint { return v.width }

// FromBinary parses a string of '0'/'1' characters (as they appear after the
// "#b" literal prefix has been stripped) into a Value whose width is the
// string's length.
func FromBinary(digits string) (Value, error) {
	if len(digits) == 0 {
		return Value{}, fmt.Errorf("empty binary bit-vector literal")
	}

	mag, ok := new(big.Int).SetString(digits, 2)
	if !ok {
		return Value{}, fmt.Errorf("invalid binary digits %q", digits)
	}

	return Value{width: uint(len(digits)), mag: *mag}, nil
}

// FromHex parses a string of hex digits (as they appear after the "#x"
// literal prefix has been stripped) into a Value whose width is four times
// the digit count.
func FromHex(digits string) (Value, error) {
	if len(digits) == 0 {
		return Value{}, fmt.Errorf("empty hexadecimal bit-vector literal")
	}

	mag, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return Value{}, fmt.Errorf("invalid hexadecimal digits %q", digits)
	}

	return Value{width: uint(len(digits)) * 4, mag: *mag}, nil
}

// FromDecimal builds the Value bound to the indexed "(_ bvK width)" literal:
// the decimal numeral K is reduced modulo 2^width, per the SMT-LIB2 BitVec
// theory definition of that form.
func FromDecimal(numeral string, width uint) (Value, error) {
	if width == 0 {
		return Value{}, fmt.Errorf("bit-vector width must be positive")
	}

	mag, ok := new(big.Int).SetString(numeral, 10)
	if !ok {
		return Value{}, fmt.Errorf("invalid decimal numeral %q", numeral)
	}

	v := Value{width: width, mag: *mag}
	v.mask()

	return v, nil
}

// mask reduces v's magnitude modulo 2^width in place.
func (v *Value) mask() {
	bound := new(big.Int).Lsh(bigOne, v.width)
	v.mag.Mod(&v.mag, bound)
}

// Uint64 returns v's magnitude as a uint64, valid only when Width() <= 64.
func (v Value) Uint64() uint64 {
	return v.mag.Uint64()
}

// BigInt returns a copy of v's unsigned magnitude.
func (v Value) BigInt() *big.Int {
	return new(big.Int).Set(&v.mag)
}

// String renders v using its minimal "#b..." binary form, zero-padded to
// Width bits, matching the canonical model-output form of a bit-vector
// constant.
func (v Value) String() string {
	digits := v.mag.Text(2)
	if pad := int(v.width) - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}

	return "#b" + digits
}

// HexString renders v as a "#x..." literal; only valid when Width is a
// multiple of 4.
func (v Value) HexString() (string, error) {
	if v.width%4 != 0 {
		return "", fmt.Errorf("width %d is not a multiple of 4", v.width)
	}

	digits := v.mag.Text(16)
	if pad := int(v.width)/4 - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}

	return "#x" + digits, nil
}

// BitSet returns a dense bit representation of v, least-significant bit at
// index 0.  Callers that need fast bitwise combination of two same-width
// constants (as the reference backend does for bvand/bvor/bvxor) should
// prefer this over repeated big.Int bit tests.
func (v Value) BitSet() *bitset.BitSet {
	bs := bitset.New(v.width)

	for i := uint(0); i < v.width; i++ {
		if v.mag.Bit(int(i)) == 1 {
			bs.Set(i)
		}
	}

	return bs
}

// FromBitSet is the inverse of BitSet, constructing a Value of the given
// width from a dense bit representation.
func FromBitSet(bs *bitset.BitSet, width uint) Value {
	var mag big.Int

	for i := uint(0); i < width; i++ {
		if bs.Test(i) {
			mag.SetBit(&mag, int(i), 1)
		}
	}

	return Value{width: width, mag: mag}
}

// Concat returns hi:lo, the concatenation of hi (more significant) and lo
// (less significant) into a value of combined width.
func Concat(hi, lo Value) Value {
	var mag big.Int

	mag.Lsh(&hi.mag, lo.width)
	mag.Or(&mag, &lo.mag)

	return Value{width: hi.width + lo.width, mag: mag}
}

// Extract returns bits [lo, hi] of v (inclusive, 0-indexed from the least
// significant bit), per the BitVec theory's extract operator.
func (v Value) Extract(hi, lo uint) Value {
	var mag big.Int

	mag.Rsh(&v.mag, lo)

	out := Value{width: hi - lo + 1, mag: mag}
	out.mask()

	return out
}

// ZeroExtend returns v widened by n zero bits at the most significant end.
func (v Value) ZeroExtend(n uint) Value {
	return Value{width: v.width + n, mag: *new(big.Int).Set(&v.mag)}
}

// SignExtend returns v widened by n copies of its sign bit at the most
// significant end.
func (v Value) SignExtend(n uint) Value {
	out := Value{width: v.width + n, mag: *new(big.Int).Set(&v.mag)}

	if v.mag.Bit(int(v.width)-1) == 1 {
		for i := v.width; i < out.width; i++ {
			out.mag.SetBit(&out.mag, int(i), 1)
		}
	}

	return out
}

// Equal reports whether v and other have the same width and magnitude.
func (v Value) Equal(other Value) bool {
	return v.width == other.width && v.mag.Cmp(&other.mag) == 0
}
