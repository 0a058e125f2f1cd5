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
package bitvec

import "testing"

func TestFromBinaryWidth(t *testing.T) {
	v, err := FromBinary("0110")
	if err != nil {
		t.Fatalf("FromBinary: %s", err)
	}

	if v.Width() != 4 {
		t.Fatalf("Width() = %d, want 4", v.Width())
	}

	if v.Uint64() != 6 {
		t.Fatalf("Uint64() = %d, want 6", v.Uint64())
	}

	if v.String() != "#b0110" {
		t.Fatalf("String() = %q, want #b0110", v.String())
	}
}

func TestFromBinaryEmpty(t *testing.T) {
	if _, err := FromBinary(""); err == nil {
		t.Fatal("expected error for empty binary literal")
	}
}

func TestFromHexWidth(t *testing.T) {
	v, err := FromHex("ff")
	if err != nil {
		t.Fatalf("FromHex: %s", err)
	}

	if v.Width() != 8 {
		t.Fatalf("Width() = %d, want 8", v.Width())
	}

	hex, err := v.HexString()
	if err != nil {
		t.Fatalf("HexString: %s", err)
	}

	if hex != "#xff" {
		t.Fatalf("HexString() = %q, want #xff", hex)
	}
}

func TestFromDecimalMasksToWidth(t *testing.T) {
	// 300 mod 2^8 == 44
	v, err := FromDecimal("300", 8)
	if err != nil {
		t.Fatalf("FromDecimal: %s", err)
	}

	if v.Uint64() != 44 {
		t.Fatalf("Uint64() = %d, want 44", v.Uint64())
	}
}

func TestFromDecimalZeroWidth(t *testing.T) {
	if _, err := FromDecimal("0", 0); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestConcat(t *testing.T) {
	hi, _ := FromBinary("11")
	lo, _ := FromBinary("00")

	v := Concat(hi, lo)
	if v.Width() != 4 {
		t.Fatalf("Width() = %d, want 4", v.Width())
	}

	if v.String() != "#b1100" {
		t.Fatalf("String() = %q, want #b1100", v.String())
	}
}

func TestExtract(t *testing.T) {
	v, _ := FromBinary("11010110")

	out := v.Extract(5, 2)
	if out.Width() != 4 {
		t.Fatalf("Width() = %d, want 4", out.Width())
	}

	if out.String() != "#b0101" {
		t.Fatalf("String() = %q, want #b0101", out.String())
	}
}

func TestZeroExtend(t *testing.T) {
	v, _ := FromBinary("1")

	out := v.ZeroExtend(3)
	if out.Width() != 4 {
		t.Fatalf("Width() = %d, want 4", out.Width())
	}

	if out.String() != "#b0001" {
		t.Fatalf("String() = %q, want #b0001", out.String())
	}
}

func TestSignExtendNegative(t *testing.T) {
	v, _ := FromBinary("1010")

	out := v.SignExtend(4)
	if out.String() != "#b11111010" {
		t.Fatalf("String() = %q, want #b11111010", out.String())
	}
}

func TestSignExtendPositive(t *testing.T) {
	v, _ := FromBinary("0010")

	out := v.SignExtend(4)
	if out.String() != "#b00000010" {
		t.Fatalf("String() = %q, want #b00000010", out.String())
	}
}

func TestEqual(t *testing.T) {
	a, _ := FromBinary("0011")
	b, _ := FromHex("3")

	if !a.Equal(b) {
		t.Fatalf("expected %s to equal %s", a, b)
	}

	c, _ := FromBinary("00011")
	if a.Equal(c) {
		t.Fatal("values of differing width must not compare equal")
	}
}

func TestBitSetRoundTrip(t *testing.T) {
	v, _ := FromBinary("10110")

	bs := v.BitSet()

	back := FromBitSet(bs, v.Width())
	if !v.Equal(back) {
		t.Fatalf("round trip through BitSet changed value: %s != %s", v, back)
	}
}
