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
	"fmt"
	"strings"
)

// SortKind discriminates the shape of a Sort.
type SortKind uint8

const (
	// SortBool is the sort of Core theory propositions.
	SortBool SortKind = iota
	// SortBitVec is a bit-vector sort of some fixed, positive width.
	SortBitVec
	// SortFloatingPoint is an IEEE-754-like float sort with eb exponent bits
	// and sb significand bits (including the hidden bit).
	SortFloatingPoint
	// SortRoundingMode is the sort of the five FP rounding-mode constants.
	SortRoundingMode
	// SortArray is a functional array sort from Index to Element.
	SortArray
	// SortUninterpreted is a declared sort with no further structure, or a
	// sort alias introduced by define-sort once expanded.
	SortUninterpreted
	// SortFunction is the sort of a declared or defined function symbol; it
	// never appears as the sort of a term, only as a symbol table entry.
	SortFunction
)

// Sort is a hash-consed SMT-LIB2 sort.  Two Sort values describe the same
// sort if and only if their pointers are equal: the Sorts table guarantees
// this by never constructing two distinct *Sort for equal (Kind, params).
type Sort struct {
	Kind SortKind
	// Width is valid for SortBitVec.
	Width int
	// Exponent/Significand are valid for SortFloatingPoint.
	Exponent    int
	Significand int
	// Index/Element are valid for SortArray.
	Index   *Sort
	Element *Sort
	// Name identifies a SortUninterpreted sort, or a SortFunction's symbol.
	Name string
	// Domain/Range are valid for SortFunction.
	Domain []*Sort
	Range  *Sort

	key string
}

// String renders a sort in SMT-LIB2 surface syntax.
func (s *Sort) String() string {
	switch s.Kind {
	case SortBool:
		return "Bool"
	case SortBitVec:
		return fmt.Sprintf("(_ BitVec %d)", s.Width)
	case SortFloatingPoint:
		return fmt.Sprintf("(_ FloatingPoint %d %d)", s.Exponent, s.Significand)
	case SortRoundingMode:
		return "RoundingMode"
	case SortArray:
		return fmt.Sprintf("(Array %s %s)", s.Index, s.Element)
	case SortUninterpreted:
		return s.Name
	case SortFunction:
		var b strings.Builder

		b.WriteString("(")

		for i, d := range s.Domain {
			if i > 0 {
				b.WriteString(" ")
			}

			b.WriteString(d.String())
		}

		b.WriteString(") ")
		b.WriteString(s.Range.String())

		return b.String()
	default:
		return "<invalid-sort>"
	}
}

// IsBitVec reports whether s is a bit-vector sort.
func (s *Sort) IsBitVec() bool { return s.Kind == SortBitVec }

// IsArray reports whether s is an array sort.
func (s *Sort) IsArray() bool { return s.Kind == SortArray }

// IsFloatingPoint reports whether s is a floating-point sort.
func (s *Sort) IsFloatingPoint() bool { return s.Kind == SortFloatingPoint }

// Float16/Float32/Float64/Float128 name the IEEE exponent/significand pairs
// for the standard FloatingPoint aliases.
//
//nolint:revive
const (
	Float16Exp, Float16Sig   = 5, 11
	Float32Exp, Float32Sig   = 8, 24
	Float64Exp, Float64Sig   = 11, 53
	Float128Exp, Float128Sig = 15, 113
)

// SortTable hash-conses every Sort constructed during a parse, so that sort
// equality throughout the front-end reduces to pointer equality.  This
// mirrors the bucketed-hashmap idiom used elsewhere in the front-end (a
// structural key computed from a shape's components, looked up before
// constructing the value): rather than requiring *Sort to implement a
// generic Hasher interface before one exists, the table builds and interns
// its own string key per shape.
type SortTable struct {
	table map[string]*Sort
	// aliases maps a define-sort name to the sort it expands to.
	aliases map[string]*Sort

	boolSort *Sort
	rmSort   *Sort
}

// NewSortTable constructs a table pre-populated with the always-present Bool
// and RoundingMode sorts.
func NewSortTable() *SortTable {
	t := &SortTable{
		table:   make(map[string]*Sort, 64),
		aliases: make(map[string]*Sort, 8),
	}

	t.boolSort = &Sort{Kind: SortBool, key: "Bool"}
	t.rmSort = &Sort{Kind: SortRoundingMode, key: "RoundingMode"}
	t.table[t.boolSort.key] = t.boolSort
	t.table[t.rmSort.key] = t.rmSort

	return t
}

// Bool returns the unique Bool sort.
func (t *SortTable) Bool() *Sort { return t.boolSort }

// RoundingMode returns the unique RoundingMode sort.
func (t *SortTable) RoundingMode() *Sort { return t.rmSort }

// BitVec returns the unique sort for bit-vectors of the given width.
func (t *SortTable) BitVec(width int) *Sort {
	key := fmt.Sprintf("bv%d", width)
	if s, ok := t.table[key]; ok {
		return s
	}

	s := &Sort{Kind: SortBitVec, Width: width, key: key}
	t.table[key] = s

	return s
}

// FloatingPoint returns the unique sort for the given exponent/significand
// pair.
func (t *SortTable) FloatingPoint(eb, sb int) *Sort {
	key := fmt.Sprintf("fp%d.%d", eb, sb)
	if s, ok := t.table[key]; ok {
		return s
	}

	s := &Sort{Kind: SortFloatingPoint, Exponent: eb, Significand: sb, key: key}
	t.table[key] = s

	return s
}

// Array returns the unique sort for arrays from index to element.
func (t *SortTable) Array(index, element *Sort) *Sort {
	key := "arr:" + index.key + "->" + element.key
	if s, ok := t.table[key]; ok {
		return s
	}

	s := &Sort{Kind: SortArray, Index: index, Element: element, key: key}
	t.table[key] = s

	return s
}

// Uninterpreted returns the unique sort for a declared, structure-less sort
// name (declare-sort with arity 0; this front-end does not model
// parametric declare-sort bodies or datatype declarations).
func (t *SortTable) Uninterpreted(name string) *Sort {
	key := "u:" + name
	if s, ok := t.table[key]; ok {
		return s
	}

	s := &Sort{Kind: SortUninterpreted, Name: name, key: key}
	t.table[key] = s

	return s
}

// Function returns the unique sort for a function with the given domain and
// range; used only in symbol table entries, never as a term's sort.
func (t *SortTable) Function(domain []*Sort, rng *Sort) *Sort {
	var b strings.Builder

	b.WriteString("f:")

	for _, d := range domain {
		b.WriteString(d.key)
		b.WriteString(",")
	}

	b.WriteString("->")
	b.WriteString(rng.key)

	key := b.String()
	if s, ok := t.table[key]; ok {
		return s
	}

	s := &Sort{Kind: SortFunction, Domain: domain, Range: rng, key: key}
	t.table[key] = s

	return s
}

// DefineAlias records that name (introduced by define-sort) denotes target.
// Subsequent sort references to name resolve to target directly; the alias
// itself is never interned as a distinct Sort.
func (t *SortTable) DefineAlias(name string, target *Sort) {
	t.aliases[name] = target
}

// ResolveAlias returns the sort a define-sort name expands to, or nil if
// name is not a known alias.
func (t *SortTable) ResolveAlias(name string) *Sort {
	return t.aliases[name]
}
