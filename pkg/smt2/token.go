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

// Package smt2 implements the front-end of an SMT-LIB v2 parser: a lexer, a
// scoped symbol table, a hash-consed sort system, a recursive-descent term
// parser for the combined BV/Array/FP/UF theory, a top-level command driver
// and an SMT-LIB v2 response emitter.  The actual solving is left to an
// externally supplied Backend capability (backend.go); this package only
// builds and forwards terms.
package smt2

// Class partitions token kinds into tag-classes.  Packing the class into the
// high bits of a TokenKind (rather than using a separate field) means a
// single integer comparison both identifies an operator and its theory,
// mirroring the original parser's bit-packed tag scheme.
type Class uint32

// Tag classes.
const (
	ClassOther Class = iota
	ClassConstant
	ClassReserved
	ClassCommand
	ClassKeyword
	ClassCore
	ClassArray
	ClassBV
	ClassFP
	ClassLogic
)

const classShift = 16

// TokenKind identifies both a token's tag-class and its specific tag.
type TokenKind uint32

func tag(class Class, index uint32) TokenKind {
	return TokenKind(uint32(class)<<classShift | index)
}

// ClassOf extracts the tag-class carried in the high bits of a TokenKind.
func (k TokenKind) ClassOf() Class {
	return Class(uint32(k) >> classShift)
}

// Other-class tags (punctuation, symbols, attributes).
const (
	TagInvalid TokenKind = iota
	TagEOF
	TagLPar
	TagRPar
	TagSymbol
	TagAttribute
)

// Constant-class tags.
const (
	TagDecimal TokenKind = iota + TokenKind(uint32(ClassConstant)<<classShift)
	TagHexadecimal
	TagBinary
	TagString
	TagReal
)

// Reserved-word tags.
const (
	TagPar TokenKind = iota + TokenKind(uint32(ClassReserved)<<classShift)
	TagNumeralReservedWord
	TagDecimalReservedWord
	TagStringReservedWord
	TagUnderscore
	TagBang
	TagAs
	TagLet
	TagForall
	TagExists
)

// Command tags.
const (
	TagSetLogic TokenKind = iota + TokenKind(uint32(ClassCommand)<<classShift)
	TagSetOption
	TagSetInfo
	TagDeclareSort
	TagDefineSort
	TagDeclareFun
	TagDefineFun
	TagDeclareConst
	TagPush
	TagPop
	TagAssert
	TagCheckSat
	TagCheckSatAssuming
	TagGetAssertions
	TagGetAssignment
	TagGetInfo
	TagGetOption
	TagGetProof
	TagGetUnsatAssumptions
	TagGetUnsatCore
	TagGetValue
	TagExit
	TagGetModel
	TagModel
)

// Keyword (":foo") tags.
const (
	TagKwPrintSuccess TokenKind = iota + TokenKind(uint32(ClassKeyword)<<classShift)
	TagKwGlobalDeclarations
	TagKwProduceModels
	TagKwProduceUnsatAssumptions
	TagKwProduceUnsatCores
	TagKwRegularOutputChannel
	TagKwIncremental
	TagKwNamed
	TagKwDomain
	TagKwGuard
	TagKwPerspective
	TagKwQuoteEquivalence
	TagKwOther // any other keyword, kept in Options' generic option map
)

// Core-theory tags.
const (
	TagBool TokenKind = iota + TokenKind(uint32(ClassCore)<<classShift)
	TagTrue
	TagFalse
	TagNot
	TagAnd
	TagOr
	TagXor
	TagImplies
	TagEqual
	TagDistinct
	TagIte
)

// Array-theory tags.
const (
	TagArraySort TokenKind = iota + TokenKind(uint32(ClassArray)<<classShift)
	TagSelect
	TagStore
	TagAsConst
)

// Bit-vector theory tags.
const (
	TagBitVec TokenKind = iota + TokenKind(uint32(ClassBV)<<classShift)
	TagBVNot
	TagBVNeg
	TagBVRedOr
	TagBVRedAnd
	TagConcat
	TagBVAnd
	TagBVOr
	TagBVXor
	TagBVXNor
	TagBVAdd
	TagBVSub
	TagBVMul
	TagBVUDiv
	TagBVURem
	TagBVSDiv
	TagBVSRem
	TagBVSMod
	TagBVShl
	TagBVLShr
	TagBVAShr
	TagBVNand
	TagBVNor
	TagBVComp
	TagBVULt
	TagBVULe
	TagBVUGt
	TagBVUGe
	TagBVSLt
	TagBVSLe
	TagBVSGt
	TagBVSGe
	TagExtract
	TagZeroExtend
	TagSignExtend
	TagRepeat
	TagRotateLeft
	TagRotateRight
	TagExtRotateLeft
	TagExtRotateRight
	TagBVConst // bvK compact constant symbol
)

// Floating-point theory tags.
const (
	TagFloatingPoint TokenKind = iota + TokenKind(uint32(ClassFP)<<classShift)
	TagRoundingMode
	TagRNE
	TagRNA
	TagRTP
	TagRTN
	TagRTZ
	TagFPPlusZero
	TagFPMinusZero
	TagFPPlusInf
	TagFPMinusInf
	TagFPNaN
	TagFPAbs
	TagFPNeg
	TagFPAdd
	TagFPSub
	TagFPMul
	TagFPDiv
	TagFPFma
	TagFPSqrt
	TagFPRem
	TagFPRoundToIntegral
	TagFPMin
	TagFPMax
	TagFPLeq
	TagFPLt
	TagFPGeq
	TagFPGt
	TagFPEq
	TagFPIsNormal
	TagFPIsSubnormal
	TagFPIsZero
	TagFPIsInfinite
	TagFPIsNaN
	TagFPIsNegative
	TagFPIsPositive
	TagFPToFP
	TagFPToFPUnsigned
	TagToFPFromReal
	TagFPToUBV
	TagFPToSBV
	TagFPToReal
)

// Logic-name tags, recognised but otherwise opaque to the parser: they only
// select the Features value recorded by set-logic.
const (
	TagLogicQFBV TokenKind = iota + TokenKind(uint32(ClassLogic)<<classShift)
	TagLogicQFABV
	TagLogicQFUFBV
	TagLogicQFAUFBV
	TagLogicBV
	TagLogicALL
	TagLogicOther
)

func tagBase(c Class) TokenKind {
	return tag(c, 0)
}

// Token associates lexical information with its position of origin.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Position
}

// IsEOF reports whether this token represents end-of-file.
func (t Token) IsEOF() bool { return t.Kind == TagEOF }
