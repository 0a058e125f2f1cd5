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

// keywordTable enumerates every reserved word, theory operator, command name
// and logic name the lexer must recognise at scope 0.  It is consulted once,
// at SymbolTable construction, to pre-seed entries so that symbol lookup and
// reserved-word lookup share a single code path.
var keywordTable = map[string]TokenKind{
	// Reserved words.
	"par":     TagPar,
	"NUMERAL": TagNumeralReservedWord,
	"DECIMAL": TagDecimalReservedWord,
	"STRING":  TagStringReservedWord,
	"_":       TagUnderscore,
	"!":       TagBang,
	"as":      TagAs,
	"let":     TagLet,
	"forall":  TagForall,
	"exists":  TagExists,

	// Commands.
	"set-logic":             TagSetLogic,
	"set-option":            TagSetOption,
	"set-info":               TagSetInfo,
	"declare-sort":           TagDeclareSort,
	"define-sort":            TagDefineSort,
	"declare-fun":            TagDeclareFun,
	"define-fun":             TagDefineFun,
	"declare-const":          TagDeclareConst,
	"push":                   TagPush,
	"pop":                    TagPop,
	"assert":                 TagAssert,
	"check-sat":              TagCheckSat,
	"check-sat-assuming":     TagCheckSatAssuming,
	"get-assertions":         TagGetAssertions,
	"get-assignment":         TagGetAssignment,
	"get-info":               TagGetInfo,
	"get-option":             TagGetOption,
	"get-proof":              TagGetProof,
	"get-unsat-assumptions":  TagGetUnsatAssumptions,
	"get-unsat-core":         TagGetUnsatCore,
	"get-value":              TagGetValue,
	"exit":                   TagExit,
	"get-model":              TagGetModel,
	"model":                  TagModel,

	// Keywords.
	":print-success":             TagKwPrintSuccess,
	":global-declarations":       TagKwGlobalDeclarations,
	":produce-models":            TagKwProduceModels,
	":produce-unsat-assumptions": TagKwProduceUnsatAssumptions,
	":produce-unsat-cores":       TagKwProduceUnsatCores,
	":regular-output-channel":    TagKwRegularOutputChannel,
	":incremental":               TagKwIncremental,
	":named":                     TagKwNamed,
	":domain":                    TagKwDomain,
	":guard":                     TagKwGuard,
	":perspective":                TagKwPerspective,
	":quote-equivalence":         TagKwQuoteEquivalence,

	// Core theory.
	"Bool":     TagBool,
	"true":     TagTrue,
	"false":    TagFalse,
	"not":      TagNot,
	"and":      TagAnd,
	"or":       TagOr,
	"xor":      TagXor,
	"=>":       TagImplies,
	"=":        TagEqual,
	"distinct": TagDistinct,
	"ite":      TagIte,

	// Array theory.
	"Array":    TagArraySort,
	"select":   TagSelect,
	"store":    TagStore,
	"const":    TagAsConst,

	// Bit-vector theory.
	"BitVec":           TagBitVec,
	"bvnot":            TagBVNot,
	"bvneg":            TagBVNeg,
	"bvredor":          TagBVRedOr,
	"bvredand":         TagBVRedAnd,
	"concat":           TagConcat,
	"bvand":            TagBVAnd,
	"bvor":             TagBVOr,
	"bvxor":            TagBVXor,
	"bvxnor":           TagBVXNor,
	"bvadd":            TagBVAdd,
	"bvsub":            TagBVSub,
	"bvmul":            TagBVMul,
	"bvudiv":           TagBVUDiv,
	"bvurem":           TagBVURem,
	"bvsdiv":           TagBVSDiv,
	"bvsrem":           TagBVSRem,
	"bvsmod":           TagBVSMod,
	"bvshl":            TagBVShl,
	"bvlshr":           TagBVLShr,
	"bvashr":           TagBVAShr,
	"bvnand":           TagBVNand,
	"bvnor":            TagBVNor,
	"bvcomp":           TagBVComp,
	"bvult":            TagBVULt,
	"bvule":            TagBVULe,
	"bvugt":            TagBVUGt,
	"bvuge":            TagBVUGe,
	"bvslt":            TagBVSLt,
	"bvsle":            TagBVSLe,
	"bvsgt":            TagBVSGt,
	"bvsge":            TagBVSGe,
	"extract":          TagExtract,
	"zero_extend":      TagZeroExtend,
	"sign_extend":      TagSignExtend,
	"repeat":           TagRepeat,
	"rotate_left":      TagRotateLeft,
	"rotate_right":     TagRotateRight,
	"ext_rotate_left":  TagExtRotateLeft,
	"ext_rotate_right": TagExtRotateRight,

	// Floating-point theory.
	"FloatingPoint":        TagFloatingPoint,
	"RoundingMode":         TagRoundingMode,
	"roundNearestTiesToEven": TagRNE,
	"RNE":                  TagRNE,
	"roundNearestTiesToAway": TagRNA,
	"RNA":                  TagRNA,
	"roundTowardPositive":  TagRTP,
	"RTP":                  TagRTP,
	"roundTowardNegative":  TagRTN,
	"RTN":                  TagRTN,
	"roundTowardZero":      TagRTZ,
	"RTZ":                  TagRTZ,
	"+zero":                TagFPPlusZero,
	"-zero":                TagFPMinusZero,
	"+oo":                  TagFPPlusInf,
	"-oo":                  TagFPMinusInf,
	"NaN":                  TagFPNaN,
	"fp.abs":               TagFPAbs,
	"fp.neg":               TagFPNeg,
	"fp.add":                TagFPAdd,
	"fp.sub":                TagFPSub,
	"fp.mul":                TagFPMul,
	"fp.div":                TagFPDiv,
	"fp.fma":                TagFPFma,
	"fp.sqrt":               TagFPSqrt,
	"fp.rem":                TagFPRem,
	"fp.roundToIntegral":    TagFPRoundToIntegral,
	"fp.min":                TagFPMin,
	"fp.max":                TagFPMax,
	"fp.leq":                TagFPLeq,
	"fp.lt":                 TagFPLt,
	"fp.geq":                TagFPGeq,
	"fp.gt":                 TagFPGt,
	"fp.eq":                 TagFPEq,
	"fp.isNormal":           TagFPIsNormal,
	"fp.isSubnormal":        TagFPIsSubnormal,
	"fp.isZero":             TagFPIsZero,
	"fp.isInfinite":         TagFPIsInfinite,
	"fp.isNaN":              TagFPIsNaN,
	"fp.isNegative":         TagFPIsNegative,
	"fp.isPositive":         TagFPIsPositive,
	"to_fp":                 TagFPToFP,
	"to_fp_unsigned":        TagFPToFPUnsigned,
	"fp.to_ubv":             TagFPToUBV,
	"fp.to_sbv":             TagFPToSBV,
	"fp.to_real":            TagFPToReal,

	// Logic names.
	"QF_BV":    TagLogicQFBV,
	"QF_ABV":   TagLogicQFABV,
	"QF_UFBV":  TagLogicQFUFBV,
	"QF_AUFBV": TagLogicQFAUFBV,
	"BV":       TagLogicBV,
	"ALL":      TagLogicALL,
}

// bvConstPrefix is the prefix of the compact bit-vector constant symbol
// "bv<decimal>" which is only meaningful inside "(_ bvK n)".
const bvConstPrefix = "bv"
