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
	"strconv"

	"github.com/apach301/bitwuzla/pkg/smt2/bitvec"
)

// Parser drives a single pass over a token stream, building Backend terms as
// each s-expression closes rather than materialising a full parse tree
// first.  Every ParseTerm call assembles its arguments into a local slice
// and reduces them through the Backend the moment the closing ")" is seen,
// so memory use is bounded by nesting depth, not program size.
type Parser struct {
	lexer    *Lexer
	syms     *SymbolTable
	sorts    *SortTable
	backend  Backend
	opts     *Options
	features Features
	errs     errorLatch

	tok Token
}

// NewParser constructs a Parser reading from lexer, resolving names against
// syms/sorts and building terms through backend.
func NewParser(lexer *Lexer, syms *SymbolTable, sorts *SortTable, backend Backend, opts *Options) *Parser {
	return &Parser{lexer: lexer, syms: syms, sorts: sorts, backend: backend, opts: opts}
}

func (p *Parser) advance() error {
	t, err := p.lexer.Next()
	if err != nil {
		return err
	}

	p.tok = t

	return nil
}

func (p *Parser) fail(pos Position, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// ParseTerm parses one term starting at the current lookahead token, which
// the caller must have already populated via advance(), and leaves the
// lookahead positioned on the first token past the term.
func (p *Parser) ParseTerm() (TermID, *Sort, error) {
	switch p.tok.Kind {
	case TagLPar:
		return p.parseCompound()
	case TagTrue:
		t := p.backend.Bool(true)
		if err := p.advance(); err != nil {
			return 0, nil, err
		}

		return t, p.sorts.Bool(), nil
	case TagFalse:
		t := p.backend.Bool(false)
		if err := p.advance(); err != nil {
			return 0, nil, err
		}

		return t, p.sorts.Bool(), nil
	case TagBinary:
		v, err := bitvec.FromBinary(p.tok.Text)
		if err != nil {
			return 0, nil, p.fail(p.tok.Pos, "%s", err.Error())
		}

		t := p.backend.BVConst(v)
		sort := p.sorts.BitVec(int(v.Width()))

		if err := p.advance(); err != nil {
			return 0, nil, err
		}

		return t, sort, nil
	case TagHexadecimal:
		v, err := bitvec.FromHex(p.tok.Text)
		if err != nil {
			return 0, nil, p.fail(p.tok.Pos, "%s", err.Error())
		}

		t := p.backend.BVConst(v)
		sort := p.sorts.BitVec(int(v.Width()))

		if err := p.advance(); err != nil {
			return 0, nil, err
		}

		return t, sort, nil
	case TagRNE, TagRNA, TagRTP, TagRTN, TagRTZ:
		tag := p.tok.Kind
		t := p.backend.RoundingModeConst(tag)

		if err := p.advance(); err != nil {
			return 0, nil, err
		}

		return t, p.sorts.RoundingMode(), nil
	case TagSymbol:
		return p.parseSymbolTerm()
	default:
		return 0, nil, p.fail(p.tok.Pos, "unexpected token %q while parsing a term", p.tok.Text)
	}
}

// parseSymbolTerm resolves a bare symbol to a variable or 0-ary function
// term.
func (p *Parser) parseSymbolTerm() (TermID, *Sort, error) {
	name := p.tok.Text
	pos := p.tok.Pos

	entry := p.syms.Lookup(name)
	if entry == nil || entry.Sort == nil {
		if err := p.advance(); err != nil {
			return 0, nil, err
		}
		// Let the Backend decide: it may know the name as a 0-ary
		// application even if the front-end's own table does not carry a
		// sort for it (e.g. a Backend-builtin constant).
		t := p.backend.Var(name, nil)

		return t, p.backend.SortOf(t), p.checkUnresolved(pos, t)
	}

	t := p.backend.Var(name, entry.Sort)

	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	return t, entry.Sort, p.checkUnresolved(pos, t)
}

func (p *Parser) checkUnresolved(pos Position, t TermID) error {
	if p.backend.SortOf(t) == nil {
		return p.fail(pos, "use of undeclared symbol")
	}

	return nil
}

// parseCompound parses a parenthesised form: a theory operator application,
// a function application, a let, a quantifier, an indexed "(_ ...)" form, an
// "(as const T)" array constant, or an "(! term attr*)" annotation.
func (p *Parser) parseCompound() (TermID, *Sort, error) {
	openPos := p.tok.Pos
	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	switch p.tok.Kind {
	case TagUnderscore:
		return p.parseIndexed(openPos)
	case TagLPar:
		return p.parseParenHeadApplication(openPos)
	case TagLet:
		return p.parseLet(openPos)
	case TagForall, TagExists:
		return p.parseQuantifier(openPos, p.tok.Kind == TagForall)
	case TagBang:
		return p.parseAnnotation(openPos)
	default:
		return p.parseApplication(openPos)
	}
}

// parseApplication parses "(op arg*)" where op is either a known theory
// operator or a user-declared function symbol.
func (p *Parser) parseApplication(openPos Position) (TermID, *Sort, error) {
	headTok := p.tok

	info, isOperator := operatorTable[headTok.Kind]
	if headTok.Kind != TagSymbol && !isOperator {
		return 0, nil, p.fail(headTok.Pos, "expected an operator or function symbol")
	}

	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	var (
		args     []TermID
		argSorts []*Sort
		rm       TermID
		rmSort   *Sort
	)

	if isOperator && info.hasRM {
		rmTerm, sort, err := p.ParseTerm()
		if err != nil {
			return 0, nil, err
		}

		rm = rmTerm
		rmSort = sort
	}

	for p.tok.Kind != TagRPar {
		if p.tok.IsEOF() {
			return 0, nil, p.fail(openPos, "unterminated application, missing ')'")
		}

		arg, sort, err := p.ParseTerm()
		if err != nil {
			return 0, nil, err
		}

		args = append(args, arg)
		argSorts = append(argSorts, sort)
	}

	if err := p.advance(); err != nil { // consume ')'
		return 0, nil, err
	}

	if isOperator {
		if !info.checkArity(len(args)) {
			return 0, nil, p.fail(headTok.Pos, "wrong number of arguments to %q", headTok.Text)
		}

		if _, err := CheckOperatorSort(headTok.Kind, nil, argSorts, rmSort, p.sorts); err != nil {
			return 0, nil, p.fail(headTok.Pos, "%s", err.Error())
		}

		term, err := p.backend.Apply(headTok.Kind, nil, args, rm)
		if err != nil {
			return 0, nil, p.fail(headTok.Pos, "%s", err.Error())
		}

		return term, p.backend.SortOf(term), nil
	}

	// Plain function application: either a user-declared/defined function
	// or ite's sibling forms handled above already excluded it.
	term, err := p.backend.ApplyUF(headTok.Text, args)
	if err != nil {
		return 0, nil, p.fail(headTok.Pos, "%s", err.Error())
	}

	return term, p.backend.SortOf(term), nil
}

// parseIndexed parses "(_ name index*)" in term position: an indexed BV
// operator such as "(_ extract 8 0)", the compact bit-vector constant
// "(_ bvK n)", or an FP special constant "(_ +oo eb sb)". Indexed sorts such
// as "(_ BitVec n)" are not handled here; ParseSort parses them.
func (p *Parser) parseIndexed(openPos Position) (TermID, *Sort, error) {
	if err := p.advance(); err != nil { // consume '_'
		return 0, nil, err
	}

	headTok := p.tok
	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	var indices []uint64

	for p.tok.Kind != TagRPar {
		if p.tok.Kind != TagDecimal {
			return 0, nil, p.fail(p.tok.Pos, "expected a numeral index")
		}

		n, err := strconv.ParseUint(p.tok.Text, 10, 64)
		if err != nil {
			return 0, nil, p.fail(p.tok.Pos, "invalid numeral index %q", p.tok.Text)
		}

		indices = append(indices, n)

		if err := p.advance(); err != nil {
			return 0, nil, err
		}
	}

	if err := p.advance(); err != nil { // consume ')'
		return 0, nil, err
	}

	if digits, ok := parseBVConstSymbol(headTok.Text); ok {
		if len(indices) != 1 {
			return 0, nil, p.fail(openPos, "bit-vector constant expects exactly one width index")
		}

		v, err := buildBVConstFromIndices(digits, indices[0])
		if err != nil {
			return 0, nil, p.fail(openPos, "%s", err.Error())
		}

		t := p.backend.BVConst(v)

		return t, p.sorts.BitVec(int(v.Width())), nil
	}

	if isFPSpecialConstant(headTok.Kind) {
		eb, sb, err := fpSpecialConstantWidths(indices)
		if err != nil {
			return 0, nil, p.fail(openPos, "%s", err.Error())
		}

		t := p.backend.FPSpecialConst(headTok.Kind, eb, sb)

		return t, p.sorts.FloatingPoint(eb, sb), nil
	}

	if info, ok := operatorTable[headTok.Kind]; ok {
		if info.numIndices != len(indices) {
			return 0, nil, p.fail(openPos, "operator %q expects %d index(es)", headTok.Text, info.numIndices)
		}

		return p.applyIndexedOperator(openPos, headTok.Kind, indices)
	}

	return 0, nil, p.fail(openPos, "unknown indexed form %q", headTok.Text)
}

func isFPSpecialConstant(tag TokenKind) bool {
	switch tag {
	case TagFPPlusZero, TagFPMinusZero, TagFPPlusInf, TagFPMinusInf, TagFPNaN:
		return true
	default:
		return false
	}
}

// applyIndexedOperator consumes the argument list following an indexed
// operator head such as "(_ extract 8 0)" in "((_ extract 8 0) x)", exactly
// as parseApplication does for a plain operator head.
func (p *Parser) applyIndexedOperator(openPos Position, tag TokenKind, indices []uint64) (TermID, *Sort, error) {
	info := operatorTable[tag]

	var (
		args     []TermID
		argSorts []*Sort
		rm       TermID
		rmSort   *Sort
	)

	if info.hasRM {
		rmTerm, sort, err := p.ParseTerm()
		if err != nil {
			return 0, nil, err
		}

		rm = rmTerm
		rmSort = sort
	}

	for p.tok.Kind != TagRPar {
		if p.tok.IsEOF() {
			return 0, nil, p.fail(openPos, "unterminated application, missing ')'")
		}

		arg, sort, err := p.ParseTerm()
		if err != nil {
			return 0, nil, err
		}

		args = append(args, arg)
		argSorts = append(argSorts, sort)
	}

	if err := p.advance(); err != nil { // consume enclosing ')'
		return 0, nil, err
	}

	if !info.checkArity(len(args)) {
		return 0, nil, p.fail(openPos, "wrong number of arguments to indexed operator")
	}

	if _, err := CheckOperatorSort(tag, indices, argSorts, rmSort, p.sorts); err != nil {
		return 0, nil, p.fail(openPos, "%s", err.Error())
	}

	term, err := p.backend.Apply(tag, indices, args, rm)
	if err != nil {
		return 0, nil, p.fail(openPos, "%s", err.Error())
	}

	return term, p.backend.SortOf(term), nil
}

// parseParenHeadApplication parses an application whose head is itself
// parenthesized: either the qualified identifier "(as const T)" or an
// indexed operator identifier such as "(_ extract 8 0)", applied to its
// arguments exactly as parseApplication applies a plain symbol head, e.g.
// "((_ extract 8 0) x)".  openPos is the position of the application's
// outer "(".  The current lookahead is the "(" that opens the head.
func (p *Parser) parseParenHeadApplication(openPos Position) (TermID, *Sort, error) {
	if err := p.advance(); err != nil { // consume inner '('
		return 0, nil, err
	}

	if p.tok.Kind == TagUnderscore {
		return p.parseIndexed(openPos)
	}

	return p.parseAsConstApplication(openPos)
}

// parseAsConstApplication parses "((as const T) fill)" once the lookahead is
// on the "as" keyword inside the head's parentheses.
func (p *Parser) parseAsConstApplication(openPos Position) (TermID, *Sort, error) {
	if p.tok.Kind != TagAs {
		return 0, nil, p.fail(p.tok.Pos, "expected 'as' or '_' in qualified-identifier head")
	}

	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	if p.tok.Kind != TagAsConst {
		return 0, nil, p.fail(p.tok.Pos, "expected 'const' after 'as'")
	}

	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	sort, err := p.ParseSort()
	if err != nil {
		return 0, nil, err
	}

	if p.tok.Kind != TagRPar {
		return 0, nil, p.fail(p.tok.Pos, "expected ')' closing 'as const'")
	}

	if err := p.advance(); err != nil { // consume ')' of "(as const T)"
		return 0, nil, err
	}

	if !sort.IsArray() {
		return 0, nil, p.fail(openPos, "'as const' requires an Array sort")
	}

	fill, _, err := p.ParseTerm()
	if err != nil {
		return 0, nil, err
	}

	if p.tok.Kind != TagRPar {
		return 0, nil, p.fail(openPos, "'(as const T)' takes exactly one argument")
	}

	if err := p.advance(); err != nil { // consume outer ')'
		return 0, nil, err
	}

	return p.backend.ConstArray(sort, fill), sort, nil
}

// parseLet parses "(let ((x t1) (y t2) ...) body)".  The caller leaves the
// lookahead on the "let" keyword itself.
func (p *Parser) parseLet(openPos Position) (TermID, *Sort, error) {
	if err := p.advance(); err != nil { // consume 'let'
		return 0, nil, err
	}

	if p.tok.Kind != TagLPar {
		return 0, nil, p.fail(p.tok.Pos, "expected '(' opening let bindings")
	}

	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	var names []string

	var values []TermID

	for p.tok.Kind == TagLPar {
		if err := p.advance(); err != nil {
			return 0, nil, err
		}

		if p.tok.Kind != TagSymbol {
			return 0, nil, p.fail(p.tok.Pos, "expected a variable name in let binding")
		}

		name := p.tok.Text

		if err := p.advance(); err != nil {
			return 0, nil, err
		}

		val, _, err := p.ParseTerm()
		if err != nil {
			return 0, nil, err
		}

		if p.tok.Kind != TagRPar {
			return 0, nil, p.fail(p.tok.Pos, "expected ')' closing let binding")
		}

		if err := p.advance(); err != nil {
			return 0, nil, err
		}

		names = append(names, name)
		values = append(values, val)
	}

	if p.tok.Kind != TagRPar {
		return 0, nil, p.fail(p.tok.Pos, "expected ')' closing let bindings list")
	}

	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	p.syms.PushScope()

	for i, name := range names {
		p.syms.Declare(name, TagSymbol, p.backend.SortOf(values[i]), 0)
	}

	body, bodySort, err := p.ParseTerm()
	if err != nil {
		p.syms.PopScope()
		return 0, nil, err
	}

	p.syms.PopScope()

	if p.tok.Kind != TagRPar {
		return 0, nil, p.fail(openPos, "expected ')' closing let")
	}

	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	return p.backend.Let(names, values, body), bodySort, nil
}

// parseQuantifier parses "(forall ((x S) ...) body)" or the exists form. The
// caller leaves the lookahead on the "forall"/"exists" keyword itself.
func (p *Parser) parseQuantifier(openPos Position, universal bool) (TermID, *Sort, error) {
	if err := p.advance(); err != nil { // consume 'forall'/'exists'
		return 0, nil, err
	}

	if p.tok.Kind != TagLPar {
		return 0, nil, p.fail(p.tok.Pos, "expected '(' opening quantifier parameters")
	}

	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	var names []string

	var sorts []*Sort

	for p.tok.Kind == TagLPar {
		if err := p.advance(); err != nil {
			return 0, nil, err
		}

		if p.tok.Kind != TagSymbol {
			return 0, nil, p.fail(p.tok.Pos, "expected a variable name")
		}

		name := p.tok.Text

		if err := p.advance(); err != nil {
			return 0, nil, err
		}

		sort, err := p.ParseSort()
		if err != nil {
			return 0, nil, err
		}

		if p.tok.Kind != TagRPar {
			return 0, nil, p.fail(p.tok.Pos, "expected ')' closing sorted variable")
		}

		if err := p.advance(); err != nil {
			return 0, nil, err
		}

		names = append(names, name)
		sorts = append(sorts, sort)
	}

	if p.tok.Kind != TagRPar {
		return 0, nil, p.fail(p.tok.Pos, "expected ')' closing quantifier parameter list")
	}

	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	p.syms.PushScope()

	for i, name := range names {
		p.syms.Declare(name, TagSymbol, sorts[i], 0)
	}

	body, _, err := p.ParseTerm()
	if err != nil {
		p.syms.PopScope()
		return 0, nil, err
	}

	p.syms.PopScope()

	if p.tok.Kind != TagRPar {
		return 0, nil, p.fail(openPos, "expected ')' closing quantifier")
	}

	if err := p.advance(); err != nil {
		return 0, nil, err
	}

	return p.backend.Quantify(universal, names, sorts, body), p.sorts.Bool(), nil
}

// parseAnnotation parses "(! term attr*)".  Of the standard attributes only
// ":named" has semantic effect here: it additionally declares name in the
// symbol table as a 0-ary symbol with term's sort.  The Backend is not told
// of the name, so a later use of it resolves through Backend.Var like any
// declared constant rather than to term, and get-unsat-core does not report
// it.  The caller leaves the lookahead on the "!" itself.
func (p *Parser) parseAnnotation(openPos Position) (TermID, *Sort, error) {
	if err := p.advance(); err != nil { // consume '!'
		return 0, nil, err
	}

	term, sort, err := p.ParseTerm()
	if err != nil {
		return 0, nil, err
	}

	for p.tok.Kind != TagRPar {
		if p.tok.Kind == TagKwNamed {
			if err := p.advance(); err != nil {
				return 0, nil, err
			}

			if p.tok.Kind != TagSymbol {
				return 0, nil, p.fail(p.tok.Pos, "expected a name after :named")
			}

			p.syms.Declare(p.tok.Text, TagSymbol, sort, 0)

			if err := p.advance(); err != nil {
				return 0, nil, err
			}

			continue
		}
		// Any other attribute (:domain, :guard, :perspective, or an
		// unrecognised keyword) is skipped: it carries no semantics this
		// front-end needs in order to build the annotated term.
		if err := p.skipAttributeValue(); err != nil {
			return 0, nil, err
		}
	}

	if err := p.advance(); err != nil { // consume ')'
		return 0, nil, err
	}

	_ = openPos

	return term, sort, nil
}

// skipAttributeValue consumes one ":keyword value" pair (or a bare keyword)
// without interpreting it.
func (p *Parser) skipAttributeValue() error {
	if err := p.advance(); err != nil { // consume the keyword
		return err
	}

	switch p.tok.Kind {
	case TagRPar:
		return nil
	case TagLPar:
		depth := 1
		for depth > 0 {
			if err := p.advance(); err != nil {
				return err
			}

			switch p.tok.Kind {
			case TagLPar:
				depth++
			case TagRPar:
				depth--
			}
		}

		return p.advance()
	default:
		return p.advance()
	}
}
