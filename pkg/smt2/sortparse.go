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

import "strconv"

// ParseSort parses one sort expression starting at the current lookahead
// token, leaving the lookahead positioned just past the sort.
func (p *Parser) ParseSort() (*Sort, error) {
	switch p.tok.Kind {
	case TagBool:
		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.sorts.Bool(), nil
	case TagRoundingMode:
		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.sorts.RoundingMode(), nil
	case TagSymbol:
		return p.parseNamedSort()
	case TagLPar:
		return p.parseCompoundSort()
	default:
		return nil, p.fail(p.tok.Pos, "expected a sort")
	}
}

// parseNamedSort resolves a bare sort name: either a declared uninterpreted
// sort or a define-sort alias.
func (p *Parser) parseNamedSort() (*Sort, error) {
	name := p.tok.Text
	pos := p.tok.Pos

	if err := p.advance(); err != nil {
		return nil, err
	}

	if target := p.sorts.ResolveAlias(name); target != nil {
		return target, nil
	}

	entry := p.syms.Lookup(name)
	if entry == nil {
		return nil, p.fail(pos, "unknown sort %q", name)
	}

	return p.sorts.Uninterpreted(name), nil
}

// parseCompoundSort parses "(Array I E)" or an indexed sort such as
// "(_ BitVec 32)"/"(_ FloatingPoint 8 24)".
func (p *Parser) parseCompoundSort() (*Sort, error) {
	openPos := p.tok.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}

	switch p.tok.Kind {
	case TagUnderscore:
		return p.parseIndexedSort(openPos)
	case TagArraySort:
		if err := p.advance(); err != nil {
			return nil, err
		}

		index, err := p.ParseSort()
		if err != nil {
			return nil, err
		}

		element, err := p.ParseSort()
		if err != nil {
			return nil, err
		}

		if p.tok.Kind != TagRPar {
			return nil, p.fail(p.tok.Pos, "expected ')' closing Array sort")
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		return p.sorts.Array(index, element), nil
	default:
		return nil, p.fail(p.tok.Pos, "expected 'Array' or '_' in compound sort")
	}
}

// parseIndexedSort parses "(_ BitVec n)" / "(_ FloatingPoint eb sb)".  The
// caller leaves the lookahead on the leading "_"; this consumes it before
// reading the sort name that follows.
func (p *Parser) parseIndexedSort(openPos Position) (*Sort, error) {
	if err := p.advance(); err != nil { // consume '_'
		return nil, err
	}

	headTok := p.tok

	tag, ok := indexedSortTag(headTok.Text)
	if !ok {
		return nil, p.fail(headTok.Pos, "unknown indexed sort %q", headTok.Text)
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	var indices []uint64

	for p.tok.Kind != TagRPar {
		if p.tok.Kind != TagDecimal {
			return nil, p.fail(p.tok.Pos, "expected a numeral index")
		}

		n, err := strconv.ParseUint(p.tok.Text, 10, 64)
		if err != nil {
			return nil, p.fail(p.tok.Pos, "invalid numeral index %q", p.tok.Text)
		}

		indices = append(indices, n)

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if err := p.advance(); err != nil { // consume ')'
		return nil, err
	}

	return buildIndexedSort(p.sorts, tag, indices)
}
