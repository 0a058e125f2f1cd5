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
	"io"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Byte classification tables.  Membership is precomputed into dense bitsets
// rather than checked with a chain of range comparisons, so that the lexer's
// inner loop (run once per input byte) is a single Test call per class.
var (
	classWhitespace = newByteClass(" \t\r\n")
	classDigit      = newByteClassRange('0', '9')
	classHexDigit   = newByteClassUnion(newByteClassRange('0', '9'),
		newByteClassRange('a', 'f'), newByteClassRange('A', 'F'))
	classAlpha = newByteClassUnion(newByteClassRange('a', 'z'), newByteClassRange('A', 'Z'))
	// classSymbolExtra holds the punctuation characters the SMT-LIB2 grammar
	// allows inside a simple symbol, beyond letters and digits.
	classSymbolExtra = newByteClass("~!@$%^&*_-+=<>.?/")
	classSymbolStart = newByteClassUnion(classAlpha, classSymbolExtra)
	classSymbolCont  = newByteClassUnion(classSymbolStart, classDigit)
)

func newByteClass(chars string) *bitset.BitSet {
	bs := bitset.New(256)
	for i := 0; i < len(chars); i++ {
		bs.Set(uint(chars[i]))
	}

	return bs
}

func newByteClassRange(lo, hi byte) *bitset.BitSet {
	bs := bitset.New(256)
	for c := int(lo); c <= int(hi); c++ {
		bs.Set(uint(c))
	}

	return bs
}

func newByteClassUnion(sets ...*bitset.BitSet) *bitset.BitSet {
	bs := bitset.New(256)
	for _, s := range sets {
		bs.InPlaceUnion(s)
	}

	return bs
}

// Lexer tokenises an SMT-LIB2 byte stream.  The whole stream is read into
// src up front: a script is never too large to hold in memory, and keeping
// it addressable by byte offset is what lets Slice recover a term's literal
// surface syntax for get-value/get-assertions responses.  posTracker and the
// i cursor let a rule step back over bytes it has read: most lexical rules
// below read ahead by one byte past the token they are confirming, while
// scanNumberOrSymbol reads two (a '.' and the byte after it) and steps back
// over both when they do not continue a decimal.
type Lexer struct {
	src  []byte
	i    int
	pos  *posTracker
	file string

	// foldQuotedSymbols mirrors Options.QuoteEquivalence: when true (the
	// default), a quoted symbol's surrounding "|" bars are stripped so
	// "|x|" and "x" produce the same token Text and therefore the same
	// symbol table entry; when false the bars are kept in Text, so strict
	// SMT-LIB2's distinct-identifier rule falls out of plain string
	// inequality without the symbol table needing to know about quoting.
	foldQuotedSymbols bool

	readErr error
}

// NewLexer constructs a Lexer reading from r, attributing file to every
// Position it produces (used only for diagnostics).  A failure to fully
// read r is reported by the first Next call that reaches the unread tail.
func NewLexer(r io.Reader, file string) *Lexer {
	data, err := io.ReadAll(r)
	return &Lexer{src: data, pos: newPosTracker(), file: file, readErr: err, foldQuotedSymbols: true}
}

// SetQuoteEquivalence toggles whether a later-scanned "|x|" folds into the
// same token Text as "x" (see Options.QuoteEquivalence). The Driver calls
// this when a set-option command changes the option mid-session; it only
// affects symbols scanned after the call.
func (l *Lexer) SetQuoteEquivalence(v bool) {
	l.foldQuotedSymbols = v
}

// Slice returns the literal source text between two positions produced by
// this Lexer, from's offset inclusive to to's offset exclusive.
func (l *Lexer) Slice(from, to Position) string {
	if from.Offset < 0 || to.Offset > len(l.src) || from.Offset > to.Offset {
		return ""
	}

	return string(l.src[from.Offset:to.Offset])
}

func (l *Lexer) readByte() (byte, bool) {
	if l.i >= len(l.src) {
		return 0, false
	}

	b := l.src[l.i]
	l.i++
	l.pos.advance(b)

	return b, true
}

func (l *Lexer) unreadByte(b byte) {
	l.i--
	l.pos.retreat(b)
}

func (l *Lexer) errorf(pos Position, format string, args ...any) error {
	return &SyntaxError{Pos: pos, File: l.file, Message: fmt.Sprintf(format, args...)}
}

// skipAtmosphere consumes whitespace and ";"-to-end-of-line comments,
// leaving the reader positioned at the first byte of the next token (or at
// EOF).
func (l *Lexer) skipAtmosphere() error {
	for {
		b, ok := l.readByte()
		if !ok {
			return nil
		}

		switch {
		case classWhitespace.Test(uint(b)):
			continue
		case b == ';':
			for {
				c, ok := l.readByte()
				if !ok || c == '\n' {
					break
				}
			}

			continue
		default:
			l.unreadByte(b)
			return nil
		}
	}
}

// Next scans and returns the next token, or a TagEOF token at end of input.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipAtmosphere(); err != nil {
		return Token{}, err
	}

	start := l.pos.current()

	b, ok := l.readByte()
	if !ok {
		if l.readErr != nil {
			return Token{}, l.readErr
		}

		return Token{Kind: TagEOF, Pos: start}, nil
	}

	switch {
	case b == '(':
		return Token{Kind: TagLPar, Text: "(", Pos: start}, nil
	case b == ')':
		return Token{Kind: TagRPar, Text: ")", Pos: start}, nil
	case b == '"':
		return l.scanString(start)
	case b == '|':
		return l.scanQuotedSymbol(start)
	case b == '#':
		return l.scanHexOrBinary(start)
	case b == ':':
		return l.scanKeyword(start)
	case classDigit.Test(uint(b)):
		l.unreadByte(b)
		return l.scanNumberOrSymbol(start)
	case classSymbolStart.Test(uint(b)):
		l.unreadByte(b)
		return l.scanSimpleSymbol(start)
	default:
		return Token{}, l.errorf(start, "unexpected character %q", b)
	}
}

// scanString scans a "..." literal; a doubled quote ("" inside the literal)
// is an escaped quote, per the SMT-LIB2 String lexical class.
func (l *Lexer) scanString(start Position) (Token, error) {
	var sb strings.Builder

	for {
		b, ok := l.readByte()
		if !ok {
			return Token{}, l.errorf(start, "unterminated string literal")
		}

		if b == '"' {
			next, ok := l.readByte()
			if ok && next == '"' {
				sb.WriteByte('"')
				continue
			}

			if ok {
				l.unreadByte(next)
			}

			return Token{Kind: TagString, Text: sb.String(), Pos: start}, nil
		}

		sb.WriteByte(b)
	}
}

// scanQuotedSymbol scans a "|...|" quoted symbol, which may contain any byte
// other than "|" or backslash.
func (l *Lexer) scanQuotedSymbol(start Position) (Token, error) {
	var sb strings.Builder

	if !l.foldQuotedSymbols {
		sb.WriteByte('|')
	}

	for {
		b, ok := l.readByte()
		if !ok {
			return Token{}, l.errorf(start, "unterminated quoted symbol")
		}

		if b == '|' {
			if !l.foldQuotedSymbols {
				sb.WriteByte('|')
			}

			return Token{Kind: TagSymbol, Text: sb.String(), Pos: start}, nil
		}

		sb.WriteByte(b)
	}
}

// scanHexOrBinary scans "#x..." and "#b..." constant literals.
func (l *Lexer) scanHexOrBinary(start Position) (Token, error) {
	b, ok := l.readByte()
	if !ok {
		return Token{}, l.errorf(start, "unterminated '#' literal")
	}

	switch b {
	case 'x':
		var sb strings.Builder

		for {
			c, ok := l.readByte()
			if !ok || !classHexDigit.Test(uint(c)) {
				if ok {
					l.unreadByte(c)
				}

				break
			}

			sb.WriteByte(c)
		}

		if sb.Len() == 0 {
			return Token{}, l.errorf(start, "empty hexadecimal literal")
		}

		return Token{Kind: TagHexadecimal, Text: sb.String(), Pos: start}, nil
	case 'b':
		var sb strings.Builder

		for {
			c, ok := l.readByte()
			if !ok || (c != '0' && c != '1') {
				if ok {
					l.unreadByte(c)
				}

				break
			}

			sb.WriteByte(c)
		}

		if sb.Len() == 0 {
			return Token{}, l.errorf(start, "empty binary literal")
		}

		return Token{Kind: TagBinary, Text: sb.String(), Pos: start}, nil
	default:
		return Token{}, l.errorf(start, "expected 'x' or 'b' after '#'")
	}
}

// scanKeyword scans a ":name" keyword token.
func (l *Lexer) scanKeyword(start Position) (Token, error) {
	var sb strings.Builder

	sb.WriteByte(':')

	for {
		c, ok := l.readByte()
		if !ok || !classSymbolCont.Test(uint(c)) {
			if ok {
				l.unreadByte(c)
			}

			break
		}

		sb.WriteByte(c)
	}

	text := sb.String()
	if kind, ok := keywordTable[text]; ok {
		return Token{Kind: kind, Text: text, Pos: start}, nil
	}

	return Token{Kind: TagKwOther, Text: text, Pos: start}, nil
}

// scanNumberOrSymbol scans a numeral ("123"), a decimal ("1.5"), or the
// compact bit-vector constant symbol "bvK"; the latter is only produced as a
// TagSymbol and is re-interpreted contextually by the parser, since "bv123"
// is only meaningful inside "(_ bv123 n)".
func (l *Lexer) scanNumberOrSymbol(start Position) (Token, error) {
	var sb strings.Builder

	for {
		c, ok := l.readByte()
		if !ok || !classDigit.Test(uint(c)) {
			if ok {
				l.unreadByte(c)
			}

			break
		}

		sb.WriteByte(c)
	}

	// Look ahead for a decimal point followed by at least one digit.
	dot, ok := l.readByte()
	if ok && dot == '.' {
		next, ok2 := l.readByte()
		if ok2 && classDigit.Test(uint(next)) {
			sb.WriteByte('.')
			sb.WriteByte(next)

			for {
				c, ok3 := l.readByte()
				if !ok3 || !classDigit.Test(uint(c)) {
					if ok3 {
						l.unreadByte(c)
					}

					break
				}

				sb.WriteByte(c)
			}

			return Token{Kind: TagDecimal, Text: sb.String(), Pos: start}, nil
		}

		if ok2 {
			l.unreadByte(next)
		}

		l.unreadByte(dot)
	} else if ok {
		l.unreadByte(dot)
	}

	return Token{Kind: TagDecimal, Text: sb.String(), Pos: start}, nil
}

// scanSimpleSymbol scans an unquoted symbol, reserved word, command name,
// logic name or theory operator name: all share one lexical class and are
// distinguished only by a symbol-table lookup once the full token text is
// known.
func (l *Lexer) scanSimpleSymbol(start Position) (Token, error) {
	var sb strings.Builder

	for {
		c, ok := l.readByte()
		if !ok || !classSymbolCont.Test(uint(c)) {
			if ok {
				l.unreadByte(c)
			}

			break
		}

		sb.WriteByte(c)
	}

	text := sb.String()
	if kind, ok := keywordTable[text]; ok {
		return Token{Kind: kind, Text: text, Pos: start}, nil
	}

	return Token{Kind: TagSymbol, Text: text, Pos: start}, nil
}
