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
	"strings"
	"testing"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()

	lexer := NewLexer(strings.NewReader(src), "<test>")

	var toks []Token

	for {
		tok, err := lexer.Next()
		if err != nil {
			t.Fatalf("Next: %s", err)
		}

		toks = append(toks, tok)

		if tok.Kind == TagEOF {
			return toks
		}
	}
}

func TestLexerPunctuationAndSymbol(t *testing.T) {
	toks := lexAll(t, "(foo)")

	wantKinds := []TokenKind{TagLPar, TagSymbol, TagRPar, TagEOF}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(wantKinds))
	}

	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: Kind = %v, want %v", i, toks[i].Kind, k)
		}
	}

	if toks[1].Text != "foo" {
		t.Errorf("Text = %q, want foo", toks[1].Text)
	}
}

func TestLexerSkipsCommentsAndWhitespace(t *testing.T) {
	toks := lexAll(t, "; a comment\n  (bar) ; trailing\n")

	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4", len(toks))
	}

	if toks[1].Text != "bar" {
		t.Errorf("Text = %q, want bar", toks[1].Text)
	}
}

func TestLexerHexAndBinaryLiterals(t *testing.T) {
	toks := lexAll(t, "#xFF #b101")

	if toks[0].Kind != TagHexadecimal || toks[0].Text != "FF" {
		t.Errorf("token 0 = %+v", toks[0])
	}

	if toks[1].Kind != TagBinary || toks[1].Text != "101" {
		t.Errorf("token 1 = %+v", toks[1])
	}
}

func TestLexerStringEscaping(t *testing.T) {
	toks := lexAll(t, `"a ""quoted"" string"`)

	if toks[0].Kind != TagString {
		t.Fatalf("Kind = %v, want TagString", toks[0].Kind)
	}

	want := `a "quoted" string`
	if toks[0].Text != want {
		t.Fatalf("Text = %q, want %q", toks[0].Text, want)
	}
}

func TestLexerQuotedSymbol(t *testing.T) {
	toks := lexAll(t, "|hello world|")

	if toks[0].Kind != TagSymbol {
		t.Fatalf("Kind = %v, want TagSymbol", toks[0].Kind)
	}

	if toks[0].Text != "hello world" {
		t.Fatalf("Text = %q, want %q", toks[0].Text, "hello world")
	}
}

func TestLexerDecimalAndNumeral(t *testing.T) {
	toks := lexAll(t, "123 1.5")

	if toks[0].Kind != TagDecimal || toks[0].Text != "123" {
		t.Errorf("token 0 = %+v", toks[0])
	}

	if toks[1].Kind != TagDecimal || toks[1].Text != "1.5" {
		t.Errorf("token 1 = %+v", toks[1])
	}
}

func TestLexerKeyword(t *testing.T) {
	toks := lexAll(t, ":print-success")

	if toks[0].Kind != TagKwPrintSuccess {
		t.Fatalf("Kind = %v, want TagKwPrintSuccess", toks[0].Kind)
	}
}

func TestLexerUnterminatedStringErrors(t *testing.T) {
	lexer := NewLexer(strings.NewReader(`"unterminated`), "<test>")

	if _, err := lexer.Next(); err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestLexerSliceRecoversSourceText(t *testing.T) {
	src := "(assert (= x 1))"
	lexer := NewLexer(strings.NewReader(src), "<test>")

	var start, end Position

	for i := 0; ; i++ {
		tok, err := lexer.Next()
		if err != nil {
			t.Fatalf("Next: %s", err)
		}

		if i == 2 {
			start = tok.Pos
		}

		if tok.Kind == TagEOF {
			end = tok.Pos
			break
		}
	}

	got := lexer.Slice(start, end)
	want := "(= x 1))"

	if got != want {
		t.Fatalf("Slice = %q, want %q", got, want)
	}
}
