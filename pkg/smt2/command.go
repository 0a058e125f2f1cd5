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
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Driver runs the top-level command loop: it repeatedly lexes one command
// s-expression, dispatches it, and writes the resulting response through an
// Emitter, until the input is exhausted or an "exit" command is seen.
type Driver struct {
	parser  *Parser
	syms    *SymbolTable
	sorts   *SortTable
	backend Backend
	opts    *Options
	emit    *Emitter
	log     *logrus.Entry

	features        Features
	pushDepth       int
	assertions      []assertionRecord
	lastResult      CheckResult
	lastAssumptions []string
	sat             bool
	exited     bool
}

type assertionRecord struct {
	term  TermID
	text  string
	name  string
	depth int
}

// NewDriver constructs a Driver reading commands from r and writing
// responses to w.  newBackend receives the SortTable the parser itself
// uses, so a Backend's returned Sorts remain pointer-identical to the
// parser's: two Sort tables hash-consing the same shape independently would
// otherwise produce equal-looking but distinct pointers.  log may be nil, in
// which case a disabled logger is used.
func NewDriver(r io.Reader, w io.Writer, file string, newBackend func(*SortTable) Backend, log *logrus.Entry) *Driver {
	syms := NewSymbolTable()
	sorts := NewSortTable()
	opts := NewOptions()
	lexer := NewLexer(r, file)
	backend := newBackend(sorts)
	parser := NewParser(lexer, syms, sorts, backend, opts)

	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}

	return &Driver{
		parser:  parser,
		syms:    syms,
		sorts:   sorts,
		backend: backend,
		opts:    opts,
		emit:    NewEmitter(w, opts),
		log:     log,
	}
}

// Run processes commands until EOF or "exit", returning the first error
// encountered while reading tokens. It also ends with the error of a
// set-logic command whose argument is neither a symbol nor a logic name, or
// of a declare-sort, define-sort, declare-fun, declare-const or define-fun
// command whose name is not a symbol. Every other command failure is
// reported through the Emitter and does not stop the loop, per SMT-LIB2's
// convention of one response per command regardless of success.
func (d *Driver) Run() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	for !d.exited {
		if d.parser.tok.IsEOF() {
			return nil
		}

		if d.parser.tok.Kind != TagLPar {
			d.emit.Error(d.parser.fail(d.parser.tok.Pos, "expected '(' to start a command"))

			if err := d.parser.advance(); err != nil {
				return err
			}

			continue
		}

		if err := d.parser.advance(); err != nil {
			return err
		}

		if err := d.dispatch(); err != nil {
			return err
		}
	}

	return nil
}

func (d *Driver) dispatch() error {
	cmdTok := d.parser.tok
	d.log.Debugf("command %s at %s", cmdTok.Text, cmdTok.Pos)

	switch cmdTok.Kind {
	case TagSetLogic:
		return d.cmdSetLogic()
	case TagSetOption:
		return d.cmdSetOption()
	case TagSetInfo:
		return d.cmdSetInfo()
	case TagDeclareSort:
		return d.cmdDeclareSort()
	case TagDefineSort:
		return d.cmdDefineSort()
	case TagDeclareFun:
		return d.cmdDeclareFun()
	case TagDeclareConst:
		return d.cmdDeclareConst()
	case TagDefineFun:
		return d.cmdDefineFun()
	case TagPush:
		return d.cmdPush()
	case TagPop:
		return d.cmdPop()
	case TagAssert:
		return d.cmdAssert()
	case TagCheckSat:
		return d.cmdCheckSat()
	case TagCheckSatAssuming:
		return d.cmdCheckSatAssuming()
	case TagGetValue:
		return d.cmdGetValue()
	case TagGetModel:
		return d.cmdGetModel()
	case TagGetAssertions:
		return d.cmdGetAssertions()
	case TagGetUnsatCore:
		return d.cmdGetUnsatCore()
	case TagGetUnsatAssumptions:
		return d.cmdGetUnsatAssumptions()
	case TagGetInfo:
		return d.cmdGetInfo()
	case TagGetOption:
		return d.cmdGetOption()
	case TagExit:
		return d.cmdExit()
	default:
		d.emit.Error(d.parser.fail(cmdTok.Pos, "unsupported command %q", cmdTok.Text))
		return d.skipToCloseParen()
	}
}

// skipToCloseParen discards tokens until the current command's closing ')',
// tracking nested parens, so a malformed command does not desynchronise the
// driver from the rest of the script.
func (d *Driver) skipToCloseParen() error {
	depth := 1

	for depth > 0 {
		if err := d.parser.advance(); err != nil {
			return err
		}

		if d.parser.tok.IsEOF() {
			return nil
		}

		switch d.parser.tok.Kind {
		case TagLPar:
			depth++
		case TagRPar:
			depth--
		}
	}

	return d.parser.advance()
}

func (d *Driver) expectSymbol() (string, error) {
	if err := d.parser.advance(); err != nil {
		return "", err
	}

	if d.parser.tok.Kind != TagSymbol {
		return "", d.parser.fail(d.parser.tok.Pos, "expected a symbol")
	}

	return d.parser.tok.Text, nil
}

func (d *Driver) expectCloseParen() error {
	if d.parser.tok.Kind != TagRPar {
		return d.parser.fail(d.parser.tok.Pos, "expected ')'")
	}

	return d.parser.advance()
}

func (d *Driver) cmdSetLogic() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	name := d.parser.tok.Text
	if d.parser.tok.Kind != TagSymbol && d.parser.tok.Kind.ClassOf() != ClassLogic {
		return d.parser.fail(d.parser.tok.Pos, "expected a logic name")
	}

	entry := d.syms.Lookup(name)
	tag := TagLogicOther

	if entry != nil && entry.Tag.ClassOf() == ClassLogic {
		tag = entry.Tag
	}

	d.features = FeaturesFor(tag)

	if err := d.parser.advance(); err != nil {
		return err
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	d.emit.Success()

	return nil
}

func (d *Driver) cmdSetOption() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	kwTok := d.parser.tok
	if kwTok.Kind.ClassOf() != ClassKeyword {
		d.emit.Error(d.parser.fail(kwTok.Pos, "expected a keyword"))
		return d.skipToCloseParen()
	}

	if err := d.parser.advance(); err != nil {
		return err
	}

	value := d.parser.tok.Text

	if err := d.parser.advance(); err != nil {
		return err
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	d.opts.Set(kwTok.Kind, kwTok.Text, value)

	if kwTok.Kind == TagKwQuoteEquivalence {
		d.parser.lexer.SetQuoteEquivalence(d.opts.QuoteEquivalence)
	}

	d.emit.Success()

	return nil
}

func (d *Driver) cmdSetInfo() error {
	return d.skipCommandAcknowledged()
}

// skipCommandAcknowledged discards the rest of a command this front-end
// accepts syntactically but does not otherwise act on (set-info), replying
// success.
func (d *Driver) skipCommandAcknowledged() error {
	if err := d.skipToCloseParen(); err != nil {
		return err
	}

	d.emit.Success()

	return nil
}

func (d *Driver) cmdDeclareSort() error {
	name, err := d.expectSymbol()
	if err != nil {
		return err
	}

	namePos := d.parser.tok.Pos

	if err := d.parser.advance(); err != nil {
		return err
	}

	if d.parser.tok.Kind != TagDecimal {
		d.emit.Error(d.parser.fail(d.parser.tok.Pos, "expected an arity"))
		return d.skipToCloseParen()
	}

	if d.parser.tok.Text != "0" {
		d.emit.Error(d.parser.fail(d.parser.tok.Pos, "only arity-0 sorts are supported"))
		return d.skipToCloseParen()
	}

	if err := d.parser.advance(); err != nil {
		return err
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	if d.syms.DeclaredAtCurrentScope(name) {
		d.emit.Error(d.parser.fail(namePos, "symbol %q is already declared", name))
		return nil
	}

	d.syms.Declare(name, TagSymbol, nil, 0)
	d.backend.DeclareSort(name, 0)
	d.emit.Success()

	return nil
}

func (d *Driver) cmdDefineSort() error {
	name, err := d.expectSymbol()
	if err != nil {
		return err
	}

	if err := d.parser.advance(); err != nil {
		return err
	}

	if err := d.expectCloseParen(); err != nil { // empty parameter list "()"
		d.emit.Error(err)
		return nil
	}

	target, err := d.parser.ParseSort()
	if err != nil {
		d.emit.Error(err)
		return d.skipToCloseParen()
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	d.sorts.DefineAlias(name, target)
	d.emit.Success()

	return nil
}

func (d *Driver) cmdDeclareFun() error {
	name, err := d.expectSymbol()
	if err != nil {
		return err
	}

	namePos := d.parser.tok.Pos

	if err := d.parser.advance(); err != nil {
		return err
	}

	domain, err := d.parseSortList()
	if err != nil {
		d.emit.Error(err)
		return d.skipToCloseParen()
	}

	rng, err := d.parser.ParseSort()
	if err != nil {
		d.emit.Error(err)
		return d.skipToCloseParen()
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	if d.syms.DeclaredAtCurrentScope(name) {
		d.emit.Error(d.parser.fail(namePos, "symbol %q is already declared", name))
		return nil
	}

	d.syms.Declare(name, TagSymbol, rng, len(domain))
	d.backend.DeclareFun(name, domain, rng)
	d.emit.Success()

	return nil
}

func (d *Driver) cmdDeclareConst() error {
	name, err := d.expectSymbol()
	if err != nil {
		return err
	}

	namePos := d.parser.tok.Pos

	if err := d.parser.advance(); err != nil {
		return err
	}

	rng, err := d.parser.ParseSort()
	if err != nil {
		d.emit.Error(err)
		return d.skipToCloseParen()
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	if d.syms.DeclaredAtCurrentScope(name) {
		d.emit.Error(d.parser.fail(namePos, "symbol %q is already declared", name))
		return nil
	}

	d.syms.Declare(name, TagSymbol, rng, 0)
	d.backend.DeclareFun(name, nil, rng)
	d.emit.Success()

	return nil
}

// parseSortList parses a "(S1 S2 ...)" sort list, leaving the lookahead
// positioned just past its closing ')'.
func (d *Driver) parseSortList() ([]*Sort, error) {
	if d.parser.tok.Kind != TagLPar {
		return nil, d.parser.fail(d.parser.tok.Pos, "expected '(' opening a sort list")
	}

	if err := d.parser.advance(); err != nil {
		return nil, err
	}

	var sorts []*Sort

	for d.parser.tok.Kind != TagRPar {
		s, err := d.parser.ParseSort()
		if err != nil {
			return nil, err
		}

		sorts = append(sorts, s)
	}

	return sorts, d.parser.advance()
}

func (d *Driver) cmdDefineFun() error {
	name, err := d.expectSymbol()
	if err != nil {
		return err
	}

	if err := d.parser.advance(); err != nil {
		return err
	}

	if d.parser.tok.Kind != TagLPar {
		d.emit.Error(d.parser.fail(d.parser.tok.Pos, "expected '(' opening parameter list"))
		return d.skipToCloseParen()
	}

	if err := d.parser.advance(); err != nil {
		return err
	}

	var argNames []string

	var argSorts []*Sort

	for d.parser.tok.Kind == TagLPar {
		if err := d.parser.advance(); err != nil {
			return err
		}

		if d.parser.tok.Kind != TagSymbol {
			d.emit.Error(d.parser.fail(d.parser.tok.Pos, "expected a parameter name"))
			return d.skipToCloseParen()
		}

		argName := d.parser.tok.Text

		if err := d.parser.advance(); err != nil {
			return err
		}

		argSort, err := d.parser.ParseSort()
		if err != nil {
			d.emit.Error(err)
			return d.skipToCloseParen()
		}

		if err := d.expectCloseParen(); err != nil {
			d.emit.Error(err)
			return nil
		}

		argNames = append(argNames, argName)
		argSorts = append(argSorts, argSort)
	}

	if err := d.expectCloseParen(); err != nil { // close parameter list
		d.emit.Error(err)
		return nil
	}

	rng, err := d.parser.ParseSort()
	if err != nil {
		d.emit.Error(err)
		return d.skipToCloseParen()
	}

	d.syms.PushScope()

	for i, argName := range argNames {
		d.syms.Declare(argName, TagSymbol, argSorts[i], 0)
	}

	body, _, err := d.parser.ParseTerm()

	d.syms.PopScope()

	if err != nil {
		d.emit.Error(err)
		return d.skipToCloseParen()
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	if err := d.backend.DefineFun(name, argNames, argSorts, rng, body); err != nil {
		d.emit.Error(d.parser.fail(cmdPos(d.parser), "%s", err.Error()))
		return nil
	}

	d.syms.Declare(name, TagSymbol, rng, len(argNames))
	d.emit.Success()

	return nil
}

func cmdPos(p *Parser) Position { return p.tok.Pos }

func (d *Driver) cmdPush() error {
	n, err := d.parseOptionalCount(1)
	if err != nil {
		d.emit.Error(err)
		return d.skipToCloseParen()
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	for i := 0; i < n; i++ {
		d.syms.PushScope()
	}

	d.pushDepth += n
	d.backend.Push(n)
	d.emit.Success()

	return nil
}

func (d *Driver) cmdPop() error {
	n, err := d.parseOptionalCount(1)
	if err != nil {
		d.emit.Error(err)
		return d.skipToCloseParen()
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	if n > d.pushDepth {
		d.emit.Error(d.parser.fail(cmdPos(d.parser), "pop %d exceeds current push depth %d", n, d.pushDepth))
		return nil
	}

	for i := 0; i < n; i++ {
		d.syms.PopScope()
	}

	d.pushDepth -= n

	if err := d.backend.Pop(n); err != nil {
		d.emit.Error(d.parser.fail(cmdPos(d.parser), "%s", err.Error()))
		return nil
	}

	newAssertions := d.assertions[:0]

	for _, a := range d.assertions {
		if a.depth <= d.pushDepth {
			newAssertions = append(newAssertions, a)
		}
	}

	d.assertions = newAssertions
	d.emit.Success()

	return nil
}

// parseOptionalCount parses a single decimal numeral argument for push/pop,
// defaulting to def when none is given (push/pop with no argument means 1).
func (d *Driver) parseOptionalCount(def int) (int, error) {
	if err := d.parser.advance(); err != nil {
		return 0, err
	}

	if d.parser.tok.Kind != TagDecimal {
		return def, nil
	}

	n := 0
	for _, c := range d.parser.tok.Text {
		n = n*10 + int(c-'0')
	}

	if err := d.parser.advance(); err != nil {
		return 0, err
	}

	return n, nil
}

func (d *Driver) cmdAssert() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	startPos := d.parser.tok.Pos

	term, sort, err := d.parser.ParseTerm()
	if err != nil {
		d.emit.Error(err)
		return d.skipToCloseParen()
	}

	text := d.sourceText(startPos)

	if sort != d.sorts.Bool() {
		d.emit.Error(d.parser.fail(cmdPos(d.parser), "assert requires a Bool term"))
		return d.skipToCloseParen()
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	d.backend.Assert(term)
	d.assertions = append(d.assertions, assertionRecord{term: term, text: text, depth: d.pushDepth})
	d.emit.Success()

	return nil
}

// sourceText recovers the literal surface syntax of the term just parsed,
// starting at startPos and ending just before the parser's current
// lookahead token (ParseTerm always leaves the lookahead on the token
// following the term it parsed).
func (d *Driver) sourceText(startPos Position) string {
	return strings.TrimSpace(d.parser.lexer.Slice(startPos, d.parser.tok.Pos))
}

func (d *Driver) cmdCheckSat() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	d.lastResult = d.backend.CheckSat(nil)
	d.sat = d.lastResult == Sat
	d.lastAssumptions = nil
	d.emit.CheckSatResult(d.lastResult)

	return nil
}

func (d *Driver) cmdCheckSatAssuming() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	if d.parser.tok.Kind != TagLPar {
		d.emit.Error(d.parser.fail(d.parser.tok.Pos, "expected '(' opening assumption list"))
		return d.skipToCloseParen()
	}

	if err := d.parser.advance(); err != nil {
		return err
	}

	var (
		assumptions []TermID
		texts       []string
	)

	for d.parser.tok.Kind != TagRPar {
		startPos := d.parser.tok.Pos

		term, _, err := d.parser.ParseTerm()
		if err != nil {
			d.emit.Error(err)
			return d.skipToCloseParen()
		}

		assumptions = append(assumptions, term)
		texts = append(texts, d.sourceText(startPos))
	}

	if err := d.parser.advance(); err != nil {
		return err
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	d.lastResult = d.backend.CheckSat(assumptions)
	d.sat = d.lastResult == Sat
	d.lastAssumptions = texts
	d.emit.CheckSatResult(d.lastResult)

	return nil
}

func (d *Driver) cmdGetValue() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	if !d.sat {
		d.emit.Error(d.parser.fail(cmdPos(d.parser), "get-value requires a preceding sat check-sat"))
		return d.skipToCloseParen()
	}

	if d.parser.tok.Kind != TagLPar {
		d.emit.Error(d.parser.fail(d.parser.tok.Pos, "expected '(' opening term list"))
		return d.skipToCloseParen()
	}

	if err := d.parser.advance(); err != nil {
		return err
	}

	var pairs []ValuePair

	for d.parser.tok.Kind != TagRPar {
		startPos := d.parser.tok.Pos

		term, _, err := d.parser.ParseTerm()
		if err != nil {
			d.emit.Error(err)
			return d.skipToCloseParen()
		}

		text := d.sourceText(startPos)

		value, err := d.backend.Value(term)
		if err != nil {
			d.emit.Error(d.parser.fail(cmdPos(d.parser), "%s", err.Error()))
			return d.skipToCloseParen()
		}

		pairs = append(pairs, ValuePair{Term: text, Value: value})
	}

	if err := d.parser.advance(); err != nil {
		return err
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	d.emit.GetValueResult(pairs)

	return nil
}

func (d *Driver) cmdGetModel() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	if !d.sat {
		d.emit.Error(d.parser.fail(cmdPos(d.parser), "get-model requires a preceding sat check-sat"))
		return d.skipToCloseParen()
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	var pairs []ValuePair

	for _, a := range d.assertions {
		v, err := d.backend.Value(a.term)
		if err == nil {
			pairs = append(pairs, ValuePair{Term: a.text, Value: v})
		}
	}

	d.emit.Model(pairs)

	return nil
}

func (d *Driver) cmdGetAssertions() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	texts := make([]string, len(d.assertions))
	for i, a := range d.assertions {
		texts[i] = a.text
	}

	d.emit.Assertions(texts)

	return nil
}

func (d *Driver) cmdGetUnsatCore() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	if d.lastResult != Unsat {
		d.emit.Error(d.parser.fail(cmdPos(d.parser), "get-unsat-core requires a preceding unsat check-sat"))
		return d.skipToCloseParen()
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	d.emit.UnsatCore(d.backend.UnsatCore())

	return nil
}

// cmdGetUnsatAssumptions answers get-unsat-assumptions with the literal
// surface syntax of every assumption passed to the most recent
// check-sat-assuming, conservatively (this front-end does not track which
// subset the Backend actually used), matching get-unsat-core's own
// conservative "return everything" stance.
func (d *Driver) cmdGetUnsatAssumptions() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	if d.lastResult != Unsat {
		d.emit.Error(d.parser.fail(cmdPos(d.parser), "get-unsat-assumptions requires a preceding unsat check-sat-assuming"))
		return d.skipToCloseParen()
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	d.emit.Assertions(d.lastAssumptions)

	return nil
}

func (d *Driver) cmdGetInfo() error {
	return d.skipCommandAcknowledged()
}

func (d *Driver) cmdGetOption() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	kwTok := d.parser.tok

	if err := d.parser.advance(); err != nil {
		return err
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	value, ok := d.opts.Get(kwTok.Kind, kwTok.Text)
	if !ok {
		d.emit.Error(d.parser.fail(kwTok.Pos, "unknown option %q", kwTok.Text))
		return nil
	}

	d.emit.OptionValue(value)

	return nil
}

func (d *Driver) cmdExit() error {
	if err := d.parser.advance(); err != nil {
		return err
	}

	if err := d.expectCloseParen(); err != nil {
		d.emit.Error(err)
		return nil
	}

	d.emit.Success()
	d.exited = true

	return nil
}
