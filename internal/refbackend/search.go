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
package refbackend

import "github.com/apach301/bitwuzla/pkg/smt2"

// maxEnumerableWidth bounds the width of a single bit-vector variable the
// search will enumerate; beyond it, even one variable's domain alone would
// dwarf enumerationCap.
const maxEnumerableWidth = 20

type varInfo struct {
	name string
	sort *smt2.Sort
}

// collectVars returns every declared 0-ary constant, the full set of
// variables a brute-force assignment must cover. It ignores which of them
// actually occur in goals: a declared-but-unused constant of an
// unenumerable sort still forces Unknown, matching the conservative spirit
// of a reference backend that would rather decline an answer than risk a
// wrong one.
func (b *Backend) collectVars() []varInfo {
	vars := make([]varInfo, 0, len(b.consts))

	for name, id := range b.consts {
		t := b.get(id)
		if t.kind != kVar {
			// A zero-argument define-fun alias: name resolves to a fixed
			// term, not a free variable to assign.
			continue
		}

		vars = append(vars, varInfo{name: name, sort: t.sort})
	}

	return vars
}

// search brute-forces an assignment to vars that satisfies every term in
// goals (each must evaluate to Bool true), or proves none exists. It is
// sound but very incomplete: any variable of an unenumerable sort, a
// domain whose size exceeds enumerationCap, or an evaluation error (an
// uninterpreted function application, an array operation, or a quantified
// formula, none of which this backend models) all fall back to Unknown
// rather than a wrong Sat or Unsat.
func (b *Backend) search(goals []smt2.TermID, vars []varInfo) (smt2.CheckResult, map[string]value) {
	domains := make([]int, len(vars))
	total := 1

	for i, v := range vars {
		switch {
		case v.sort.Kind == smt2.SortBool:
			domains[i] = 2
		case v.sort.IsBitVec() && v.sort.Width <= maxEnumerableWidth:
			domains[i] = 1 << uint(v.sort.Width)
		default:
			return smt2.Unknown, nil
		}

		total *= domains[i]
		if total > enumerationCap {
			return smt2.Unknown, nil
		}
	}

	for combo := 0; combo < total; combo++ {
		env := make(map[string]value, len(vars))
		remaining := combo

		for i, v := range vars {
			digit := remaining % domains[i]
			remaining /= domains[i]

			if v.sort.Kind == smt2.SortBool {
				env[v.name] = value{sort: v.sort, b: digit == 1}
				continue
			}

			env[v.name] = value{sort: v.sort, bv: bvFromBits(uint64(digit), v.sort.Width)}
		}

		sat, err := b.allTrue(goals, env)
		if err != nil {
			return smt2.Unknown, nil
		}

		if sat {
			return smt2.Sat, env
		}
	}

	return smt2.Unsat, nil
}

func (b *Backend) allTrue(goals []smt2.TermID, env map[string]value) (bool, error) {
	for _, g := range goals {
		res, err := b.eval(g, env)
		if err != nil {
			return false, err
		}

		if res.sort == nil || res.sort.Kind != smt2.SortBool || !res.b {
			return false, nil
		}
	}

	return true, nil
}
