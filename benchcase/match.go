// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcase

import "github.com/cs4532/listbench/benchlog"

// A Matcher finds the case a record belongs to.
type Matcher interface {
	// Match returns the case of rec. It reports false if rec
	// matches no case or lacks any of the fields needed to decide.
	Match(rec *benchlog.Record) (Case, bool)
}

// Exact matches records whose operation mix is exactly equal to a
// case's. Cases are tried in order and the first match wins.
//
// The benchmarks write fractions followed by a literal "%"
// ("0.990000%"), but a mix may also be written as true percentages
// ("99.000000%"). If all three fields carry a "%" and no case matches
// them as written, they are divided by 100 and compared again.
// Either way the comparison is exact: there is no tolerance, so 0.99
// and 0.9900001 are different mixes.
type Exact []Case

var _ Matcher = Exact(nil)

func (e Exact) Match(rec *benchlog.Record) (Case, bool) {
	m, i, d, percent, ok := mix(rec)
	if !ok {
		return Case{}, false
	}
	if c, ok := e.find(m, i, d); ok {
		return c, true
	}
	if percent {
		return e.find(m/100, i/100, d/100)
	}
	return Case{}, false
}

func (e Exact) find(m, i, d float64) (Case, bool) {
	for _, c := range e {
		if c.equal(m, i, d) {
			return c, true
		}
	}
	return Case{}, false
}

// mix extracts the operation mix of rec. percent reports whether all
// three values were written with a "%" suffix.
func mix(rec *benchlog.Record) (m, i, d float64, percent, ok bool) {
	percent = true
	var xs [3]float64
	for j, key := range []string{benchlog.KeyMMember, benchlog.KeyMInsert, benchlog.KeyMDelete} {
		v, found := rec.Get(key)
		if !found {
			return 0, 0, 0, false, false
		}
		x, isNum := v.AsFloat()
		if !isNum {
			return 0, 0, 0, false, false
		}
		xs[j] = x
		percent = percent && v.Percent
	}
	return xs[0], xs[1], xs[2], percent, true
}
