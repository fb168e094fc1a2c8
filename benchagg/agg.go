// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchagg groups benchmark records by case and keeps the
// latest measurement of each (thread count, method) pair.
//
// Benchmark logs are append-only, so a configuration that was run more
// than once appears on several lines. Only the last of them counts.
// An Aggregator enforces this by comparing the read position of
// records (benchlog.Record.Seq), so the order in which records are
// added does not matter.
package benchagg

import (
	"github.com/cs4532/listbench/benchcase"
	"github.com/cs4532/listbench/benchlog"
)

// Methods are the three implementations of the lab, in display order.
var Methods = []string{"Serial", "Mutex", "RWLock"}

// An Aggregator collects records into per-case datasets.
type Aggregator struct {
	cases   []benchcase.Case
	matcher benchcase.Matcher
	sets    map[string]map[dedupKey]*benchlog.Record
}

type dedupKey struct {
	threads int
	method  string
}

// NewAggregator returns an Aggregator for cases. If m is nil, records
// are matched with benchcase.Exact(cases).
func NewAggregator(cases []benchcase.Case, m benchcase.Matcher) *Aggregator {
	if m == nil {
		m = benchcase.Exact(cases)
	}
	a := &Aggregator{
		cases:   append([]benchcase.Case(nil), cases...),
		matcher: m,
		sets:    make(map[string]map[dedupKey]*benchlog.Record),
	}
	for _, c := range cases {
		a.sets[c.Name] = make(map[dedupKey]*benchlog.Record)
	}
	return a
}

// Add adds rec to the dataset of its case and reports whether rec is
// now part of it. Records that match no case, or have no thread
// count, are dropped. If the dataset already holds a record for the
// same thread count and method, the one with the larger Seq is kept;
// on a tie the record already present wins.
func (a *Aggregator) Add(rec *benchlog.Record) bool {
	if rec == nil {
		return false
	}
	threads, ok := rec.ThreadCount()
	if !ok {
		return false
	}
	c, ok := a.matcher.Match(rec)
	if !ok {
		return false
	}
	set := a.sets[c.Name]
	if set == nil {
		// The matcher knows a case we were not told about.
		set = make(map[dedupKey]*benchlog.Record)
		a.sets[c.Name] = set
		a.cases = append(a.cases, c)
	}
	k := dedupKey{threads, rec.Method}
	if have, ok := set[k]; ok && have.Seq() >= rec.Seq() {
		return false
	}
	set[k] = rec
	return true
}

// AddReverse adds recs from last to first. Since Add compares
// positions, this produces the same datasets as adding them in order.
func (a *Aggregator) AddReverse(recs []*benchlog.Record) {
	for i := len(recs) - 1; i >= 0; i-- {
		a.Add(recs[i])
	}
}

// Result returns a snapshot of the datasets. Later calls to Add do not
// affect it.
func (a *Aggregator) Result() *Result {
	res := &Result{
		cases: append([]benchcase.Case(nil), a.cases...),
		data:  make(map[string][]*benchlog.Record, len(a.sets)),
	}
	for name, set := range a.sets {
		recs := make([]*benchlog.Record, 0, len(set))
		for _, rec := range set {
			recs = append(recs, rec.Clone())
		}
		sortRecords(recs)
		res.data[name] = recs
	}
	return res
}
