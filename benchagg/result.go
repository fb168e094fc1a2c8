// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"sort"

	"github.com/cs4532/listbench/benchcase"
	"github.com/cs4532/listbench/benchlog"
)

// A Result holds the deduplicated datasets of every case.
//
// A Result is immutable. The records it returns are shared and must
// not be modified.
type Result struct {
	cases   []benchcase.Case
	data    map[string][]*benchlog.Record
	missing []*benchlog.MissingInputError
}

// Cases returns the cases of r in order, including cases with no
// records.
func (r *Result) Cases() []benchcase.Case {
	return append([]benchcase.Case(nil), r.cases...)
}

// Dataset returns the records of the named case, ordered by method and
// then by thread count.
func (r *Result) Dataset(name string) []*benchlog.Record {
	return append([]*benchlog.Record(nil), r.data[name]...)
}

// ThreadCounts returns the distinct thread counts of the named case in
// ascending order.
func (r *Result) ThreadCounts(name string) []int {
	seen := make(map[int]bool)
	var tcs []int
	for _, rec := range r.data[name] {
		tc, _ := rec.ThreadCount()
		if !seen[tc] {
			seen[tc] = true
			tcs = append(tcs, tc)
		}
	}
	sort.Ints(tcs)
	return tcs
}

// Lookup returns the record of the named case for a thread count and
// method.
func (r *Result) Lookup(name string, threads int, method string) (*benchlog.Record, bool) {
	for _, rec := range r.data[name] {
		if tc, _ := rec.ThreadCount(); tc == threads && rec.Method == method {
			return rec, true
		}
	}
	return nil, false
}

// Methods returns Methods followed by any other method that appears in
// r, sorted by name.
func (r *Result) Methods() []string {
	methods := append([]string(nil), Methods...)
	var extra []string
	seen := make(map[string]bool)
	for _, m := range Methods {
		seen[m] = true
	}
	for _, recs := range r.data {
		for _, rec := range recs {
			if !seen[rec.Method] {
				seen[rec.Method] = true
				extra = append(extra, rec.Method)
			}
		}
	}
	sort.Strings(extra)
	return append(methods, extra...)
}

// Len returns the total number of records in r.
func (r *Result) Len() int {
	n := 0
	for _, recs := range r.data {
		n += len(recs)
	}
	return n
}

// Empty reports whether no case has any records.
func (r *Result) Empty() bool {
	return r.Len() == 0
}

// Missing returns the inputs that could not be read when r was built
// by Aggregate.
func (r *Result) Missing() []*benchlog.MissingInputError {
	return append([]*benchlog.MissingInputError(nil), r.missing...)
}

func methodRank(m string) int {
	for i, x := range Methods {
		if x == m {
			return i
		}
	}
	return len(Methods)
}

func sortRecords(recs []*benchlog.Record) {
	sort.Slice(recs, func(i, j int) bool {
		ri, rj := methodRank(recs[i].Method), methodRank(recs[j].Method)
		if ri != rj {
			return ri < rj
		}
		if recs[i].Method != recs[j].Method {
			return recs[i].Method < recs[j].Method
		}
		ti, _ := recs[i].ThreadCount()
		tj, _ := recs[j].ThreadCount()
		return ti < tj
	})
}
