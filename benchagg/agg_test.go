// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cs4532/listbench/benchcase"
	"github.com/cs4532/listbench/benchlog"
)

const (
	case1 = "mMember: 0.990000% | mInsert: 0.005000% | mDelete: 0.005000%"
	case2 = "mMember: 0.900000% | mInsert: 0.050000% | mDelete: 0.050000%"
	case3 = "mMember: 0.500000% | mInsert: 0.250000% | mDelete: 0.250000%"
	nomix = "mMember: 0.700000% | mInsert: 0.100000% | mDelete: 0.200000%"
)

func line(mix string, threads int, mean float64) string {
	return fmt.Sprintf("n: 1000 | m: 10000 | %s | threadCount: %d | mean: %f | stdDev: 1.000000", mix, threads, mean)
}

// records parses lines as if they were read in order from one log of
// method.
func records(method string, lines ...string) []*benchlog.Record {
	var recs []*benchlog.Record
	for i, l := range lines {
		rec := benchlog.ParseLine(l)
		if rec == nil {
			continue
		}
		rec.Method = method
		rec.SetPos(method, i+1, i+1)
		recs = append(recs, rec)
	}
	return recs
}

// summary renders a dataset as "method/threads=mean" entries.
func summary(res *Result, name string) []string {
	var out []string
	for _, rec := range res.Dataset(name) {
		tc, _ := rec.ThreadCount()
		mean, _ := rec.Mean()
		out = append(out, fmt.Sprintf("%s/%d=%g", rec.Method, tc, mean))
	}
	return out
}

func TestDedupLastWins(t *testing.T) {
	recs := records("Mutex",
		line(case1, 4, 10),
		line(case1, 4, 20),
	)
	agg := NewAggregator(benchcase.DefaultCases, nil)
	agg.AddReverse(recs)
	got := summary(agg.Result(), "Case 1")
	want := []string{"Mutex/4=20"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderIndependent(t *testing.T) {
	recs := records("Serial",
		line(case1, 1, 5),
		line(case2, 1, 6),
		line(case1, 2, 7),
		line(case1, 1, 8),
		line(case3, 8, 9),
		line(case2, 1, 10),
	)
	fwd := NewAggregator(benchcase.DefaultCases, nil)
	for _, rec := range recs {
		fwd.Add(rec)
	}
	rev := NewAggregator(benchcase.DefaultCases, nil)
	rev.AddReverse(recs)

	want := map[string][]string{
		"Case 1": {"Serial/1=8", "Serial/2=7"},
		"Case 2": {"Serial/1=10"},
		"Case 3": {"Serial/8=9"},
	}
	for _, agg := range []*Aggregator{fwd, rev} {
		res := agg.Result()
		for name, w := range want {
			if diff := cmp.Diff(w, summary(res, name)); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
			}
		}
	}
}

func TestCaseIsolation(t *testing.T) {
	agg := NewAggregator(benchcase.DefaultCases, nil)
	agg.AddReverse(records("RWLock", line(case1, 2, 3)))
	res := agg.Result()
	if n := len(res.Dataset("Case 1")); n != 1 {
		t.Errorf("Case 1 has %d records, want 1", n)
	}
	for _, name := range []string{"Case 2", "Case 3"} {
		if n := len(res.Dataset(name)); n != 0 {
			t.Errorf("%s has %d records, want 0", name, n)
		}
	}
}

func TestUnmatchedAndIncomplete(t *testing.T) {
	agg := NewAggregator(benchcase.DefaultCases, nil)
	recs := records("Serial",
		line(nomix, 4, 1),
		case1+" | mean: 2.0",
		case1+" | threadCount: four | mean: 2.0",
		"threadCount: 4 | mean: 2.0",
		"garbage",
	)
	for _, rec := range recs {
		if agg.Add(rec) {
			f, l := rec.Pos()
			t.Errorf("record %s:%d was added", f, l)
		}
	}
	if agg.Add(nil) {
		t.Errorf("nil record was added")
	}
	res := agg.Result()
	if !res.Empty() || res.Len() != 0 {
		t.Errorf("result has %d records, want none", res.Len())
	}
	if len(res.Cases()) != 3 {
		t.Errorf("result has %d cases, want 3", len(res.Cases()))
	}
}

func TestMethodsKeptApart(t *testing.T) {
	agg := NewAggregator(benchcase.DefaultCases, nil)
	agg.AddReverse(records("RWLock", line(case2, 4, 3)))
	agg.AddReverse(records("Serial", line(case2, 4, 1)))
	agg.AddReverse(records("Mutex", line(case2, 4, 2), line(case2, 2, 4)))
	res := agg.Result()

	want := []string{"Serial/4=1", "Mutex/2=4", "Mutex/4=2", "RWLock/4=3"}
	if diff := cmp.Diff(want, summary(res, "Case 2")); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 4}, res.ThreadCounts("Case 2")); diff != "" {
		t.Errorf("ThreadCounts mismatch (-want +got):\n%s", diff)
	}
	if rec, ok := res.Lookup("Case 2", 4, "Mutex"); !ok {
		t.Errorf("Lookup(4, Mutex) found nothing")
	} else if mean, _ := rec.Mean(); mean != 2 {
		t.Errorf("Lookup(4, Mutex) mean = %v, want 2", mean)
	}
	if _, ok := res.Lookup("Case 2", 2, "RWLock"); ok {
		t.Errorf("Lookup(2, RWLock) found a record")
	}
}

func TestResultIsSnapshot(t *testing.T) {
	agg := NewAggregator(benchcase.DefaultCases, nil)
	recs := records("Serial", line(case1, 1, 1), line(case1, 1, 2))
	agg.Add(recs[0])
	res := agg.Result()
	agg.Add(recs[1])
	if diff := cmp.Diff([]string{"Serial/1=1"}, summary(res, "Case 1")); diff != "" {
		t.Errorf("snapshot changed (-want +got):\n%s", diff)
	}
	res.Dataset("Case 1")[0] = nil
	if res.Dataset("Case 1")[0] == nil {
		t.Errorf("Dataset returned the internal slice")
	}
}

func TestExtraMethodsAndCases(t *testing.T) {
	extra := benchcase.Case{Name: "Case 4", MMember: 0.7, MInsert: 0.1, MDelete: 0.2}
	cases := append(append([]benchcase.Case(nil), benchcase.DefaultCases...), extra)
	agg := NewAggregator(benchcase.DefaultCases, benchcase.Exact(cases))
	agg.AddReverse(records("Atomic", line(nomix, 1, 1)))
	res := agg.Result()
	if got := res.Cases(); len(got) != 4 || got[3] != extra {
		t.Errorf("Cases() = %v, want the matcher's extra case last", got)
	}
	if diff := cmp.Diff([]string{"Serial", "Mutex", "RWLock", "Atomic"}, res.Methods()); diff != "" {
		t.Errorf("Methods mismatch (-want +got):\n%s", diff)
	}
}

func writeFile(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0666); err != nil {
		t.Fatal(err)
	}
}

func TestAggregateMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Serial: filepath.Join(dir, "serial_results.txt"),
		Mutex:  filepath.Join(dir, "mutex_results.txt"),
		RWLock: filepath.Join(dir, "rw_lock_results.txt"),
	}
	writeFile(t, cfg.Serial, line(case1, 1, 100), line(case1, 1, 110), "", line(case3, 2, 50))
	writeFile(t, cfg.RWLock, line(case1, 1, 120), line(nomix, 1, 1))

	var warnings []error
	res, err := Aggregate(cfg, Options{Warn: func(err error) { warnings = append(warnings, err) }})
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Error(), cfg.Mutex) {
		t.Errorf("warnings = %v, want one naming %s", warnings, cfg.Mutex)
	}
	if m := res.Missing(); len(m) != 1 || m[0].Source.Method != "Mutex" {
		t.Errorf("Missing() = %v", m)
	}
	want := map[string][]string{
		"Case 1": {"Serial/1=110", "RWLock/1=120"},
		"Case 2": nil,
		"Case 3": {"Serial/2=50"},
	}
	for name, w := range want {
		if diff := cmp.Diff(w, summary(res, name)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
		for _, rec := range res.Dataset(name) {
			if rec.Method == "Mutex" {
				t.Errorf("%s has a Mutex record", name)
			}
		}
	}
}

func TestAggregateAllMissing(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Serial: filepath.Join(dir, "a"), Mutex: filepath.Join(dir, "b")}
	res, err := Aggregate(cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Empty() || len(res.Missing()) != 2 {
		t.Errorf("got %d records and %d missing, want 0 and 2", res.Len(), len(res.Missing()))
	}
}

func TestAggregateLongLine(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Serial: filepath.Join(dir, "serial_results.txt"),
		RWLock: filepath.Join(dir, "rw_lock_results.txt"),
	}
	long := "note: " + strings.Repeat("x", 2<<20)
	writeFile(t, cfg.Serial, line(case1, 1, 100), long, line(case1, 2, 60))
	writeFile(t, cfg.RWLock, line(case1, 1, 90))

	var warnings []error
	res, err := Aggregate(cfg, Options{Warn: func(err error) { warnings = append(warnings, err) }})
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %v", warnings)
	}
	want := []string{"Serial/1=100", "Serial/2=60", "RWLock/1=90"}
	if diff := cmp.Diff(want, summary(res, "Case 1")); diff != "" {
		t.Errorf("Case 1 mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateDuplicateCase(t *testing.T) {
	cases := []benchcase.Case{{Name: "A", MMember: 1}, {Name: "A", MMember: 0.5}}
	if _, err := AggregateSources(nil, Options{Cases: cases}); err == nil {
		t.Error("AggregateSources accepted a duplicate case name")
	}
}

func TestConfigSources(t *testing.T) {
	got := Config{Serial: "s", RWLock: "r"}.Sources()
	want := []benchlog.Source{{Method: "Serial", Path: "s"}, {Method: "RWLock", Path: "r"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
	if n := len(DefaultConfig().Sources()); n != 3 {
		t.Errorf("DefaultConfig has %d sources, want 3", n)
	}
}
