// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build cgo
// +build cgo

package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/cs4532/listbench/benchagg"
	"github.com/cs4532/listbench/benchcase"
	"github.com/cs4532/listbench/benchlog"
	. "github.com/cs4532/listbench/storage/db"
	"github.com/cs4532/listbench/storage/db/dbtest"
)

// TestRunIDs verifies that NewRun generates the correct sequence of run IDs.
func TestRunIDs(t *testing.T) {
	ctx := context.Background()

	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	defer SetNow(time.Time{})

	tests := []struct {
		sec int64
		id  string
	}{
		{0, "19700101.1"},
		{0, "19700101.2"},
		{86400, "19700102.1"},
		{86400, "19700102.2"},
		{86400, "19700102.3"},
		{0, "19700101.3"},
		{86400, "19700102.4"},
	}
	for _, test := range tests {
		SetNow(time.Unix(test.sec, 0))
		r, err := db.NewRun(ctx)
		if err != nil {
			t.Fatalf("NewRun: %v", err)
		}
		if err := r.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
		if r.ID != test.id {
			t.Fatalf("run ID = %q, want %q", r.ID, test.id)
		}
	}

	n, err := db.CountRuns()
	if err != nil {
		t.Fatal(err)
	}
	if n != len(tests) {
		t.Errorf("CountRuns = %d, want %d", n, len(tests))
	}
}

func TestAbort(t *testing.T) {
	ctx := context.Background()

	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	r, err := db.NewRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.InsertCase(ctx, benchcase.DefaultCases[0]); err != nil {
		t.Fatal(err)
	}
	if err := r.Abort(); err != nil {
		t.Fatal(err)
	}
	if n, err := db.CountRuns(); err != nil || n != 0 {
		t.Errorf("CountRuns = %d, %v; want 0 after Abort", n, err)
	}
}

func testResult() *benchagg.Result {
	agg := benchagg.NewAggregator(benchcase.DefaultCases, nil)
	lines := []struct{ method, line string }{
		{"Serial", "mMember: 0.990000% | mInsert: 0.005000% | mDelete: 0.005000% | threadCount: 1 | mean: 120.5 | stdDev: 3.25"},
		{"Mutex", "mMember: 0.990000% | mInsert: 0.005000% | mDelete: 0.005000% | threadCount: 1 | mean: 140.0"},
		{"Mutex", "mMember: 0.990000% | mInsert: 0.005000% | mDelete: 0.005000% | threadCount: 4 | mean: 60.75"},
		{"RWLock", "mMember: 0.5 | mInsert: 0.25 | mDelete: 0.25 | threadCount: 8 | mean: 30 | note: warm cache"},
	}
	for i, l := range lines {
		rec := benchlog.ParseLine(l.line)
		rec.Method = l.method
		rec.SetPos(l.method, i+1, i+1)
		agg.Add(rec)
	}
	return agg.Result()
}

type row struct {
	Case, Method, Line string
}

func rows(res *benchagg.Result) []row {
	var out []row
	for _, c := range res.Cases() {
		for _, rec := range res.Dataset(c.Name) {
			out = append(out, row{c.Name, rec.Method, benchlog.Line(rec)})
		}
	}
	return out
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()

	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	defer SetNow(time.Time{})
	SetNow(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))

	want := testResult()
	id, err := db.SaveResult(ctx, want)
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if id != "20260314.1" {
		t.Errorf("SaveResult ID = %q, want 20260314.1", id)
	}

	got, err := db.LoadResult(ctx, id)
	if err != nil {
		t.Fatalf("LoadResult: %v", err)
	}
	if diff := cmp.Diff(want.Cases(), got.Cases()); diff != "" {
		t.Errorf("cases differ (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(rows(want), rows(got)); diff != "" {
		t.Errorf("datasets differ (-want +got):\n%s", diff)
	}
	if got.Len() != 4 {
		t.Errorf("loaded %d records, want 4", got.Len())
	}

	ids, err := db.ListRuns(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"20260314.1"}, ids); diff != "" {
		t.Errorf("ListRuns (-want +got):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	ctx := context.Background()

	db, cleanup := dbtest.NewDB(t)
	defer cleanup()

	if _, err := db.LoadResult(ctx, "20260314.7"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadResult of unknown run: err = %v, want ErrNotFound", err)
	}
	for _, id := range []string{"", "2026.1", "20260314", "20260314.0", "20260314.x"} {
		if _, err := db.LoadResult(ctx, id); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("LoadResult(%q): err = %v, want malformed ID error", id, err)
		}
	}
}

func TestSplitID(t *testing.T) {
	day, num, err := SplitID("19700102.12")
	if err != nil || day != "19700102" || num != 12 {
		t.Errorf("SplitID = %q, %d, %v", day, num, err)
	}
}
