// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build cgo
// +build cgo

package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRunDatabase(t *testing.T) {
	dir := writeLogs(t)
	dbFlag := "sqlite3:" + filepath.Join(dir, "runs.db")
	args := append(logFlags(dir), "-png", "", "-q", "-db", dbFlag)

	var ids []string
	for i := 0; i < 2; i++ {
		var stdout, stderr strings.Builder
		if code := run(args, &stdout, &stderr); code != 0 {
			t.Fatalf("save %d: exit code %d, stderr:\n%s", i, code, stderr.String())
		}
		msg := stderr.String()
		j := strings.Index(msg, "saved run ")
		if j < 0 {
			t.Fatalf("no run saved:\n%s", msg)
		}
		ids = append(ids, strings.Fields(msg[j+len("saved run "):])[0])
	}

	var stdout, stderr strings.Builder
	if code := run([]string{"-db", dbFlag, "-list"}, &stdout, &stderr); code != 0 {
		t.Fatalf("-list: exit code %d, stderr:\n%s", code, stderr.String())
	}
	if got, want := stdout.String(), strings.Join(ids, "\n")+"\n"; got != want {
		t.Errorf("-list printed:\n%swant:\n%s", got, want)
	}

	stdout.Reset()
	stderr.Reset()
	if code := run([]string{"-db", dbFlag, "-load", ids[0], "-png", ""}, &stdout, &stderr); code != 0 {
		t.Fatalf("-load: exit code %d, stderr:\n%s", code, stderr.String())
	}
	if got := stdout.String(); !strings.Contains(got, "geomean  100.00  35.36      2.83x") {
		t.Errorf("-load printed:\n%s", got)
	}
	if strings.Contains(stderr.String(), "saved run") {
		t.Errorf("-load saved a new run:\n%s", stderr.String())
	}
}
