// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcase classifies benchmark records into experiment
// cases.
//
// A case is a fixed operation mix: the fractions of Member, Insert and
// Delete operations a benchmark run performed. Records are matched to
// a case by exact comparison of those three fractions.
package benchcase

import (
	"fmt"
	"strconv"
	"strings"
)

// A Case is one experiment configuration.
type Case struct {
	Name    string
	MMember float64
	MInsert float64
	MDelete float64
}

// DefaultCases are the three operation mixes of the lab, in matching
// priority order.
var DefaultCases = []Case{
	{"Case 1", 0.99, 0.005, 0.005},
	{"Case 2", 0.9, 0.05, 0.05},
	{"Case 3", 0.5, 0.25, 0.25},
}

func (c Case) String() string {
	return fmt.Sprintf("%s: (mMember: %s, mInsert: %s, mDelete: %s)",
		c.Name, fmtFloat(c.MMember), fmtFloat(c.MInsert), fmtFloat(c.MDelete))
}

func (c Case) equal(m, i, d float64) bool {
	return c.MMember == m && c.MInsert == i && c.MDelete == d
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// ParseCase parses a case written as "name=mMember,mInsert,mDelete",
// for example "Case 4=0.7,0.1,0.2".
func ParseCase(s string) (Case, error) {
	i := strings.LastIndex(s, "=")
	if i <= 0 {
		return Case{}, fmt.Errorf("malformed case %q, want name=mMember,mInsert,mDelete", s)
	}
	name, rest := strings.TrimSpace(s[:i]), s[i+1:]
	parts := strings.Split(rest, ",")
	if name == "" || len(parts) != 3 {
		return Case{}, fmt.Errorf("malformed case %q, want name=mMember,mInsert,mDelete", s)
	}
	var xs [3]float64
	for j, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Case{}, fmt.Errorf("case %q: %w", name, err)
		}
		xs[j] = x
	}
	return Case{name, xs[0], xs[1], xs[2]}, nil
}
