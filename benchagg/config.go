// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"fmt"

	"github.com/cs4532/listbench/benchcase"
	"github.com/cs4532/listbench/benchlog"
)

// Config names the result log of each implementation.
// An empty path leaves that implementation out.
type Config struct {
	Serial string
	Mutex  string
	RWLock string
}

// DefaultConfig returns the paths the benchmark programs write to.
func DefaultConfig() Config {
	return Config{
		Serial: "results/serial_results.txt",
		Mutex:  "results/mutex_results.txt",
		RWLock: "results/rw_lock_results.txt",
	}
}

// Sources returns the logs of c labeled with their method.
func (c Config) Sources() []benchlog.Source {
	var srcs []benchlog.Source
	for i, path := range []string{c.Serial, c.Mutex, c.RWLock} {
		if path != "" {
			srcs = append(srcs, benchlog.Source{Method: Methods[i], Path: path})
		}
	}
	return srcs
}

// Options controls Aggregate.
type Options struct {
	// Cases are the experiment cases. If nil, benchcase.DefaultCases
	// is used.
	Cases []benchcase.Case

	// Matcher classifies records. If nil, benchcase.Exact(Cases) is
	// used.
	Matcher benchcase.Matcher

	// Warn, if non-nil, is called for every input that cannot be
	// read.
	Warn func(err error)
}

// Aggregate reads the logs named by cfg and returns their datasets.
func Aggregate(cfg Config, opts Options) (*Result, error) {
	return AggregateSources(cfg.Sources(), opts)
}

// AggregateSources reads srcs in order and returns their datasets.
// Logs that cannot be read are reported through opts.Warn and listed
// in Result.Missing; they do not cause an error. The only error is a
// case table that names the same case twice.
func AggregateSources(srcs []benchlog.Source, opts Options) (*Result, error) {
	cases := opts.Cases
	if cases == nil {
		cases = benchcase.DefaultCases
	}
	seen := make(map[string]bool)
	for _, c := range cases {
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate case %q", c.Name)
		}
		seen[c.Name] = true
	}
	files := &benchlog.Files{Sources: srcs, Warn: opts.Warn}
	var recs []*benchlog.Record
	for files.Scan() {
		recs = append(recs, files.Record())
	}

	agg := NewAggregator(cases, opts.Matcher)
	agg.AddReverse(recs)
	res := agg.Result()
	res.missing = files.Missing()
	return res, nil
}
