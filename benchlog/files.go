// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// A Source is one benchmark log and the implementation that wrote it.
type Source struct {
	Method string
	Path   string
}

func (s Source) String() string {
	return s.Method + "=" + s.Path
}

// ParseSource parses a source given as "method=path". If there is no
// "=", the path is also used as the method.
func ParseSource(s string) (Source, error) {
	method, path := s, s
	if i := strings.Index(s, "="); i >= 0 {
		method, path = s[:i], s[i+1:]
	}
	if method == "" || path == "" {
		return Source{}, fmt.Errorf("malformed source %q, want method=path", s)
	}
	return Source{method, path}, nil
}

// A MissingInputError reports a log that could not be read.
// It does not stop a Files; the source just contributes no records.
type MissingInputError struct {
	Source Source
	Err    error
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s: input not found (%v)", e.Source.Path, e.Err)
}

func (e *MissingInputError) Unwrap() error {
	return e.Err
}

// A Files reads records from a sequence of benchmark logs.
//
// Each log is read into memory in one piece and closed before any of
// its records are returned. Records are stamped with the Method of
// their Source, and their Seq increases across all of the sources.
type Files struct {
	// Sources is the list of logs to read, in order.
	Sources []Source

	// Warn, if non-nil, is called for each source that cannot be
	// read, or that fails part way through.
	Warn func(err error)

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet. Note that this distinguishes nil
	// from length 0.
	inputs []Source
	cur    Source
	open   bool

	reader  Reader
	missing []*MissingInputError
}

func (f *Files) init() {
	f.inputs = append([]Source{}, f.Sources...)
}

// Scan advances to the next record in the sequence of logs and
// reports whether a record was read. Unreadable logs are reported
// through Warn and skipped; a log that fails part way through keeps
// the records read before the failure. Scan returns false at the end
// of the last log.
func (f *Files) Scan() bool {
	if f.inputs == nil {
		f.init()
	}

	for {
		if !f.open {
			if len(f.inputs) == 0 {
				return false
			}
			f.cur, f.inputs = f.inputs[0], f.inputs[1:]
			data, err := os.ReadFile(f.cur.Path)
			if err != nil {
				e := &MissingInputError{f.cur, err}
				f.missing = append(f.missing, e)
				if f.Warn != nil {
					f.Warn(e)
				}
				continue
			}
			f.reader.Reset(bytes.NewReader(data), f.cur.Path)
			f.open = true
		}

		if f.reader.Scan() {
			f.reader.Record().Method = f.cur.Method
			return true
		}
		if err := f.reader.Err(); err != nil && f.Warn != nil {
			f.Warn(err)
		}
		f.open = false
	}
}

// Record returns the record that was just read by Scan.
func (f *Files) Record() *Record {
	return f.reader.Record()
}

// Missing returns the sources that could not be read so far.
func (f *Files) Missing() []*MissingInputError {
	return f.missing
}
