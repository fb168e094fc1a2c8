// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A Reader reads records from a single benchmark log.
//
// Its API is modeled on bufio.Scanner, but lines may be of any
// length. Every Record it returns is freshly allocated and may be
// retained by the caller.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	br  *bufio.Reader
	eof bool
	err error

	rec *Record

	fileName string
	line     int
	seq      int
}

// NewReader constructs a reader to parse a benchmark log from r.
// fileName is used in record positions and error messages.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
// It does NOT reset the sequence counter, so records read after a
// Reset always have a larger Seq than the ones read before it.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.br = bufio.NewReader(ior)
	r.eof = false
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.line = 0
	r.rec = nil
	r.err = nil
}

// Scan advances the reader to the next record and reports whether a
// record was read. Blank lines are skipped.
// If Scan reaches EOF or an I/O error occurs, it returns false,
// in which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil || r.br == nil {
		return false
	}
	for !r.eof {
		line, err := r.br.ReadString('\n')
		if err == io.EOF {
			r.eof = true
			if line == "" {
				break
			}
		} else if err != nil {
			r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line+1, err)
			break
		}
		r.line++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		rec := ParseLine(line)
		if rec == nil {
			continue
		}
		r.seq++
		rec.SetPos(r.fileName, r.line, r.seq)
		r.rec = rec
		return true
	}
	r.rec = nil
	return false
}

// Record returns the record that was just read by Scan.
func (r *Reader) Record() *Record {
	return r.rec
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
