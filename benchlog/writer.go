// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bytes"
	"io"
)

// A Writer writes records in the benchmark log format.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewWriter returns a writer that writes records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes rec as a single line. The Method and position of rec
// are not part of the format and are not written.
func (w *Writer) Write(rec *Record) error {
	AppendLine(&w.buf, rec)
	w.buf.WriteByte('\n')

	// Write to the buffer can't fail, so we only have to check if
	// this fails.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

// AppendLine appends the fields of rec to buf without a trailing
// newline.
func AppendLine(buf *bytes.Buffer, rec *Record) {
	for i, f := range rec.Fields {
		if i > 0 {
			buf.WriteString(" | ")
		}
		buf.WriteString(f.Key)
		buf.WriteString(": ")
		buf.WriteString(f.Value.String())
	}
}

// Line returns rec formatted as a log line, without a trailing newline.
func Line(rec *Record) string {
	var buf bytes.Buffer
	AppendLine(&buf, rec)
	return buf.String()
}
