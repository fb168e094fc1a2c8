// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"strconv"
	"strings"
)

// ParseLine parses a single log line. It returns nil if the line is
// blank. Otherwise it returns a Record holding every well-formed field
// of the line, which may be none.
//
// A field is well-formed if it contains exactly one ':' and a
// non-empty key.
func ParseLine(line string) *Record {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	rec := new(Record)
	for _, seg := range strings.Split(line, "|") {
		key, val, ok := parseField(seg)
		if !ok {
			continue
		}
		rec.Set(key, parseValue(val))
	}
	return rec
}

// parseField splits seg into a trimmed key and value.
func parseField(seg string) (key, val string, ok bool) {
	i := strings.IndexByte(seg, ':')
	if i < 0 || strings.IndexByte(seg[i+1:], ':') >= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(seg[:i])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(seg[i+1:]), true
}

// parseValue converts the text of a field into a Value. Text
// containing a '.' is parsed as a float, anything else as an integer.
// If that fails, the value is kept as a string. Any '%' signs around
// the text are dropped first.
func parseValue(text string) Value {
	var v Value
	if t := strings.Trim(text, "%"); t != text {
		text = strings.TrimSpace(t)
		v.Percent = true
	}
	v.Text = text
	if strings.IndexByte(text, '.') >= 0 {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			v.Kind, v.Float = Float, f
		}
		return v
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		v.Kind, v.Int = Int, i
	}
	return v
}
