// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchlog reads the line-oriented result logs written by the
// linked list benchmarks.
//
// Each line of a log is one measurement, written as a sequence of
// "key: value" fields separated by "|":
//
//	n: 1000 | m: 10000 | mMember: 0.990000% | mInsert: 0.005000% | mDelete: 0.005000% | threadCount: 4 | mean: 150.25 | stdDev: 3.1
//
// Parsing is tolerant. Fields that do not have the form "key:value"
// are dropped, values that are not numbers are kept as strings, and
// blank lines are skipped. Nothing in a log line can stop a read.
//
// Like the benchfmt package it is modeled on, the Reader API follows
// bufio.Scanner.
package benchlog

import (
	"fmt"
	"strconv"
	"strings"
)

// Well-known field keys.
const (
	KeyMMember     = "mMember"
	KeyMInsert     = "mInsert"
	KeyMDelete     = "mDelete"
	KeyThreadCount = "threadCount"
	KeyMean        = "mean"
	KeyStdDev      = "stdDev"
)

// A Kind is the type of a parsed Value.
type Kind int

const (
	String Kind = iota
	Int
	Float
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Value is a single field value.
//
// Text is always set to the trimmed text of the value, without any
// "%" suffix. Int or Float is set according to Kind.
type Value struct {
	Kind  Kind
	Text  string
	Int   int64
	Float float64

	// Percent is set if the value was written with "%" signs around it.
	Percent bool
}

// StringValue, IntValue and FloatValue construct Values directly.
func StringValue(s string) Value { return Value{Kind: String, Text: s} }

func IntValue(i int64) Value {
	return Value{Kind: Int, Text: strconv.FormatInt(i, 10), Int: i}
}

func FloatValue(f float64) Value {
	text := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		// Keep the '.' so the text parses back as a float.
		text += ".0"
	}
	return Value{Kind: Float, Text: text, Float: f}
}

// AsFloat returns v as a float64. Int values are widened. It reports
// false for String values.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case Float:
		return v.Float, true
	case Int:
		return float64(v.Int), true
	}
	return 0, false
}

// String returns v as it would be written in a log line.
func (v Value) String() string {
	if v.Percent {
		return v.Text + "%"
	}
	return v.Text
}

// A Field is one key/value pair of a Record.
type Field struct {
	Key   string
	Value Value
}

// A Record is one parsed log line.
//
// Fields are kept in the order they appeared on the line. If a key
// appears more than once, the later value replaces the earlier one in
// place.
type Record struct {
	Fields []Field

	// Method is the implementation that produced this record, such
	// as "Serial", "Mutex" or "RWLock". It is not part of the line
	// itself; Files sets it from the label of the input.
	Method string

	fileName string
	line     int
	seq      int
}

// Pos returns the file name and 1-based line number this record was
// read from. For records that were not read by a Reader it returns
// "", 0.
func (r *Record) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Seq returns the read position of r across every input read by the
// same Reader or Files. A later line always has a larger Seq.
func (r *Record) Seq() int {
	return r.seq
}

// SetPos sets the position information of r. Readers set this
// automatically; it is useful for records built by hand.
func (r *Record) SetPos(fileName string, line, seq int) {
	r.fileName, r.line, r.seq = fileName, line, seq
}

// Get returns the value of key.
func (r *Record) Get(key string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Set sets key to val, replacing any existing value.
func (r *Record) Set(key string, val Value) {
	for i := range r.Fields {
		if r.Fields[i].Key == key {
			r.Fields[i].Value = val
			return
		}
	}
	r.Fields = append(r.Fields, Field{key, val})
}

// Float returns the numeric value of key as a float64.
func (r *Record) Float(key string) (float64, bool) {
	v, ok := r.Get(key)
	if !ok {
		return 0, false
	}
	return v.AsFloat()
}

// Int returns the value of key if it was written as an integer.
func (r *Record) Int(key string) (int, bool) {
	v, ok := r.Get(key)
	if !ok || v.Kind != Int {
		return 0, false
	}
	return int(v.Int), true
}

func (r *Record) MMember() (float64, bool) { return r.Float(KeyMMember) }
func (r *Record) MInsert() (float64, bool) { return r.Float(KeyMInsert) }
func (r *Record) MDelete() (float64, bool) { return r.Float(KeyMDelete) }
func (r *Record) Mean() (float64, bool)    { return r.Float(KeyMean) }
func (r *Record) StdDev() (float64, bool)  { return r.Float(KeyStdDev) }

// ThreadCount returns the threadCount field. It must have been written
// as an integer.
func (r *Record) ThreadCount() (int, bool) { return r.Int(KeyThreadCount) }

// Clone makes a copy of r that shares no state with r.
func (r *Record) Clone() *Record {
	r2 := *r
	r2.Fields = append([]Field(nil), r.Fields...)
	return &r2
}
