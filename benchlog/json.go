// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchlog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// MarshalJSON encodes numeric values as JSON numbers and everything
// else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case Int:
		return strconv.AppendInt(nil, v.Int, 10), nil
	case Float:
		if !math.IsInf(v.Float, 0) && !math.IsNaN(v.Float) {
			return strconv.AppendFloat(nil, v.Float, 'g', -1, 64), nil
		}
	}
	return json.Marshal(v.String())
}

// MarshalJSON encodes r as an object with its method, position and
// fields. Fields keep their line order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"method":`)
	if err := appendJSON(&buf, r.Method); err != nil {
		return nil, err
	}
	if r.fileName != "" {
		buf.WriteString(`,"file":`)
		if err := appendJSON(&buf, r.fileName); err != nil {
			return nil, err
		}
		buf.WriteString(`,"line":`)
		buf.WriteString(strconv.Itoa(r.line))
	}
	buf.WriteString(`,"fields":{`)
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendJSON(&buf, f.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := appendJSON(&buf, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
