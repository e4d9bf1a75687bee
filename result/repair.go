// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package result

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// ErrNoData is returned when a result file is absent or holds no
// records. Benchmark matrices are sparse, so callers skip such
// combinations rather than failing.
var ErrNoData = errors.New("no benchmark data")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Repair rewrites the output of a benchmark executable into a
// comma-separated sequence of JSON objects, so that Wrap(Repair(data))
// is a JSON array with one element per record.
//
// Benchmark executables append one object per flush, each with a
// trailing comma before its closing brace, separate objects with a
// comma of their own, and never close the stream. Undefined rates are
// printed as nan. Repair:
//
//   - drops everything before the first '{';
//   - replaces every bare nan token with 0;
//   - removes a comma that directly precedes a closing brace or bracket;
//   - emits exactly one comma between top-level objects and drops
//     anything else found between them, including a trailing separator.
//
// Repair returns nil if data contains no object.
func Repair(data []byte) []byte {
	start := bytes.IndexByte(data, '{')
	if start < 0 {
		return nil
	}
	data = data[start:]

	out := make([]byte, 0, len(data)+8)
	var (
		depth    int
		objects  int
		inString bool
		escaped  bool
		// lastComma is the index in out of a comma that has only
		// been followed by whitespace, or -1.
		lastComma = -1
	)
	for i := 0; i < len(data); i++ {
		c := data[i]
		if depth == 0 {
			if c != '{' {
				continue
			}
			if objects > 0 {
				out = append(out, ',')
			}
			objects++
			depth = 1
			lastComma = -1
			out = append(out, c)
			continue
		}
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			lastComma = -1
		case c == ',':
			lastComma = len(out)
		case c == '{' || c == '[':
			depth++
			lastComma = -1
		case c == '}' || c == ']':
			if lastComma >= 0 {
				out = append(out[:lastComma], out[lastComma+1:]...)
			}
			depth--
			lastComma = -1
		case isSpace(c):
		case isNaNAt(data, i):
			out = append(out, '0')
			i += len("nan") - 1
			lastComma = -1
			continue
		default:
			lastComma = -1
		}
		out = append(out, c)
	}
	return out
}

// Wrap encloses a repaired object sequence in array brackets.
func Wrap(repaired []byte) []byte {
	out := make([]byte, 0, len(repaired)+2)
	out = append(out, '[')
	out = append(out, repaired...)
	return append(out, ']')
}

// Parse repairs data and decodes it into records. It returns
// ErrNoData if data holds no object.
func Parse(data []byte) ([]Record, error) {
	repaired := Repair(data)
	if len(repaired) == 0 {
		return nil, ErrNoData
	}
	var raw []map[string]float64
	if err := json.Unmarshal(Wrap(repaired), &raw); err != nil {
		return nil, errors.Wrap(err, "decoding repaired results")
	}
	if len(raw) == 0 {
		return nil, ErrNoData
	}
	recs := make([]Record, len(raw))
	for i, m := range raw {
		recs[i] = Record{Measures: m}
	}
	return recs, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdent(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// isNaNAt reports whether data[i:] starts with a standalone nan token
// in any letter case.
func isNaNAt(data []byte, i int) bool {
	if i+3 > len(data) || !bytes.EqualFold(data[i:i+3], []byte("nan")) {
		return false
	}
	if i > 0 && isIdent(data[i-1]) {
		return false
	}
	if i+3 < len(data) && isIdent(data[i+3]) {
		return false
	}
	return true
}
