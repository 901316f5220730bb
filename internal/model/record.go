/*
PURPOSE:
  Defines Record, the ordered key/value form in which summaries are
  persisted, merged and rendered, and Float, the float kind it serializes.

REQUIREMENTS:
  User-specified:
  - summary.json and the merged reports list fields in a stable order.
  - A later source overwriting a key keeps that key's original position.

  Implementation-discovered:
  - Persisted floats must read back as floats (9.0 stays 9.0) and ints as
    ints, otherwise the comparison table prints "9" for a rate.
  - The ordered map decodes values with plain json.Unmarshal, which turns
    every number into float64, so values are decoded as raw JSON first and
    classified here.

ARCHITECTURE INTEGRATION:
  - Used by: internal/summary, internal/report, internal/output
  - Dependencies: github.com/wk8/go-ordered-map/v2

ERROR HANDLING:
  - MarshalJSON fails on NaN/Inf floats.
  - UnmarshalJSON fails on anything but a JSON object.

IMPLEMENTATION RULES:
  - Set normalizes Go numeric kinds to int64 or Float.
  - Never expose the underlying map; callers go through Set/Get/Keys.

USAGE:
  r := model.NewRecord()
  r.Set("gen_tps", 9.0)
  data, err := json.Marshal(r)

SELF-HEALING INSTRUCTIONS:
  - If a new value kind is persisted, extend normalize() and numberValue().

RELATED FILES:
  - internal/model/types.go
  - internal/output/json.go

MAINTENANCE:
  - None.
*/

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Float is a float64 that always serializes with a fractional part or exponent,
// so a persisted 9.0 reads back as a float and not as an integer.
type Float float64

func (f Float) String() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("unsupported float value %v", v)
	}
	return []byte(f.String()), nil
}

// Record is an insertion-ordered string-keyed map. Setting an existing key
// replaces its value in place. Values are string, int64, Float, bool or nil
// for everything this module writes; foreign JSON values are kept as decoded.
type Record struct {
	m *orderedmap.OrderedMap[string, any]
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{m: orderedmap.New[string, any]()}
}

// Set stores v under k, normalizing Go numeric kinds to int64 or Float.
func (r *Record) Set(k string, v any) {
	if r.m == nil {
		r.m = orderedmap.New[string, any]()
	}
	r.m.Set(k, normalize(v))
}

// Get returns the value under k.
func (r *Record) Get(k string) (any, bool) {
	if r == nil || r.m == nil {
		return nil, false
	}
	return r.m.Get(k)
}

// Has reports whether k is present.
func (r *Record) Has(k string) bool {
	_, ok := r.Get(k)
	return ok
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil || r.m == nil {
		return nil
	}
	keys := make([]string, 0, r.m.Len())
	for pair := r.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func (r *Record) Len() int {
	if r == nil || r.m == nil {
		return 0
	}
	return r.m.Len()
}

// Float returns the value under k as a float64 if it is numeric.
func (r *Record) Float(k string) (float64, bool) {
	v, ok := r.Get(k)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case Float:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.m == nil {
		return []byte("{}"), nil
	}
	return r.m.MarshalJSON()
}

func (r *Record) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, raw); err != nil {
		return err
	}
	r.m = orderedmap.New[string, any]()
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		v, err := decodeValue(pair.Value)
		if err != nil {
			return fmt.Errorf("field %s: %w", pair.Key, err)
		}
		r.Set(pair.Key, v)
	}
	return nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if n, ok := v.(json.Number); ok {
		return numberValue(n)
	}
	return v, nil
}

func numberValue(n json.Number) (any, error) {
	if strings.ContainsAny(n.String(), ".eE") {
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	}
	i, err := n.Int64()
	if err != nil {
		return nil, err
	}
	return i, nil
}

func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return Float(n)
	case float32:
		return Float(n)
	}
	return v
}
