// Package metadata models document and filter metadata as a closed sum of
// value variants instead of an untyped map, so comparisons stay exhaustive.
package metadata

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind enumerates the supported value variants.
type Kind int

// Value variants.
const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindStringList
)

// Value is a single metadata value: string, number, bool, or string list.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []string
}

// String creates a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// StringList creates a string-list value.
func StringList(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindStringList, list: cp}
}

// Kind returns the value variant.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload (valid for KindString).
func (v Value) Str() string { return v.str }

// Num returns the numeric payload (valid for KindNumber).
func (v Value) Num() float64 { return v.num }

// Bool returns the boolean payload (valid for KindBool).
func (v Value) Bool() bool { return v.b }

// List returns the string-list payload (valid for KindStringList).
func (v Value) List() []string { return v.list }

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindStringList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	}
	return false
}

// Text returns a display form usable for substring heuristics.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindStringList:
		return strings.Join(v.list, ",")
	}
	return ""
}

// MarshalJSON encodes the underlying payload without a type wrapper.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindStringList:
		return json.Marshal(v.list)
	}
	return nil, fmt.Errorf("unknown metadata kind %d", v.kind)
}

// UnmarshalJSON decodes a scalar or string array into the matching variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode metadata value: %w", err)
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromAny converts a decoded JSON value into a typed Value.
func FromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case []any:
		items := make([]string, 0, len(t))
		for _, it := range t {
			s, ok := it.(string)
			if !ok {
				return Value{}, fmt.Errorf("metadata array element %v is not a string", it)
			}
			items = append(items, s)
		}
		return StringList(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported metadata value %v (%T)", raw, raw)
	}
}

// Map is a keyed set of metadata values.
type Map map[string]Value

// IsEmpty reports whether the map has no entries.
func (m Map) IsEmpty() bool { return len(m) == 0 }

// Clone returns a shallow copy. A nil map clones to nil.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	c := make(Map, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Keys returns the map keys in sorted order for deterministic iteration.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
