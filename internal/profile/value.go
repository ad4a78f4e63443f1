// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package profile

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	// KindNull is the zero Value, representing an absent attribute.
	KindNull Kind = iota
	// KindNumber holds a float64.
	KindNumber
	// KindBool holds a bool.
	KindBool
	// KindString holds a string.
	KindString
	// KindList holds a list of strings (skills, interests, tags).
	KindList
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the attribute types a profile may carry.
// Profile attribute maps are open string-keyed maps of heterogeneous values;
// modelling them as a closed union lets vector extraction and similarity
// code switch exhaustively on Kind instead of type-asserting interface{}.
type Value struct {
	kind Kind
	num  float64
	b    bool
	str  string
	list []string
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Number wraps a float64.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// List wraps a string list.
func List(items ...string) Value { return Value{kind: KindList, list: items} }

// Kind returns the kind tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Number returns the numeric payload. The bool is false if the value is
// not a number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Str returns the string payload.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// List returns the list payload.
func (v Value) List() ([]string, bool) {
	return v.list, v.kind == KindList
}

// Equal reports deep equality of two values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.str == o.str
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// MarshalJSON encodes the value as its natural JSON representation.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindString:
		return json.Marshal(v.str)
	case KindList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a value from its natural JSON representation.
// JSON numbers become KindNumber, arrays of strings become KindList.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch t := raw.(type) {
	case nil:
		*v = Null()
	case float64:
		*v = Number(t)
	case bool:
		*v = Bool(t)
	case string:
		*v = String(t)
	case []interface{}:
		items := make([]string, 0, len(t))
		for _, it := range t {
			s, ok := it.(string)
			if !ok {
				return fmt.Errorf("attribute list element %v is not a string", it)
			}
			items = append(items, s)
		}
		*v = List(items...)
	default:
		return fmt.Errorf("unsupported attribute value type %T", raw)
	}
	return nil
}
