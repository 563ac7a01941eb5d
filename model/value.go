package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the variants of a Value.
type ValueKind int

const (
	// KindNull is an explicit null value.
	KindNull ValueKind = iota
	// KindString is a string scalar.
	KindString
	// KindInt is an integer scalar.
	KindInt
	// KindFloat is a floating point scalar.
	KindFloat
	// KindBool is a boolean scalar.
	KindBool
	// KindList is an ordered sequence of values.
	KindList
	// KindMap is an ordered mapping of string keys to values.
	KindMap
)

// Value is a dynamically typed parameter value.
//
// Command parameters and function vars carry an open-ended vocabulary that is
// versioned by Evergreen, not by this library, so they are modeled as a tagged
// union instead of concrete fields. Only the field matching Kind is meaningful;
// the rest stay at their zero values so that structural equality works.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	List  []Value
	Map   Mapping
}

// NullValue returns an explicit null value.
func NullValue() Value {
	return Value{Kind: KindNull}
}

// StringValue returns a string value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// IntValue returns an integer value.
func IntValue(i int64) Value {
	return Value{Kind: KindInt, Int: i}
}

// FloatValue returns a floating point value.
func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

// BoolValue returns a boolean value.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// ListValue returns a sequence value holding the given items.
func ListValue(items ...Value) Value {
	return Value{Kind: KindList, List: items}
}

// MapValue returns a mapping value holding the given fields.
func MapValue(fields ...Field) Value {
	return Value{Kind: KindMap, Map: fields}
}

// String renders the value for log and diagnostic output.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindString:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.String()
		}
		return strings.Join(parts, ", ")
	case KindMap:
		return fmt.Sprintf("map[%d fields]", len(v.Map))
	default:
		return fmt.Sprintf("invalid(%d)", v.Kind)
	}
}

// Field is a single key/value pair of a Mapping.
type Field struct {
	Key   string
	Value Value
}

// Mapping is an ordered mapping from string keys to dynamically typed values.
// Insertion order is preserved so that serialization is deterministic and
// matches the declaration order of the source document.
type Mapping []Field

// Get returns the value for key and whether it is present.
// The last occurrence wins if a key was set more than once.
func (m Mapping) Get(key string) (Value, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if m[i].Key == key {
			return m[i].Value, true
		}
	}
	return Value{}, false
}

// Set returns the mapping with key set to value, replacing an existing
// field in place or appending a new one.
func (m Mapping) Set(key string, value Value) Mapping {
	for i := range m {
		if m[i].Key == key {
			m[i].Value = value
			return m
		}
	}
	return append(m, Field{Key: key, Value: value})
}

// Keys returns the mapping keys in declaration order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m))
	for i, f := range m {
		keys[i] = f.Key
	}
	return keys
}
