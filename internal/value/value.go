// Package value implements the structured values exchanged over method
// channels: a small tagged variant with type-checking accessors.
package value

import (
	"errors"
	"fmt"
	"math"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
	KindBytes
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindBytes:
		return "bytes"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrTypeMismatch is matched by every *TypeError.
	ErrTypeMismatch = errors.New("value type mismatch")
	// ErrIndexOutOfRange is returned by Index for a bad position.
	ErrIndexOutOfRange = errors.New("list index out of range")
)

// TypeError reports an accessor used on the wrong kind of value.
type TypeError struct {
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("expected %s value, got %s", e.Want, e.Got)
}

func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// Entry is one key/value pair of a map value.
type Entry struct {
	Key   string
	Value Value
}

// Value is an immutable structured value. The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	list    []Value
	entries []Entry
	bytes   []byte
}

func Null() Value             { return Value{} }
func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Int(i int64) Value       { return Value{kind: KindInt, i: i} }
func Float(f float64) Value   { return Value{kind: KindFloat, f: f} }
func String(s string) Value   { return Value{kind: KindString, s: s} }
func Bytes(data []byte) Value { return Value{kind: KindBytes, bytes: append([]byte(nil), data...)} }

// List returns a list value holding items in order.
func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value{}, items...)}
}

// NewMap returns an empty map value. Populate it with Set.
func NewMap() Value {
	return Value{kind: KindMap, entries: []Entry{}}
}

// Set returns a copy of the map with key bound to v. An existing key keeps
// its position; a new key is appended.
func (v Value) Set(key string, item Value) Value {
	if v.kind != KindMap {
		v = NewMap()
	}
	entries := make([]Entry, len(v.entries), len(v.entries)+1)
	copy(entries, v.entries)
	for i := range entries {
		if entries[i].Key == key {
			entries[i].Value = item
			return Value{kind: KindMap, entries: entries}
		}
	}
	return Value{kind: KindMap, entries: append(entries, Entry{Key: key, Value: item})}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) mismatch(want Kind) error {
	return &TypeError{Want: want, Got: v.kind}
}

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.b, nil
}

func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, v.mismatch(KindInt)
	}
	return v.i, nil
}

func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, v.mismatch(KindFloat)
	}
	return v.f, nil
}

// AsNumber accepts either numeric kind and widens it to float64.
func (v Value) AsNumber() (float64, error) {
	switch v.kind {
	case KindInt:
		return float64(v.i), nil
	case KindFloat:
		return v.f, nil
	default:
		return 0, v.mismatch(KindFloat)
	}
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.s, nil
}

func (v Value) AsBytes() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, v.mismatch(KindBytes)
	}
	return append([]byte(nil), v.bytes...), nil
}

// Len returns the number of items of a list or entries of a map.
func (v Value) Len() (int, error) {
	switch v.kind {
	case KindList:
		return len(v.list), nil
	case KindMap:
		return len(v.entries), nil
	default:
		return 0, v.mismatch(KindList)
	}
}

// Index returns the i-th item of a list value.
func (v Value) Index(i int) (Value, error) {
	if v.kind != KindList {
		return Value{}, v.mismatch(KindList)
	}
	if i < 0 || i >= len(v.list) {
		return Value{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(v.list))
	}
	return v.list[i], nil
}

// Lookup returns the value stored under key in a map value.
func (v Value) Lookup(key string) (Value, bool, error) {
	if v.kind != KindMap {
		return Value{}, false, v.mismatch(KindMap)
	}
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true, nil
		}
	}
	return Value{}, false, nil
}

// Keys returns the map keys in insertion order.
func (v Value) Keys() ([]string, error) {
	if v.kind != KindMap {
		return nil, v.mismatch(KindMap)
	}
	keys := make([]string, len(v.entries))
	for i, e := range v.entries {
		keys[i] = e.Key
	}
	return keys, nil
}

// Equal reports structural equality. Map comparison ignores entry order and
// NaN floats never compare equal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindBytes:
		return string(a.bytes) == string(b.bytes)
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.entries) != len(b.entries) {
			return false
		}
		for _, e := range a.entries {
			other, ok, _ := b.Lookup(e.Key)
			if !ok || !Equal(e.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return fmt.Sprintf("%v", v.f)
		}
		return formatFloat(v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	case KindBytes:
		return fmt.Sprintf("bytes[%d]", len(v.bytes))
	default:
		data, err := v.MarshalJSON()
		if err != nil {
			return fmt.Sprintf("<%s: %v>", v.kind, err)
		}
		return string(data)
	}
}
