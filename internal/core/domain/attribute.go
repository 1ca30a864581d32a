// Package domain contains the core domain models for variant-aware
// dependency resolution and artifact transforms.
package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the value type of an attribute.
type Kind uint8

const (
	// KindInvalid is the zero Kind. A Value of this kind carries no data.
	KindInvalid Kind = iota
	// KindBool is a boolean attribute value.
	KindBool
	// KindString is a string attribute value.
	KindString
	// KindInt is a 64-bit integer attribute value.
	KindInt
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	default:
		return "invalid"
	}
}

// Value is a typed attribute value. Equality and ordering are defined
// per kind; values of different kinds are never equal and order by kind.
type Value struct {
	kind Kind
	b    bool
	s    string
	i    int64
}

// BoolValue creates a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// StringValue creates a string Value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// IntValue creates an integer Value.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload. Only meaningful for KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload. Only meaningful for KindInt.
func (v Value) Int() int64 { return v.i }

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	return v == o
}

// Less defines a total order over values: first by kind, then by payload.
func (v Value) Less(o Value) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case KindBool:
		return !v.b && o.b
	case KindInt:
		return v.i < o.i
	default:
		return v.s < o.s
	}
}

// String returns the display form of the value.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindString:
		return v.s
	default:
		return "<invalid>"
	}
}

// Attribute is a typed attribute name as registered in a schema.
type Attribute struct {
	Name string
	Kind Kind
}

// AttributeSet is an immutable mapping from attribute name to value.
// The constructor copies its input and all mutating operations return a
// new set, so a set attached to a published variant never changes.
type AttributeSet struct {
	attrs map[string]Value
}

// NewAttributeSet creates an AttributeSet from the given mapping.
func NewAttributeSet(attrs map[string]Value) AttributeSet {
	if len(attrs) == 0 {
		return AttributeSet{}
	}
	m := make(map[string]Value, len(attrs))
	for k, v := range attrs {
		m[k] = v
	}
	return AttributeSet{attrs: m}
}

// EmptyAttributeSet returns a set with no attributes.
func EmptyAttributeSet() AttributeSet { return AttributeSet{} }

// Len returns the number of attributes in the set.
func (s AttributeSet) Len() int { return len(s.attrs) }

// Get returns the value for name and whether it is present.
func (s AttributeSet) Get(name string) (Value, bool) {
	v, ok := s.attrs[name]
	return v, ok
}

// Contains reports whether name is present in the set.
func (s AttributeSet) Contains(name string) bool {
	_, ok := s.attrs[name]
	return ok
}

// Names returns the attribute names in sorted order.
// Sorted iteration keeps hashing and error messages deterministic.
func (s AttributeSet) Names() []string {
	names := make([]string, 0, len(s.attrs))
	for name := range s.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// With returns a copy of the set with name bound to value.
func (s AttributeSet) With(name string, value Value) AttributeSet {
	m := make(map[string]Value, len(s.attrs)+1)
	for k, v := range s.attrs {
		m[k] = v
	}
	m[name] = value
	return AttributeSet{attrs: m}
}

// Without returns a copy of the set with name removed.
func (s AttributeSet) Without(name string) AttributeSet {
	if !s.Contains(name) {
		return s
	}
	m := make(map[string]Value, len(s.attrs))
	for k, v := range s.attrs {
		if k != name {
			m[k] = v
		}
	}
	return AttributeSet{attrs: m}
}

// Equal reports whether both sets bind the same names to equal values.
func (s AttributeSet) Equal(o AttributeSet) bool {
	if len(s.attrs) != len(o.attrs) {
		return false
	}
	for k, v := range s.attrs {
		ov, ok := o.attrs[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// String returns the canonical "name=value,name=value" form with names sorted.
func (s AttributeSet) String() string {
	if len(s.attrs) == 0 {
		return "{}"
	}
	var b strings.Builder
	for i, name := range s.Names() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(s.attrs[name].String())
	}
	return b.String()
}
