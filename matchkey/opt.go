package matchkey

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// WildcardText is the textual form of a wildcard slot.
const WildcardText = "*"

// Opt is an optional slot value. The zero value is a wildcard.
type Opt[T comparable] struct {
	v  T
	ok bool
}

// Some returns a concrete slot holding v.
func Some[T comparable](v T) Opt[T] {
	return Opt[T]{v: v, ok: true}
}

// Any returns a wildcard slot. It is the same as the zero value.
func Any[T comparable]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether the slot is concrete.
func (o Opt[T]) Get() (T, bool) {
	return o.v, o.ok
}

// IsWildcard reports whether the slot is empty.
func (o Opt[T]) IsWildcard() bool { return !o.ok }

// Value returns the concrete value, or nil for a wildcard.
func (o Opt[T]) Value() any {
	if !o.ok {
		return nil
	}
	return o.v
}

func (o Opt[T]) String() string {
	if !o.ok {
		return WildcardText
	}
	return fmt.Sprintf("%v", o.v)
}

// MarshalYAML encodes a wildcard as null.
func (o Opt[T]) MarshalYAML() (any, error) {
	if !o.ok {
		return nil, nil
	}
	return o.v, nil
}

// UnmarshalYAML decodes null, ~ and "*" as a wildcard and anything else as a
// concrete value of type T.
func (o *Opt[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && (node.ShortTag() == "!!null" || node.Value == WildcardText) {
		*o = Opt[T]{}
		return nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("decode slot at line %d: %w", node.Line, err)
	}
	*o = Some(v)
	return nil
}
