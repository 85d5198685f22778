// Package matchkey defines the structured, partially wildcarded keys used to
// select handlers. A key belongs to a fixed category and carries an ordered
// set of named slots; an empty slot is a wildcard on the rule side.
//
// Concrete key types are small comparable structs built from Opt slots:
//
//	type CharacterKey struct {
//		CharID  matchkey.Opt[int] `yaml:"char_id"`
//		AILevel matchkey.Opt[int] `yaml:"ai_level"`
//	}
//
//	func (CharacterKey) Category() matchkey.Category { return "char" }
//
//	func (k CharacterKey) Fields() []matchkey.Field {
//		return []matchkey.Field{
//			{Name: "char_id", Slot: k.CharID},
//			{Name: "ai_level", Slot: k.AILevel},
//		}
//	}
package matchkey

import (
	"fmt"
	"reflect"
	"strings"
)

// Category is the discriminant of a key schema.
type Category string

// Key is implemented by every concrete key type.
//
// Implementations must be value types whose dynamic type is comparable, so
// that two keys with equal fields compare equal with == and can be used as
// map keys. Fields must always return the same names in the same order.
type Key interface {
	Category() Category
	Fields() []Field
}

// Slot is a single field value that is either concrete or a wildcard.
type Slot interface {
	IsWildcard() bool
	// Value returns the concrete value, or nil for a wildcard. The value must
	// be comparable with ==.
	Value() any
	String() string
}

// Field pairs a field name with its slot.
type Field struct {
	Name string
	Slot Slot
}

// IsWildcardOnly reports whether every field of k is a wildcard. The category
// is not a field and never counts.
func IsWildcardOnly(k Key) bool {
	for _, f := range k.Fields() {
		if !f.Slot.IsWildcard() {
			return false
		}
	}
	return true
}

// Equal reports structural equality: same concrete type, same category and
// equal slots. Unlike Match it is symmetric and treats wildcards literally.
func Equal(a, b Key) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) || a.Category() != b.Category() {
		return false
	}
	fa, fb := a.Fields(), b.Fields()
	if len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if fa[i].Name != fb[i].Name {
			return false
		}
		if fa[i].Slot.IsWildcard() != fb[i].Slot.IsWildcard() {
			return false
		}
		if !fa[i].Slot.IsWildcard() && !sameValue(fa[i].Slot.Value(), fb[i].Slot.Value()) {
			return false
		}
	}
	return true
}

// Comparable reports whether k can be used as a map key. Besides the key
// type itself, every concrete slot value must be comparable, which matters
// for slots typed as interfaces such as Opt[any].
func Comparable(k Key) bool {
	if k == nil || !reflect.TypeOf(k).Comparable() {
		return false
	}
	for _, f := range k.Fields() {
		if f.Slot.IsWildcard() {
			continue
		}
		if v := f.Slot.Value(); v != nil && !reflect.TypeOf(v).Comparable() {
			return false
		}
	}
	return true
}

// sameValue is == on slot values that never panics: values of different
// dynamic types or of non-comparable types are unequal.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// Format renders k as "category(field=value, ...)" with "*" for wildcards.
func Format(k Key) string {
	if k == nil {
		return "<nil>"
	}
	fields := k.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%s", f.Name, f.Slot))
	}
	return fmt.Sprintf("%s(%s)", k.Category(), strings.Join(parts, ", "))
}
