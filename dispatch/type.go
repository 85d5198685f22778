package dispatch

import (
	"fmt"

	"github.com/mfulz/strategist/matchkey"
)

// Type describes a handler type: a name, the rule key it answers to and a
// factory for fresh instances.
//
// A Type without its own Key inherits the key of the nearest ancestor in the
// Parent chain that declares one. Types that resolve to no key at all (e.g.
// an abstract base) are skipped at registration.
type Type[H any] struct {
	Name   string
	Key    matchkey.Key
	Parent *Type[H]
	New    func() H
}

// EffectiveKey resolves the key t is registered under. It returns a nil key
// and no error when neither t nor any ancestor declares one.
func (t *Type[H]) EffectiveKey() (matchkey.Key, error) {
	seen := make(map[*Type[H]]struct{})
	for cur := t; cur != nil; cur = cur.Parent {
		if _, loop := seen[cur]; loop {
			return nil, fmt.Errorf("%w: %s", ErrInheritanceCycle, t.Name)
		}
		seen[cur] = struct{}{}

		if cur.Key != nil {
			return cur.Key, nil
		}
	}
	return nil, nil
}

func (t *Type[H]) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Name
}
