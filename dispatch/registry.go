package dispatch

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/mfulz/strategist/matchkey"
)

// Entry is a registered rule: the effective key and the handler type that
// owns it.
type Entry[H any] struct {
	Key  matchkey.Key
	Type *Type[H]
}

// Registry maps rule keys to handler types.
//
// Keys are identified structurally, so a concrete key can be owned by only
// one handler type. Wildcard-only (catch-all) keys are exempt from that check
// and a later registration silently replaces the earlier one.
//
// Registration is meant to happen from init() or an equivalent startup phase;
// Seal freezes the registry afterwards. A Registry is safe for concurrent use.
type Registry[H any] struct {
	mu      sync.RWMutex
	index   map[matchkey.Key]int
	entries []Entry[H]
	sealed  atomic.Bool
	opts    options
}

// NewRegistry creates an empty registry.
func NewRegistry[H any](opts ...Option) *Registry[H] {
	return &Registry[H]{
		index: make(map[matchkey.Key]int),
		opts:  newOptions(opts),
	}
}

// Register adds t under its effective key.
//
// A type without any resolvable key is logged and skipped. Registering a
// concrete key that is already present returns a *DuplicateKeyError.
func (r *Registry[H]) Register(t *Type[H]) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidType)
	}

	key, err := t.EffectiveKey()
	if err != nil {
		return err
	}
	if key == nil {
		r.opts.log().Warn("handler type has no key, not registered", zap.String("type", t.Name))
		return nil
	}
	if t.New == nil {
		return fmt.Errorf("%w: %s has no factory", ErrInvalidType, t.Name)
	}
	if !matchkey.Comparable(key) {
		return fmt.Errorf("%w: %s uses %T", ErrKeyNotComparable, t.Name, key)
	}
	if r.Sealed() {
		return fmt.Errorf("%w: cannot register %s", ErrSealed, t.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Sealed() {
		return fmt.Errorf("%w: cannot register %s", ErrSealed, t.Name)
	}
	if i, exists := r.index[key]; exists {
		if !matchkey.IsWildcardOnly(key) {
			return &DuplicateKeyError{Key: key, Existing: r.entries[i].Type.Name, Incoming: t.Name}
		}
		r.opts.log().Debug("catch-all handler type replaced",
			zap.String("key", matchkey.Format(key)),
			zap.String("previous", r.entries[i].Type.Name),
			zap.String("type", t.Name))
		r.entries[i].Type = t
		return nil
	}

	r.index[key] = len(r.entries)
	r.entries = append(r.entries, Entry[H]{Key: key, Type: t})
	r.opts.log().Debug("handler type registered",
		zap.String("type", t.Name),
		zap.String("key", matchkey.Format(key)))
	return nil
}

// MustRegister panics on registration error. Useful from init() blocks.
func (r *Registry[H]) MustRegister(t *Type[H]) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Define registers every type in order and stops at the first error.
func (r *Registry[H]) Define(types ...*Type[H]) error {
	for _, t := range types {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// Sealed reports whether further registrations are rejected.
func (r *Registry[H]) Sealed() bool { return r.sealed.Load() }

// Seal prevents further registrations. It reports whether this call changed
// the state. Registrations still in flight complete before Seal returns.
func (r *Registry[H]) Seal() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.sealed.Swap(true)
}

// Len returns the number of registered rules.
func (r *Registry[H]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Entries returns a snapshot of all rules in first-registration order.
func (r *Registry[H]) Entries() []Entry[H] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry[H](nil), r.entries...)
}

// Keys returns the registered rule keys in first-registration order.
func (r *Registry[H]) Keys() []matchkey.Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]matchkey.Key, 0, len(r.entries))
	for _, e := range r.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Get returns the handler type registered under exactly k.
func (r *Registry[H]) Get(k matchkey.Key) (*Type[H], bool) {
	if !matchkey.Comparable(k) {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[k]
	if !ok {
		return nil, false
	}
	return r.entries[i].Type, true
}
