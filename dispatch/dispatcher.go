// Package dispatch provides the rule registry and the dispatcher that turns a
// query key into fresh instances of every handler type whose rule key matches.
package dispatch

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/mfulz/strategist/matchkey"
)

// Dispatcher resolves query keys against a Registry.
type Dispatcher[H any] struct {
	registry *Registry[H]
	opts     options
	memo     *gocache.Cache
}

// NewDispatcher creates a Dispatcher reading from r.
func NewDispatcher[H any](r *Registry[H], opts ...Option) *Dispatcher[H] {
	d := &Dispatcher[H]{
		registry: r,
		opts:     newOptions(opts),
	}
	if d.opts.cache {
		ttl := d.opts.cacheTTL
		cleanup := 2 * ttl
		if ttl <= 0 {
			ttl = gocache.NoExpiration
			cleanup = 0
		}
		d.memo = gocache.New(ttl, cleanup)
	}
	return d
}

// Lookup returns one new instance of every handler type whose rule key
// matches query. The result is never shared and may be empty. Order follows
// registration order but is not part of the contract.
func (d *Dispatcher[H]) Lookup(query matchkey.Key) []H {
	types := d.Resolve(query)
	out := make([]H, 0, len(types))
	for _, t := range types {
		out = append(out, t.New())
	}
	return out
}

// Resolve returns the handler types whose rule key matches query without
// instantiating them.
func (d *Dispatcher[H]) Resolve(query matchkey.Key) []*Type[H] {
	if query == nil {
		return nil
	}

	cacheKey := ""
	if d.memo != nil && d.registry.Sealed() {
		cacheKey = memoKey(query)
		if v, ok := d.memo.Get(cacheKey); ok {
			if types, ok := v.([]*Type[H]); ok {
				return append([]*Type[H](nil), types...)
			}
		}
	}

	types := d.scan(query)
	if cacheKey != "" {
		d.memo.SetDefault(cacheKey, append([]*Type[H](nil), types...))
	}
	return types
}

// memoKey encodes query without the ambiguities of matchkey.Format: string
// values are quoted, wildcards are distinct from any concrete value and every
// value carries its dynamic type.
func memoKey(query matchkey.Key) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%T", query)
	for _, f := range query.Fields() {
		if f.Slot.IsWildcard() {
			fmt.Fprintf(&b, "|%s", f.Name)
			continue
		}
		v := f.Slot.Value()
		fmt.Fprintf(&b, "|%s=%T(%#v)", f.Name, v, v)
	}
	return b.String()
}

func (d *Dispatcher[H]) scan(query matchkey.Key) []*Type[H] {
	log := d.opts.log()
	trace := log.Core().Enabled(zap.DebugLevel)
	if trace {
		log = log.With(zap.String("lookup", uuid.NewString()), zap.String("key", matchkey.Format(query)))
	}

	var out []*Type[H]
	for _, e := range d.registry.Entries() {
		ok, miss := matchkey.Explain(e.Key, query)
		if ok {
			out = append(out, e.Type)
			continue
		}
		if trace {
			log.Debug("rule rejected",
				zap.String("type", e.Type.Name),
				zap.String("field", miss.Field),
				zap.String("rule", miss.Rule),
				zap.String("query", miss.Query))
		}
	}
	if trace {
		log.Debug("lookup resolved", zap.Int("matches", len(out)))
	}
	return out
}
