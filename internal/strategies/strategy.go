// Package strategies holds the combat strategy handlers. Every strategy type
// registers itself into Registry from init(), so importing the package is
// enough to make it available to a Dispatcher.
package strategies

import (
	"github.com/mfulz/strategist/dispatch"
	"github.com/mfulz/strategist/matchkey"
)

// Strategy is implemented by every strategy handler.
type Strategy interface {
	BeforeAttack()
}

// Registry is the process-wide strategy registry.
var Registry = dispatch.NewRegistry[Strategy]()

// Base is the abstract root of all strategy types. It declares no key and is
// never registered itself.
var Base = &dispatch.Type[Strategy]{Name: "BaseStrategy"}

// NewDispatcher returns a dispatcher over Registry.
func NewDispatcher(opts ...dispatch.Option) *dispatch.Dispatcher[Strategy] {
	return dispatch.NewDispatcher(Registry, opts...)
}

// Lookup returns a fresh instance of every strategy matching key.
func Lookup(key matchkey.Key) []Strategy {
	return NewDispatcher().Lookup(key)
}
