package dispatch

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Registry or a Dispatcher. Options that do not apply to
// the component they are passed to are ignored.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	cache    bool
	cacheTTL time.Duration
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger. By default the process-wide zap logger
// (zap.L) is used at the time of logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCache makes a Dispatcher memoize which handler types match a query
// key. The memo is only consulted once the registry is sealed. A ttl of zero
// keeps entries forever.
func WithCache(ttl time.Duration) Option {
	return func(o *options) {
		o.cache = true
		o.cacheTTL = ttl
	}
}

func (o options) log() *zap.Logger {
	if o.logger != nil {
		return o.logger
	}
	return zap.L().Named("dispatch")
}
