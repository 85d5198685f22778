// Package configloader is a typed, process-wide registry for configuration
// instances. The CLI publishes its loaded config here and packages such as
// logging read their section back without importing the config package.
//
// Typical usage:
//
//	configloader.RegisterConfig(&logging.Config{Level: "info"})
//	cfg := configloader.MustGetConfig[*logging.Config]()
package configloader

import (
	"fmt"
	"reflect"
	"sync"
)

var registry sync.Map // key = reflect.Type of the config type, value = registered config instance

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterConfig registers a config instance of type T.
//
// It panics if a config of the same type is already registered.
func RegisterConfig[T any](cfg T) {
	if _, loaded := registry.LoadOrStore(typeOf[T](), cfg); loaded {
		panic(fmt.Sprintf("config already registered for type %v", typeOf[T]()))
	}
}

// SetConfig registers cfg, replacing any instance of the same type.
func SetConfig[T any](cfg T) {
	registry.Store(typeOf[T](), cfg)
}

// MustGetConfig retrieves the registered config instance of type T.
//
// It panics if no config of type T has been registered.
func MustGetConfig[T any]() T {
	if cfg, ok := TryGetConfig[T](); ok {
		return cfg
	}
	panic(fmt.Sprintf("no config registered for type %v", typeOf[T]()))
}

// TryGetConfig retrieves the registered config instance of type T.
//
// It returns (zero-value, false) if the config was not found.
func TryGetConfig[T any]() (T, bool) {
	if val, ok := registry.Load(typeOf[T]()); ok {
		return val.(T), true
	}
	var zero T
	return zero, false
}
