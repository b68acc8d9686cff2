package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrConfigLoad wraps environment parse failures.
var ErrConfigLoad = errors.New("config: failed to load")

var (
	dotenvOnce sync.Once

	cacheMu sync.RWMutex
	cache   = map[reflect.Type]any{}
)

// Load populates cfg from the environment. cfg must be a non-nil pointer to
// a struct with env tags. The first call for a given struct type parses the
// environment; subsequent calls for the same type return the cached value,
// so every loader of a type observes identical configuration.
//
// A .env file in the working directory is applied to the process environment
// once, before the first parse; a missing file is not an error.
func Load(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected non-nil struct pointer, got %T", ErrConfigLoad, cfg)
	}
	typ := v.Elem().Type()

	cacheMu.RLock()
	cached, ok := cache[typ]
	cacheMu.RUnlock()
	if ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	dotenvOnce.Do(func() {
		// Best effort: absence of a .env file is the normal case.
		_ = godotenv.Load()
	})

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cached, ok := cache[typ]; ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrConfigLoad, typ, err)
	}
	cache[typ] = v.Elem().Interface()
	return nil
}

// MustLoad is Load panicking on failure. Useful at startup, where a missing
// required variable should stop the process.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
