package config

import (
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)
)

// loadDotenv loads a .env file from the working directory exactly once per
// process. A missing file is not an error; an application may rely solely
// on its real environment.
func loadDotenv() {
	dotenvOnce.Do(func() {
		if _, err := os.Stat(".env"); err == nil {
			_ = godotenv.Load()
		}
	})
}

// Load parses environment variables into dst and caches the result keyed by
// dst's pointee type. A second Load for the same type returns the cached
// value instead of re-reading the environment.
func Load[T any](dst *T) error {
	loadDotenv()

	t := reflect.TypeOf(*dst)

	cacheMu.RLock()
	cached, ok := cache[t]
	cacheMu.RUnlock()
	if ok {
		*dst = cached.(T)
		return nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[t]; ok {
		*dst = cached.(T)
		return nil
	}

	if err := env.Parse(dst); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}

	cache[t] = *dst
	return nil
}

// MustLoad is Load, panicking on failure. Intended for application startup
// where a misconfigured environment should halt the process immediately.
func MustLoad[T any](dst *T) {
	if err := Load(dst); err != nil {
		panic(err)
	}
}

// Reset clears the cache. Exposed for tests that need to reload
// configuration from a mutated environment within the same process.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache = make(map[reflect.Type]any)
}
