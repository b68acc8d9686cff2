// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/netkit/core/config"
//
//	type DispatchConfig struct {
//		ListenerTimeout time.Duration `env:"WEBREQUEST_LISTENER_TIMEOUT" envDefault:"0"`
//		MaxPending      int           `env:"WEBREQUEST_MAX_PENDING" envDefault:"0"`
//	}
//
//	func main() {
//		var cfg DispatchConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 DispatchConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 DispatchConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type ProxyConfig struct {
//		BlockStatus int `env:"PROXY_BLOCK_STATUS" envDefault:"403"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&DispatchConfig{})
//	config.MustLoad(&ProxyConfig{})
package config
