// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/pahanaedu/bookstore/core/config"
//
//	type SessionConfig struct {
//		Timeout     time.Duration `env:"SESSION_TIMEOUT" envDefault:"30m"`
//		WarningLead time.Duration `env:"SESSION_WARNING_LEAD" envDefault:"5m"`
//		BaseURL     string        `env:"POS_BASE_URL,required"`
//	}
//
//	func main() {
//		var cfg SessionConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 SessionConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 SessionConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type LogConfig struct {
//		Level string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	// Each type has its own cache entry
//	_ = config.Load(&SessionConfig{})
//	_ = config.Load(&LogConfig{})
//
// Tests that change the environment call Reset to drop cached values.
package config
