// Package config loads environment variables into typed structs. Each struct
// type is parsed once and cached; later loads of the same type copy the cached
// value.
//
// A .env file in the working directory is read on first use via
// joho/godotenv (a missing file is fine), then caarlos0/env parses the
// environment into the struct's `env` tags.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/signals/core/config"
//
//	type AppConfig struct {
//		Env       string `env:"APP_ENV" envDefault:"development"`
//		Name      string `env:"APP_NAME" envDefault:"sisi"`
//		LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
//		LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
//	}
//
//	func main() {
//		var cfg AppConfig
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure
//		config.MustLoad(&cfg)
//	}
//
// # Caching
//
// Types are cached independently. Tests that change the environment between
// loads call Reset first:
//
//	t.Setenv("APP_ENV", "production")
//	config.Reset()
//	config.MustLoad(&cfg)
package config
