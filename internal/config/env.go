package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
type Config struct {
	Port           string `envconfig:"PORT" default:"8080"`
	StorePath      string `envconfig:"WALLET_STORE_PATH" default:"wallets.db"`
	SessionTTLMins int    `envconfig:"SESSION_TTL_MINUTES" default:"15"`

	// Argon2id overrides; zero values fall back to the vault defaults.
	KDFTime      uint32 `envconfig:"KDF_TIME" default:"0"`
	KDFMemoryKiB uint32 `envconfig:"KDF_MEMORY_KIB" default:"0"`
	KDFThreads   uint8  `envconfig:"KDF_THREADS" default:"0"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetStorePath returns the wallet store file path
func GetStorePath() string {
	return Get().StorePath
}

// GetSessionTTL returns the configured session lifetime
func GetSessionTTL() time.Duration {
	return time.Duration(Get().SessionTTLMins) * time.Minute
}
