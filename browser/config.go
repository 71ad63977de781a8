package browser

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config carries engine-wide settings. Values map to environment variables
// prefixed with BROWSER_, e.g. BROWSER_USER_AGENT.
type Config struct {
	UserAgent           string `envconfig:"USER_AGENT" default:"EssentiaBrowser/1.0"`
	MaxConnections      int    `envconfig:"MAX_CONNECTIONS" default:"6"`
	EnableConsciousness bool   `envconfig:"ENABLE_CONSCIOUSNESS" default:"true"`
	MaxMemoryBytes      uint64 `envconfig:"MAX_MEMORY_BYTES" default:"536870912"`
}

// DefaultConfig returns the built-in defaults without consulting the
// environment.
func DefaultConfig() Config {
	return Config{
		UserAgent:           "EssentiaBrowser/1.0",
		MaxConnections:      6,
		EnableConsciousness: true,
		MaxMemoryBytes:      512 << 20,
	}
}

// ConfigFromEnv loads configuration from BROWSER_* environment variables,
// falling back to defaults for unset keys.
func ConfigFromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process("browser", &c); err != nil {
		return Config{}, errors.Wrap(err, "loading browser config")
	}
	return c, nil
}
