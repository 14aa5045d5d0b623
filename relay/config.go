package relay

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default listen address. The relay binds to the loopback interface unless
// configured otherwise: it exposes an unauthenticated control surface.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8877
)

// Config holds the relay server settings.
type Config struct {
	// Host is the interface to bind to.
	Host string `yaml:"host"`

	// Port is the TCP port to listen on.
	Port int `yaml:"port"`

	// AllowedOrigin is the value of the Access-Control-Allow-Origin header
	// sent with every response. Browser notebooks call the relay cross-origin.
	AllowedOrigin string `yaml:"allowed-origin"`
}

// DefaultConfig returns the configuration the server runs with when no file
// is given.
func DefaultConfig() Config {
	return Config{
		Host:          DefaultHost,
		Port:          DefaultPort,
		AllowedOrigin: "*",
	}
}

// LoadConfig reads a YAML configuration file. Missing fields keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("config: host must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.AllowedOrigin == "" {
		return fmt.Errorf("config: allowed-origin must not be empty")
	}
	return nil
}

// Addr returns the host:port string the server listens on.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
