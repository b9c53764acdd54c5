package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the marketplace API. Values from the
// yaml file are overridden by environment variables, so deployments can ship
// a file with defaults and tune single values per environment.
type Config struct {
	ServerAddress string `yaml:"server_address"`
	PostgresConn  string `yaml:"postgres_conn"`
	AmqpUrl       string `yaml:"amqp_url"`
}

// Load reads an optional yaml config file and applies env overrides. A missing
// file is not an error; env-only configuration is a supported deployment mode.
func Load(path string) (*Config, error) {
	cfg := &Config{ServerAddress: ":8080"}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		cfg.ServerAddress = v
	}

	if v := os.Getenv("POSTGRES_CONN"); v != "" {
		cfg.PostgresConn = v
	}

	if v := os.Getenv("AMQP_URL"); v != "" {
		cfg.AmqpUrl = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server address cannot be empty")
	}

	return nil
}
