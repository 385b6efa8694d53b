package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the process configuration, read from WORKCOVER_* variables.
type Config struct {
	Port            int    `envconfig:"PORT"`
	DatabasePath    string `envconfig:"DATABASE_PATH"`
	ReadTimeoutSec  int    `envconfig:"READ_TIMEOUT_SEC"`
	WriteTimeoutSec int    `envconfig:"WRITE_TIMEOUT_SEC"`
	LogJSON         bool   `envconfig:"LOG_JSON"`
}

func loadConfig() (*Config, error) {
	c := new(Config)
	if err := envconfig.Process("WORKCOVER", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.Port == 0 {
		c.Port = 8080
	}

	if c.DatabasePath == "" {
		c.DatabasePath = "workcover.db"
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 15
	}

	return c, nil
}
