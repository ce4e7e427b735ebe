// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the beacon CLI configuration from a YAML file with
// environment variable overrides.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tombee/beacon/pkg/errors"
)

// Config is the top-level beacon configuration.
type Config struct {
	// Endpoint is the spaces service base URL.
	Endpoint string `yaml:"endpoint"`

	// Token is the bearer credential. Prefer the BEACON_TOKEN environment
	// variable over committing it to a file.
	Token string `yaml:"token,omitempty"`

	// SpaceID selects the space runs are reported into.
	SpaceID string `yaml:"space_id"`

	// TeamID and TeamSlug scope requests to a team namespace.
	TeamID   string `yaml:"team_id,omitempty"`
	TeamSlug string `yaml:"team_slug,omitempty"`

	// Preflight enables CORS preflight negotiation before every request.
	Preflight bool `yaml:"preflight,omitempty"`

	// HTTP tunes the retrying transport.
	HTTP HTTPConfig `yaml:"http,omitempty"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log,omitempty"`
}

// HTTPConfig tunes the retrying transport.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	RetryAttempts int           `yaml:"retry_attempts,omitempty"`
	RetryBackoff  time.Duration `yaml:"retry_backoff,omitempty"`
	RateLimit     float64       `yaml:"rate_limit,omitempty"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Default returns the configuration defaults applied before file and
// environment values.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			RetryAttempts: 2,
			RetryBackoff:  2 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from path (optional), applies environment
// overrides, and validates the result. An empty path skips the file and
// uses defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation. Callers that layer additional values
// on top (CLI flags) validate once the merge is complete.
func Read(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &errors.ConfigError{Key: "file", Reason: "cannot read config file", Cause: err}
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &errors.ConfigError{Key: "file", Reason: "invalid YAML", Cause: err}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets the environment win over file values.
// Supported variables: BEACON_ENDPOINT, BEACON_TOKEN, BEACON_SPACE_ID,
// BEACON_TEAM_ID, BEACON_TEAM_SLUG, BEACON_PREFLIGHT, BEACON_HTTP_TIMEOUT,
// BEACON_HTTP_RETRY_ATTEMPTS, BEACON_HTTP_RETRY_BACKOFF.
func (c *Config) applyEnvOverrides() {
	if val := os.Getenv("BEACON_ENDPOINT"); val != "" {
		c.Endpoint = val
	}
	if val := os.Getenv("BEACON_TOKEN"); val != "" {
		c.Token = val
	}
	if val := os.Getenv("BEACON_SPACE_ID"); val != "" {
		c.SpaceID = val
	}
	if val := os.Getenv("BEACON_TEAM_ID"); val != "" {
		c.TeamID = val
	}
	if val := os.Getenv("BEACON_TEAM_SLUG"); val != "" {
		c.TeamSlug = val
	}
	if val := os.Getenv("BEACON_PREFLIGHT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Preflight = b
		}
	}
	if val := os.Getenv("BEACON_HTTP_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.HTTP.Timeout = d
		}
	}
	if val := os.Getenv("BEACON_HTTP_RETRY_ATTEMPTS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			c.HTTP.RetryAttempts = n
		}
	}
	if val := os.Getenv("BEACON_HTTP_RETRY_BACKOFF"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.HTTP.RetryBackoff = d
		}
	}
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return &errors.ConfigError{Key: "endpoint", Reason: "spaces endpoint is required"}
	}
	if c.SpaceID == "" {
		return &errors.ConfigError{Key: "space_id", Reason: "space id is required"}
	}
	if c.HTTP.Timeout < 0 {
		return &errors.ConfigError{Key: "http.timeout", Reason: "must not be negative"}
	}
	if c.HTTP.RetryAttempts < 0 {
		return &errors.ConfigError{Key: "http.retry_attempts", Reason: "must not be negative"}
	}
	if c.HTTP.RateLimit < 0 {
		return &errors.ConfigError{Key: "http.rate_limit", Reason: "must not be negative"}
	}
	return nil
}
