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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/beacon/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beacon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
endpoint: https://api.example.com
token: tok_123
space_id: space1
team_id: team_abc
team_slug: acme
preflight: true
http:
  retry_attempts: 4
log:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Endpoint)
	assert.Equal(t, "tok_123", cfg.Token)
	assert.Equal(t, "space1", cfg.SpaceID)
	assert.Equal(t, "team_abc", cfg.TeamID)
	assert.Equal(t, "acme", cfg.TeamSlug)
	assert.True(t, cfg.Preflight)
	assert.Equal(t, 4, cfg.HTTP.RetryAttempts)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DurationFromEnv(t *testing.T) {
	t.Setenv("BEACON_ENDPOINT", "https://env.example.com")
	t.Setenv("BEACON_SPACE_ID", "space1")
	t.Setenv("BEACON_HTTP_TIMEOUT", "10s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
}

func TestLoad_RetryTuningFromEnv(t *testing.T) {
	t.Setenv("BEACON_ENDPOINT", "https://env.example.com")
	t.Setenv("BEACON_SPACE_ID", "space1")
	t.Setenv("BEACON_HTTP_RETRY_ATTEMPTS", "5")
	t.Setenv("BEACON_HTTP_RETRY_BACKOFF", "250ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.HTTP.RetryAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.HTTP.RetryBackoff)
}

func TestLoad_MalformedRetryAttemptsIgnored(t *testing.T) {
	t.Setenv("BEACON_ENDPOINT", "https://env.example.com")
	t.Setenv("BEACON_SPACE_ID", "space1")
	t.Setenv("BEACON_HTTP_RETRY_ATTEMPTS", "-3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().HTTP.RetryAttempts, cfg.HTTP.RetryAttempts)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
endpoint: https://file.example.com
token: from_file
space_id: space1
`)

	t.Setenv("BEACON_ENDPOINT", "https://env.example.com")
	t.Setenv("BEACON_TOKEN", "from_env")
	t.Setenv("BEACON_PREFLIGHT", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Endpoint)
	assert.Equal(t, "from_env", cfg.Token)
	assert.True(t, cfg.Preflight)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("BEACON_ENDPOINT", "https://env.example.com")
	t.Setenv("BEACON_SPACE_ID", "space9")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Endpoint)
	assert.Equal(t, "space9", cfg.SpaceID)
	// Defaults survive when neither file nor env set them.
	assert.Equal(t, 2, cfg.HTTP.RetryAttempts)
}

func TestLoad_MissingEndpoint(t *testing.T) {
	path := writeConfig(t, `space_id: space1`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "endpoint", cfgErr.Key)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "endpoint: [unterminated")

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "file", cfgErr.Key)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
