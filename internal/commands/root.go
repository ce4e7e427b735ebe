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

// Package commands implements the beacon CLI.
package commands

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/tombee/beacon/internal/config"
	"github.com/tombee/beacon/internal/log"
	"github.com/tombee/beacon/pkg/httpclient"
	"github.com/tombee/beacon/pkg/spaces"
)

// rootOptions carries flag values shared by every subcommand.
type rootOptions struct {
	configPath string
	endpoint   string
	token      string
	spaceID    string
	teamID     string
	teamSlug   string
	preflight  bool
}

// NewRootCommand creates the beacon root command.
func NewRootCommand(info VersionInfo) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "beacon",
		Short: "Report build runs and tasks to a spaces service",
		Long: `beacon packages run and task telemetry into JSON payloads and delivers
them to a remote spaces service over authenticated HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to beacon.yaml (optional)")
	flags.StringVar(&opts.endpoint, "endpoint", "", "spaces service base URL")
	flags.StringVar(&opts.token, "token", "", "bearer token (prefer BEACON_TOKEN)")
	flags.StringVar(&opts.spaceID, "space", "", "space id to report into")
	flags.StringVar(&opts.teamID, "team-id", "", "team id for request scoping")
	flags.StringVar(&opts.teamSlug, "team-slug", "", "team slug for request scoping")
	flags.BoolVar(&opts.preflight, "preflight", false, "negotiate a CORS preflight before each request")

	cmd.AddCommand(
		newRunStartCommand(opts, info.Version),
		newTaskCommand(opts),
		newRunFinishCommand(opts),
		newVersionCommand(info),
	)
	cmd.SetHelpCommand(newHelpCommand(cmd))

	return cmd
}

// loadConfig merges file, environment, and flag values; flags win.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Read(o.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("endpoint") {
		cfg.Endpoint = o.endpoint
	}
	if cmd.Flags().Changed("token") {
		cfg.Token = o.token
	}
	if cmd.Flags().Changed("space") {
		cfg.SpaceID = o.spaceID
	}
	if cmd.Flags().Changed("team-id") {
		cfg.TeamID = o.teamID
	}
	if cmd.Flags().Changed("team-slug") {
		cfg.TeamSlug = o.teamSlug
	}
	if cmd.Flags().Changed("preflight") {
		cfg.Preflight = o.preflight
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildClient constructs the reporting client and its logger from config.
func buildClient(cfg *config.Config) (*spaces.Client, *slog.Logger, error) {
	logCfg := log.FromEnv()
	if cfg.Log.Level != "" {
		logCfg.Level = cfg.Log.Level
	}
	if cfg.Log.Format != "" {
		logCfg.Format = log.Format(cfg.Log.Format)
	}
	logger := log.New(logCfg)

	httpCfg := httpclient.DefaultConfig()
	if cfg.HTTP.Timeout > 0 {
		httpCfg.Timeout = cfg.HTTP.Timeout
	}
	httpCfg.RetryAttempts = cfg.HTTP.RetryAttempts
	if cfg.HTTP.RetryBackoff > 0 {
		httpCfg.RetryBackoff = cfg.HTTP.RetryBackoff
	}
	httpCfg.RateLimit = cfg.HTTP.RateLimit

	client, err := spaces.NewClient(spaces.Config{
		BaseURL:      cfg.Endpoint,
		UsePreflight: cfg.Preflight,
		HTTP:         httpCfg,
		Logger:       log.WithComponent(logger, "spaces"),
	})
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}

func (o *rootOptions) auth(cfg *config.Config) spaces.APIAuth {
	return spaces.APIAuth{
		Token:    cfg.Token,
		TeamID:   cfg.TeamID,
		TeamSlug: cfg.TeamSlug,
	}
}

// nowMillis is a seam for tests.
var nowMillis = func() int64 { return time.Now().UnixMilli() }
