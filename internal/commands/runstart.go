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

package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tombee/beacon/internal/ci"
	"github.com/tombee/beacon/internal/log"
	"github.com/tombee/beacon/internal/tracing"
	"github.com/tombee/beacon/pkg/spaces"
)

// relPath renders a repository-relative directory for the run payload.
type relPath string

func (p relPath) String() string { return string(p) }

type runStartOptions struct {
	command   string
	repoRoot  string
	gitBranch string
	gitSha    string
	user      string
	startTime int64
}

func newRunStartCommand(root *rootOptions, version string) *cobra.Command {
	opts := &runStartOptions{}

	cmd := &cobra.Command{
		Use:   "run-start",
		Short: "Open a run and print its server-assigned handle",
		Long: `run-start reports the beginning of a build run. On success it prints the
server-assigned run handle as JSON; pass the handle's id to the task and
run-finish commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			client, logger, err := buildClient(cfg)
			if err != nil {
				return err
			}

			opts.fillFromEnvironment()

			start := time.Now()
			if opts.startTime > 0 {
				start = time.UnixMilli(opts.startTime)
			}

			var inferenceRoot fmt.Stringer
			if opts.repoRoot != "" {
				inferenceRoot = relPath(opts.repoRoot)
			}

			payload := spaces.NewCreateRunPayload(
				start,
				opts.command,
				inferenceRoot,
				opts.gitBranch,
				opts.gitSha,
				version,
				opts.user,
			)

			ctx := tracing.ToContext(cmd.Context(), tracing.NewCorrelationID())
			run, err := client.CreateRun(ctx, cfg.SpaceID, root.auth(cfg), payload)
			if err != nil {
				return err
			}

			logger.Info("run opened",
				log.SpaceIDKey, cfg.SpaceID,
				log.RunIDKey, run.ID,
			)

			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(run)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.command, "command", "", "full invocation being reported")
	flags.StringVar(&opts.repoRoot, "repo-root", "", "repository-relative directory the run was started from")
	flags.StringVar(&opts.gitBranch, "git-branch", "", "git branch (default: inferred from CI environment)")
	flags.StringVar(&opts.gitSha, "git-sha", "", "git commit sha (default: inferred from CI environment)")
	flags.StringVar(&opts.user, "user", "", "originating user (default: inferred from CI environment, then $USER)")
	flags.Int64Var(&opts.startTime, "start-time", 0, "run start as Unix milliseconds (default: now)")

	return cmd
}

// fillFromEnvironment fills blank git metadata from the detected CI
// vendor's well-known variables, falling back to $USER for the user.
func (o *runStartOptions) fillFromEnvironment() {
	if vendor := ci.Infer(); vendor != nil {
		if o.gitSha == "" && vendor.ShaEnvVar != "" {
			o.gitSha = os.Getenv(vendor.ShaEnvVar)
		}
		if o.gitBranch == "" && vendor.BranchEnvVar != "" {
			o.gitBranch = os.Getenv(vendor.BranchEnvVar)
		}
		if o.user == "" && vendor.UsernameEnvVar != "" {
			o.user = os.Getenv(vendor.UsernameEnvVar)
		}
	}
	if o.user == "" {
		o.user = os.Getenv("USER")
	}
}
