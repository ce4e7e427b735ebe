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
	"github.com/spf13/cobra"

	"github.com/tombee/beacon/internal/log"
	"github.com/tombee/beacon/internal/tracing"
)

func newRunFinishCommand(root *rootOptions) *cobra.Command {
	var runID string
	var exitCode int
	var endTime int64

	cmd := &cobra.Command{
		Use:   "run-finish",
		Short: "Close an open run",
		Long: `run-finish reports the end of a run. The exit code alone signals success
or failure; negative values record abnormal termination.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			client, logger, err := buildClient(cfg)
			if err != nil {
				return err
			}

			end := endTime
			if end == 0 {
				end = nowMillis()
			}

			ctx := tracing.ToContext(cmd.Context(), tracing.NewCorrelationID())
			if err := client.FinishRun(ctx, cfg.SpaceID, runID, root.auth(cfg), end, exitCode); err != nil {
				return err
			}

			logger.Info("run closed",
				log.RunIDKey, runID,
				"exit_code", exitCode,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "run id returned by run-start")
	cmd.Flags().IntVar(&exitCode, "exit-code", 0, "overall run exit code")
	cmd.Flags().Int64Var(&endTime, "end-time", 0, "run end as Unix milliseconds (default: now)")
	cmd.MarkFlagRequired("run")

	return cmd
}
