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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tombee/beacon/internal/log"
	"github.com/tombee/beacon/internal/tracing"
	"github.com/tombee/beacon/pkg/errors"
	"github.com/tombee/beacon/pkg/spaces"
)

func newTaskCommand(root *rootOptions) *cobra.Command {
	var runID string
	var payloadPath string

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Report a finished task to an open run",
		Long: `task reports a single executed task. The task summary is read as JSON
from --payload, or from stdin when --payload is "-" or omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			client, logger, err := buildClient(cfg)
			if err != nil {
				return err
			}

			summary, err := readTaskSummary(cmd.InOrStdin(), payloadPath)
			if err != nil {
				return err
			}

			ctx := tracing.ToContext(cmd.Context(), tracing.NewCorrelationID())
			if err := client.CreateTaskSummary(ctx, cfg.SpaceID, runID, root.auth(cfg), summary); err != nil {
				return err
			}

			logger.Info("task reported",
				log.RunIDKey, runID,
				log.TaskKey, summary.Key,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "run id returned by run-start")
	cmd.Flags().StringVar(&payloadPath, "payload", "", `task summary JSON file ("-" or empty reads stdin)`)
	cmd.MarkFlagRequired("run")

	return cmd
}

// readTaskSummary decodes a task summary from a file or stdin.
func readTaskSummary(stdin io.Reader, path string) (*spaces.TaskSummary, error) {
	reader := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening payload file %s", path)
		}
		defer f.Close()
		reader = f
	}

	var summary spaces.TaskSummary
	if err := json.NewDecoder(reader).Decode(&summary); err != nil {
		return nil, errors.Wrap(err, "decoding task summary payload")
	}
	if summary.Key == "" {
		return nil, &errors.ValidationError{
			Field:      "key",
			Message:    "task summary is missing a key",
			Suggestion: `set a stable task identifier such as "web#build"`,
		}
	}
	return &summary, nil
}
