package spaces

import (
	"fmt"
	"time"

	"github.com/tombee/beacon/internal/ci"
)

// RunStatus is the lifecycle state reported for a run.
type RunStatus string

const (
	// RunStatusRunning marks a run that has started and not yet finished.
	RunStatusRunning RunStatus = "running"
	// RunStatusCompleted marks a run that has finished, regardless of exit code.
	RunStatusCompleted RunStatus = "completed"
)

// runType is the fixed record type the service expects from this client.
const runType = "BEACON"

// ClientSummary identifies the reporting client inside run payloads.
type ClientSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// clientID and clientName are constant for this tool; only the version varies.
const (
	clientID   = "beacon"
	clientName = "Beacon"
)

// CreateRunPayload is the run-start record. It is built once when the run
// starts and is immutable thereafter.
type CreateRunPayload struct {
	StartTime            int64         `json:"startTime"`
	Status               RunStatus     `json:"status"`
	Type                 string        `json:"type"`
	Command              string        `json:"command"`
	PackageInferenceRoot string        `json:"repositoryPath"`
	RunContext           string        `json:"context"`
	GitBranch            string        `json:"gitBranch,omitempty"`
	GitSha               string        `json:"gitSha,omitempty"`
	User                 string        `json:"originationUser"`
	Client               ClientSummary `json:"client"`
}

// NewCreateRunPayload builds the run-start record. The execution context is
// snapshotted from the environment once: a recognized CI vendor's constant,
// or "LOCAL". packageInferenceRoot is a repository-relative path rendered to
// a string; nil means the repository root.
func NewCreateRunPayload(
	startTime time.Time,
	command string,
	packageInferenceRoot fmt.Stringer,
	gitBranch, gitSha string,
	version string,
	user string,
) *CreateRunPayload {
	root := ""
	if packageInferenceRoot != nil {
		root = packageInferenceRoot.String()
	}

	return &CreateRunPayload{
		StartTime:            startTime.UnixMilli(),
		Status:               RunStatusRunning,
		Type:                 runType,
		Command:              command,
		PackageInferenceRoot: root,
		RunContext:           ci.RunContext(),
		GitBranch:            gitBranch,
		GitSha:               gitSha,
		User:                 user,
		Client: ClientSummary{
			ID:      clientID,
			Name:    clientName,
			Version: version,
		},
	}
}

// CacheStatus describes how a task's outputs were (or were not) served from
// cache.
type CacheStatus struct {
	Status    string `json:"status"`
	Source    string `json:"source,omitempty"`
	TimeSaved uint64 `json:"timeSaved"`
}

// TaskSummary is the per-task record, created after the task has executed
// and sent exactly once.
type TaskSummary struct {
	Key          string      `json:"key"`
	Name         string      `json:"name"`
	Workspace    string      `json:"workspace"`
	Hash         string      `json:"hash"`
	StartTime    int64       `json:"startTime"`
	EndTime      int64       `json:"endTime"`
	Cache        CacheStatus `json:"cache"`
	ExitCode     uint32      `json:"exitCode"`
	Dependencies []string    `json:"dependencies"`
	Dependents   []string    `json:"dependents"`
	Logs         string      `json:"logs"`
}

// withEdgeDefaults returns a copy whose dependency edges serialize as empty
// JSON arrays rather than null when the caller left them nil.
func (t *TaskSummary) withEdgeDefaults() *TaskSummary {
	out := *t
	if out.Dependencies == nil {
		out.Dependencies = []string{}
	}
	if out.Dependents == nil {
		out.Dependents = []string{}
	}
	return &out
}

// FinishRunPayload is the run-finish record. Status is always "completed";
// the exit code alone signals success or failure, and may be negative for
// abnormal termination.
type FinishRunPayload struct {
	Status   RunStatus `json:"status"`
	EndTime  int64     `json:"endTime"`
	ExitCode int       `json:"exitCode"`
}

func newFinishRunPayload(endTime int64, exitCode int) *FinishRunPayload {
	return &FinishRunPayload{
		Status:   RunStatusCompleted,
		EndTime:  endTime,
		ExitCode: exitCode,
	}
}

// Run is the server-assigned handle returned when a run is created. Its ID
// keys all subsequent task and finish reports for the run.
type Run struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
