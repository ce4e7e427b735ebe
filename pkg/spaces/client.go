package spaces

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tombee/beacon/pkg/errors"
	"github.com/tombee/beacon/pkg/httpclient"
)

// Config configures a reporting Client.
type Config struct {
	// BaseURL is the spaces service endpoint (required), e.g.
	// "https://api.example.com".
	BaseURL string

	// UserAgent identifies this client on the wire.
	// Default: httpclient's default.
	UserAgent string

	// UsePreflight enables CORS preflight negotiation before every real
	// request. Fixed at construction, never mutated afterwards.
	UsePreflight bool

	// HTTP configures the underlying retrying transport. Zero value means
	// httpclient.DefaultConfig(). AllowNonIdempotentRetry is forced on:
	// the reporting POSTs are replay-safe.
	HTTP httpclient.Config

	// Logger receives request-level logs. nil means slog.Default().
	Logger *slog.Logger
}

// Client reports runs and tasks to a spaces service. Its configuration is
// immutable after construction; methods are safe for concurrent use.
type Client struct {
	baseURL      string
	http         *http.Client
	usePreflight bool
	logger       *slog.Logger
}

// NewClient creates a reporting client for the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, &errors.ConfigError{Key: "base_url", Reason: "spaces endpoint is required"}
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, &errors.ConfigError{Key: "base_url", Reason: "not a valid URL", Cause: err}
	}

	httpCfg := cfg.HTTP
	if httpCfg == (httpclient.Config{}) {
		httpCfg = httpclient.DefaultConfig()
	}
	if cfg.UserAgent != "" {
		httpCfg.UserAgent = cfg.UserAgent
	}
	httpCfg.AllowNonIdempotentRetry = true

	hc, err := httpclient.New(httpCfg)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		http:         hc,
		usePreflight: cfg.UsePreflight,
		logger:       logger,
	}, nil
}

// makeURL resolves a request path against the configured base endpoint.
func (c *Client) makeURL(path string) string {
	return c.baseURL + path
}

// CreateRun registers the start of a run and returns the server-assigned
// handle whose ID keys all subsequent reports for the run.
func (c *Client) CreateRun(ctx context.Context, spaceID string, auth APIAuth, payload *CreateRunPayload) (*Run, error) {
	path := fmt.Sprintf("/v0/spaces/%s/runs", spaceID)

	var run Run
	if err := c.doJSON(ctx, opCreateRun, http.MethodPost, path, auth, payload, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// CreateTaskSummary reports one completed task of a run. The response body
// is discarded on success. No ordering is enforced against CreateRun; a
// task reported for an unknown run surfaces as the server's rejection.
func (c *Client) CreateTaskSummary(ctx context.Context, spaceID, runID string, auth APIAuth, task *TaskSummary) error {
	path := fmt.Sprintf("/v0/spaces/%s/runs/%s/tasks", spaceID, runID)
	normalized := task.withEdgeDefaults()
	return c.doJSON(ctx, opCreateTaskSummary, http.MethodPost, path, auth, normalized, nil)
}

// FinishRun marks the run completed. exitCode may be negative to signal
// abnormal termination; the reported status is "completed" either way.
func (c *Client) FinishRun(ctx context.Context, spaceID, runID string, auth APIAuth, endTime int64, exitCode int) error {
	path := fmt.Sprintf("/v0/spaces/%s/runs/%s", spaceID, runID)
	payload := newFinishRunPayload(endTime, exitCode)
	return c.doJSON(ctx, opFinishRun, http.MethodPatch, path, auth, payload, nil)
}
