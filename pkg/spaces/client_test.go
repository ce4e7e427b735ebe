package spaces

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/beacon/pkg/errors"
	"github.com/tombee/beacon/pkg/httpclient"
)

// fastHTTP is a transport config without retries, for tests that assert on
// terminal failures.
func fastHTTP() httpclient.Config {
	cfg := httpclient.DefaultConfig()
	cfg.RetryAttempts = 0
	cfg.Timeout = 5 * time.Second
	return cfg
}

func newTestClient(t *testing.T, baseURL string, preflight bool) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:      baseURL,
		UsePreflight: preflight,
		HTTP:         fastHTTP(),
	})
	require.NoError(t, err)
	return client
}

func testRunPayload() *CreateRunPayload {
	return NewCreateRunPayload(
		time.UnixMilli(1700000000000),
		"beacon run build",
		nil,
		"main",
		"abc123",
		"1.2.3",
		"dev",
	)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "base_url", cfgErr.Key)
}

func TestCreateRun_HappyPath(t *testing.T) {
	var (
		gotMethod  string
		gotPath    string
		gotAuth    string
		gotQuery   string
		gotCT      string
		gotBody    map[string]any
		sawOptions bool
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			sawOptions = true
			w.WriteHeader(http.StatusOK)
			return
		}
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		gotCT = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"run_1","url":"https://example.com/run_1"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)
	auth := APIAuth{Token: "t"}

	run, err := client.CreateRun(context.Background(), "space1", auth, testRunPayload())
	require.NoError(t, err)

	assert.Equal(t, "run_1", run.ID)
	assert.Equal(t, "https://example.com/run_1", run.URL)

	assert.False(t, sawOptions, "preflight disabled: no probe must be issued")
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v0/spaces/space1/runs", gotPath)
	assert.Equal(t, "Bearer t", gotAuth)
	assert.Empty(t, gotQuery, "no team scoping: no query parameters")
	assert.Equal(t, "application/json", gotCT)

	// camelCase wire shape
	assert.Equal(t, float64(1700000000000), gotBody["startTime"])
	assert.Equal(t, "running", gotBody["status"])
	assert.Equal(t, "BEACON", gotBody["type"])
	assert.Equal(t, "beacon run build", gotBody["command"])
	assert.Equal(t, "dev", gotBody["originationUser"])
	clientInfo, ok := gotBody["client"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "beacon", clientInfo["id"])
	assert.Equal(t, "1.2.3", clientInfo["version"])
}

func TestCreateRun_TeamParams(t *testing.T) {
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"id":"run_1"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)
	auth := APIAuth{Token: "t", TeamID: "team_abc", TeamSlug: "acme"}

	_, err := client.CreateRun(context.Background(), "space1", auth, testRunPayload())
	require.NoError(t, err)

	assert.Equal(t, []string{"team_abc"}, gotQuery["teamId"])
	assert.Equal(t, []string{"acme"}, gotQuery["slug"])
}

func TestCreateRun_RemoteRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"try later"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)

	_, err := client.CreateRun(context.Background(), "space1", APIAuth{Token: "t"}, testRunPayload())
	require.Error(t, err)

	var remote *errors.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusServiceUnavailable, remote.StatusCode)
	assert.Contains(t, remote.Body, "try later")
}

func TestCreateRun_RejectionAfterRetries(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	httpCfg := fastHTTP()
	httpCfg.RetryAttempts = 2
	httpCfg.RetryBackoff = 5 * time.Millisecond
	client, err := NewClient(Config{BaseURL: server.URL, HTTP: httpCfg})
	require.NoError(t, err)

	_, err = client.CreateRun(context.Background(), "space1", APIAuth{Token: "t"}, testRunPayload())

	var remote *errors.RemoteError
	require.ErrorAs(t, err, &remote, "exhausted retries must classify the terminal response, never silently succeed")
	assert.Equal(t, http.StatusServiceUnavailable, remote.StatusCode)
	assert.Equal(t, 3, attempts, "1 attempt + 2 retries")
}

func TestCreateRun_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)

	_, err := client.CreateRun(context.Background(), "space1", APIAuth{Token: "t"}, testRunPayload())
	require.Error(t, err)

	var decodeErr *errors.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestCreateTaskSummary(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)

	task := &TaskSummary{
		Key:          "build#app",
		Name:         "build",
		Workspace:    "app",
		Hash:         "deadbeef",
		StartTime:    1,
		EndTime:      2,
		Cache:        CacheStatus{Status: "HIT", Source: "REMOTE", TimeSaved: 1200},
		ExitCode:     0,
		Dependencies: []string{"build#lib"},
		Dependents:   []string{},
		Logs:         "done",
	}

	err := client.CreateTaskSummary(context.Background(), "space1", "run_1", APIAuth{Token: "t"}, task)
	require.NoError(t, err)

	assert.Equal(t, "/v0/spaces/space1/runs/run_1/tasks", gotPath)
	assert.Equal(t, "build#app", gotBody["key"])
	cache, ok := gotBody["cache"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1200), cache["timeSaved"])
}

func TestCreateTaskSummary_NilEdgesSerializeAsEmptyArrays(t *testing.T) {
	var rawBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)

	task := &TaskSummary{Key: "build#app"}
	err := client.CreateTaskSummary(context.Background(), "space1", "run_1", APIAuth{Token: "t"}, task)
	require.NoError(t, err)

	assert.Contains(t, string(rawBody), `"dependencies":[]`)
	assert.Contains(t, string(rawBody), `"dependents":[]`)
	assert.NotContains(t, string(rawBody), "null")

	// The caller's struct is left untouched.
	assert.Nil(t, task.Dependencies)
	assert.Nil(t, task.Dependents)
}

func TestCreateTaskSummary_NoOrderingCheck(t *testing.T) {
	// Reporting a task for a run the server has never seen is not rejected
	// client-side; the server's verdict is surfaced as-is.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"unknown run"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)

	err := client.CreateTaskSummary(context.Background(), "space1", "run_never_created", APIAuth{Token: "t"}, &TaskSummary{Key: "k"})

	var remote *errors.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusNotFound, remote.StatusCode)
}

func TestFinishRun(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, false)

	err := client.FinishRun(context.Background(), "space1", "run_1", APIAuth{Token: "t"}, 1700000001000, -9)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/v0/spaces/space1/runs/run_1", gotPath)
	assert.Equal(t, "completed", gotBody["status"], "status is completed even for abnormal exit codes")
	assert.Equal(t, float64(1700000001000), gotBody["endTime"])
	assert.Equal(t, float64(-9), gotBody["exitCode"])
}

func TestOperations_PropagateCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := newTestClient(t, server.URL, false)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.CreateRun(ctx, "space1", APIAuth{Token: "t"}, testRunPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
