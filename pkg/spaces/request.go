package spaces

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/tombee/beacon/internal/ci"
	"github.com/tombee/beacon/internal/log"
	"github.com/tombee/beacon/pkg/errors"
)

// newRequest assembles the outbound request for one reporting call: it
// resolves the path, negotiates preflight when enabled, and applies headers
// and team scoping. Only preflight negotiation can fail here; everything
// after it is pure assembly.
func (c *Client) newRequest(ctx context.Context, method, path string, auth APIAuth, body []byte) (*http.Request, error) {
	requestURL := c.makeURL(path)
	verdict := defaultVerdict(requestURL)

	if c.usePreflight {
		var err error
		verdict, err = c.doPreflight(ctx, auth.Token, requestURL, method)
		if err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, verdict.Location, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	// Explicit two-armed decision: either the server consented to receive
	// credentials, or the call proceeds unauthenticated. Degradation here
	// is the preflight contract, not an error.
	if verdict.AllowAuthorizationHeader {
		req.Header.Set("Authorization", "Bearer "+auth.Token)
	}

	q := req.URL.Query()
	if auth.TeamID != "" {
		q.Set("teamId", auth.TeamID)
	}
	if auth.TeamSlug != "" {
		q.Set("slug", auth.TeamSlug)
	}
	req.URL.RawQuery = q.Encode()

	// Pure environment snapshot; never fails assembly.
	if constant := ci.Constant(); constant != "" {
		req.Header.Set("x-artifact-client-ci", constant)
	}

	return req, nil
}

// doJSON is the shared skeleton of every reporting operation: assemble,
// attach JSON body, send, classify, and optionally decode. Keeping it in one
// place guarantees auth, preflight, and retry behavior is identical across
// CreateRun, CreateTaskSummary, and FinishRun.
func (c *Client) doJSON(ctx context.Context, op, method, path string, auth APIAuth, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return errors.Wrapf(err, "encoding %s payload", op)
		}
	}

	req, err := c.newRequest(ctx, method, path, auth, body)
	if err != nil {
		recordRequest(op, outcomePreflightError)
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		recordRequest(op, outcomeTransportError)
		return errors.Wrapf(err, "sending %s request", op)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		recordRequest(op, outcomeTransportError)
		return errors.Wrapf(err, "reading %s response", op)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		recordRequest(op, outcomeRejected)
		c.logger.Warn("report rejected",
			log.OperationKey, op,
			"status", resp.StatusCode,
		)
		return &errors.RemoteError{
			Method:     method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			recordRequest(op, outcomeDecodeError)
			return &errors.DecodeError{URL: req.URL.String(), Cause: err}
		}
	}

	recordRequest(op, outcomeOK)
	c.logger.Debug("report accepted",
		log.OperationKey, op,
		"status", resp.StatusCode,
	)
	return nil
}
