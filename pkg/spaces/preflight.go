package spaces

import (
	"context"
	"net/http"
	"strings"

	"github.com/tombee/beacon/pkg/errors"
)

// preflightHeaders is the fixed header set declared on every probe: the
// names the real request intends to send.
const preflightHeaders = "Authorization, User-Agent"

// PreflightVerdict is the outcome of one CORS preflight probe.
type PreflightVerdict struct {
	// AllowAuthorizationHeader is the server's consent to receive the
	// Authorization header on the real request.
	AllowAuthorizationHeader bool

	// Location is the URL the real request must target. It differs from
	// the probed URL when the server redirected the probe to a canonical
	// location.
	Location string
}

// defaultVerdict is used when preflight mode is disabled: credentials
// allowed, original URL unchanged.
func defaultVerdict(requestURL string) *PreflightVerdict {
	return &PreflightVerdict{
		AllowAuthorizationHeader: true,
		Location:                 requestURL,
	}
}

// doPreflight probes requestURL with an OPTIONS request declaring the method
// and header names of the real request, and interprets the response into a
// verdict. The probe rides the same retrying transport as real requests, so
// transient probe failures are retried there; a probe that still fails is a
// hard failure of the enclosing operation.
func (c *Client) doPreflight(ctx context.Context, token, requestURL, requestMethod string) (*PreflightVerdict, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodOptions, requestURL, nil)
	if err != nil {
		return nil, &errors.PreflightError{URL: requestURL, Cause: err}
	}

	req.Header.Set("Access-Control-Request-Method", requestMethod)
	req.Header.Set("Access-Control-Request-Headers", preflightHeaders)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.PreflightError{URL: requestURL, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.PreflightError{URL: requestURL, StatusCode: resp.StatusCode}
	}

	allowedHeaders := resp.Header.Get("Access-Control-Allow-Headers")
	allowAuth := strings.Contains(strings.ToLower(allowedHeaders), "authorization")

	// The transport follows redirects; the response's request URL is the
	// canonical location the real request must use.
	location := requestURL
	if resp.Request != nil && resp.Request.URL != nil {
		location = resp.Request.URL.String()
	}

	return &PreflightVerdict{
		AllowAuthorizationHeader: allowAuth,
		Location:                 location,
	}, nil
}
