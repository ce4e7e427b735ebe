package httpclient

import (
	"net/http"

	"golang.org/x/time/rate"
)

// rateLimitTransport wraps an http.RoundTripper with a client-side token
// bucket. It blocks until a slot is available or the request context is
// cancelled.
type rateLimitTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// newRateLimitTransport creates a rate limiting transport allowing rps
// requests per second with the given burst size.
func newRateLimitTransport(base http.RoundTripper, rps float64, burst int) *rateLimitTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if burst < 1 {
		burst = 1
	}

	return &rateLimitTransport{
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
