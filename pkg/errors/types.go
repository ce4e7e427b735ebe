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

package errors

import (
	"fmt"
)

// ValidationError represents user input validation failures.
// Use this for invalid user input, malformed data, or constraint violations.
type ValidationError struct {
	// Field identifies which input field failed validation
	Field string

	// Message is the human-readable error description
	Message string

	// Suggestion provides actionable guidance for fixing the error
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// PreflightError represents a failed preflight probe.
// The probe either could not be sent, or the server answered it with a
// non-success status. The enclosing reporting operation is aborted; there is
// no fallback to sending the real request without a verdict.
type PreflightError struct {
	// URL is the probe target
	URL string

	// StatusCode is the probe's HTTP status (0 if the probe never completed)
	StatusCode int

	// Cause is the underlying transport error (if any)
	Cause error
}

// Error implements the error interface.
func (e *PreflightError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("preflight request to %s rejected [HTTP %d]", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("preflight request to %s failed: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *PreflightError) Unwrap() error {
	return e.Cause
}

// RemoteError represents a completed request that the server rejected with a
// non-2xx status. The status code and response body are retained so callers
// can log or display the server's verdict.
type RemoteError struct {
	// Method is the HTTP method of the rejected request
	Method string

	// URL is the request target
	URL string

	// StatusCode is the terminal HTTP status
	StatusCode int

	// Body is the response body, as returned by the server
	Body string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("%s %s returned HTTP %d", e.Method, e.URL, e.StatusCode)
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	return msg
}

// DecodeError represents a 2xx response whose body did not match the
// expected shape. Distinct from RemoteError: the HTTP exchange succeeded but
// the contract was violated.
type DecodeError struct {
	// URL is the request target whose response failed to decode
	URL string

	// Cause is the underlying unmarshal error
	Cause error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// ConfigError represents configuration problems.
// Use this for configuration file errors, missing settings, or invalid config values.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "token", "endpoint")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}
