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

// ErrorClassifier defines methods for programmatic error handling.
// Errors that implement this interface can be classified by type
// for retry logic, error reporting, or specific handling paths.
type ErrorClassifier interface {
	error

	// ErrorType returns a string identifying the error category.
	// Examples: "validation", "preflight", "remote", "decode", "config"
	ErrorType() string

	// IsRetryable returns true if the operation should be retried.
	IsRetryable() bool
}

// ErrorType implements ErrorClassifier.
func (e *ValidationError) ErrorType() string { return "validation" }

// IsRetryable implements ErrorClassifier. Validation errors never resolve on retry.
func (e *ValidationError) IsRetryable() bool { return false }

// ErrorType implements ErrorClassifier.
func (e *PreflightError) ErrorType() string { return "preflight" }

// IsRetryable implements ErrorClassifier. The transport has already retried
// the probe by the time this error is produced.
func (e *PreflightError) IsRetryable() bool { return false }

// ErrorType implements ErrorClassifier.
func (e *RemoteError) ErrorType() string { return "remote" }

// IsRetryable implements ErrorClassifier. A RemoteError is the terminal
// response after the transport exhausted its own retries.
func (e *RemoteError) IsRetryable() bool { return false }

// ErrorType implements ErrorClassifier.
func (e *DecodeError) ErrorType() string { return "decode" }

// IsRetryable implements ErrorClassifier.
func (e *DecodeError) IsRetryable() bool { return false }

// ErrorType implements ErrorClassifier.
func (e *ConfigError) ErrorType() string { return "config" }

// IsRetryable implements ErrorClassifier.
func (e *ConfigError) IsRetryable() bool { return false }
