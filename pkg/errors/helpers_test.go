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
	"testing"
)

func TestWrap(t *testing.T) {
	base := New("connection reset")
	wrapped := Wrap(base, "sending task summary")

	if wrapped == nil {
		t.Fatal("expected non-nil error")
	}
	if wrapped.Error() != "sending task summary: connection reset" {
		t.Errorf("unexpected message: %q", wrapped.Error())
	}
	if !Is(wrapped, base) {
		t.Error("expected wrapped error to match base via Is")
	}
}

func TestWrap_NilError(t *testing.T) {
	if got := Wrap(nil, "context"); got != nil {
		t.Errorf("Wrap(nil) = %v, want nil", got)
	}
}

func TestWrapf(t *testing.T) {
	base := New("boom")
	wrapped := Wrapf(base, "reporting task %s in run %s", "build#app", "run_123")

	want := "reporting task build#app in run run_123: boom"
	if wrapped.Error() != want {
		t.Errorf("Wrapf() = %q, want %q", wrapped.Error(), want)
	}
	if Unwrap(wrapped) != base {
		t.Error("expected Unwrap to return base error")
	}
}

func TestWrapf_NilError(t *testing.T) {
	if got := Wrapf(nil, "context %d", 1); got != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", got)
	}
}

func TestAs(t *testing.T) {
	err := Wrap(&RemoteError{Method: "POST", URL: "u", StatusCode: 429}, "creating run")

	var remote *RemoteError
	if !As(err, &remote) {
		t.Fatal("expected As to find RemoteError")
	}
	if remote.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", remote.StatusCode)
	}
}
