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

// Package ci detects which continuous-integration environment, if any, the
// current process is running under. Detection is a pure environment lookup
// with no network I/O.
package ci

import (
	"os"
	"sync"
)

// Vendor describes a recognized CI provider and how to detect it.
type Vendor struct {
	// Name is the human-readable provider name.
	Name string

	// Constant is the short provenance identifier sent to the remote
	// service (e.g. "GITHUB_ACTIONS").
	Constant string

	// Env lists environment variables whose presence identifies the
	// provider. Any one being set is a match.
	Env []string

	// EvalEnv maps environment variables to the exact value they must hold
	// for a match. Used by providers that only set generic variables.
	EvalEnv map[string]string

	// ShaEnvVar names the variable holding the commit SHA, when the
	// provider exposes one.
	ShaEnvVar string

	// BranchEnvVar names the variable holding the branch name, when the
	// provider exposes one.
	BranchEnvVar string

	// UsernameEnvVar names the variable holding the triggering user, when
	// the provider exposes one.
	UsernameEnvVar string
}

func (v *Vendor) matches(getenv func(string) string) bool {
	for _, key := range v.Env {
		if getenv(key) != "" {
			return true
		}
	}
	for key, want := range v.EvalEnv {
		if getenv(key) == want {
			return true
		}
	}
	return false
}

// IsCI reports whether the process appears to run under any CI system,
// recognized or not.
func IsCI() bool {
	return os.Getenv("CI") != "" || Infer() != nil
}

// Infer returns the first recognized vendor matching the current
// environment, or nil when none matches. The lookup is pure: it reads the
// environment and nothing else.
func Infer() *Vendor {
	return inferEnv(os.Getenv)
}

func inferEnv(getenv func(string) string) *Vendor {
	for i := range vendors {
		if vendors[i].matches(getenv) {
			return &vendors[i]
		}
	}
	return nil
}

var constantOnce = sync.OnceValue(func() string {
	if v := Infer(); v != nil {
		return v.Constant
	}
	return ""
})

// Constant returns the provenance constant of the detected vendor, or the
// empty string outside CI. The result is computed once per process; callers
// treat it as an immutable snapshot.
func Constant() string {
	return constantOnce()
}

// RunContext returns the execution-environment value used in run payloads:
// the detected vendor's constant, or "LOCAL".
func RunContext() string {
	if c := Constant(); c != "" {
		return c
	}
	return "LOCAL"
}
