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

package ci

// vendors is the ordered detection table. Order matters: providers that run
// on top of others (e.g. Vercel builds on generic runners) come first.
var vendors = []Vendor{
	{
		Name:           "Vercel",
		Constant:       "VERCEL",
		Env:            []string{"VERCEL", "NOW_BUILDER"},
		ShaEnvVar:      "VERCEL_GIT_COMMIT_SHA",
		BranchEnvVar:   "VERCEL_GIT_COMMIT_REF",
		UsernameEnvVar: "VERCEL_GIT_COMMIT_AUTHOR_LOGIN",
	},
	{
		Name:           "GitHub Actions",
		Constant:       "GITHUB_ACTIONS",
		Env:            []string{"GITHUB_ACTIONS"},
		ShaEnvVar:      "GITHUB_SHA",
		BranchEnvVar:   "GITHUB_REF_NAME",
		UsernameEnvVar: "GITHUB_ACTOR",
	},
	{
		Name:           "GitLab CI",
		Constant:       "GITLAB",
		Env:            []string{"GITLAB_CI"},
		ShaEnvVar:      "CI_COMMIT_SHA",
		BranchEnvVar:   "CI_COMMIT_REF_NAME",
		UsernameEnvVar: "GITLAB_USER_LOGIN",
	},
	{
		Name:         "CircleCI",
		Constant:     "CIRCLECI",
		Env:          []string{"CIRCLECI"},
		ShaEnvVar:    "CIRCLE_SHA1",
		BranchEnvVar: "CIRCLE_BRANCH",
	},
	{
		Name:         "Travis CI",
		Constant:     "TRAVIS",
		Env:          []string{"TRAVIS"},
		ShaEnvVar:    "TRAVIS_COMMIT",
		BranchEnvVar: "TRAVIS_BRANCH",
	},
	{
		Name:           "Buildkite",
		Constant:       "BUILDKITE",
		Env:            []string{"BUILDKITE"},
		ShaEnvVar:      "BUILDKITE_COMMIT",
		BranchEnvVar:   "BUILDKITE_BRANCH",
		UsernameEnvVar: "BUILDKITE_BUILD_CREATOR",
	},
	{
		Name:         "Jenkins",
		Constant:     "JENKINS",
		Env:          []string{"JENKINS_URL"},
		ShaEnvVar:    "GIT_COMMIT",
		BranchEnvVar: "GIT_BRANCH",
	},
	{
		Name:      "Azure Pipelines",
		Constant:  "AZURE_PIPELINES",
		Env:       []string{"TF_BUILD"},
		ShaEnvVar: "BUILD_SOURCEVERSION",
	},
	{
		Name:         "AppVeyor",
		Constant:     "APPVEYOR",
		Env:          []string{"APPVEYOR"},
		ShaEnvVar:    "APPVEYOR_REPO_COMMIT",
		BranchEnvVar: "APPVEYOR_REPO_BRANCH",
	},
	{
		Name:     "TeamCity",
		Constant: "TEAMCITY",
		Env:      []string{"TEAMCITY_VERSION"},
	},
	{
		Name:     "AWS CodeBuild",
		Constant: "AWS_CODEBUILD",
		Env:      []string{"CODEBUILD_BUILD_ARN"},
	},
	{
		Name:     "Google Cloud Build",
		Constant: "GOOGLE_CLOUD_BUILD",
		Env:      []string{"BUILDER_OUTPUT"},
	},
	{
		Name:         "Bitbucket Pipelines",
		Constant:     "BITBUCKET",
		Env:          []string{"BITBUCKET_COMMIT"},
		ShaEnvVar:    "BITBUCKET_COMMIT",
		BranchEnvVar: "BITBUCKET_BRANCH",
	},
	{
		Name:         "Drone",
		Constant:     "DRONE",
		Env:          []string{"DRONE"},
		ShaEnvVar:    "DRONE_COMMIT_SHA",
		BranchEnvVar: "DRONE_COMMIT_BRANCH",
	},
	{
		Name:         "Codefresh",
		Constant:     "CODEFRESH",
		Env:          []string{"CF_BUILD_ID"},
		ShaEnvVar:    "CF_REVISION",
		BranchEnvVar: "CF_BRANCH",
	},
	{
		Name:         "Semaphore",
		Constant:     "SEMAPHORE",
		Env:          []string{"SEMAPHORE"},
		ShaEnvVar:    "SEMAPHORE_GIT_SHA",
		BranchEnvVar: "SEMAPHORE_GIT_BRANCH",
	},
	{
		Name:         "Netlify CI",
		Constant:     "NETLIFY",
		Env:          []string{"NETLIFY"},
		ShaEnvVar:    "COMMIT_REF",
		BranchEnvVar: "BRANCH",
	},
	{
		Name:         "Render",
		Constant:     "RENDER",
		Env:          []string{"RENDER"},
		ShaEnvVar:    "RENDER_GIT_COMMIT",
		BranchEnvVar: "RENDER_GIT_BRANCH",
	},
	{
		Name:         "Heroku CI",
		Constant:     "HEROKU",
		Env:          []string{"HEROKU_TEST_RUN_ID"},
		ShaEnvVar:    "HEROKU_TEST_RUN_COMMIT_VERSION",
		BranchEnvVar: "HEROKU_TEST_RUN_BRANCH",
	},
	{
		Name:         "Cirrus CI",
		Constant:     "CIRRUS_CI",
		Env:          []string{"CIRRUS_CI"},
		ShaEnvVar:    "CIRRUS_CHANGE_IN_REPO",
		BranchEnvVar: "CIRRUS_BRANCH",
	},
	{
		Name:     "Bamboo",
		Constant: "BAMBOO",
		Env:      []string{"bamboo_planKey"},
	},
	{
		Name:         "Bitrise",
		Constant:     "BITRISE",
		Env:          []string{"BITRISE_IO"},
		ShaEnvVar:    "GIT_CLONE_COMMIT_HASH",
		BranchEnvVar: "BITRISE_GIT_BRANCH",
	},
	{
		Name:         "Buddy",
		Constant:     "BUDDY",
		Env:          []string{"BUDDY_WORKSPACE_ID"},
		ShaEnvVar:    "BUDDY_EXECUTION_REVISION",
		BranchEnvVar: "BUDDY_EXECUTION_BRANCH",
	},
	{
		Name:     "GoCD",
		Constant: "GOCD",
		Env:      []string{"GO_PIPELINE_LABEL"},
	},
	{
		Name:     "Codeship",
		Constant: "CODESHIP",
		EvalEnv:  map[string]string{"CI_NAME": "codeship"},
	},
	{
		Name:         "Woodpecker",
		Constant:     "WOODPECKER",
		EvalEnv:      map[string]string{"CI": "woodpecker"},
		ShaEnvVar:    "CI_COMMIT_SHA",
		BranchEnvVar: "CI_COMMIT_BRANCH",
	},
	{
		Name:         "Xcode Cloud",
		Constant:     "XCODE_CLOUD",
		Env:          []string{"CI_XCODE_PROJECT"},
		ShaEnvVar:    "CI_COMMIT",
		BranchEnvVar: "CI_BRANCH",
	},
	{
		Name:     "Xcode Server",
		Constant: "XCODE_SERVER",
		Env:      []string{"XCS"},
	},
}
