package helpers

import (
	"testing"
)

// ActionsEnvKeys lists the runner-provided variables the action reads.
// Tests running inside a real workflow would otherwise pick them up.
var ActionsEnvKeys = []string{
	"INPUT_LABEL",
	"INPUT_REPO-TOKEN",
	"INPUT_REPO_TOKEN",
	"INPUT_EVENTS",
	"INPUT_MAX-RETRIES",
	"INPUT_MAX_RETRIES",
	"GITHUB_TOKEN",
	"GITHUB_EVENT_NAME",
	"GITHUB_EVENT_PATH",
	"GITHUB_REPOSITORY",
	"GITHUB_API_URL",
	"GITHUB_OUTPUT",
	"RUNNER_DEBUG",
	"DEBUG",
	"LOG_LEVEL",
	"LOG_FORMAT",
}

// ClearActionsEnv blanks every variable in ActionsEnvKeys for the duration of the test.
// Empty values are treated as unset by viper and the logger config.
func ClearActionsEnv(t *testing.T) {
	t.Helper()
	for _, key := range ActionsEnvKeys {
		t.Setenv(key, "")
	}
}

// SetEnvs sets several environment variables for the duration of the test.
func SetEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for key, value := range envs {
		t.Setenv(key, value)
	}
}
