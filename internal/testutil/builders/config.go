package builders

import (
	"github.com/douhashi/remove-safe-to-test-label/internal/config"
)

// ConfigBuilder builds config.Config instances for testing
type ConfigBuilder struct {
	cfg *config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with sensible defaults.
// Retries are disabled so that failing API calls return immediately.
func NewConfigBuilder() *ConfigBuilder {
	cfg := config.NewConfig()
	cfg.Label = "safe-to-test"
	cfg.RepoToken = "test-token"
	cfg.Event.Name = "pull_request_target"
	cfg.Repository = "base-owner/repo"
	cfg.GitHub.MaxRetries = 0
	return &ConfigBuilder{cfg: cfg}
}

// WithLabel sets the label to revoke
func (b *ConfigBuilder) WithLabel(label string) *ConfigBuilder {
	b.cfg.Label = label
	return b
}

// WithRepoToken sets the API credential
func (b *ConfigBuilder) WithRepoToken(token string) *ConfigBuilder {
	b.cfg.RepoToken = token
	return b
}

// WithEvents sets the accepted event kinds (comma separated)
func (b *ConfigBuilder) WithEvents(events string) *ConfigBuilder {
	b.cfg.Events = events
	return b
}

// WithEventName sets the kind of the triggering event
func (b *ConfigBuilder) WithEventName(name string) *ConfigBuilder {
	b.cfg.Event.Name = name
	return b
}

// WithEventPath sets the path of the webhook payload file
func (b *ConfigBuilder) WithEventPath(path string) *ConfigBuilder {
	b.cfg.Event.Path = path
	return b
}

// WithRepository sets the owner/name of the repository
func (b *ConfigBuilder) WithRepository(repository string) *ConfigBuilder {
	b.cfg.Repository = repository
	return b
}

// WithAPIURL sets the REST API base URL
func (b *ConfigBuilder) WithAPIURL(url string) *ConfigBuilder {
	b.cfg.GitHub.APIURL = url
	return b
}

// WithMaxRetries sets the number of transport retries
func (b *ConfigBuilder) WithMaxRetries(retries int) *ConfigBuilder {
	b.cfg.GitHub.MaxRetries = retries
	return b
}

// Build returns the constructed Config
func (b *ConfigBuilder) Build() *config.Config {
	// Return a copy to prevent external modification
	cfgCopy := *b.cfg
	return &cfgCopy
}
