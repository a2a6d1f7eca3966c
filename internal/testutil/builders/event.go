package builders

import (
	"encoding/json"
	"strings"

	"github.com/douhashi/remove-safe-to-test-label/internal/event"
)

// PullRequestEventBuilder builds pull request events for testing, either as
// an event.Descriptor or as the webhook JSON the runner writes to GITHUB_EVENT_PATH.
type PullRequestEventBuilder struct {
	kind       string
	repository string
	headRepo   string
	baseRepo   string
	number     int
	labels     []string
	withoutPR  bool
}

// NewPullRequestEventBuilder creates a builder for a forked pull request
// carrying the "safe-to-test" label.
func NewPullRequestEventBuilder() *PullRequestEventBuilder {
	return &PullRequestEventBuilder{
		kind:     "pull_request",
		headRepo: "fork-owner/repo",
		baseRepo: "base-owner/repo",
		number:   1,
		labels:   []string{"safe-to-test"},
	}
}

// WithKind sets the event kind
func (b *PullRequestEventBuilder) WithKind(kind string) *PullRequestEventBuilder {
	b.kind = kind
	return b
}

// WithRepository sets the repository the workflow runs in (GITHUB_REPOSITORY)
func (b *PullRequestEventBuilder) WithRepository(fullName string) *PullRequestEventBuilder {
	b.repository = fullName
	return b
}

// WithHeadRepo sets the head repository full name
func (b *PullRequestEventBuilder) WithHeadRepo(fullName string) *PullRequestEventBuilder {
	b.headRepo = fullName
	return b
}

// WithBaseRepo sets the base repository full name
func (b *PullRequestEventBuilder) WithBaseRepo(fullName string) *PullRequestEventBuilder {
	b.baseRepo = fullName
	return b
}

// FromSameRepo makes the head repository equal to the base repository
func (b *PullRequestEventBuilder) FromSameRepo() *PullRequestEventBuilder {
	b.headRepo = b.baseRepo
	return b
}

// WithNumber sets the pull request number
func (b *PullRequestEventBuilder) WithNumber(number int) *PullRequestEventBuilder {
	b.number = number
	return b
}

// WithLabels replaces the pull request labels
func (b *PullRequestEventBuilder) WithLabels(labels ...string) *PullRequestEventBuilder {
	b.labels = append([]string{}, labels...)
	return b
}

// WithoutPullRequest drops the pull_request object from the payload
func (b *PullRequestEventBuilder) WithoutPullRequest() *PullRequestEventBuilder {
	b.withoutPR = true
	return b
}

// Descriptor returns the constructed event.Descriptor
func (b *PullRequestEventBuilder) Descriptor() event.Descriptor {
	desc := event.Descriptor{
		Kind:       b.kind,
		Repository: b.repository,
	}
	if b.withoutPR {
		return desc
	}

	pr := &event.PullRequest{
		HeadRepoFullName: b.headRepo,
		Number:           b.number,
	}
	for _, name := range b.labels {
		pr.Labels = append(pr.Labels, event.Label{Name: name})
	}
	desc.Payload = &event.PullRequestPayload{
		PullRequest:      pr,
		BaseRepoFullName: b.baseRepo,
	}
	return desc
}

// JSON returns the webhook payload as delivered to the workflow run
func (b *PullRequestEventBuilder) JSON() []byte {
	owner, name := splitFullName(b.baseRepo)
	payload := map[string]interface{}{
		"action": "labeled",
		"number": b.number,
		"repository": map[string]interface{}{
			"full_name": b.baseRepo,
			"name":      name,
			"owner":     map[string]interface{}{"login": owner},
		},
	}

	if b.withoutPR {
		payload["pull_request"] = nil
	} else {
		labels := make([]map[string]interface{}, 0, len(b.labels))
		for _, label := range b.labels {
			labels = append(labels, map[string]interface{}{"name": label, "color": "0e8a16"})
		}
		payload["pull_request"] = map[string]interface{}{
			"number": b.number,
			"state":  "open",
			"head": map[string]interface{}{
				"ref":  "feature",
				"repo": map[string]interface{}{"full_name": b.headRepo},
			},
			"base": map[string]interface{}{
				"ref":  "main",
				"repo": map[string]interface{}{"full_name": b.baseRepo},
			},
			"labels": labels,
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return data
}

func splitFullName(fullName string) (string, string) {
	owner, name, _ := strings.Cut(fullName, "/")
	return owner, name
}
