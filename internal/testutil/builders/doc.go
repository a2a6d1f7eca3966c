// Package builders provides test data builders using the builder pattern for creating test fixtures.
//
// # Available Builders
//
//   - PullRequestEventBuilder: Creates event.Descriptor values and webhook payload JSON
//   - ConfigBuilder: Creates config.Config instances
//
// # Example
//
//	desc := NewPullRequestEventBuilder().
//	    WithKind("pull_request_target").
//	    WithLabels("safe-to-test", "bug").
//	    Descriptor()
package builders
