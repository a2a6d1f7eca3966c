// Package testutil provides common test utilities, mocks, and builders.
//
// This package is organized into the following sub-packages:
//
//   - mocks: testify mock implementations (LabelRemover, ClientFactory, Logger)
//   - builders: builders for pull request events and configuration
//   - helpers: environment guards and observable loggers
package testutil
