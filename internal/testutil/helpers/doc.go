// Package helpers provides general test helper functions and utilities.
//
//   - ClearActionsEnv / SetEnvs: isolate tests from the runner environment
//   - NewObservableLogger: a logger.Logger that records entries via zaptest/observer
package helpers
