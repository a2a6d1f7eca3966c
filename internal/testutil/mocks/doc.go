// Package mocks provides testify based mock implementations of the interfaces
// used throughout the codebase.
//
//	remover := mocks.NewMockLabelRemover()
//	remover.On("RemoveLabel", mock.Anything, "base-owner", "repo", 1, "safe-to-test").Return(nil)
//	factory := mocks.NewClientFactory(remover)
//	evaluator := revoke.NewEvaluator(factory.New, logger.NewNop())
package mocks
