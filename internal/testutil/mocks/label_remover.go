package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/douhashi/remove-safe-to-test-label/internal/revoke"
)

// MockLabelRemover is a mock implementation of revoke.LabelRemover interface
type MockLabelRemover struct {
	mock.Mock
}

// NewMockLabelRemover creates a new instance of MockLabelRemover
func NewMockLabelRemover() *MockLabelRemover {
	return &MockLabelRemover{}
}

// RemoveLabel mocks the RemoveLabel method
func (m *MockLabelRemover) RemoveLabel(ctx context.Context, owner, repo string, number int, name string) error {
	args := m.Called(ctx, owner, repo, number, name)
	return args.Error(0)
}

// ClientFactory records the tokens it is called with and hands out a LabelRemover
type ClientFactory struct {
	Remover revoke.LabelRemover
	Err     error
	Tokens  []string
}

// NewClientFactory creates a ClientFactory that always returns remover
func NewClientFactory(remover revoke.LabelRemover) *ClientFactory {
	return &ClientFactory{Remover: remover}
}

// New satisfies revoke.ClientFactory
func (f *ClientFactory) New(token string) (revoke.LabelRemover, error) {
	f.Tokens = append(f.Tokens, token)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Remover, nil
}

// Calls returns how many clients were created
func (f *ClientFactory) Calls() int {
	return len(f.Tokens)
}

var _ revoke.LabelRemover = (*MockLabelRemover)(nil)
