package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/douhashi/remove-safe-to-test-label/internal/logger"
)

// MockLogger is a mock implementation of logger.Logger interface.
// Key/value pairs are recorded as a single []interface{} argument.
type MockLogger struct {
	mock.Mock
}

// NewMockLogger creates a new instance of MockLogger
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// WithDefaultBehavior sets up common default behaviors for the mock
func (m *MockLogger) WithDefaultBehavior() *MockLogger {
	// ログメソッドのデフォルト動作（何もしない）
	m.On("Debug", mock.Anything, mock.Anything).Maybe().Return()
	m.On("Info", mock.Anything, mock.Anything).Maybe().Return()
	m.On("Warn", mock.Anything, mock.Anything).Maybe().Return()
	m.On("Error", mock.Anything, mock.Anything).Maybe().Return()

	// WithFieldsは自分自身を返す
	m.On("WithFields", mock.Anything).Maybe().Return(m)

	return m
}

// Debug mocks the Debug method
func (m *MockLogger) Debug(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

// Info mocks the Info method
func (m *MockLogger) Info(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

// Warn mocks the Warn method
func (m *MockLogger) Warn(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

// Error mocks the Error method
func (m *MockLogger) Error(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

// WithFields mocks the WithFields method
func (m *MockLogger) WithFields(keysAndValues ...interface{}) logger.Logger {
	args := m.Called(keysAndValues)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(logger.Logger)
}

// Ensure MockLogger implements logger.Logger interface
var _ logger.Logger = (*MockLogger)(nil)
