package helpers

import (
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/douhashi/remove-safe-to-test-label/internal/logger"
)

// NewObservableLogger creates a logger whose entries are captured for assertions
func NewObservableLogger(level zapcore.Level) (logger.Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return logger.NewWithCore(core), recorded
}

// Messages returns the messages of the recorded entries in order
func Messages(recorded *observer.ObservedLogs) []string {
	entries := recorded.All()
	messages := make([]string, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, entry.Message)
	}
	return messages
}
