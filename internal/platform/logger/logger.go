package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. Debug mode switches to the human-readable
// development encoder.
func New(mode string) (*zap.Logger, error) {
	if mode == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
