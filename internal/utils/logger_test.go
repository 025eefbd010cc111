package utils_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/tyemirov/repomd/internal/utils"
)

func TestNewApplicationLoggerLevels(t *testing.T) {
	quietLogger, quietError := utils.NewApplicationLogger(false)
	if quietError != nil {
		t.Fatalf("NewApplicationLogger(false) error: %v", quietError)
	}
	if quietLogger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug to be disabled without verbose")
	}
	if !quietLogger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be enabled")
	}

	verboseLogger, verboseError := utils.NewApplicationLogger(true)
	if verboseError != nil {
		t.Fatalf("NewApplicationLogger(true) error: %v", verboseError)
	}
	if !verboseLogger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug to be enabled with verbose")
	}
}

func TestLoggerOrNop(t *testing.T) {
	if utils.LoggerOrNop(nil) == nil {
		t.Fatalf("expected a no-op logger for nil")
	}
}
