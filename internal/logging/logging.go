// Package logging builds the file-backed logger. The TUI owns the
// terminal, so logs go to papertrail.log in the state directory.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileName = "papertrail.log"

// New returns a JSON logger appending to papertrail.log under dir. If
// the file cannot be opened the logger is a no-op; logging must never
// take the app down.
func New(dir string) *zap.Logger {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return zap.NewNop()
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zap.NewNop()
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(f),
		zapcore.InfoLevel,
	)
	return zap.New(core)
}
