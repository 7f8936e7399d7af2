// Package logging provides the process-wide structured logger. It is a
// thin, package-level wrapper around a *zap.SugaredLogger singleton,
// exposing Debug/Debugf/Debugw, Info/Infof/Infow, Warn/Warnf/Warnw, and
// Error/Errorf/Errorw.
package logging

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var singleton atomic.Pointer[zap.SugaredLogger]

func init() {
	singleton.Store(newDefault(false))
}

func newDefault(debug bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(cfg)

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level)
	return zap.New(core).Sugar()
}

// Initialize (re)configures the singleton logger. Called once from the
// CLI's PersistentPreRunE, after flags (notably --debug) are parsed.
func Initialize(debug bool) {
	singleton.Store(newDefault(debug))
}

func current() *zap.SugaredLogger {
	return singleton.Load()
}

// Debug logs at debug level.
func Debug(args ...interface{}) { current().Debug(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(template string, args ...interface{}) { current().Debugf(template, args...) }

// Debugw logs a message with key/value pairs at debug level.
func Debugw(msg string, kv ...interface{}) { current().Debugw(msg, kv...) }

// Info logs at info level.
func Info(args ...interface{}) { current().Info(args...) }

// Infof logs a formatted message at info level.
func Infof(template string, args ...interface{}) { current().Infof(template, args...) }

// Infow logs a message with key/value pairs at info level.
func Infow(msg string, kv ...interface{}) { current().Infow(msg, kv...) }

// Warn logs at warn level.
func Warn(args ...interface{}) { current().Warn(args...) }

// Warnf logs a formatted message at warn level.
func Warnf(template string, args ...interface{}) { current().Warnf(template, args...) }

// Warnw logs a message with key/value pairs at warn level.
func Warnw(msg string, kv ...interface{}) { current().Warnw(msg, kv...) }

// Error logs at error level.
func Error(args ...interface{}) { current().Error(args...) }

// Errorf logs a formatted message at error level.
func Errorf(template string, args ...interface{}) { current().Errorf(template, args...) }

// Errorw logs a message with key/value pairs at error level.
func Errorw(msg string, kv ...interface{}) { current().Errorw(msg, kv...) }

// Sync flushes any buffered log entries. Call before process exit.
func Sync() error {
	return current().Sync()
}
