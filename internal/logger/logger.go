// internal/logger/logger.go
package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

type Logger struct {
	sugar *zap.SugaredLogger
	base  *zap.Logger
}

var (
	mu            sync.RWMutex
	defaultLogger = NewLogger(INFO, false)
)

// NewLogger builds a zap backed logger. development switches to the
// human readable console encoder and enables stack traces on warnings.
func NewLogger(level LogLevel, development bool) *Logger {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())
	z, err := cfg.Build()
	if err != nil {
		// only reachable with a broken output path; stderr still works
		z = zap.NewExample()
	}
	return New(z)
}

// New wraps an existing zap logger. Caller info is reported for the
// code calling the package level functions, not for this package.
func New(z *zap.Logger) *Logger {
	skipped := z.WithOptions(zap.AddCallerSkip(2))
	return &Logger{
		sugar: skipped.Sugar(),
		base:  z,
	}
}

// Init replaces the default logger.
func Init(level LogLevel, development bool) {
	SetDefault(NewLogger(level, development))
}

func SetDefault(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

func get() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Zap exposes the underlying logger for code that wants structured fields.
func Zap() *zap.Logger {
	return get().base
}

// Sync flushes any buffered entries.
func Sync() {
	_ = get().base.Sync()
}

func (l *Logger) log(level LogLevel, format string, v ...any) {
	switch level {
	case DEBUG:
		l.sugar.Debugf(format, v...)
	case INFO:
		l.sugar.Infof(format, v...)
	case WARN:
		l.sugar.Warnf(format, v...)
	default:
		l.sugar.Errorf(format, v...)
	}
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel accepts the level names case-insensitively ("warning" too).
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO", "":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

// Convenience methods using the default logger
func Debug(format string, v ...any) {
	get().log(DEBUG, format, v...)
}

func Info(format string, v ...any) {
	get().log(INFO, format, v...)
}

func Warn(format string, v ...any) {
	get().log(WARN, format, v...)
}

func Error(format string, v ...any) {
	get().log(ERROR, format, v...)
}
