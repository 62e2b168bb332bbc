// Package logger provides a simple leveled logging interface and implementation.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger defines the logging interface used across the application.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Level represents logging levels.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type leveledLogger struct {
	mu    sync.RWMutex
	level Level
	out   map[Level]*log.Logger
}

// New creates a logger whose minimum level comes from the LOG_LEVEL
// environment variable (default info).
func New() Logger {
	return NewWithLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewWithLevel creates a logger with an explicit minimum level.
func NewWithLevel(level Level) Logger {
	return &leveledLogger{
		level: level,
		out: map[Level]*log.Logger{
			LevelDebug: log.New(os.Stdout, "[DEBUG] ", log.LstdFlags|log.Lshortfile),
			LevelInfo:  log.New(os.Stdout, "[INFO] ", log.LstdFlags),
			LevelWarn:  log.New(os.Stdout, "[WARN] ", log.LstdFlags),
			LevelError: log.New(os.Stderr, "[ERROR] ", log.LstdFlags|log.Lshortfile),
		},
	}
}

// ParseLevel converts a string log level to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *leveledLogger) write(level Level, msg string) {
	l.mu.RLock()
	min, out := l.level, l.out[level]
	l.mu.RUnlock()

	if level < min {
		return
	}
	out.Output(3, msg)
}

func (l *leveledLogger) Debug(v ...interface{})                 { l.write(LevelDebug, fmt.Sprint(v...)) }
func (l *leveledLogger) Debugf(format string, v ...interface{}) { l.write(LevelDebug, fmt.Sprintf(format, v...)) }
func (l *leveledLogger) Info(v ...interface{})                  { l.write(LevelInfo, fmt.Sprint(v...)) }
func (l *leveledLogger) Infof(format string, v ...interface{})  { l.write(LevelInfo, fmt.Sprintf(format, v...)) }
func (l *leveledLogger) Warn(v ...interface{})                  { l.write(LevelWarn, fmt.Sprint(v...)) }
func (l *leveledLogger) Warnf(format string, v ...interface{})  { l.write(LevelWarn, fmt.Sprintf(format, v...)) }
func (l *leveledLogger) Error(v ...interface{})                 { l.write(LevelError, fmt.Sprint(v...)) }
func (l *leveledLogger) Errorf(format string, v ...interface{}) { l.write(LevelError, fmt.Sprintf(format, v...)) }

func (l *leveledLogger) Fatal(v ...interface{}) {
	l.write(LevelError, fmt.Sprint(v...))
	os.Exit(1)
}

func (l *leveledLogger) Fatalf(format string, v ...interface{}) {
	l.write(LevelError, fmt.Sprintf(format, v...))
	os.Exit(1)
}
