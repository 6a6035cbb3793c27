// Package logger provides leveled, context-carried logging for the packages built on top of
// wire's transaction core. The core package itself never logs (construction, encoding, and
// sighash computation are pure and I/O free); logger exists for the consumers layered above it
// -- signing and the cmd/txcore CLI.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"time"
)

type Level int

const (
	LevelDebug Level = -1
	LevelInfo  Level = 0
	LevelWarn  Level = 1
	LevelError Level = 2
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

type loggerKey int

const (
	configKey loggerKey = 1
	traceKey  loggerKey = 2
)

// ContextWithLogConfig returns a context with the logging config attached.
func ContextWithLogConfig(ctx context.Context, config *Config) context.Context {
	return context.WithValue(ctx, configKey, config)
}

// ContextWithNoLogger returns a context that discards all log entries.
func ContextWithNoLogger(ctx context.Context) context.Context {
	return context.WithValue(ctx, configKey, NewEmptyConfig())
}

// ContextWithLogTrace attaches a trace identifier included with every entry logged through the
// returned context, so a caller can follow one transaction's construction and signing through the
// log.
func ContextWithLogTrace(ctx context.Context, trace string) context.Context {
	return context.WithValue(ctx, traceKey, trace)
}

// Debug adds a debug level entry to the log.
func Debug(ctx context.Context, format string, values ...interface{}) {
	logDepth(ctx, LevelDebug, 1, format, values...)
}

// Info adds an info level entry to the log.
func Info(ctx context.Context, format string, values ...interface{}) {
	logDepth(ctx, LevelInfo, 1, format, values...)
}

// Warn adds a warn level entry to the log.
func Warn(ctx context.Context, format string, values ...interface{}) {
	logDepth(ctx, LevelWarn, 1, format, values...)
}

// Error adds an error level entry to the log.
func Error(ctx context.Context, format string, values ...interface{}) {
	logDepth(ctx, LevelError, 1, format, values...)
}

func getTrace(ctx context.Context) string {
	trace, _ := ctx.Value(traceKey).(string)
	return trace
}

func getConfig(ctx context.Context) *Config {
	config, ok := ctx.Value(configKey).(*Config)
	if !ok || config == nil {
		return &DefaultConfig
	}
	return config
}

func logDepth(ctx context.Context, level Level, depth int, format string, values ...interface{}) {
	config := getConfig(ctx)
	if config.Output == nil || level < config.Level {
		return
	}

	config.mutex.Lock()
	defer config.mutex.Unlock()

	_, file, lineNum, _ := runtime.Caller(depth + 1)
	if i := strings.LastIndex(file, "/"); i >= 0 {
		file = file[i+1:]
	}

	msg := fmt.Sprintf(format, values...)
	trace := getTrace(ctx)

	if config.IsText {
		entry := fmt.Sprintf("%s %-5s %s:%d %s", time.Now().UTC().Format(time.RFC3339), level, file,
			lineNum, msg)
		if trace != "" {
			entry += " trace=" + trace
		}
		fmt.Fprintln(config.Output, entry)
		return
	}

	entry := map[string]interface{}{
		"ts":    time.Now().UTC().Format(time.RFC3339),
		"level": level.String(),
		"file":  fmt.Sprintf("%s:%d", file, lineNum),
		"msg":   msg,
	}
	if trace != "" {
		entry["trace"] = trace
	}
	b, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(config.Output, "{\"level\":\"ERROR\",\"msg\":\"log marshal failed: %s\"}\n", err)
		return
	}
	config.Output.Write(append(b, '\n'))
}
