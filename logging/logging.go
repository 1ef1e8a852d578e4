// Package logging provides real-time structured console output for the
// search proxy. Log lines are for monitoring only; nothing in the proxy's
// behavior depends on them.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger provides structured logging to stdout.
type Logger struct {
	mu        sync.Mutex
	output    io.Writer
	minLevel  Level
	component string
}

// levelPriority maps levels to numeric priority for filtering.
var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// New creates a new Logger.
func New() *Logger {
	return &Logger{
		output:   os.Stdout,
		minLevel: LevelInfo,
	}
}

// WithComponent returns a new logger with the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		output:    l.output,
		minLevel:  l.minLevel,
		component: component,
	}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.minLevel = level
}

// SetOutput sets the output writer (default: stdout).
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(LevelDebug, msg, fields...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(LevelError, msg, fields...)
}

// formatFields formats a map of fields as key=value pairs.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	var parts []string
	for k, v := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return " " + strings.Join(parts, " ")
}

// log writes a log entry in traditional format: LEVEL TIMESTAMP [component] message key=value ...
func (l *Logger) log(level Level, msg string, fields ...map[string]interface{}) {
	if levelPriority[level] < levelPriority[l.minLevel] {
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var fieldStr string
	if len(fields) > 0 && fields[0] != nil {
		fieldStr = formatFields(fields[0])
	}

	var line string
	if l.component != "" {
		line = fmt.Sprintf("%-5s %s [%s] %s%s\n", level, timestamp, l.component, msg, fieldStr)
	} else {
		line = fmt.Sprintf("%-5s %s %s%s\n", level, timestamp, msg, fieldStr)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(line))
}

// --- Event-derived logging methods ---
// These are called by the scheduler and the search client as events happen.

// SchedulerWait logs the drain loop pausing before the next dispatch.
func (l *Logger) SchedulerWait(wait time.Duration, depth int) {
	l.Debug("scheduler_wait", map[string]interface{}{
		"wait":  wait.String(),
		"depth": depth,
	})
}

// Dispatch logs an admission being released to its caller.
func (l *Logger) Dispatch(seq uint64, waited time.Duration) {
	l.Debug("dispatch", map[string]interface{}{
		"seq":    seq,
		"waited": waited.String(),
	})
}

// AdmissionCanceled logs a queued admission being withdrawn.
func (l *Logger) AdmissionCanceled(seq uint64) {
	l.Debug("admission_canceled", map[string]interface{}{
		"seq": seq,
	})
}

// SearchStart logs a search request going out to a provider.
func (l *Logger) SearchStart(provider, query string) {
	l.Debug("search_start", map[string]interface{}{
		"provider": provider,
		"query":    query,
	})
}

// SearchResult logs the outcome of a search request.
func (l *Logger) SearchResult(provider, query string, results int, duration time.Duration, err error) {
	fields := map[string]interface{}{
		"provider": provider,
		"query":    query,
		"results":  results,
		"duration": duration.String(),
	}
	if err != nil {
		fields["error"] = err.Error()
		l.Error("search_error", fields)
	} else {
		l.Info("search_result", fields)
	}
}

// CacheHit logs a query served from the local result cache.
func (l *Logger) CacheHit(query string, results int) {
	l.Debug("cache_hit", map[string]interface{}{
		"query":   query,
		"results": results,
	})
}

// CacheMiss logs a query not found in the local result cache.
func (l *Logger) CacheMiss(query string) {
	l.Debug("cache_miss", map[string]interface{}{
		"query": query,
	})
}
