package domain

import "strings"

// VertexStatus is the outcome of one bundle build as reported to telemetry and
// persisted in the build report.
type VertexStatus string

const (
	// VertexStatusCompleted means the bundle was built and at least one file was re-read.
	VertexStatusCompleted VertexStatus = "completed"
	// VertexStatusCached means every row of the bundle came from a validated cache entry.
	VertexStatusCached VertexStatus = "cached"
	// VertexStatusFailed means the build returned an error.
	VertexStatusFailed VertexStatus = "failed"
)

// ParseVertexStatus converts a persisted status back, defaulting to completed.
func ParseVertexStatus(s string) VertexStatus {
	switch strings.ToLower(s) {
	case string(VertexStatusCached):
		return VertexStatusCached
	case string(VertexStatusFailed):
		return VertexStatusFailed
	default:
		return VertexStatusCompleted
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
