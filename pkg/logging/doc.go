// Package logging provides structured logging utilities for inference stack components.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// and conventions for consistent logging across the CLI and its packages. It
// supports module/version context injection and automatic source location
// tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("nisctl", version, level)
//
//	    slog.Info("deploying stack", "namespace", ns)
//	    slog.Error("apply failed", "error", err)
//	}
//
// The CLI resolves the level from the --log-level flag or the NIS_LOG_LEVEL
// environment variable before calling this.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "stack deployed",
//	    "module": "nisctl",
//	    "version": "v1.0.0",
//	    "namespace": "inference"
//	}
//
// Logs go to stderr so that rendered manifests on stdout stay pipeable.
package logging
