// Package logging provides structured logging for mongo-toolkit using slog.
//
// Text output goes through a TTY-aware [Handler] that colorizes levels and
// masks credentials (passwords, connection-string userinfo) before they reach
// the terminal. JSON output uses the standard library handler and is meant for
// log files and machine consumption.
//
// Loggers travel in a [context.Context]:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("fetching data source", "source", "serverStatus")
//
// Every diagnostic run derives a logger with [WithRun] so that all lines
// emitted while one issue executes share a run_id.
//
// For tests, [ForTest] routes output through t.Log.
package logging
