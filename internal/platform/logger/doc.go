// Package logger provides structured logging for signdeck.
//
// It builds JSON log/slog loggers at a configured level and carries request
// or operation scoped loggers through context.Context.
package logger
