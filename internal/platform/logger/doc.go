// Package logger builds the process logger from the server config (JSON or
// text slog output at the configured level) and moves request and component
// loggers through context.Context.
package logger
