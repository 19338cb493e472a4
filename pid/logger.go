package main

import "log/slog"

// Logger routes info lines to stdout and errors as JSON to stderr. It
// satisfies the pid.Logger interface.
type Logger struct {
	InfoLog  *slog.Logger
	ErrorLog *slog.Logger
}

func (l Logger) Info(message string, module string) {
	l.InfoLog.Info(message, "module", module)
}

func (l Logger) Error(message string) {
	l.ErrorLog.Error(message)
}
