// Package logger defines the logging interface used by the core packages.
package logger

// Logger is a minimal leveled logging interface. Implementations live under
// infra/logger so the core stays free of logging dependencies.
type Logger interface {
	Debugf(format string, args ...any)
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
