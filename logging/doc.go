// Package logging provides structured logging using Go's standard library log/slog.
// Logs are written as JSON by default, or as logfmt-style text for terminals,
// and the logger is supplied to Uber's Fx dependency injection container.
//
// Configuration warnings and errors are reported through this logger when a
// configuration file is validated at startup.
package logging
