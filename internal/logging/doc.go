// Package logging constructs the process-wide slog logger and provides
// attribute helpers plus context plumbing for run-scoped fields.
package logging
