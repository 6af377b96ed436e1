package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	modeKey  contextKey = "mode"
)

// WithRunID annotates context with the resolution run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(runIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithMode annotates context with the active detection mode.
func WithMode(ctx context.Context, mode string) context.Context {
	if mode == "" {
		return ctx
	}
	return context.WithValue(ctx, modeKey, mode)
}

// ModeFromContext returns the detection mode if present.
func ModeFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(modeKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
