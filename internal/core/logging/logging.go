// Package logging provides zerolog helpers shared across stale.
package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier.
// Uses the "cmp" key for consistency with zerolog conventions.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

type contextKey string

const notePathKey contextKey = "note_path"

// WithNotePath adds the note path under evaluation to the context.
func WithNotePath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, notePathKey, path)
}

// GetNotePath retrieves the note path from the context.
// Returns empty string if not present.
func GetNotePath(ctx context.Context) string {
	if p, ok := ctx.Value(notePathKey).(string); ok {
		return p
	}
	return ""
}

// ContextHook extracts the note path from context and adds it to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if path := GetNotePath(ctx); path != "" {
		e.Str("note", path)
	}
}
