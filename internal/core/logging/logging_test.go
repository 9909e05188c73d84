package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := Component("resolver")
	logger.Info().Msg("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	if logEntry["cmp"] != "resolver" {
		t.Errorf("Component() cmp = %v, want %q", logEntry["cmp"], "resolver")
	}
}

func TestWithNotePath(t *testing.T) {
	ctx := WithNotePath(context.Background(), "notes/a.md")
	if got := GetNotePath(ctx); got != "notes/a.md" {
		t.Errorf("GetNotePath() = %q, want %q", got, "notes/a.md")
	}
}

func TestGetNotePath_NotPresent(t *testing.T) {
	if got := GetNotePath(context.Background()); got != "" {
		t.Errorf("GetNotePath() = %q, want empty string", got)
	}
}

func TestContextHook_Run(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithNotePath(context.Background(), "notes/a.md")

	logger := zerolog.New(&buf).Hook(ContextHook{})
	logger.Info().Ctx(ctx).Msg("test")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	if logEntry["note"] != "notes/a.md" {
		t.Errorf("note field = %v, want %q", logEntry["note"], "notes/a.md")
	}
}

func TestContextHook_Run_BackgroundContext(t *testing.T) {
	var buf bytes.Buffer

	logger := zerolog.New(&buf).Hook(ContextHook{})
	logger.Info().Msg("test")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	if _, ok := logEntry["note"]; ok {
		t.Error("expected no 'note' key without context value")
	}
}
