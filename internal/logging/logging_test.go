package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "room", "RM101")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON entry, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "shown" || entry["room"] != "RM101" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestContextLogger(t *testing.T) {
	t.Run("nil inputs", func(t *testing.T) {
		if got := FromContext(nil); got != nil {
			t.Fatalf("expected nil logger from nil context")
		}
		ctx := context.Background()
		if ContextWithLogger(ctx, nil) != ctx {
			t.Fatalf("expected context to be returned unchanged")
		}
		if WithAttrs(ctx, "k", "v") != ctx {
			t.Fatalf("expected WithAttrs to ignore a context without logger")
		}
	})

	t.Run("attrs carried", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := ContextWithLogger(context.Background(), New(&buf, slog.LevelInfo))
		ctx = WithAttrs(ctx, "command", "bookings list")

		FromContext(ctx).Info("listed")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("decode log entry: %v", err)
		}
		if entry["command"] != "bookings list" {
			t.Fatalf("expected command attribute, got %v", entry)
		}
	})
}
