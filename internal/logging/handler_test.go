package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/olegiv/ocms-content/internal/model"
	"github.com/olegiv/ocms-content/internal/store"
	"github.com/olegiv/ocms-content/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func recentEvents(t *testing.T, db *sql.DB) []store.Event {
	t.Helper()
	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	return events
}

func TestEventLogHandler_Handle_ErrorLevel(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("database connection failed", "host", "localhost", "port", 5432)

	events := recentEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Level != model.EventLevelError {
		t.Errorf("Level = %q, want %q", ev.Level, model.EventLevelError)
	}
	if ev.Message != "database connection failed" {
		t.Errorf("Message = %q", ev.Message)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(ev.Metadata), &meta); err != nil {
		t.Fatalf("metadata is not valid JSON: %v (%s)", err, ev.Metadata)
	}
	if meta["host"] != "localhost" || meta["port"] != "5432" {
		t.Errorf("metadata = %v", meta)
	}
}

func TestEventLogHandler_Handle_InfoLevelNotForwarded(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Info("records localized", "count", 3)

	if events := recentEvents(t, db); len(events) != 0 {
		t.Errorf("expected no events for info level, got %d", len(events))
	}
}

func TestEventLogHandler_CustomLevel(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo))
	logger.Info("records localized", "count", 3)

	events := recentEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Level != model.EventLevelInfo {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelInfo)
	}
}

func TestEventLogHandler_Category(t *testing.T) {
	tests := []struct {
		name    string
		message string
		args    []any
		want    string
	}{
		{"explicit attribute", "something odd", []any{"category", model.EventCategoryCache}, model.EventCategoryCache},
		{"localization message", "failed to localize record", nil, model.EventCategoryContent},
		{"lost files message", "could not delete orphan", nil, model.EventCategoryLostFiles},
		{"refindex message", "refindex rebuild slow", nil, model.EventCategoryRefIndex},
		{"fallback", "disk almost full", nil, model.EventCategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, cleanup := testutil.TestDB(t)
			defer cleanup()

			slog.New(NewEventLogHandler(discardHandler{}, db)).Warn(tt.message, tt.args...)

			events := recentEvents(t, db)
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if events[0].Category != tt.want {
				t.Errorf("Category = %q, want %q", events[0].Category, tt.want)
			}
		})
	}
}

func TestEventLogHandler_WithAttrs(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db)).
		With("category", model.EventCategoryLostFiles, "run_id", "abc")
	logger.Warn("delete failed", "path", "uploads/x.jpg")

	events := recentEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Category != model.EventCategoryLostFiles {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryLostFiles)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(events[0].Metadata), &meta); err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta["run_id"] != "abc" || meta["path"] != "uploads/x.jpg" {
		t.Errorf("metadata = %v", meta)
	}
	if _, ok := meta["category"]; ok {
		t.Error("category should not be duplicated into metadata")
	}
}
