// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the audit event log shared by the content
// workflows.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/olegiv/ocms-content/internal/backend"
	"github.com/olegiv/ocms-content/internal/model"
	"github.com/olegiv/ocms-content/internal/store"
)

// EventService writes audit events.
type EventService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, logger *slog.Logger) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{
		queries: store.New(db),
		logger:  logger,
	}
}

// LogEvent stores an event. The acting backend user, if any, is added to
// the metadata under "user".
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, metadata map[string]any) error {
	if u, ok := backend.UserFromContext(ctx); ok {
		if metadata == nil {
			metadata = make(map[string]any, 1)
		}
		metadata["user"] = u.ID
	}

	metadataJSON := "{}"
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		// Plain logger call: routing through the event handler would recurse.
		s.logger.Debug("failed to log event", "category", category, "error", err)
		return err
	}
	return nil
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, metadata)
}

// LogError logs an error-level event.
func (s *EventService) LogError(ctx context.Context, category, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelError, category, message, metadata)
}

// Recent returns the newest events of a category.
func (s *EventService) Recent(ctx context.Context, category string, limit int64) ([]store.Event, error) {
	return s.queries.ListEventsByCategory(ctx, store.ListEventsByCategoryParams{
		Category: category,
		Limit:    limit,
	})
}
