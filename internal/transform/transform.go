// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transform holds the field transforms applied to records created by
// localize and copy operations.
package transform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olegiv/ocms-content/internal/hook"
	"github.com/olegiv/ocms-content/internal/store"
)

// Actions a transform may see.
const (
	ActionLocalize = "localize"
	ActionCopy     = "copy"
)

// Input is the record under construction plus what it was built from.
type Input struct {
	Action       string
	Source       store.Record
	Record       *store.CreateRecordParams
	DestLanguage store.Language
	UILanguage   string // admin language of the acting user
}

// Transform mutates a new record before it is stored.
type Transform interface {
	Name() string
	// After lists transforms that must run first.
	After() []string
	// Before lists transforms that must run later.
	Before() []string
	Apply(ctx context.Context, in *Input) error
}

// Pipeline runs transforms in dependency order.
type Pipeline struct {
	transforms []Transform
	names      []string
	logger     *slog.Logger
}

// NewPipeline orders transforms by their declared dependencies. It fails on
// duplicate names, unknown dependencies and cycles.
func NewPipeline(logger *slog.Logger, transforms ...Transform) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reg := hook.NewRegistry[Transform](logger)
	for _, t := range transforms {
		if err := reg.Register(t.Name(), t, hook.After(t.After()...), hook.Before(t.Before()...)); err != nil {
			return nil, fmt.Errorf("registering transform: %w", err)
		}
	}
	if err := reg.Freeze(); err != nil {
		return nil, fmt.Errorf("ordering transforms: %w", err)
	}
	ordered, err := reg.Ordered()
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		transforms: ordered,
		names:      reg.Names(),
		logger:     logger,
	}, nil
}

// Names returns the transform names in execution order.
func (p *Pipeline) Names() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.names...)
}

// Apply runs every transform against in. A nil pipeline is a no-op.
func (p *Pipeline) Apply(ctx context.Context, in *Input) error {
	if p == nil {
		return nil
	}
	for _, t := range p.transforms {
		if err := t.Apply(ctx, in); err != nil {
			return fmt.Errorf("transform %s: %w", t.Name(), err)
		}
	}
	return nil
}
