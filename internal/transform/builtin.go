// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transform

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/olegiv/ocms-content/internal/i18n"
	"github.com/olegiv/ocms-content/internal/util"
)

// Built-in transform names.
const (
	NameSlug     = "slug"
	NameLabel    = "label"
	NameSanitize = "sanitize"
	NameHidden   = "hidden"
)

// Options selects and configures the built-in transforms.
type Options struct {
	LabelPrefix  bool
	PayloadPaths []string // gjson paths of translatable payload fields
	Sanitize     bool
	Hide         bool
	Catalog      *i18n.Catalog
}

// Defaults returns the built-in transforms enabled by opts.
func Defaults(opts Options) []Transform {
	ts := []Transform{
		Slug{},
		&Label{Enabled: opts.LabelPrefix, PayloadPaths: opts.PayloadPaths, Catalog: opts.Catalog},
	}
	if opts.Sanitize {
		ts = append(ts, NewSanitize())
	}
	if opts.Hide {
		ts = append(ts, Hidden{})
	}
	return ts
}

// Slug regenerates the slug from the header. A record without a header
// keeps its slug unless the slug is malformed.
type Slug struct{}

func (Slug) Name() string     { return NameSlug }
func (Slug) After() []string  { return nil }
func (Slug) Before() []string { return []string{NameLabel} }

func (Slug) Apply(_ context.Context, in *Input) error {
	if s := util.Slugify(in.Record.Header); s != "" {
		in.Record.Slug = s
		return nil
	}
	if in.Record.Slug != "" && !util.IsValidSlug(in.Record.Slug) {
		in.Record.Slug = util.Slugify(in.Record.Slug)
	}
	return nil
}

// Label prefixes translatable fields with "[Translate to <language>:]" in
// the acting user's admin language.
type Label struct {
	Enabled      bool
	PayloadPaths []string
	Catalog      *i18n.Catalog
}

func (*Label) Name() string     { return NameLabel }
func (*Label) After() []string  { return nil }
func (*Label) Before() []string { return nil }

// Prefix returns the label text for a language title, including the
// trailing space.
func (l *Label) Prefix(uiLanguage, languageTitle string) string {
	return l.Catalog.T(uiLanguage, "localize.label_prefix", languageTitle) + " "
}

func (l *Label) Apply(_ context.Context, in *Input) error {
	if !l.Enabled {
		return nil
	}

	prefix := l.Prefix(in.UILanguage, in.DestLanguage.Title)
	if in.Record.Header != "" {
		in.Record.Header = prefix + in.Record.Header
	}
	if in.Record.Bodytext != "" {
		in.Record.Bodytext = prefix + in.Record.Bodytext
	}

	payload := in.Record.Payload
	for _, path := range l.PayloadPaths {
		v := gjson.Get(payload, path)
		if v.Type != gjson.String || v.Str == "" {
			continue
		}
		updated, err := sjson.Set(payload, path, prefix+v.Str)
		if err != nil {
			return fmt.Errorf("payload path %q: %w", path, err)
		}
		payload = updated
	}
	in.Record.Payload = payload
	return nil
}

// Sanitize runs the body text through a UGC HTML policy.
type Sanitize struct {
	policy *bluemonday.Policy
}

// NewSanitize creates the sanitize transform.
func NewSanitize() *Sanitize {
	return &Sanitize{policy: bluemonday.UGCPolicy()}
}

func (*Sanitize) Name() string     { return NameSanitize }
func (*Sanitize) After() []string  { return nil }
func (*Sanitize) Before() []string { return []string{NameLabel} }

func (s *Sanitize) Apply(_ context.Context, in *Input) error {
	if in.Record.Bodytext != "" {
		in.Record.Bodytext = s.policy.Sanitize(in.Record.Bodytext)
	}
	return nil
}

// Hidden marks new records hidden until an editor publishes them.
type Hidden struct{}

func (Hidden) Name() string     { return NameHidden }
func (Hidden) After() []string  { return nil }
func (Hidden) Before() []string { return nil }

func (Hidden) Apply(_ context.Context, in *Input) error {
	in.Record.Hidden = true
	return nil
}
