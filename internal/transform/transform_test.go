// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/olegiv/ocms-content/internal/hook"
	"github.com/olegiv/ocms-content/internal/i18n"
	"github.com/olegiv/ocms-content/internal/store"
	"github.com/olegiv/ocms-content/internal/testutil"
)

func newInput(header, bodytext, payload string) *Input {
	return &Input{
		Action: ActionLocalize,
		Record: &store.CreateRecordParams{
			Header:   header,
			Bodytext: bodytext,
			Payload:  payload,
		},
		DestLanguage: store.Language{ID: 1, Title: "German", IsoCode: "de"},
		UILanguage:   "en",
	}
}

func testCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.New(nil)
	require.NoError(t, err)
	return c
}

func TestDefaultsOrder(t *testing.T) {
	p, err := NewPipeline(testutil.TestLoggerSilent(), Defaults(Options{
		LabelPrefix: true,
		Sanitize:    true,
		Hide:        true,
	})...)
	require.NoError(t, err)

	names := p.Names()
	assert.Equal(t, []string{NameSlug, NameSanitize, NameLabel, NameHidden}, names)
}

func TestPipelineApply(t *testing.T) {
	p, err := NewPipeline(testutil.TestLoggerSilent(), Defaults(Options{
		LabelPrefix:  true,
		PayloadPaths: []string{"teaser", "meta.title", "count"},
		Sanitize:     true,
		Hide:         true,
		Catalog:      testCatalog(t),
	})...)
	require.NoError(t, err)

	in := newInput("Über uns", `<p>Hi<script>alert(1)</script></p>`,
		`{"teaser":"Short","meta":{"title":"Meta"},"count":3}`)
	require.NoError(t, p.Apply(context.Background(), in))

	// Slug runs before the label so it reflects the original header.
	assert.Equal(t, "uber-uns", in.Record.Slug)
	assert.Equal(t, "[Translate to German:] Über uns", in.Record.Header)
	assert.Equal(t, "[Translate to German:] <p>Hi</p>", in.Record.Bodytext)
	assert.Equal(t, "[Translate to German:] Short", gjson.Get(in.Record.Payload, "teaser").Str)
	assert.Equal(t, "[Translate to German:] Meta", gjson.Get(in.Record.Payload, "meta.title").Str)
	assert.Equal(t, int64(3), gjson.Get(in.Record.Payload, "count").Int())
	assert.True(t, in.Record.Hidden)
}

func TestSlugWithoutHeader(t *testing.T) {
	tests := []struct {
		name, header, slug, want string
	}{
		{"from header", "Hello World", "old", "hello-world"},
		{"valid slug kept", "", "about-us", "about-us"},
		{"malformed slug cleaned", "", "About Us!", "about-us"},
		{"empty stays empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newInput(tt.header, "", "{}")
			in.Record.Slug = tt.slug
			require.NoError(t, Slug{}.Apply(context.Background(), in))
			assert.Equal(t, tt.want, in.Record.Slug)
		})
	}
}

func TestLabelUsesUILanguage(t *testing.T) {
	l := &Label{Enabled: true, Catalog: testCatalog(t)}
	in := newInput("Intro", "", "{}")
	in.UILanguage = "de"
	in.DestLanguage.Title = "Französisch"

	require.NoError(t, l.Apply(context.Background(), in))
	assert.Equal(t, "[Übersetzen nach Französisch:] Intro", in.Record.Header)
	assert.Empty(t, in.Record.Bodytext, "empty fields stay empty")
}

func TestLabelDisabled(t *testing.T) {
	l := &Label{Enabled: false, Catalog: testCatalog(t)}
	in := newInput("Intro", "Body", "{}")

	require.NoError(t, l.Apply(context.Background(), in))
	assert.Equal(t, "Intro", in.Record.Header)
	assert.Equal(t, "Body", in.Record.Bodytext)
}

func TestNilPipeline(t *testing.T) {
	var p *Pipeline
	assert.NoError(t, p.Apply(context.Background(), newInput("x", "", "{}")))
	assert.Nil(t, p.Names())
}

type stubTransform struct {
	name   string
	after  []string
	before []string
	err    error
}

func (s stubTransform) Name() string     { return s.name }
func (s stubTransform) After() []string  { return s.after }
func (s stubTransform) Before() []string { return s.before }
func (s stubTransform) Apply(context.Context, *Input) error {
	return s.err
}

func TestNewPipelineErrors(t *testing.T) {
	logger := testutil.TestLoggerSilent()

	_, err := NewPipeline(logger, stubTransform{name: "a", after: []string{"missing"}})
	assert.ErrorIs(t, err, hook.ErrUnknown)

	_, err = NewPipeline(logger,
		stubTransform{name: "a", after: []string{"b"}},
		stubTransform{name: "b", after: []string{"a"}},
	)
	assert.ErrorIs(t, err, hook.ErrCycle)

	_, err = NewPipeline(logger, stubTransform{name: "a"}, stubTransform{name: "a"})
	assert.ErrorIs(t, err, hook.ErrDuplicate)
}

func TestPipelineApplyError(t *testing.T) {
	boom := errors.New("boom")
	p, err := NewPipeline(testutil.TestLoggerSilent(), stubTransform{name: "failing", err: boom})
	require.NoError(t, err)

	err = p.Apply(context.Background(), newInput("x", "", "{}"))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "transform failing")
}
