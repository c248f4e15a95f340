// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides message catalogs for backend-facing output such as
// the localization label prefix and command summaries.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all translations for all supported languages.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
	logger       *slog.Logger
}

// SupportedLanguages lists the backend UI languages we support.
var SupportedLanguages = []string{"en", "de", "ru"}

// DefaultLanguage is used when nothing better matches.
const DefaultLanguage = "en"

// New loads all supported catalogs from the embedded locales.
func New(logger *slog.Logger) (*Catalog, error) {
	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  DefaultLanguage,
		logger:       logger,
	}

	tags := make([]language.Tag, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		tags = append(tags, language.MustParse(lang))
	}
	c.supported = tags
	c.matcher = language.NewMatcher(tags)

	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return nil, fmt.Errorf("failed to load language %s: %w", lang, err)
		}
	}

	if logger != nil {
		logger.Debug("i18n catalog loaded", "languages", SupportedLanguages, "messages", c.Count(DefaultLanguage))
	}
	return c, nil
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(msgFile.Messages))
	}

	return nil
}

// T translates a message key to the specified language.
// Unknown languages fall back to the default language; unknown keys return the key.
func (c *Catalog) T(lang, key string, args ...any) string {
	if c == nil {
		return key
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	translation, ok := c.translations[lang][key]
	if !ok && lang != c.defaultLang {
		translation, ok = c.translations[c.defaultLang][key]
		if ok && c.logger != nil {
			c.logger.Debug("missing translation, using default", "key", key, "lang", lang)
		}
	}
	if !ok {
		return key
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// Match finds the best supported language for an Accept-Language header or a
// bare language code.
func (c *Catalog) Match(acceptLang string) string {
	if c == nil {
		return DefaultLanguage
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return c.defaultLang
		}
		tags = []language.Tag{tag}
	}

	_, idx, confidence := c.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(c.supported) {
		return c.defaultLang
	}
	return c.supported[idx].String()
}

// Count returns the number of translations loaded for a language.
func (c *Catalog) Count(lang string) int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.translations[lang])
}
