// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package backend carries the acting backend user through request contexts.
package backend

import (
	"context"
	"strings"

	"github.com/olegiv/ocms-content/internal/i18n"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser is the context key for the acting backend user.
const ContextKeyUser ContextKey = "backend_user"

// SystemUserID identifies work started by the CLI or the scheduler.
const SystemUserID = "system"

// User is the backend editor on whose behalf an operation runs.
type User struct {
	ID         string
	UILanguage string // admin interface language, e.g. "en"
}

// NewUser builds a user, defaulting blank fields.
func NewUser(id, uiLanguage string) User {
	id = strings.TrimSpace(id)
	if id == "" {
		id = SystemUserID
	}
	uiLanguage = strings.ToLower(strings.TrimSpace(uiLanguage))
	if uiLanguage == "" {
		uiLanguage = i18n.DefaultLanguage
	}
	return User{ID: id, UILanguage: uiLanguage}
}

// SystemUser returns the user used for non-interactive runs.
func SystemUser(uiLanguage string) User {
	return NewUser(SystemUserID, uiLanguage)
}

// WithUser stores u in ctx.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, u)
}

// UserFromContext returns the acting user, if any.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ContextKeyUser).(User)
	return u, ok
}

// UILanguage returns the acting user's admin language or the default.
func UILanguage(ctx context.Context) string {
	if u, ok := UserFromContext(ctx); ok && u.UILanguage != "" {
		return u.UILanguage
	}
	return i18n.DefaultLanguage
}

// UserID returns the acting user's id, or SystemUserID when ctx carries none.
func UserID(ctx context.Context) string {
	if u, ok := UserFromContext(ctx); ok && u.ID != "" {
		return u.ID
	}
	return SystemUserID
}
