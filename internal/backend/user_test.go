// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package backend

import (
	"context"
	"testing"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name     string
		id, lang string
		want     User
	}{
		{"explicit", "alice", "de", User{ID: "alice", UILanguage: "de"}},
		{"blank id", "  ", "ru", User{ID: SystemUserID, UILanguage: "ru"}},
		{"blank language", "bob", "", User{ID: "bob", UILanguage: "en"}},
		{"normalized language", "bob", " DE ", User{ID: "bob", UILanguage: "de"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewUser(tt.id, tt.lang); got != tt.want {
				t.Errorf("NewUser(%q, %q) = %+v, want %+v", tt.id, tt.lang, got, tt.want)
			}
		})
	}
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := UserFromContext(ctx); ok {
		t.Fatal("empty context should not carry a user")
	}
	if got := UILanguage(ctx); got != "en" {
		t.Errorf("UILanguage(empty) = %q, want en", got)
	}

	ctx = WithUser(ctx, NewUser("editor", "de"))
	u, ok := UserFromContext(ctx)
	if !ok {
		t.Fatal("expected user in context")
	}
	if u.ID != "editor" {
		t.Errorf("ID = %q, want editor", u.ID)
	}
	if got := UILanguage(ctx); got != "de" {
		t.Errorf("UILanguage = %q, want de", got)
	}
}
