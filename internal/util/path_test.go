// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestValidatePathWithinBase(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{"base itself", base, false},
		{"child", filepath.Join(base, "uploads", "a.jpg"), false},
		{"parent", filepath.Dir(base), true},
		{"sibling with shared prefix", base + "-other", true},
		{"dotdot escape", filepath.Join(base, "..", "etc"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinBase(base, tt.target)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePathWithinBase() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveSitePath(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		rel     string
		want    string
		wantErr bool
	}{
		{"upload file", "uploads/media/a.jpg", filepath.Join(root, "uploads", "media", "a.jpg"), false},
		{"resolved inner dotdot", "uploads/../uploads/a.jpg", filepath.Join(root, "uploads", "a.jpg"), false},
		{"escape", "../secret.txt", "", true},
		{"deep escape", "uploads/../../secret.txt", "", true},
		{"absolute", "/etc/passwd", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSitePath(root, tt.rel)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveSitePath(%q) error = %v, wantErr %v", tt.rel, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveSitePath(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}

	if _, err := ResolveSitePath(root, "../x"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("escape error = %v, want ErrPathTraversal", err)
	}
}

func TestSiteRelative(t *testing.T) {
	root := t.TempDir()

	got, err := SiteRelative(root, filepath.Join(root, "uploads", "pics", "x.png"))
	if err != nil {
		t.Fatalf("SiteRelative: %v", err)
	}
	if got != "uploads/pics/x.png" {
		t.Errorf("SiteRelative = %q", got)
	}

	if _, err := SiteRelative(root, filepath.Dir(root)); err == nil {
		t.Error("expected error for path above root")
	}
}

func TestContainsPathTraversal(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"uploads/file.txt", false},
		{"../etc/passwd", true},
		{"..", true},
		{"uploads/../config/secret.txt", false},
		{"../../../../etc/passwd", true},
		{"./uploads/file.txt", false},
		{"file..name.txt", false},
		{"..hidden", false},
	}
	for _, tt := range tests {
		if got := ContainsPathTraversal(tt.path); got != tt.want {
			t.Errorf("ContainsPathTraversal(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
