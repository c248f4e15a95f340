// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned when a path escapes its base directory.
var ErrPathTraversal = errors.New("path traversal detected: path escapes base directory")

// ValidatePathWithinBase ensures that targetPath resolves inside basePath.
func ValidatePathWithinBase(basePath, targetPath string) error {
	absBase, err := filepath.Abs(filepath.Clean(basePath))
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}
	absTarget, err := filepath.Abs(filepath.Clean(targetPath))
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	// Trailing separator so /uploads-other does not match /uploads.
	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return ErrPathTraversal
	}
	return nil
}

// SafeJoinPath joins components onto basePath and rejects results outside it.
func SafeJoinPath(basePath string, components ...string) (string, error) {
	fullPath := filepath.Join(append([]string{basePath}, components...)...)
	if err := ValidatePathWithinBase(basePath, fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}

// ResolveSitePath maps a site-relative, slash-separated path onto the
// filesystem below root. Absolute paths and paths escaping root are rejected.
func ResolveSitePath(root, rel string) (string, error) {
	if rel == "" {
		return "", errors.New("empty path")
	}
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("%q: absolute paths are not allowed", rel)
	}
	full, err := SafeJoinPath(root, filepath.FromSlash(rel))
	if err != nil {
		return "", fmt.Errorf("%q: %w", rel, err)
	}
	return full, nil
}

// SiteRelative returns full as a slash-separated path relative to root.
func SiteRelative(root, full string) (string, error) {
	rel, err := filepath.Rel(root, full)
	if err != nil {
		return "", err
	}
	if ContainsPathTraversal(rel) {
		return "", fmt.Errorf("%q: %w", full, ErrPathTraversal)
	}
	return filepath.ToSlash(rel), nil
}

// ContainsPathTraversal reports whether path still climbs out after cleaning.
func ContainsPathTraversal(path string) bool {
	cleaned := filepath.ToSlash(filepath.Clean(path))
	return cleaned == ".." || strings.HasPrefix(cleaned, "../") || strings.Contains(cleaned, "/../")
}
