// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"path"
	"strings"
)

// Reference index table names.
const (
	// RefTableFile marks a reference whose target is a file path in ref_string.
	RefTableFile = "_FILE"
	// RefTableRecords is the content records table.
	RefTableRecords = "records"
)

// Soft reference parser keys. An empty key marks a hard reference.
const (
	SoftRefKeyImages   = "images"
	SoftRefKeyTypolink = "typolink"
)

// Record fields that carry references.
const (
	FieldMedia    = "media"
	FieldBodytext = "bodytext"
	FieldParentID = "parent_id"
)

// SplitMedia splits a comma-separated media field into clean, non-empty paths.
func SplitMedia(media string) []string {
	if strings.TrimSpace(media) == "" {
		return nil
	}
	parts := strings.Split(media, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = NormalizeFilePath(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// NormalizeFilePath turns a stored or referenced file path into the
// clean, slash-separated, site-root-relative form used as ref_string and
// produced by the upload walk. Paths that resolve outside the site root
// normalize to "".
func NormalizeFilePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return ""
	}
	return p
}
